package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// SQLiteDB implements the DB interface using SQLite.
type SQLiteDB struct {
	db *sql.DB
}

// Open opens (or creates) the session database and applies migrations.
// An empty dsn means in-memory. Open and migrate are retried with backoff
// because a file DSN shared with another process can report SQLITE_BUSY.
func Open(dsn string) (*SQLiteDB, error) {
	if dsn == "" {
		dsn = ":memory:"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// An in-memory database exists per connection; a single connection
	// keeps every query on the same database. Round submission is
	// synchronous anyway.
	db.SetMaxOpenConns(1)

	s := &SQLiteDB{db: db}

	ctx := context.Background()
	backoff := retry.WithMaxRetries(5, retry.NewFibonacci(50*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			return retryIfBusy(fmt.Errorf("enable WAL mode: %w", err))
		}
		if err := s.migrate(ctx); err != nil {
			return retryIfBusy(err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func retryIfBusy(err error) error {
	msg := err.Error()
	if strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked") {
		return retry.RetryableError(err)
	}
	return err
}

// migrate applies each embedded migration file at most once, recorded in
// a schema_migrations table.
func (s *SQLiteDB) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS schema_migrations (
    name TEXT PRIMARY KEY,
    applied_at INTEGER NOT NULL
)`); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	entries, err := fs.ReadDir(migrationFS, "migrations")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		var applied int
		err := s.db.QueryRowContext(ctx,
			"SELECT COUNT(1) FROM schema_migrations WHERE name = ?", name).Scan(&applied)
		if err != nil {
			return fmt.Errorf("check migration %s: %w", name, err)
		}
		if applied > 0 {
			continue
		}

		content, err := fs.ReadFile(migrationFS, "migrations/"+name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin migration %s: %w", name, err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("exec migration %s: %w", name, err)
		}
		if _, err := tx.Exec(
			"INSERT INTO schema_migrations (name, applied_at) VALUES (?, ?)",
			name, time.Now().UTC().UnixMilli(),
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", name, err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// CreateRound inserts a fresh round.
func (s *SQLiteDB) CreateRound(round RoundRecord) error {
	createdAt := round.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := s.db.Exec(`
INSERT INTO rounds (id, target, required, broken_buttons, state, total_score, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		round.ID.String(), round.Target, round.Required, round.BrokenButtons,
		"active", round.TotalScore, createdAt,
	)
	if err != nil {
		return fmt.Errorf("create round: %w", err)
	}
	return nil
}

// AppendEquation records an accepted equation for its round.
func (s *SQLiteDB) AppendEquation(eq EquationRecord) error {
	_, err := s.db.Exec(`
INSERT INTO equations (round_id, position, raw, normalized, canonical, value, score)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		eq.RoundID.String(), eq.Position, eq.Raw, eq.Normalized, eq.Canonical, eq.Value, eq.Score,
	)
	if err != nil {
		return fmt.Errorf("append equation: %w", err)
	}
	return nil
}

// FinishRound marks a round complete and stores its final score.
func (s *SQLiteDB) FinishRound(id uuid.UUID, totalScore int) error {
	res, err := s.db.Exec(
		"UPDATE rounds SET state = 'complete', total_score = ? WHERE id = ?",
		totalScore, id.String(),
	)
	if err != nil {
		return fmt.Errorf("finish round: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish round: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("finish round: round %s not found", id)
	}
	return nil
}

// GetRound fetches a single round.
func (s *SQLiteDB) GetRound(id uuid.UUID) (*RoundRecord, error) {
	row := s.db.QueryRow(`
SELECT id, target, required, broken_buttons, state, total_score, created_at
FROM rounds WHERE id = ?`, id.String())
	round, err := scanRound(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("round %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get round: %w", err)
	}
	return round, nil
}

// ListRounds returns the session's rounds in play order.
func (s *SQLiteDB) ListRounds() ([]RoundRecord, error) {
	rows, err := s.db.Query(`
SELECT id, target, required, broken_buttons, state, total_score, created_at
FROM rounds ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list rounds: %w", err)
	}
	defer rows.Close()

	var rounds []RoundRecord
	for rows.Next() {
		round, err := scanRound(rows)
		if err != nil {
			return nil, fmt.Errorf("list rounds: %w", err)
		}
		rounds = append(rounds, *round)
	}
	return rounds, rows.Err()
}

// ListEquations returns a round's accepted equations in submission order.
func (s *SQLiteDB) ListEquations(roundID uuid.UUID) ([]EquationRecord, error) {
	rows, err := s.db.Query(`
SELECT id, round_id, position, raw, normalized, canonical, value, score
FROM equations WHERE round_id = ? ORDER BY position ASC`, roundID.String())
	if err != nil {
		return nil, fmt.Errorf("list equations: %w", err)
	}
	defer rows.Close()

	var equations []EquationRecord
	for rows.Next() {
		var eq EquationRecord
		var rid string
		if err := rows.Scan(&eq.ID, &rid, &eq.Position, &eq.Raw, &eq.Normalized,
			&eq.Canonical, &eq.Value, &eq.Score); err != nil {
			return nil, fmt.Errorf("list equations: %w", err)
		}
		eq.RoundID, err = uuid.Parse(rid)
		if err != nil {
			return nil, fmt.Errorf("list equations: %w", err)
		}
		equations = append(equations, eq)
	}
	return equations, rows.Err()
}

// SessionScore sums the final scores of completed rounds.
func (s *SQLiteDB) SessionScore() (int, error) {
	var score int
	err := s.db.QueryRow(
		"SELECT COALESCE(SUM(total_score), 0) FROM rounds WHERE state = 'complete'").Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("session score: %w", err)
	}
	return score, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRound(row rowScanner) (*RoundRecord, error) {
	var round RoundRecord
	var id string
	if err := row.Scan(&id, &round.Target, &round.Required, &round.BrokenButtons,
		&round.State, &round.TotalScore, &round.CreatedAt); err != nil {
		return nil, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	round.ID = parsed
	return &round, nil
}
