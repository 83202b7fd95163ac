package store

import (
	"time"

	"github.com/google/uuid"
)

// DB records the play session's rounds and accepted equations. The default
// backing is an in-memory database, so nothing outlives the session unless
// the host points the DSN at a file.
type DB interface {
	Close() error
	CreateRound(round RoundRecord) error
	AppendEquation(eq EquationRecord) error
	FinishRound(id uuid.UUID, totalScore int) error
	GetRound(id uuid.UUID) (*RoundRecord, error)
	ListRounds() ([]RoundRecord, error)
	ListEquations(roundID uuid.UUID) ([]EquationRecord, error)
	SessionScore() (int, error)
}

// RoundRecord is one round of the session.
type RoundRecord struct {
	ID            uuid.UUID `json:"id"`
	Target        int       `json:"target"`
	Required      int       `json:"required"`
	BrokenButtons string    `json:"broken_buttons"` // keypad symbols, concatenated
	State         string    `json:"state"`
	TotalScore    int       `json:"total_score"`
	CreatedAt     time.Time `json:"created_at"`
}

// EquationRecord is one accepted equation within a round. Position is the
// submission order, starting at zero.
type EquationRecord struct {
	ID         int64     `json:"id"`
	RoundID    uuid.UUID `json:"round_id"`
	Position   int       `json:"position"`
	Raw        string    `json:"raw"`
	Normalized string    `json:"normalized"`
	Canonical  string    `json:"canonical"`
	Value      string    `json:"value"` // decimal string
	Score      int       `json:"score"`
}
