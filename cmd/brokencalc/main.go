package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/brokencalc/broken-calc-go/internal/config"
	"github.com/brokencalc/broken-calc-go/internal/game"
	"github.com/brokencalc/broken-calc-go/internal/store"
)

// keypad spellings for display only; input stays ASCII
var displayOps = strings.NewReplacer("*", "×", "/", "÷")

func main() {
	logger := log.New(os.Stderr, "brokencalc ", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("config_invalid error=%q", err)
	}

	db, err := store.Open(cfg.DatabaseDSN)
	if err != nil {
		logger.Fatalf("store_open_failed dsn=%q error=%q", cfg.DatabaseDSN, err)
	}
	defer db.Close()

	h := &host{
		logger:  logger,
		session: game.NewManager(cfg.GameSettings()),
		db:      db,
	}
	if err := h.run(os.Stdin, os.Stdout); err != nil {
		logger.Fatalf("session_failed error=%q", err)
	}
}

// host is the terminal shell around the engine: it renders rounds, reads
// submissions, and records history. All game rules live in the engine.
type host struct {
	logger  *log.Logger
	session *game.Manager
	db      store.DB
}

func (h *host) run(in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "Broken Calculator")
	fmt.Fprintln(out, `Type "help" for the rules, "quit" to leave.`)

	if err := h.startRound(out); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch strings.ToLower(line) {
		case "":
			continue
		case "quit", "exit":
			return h.farewell(out)
		case "help":
			printHelp(out)
			continue
		case "score":
			score, err := h.db.SessionScore()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Session score: %d\n", score)
			continue
		case "new":
			h.logger.Printf("round_abandoned id=%s", h.session.Round().ID)
			if err := h.startRound(out); err != nil {
				return err
			}
			continue
		}

		if err := h.submit(out, line); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func (h *host) submit(out io.Writer, line string) error {
	round := h.session.Round()

	eq, err := h.session.Submit(line)
	if err != nil {
		fmt.Fprintf(out, "✗ %s\n", err)
		return nil
	}

	if err := h.db.AppendEquation(store.EquationRecord{
		RoundID:    round.ID,
		Position:   len(round.Accepted()) - 1,
		Raw:        eq.Raw,
		Normalized: eq.Normalized,
		Canonical:  eq.Canonical,
		Value:      eq.Value.String(),
		Score:      eq.Score,
	}); err != nil {
		return err
	}

	fmt.Fprintf(out, "✓ %s = %d (+%d pts), %d of %d\n",
		displayOps.Replace(eq.Normalized), round.Target, eq.Score,
		len(round.Accepted()), round.Required)

	if round.State() != game.Complete {
		return nil
	}

	if err := h.db.FinishRound(round.ID, round.TotalScore()); err != nil {
		return err
	}
	h.logger.Printf("round_complete id=%s target=%d score=%d", round.ID, round.Target, round.TotalScore())

	score, err := h.db.SessionScore()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nExcellent work! Round score: %d. Session score: %d.\n\n", round.TotalScore(), score)
	return h.startRound(out)
}

func (h *host) startRound(out io.Writer) error {
	round := h.session.StartRound()

	if err := h.db.CreateRound(store.RoundRecord{
		ID:            round.ID,
		Target:        round.Target,
		Required:      round.Required,
		BrokenButtons: strings.Join(round.Broken, ""),
	}); err != nil {
		return err
	}
	h.logger.Printf("round_started id=%s target=%d broken=%q", round.ID, round.Target, strings.Join(round.Broken, ""))

	fmt.Fprintf(out, "\nTarget: %d\n", round.Target)
	if len(round.Broken) > 0 {
		fmt.Fprintf(out, "Broken buttons: %s\n", displayOps.Replace(strings.Join(round.Broken, " ")))
	}
	fmt.Fprintf(out, "Enter %d unique equations that equal %d.\n", round.Required, round.Target)
	return nil
}

func (h *host) farewell(out io.Writer) error {
	score, err := h.db.SessionScore()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Final session score: %d. Bye!\n", score)
	return nil
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, `Rules:
  1. Create unique equations that equal the target.
  2. Use +, -, * and /; parentheses are allowed.
  3. Equations that only reorder another one count as duplicates.
  4. Broken buttons cannot be used.
  5. More complex equations score higher.

Commands: new (fresh round), score (session score), quit.`)
}
