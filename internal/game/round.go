package game

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/brokencalc/broken-calc-go/internal/expr"
)

// State tracks the round lifecycle. A round never leaves Complete; a new
// round is created to play again.
type State int

const (
	Active State = iota
	Complete
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// equality tolerance against the target, for equations with division
var epsilon = decimal.RequireFromString("0.000000001")

// Equation is an accepted submission. Immutable once accepted.
type Equation struct {
	Raw        string          `json:"raw"`
	Normalized string          `json:"normalized"`
	Canonical  string          `json:"canonical"`
	Value      decimal.Decimal `json:"value"`
	Score      int             `json:"score"`
}

// Round is one instance of gameplay: one target, one set of broken
// buttons, up to Required accepted equations. A Round belongs to a single
// session and is not safe for concurrent use.
type Round struct {
	ID       uuid.UUID
	Target   int
	Required int
	Broken   []string

	accepted     []Equation
	fingerprints []expr.Fingerprint
	totalScore   int
	state        State
}

// NewRound creates an Active round for the given target.
func NewRound(target, required int, broken []string) *Round {
	return &Round{
		ID:       uuid.New(),
		Target:   target,
		Required: required,
		Broken:   broken,
	}
}

// State returns the round lifecycle state.
func (r *Round) State() State {
	return r.state
}

// Accepted returns the accepted equations in submission order.
func (r *Round) Accepted() []Equation {
	return r.accepted
}

// TotalScore is the sum of accepted equation scores.
func (r *Round) TotalScore() int {
	return r.totalScore
}

// Submit validates a raw equation against the round. On success the
// equation is appended, scored, and returned; at Required accepted
// equations the round transitions to Complete. On failure the round stays
// Active and the returned error carries a rejection Code.
func (r *Round) Submit(raw string) (Equation, error) {
	if r.state == Complete {
		return Equation{}, New(CodeRoundComplete, "round is already complete")
	}

	parsed, err := expr.Parse(raw)
	if err != nil {
		return Equation{}, Wrap(CodeSyntax, "invalid equation: "+err.Error(), err)
	}

	normalized, err := expr.Normalize(raw)
	if err != nil {
		return Equation{}, Wrap(CodeSyntax, "invalid equation: "+err.Error(), err)
	}

	if used := usedBrokenButtons(normalized, r.Broken); len(used) > 0 {
		var cause error
		for _, b := range used {
			cause = multierr.Append(cause, fmt.Errorf("button %q is broken", b))
		}
		return Equation{}, Wrap(
			CodeBrokenButton,
			fmt.Sprintf("equation uses broken buttons: %s", strings.Join(used, " ")),
			cause,
		).WithMetadata("buttons", strings.Join(used, ""))
	}

	value, err := parsed.Eval()
	if err != nil {
		return Equation{}, Wrap(CodeMath, err.Error(), err)
	}

	target := decimal.NewFromInt(int64(r.Target))
	if value.Sub(target).Abs().GreaterThan(epsilon) {
		return Equation{}, New(
			CodeValueMismatch,
			fmt.Sprintf("result is %s, not %d", value, r.Target),
		).WithMetadata("value", value.String())
	}

	fp := expr.FingerprintOf(parsed)
	for i, prev := range r.fingerprints {
		if fp.Equal(prev) {
			return Equation{}, New(
				CodeDuplicateEquation,
				fmt.Sprintf("equivalent to already accepted %q", r.accepted[i].Raw),
			).WithMetadata("duplicate_of", r.accepted[i].Normalized)
		}
	}

	eq := Equation{
		Raw:        raw,
		Normalized: normalized,
		Canonical:  fp.Canonical,
		Value:      value,
		Score:      scoreEquation(fp, normalized),
	}
	r.accepted = append(r.accepted, eq)
	r.fingerprints = append(r.fingerprints, fp)
	r.totalScore += eq.Score

	if len(r.accepted) >= r.Required {
		r.state = Complete
	}
	return eq, nil
}
