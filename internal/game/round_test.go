package game

import (
	"errors"
	"testing"
)

func newTestRound(target int, broken ...string) *Round {
	return NewRound(target, 5, broken)
}

func TestSubmitAcceptsDistinctEquations(t *testing.T) {
	r := newTestRound(10)

	eq, err := r.Submit("4+6")
	if err != nil {
		t.Fatalf("Submit(4+6) returned error: %v", err)
	}
	if eq.Normalized != "4+6" {
		t.Errorf("Normalized = %q, want %q", eq.Normalized, "4+6")
	}
	if eq.Score <= 0 {
		t.Errorf("Score = %d, want > 0", eq.Score)
	}

	if _, err := r.Submit("2*5"); err != nil {
		t.Fatalf("Submit(2*5) returned error: %v", err)
	}

	if got := len(r.Accepted()); got != 2 {
		t.Fatalf("len(Accepted) = %d, want 2", got)
	}
	if r.State() != Active {
		t.Errorf("State = %v, want Active", r.State())
	}
}

func TestSubmitRejectsDuplicates(t *testing.T) {
	r := newTestRound(10)
	if _, err := r.Submit("4+6"); err != nil {
		t.Fatalf("Submit(4+6) returned error: %v", err)
	}

	cases := []struct {
		input string
		why   string
	}{
		{"4+6", "exact resubmission"},
		{"4 + 6", "whitespace variant"},
		{"6+4", "commutative reordering"},
		{"(4+6)", "parenthesized variant"},
	}
	for _, tc := range cases {
		_, err := r.Submit(tc.input)
		if CodeOf(err) != CodeDuplicateEquation {
			t.Errorf("Submit(%q) (%s): code = %q, want %q", tc.input, tc.why, CodeOf(err), CodeDuplicateEquation)
		}
	}

	// same value, different equation: accepted
	if _, err := r.Submit("20/2"); err != nil {
		t.Errorf("Submit(20/2) returned error: %v", err)
	}
}

func TestSubmitErrorCodes(t *testing.T) {
	r := newTestRound(10)

	cases := []struct {
		input string
		want  Code
	}{
		{"", CodeSyntax},
		{"2++", CodeSyntax},
		{"(3+2", CodeSyntax},
		{"2+abc", CodeSyntax},
		{"5/0", CodeMath},
		{"10/(5-5)", CodeMath},
		{"3+3", CodeValueMismatch},
		{"2*50", CodeValueMismatch},
	}

	for _, tc := range cases {
		_, err := r.Submit(tc.input)
		if err == nil {
			t.Errorf("Submit(%q) succeeded, want code %q", tc.input, tc.want)
			continue
		}
		if got := CodeOf(err); got != tc.want {
			t.Errorf("Submit(%q) code = %q, want %q", tc.input, got, tc.want)
		}
	}

	if r.State() != Active {
		t.Errorf("rejections must leave the round Active, got %v", r.State())
	}
	if len(r.Accepted()) != 0 {
		t.Errorf("rejections must not append equations, got %d", len(r.Accepted()))
	}
}

func TestSubmitRejectsBrokenButtons(t *testing.T) {
	r := newTestRound(10, "7", "*")

	_, err := r.Submit("7+3")
	if CodeOf(err) != CodeBrokenButton {
		t.Fatalf("Submit(7+3) code = %q, want %q", CodeOf(err), CodeBrokenButton)
	}

	_, err = r.Submit("7 * 2 - 4") // both broken buttons at once
	var domainErr *Error
	if !errors.As(err, &domainErr) {
		t.Fatalf("Submit error = %T, want *Error", err)
	}
	if domainErr.Code != CodeBrokenButton {
		t.Fatalf("code = %q, want %q", domainErr.Code, CodeBrokenButton)
	}
	if domainErr.Metadata["buttons"] != "7*" {
		t.Errorf("buttons metadata = %q, want %q", domainErr.Metadata["buttons"], "7*")
	}

	// working buttons still accepted
	if _, err := r.Submit("4+6"); err != nil {
		t.Errorf("Submit(4+6) returned error: %v", err)
	}
}

func TestRoundCompletesAtRequiredCount(t *testing.T) {
	r := newTestRound(10)

	equations := []string{"4+6", "2*5", "20/2", "12-2", "1+9"}
	for _, eq := range equations {
		if _, err := r.Submit(eq); err != nil {
			t.Fatalf("Submit(%q) returned error: %v", eq, err)
		}
	}

	if r.State() != Complete {
		t.Fatalf("State = %v after %d equations, want Complete", r.State(), len(equations))
	}

	_, err := r.Submit("5+5")
	if CodeOf(err) != CodeRoundComplete {
		t.Errorf("Submit on complete round: code = %q, want %q", CodeOf(err), CodeRoundComplete)
	}
	if len(r.Accepted()) != len(equations) {
		t.Errorf("len(Accepted) = %d, want %d", len(r.Accepted()), len(equations))
	}

	wantTotal := 0
	for _, eq := range r.Accepted() {
		wantTotal += eq.Score
	}
	if r.TotalScore() != wantTotal {
		t.Errorf("TotalScore = %d, want %d", r.TotalScore(), wantTotal)
	}
}

func TestSubmitPreservesInsertionOrder(t *testing.T) {
	r := newTestRound(10)

	inputs := []string{"4+6", "2*5", "20/2"}
	for _, in := range inputs {
		if _, err := r.Submit(in); err != nil {
			t.Fatalf("Submit(%q) returned error: %v", in, err)
		}
	}

	for i, eq := range r.Accepted() {
		if eq.Raw != inputs[i] {
			t.Errorf("Accepted[%d].Raw = %q, want %q", i, eq.Raw, inputs[i])
		}
	}
}

func TestSubmitToleratesDivisionRounding(t *testing.T) {
	// 10/3*3 is 10 only within tolerance of the decimal division precision.
	r := newTestRound(10)
	if _, err := r.Submit("10/3*3"); err != nil {
		t.Fatalf("Submit(10/3*3) returned error: %v", err)
	}
}
