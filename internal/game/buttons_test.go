package game

import (
	"math/rand"
	"testing"
)

func TestGenerateBrokenButtonsKeepsRequiredWorking(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 200; i++ {
		target := 10 + rng.Intn(90)
		broken := GenerateBrokenButtons(rng, target, 3)

		required := requiredWorkingButtons(target)
		for _, b := range broken {
			if required[b] {
				t.Fatalf("target %d: required button %q was broken (broken=%v)", target, b, broken)
			}
		}
		if !ValidateSolvable(target, broken) {
			t.Fatalf("target %d: unsolvable broken set %v", target, broken)
		}
		if len(broken) > 3 {
			t.Fatalf("target %d: broke %d buttons, want at most 3", target, len(broken))
		}
	}
}

func TestGenerateBrokenButtonsDeterministic(t *testing.T) {
	a := GenerateBrokenButtons(rand.New(rand.NewSource(7)), 42, 3)
	b := GenerateBrokenButtons(rand.New(rand.NewSource(7)), 42, 3)

	if len(a) != len(b) {
		t.Fatalf("draws differ in length: %v vs %v", a, b)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("draws differ under the same seed: %v vs %v", a, b)
		}
	}
}

func TestGenerateBrokenButtonsZeroCount(t *testing.T) {
	if got := GenerateBrokenButtons(rand.New(rand.NewSource(1)), 42, 0); got != nil {
		t.Errorf("GenerateBrokenButtons(count=0) = %v, want nil", got)
	}
}

func TestValidateSolvable(t *testing.T) {
	allDigits := []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}

	cases := []struct {
		name   string
		target int
		broken []string
		want   bool
	}{
		{"nothing broken", 42, nil, true},
		{"all digits broken", 10, allDigits, false},
		{"all operators broken", 10, []string{"+", "-", "*", "/"}, false},
		{"plenty left", 30, []string{"9", "8", "/"}, true},
	}

	for _, tc := range cases {
		if got := ValidateSolvable(tc.target, tc.broken); got != tc.want {
			t.Errorf("%s: ValidateSolvable(%d, %v) = %v, want %v", tc.name, tc.target, tc.broken, got, tc.want)
		}
	}
}

func TestUsedBrokenButtons(t *testing.T) {
	broken := []string{"7", "*", "("}

	cases := []struct {
		normalized string
		want       int
	}{
		{"4+6", 0},
		{"7+3", 1},
		{"7*2-4", 2},
		{"(7*2)-4", 3},
	}

	for _, tc := range cases {
		if got := usedBrokenButtons(tc.normalized, broken); len(got) != tc.want {
			t.Errorf("usedBrokenButtons(%q) = %v, want %d hits", tc.normalized, got, tc.want)
		}
	}
}
