package game

import (
	"math/rand"
	"strings"
)

// AllButtons is the calculator keypad. Broken buttons are always drawn
// from this set.
var AllButtons = []string{
	"0", "1", "2", "3", "4", "5", "6", "7", "8", "9",
	"+", "-", "*", "/", "(", ")",
}

const (
	smallTargetThreshold = 50
	maxGenerateAttempts  = 10
)

// GenerateBrokenButtons picks count buttons to break while keeping the
// target reachable with what remains. Buttons required for a trivial
// solution are never broken. If a draw turns out unsolvable the count is
// reduced and the draw retried, bounded at maxGenerateAttempts.
func GenerateBrokenButtons(rng *rand.Rand, target, count int) []string {
	return generateBrokenButtons(rng, target, count, 0)
}

func generateBrokenButtons(rng *rand.Rand, target, count, attempts int) []string {
	if count <= 0 || attempts >= maxGenerateAttempts {
		return nil
	}

	required := requiredWorkingButtons(target)
	var breakable []string
	for _, b := range AllButtons {
		if !required[b] {
			breakable = append(breakable, b)
		}
	}

	if count > len(breakable) {
		count = len(breakable)
	}
	broken := make([]string, 0, count)
	for _, i := range rng.Perm(len(breakable))[:count] {
		broken = append(broken, breakable[i])
	}

	if !ValidateSolvable(target, broken) {
		return generateBrokenButtons(rng, target, count-1, attempts+1)
	}
	return broken
}

// ValidateSolvable reports whether the target can reasonably be reached
// with the buttons left working, based on a rough reachability estimate.
func ValidateSolvable(target int, broken []string) bool {
	brokenSet := make(map[string]bool, len(broken))
	for _, b := range broken {
		brokenSet[b] = true
	}

	var digitValues []int
	var operators []string
	for _, b := range AllButtons {
		if brokenSet[b] {
			continue
		}
		switch {
		case b >= "0" && b <= "9":
			digitValues = append(digitValues, int(b[0]-'0'))
		case strings.Contains("+-*/", b):
			operators = append(operators, b)
		}
	}

	if len(digitValues) == 0 || len(operators) == 0 {
		return false
	}
	return estimateMaxReachable(digitValues, operators) >= target
}

// requiredWorkingButtons is the minimal keypad that keeps any target
// constructible: repeated addition of ones for small targets, doubling and
// addition above the threshold.
func requiredWorkingButtons(target int) map[string]bool {
	if target <= smallTargetThreshold {
		return map[string]bool{"1": true, "+": true}
	}
	return map[string]bool{"2": true, "*": true, "+": true}
}

// estimateMaxReachable gives a coarse upper bound of what the working
// digits and operators can produce within a short equation.
func estimateMaxReachable(digitValues []int, operators []string) int {
	maxDigit := 0
	sum := 0
	for _, d := range digitValues {
		if d > maxDigit {
			maxDigit = d
		}
		sum += d
	}

	estimate := maxDigit * 10

	hasPlus := false
	hasMul := false
	for _, op := range operators {
		switch op {
		case "+":
			hasPlus = true
		case "*":
			hasMul = true
		}
	}

	if hasPlus && sum*5 > estimate {
		estimate = sum * 5
	}
	if hasMul && len(digitValues) >= 2 && maxDigit*maxDigit > estimate {
		estimate = maxDigit * maxDigit
	}
	return estimate
}

// usedBrokenButtons scans a normalized equation for broken keypad symbols
// and returns each one it finds, in the order the round lists them.
func usedBrokenButtons(normalized string, broken []string) []string {
	var used []string
	for _, b := range broken {
		if strings.Contains(normalized, b) {
			used = append(used, b)
		}
	}
	return used
}
