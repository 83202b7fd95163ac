package game

import (
	"strings"

	"github.com/brokencalc/broken-calc-go/internal/expr"
)

// Complexity scoring: every accepted equation is worth a base amount,
// each operator past the first adds a bonus, and using parentheses adds
// one more. "1+9" scores the base; "(2+3)*2" scores noticeably higher.
const (
	baseScore        = 10
	operatorBonus    = 5
	parenthesesBonus = 5
)

func scoreEquation(fp expr.Fingerprint, normalized string) int {
	operators := 0
	for _, n := range fp.Operators {
		operators += n
	}

	score := baseScore
	if operators > 1 {
		score += operatorBonus * (operators - 1)
	}
	if strings.Contains(normalized, "(") {
		score += parenthesesBonus
	}
	return score
}
