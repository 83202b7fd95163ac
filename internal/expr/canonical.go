package expr

import (
	"maps"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Canonical renders the structural canonical form of an expression, used
// for duplicate detection. Operands of commutative chains (+ and *) are
// flattened and sorted so that reorderings collapse to one spelling, while
// - and / preserve operand order:
//
//	9+1+9  -> (1+9+9)
//	9+9+1  -> (1+9+9)
//	5*2+3  -> ((2*5)+3)
//	3+2*5  -> ((2*5)+3)
//	10-5   -> (10-5)
func Canonical(e Expr) string {
	return canonicalize(e)
}

func canonicalize(e Expr) string {
	switch n := e.(type) {
	case *literal:
		return canonicalLiteral(n.value)
	case *unary:
		return "(-" + canonicalize(n.child) + ")"
	case *binary:
		if n.op == OpAdd || n.op == OpMul {
			var operands []string
			collectChain(n, n.op, &operands)
			sort.Strings(operands)
			return "(" + strings.Join(operands, n.op.symbol()) + ")"
		}
		return "(" + canonicalize(n.left) + n.op.symbol() + canonicalize(n.right) + ")"
	}
	return ""
}

// collectChain flattens nested applications of the same commutative
// operator into a single operand list. Parentheses do not interrupt the
// chain; they are gone by parse time.
func collectChain(e Expr, op Op, operands *[]string) {
	if b, ok := e.(*binary); ok && b.op == op {
		collectChain(b.left, op, operands)
		collectChain(b.right, op, operands)
		return
	}
	*operands = append(*operands, canonicalize(e))
}

// canonicalLiteral strips insignificant fraction digits so that 2, 2. and
// 2.0 all canonicalize identically.
func canonicalLiteral(d decimal.Decimal) string {
	s := d.String()
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	if s == "" || s == "-" {
		return "0"
	}
	return s
}

// Fingerprint captures the structural identity of an equation: which
// numbers it uses, which operations it applies, and its canonical form.
// Two equations with equal fingerprints are the same equation up to
// commutative reordering and whitespace.
type Fingerprint struct {
	Operands  map[string]int
	Operators map[string]int
	Canonical string
}

// FingerprintOf walks the tree and tallies operands and operators.
func FingerprintOf(e Expr) Fingerprint {
	f := Fingerprint{
		Operands:  make(map[string]int),
		Operators: make(map[string]int),
		Canonical: Canonical(e),
	}
	tally(e, &f)
	return f
}

func tally(e Expr, f *Fingerprint) {
	switch n := e.(type) {
	case *literal:
		f.Operands[canonicalLiteral(n.value)]++
	case *unary:
		f.Operators[OpNeg.String()]++
		tally(n.child, f)
	case *binary:
		f.Operators[n.op.String()]++
		tally(n.left, f)
		tally(n.right, f)
	}
}

// Equal reports whether two fingerprints describe equivalent equations.
func (f Fingerprint) Equal(o Fingerprint) bool {
	return f.Canonical == o.Canonical &&
		maps.Equal(f.Operands, o.Operands) &&
		maps.Equal(f.Operators, o.Operators)
}
