package expr

import "github.com/shopspring/decimal"

// Op identifies an arithmetic operation.
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpNeg
)

func (o Op) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpNeg:
		return "neg"
	default:
		return "?"
	}
}

// symbol is the keypad spelling of the operation.
func (o Op) symbol() string {
	if o == OpNeg {
		return "-"
	}
	return o.String()
}

// An Expr is a parsed equation that can be evaluated. Evaluation uses
// decimal arithmetic so that keypad equations compare exactly against
// integer targets.
type Expr interface {
	Eval() (decimal.Decimal, error)
}

type literal struct {
	text  string
	value decimal.Decimal
}

func (e *literal) Eval() (decimal.Decimal, error) {
	return e.value, nil
}

type unary struct {
	child Expr
}

func (e *unary) Eval() (decimal.Decimal, error) {
	v, err := e.child.Eval()
	if err != nil {
		return decimal.Decimal{}, err
	}
	return v.Neg(), nil
}

type binary struct {
	op          Op
	left, right Expr
}

func (e *binary) Eval() (decimal.Decimal, error) {
	l, err := e.left.Eval()
	if err != nil {
		return decimal.Decimal{}, err
	}
	r, err := e.right.Eval()
	if err != nil {
		return decimal.Decimal{}, err
	}
	switch e.op {
	case OpAdd:
		return l.Add(r), nil
	case OpSub:
		return l.Sub(r), nil
	case OpMul:
		return l.Mul(r), nil
	case OpDiv:
		if r.IsZero() {
			return decimal.Decimal{}, &MathError{Msg: "division by zero"}
		}
		return l.Div(r), nil
	}
	return decimal.Decimal{}, &MathError{Msg: "unsupported operation " + e.op.String()}
}

// Normalize returns the canonical whitespace-free spelling of the input:
// token texts joined without separators. Parenthesization and operand order
// are preserved; only spacing differences collapse. Normalize is idempotent
// for any input it accepts.
func Normalize(input string) (string, error) {
	toks, err := NewLexer(input).Tokens()
	if err != nil {
		return "", err
	}
	if len(toks) == 0 {
		return "", &SyntaxError{Pos: -1, Msg: "empty equation"}
	}
	var b []byte
	for _, t := range toks {
		b = append(b, t.Value...)
	}
	return string(b), nil
}
