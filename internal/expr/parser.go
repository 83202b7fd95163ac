package expr

import (
	"github.com/shopspring/decimal"
)

type outQueue struct {
	q []Expr
}

func (o *outQueue) pop() Expr {
	e := o.q[len(o.q)-1]
	o.q = o.q[:len(o.q)-1]
	return e
}

func (o *outQueue) push(e Expr) {
	o.q = append(o.q, e)
}

func (o *outQueue) size() int {
	return len(o.q)
}

type opKind int

const (
	opBinary opKind = iota
	opUnary
	opLeftParen
)

type operator struct {
	kind      opKind
	op        Op
	prec      int
	leftAssoc bool
	card      int
	pos       int
}

type opStack struct {
	s []operator
}

func (o *opStack) pop() operator {
	op := o.s[len(o.s)-1]
	o.s = o.s[:len(o.s)-1]
	return op
}

func (o *opStack) push(op operator) {
	o.s = append(o.s, op)
}

func (o *opStack) size() int {
	return len(o.s)
}

func (o *opStack) top() operator {
	return o.s[len(o.s)-1]
}

var binaryOps = map[TokenType]operator{
	TokPlus:  {kind: opBinary, op: OpAdd, prec: 2, leftAssoc: true, card: 2},
	TokMinus: {kind: opBinary, op: OpSub, prec: 2, leftAssoc: true, card: 2},
	TokStar:  {kind: opBinary, op: OpMul, prec: 3, leftAssoc: true, card: 2},
	TokSlash: {kind: opBinary, op: OpDiv, prec: 3, leftAssoc: true, card: 2},
}

// negate binds tighter than the binary operators, like a prefixed factor.
var negateOp = operator{kind: opUnary, op: OpNeg, prec: 4, card: 1}

func reduce(output *outQueue, stack *opStack) error {
	op := stack.pop()
	if output.size() < op.card {
		return syntaxErrorf(op.pos, "operator %q is missing an operand", op.op.symbol())
	}
	switch op.kind {
	case opUnary:
		output.push(&unary{child: output.pop()})
	default:
		right := output.pop()
		left := output.pop()
		output.push(&binary{op: op.op, left: left, right: right})
	}
	return nil
}

// Parse compiles keypad input into an Expr. It accepts numeric literals,
// the four binary operators, unary minus and parentheses. Unary plus is
// rejected, matching the calculator's keypad semantics.
func Parse(input string) (Expr, error) {
	toks, err := NewLexer(input).Tokens()
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, &SyntaxError{Pos: -1, Msg: "empty equation"}
	}

	output := outQueue{}
	stack := opStack{}
	expectOperand := true

	for _, t := range toks {
		switch t.Type {
		case TokNumber:
			if !expectOperand {
				return nil, syntaxErrorf(t.Pos, "unexpected number %q", t.Value)
			}
			value, err := decimal.NewFromString(t.Value)
			if err != nil {
				return nil, syntaxErrorf(t.Pos, "bad number %q", t.Value)
			}
			output.push(&literal{text: t.Value, value: value})
			expectOperand = false

		case TokPlus, TokMinus, TokStar, TokSlash:
			if expectOperand {
				switch t.Type {
				case TokMinus:
					neg := negateOp
					neg.pos = t.Pos
					stack.push(neg)
				case TokPlus:
					return nil, syntaxErrorf(t.Pos, "unary plus is not allowed")
				default:
					return nil, syntaxErrorf(t.Pos, "unexpected operator %q", t.Value)
				}
				continue
			}
			op1 := binaryOps[t.Type]
			op1.pos = t.Pos
			for stack.size() > 0 {
				op2 := stack.top()
				if op2.kind == opLeftParen {
					break
				}
				if op2.prec > op1.prec || (op2.prec == op1.prec && op1.leftAssoc) {
					if err := reduce(&output, &stack); err != nil {
						return nil, err
					}
					continue
				}
				break
			}
			stack.push(op1)
			expectOperand = true

		case TokLParen:
			if !expectOperand {
				return nil, syntaxErrorf(t.Pos, "unexpected opening parenthesis")
			}
			stack.push(operator{kind: opLeftParen, pos: t.Pos})

		case TokRParen:
			if expectOperand {
				return nil, syntaxErrorf(t.Pos, "unexpected closing parenthesis")
			}
			for stack.size() > 0 && stack.top().kind != opLeftParen {
				if err := reduce(&output, &stack); err != nil {
					return nil, err
				}
			}
			if stack.size() == 0 {
				return nil, syntaxErrorf(t.Pos, "mismatched parenthesis")
			}
			stack.pop()
		}
	}

	if expectOperand {
		last := toks[len(toks)-1]
		return nil, syntaxErrorf(last.Pos, "unexpected end of equation after %q", last.Value)
	}

	for stack.size() > 0 {
		if stack.top().kind == opLeftParen {
			return nil, syntaxErrorf(stack.top().pos, "mismatched parenthesis")
		}
		if err := reduce(&output, &stack); err != nil {
			return nil, err
		}
	}

	if output.size() != 1 {
		return nil, &SyntaxError{Pos: -1, Msg: "malformed equation"}
	}
	return output.pop(), nil
}
