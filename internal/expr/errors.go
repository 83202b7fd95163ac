package expr

import "fmt"

// SyntaxError reports malformed input. Pos is the byte offset of the
// offending token, or -1 when the whole input is at fault.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	if e.Pos < 0 {
		return e.Msg
	}
	return fmt.Sprintf("%s at position %d", e.Msg, e.Pos)
}

func syntaxErrorf(pos int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// MathError reports an undefined arithmetic operation, i.e. division by
// zero. The round stays playable; the submission is simply rejected.
type MathError struct {
	Msg string
}

func (e *MathError) Error() string {
	return e.Msg
}
