package game

// Code is a machine-readable rejection reason. Hosts switch on codes to
// pick feedback messages; the engine never terminates a round on error.
type Code string

const (
	CodeSyntax            Code = "syntax_error"
	CodeMath              Code = "math_error"
	CodeValueMismatch     Code = "value_mismatch"
	CodeDuplicateEquation Code = "duplicate_equation"
	CodeBrokenButton      Code = "broken_button"
	CodeRoundComplete     Code = "round_complete"
)

// Error is the domain error type with structured metadata.
type Error struct {
	Code     Code              // Machine-readable rejection code
	Message  string            // Human-readable message for the host UI
	Metadata map[string]string // Additional context (offending buttons, values)
	Cause    error             // Wrapped underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// WithMetadata attaches context for the host and returns the error.
func (e *Error) WithMetadata(key, value string) *Error {
	if e.Metadata == nil {
		e.Metadata = make(map[string]string)
	}
	e.Metadata[key] = value
	return e
}

// CodeOf extracts the rejection code from an error chain, or "" when the
// error did not originate in this package.
func CodeOf(err error) Code {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return ""
		}
		err = u.Unwrap()
	}
	return ""
}
