package expr

import (
	"errors"
	"fmt"
)

// ErrorKind classifies evaluation failures.
type ErrorKind string

const (
	KindSyntax           ErrorKind = "syntax_error"
	KindDivisionByZero   ErrorKind = "division_by_zero"
	KindInvalidFactorial ErrorKind = "invalid_factorial"
	KindNonFiniteResult  ErrorKind = "non_finite_result"
	KindDomain           ErrorKind = "domain_error"
)

// Error is returned for every evaluation failure.
type Error struct {
	Kind   ErrorKind
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// Is reports whether target is an *Error of the same kind, so the sentinel
// values below match any detailed error of their kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrSyntax           = &Error{Kind: KindSyntax}
	ErrDivisionByZero   = &Error{Kind: KindDivisionByZero}
	ErrInvalidFactorial = &Error{Kind: KindInvalidFactorial}
	ErrNonFiniteResult  = &Error{Kind: KindNonFiniteResult}
	ErrDomain           = &Error{Kind: KindDomain}
)

func newError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// KindOf extracts the ErrorKind from err.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
