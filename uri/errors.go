package uri

import (
	"errors"
	"fmt"

	"github.com/ghettovoice/urlparser/internal/errorutil"
	"github.com/ghettovoice/urlparser/internal/grammar"
	"github.com/ghettovoice/urlparser/internal/util"
)

// Error is a kind of parse failure.
type Error = grammar.Error

const (
	ErrInvalidEncoding  Error = "invalid encoding"
	ErrEmptyScheme      Error = "empty scheme"
	ErrInvalidHost      Error = "invalid host"
	ErrInvalidPort      Error = "invalid port"
	ErrInvalidCharacter Error = "invalid character"
	ErrTooLong          Error = "input too long"
)

var errKinds = []Error{
	ErrInvalidEncoding,
	ErrEmptyScheme,
	ErrInvalidHost,
	ErrInvalidPort,
	ErrInvalidCharacter,
	ErrTooLong,
}

// ErrorKind returns the kind of the parse failure err, or false if err is not a parse failure.
func ErrorKind(err error) (Error, bool) {
	if err == nil {
		return "", false
	}
	for _, k := range errKinds {
		if errors.Is(err, k) {
			return k, true
		}
	}
	return "", false
}

const maxErrInputLen = 128

// ParseError describes a failed parse: the input, the byte offset
// where the failure was detected and the wrapped error kind with details.
type ParseError struct {
	Input  string
	Offset int
	Err    error
}

func (e *ParseError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("parse %q: %v (at offset %d)", util.Ellipsis(e.Input, maxErrInputLen), e.Err, e.Offset)
}

func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newParseErr(input string, off int, kind Error, args ...any) error {
	return &ParseError{ //errtrace:skip
		Input:  input,
		Offset: off,
		Err:    errorutil.NewWrapperError(kind, args...),
	}
}
