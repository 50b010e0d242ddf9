package httptools

import "github.com/ghettovoice/urlparser/internal/errorutil"

// Error is a parser failure class.
// All classes match [ErrParser] with [errors.Is].
type Error struct {
	msg string
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Is(target error) bool { return target == ErrParser || target == e } //nolint:errorlint

var (
	// ErrParser is the base class of all parser failures.
	ErrParser = &Error{"http parser error"}
	// ErrCallback reports a failed user callback.
	// It, [ErrInvalidStatus] and [ErrInvalidMethod] are reserved for request and status line
	// parsing, this package returns only [ErrInvalidURL].
	ErrCallback = &Error{"http parser callback error"}
	// ErrInvalidStatus reports a malformed status line.
	ErrInvalidStatus = &Error{"invalid status"}
	// ErrInvalidMethod reports an unknown request method.
	ErrInvalidMethod = &Error{"invalid method"}
	// ErrInvalidURL reports a request target that failed to parse.
	ErrInvalidURL = &Error{"invalid URL"}
)

// ErrNotImplemented is returned by accessors of components that are not exposed yet.
const ErrNotImplemented errorutil.Error = "not implemented"
