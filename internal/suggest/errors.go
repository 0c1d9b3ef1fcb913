package suggest

import (
	"errors"
	"fmt"
)

// ErrSessionClosed is returned by operations on a closed Session.
var ErrSessionClosed = errors.New("session closed")

// ErrInvalidWordCount is returned by NewGenerator for an out-of-range count.
var ErrInvalidWordCount = fmt.Errorf("word count must be between 1 and %d", MaxWordCount)

// invalidRequestError marks caller input that cannot be served (400 mapping).
type invalidRequestError struct{ msg string }

func (e invalidRequestError) Error() string { return "invalid request: " + e.msg }

// ErrInvalidRequest constructs a validation error.
func ErrInvalidRequest(msg string) error { return invalidRequestError{msg: msg} }

// IsInvalidRequest reports whether err is a validation error.
func IsInvalidRequest(err error) bool {
	var e invalidRequestError
	return errors.As(err, &e)
}
