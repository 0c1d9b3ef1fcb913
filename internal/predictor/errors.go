package predictor

import (
	"errors"
	"fmt"
)

// ErrUnavailable marks failures to obtain any reply from the model service
// (connection errors, non-2xx status, server-reported errors).
var ErrUnavailable = errors.New("predictor unavailable")

// StatusError reports a non-2xx response from the model service.
type StatusError struct {
	Backend string
	Status  int
	Body    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s http error: status %d: %s", e.Backend, e.Status, e.Body)
}

// StatusCode returns the upstream HTTP status.
func (e *StatusError) StatusCode() int { return e.Status }

func (e *StatusError) Unwrap() error { return ErrUnavailable }

// IsUnavailable reports whether err indicates the model service could not be reached
// or refused the request.
func IsUnavailable(err error) bool { return errors.Is(err, ErrUnavailable) }
