package client

import (
	"errors"
	"fmt"
)

// TransportError means the request never produced an HTTP response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: could not reach the server: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServerError is a non-2xx answer. Message is the response body as sent.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return e.Message
}

// IsConflict reports whether the server refused the action because the
// round is in the wrong state.
func IsConflict(err error) bool {
	var se *ServerError
	return errors.As(err, &se) && se.StatusCode == 409
}
