package view

import (
	"errors"

	"github.com/mauv0809/nextpick/internal/client"
)

var (
	// ErrActionDisabled is returned when a command's control is not
	// available for the current snapshot. Nothing is sent.
	ErrActionDisabled = errors.New("this action is not available right now")
	// ErrCancelled is returned when the caller declines a confirmation.
	ErrCancelled = errors.New("cancelled")
)

// ValidationError is a form-level problem found before anything was sent.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return e.Err.Error() }

func (e *ValidationError) Unwrap() error { return e.Err }

// Describe turns a command error into the message shown to the user.
func Describe(err error) string {
	var (
		te *client.TransportError
		se *client.ServerError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &te):
		return "Error: could not reach the server."
	case errors.As(err, &se):
		return se.Message
	default:
		return err.Error()
	}
}
