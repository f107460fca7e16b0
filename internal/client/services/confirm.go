package services

import (
	"context"
	"errors"
)

var (
	// ErrConfirmationDeclined is returned by Remove when the user says no.
	// No request is sent and no message is recorded.
	ErrConfirmationDeclined = errors.New("confirmation declined")

	// ErrBusy is returned when a mutation is requested while another one
	// is still in flight.
	ErrBusy = errors.New("another operation is in progress")

	// ErrUnknownField is returned by SetField for names the form lacks.
	ErrUnknownField = errors.New("unknown form field")

	// ErrImmutableField is returned when changing a field that is fixed
	// after creation.
	ErrImmutableField = errors.New("field cannot be changed")
)

// Confirmer asks the user a yes/no question before a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool { return f(ctx, prompt) }

func confirmed(ctx context.Context, c Confirmer, prompt string) bool {
	if c == nil {
		return false
	}
	return c.Confirm(ctx, prompt)
}
