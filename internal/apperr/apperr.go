// Package apperr defines the error taxonomy shared by services and the HTTP layer.
package apperr

import "errors"

// Sentinel kinds. Services wrap these with a caller-facing message via New;
// the HTTP layer classifies with errors.Is to pick a status code.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrValidation   = errors.New("invalid request")
)

// Error pairs a sentinel kind with a message safe to return to the client.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

// New wraps kind with a client-facing message.
func New(kind error, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}
