package mediator

import "errors"

var (
	// ErrDuplicateHandler is returned by Register when a handler is already
	// bound to the request type. The existing binding is kept.
	ErrDuplicateHandler = errors.New("mediator: handler already registered")

	// ErrNoHandler is returned by Dispatch when no handler is bound to the
	// request type.
	ErrNoHandler = errors.New("mediator: no handler registered")

	// ErrValidation signals a malformed request payload. Handlers wrap it to
	// distinguish payload failures from store failures; the mediator itself
	// never returns it.
	ErrValidation = errors.New("mediator: validation failed")

	// ErrInvalidRequest is returned when a request or result value does not
	// match the type the handler was registered with.
	ErrInvalidRequest = errors.New("mediator: invalid request payload")
)
