package mediator

import (
	"context"
	"fmt"
	"reflect"
)

// Handler processes requests of a single request type.
type Handler interface {
	// RequestType returns the type key this handler is bound to.
	RequestType() string

	// NewInput creates a new request instance for unmarshaling payloads.
	NewInput() any

	// Handle processes a request. Queries return a result; commands return nil.
	Handle(ctx context.Context, req any) (any, error)
}

// commandHandler wraps a typed command function.
type commandHandler[C any] struct {
	requestType string
	fn          func(ctx context.Context, cmd C) error
}

// NewCommandHandler creates a handler for command type C.
// Commands represent mutations and produce no result; dispatch yields only
// success or failure. NamingStrategy derives the request type key from C.
func NewCommandHandler[C any](
	fn func(ctx context.Context, cmd C) error,
	naming NamingStrategy,
) Handler {
	var zero C
	return &commandHandler[C]{
		requestType: naming.TypeName(reflect.TypeOf(zero)),
		fn:          fn,
	}
}

func (h *commandHandler[C]) RequestType() string {
	return h.requestType
}

func (h *commandHandler[C]) NewInput() any {
	return new(C)
}

func (h *commandHandler[C]) Handle(ctx context.Context, req any) (any, error) {
	cmd, err := assertRequest[C](req)
	if err != nil {
		return nil, err
	}
	return nil, h.fn(ctx, cmd)
}

// queryHandler wraps a typed query function.
type queryHandler[Q, R any] struct {
	requestType string
	fn          func(ctx context.Context, q Q) (R, error)
}

// NewQueryHandler creates a handler for query type Q returning R.
// Queries represent pure reads; the handler result flows back through
// Dispatch to the caller.
func NewQueryHandler[Q, R any](
	fn func(ctx context.Context, q Q) (R, error),
	naming NamingStrategy,
) Handler {
	var zero Q
	return &queryHandler[Q, R]{
		requestType: naming.TypeName(reflect.TypeOf(zero)),
		fn:          fn,
	}
}

func (h *queryHandler[Q, R]) RequestType() string {
	return h.requestType
}

func (h *queryHandler[Q, R]) NewInput() any {
	return new(Q)
}

func (h *queryHandler[Q, R]) Handle(ctx context.Context, req any) (any, error) {
	q, err := assertRequest[Q](req)
	if err != nil {
		return nil, err
	}
	res, err := h.fn(ctx, q)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// assertRequest accepts both values and pointers, matching how boundary
// layers construct requests via NewInput.
func assertRequest[T any](req any) (T, error) {
	switch v := req.(type) {
	case *T:
		return *v, nil
	case T:
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("%w: got %T", ErrInvalidRequest, req)
}

// Verify handlers implement Handler.
var (
	_ Handler = (*commandHandler[any])(nil)
	_ Handler = (*queryHandler[any, any])(nil)
)
