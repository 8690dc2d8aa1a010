package mediator

import "context"

// HandleFunc dispatches a request to its handler.
type HandleFunc func(ctx context.Context, req any) (any, error)

// Middleware wraps a HandleFunc with additional behavior.
// Middleware is configured on the Mediator and composed around each handler
// at registration time, so dispatch pays no per-call composition cost.
type Middleware func(next HandleFunc) HandleFunc

// chain composes middleware around fn. The first middleware is outermost.
func chain(fn HandleFunc, mw []Middleware) HandleFunc {
	for i := len(mw) - 1; i >= 0; i-- {
		fn = mw[i](fn)
	}
	return fn
}
