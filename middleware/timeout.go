package middleware

import (
	"context"
	"time"

	mediator "github.com/fxsml/gomediator"
)

// Timeout bounds each dispatch to d. The deadline context reaches the
// handler, which observes cancellation at its suspension points; an expired
// dispatch returns context.DeadlineExceeded.
func Timeout(d time.Duration) mediator.Middleware {
	return func(next mediator.HandleFunc) mediator.HandleFunc {
		return func(ctx context.Context, req any) (any, error) {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()
			return next(ctx, req)
		}
	}
}
