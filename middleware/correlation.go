package middleware

import (
	"context"

	"github.com/google/uuid"

	mediator "github.com/fxsml/gomediator"
)

// Correlation ensures every dispatch carries a correlation ID in its
// context. An ID set by the boundary layer is preserved; otherwise a new
// UUID v4 is generated.
func Correlation() mediator.Middleware {
	return func(next mediator.HandleFunc) mediator.HandleFunc {
		return func(ctx context.Context, req any) (any, error) {
			if _, ok := mediator.CorrelationIDFromContext(ctx); !ok {
				ctx = mediator.ContextWithCorrelationID(ctx, uuid.NewString())
			}
			return next(ctx, req)
		}
	}
}
