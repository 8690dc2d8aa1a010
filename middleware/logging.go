package middleware

import (
	"context"
	"time"

	mediator "github.com/fxsml/gomediator"
)

// Logging logs every dispatch with its request type, duration, and outcome.
// Successes log at debug level, failures at error level.
func Logging(logger mediator.Logger) mediator.Middleware {
	return func(next mediator.HandleFunc) mediator.HandleFunc {
		return func(ctx context.Context, req any) (any, error) {
			start := time.Now()
			res, err := next(ctx, req)

			requestType, _ := mediator.RequestTypeFromContext(ctx)
			args := []any{"type", requestType, "duration", time.Since(start)}
			if corr, ok := mediator.CorrelationIDFromContext(ctx); ok {
				args = append(args, "correlationid", corr)
			}

			if err != nil {
				logger.Error("Failed to dispatch request", append(args, "error", err)...)
			} else {
				logger.Debug("Dispatched request", args...)
			}
			return res, err
		}
	}
}
