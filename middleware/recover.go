package middleware

import (
	"context"
	"fmt"
	"runtime/debug"

	mediator "github.com/fxsml/gomediator"
)

// RecoveryError wraps a panic value with the stack trace, converting panics
// into regular dispatch errors.
type RecoveryError struct {
	// PanicValue is the original value passed to panic().
	PanicValue any
	// StackTrace is the full stack trace at the point of panic.
	StackTrace string
}

func (e *RecoveryError) Error() string {
	return fmt.Sprintf("panic recovered: %v", e.PanicValue)
}

// Recover wraps dispatch with panic recovery. A panicking handler yields a
// *RecoveryError instead of crashing the caller.
func Recover() mediator.Middleware {
	return func(next mediator.HandleFunc) mediator.HandleFunc {
		return func(ctx context.Context, req any) (res any, err error) {
			defer func() {
				if r := recover(); r != nil {
					res = nil
					err = &RecoveryError{
						PanicValue: r,
						StackTrace: string(debug.Stack()),
					}
				}
			}()
			return next(ctx, req)
		}
	}
}
