// Package middleware provides cross-cutting dispatch behavior for the
// mediator: panic recovery, per-dispatch timeouts, correlation IDs,
// structured logging, and Prometheus metrics.
//
// Middleware composes around every registered handler:
//
//	m := mediator.New(mediator.Config{
//	    Middleware: []mediator.Middleware{
//	        middleware.Recover(),
//	        middleware.Correlation(),
//	        middleware.Logging(logger),
//	        middleware.Timeout(5 * time.Second),
//	    },
//	})
package middleware
