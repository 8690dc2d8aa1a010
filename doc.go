// Package mediator routes typed requests to registered handlers.
//
// A request is either a command (mutates state, yields no result) or a
// query (reads state, yields a typed result). Each concrete request type
// is bound to exactly one handler, so callers dispatch requests without
// knowing which handler runs them.
//
// Core components:
//   - Mediator: type-keyed handler registry with a single Dispatch entry point
//   - NewCommandHandler/NewQueryHandler: typed handler constructors
//   - Middleware: cross-cutting dispatch behavior (see the middleware package)
//   - NamingStrategy: derives request type keys from Go types
//
// Handlers are registered during process initialization; once registration
// is complete, Dispatch is safe for concurrent use from any number of
// callers. The mediator is a pure routing layer: handler errors propagate
// to the caller unchanged and nothing is retried.
package mediator
