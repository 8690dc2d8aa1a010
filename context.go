package mediator

import "context"

type ctxKey int

const (
	ctxKeyRequestType ctxKey = iota
	ctxKeyCorrelationID
)

// contextWithRequestType stores the resolved request type key in the context
// before handler invocation, making it available to middleware.
func contextWithRequestType(ctx context.Context, requestType string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestType, requestType)
}

// RequestTypeFromContext returns the request type key of the dispatch in
// flight. Only set inside Dispatch.
func RequestTypeFromContext(ctx context.Context) (string, bool) {
	rt, ok := ctx.Value(ctxKeyRequestType).(string)
	return rt, ok
}

// ContextWithCorrelationID returns a context carrying a correlation ID.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyCorrelationID, id)
}

// CorrelationIDFromContext returns the correlation ID, if any.
func CorrelationIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKeyCorrelationID).(string)
	return id, ok
}
