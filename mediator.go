package mediator

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
)

// Config configures a Mediator.
type Config struct {
	// Naming derives request type keys from Go types. Default: KebabNaming.
	Naming NamingStrategy

	// Middleware wraps every dispatch, outermost first.
	Middleware []Middleware

	// Logger for registration diagnostics. Default: slog.Default().
	Logger Logger
}

type entry struct {
	handler Handler
	invoke  HandleFunc
}

// Mediator routes requests to their registered handlers.
//
// Registration happens once during process initialization, before any
// dispatch. After that the registry is read-only and Dispatch may be called
// concurrently from any number of goroutines.
type Mediator struct {
	mu      sync.RWMutex
	entries map[string]entry
	naming  NamingStrategy
	mw      []Middleware
	logger  Logger
}

// New creates a Mediator with the given configuration.
func New(cfg Config) *Mediator {
	naming := cfg.Naming
	if naming == nil {
		naming = KebabNaming
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Mediator{
		entries: make(map[string]entry),
		naming:  naming,
		mw:      cfg.Middleware,
		logger:  logger,
	}
}

// Register binds a handler to its request type.
// Returns ErrDuplicateHandler if the type is already bound; the existing
// binding is kept and the new handler is discarded.
func (m *Mediator) Register(h Handler) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	requestType := h.RequestType()
	if _, ok := m.entries[requestType]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateHandler, requestType)
	}
	m.entries[requestType] = entry{
		handler: h,
		invoke:  chain(h.Handle, m.mw),
	}
	m.logger.Debug("Registered handler", "type", requestType)
	return nil
}

// MustRegister is like Register but panics on error.
// Use during process initialization where a duplicate binding is fatal.
func (m *Mediator) MustRegister(h Handler) {
	if err := m.Register(h); err != nil {
		panic(err)
	}
}

// Dispatch routes a request to the handler bound to its concrete type and
// returns the handler's result (nil for commands).
//
// Returns ErrNoHandler if no binding exists. Handler errors propagate
// unchanged; Dispatch never wraps, swallows, or retries them. A canceled
// context aborts before the handler runs.
func (m *Mediator) Dispatch(ctx context.Context, req any) (any, error) {
	requestType := m.requestType(req)

	m.mu.RLock()
	e, ok := m.entries[requestType]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoHandler, requestType)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx = contextWithRequestType(ctx, requestType)
	return e.invoke(ctx, req)
}

// Send dispatches a command, discarding any result.
func (m *Mediator) Send(ctx context.Context, cmd any) error {
	_, err := m.Dispatch(ctx, cmd)
	return err
}

// NewInput creates a request instance for the given type key, for boundary
// layers unmarshaling wire payloads. Returns nil if no handler is bound.
func (m *Mediator) NewInput(requestType string) any {
	m.mu.RLock()
	e, ok := m.entries[requestType]
	m.mu.RUnlock()
	if !ok {
		return nil
	}
	return e.handler.NewInput()
}

// RequestTypes returns the registered type keys in no particular order.
func (m *Mediator) RequestTypes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	types := make([]string, 0, len(m.entries))
	for rt := range m.entries {
		types = append(types, rt)
	}
	return types
}

// requestType derives the type key for a request instance.
// Pointers are dereferenced so *AddProduct and AddProduct share a binding.
func (m *Mediator) requestType(req any) string {
	t := reflect.TypeOf(req)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return m.naming.TypeName(t)
}

// Request dispatches req through m and asserts the result to R.
// Use for queries where the caller needs the typed result:
//
//	products, err := mediator.Request[[]catalog.Product](ctx, m, catalog.GetProducts{})
func Request[R any](ctx context.Context, m *Mediator, req any) (R, error) {
	var zero R
	res, err := m.Dispatch(ctx, req)
	if err != nil {
		return zero, err
	}
	r, ok := res.(R)
	if !ok {
		return zero, fmt.Errorf("mediator: unexpected result type %T", res)
	}
	return r, nil
}
