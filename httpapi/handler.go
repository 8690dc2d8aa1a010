// Package httpapi exposes a mediator over HTTP using the CloudEvents
// protocol binding. The event type selects the request type, the event data
// carries the JSON payload. Commands answer 201 Created; queries answer 200
// with a structured-mode result event.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/google/uuid"

	mediator "github.com/fxsml/gomediator"
	"github.com/fxsml/gomediator/store"
)

// ContentTypeCloudEventsJSON is the structured-mode CloudEvents content type.
const ContentTypeCloudEventsJSON = "application/cloudevents+json"

// extCorrelationID is the CloudEvents extension carrying the correlation ID.
const extCorrelationID = "correlationid"

// Config configures the HTTP handler.
type Config struct {
	// Source is the CloudEvents source set on result events.
	// Default: "/mediator".
	Source string

	// DispatchTimeout bounds each dispatch. Default: 30s.
	DispatchTimeout time.Duration

	// Logger for request diagnostics. Default: slog.Default().
	Logger mediator.Logger
}

func (c Config) parse() Config {
	if c.Source == "" {
		c.Source = "/mediator"
	}
	if c.DispatchTimeout <= 0 {
		c.DispatchTimeout = 30 * time.Second
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// Handler accepts CloudEvents over HTTP (binary or structured mode) and
// dispatches them as mediator requests. Implements http.Handler for use with
// standard library routing:
//
//	mux := http.NewServeMux()
//	mux.Handle("POST /requests", httpapi.NewHandler(m, httpapi.Config{}))
type Handler struct {
	m   *mediator.Mediator
	cfg Config
}

// NewHandler creates the HTTP boundary for m.
func NewHandler(m *mediator.Mediator, cfg Config) *Handler {
	return &Handler{m: m, cfg: cfg.parse()}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	event, err := cloudevents.NewEventFromHTTPRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	req := h.m.NewInput(event.Type())
	if req == nil {
		http.Error(w, mediator.ErrNoHandler.Error()+": "+event.Type(), http.StatusNotFound)
		return
	}
	if data := event.Data(); len(data) > 0 {
		if err := json.Unmarshal(data, req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.DispatchTimeout)
	defer cancel()
	if corr, ok := event.Extensions()[extCorrelationID].(string); ok && corr != "" {
		ctx = mediator.ContextWithCorrelationID(ctx, corr)
	}

	res, err := h.m.Dispatch(ctx, req)
	if err != nil {
		h.writeError(w, event.Type(), err)
		return
	}

	if res == nil {
		w.WriteHeader(http.StatusCreated)
		return
	}
	h.writeResult(w, event, res)
}

// writeResult answers a query with a structured-mode result event.
func (h *Handler) writeResult(w http.ResponseWriter, in *cloudevents.Event, res any) {
	out := cloudevents.NewEvent()
	out.SetID(uuid.NewString())
	out.SetType(in.Type() + ".result")
	out.SetSource(h.cfg.Source)
	out.SetTime(time.Now().UTC())
	if corr, ok := in.Extensions()[extCorrelationID].(string); ok && corr != "" {
		out.SetExtension(extCorrelationID, corr)
	}
	if err := out.SetData(cloudevents.ApplicationJSON, res); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	body, err := json.Marshal(out)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", ContentTypeCloudEventsJSON)
	w.Write(body)
}

func (h *Handler) writeError(w http.ResponseWriter, requestType string, err error) {
	h.cfg.Logger.Error("Failed to dispatch request", "type", requestType, "error", err)
	switch {
	case errors.Is(err, mediator.ErrNoHandler):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, mediator.ErrValidation), errors.Is(err, mediator.ErrInvalidRequest):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, store.ErrUnavailable):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		http.Error(w, err.Error(), http.StatusRequestTimeout)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
