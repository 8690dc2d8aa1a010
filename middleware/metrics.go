package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	mediator "github.com/fxsml/gomediator"
)

// MetricsConfig configures dispatch metrics collection.
type MetricsConfig struct {
	// Namespace prefixes metric names. Default: "mediator".
	Namespace string
}

// Metrics records dispatch counts and latencies per request type.
// The collectors are registered on reg; pass prometheus.DefaultRegisterer
// for the process-wide registry. Registering twice on the same registry
// panics, so build the middleware once at initialization.
func Metrics(reg prometheus.Registerer, cfg MetricsConfig) mediator.Middleware {
	ns := cfg.Namespace
	if ns == "" {
		ns = "mediator"
	}

	dispatches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns,
		Name:      "dispatches_total",
		Help:      "Dispatched requests by request type and outcome.",
	}, []string{"type", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: ns,
		Name:      "dispatch_duration_seconds",
		Help:      "Dispatch latency by request type.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"type"})
	reg.MustRegister(dispatches, duration)

	return func(next mediator.HandleFunc) mediator.HandleFunc {
		return func(ctx context.Context, req any) (any, error) {
			requestType, _ := mediator.RequestTypeFromContext(ctx)
			start := time.Now()
			res, err := next(ctx, req)

			duration.WithLabelValues(requestType).Observe(time.Since(start).Seconds())
			dispatches.WithLabelValues(requestType, outcome(err)).Inc()
			return res, err
		}
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "failure"
	}
}
