package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	mediator "github.com/fxsml/gomediator"
)

func TestMetrics(t *testing.T) {
	t.Run("counts dispatches by outcome", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		fail := false
		m := newMediator([]mediator.Middleware{Metrics(reg, MetricsConfig{})},
			func(ctx context.Context, cmd PingCommand) error {
				if fail {
					return errors.New("nope")
				}
				return nil
			})

		ctx := context.Background()
		m.Send(ctx, PingCommand{})
		m.Send(ctx, PingCommand{})
		fail = true
		m.Send(ctx, PingCommand{})

		families, err := reg.Gather()
		if err != nil {
			t.Fatalf("Gather() error: %v", err)
		}

		var success, failure float64
		for _, mf := range families {
			if mf.GetName() != "mediator_dispatches_total" {
				continue
			}
			for _, metric := range mf.GetMetric() {
				var outcome string
				for _, label := range metric.GetLabel() {
					if label.GetName() == "outcome" {
						outcome = label.GetValue()
					}
				}
				switch outcome {
				case "success":
					success = metric.GetCounter().GetValue()
				case "failure":
					failure = metric.GetCounter().GetValue()
				}
			}
		}
		if success != 2 {
			t.Errorf("success count = %v, want 2", success)
		}
		if failure != 1 {
			t.Errorf("failure count = %v, want 1", failure)
		}
	})

	t.Run("observes latency per request type", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		m := newMediator([]mediator.Middleware{Metrics(reg, MetricsConfig{Namespace: "svc"})},
			func(ctx context.Context, cmd PingCommand) error { return nil })

		if err := m.Send(context.Background(), PingCommand{}); err != nil {
			t.Fatalf("Send() error: %v", err)
		}

		n, err := testutil.GatherAndCount(reg, "svc_dispatch_duration_seconds")
		if err != nil {
			t.Fatalf("GatherAndCount() error: %v", err)
		}
		if n != 1 {
			t.Errorf("duration series = %d, want 1", n)
		}
	})
}
