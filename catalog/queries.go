package catalog

import (
	"context"

	mediator "github.com/fxsml/gomediator"
)

// GetProducts is the query returning all stored products. It carries no
// payload.
type GetProducts struct{}

// GetProductsHandler creates the query handler returning a snapshot of s.
// The result is a copy; callers may mutate it freely.
func GetProductsHandler(s Store, cfg HandlerConfig) mediator.Handler {
	cfg = cfg.parse()
	return mediator.NewQueryHandler(
		func(ctx context.Context, _ GetProducts) ([]Product, error) {
			return s.List(ctx)
		},
		cfg.Naming,
	)
}
