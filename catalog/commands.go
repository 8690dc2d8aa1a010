package catalog

import (
	"context"
	"fmt"

	mediator "github.com/fxsml/gomediator"
)

// AddProduct is the command to append a product to the catalog.
type AddProduct struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// HandlerConfig configures the catalog handlers.
type HandlerConfig struct {
	// Naming derives request type keys. Default: mediator.KebabNaming.
	Naming mediator.NamingStrategy

	// Validate rejects products with an empty name using
	// mediator.ErrValidation. Off by default: the catalog accepts any
	// payload, duplicates included.
	Validate bool
}

func (c HandlerConfig) parse() HandlerConfig {
	if c.Naming == nil {
		c.Naming = mediator.KebabNaming
	}
	return c
}

// AddProductHandler creates the command handler appending products to s.
// Duplicate commands produce duplicate records; no deduplication occurs.
func AddProductHandler(s Store, cfg HandlerConfig) mediator.Handler {
	cfg = cfg.parse()
	return mediator.NewCommandHandler(
		func(ctx context.Context, cmd AddProduct) error {
			if cfg.Validate && cmd.Name == "" {
				return fmt.Errorf("%w: product name required", mediator.ErrValidation)
			}
			return s.Add(ctx, Product{ID: cmd.ID, Name: cmd.Name})
		},
		cfg.Naming,
	)
}
