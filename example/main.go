// Example: product catalog service backed by the mediator.
//
// Run: go run ./example
//
// Add a product:
//
//	curl -X POST http://localhost:8080/requests \
//	  -H "Content-Type: application/json" \
//	  -H "Ce-Id: 123" \
//	  -H "Ce-Type: add.product" \
//	  -H "Ce-Source: /curl" \
//	  -H "Ce-Specversion: 1.0" \
//	  -d '{"id": 4, "name": "Widget"}'
//
// List products:
//
//	curl http://localhost:8080/products
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	mediator "github.com/fxsml/gomediator"
	"github.com/fxsml/gomediator/catalog"
	"github.com/fxsml/gomediator/config"
	"github.com/fxsml/gomediator/httpapi"
	"github.com/fxsml/gomediator/middleware"
	"github.com/fxsml/gomediator/store"
)

type appConfig struct {
	Server struct {
		Addr            string        `yaml:"addr"`
		ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	} `yaml:"server"`
	Store struct {
		Backend   string `yaml:"backend"` // "memory" or "redis"
		RedisAddr string `yaml:"redisAddr"`
		RedisKey  string `yaml:"redisKey"`
	} `yaml:"store"`
	Dispatch struct {
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"dispatch"`
}

func defaultConfig() appConfig {
	var cfg appConfig
	cfg.Server.Addr = ":8080"
	cfg.Server.ShutdownTimeout = 10 * time.Second
	cfg.Store.Backend = "memory"
	cfg.Store.RedisAddr = "localhost:6379"
	cfg.Store.RedisKey = "catalog:products"
	cfg.Dispatch.Timeout = 30 * time.Second
	return cfg
}

var seedProducts = []catalog.Product{
	{ID: 1, Name: "Test Product 1"},
	{ID: 2, Name: "Test Product 2"},
	{ID: 3, Name: "Test Product 3"},
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg := defaultConfig()
	if err := config.LoadFile(*configPath, "", &cfg); err != nil {
		logger.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	products, err := newStore(cfg)
	if err != nil {
		logger.Error("Failed to create store", "error", err)
		os.Exit(1)
	}

	m := mediator.New(mediator.Config{
		Logger: logger,
		Middleware: []mediator.Middleware{
			middleware.Recover(),
			middleware.Correlation(),
			middleware.Metrics(prometheus.DefaultRegisterer, middleware.MetricsConfig{Namespace: "catalog"}),
			middleware.Logging(logger),
			middleware.Timeout(cfg.Dispatch.Timeout),
		},
	})
	m.MustRegister(catalog.AddProductHandler(products, catalog.HandlerConfig{}))
	m.MustRegister(catalog.GetProductsHandler(products, catalog.HandlerConfig{}))

	mux := http.NewServeMux()
	mux.Handle("POST /requests", httpapi.NewHandler(m, httpapi.Config{
		Source:          "/product-catalog",
		DispatchTimeout: cfg.Dispatch.Timeout,
		Logger:          logger,
	}))
	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		list, err := mediator.Request[[]catalog.Product](r.Context(), m, catalog.GetProducts{})
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(list)
	})
	mux.HandleFunc("POST /products", func(w http.ResponseWriter, r *http.Request) {
		var cmd catalog.AddProduct
		if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := m.Send(r.Context(), cmd); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusCreated)
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Server starting", "addr", cfg.Server.Addr, "store", cfg.Store.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}

// newStore builds the configured backend, seeding the in-memory store with
// sample products.
func newStore(cfg appConfig) (catalog.Store, error) {
	switch cfg.Store.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.Store.RedisAddr})
		return store.NewRedis[catalog.Product](client, store.RedisConfig{Key: cfg.Store.RedisKey}), nil
	case "memory", "":
		return store.NewMemory(seedProducts...), nil
	default:
		return nil, errors.New("unknown store backend: " + cfg.Store.Backend)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, mediator.ErrNoHandler):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, mediator.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, store.ErrUnavailable):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
