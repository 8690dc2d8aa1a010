package catalog

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	mediator "github.com/fxsml/gomediator"
	"github.com/fxsml/gomediator/store"
)

func newCatalog(t *testing.T, seed ...Product) (*mediator.Mediator, *store.Memory[Product]) {
	t.Helper()
	s := store.NewMemory(seed...)
	m := mediator.New(mediator.Config{Logger: mediator.NopLogger{}})
	m.MustRegister(AddProductHandler(s, HandlerConfig{}))
	m.MustRegister(GetProductsHandler(s, HandlerConfig{}))
	return m, s
}

func TestCatalog_RoundTrip(t *testing.T) {
	m, _ := newCatalog(t)
	ctx := context.Background()

	if err := m.Send(ctx, AddProduct{ID: 1, Name: "Widget"}); err != nil {
		t.Fatalf("Send() error: %v", err)
	}

	got, err := mediator.Request[[]Product](ctx, m, GetProducts{})
	if err != nil {
		t.Fatalf("Request() error: %v", err)
	}
	if len(got) != 1 || got[0] != (Product{ID: 1, Name: "Widget"}) {
		t.Errorf("products = %+v, want the added record", got)
	}
}

func TestCatalog_ReadIdempotence(t *testing.T) {
	m, _ := newCatalog(t, Product{ID: 1, Name: "a"}, Product{ID: 2, Name: "b"})
	ctx := context.Background()

	first, err := mediator.Request[[]Product](ctx, m, GetProducts{})
	if err != nil {
		t.Fatalf("Request() error: %v", err)
	}
	second, err := mediator.Request[[]Product](ctx, m, GetProducts{})
	if err != nil {
		t.Fatalf("Request() error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated queries differ: %+v vs %+v", first, second)
	}
}

func TestCatalog_SnapshotIsolation(t *testing.T) {
	m, _ := newCatalog(t, Product{ID: 1, Name: "original"})
	ctx := context.Background()

	got, err := mediator.Request[[]Product](ctx, m, GetProducts{})
	if err != nil {
		t.Fatalf("Request() error: %v", err)
	}
	got[0].Name = "tampered"

	again, err := mediator.Request[[]Product](ctx, m, GetProducts{})
	if err != nil {
		t.Fatalf("Request() error: %v", err)
	}
	if again[0].Name != "original" {
		t.Errorf("stored record = %+v, want unmodified original", again[0])
	}
}

func TestCatalog_DuplicateCommands(t *testing.T) {
	m, s := newCatalog(t)
	ctx := context.Background()

	cmd := AddProduct{ID: 9, Name: "Same"}
	if err := m.Send(ctx, cmd); err != nil {
		t.Fatalf("Send() error: %v", err)
	}
	if err := m.Send(ctx, cmd); err != nil {
		t.Fatalf("Send() error: %v", err)
	}

	if s.Len() != 2 {
		t.Errorf("store length = %d, want 2 duplicate appends", s.Len())
	}
}

func TestCatalog_Validation(t *testing.T) {
	t.Run("permissive by default", func(t *testing.T) {
		m, _ := newCatalog(t)

		if err := m.Send(context.Background(), AddProduct{ID: 1}); err != nil {
			t.Errorf("Send() error = %v, want nil for empty name", err)
		}
	})

	t.Run("rejects empty name when enabled", func(t *testing.T) {
		s := store.NewMemory[Product]()
		m := mediator.New(mediator.Config{Logger: mediator.NopLogger{}})
		m.MustRegister(AddProductHandler(s, HandlerConfig{Validate: true}))

		err := m.Send(context.Background(), AddProduct{ID: 1})
		if !errors.Is(err, mediator.ErrValidation) {
			t.Fatalf("Send() error = %v, want ErrValidation", err)
		}
		if s.Len() != 0 {
			t.Errorf("store length = %d, want 0 after rejected command", s.Len())
		}
	})
}

func TestCatalog_ConcurrentCommands(t *testing.T) {
	seed := []Product{{ID: 1, Name: "seeded"}}
	m, s := newCatalog(t, seed...)
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := range n {
		go func(i int) {
			defer wg.Done()
			if err := m.Send(ctx, AddProduct{ID: 100 + i, Name: "p"}); err != nil {
				t.Errorf("Send() error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	got, err := mediator.Request[[]Product](ctx, m, GetProducts{})
	if err != nil {
		t.Fatalf("Request() error: %v", err)
	}
	if len(got) != len(seed)+n {
		t.Fatalf("len(products) = %d, want %d", len(got), len(seed)+n)
	}

	seen := make(map[int]bool, len(got))
	for _, p := range got {
		seen[p.ID] = true
	}
	for i := range n {
		if !seen[100+i] {
			t.Errorf("product %d missing after concurrent commands", 100+i)
		}
	}
	if s.Len() != len(seed)+n {
		t.Errorf("store length = %d, want %d", s.Len(), len(seed)+n)
	}
}

func TestCatalog_SeededScenario(t *testing.T) {
	m, _ := newCatalog(t,
		Product{ID: 1, Name: "Test Product 1"},
		Product{ID: 2, Name: "Test Product 2"},
		Product{ID: 3, Name: "Test Product 3"},
	)
	ctx := context.Background()

	if err := m.Send(ctx, AddProduct{ID: 4, Name: "Widget"}); err != nil {
		t.Fatalf("Send() error: %v", err)
	}

	got, err := mediator.Request[[]Product](ctx, m, GetProducts{})
	if err != nil {
		t.Fatalf("Request() error: %v", err)
	}

	want := []Product{
		{ID: 1, Name: "Test Product 1"},
		{ID: 2, Name: "Test Product 2"},
		{ID: 3, Name: "Test Product 3"},
		{ID: 4, Name: "Widget"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("products = %+v, want %+v", got, want)
	}
}

// Both store backends satisfy the handler contract.
var (
	_ Store = (*store.Memory[Product])(nil)
	_ Store = (*store.Redis[Product])(nil)
)
