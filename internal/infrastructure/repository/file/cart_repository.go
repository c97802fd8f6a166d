package file

import (
	"context"
	"log/slog"
	"sync"

	"github.com/MangoMods-code/telegram-bot/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// CartRepository is a file-backed implementation of domain.CartRepository.
// A user's entry is created on first add and kept (empty) after checkout.
type CartRepository struct {
	mu     sync.Mutex
	path   string
	carts  map[string][]domain.Product
	tracer trace.Tracer
	logger *slog.Logger
}

// NewCartRepository loads cart state from path. Missing or corrupted
// files yield an empty store.
func NewCartRepository(path string, tracer trace.Tracer, logger *slog.Logger) *CartRepository {
	r := &CartRepository{
		path:   path,
		carts:  make(map[string][]domain.Product),
		tracer: tracer,
		logger: logger,
	}
	loadSnapshot(path, &r.carts, logger)
	if r.carts == nil {
		r.carts = make(map[string][]domain.Product)
	}
	return r
}

// Get returns the user's cart in insertion order, empty if none.
func (r *CartRepository) Get(ctx context.Context, userID string) ([]domain.Product, error) {
	_, span := r.tracer.Start(ctx, "CartRepository.Get")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	cart := r.carts[userID]
	out := make([]domain.Product, len(cart))
	copy(out, cart)

	span.SetAttributes(attribute.Int("cart.items", len(out)))
	return out, nil
}

// AddItem appends a snapshot of product to the user's cart and persists
// the full store.
func (r *CartRepository) AddItem(ctx context.Context, userID string, product domain.Product) error {
	ctx, span := r.tracer.Start(ctx, "CartRepository.AddItem")
	defer span.End()

	span.SetAttributes(attribute.Int64("product.id", product.ID))

	r.mu.Lock()
	defer r.mu.Unlock()

	r.carts[userID] = append(r.carts[userID], product)
	if err := saveSnapshot(r.path, r.carts); err != nil {
		span.RecordError(err)
		return err
	}

	r.logger.InfoContext(ctx, "Product added to cart",
		slog.String("user_id", userID),
		slog.String("product_name", product.Name),
		slog.Int("cart_size", len(r.carts[userID])),
	)
	return nil
}

// Clear resets the user's cart to an empty sequence. The mapping key
// stays in the file.
func (r *CartRepository) Clear(ctx context.Context, userID string) error {
	ctx, span := r.tracer.Start(ctx, "CartRepository.Clear")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.carts[userID] = []domain.Product{}
	if err := saveSnapshot(r.path, r.carts); err != nil {
		span.RecordError(err)
		return err
	}

	r.logger.InfoContext(ctx, "Cart cleared",
		slog.String("user_id", userID),
	)
	return nil
}
