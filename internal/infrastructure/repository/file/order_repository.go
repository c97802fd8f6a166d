package file

import (
	"context"
	"log/slog"
	"sync"

	"github.com/MangoMods-code/telegram-bot/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// OrderRepository is a file-backed implementation of
// domain.OrderRepository. Each user maps to a list of orders, each order
// being the product snapshots purchased together. Orders are appended,
// never mutated or removed.
type OrderRepository struct {
	mu     sync.Mutex
	path   string
	orders map[string][][]domain.Product
	tracer trace.Tracer
	logger *slog.Logger
}

// NewOrderRepository loads order history from path. Missing or corrupted
// files yield an empty store.
func NewOrderRepository(path string, tracer trace.Tracer, logger *slog.Logger) *OrderRepository {
	r := &OrderRepository{
		path:   path,
		orders: make(map[string][][]domain.Product),
		tracer: tracer,
		logger: logger,
	}
	loadSnapshot(path, &r.orders, logger)
	if r.orders == nil {
		r.orders = make(map[string][][]domain.Product)
	}
	return r
}

// Get returns the user's orders, oldest first.
func (r *OrderRepository) Get(ctx context.Context, userID string) ([][]domain.Product, error) {
	_, span := r.tracer.Start(ctx, "OrderRepository.Get")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	orders := r.orders[userID]
	out := make([][]domain.Product, len(orders))
	for i, order := range orders {
		out[i] = append([]domain.Product(nil), order...)
	}

	span.SetAttributes(attribute.Int("order.count", len(out)))
	return out, nil
}

// All returns the complete order history of every user.
func (r *OrderRepository) All(ctx context.Context) (map[string][][]domain.Product, error) {
	_, span := r.tracer.Start(ctx, "OrderRepository.All")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string][][]domain.Product, len(r.orders))
	for userID, orders := range r.orders {
		copied := make([][]domain.Product, len(orders))
		for i, order := range orders {
			copied[i] = append([]domain.Product(nil), order...)
		}
		out[userID] = copied
	}

	span.SetAttributes(attribute.Int("user.count", len(out)))
	return out, nil
}

// Append records a completed purchase and persists the full store.
func (r *OrderRepository) Append(ctx context.Context, userID string, items []domain.Product) error {
	ctx, span := r.tracer.Start(ctx, "OrderRepository.Append")
	defer span.End()

	order := append([]domain.Product(nil), items...)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders[userID] = append(r.orders[userID], order)
	if err := saveSnapshot(r.path, r.orders); err != nil {
		span.RecordError(err)
		return err
	}

	span.SetAttributes(attribute.Int("order.items", len(order)))
	r.logger.InfoContext(ctx, "Order recorded",
		slog.String("user_id", userID),
		slog.Int("items", len(order)),
	)
	return nil
}
