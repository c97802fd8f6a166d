package file

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/MangoMods-code/telegram-bot/internal/domain"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// CatalogRepository is a file-backed implementation of
// domain.CatalogRepository. The catalog is held in memory and rewritten
// wholesale to disk on every mutation; the mutex serializes the whole
// load-mutate-persist cycle so concurrent handlers cannot lose updates.
type CatalogRepository struct {
	mu       sync.Mutex
	path     string
	products []domain.Product
	tracer   trace.Tracer
	logger   *slog.Logger
}

// NewCatalogRepository loads the catalog from path. Missing or corrupted
// files yield an empty catalog.
func NewCatalogRepository(path string, tracer trace.Tracer, logger *slog.Logger) *CatalogRepository {
	r := &CatalogRepository{
		path:   path,
		tracer: tracer,
		logger: logger,
	}
	loadSnapshot(path, &r.products, logger)
	return r
}

// List returns all catalog products in stored order.
func (r *CatalogRepository) List(ctx context.Context) ([]domain.Product, error) {
	_, span := r.tracer.Start(ctx, "CatalogRepository.List")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Product, len(r.products))
	copy(out, r.products)

	span.SetAttributes(attribute.Int("product.count", len(out)))
	return out, nil
}

// FindByID returns the product with the given id.
func (r *CatalogRepository) FindByID(ctx context.Context, id int64) (domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "CatalogRepository.FindByID")
	defer span.End()

	span.SetAttributes(attribute.Int64("product.id", id))

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}

	span.RecordError(domain.ErrProductNotFound)
	span.SetStatus(codes.Error, "Product not found")
	r.logger.WarnContext(ctx, "Product not found",
		slog.Int64("product_id", id),
	)
	return domain.Product{}, domain.ErrProductNotFound
}

// Add assigns the next free id (max existing + 1, or 1 for an empty
// catalog), appends the product and persists the full catalog.
func (r *CatalogRepository) Add(ctx context.Context, name string, price decimal.Decimal, description, image, category string) (domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "CatalogRepository.Add")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	var maxID int64
	for _, p := range r.products {
		if p.ID > maxID {
			maxID = p.ID
		}
	}

	product := domain.Product{
		ID:          maxID + 1,
		Name:        name,
		Description: description,
		Price:       price,
		Image:       image,
		Category:    category,
	}
	if err := product.Validate(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Validation failed")
		return domain.Product{}, err
	}

	r.products = append(r.products, product)
	if err := saveSnapshot(r.path, r.products); err != nil {
		span.RecordError(err)
		return domain.Product{}, err
	}

	span.SetAttributes(attribute.Int64("product.id", product.ID))
	r.logger.InfoContext(ctx, "Product added to catalog",
		slog.Int64("product_id", product.ID),
		slog.String("product_name", product.Name),
	)
	return product, nil
}

// Remove deletes the first product with the given id and reports whether
// anything was removed. The catalog file is rewritten either way.
func (r *CatalogRepository) Remove(ctx context.Context, id int64) (bool, error) {
	ctx, span := r.tracer.Start(ctx, "CatalogRepository.Remove")
	defer span.End()

	span.SetAttributes(attribute.Int64("product.id", id))

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := false
	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			removed = true
			break
		}
	}

	if err := saveSnapshot(r.path, r.products); err != nil {
		span.RecordError(err)
		return removed, err
	}

	span.SetAttributes(attribute.Bool("product.removed", removed))
	r.logger.InfoContext(ctx, "Product removal",
		slog.Int64("product_id", id),
		slog.Bool("removed", removed),
	)
	return removed, nil
}

// Categories returns the sorted distinct category names. Products with
// no category count as "Uncategorized".
func (r *CatalogRepository) Categories(ctx context.Context) ([]string, error) {
	_, span := r.tracer.Start(ctx, "CatalogRepository.Categories")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]bool)
	for _, p := range r.products {
		cat := p.Category
		if cat == "" {
			cat = "Uncategorized"
		}
		seen[cat] = true
	}

	cats := make([]string, 0, len(seen))
	for cat := range seen {
		cats = append(cats, cat)
	}
	sort.Strings(cats)

	span.SetAttributes(attribute.Int("category.count", len(cats)))
	return cats, nil
}

// Search returns products whose name or description contains keyword,
// case-insensitively, in stored order.
func (r *CatalogRepository) Search(ctx context.Context, keyword string) ([]domain.Product, error) {
	_, span := r.tracer.Start(ctx, "CatalogRepository.Search")
	defer span.End()

	kw := strings.ToLower(keyword)

	r.mu.Lock()
	defer r.mu.Unlock()

	var matches []domain.Product
	for _, p := range r.products {
		if strings.Contains(strings.ToLower(p.Name), kw) ||
			strings.Contains(strings.ToLower(p.Description), kw) {
			matches = append(matches, p)
		}
	}

	span.SetAttributes(
		attribute.String("search.keyword", keyword),
		attribute.Int("search.matches", len(matches)),
	)
	return matches, nil
}
