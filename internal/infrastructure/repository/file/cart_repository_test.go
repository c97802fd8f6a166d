package file

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MangoMods-code/telegram-bot/internal/domain"
)

func newCart(t *testing.T) (*CartRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cart_data.json")
	return NewCartRepository(path, testTracer(), testLogger()), path
}

func mangoProduct() domain.Product {
	return domain.Product{
		ID:          1,
		Name:        "Mango",
		Description: "Fresh mango",
		Price:       decimal.NewFromFloat(5.00),
		Image:       "mango.jpg",
		Category:    "Fruit",
	}
}

func TestCartAddAndGet(t *testing.T) {
	ctx := context.Background()
	repo, _ := newCart(t)

	require.NoError(t, repo.AddItem(ctx, "42", mangoProduct()))
	require.NoError(t, repo.AddItem(ctx, "42", mangoProduct()))

	cart, err := repo.Get(ctx, "42")
	require.NoError(t, err)
	require.Len(t, cart, 2)
	assert.True(t, domain.Total(cart).Equal(decimal.NewFromFloat(10.00)))

	other, err := repo.Get(ctx, "99")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestCartHoldsSnapshotsNotReferences(t *testing.T) {
	ctx := context.Background()
	repo, _ := newCart(t)

	product := mangoProduct()
	require.NoError(t, repo.AddItem(ctx, "42", product))

	// A later price change must not affect the captured snapshot.
	product.Price = decimal.NewFromFloat(9.99)

	cart, err := repo.Get(ctx, "42")
	require.NoError(t, err)
	assert.True(t, cart[0].Price.Equal(decimal.NewFromFloat(5.00)))
}

func TestCartClearKeepsEntry(t *testing.T) {
	ctx := context.Background()
	repo, path := newCart(t)

	require.NoError(t, repo.AddItem(ctx, "42", mangoProduct()))
	require.NoError(t, repo.Clear(ctx, "42"))

	cart, err := repo.Get(ctx, "42")
	require.NoError(t, err)
	assert.Empty(t, cart)

	// The cleared entry stays in the persisted mapping as an empty list.
	reloaded := NewCartRepository(path, testTracer(), testLogger())
	reloaded.mu.Lock()
	_, exists := reloaded.carts["42"]
	reloaded.mu.Unlock()
	assert.True(t, exists)
}

func TestCartPersistLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, path := newCart(t)

	p := mangoProduct()
	require.NoError(t, repo.AddItem(ctx, "42", p))
	p.ID, p.Name = 2, "Kiwi"
	require.NoError(t, repo.AddItem(ctx, "42", p))

	want, err := repo.Get(ctx, "42")
	require.NoError(t, err)

	reloaded := NewCartRepository(path, testTracer(), testLogger())
	got, err := reloaded.Get(ctx, "42")
	require.NoError(t, err)

	if diff := cmp.Diff(want, got, decimalComparer); diff != "" {
		t.Errorf("reloaded cart mismatch (-want +got):\n%s", diff)
	}
}

func TestCartConcurrentAddsLoseNothing(t *testing.T) {
	ctx := context.Background()
	repo, _ := newCart(t)

	const adds = 20
	var wg sync.WaitGroup
	for i := range adds {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p := mangoProduct()
			p.ID = int64(i + 1)
			p.Name = fmt.Sprintf("Product %d", i+1)
			assert.NoError(t, repo.AddItem(ctx, "42", p))
		}()
	}
	wg.Wait()

	cart, err := repo.Get(ctx, "42")
	require.NoError(t, err)
	assert.Len(t, cart, adds)
}
