package file

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MangoMods-code/telegram-bot/internal/domain"
)

func newOrders(t *testing.T) (*OrderRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orders_data.json")
	return NewOrderRepository(path, testTracer(), testLogger()), path
}

func TestOrdersGroupedByPurchase(t *testing.T) {
	ctx := context.Background()
	repo, _ := newOrders(t)

	first := []domain.Product{mangoProduct()}
	second := []domain.Product{mangoProduct(), mangoProduct()}

	require.NoError(t, repo.Append(ctx, "42", first))
	require.NoError(t, repo.Append(ctx, "42", second))

	orders, err := repo.Get(ctx, "42")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Len(t, orders[0], 1)
	assert.Len(t, orders[1], 2)
	assert.True(t, domain.Total(orders[1]).Equal(decimal.NewFromFloat(10.00)))
}

func TestOrdersAll(t *testing.T) {
	ctx := context.Background()
	repo, _ := newOrders(t)

	require.NoError(t, repo.Append(ctx, "42", []domain.Product{mangoProduct()}))
	require.NoError(t, repo.Append(ctx, "99", []domain.Product{mangoProduct()}))

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Len(t, all["42"], 1)
	assert.Len(t, all["99"], 1)
}

func TestOrdersPersistLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, path := newOrders(t)

	require.NoError(t, repo.Append(ctx, "42", []domain.Product{mangoProduct()}))

	want, err := repo.Get(ctx, "42")
	require.NoError(t, err)

	reloaded := NewOrderRepository(path, testTracer(), testLogger())
	got, err := reloaded.Get(ctx, "42")
	require.NoError(t, err)

	if diff := cmp.Diff(want, got, decimalComparer); diff != "" {
		t.Errorf("reloaded orders mismatch (-want +got):\n%s", diff)
	}
}

func TestOrdersAppendCopiesInput(t *testing.T) {
	ctx := context.Background()
	repo, _ := newOrders(t)

	items := []domain.Product{mangoProduct()}
	require.NoError(t, repo.Append(ctx, "42", items))

	// Mutating the caller's slice must not reach the stored order.
	items[0].Name = "Changed"

	orders, err := repo.Get(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, "Mango", orders[0][0].Name)
}
