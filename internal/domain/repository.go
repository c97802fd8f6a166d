package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// CatalogRepository defines the contract for product storage.
type CatalogRepository interface {
	List(ctx context.Context) ([]Product, error)
	FindByID(ctx context.Context, id int64) (Product, error)
	Add(ctx context.Context, name string, price decimal.Decimal, description, image, category string) (Product, error)
	Remove(ctx context.Context, id int64) (bool, error)
	Categories(ctx context.Context) ([]string, error)
	Search(ctx context.Context, keyword string) ([]Product, error)
}

// CartRepository maps a user to the ordered product snapshots they have
// selected but not yet purchased.
type CartRepository interface {
	Get(ctx context.Context, userID string) ([]Product, error)
	AddItem(ctx context.Context, userID string, product Product) error
	Clear(ctx context.Context, userID string) error
}

// OrderRepository maps a user to their purchase history, one inner slice
// per completed order. Append-only.
type OrderRepository interface {
	Get(ctx context.Context, userID string) ([][]Product, error)
	All(ctx context.Context) (map[string][][]Product, error)
	Append(ctx context.Context, userID string, items []Product) error
}

// PurchaseLogger appends human-readable purchase and payment records.
type PurchaseLogger interface {
	LogPurchase(ctx context.Context, userID string, items []Product) error
	LogPayment(ctx context.Context, notificationID, payerEmail string, amount decimal.Decimal, userID string) error
}

// BackupRunner mirrors the persisted store files into a fresh
// timestamped directory.
type BackupRunner interface {
	Run(ctx context.Context) error
}
