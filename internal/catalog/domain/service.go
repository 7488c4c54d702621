package domain

import "context"

// Service serves the read-only reference data the storefront needs to build an order.
type Service interface {
	ListStores(ctx context.Context) ([]Store, error)
	ListCategories(ctx context.Context) ([]Category, error)
	ListProducts(ctx context.Context) ([]Product, error)
	ListCharges(ctx context.Context) ([]Charge, error)
}
