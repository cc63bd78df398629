package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// WishlistUsecase defines the interface for the saved-products list.
type WishlistUsecase interface {
	// Toggle adds the product when absent and removes it otherwise. It reports whether it was added.
	Toggle(ctx context.Context, productID int) (bool, error)
	Items(ctx context.Context) ([]entity.Product, error)
	Contains(ctx context.Context, productID int) (bool, error)
}
