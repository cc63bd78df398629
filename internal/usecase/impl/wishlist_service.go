package impl

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/usecase"
)

// wishlistService implements the WishlistUsecase interface on an id array.
type wishlistService struct {
	mu      sync.Mutex
	store   repository.Store
	catalog repository.ProductCatalog
	logger  *slog.Logger
}

// NewWishlistService is the constructor for wishlistService.
func NewWishlistService(store repository.Store, catalog repository.ProductCatalog, logger *slog.Logger) usecase.WishlistUsecase {
	return &wishlistService{store: store, catalog: catalog, logger: logger}
}

func (srv *wishlistService) load(ctx context.Context) ([]int, error) {
	ids, err := readDocument[[]int](ctx, srv.store, deliverycontext.GetLoggerOrDefault(ctx, srv.logger), constants.KeyWishlist)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int{}
	}

	return ids, nil
}

func (srv *wishlistService) Toggle(ctx context.Context, productID int) (bool, error) {
	if _, ok := srv.catalog.GetByID(productID); !ok {
		return false, domainerrors.ErrProductNotFound
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()

	ids, err := srv.load(ctx)
	if err != nil {
		return false, err
	}

	added := false
	if idx := slices.Index(ids, productID); idx >= 0 {
		ids = slices.Delete(ids, idx, idx+1)
	} else {
		ids = append(ids, productID)
		added = true
	}

	if err := writeDocument(ctx, srv.store, constants.KeyWishlist, ids); err != nil {
		return false, errors.Wrap(err, "failed to save wishlist")
	}

	return added, nil
}

// Items resolves the saved ids against the catalog, skipping ids that no longer exist.
func (srv *wishlistService) Items(ctx context.Context) ([]entity.Product, error) {
	ids, err := srv.load(ctx)
	if err != nil {
		return nil, err
	}

	products := make([]entity.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := srv.catalog.GetByID(id); ok {
			products = append(products, *p)
		}
	}

	return products, nil
}

func (srv *wishlistService) Contains(ctx context.Context, productID int) (bool, error) {
	ids, err := srv.load(ctx)
	if err != nil {
		return false, err
	}

	return slices.Contains(ids, productID), nil
}
