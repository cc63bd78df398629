package impl

import (
	"context"
	"log/slog"
	"sync"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/usecase"
)

// cartService implements the CartUsecase interface. The cart lives only in
// the store; every call reads it back, so writes from another process sharing
// the store are picked up on the next call.
type cartService struct {
	mu      sync.Mutex
	store   repository.Store
	catalog repository.ProductCatalog
	metrics service.MetricsRecorder
	logger  *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(
	store repository.Store,
	catalog repository.ProductCatalog,
	metrics service.MetricsRecorder,
	logger *slog.Logger,
) usecase.CartUsecase {
	return &cartService{
		store:   store,
		catalog: catalog,
		metrics: metrics,
		logger:  logger,
	}
}

func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// load reads the persisted cart. Data that breaks the cart invariants is
// treated like undecodable data: discarded and read as empty.
func (srv *cartService) load(ctx context.Context) (*entity.Cart, error) {
	items, err := readDocument[[]entity.CartLineItem](ctx, srv.store, srv.log(ctx), constants.KeyCart)
	if err != nil {
		return nil, err
	}

	cart, err := entity.NewCart(items)
	if err != nil {
		discardDocument(ctx, srv.store, srv.log(ctx), constants.KeyCart, err)

		return &entity.Cart{Items: []entity.CartLineItem{}}, nil
	}
	if cart.Items == nil {
		cart.Items = []entity.CartLineItem{}
	}

	return cart, nil
}

func (srv *cartService) save(ctx context.Context, cart *entity.Cart) error {
	return writeDocument(ctx, srv.store, constants.KeyCart, cart.Items)
}

// mutate runs fn on the loaded cart and persists the result.
func (srv *cartService) mutate(ctx context.Context, command string, fn func(*entity.Cart) error) (*entity.CartSummary, error) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	cart, err := srv.load(ctx)
	if err != nil {
		return nil, err
	}

	if err := fn(cart); err != nil {
		return nil, err
	}

	if err := srv.save(ctx, cart); err != nil {
		return nil, errors.Wrapf(err, "failed to persist cart after %s", command)
	}
	srv.metrics.CartMutation(command)

	summary := cart.Summary()

	srv.log(ctx).Debug("Cart updated",
		slog.String("command", command),
		slog.Int("itemCount", summary.ItemCount),
		slog.Int64("total", summary.Total),
	)

	return &summary, nil
}

// AddItem adds quantity units of the catalog product.
func (srv *cartService) AddItem(ctx context.Context, productID, quantity int) (*entity.CartSummary, error) {
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return nil, domainerrors.ErrInvalidQuantity.WithDetails("quantity must be positive")
	}

	product, ok := srv.catalog.GetByID(productID)
	if !ok {
		return nil, domainerrors.ErrProductNotFound
	}

	return srv.mutate(ctx, usecase.AddItemCommand{}.CommandName(), func(cart *entity.Cart) error {
		return quantityError(cart.Add(product, quantity))
	})
}

func quantityError(err error) error {
	if errors.Is(err, entity.ErrCartOutOfRange) {
		return domainerrors.ErrInvalidQuantity.WithDetails(err.Error())
	}

	return err
}

// RemoveItem drops the product's line.
func (srv *cartService) RemoveItem(ctx context.Context, productID int) (*entity.CartSummary, error) {
	return srv.mutate(ctx, usecase.RemoveItemCommand{}.CommandName(), func(cart *entity.Cart) error {
		cart.Remove(productID)

		return nil
	})
}

// UpdateQuantity sets the quantity of the product's line.
func (srv *cartService) UpdateQuantity(ctx context.Context, productID, quantity int) (*entity.CartSummary, error) {
	return srv.mutate(ctx, usecase.UpdateQuantityCommand{}.CommandName(), func(cart *entity.Cart) error {
		_, err := cart.SetQuantity(productID, quantity)

		return quantityError(err)
	})
}

// Clear empties the cart.
func (srv *cartService) Clear(ctx context.Context) error {
	_, err := srv.mutate(ctx, usecase.ClearCartCommand{}.CommandName(), func(cart *entity.Cart) error {
		cart.Clear()

		return nil
	})

	return err
}

// RemoveOrdered takes an order's lines out of the cart.
func (srv *cartService) RemoveOrdered(ctx context.Context, ordered []entity.CartLineItem) error {
	_, err := srv.mutate(ctx, "checkout", func(cart *entity.Cart) error {
		cart.RemoveOrdered(ordered)

		return nil
	})

	return err
}

// Apply dispatches a cart command.
func (srv *cartService) Apply(ctx context.Context, cmd usecase.CartCommand) (*entity.CartSummary, error) {
	switch c := cmd.(type) {
	case usecase.AddItemCommand:
		return srv.AddItem(ctx, c.ProductID, c.Quantity)
	case usecase.RemoveItemCommand:
		return srv.RemoveItem(ctx, c.ProductID)
	case usecase.UpdateQuantityCommand:
		return srv.UpdateQuantity(ctx, c.ProductID, c.Quantity)
	case usecase.ClearCartCommand:
		if err := srv.Clear(ctx); err != nil {
			return nil, err
		}

		return srv.Summary(ctx)
	default:
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown cart command")
	}
}

// Items returns the cart lines in insertion order.
func (srv *cartService) Items(ctx context.Context) ([]entity.CartLineItem, error) {
	summary, err := srv.Summary(ctx)
	if err != nil {
		return nil, err
	}

	return summary.Items, nil
}

// Total returns the cart subtotal.
func (srv *cartService) Total(ctx context.Context) (int64, error) {
	summary, err := srv.Summary(ctx)
	if err != nil {
		return 0, err
	}

	return summary.Total, nil
}

// ItemCount returns the number of units in the cart.
func (srv *cartService) ItemCount(ctx context.Context) (int, error) {
	summary, err := srv.Summary(ctx)
	if err != nil {
		return 0, err
	}

	return summary.ItemCount, nil
}

// Summary returns items, count, total and formatted total.
func (srv *cartService) Summary(ctx context.Context) (*entity.CartSummary, error) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	cart, err := srv.load(ctx)
	if err != nil {
		return nil, err
	}
	summary := cart.Summary()

	return &summary, nil
}
