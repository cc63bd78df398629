// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// --- Cart commands ---

// CartCommand is one shopper action on the cart, decoupled from the page that triggered it.
type CartCommand interface {
	CommandName() string
}

// AddItemCommand adds quantity units of a product.
type AddItemCommand struct {
	ProductID int
	Quantity  int
}

// RemoveItemCommand drops a product's line.
type RemoveItemCommand struct {
	ProductID int
}

// UpdateQuantityCommand sets a line's quantity; zero or less removes it.
type UpdateQuantityCommand struct {
	ProductID int
	Quantity  int
}

// ClearCartCommand empties the cart.
type ClearCartCommand struct{}

func (AddItemCommand) CommandName() string        { return "add" }
func (RemoveItemCommand) CommandName() string     { return "remove" }
func (UpdateQuantityCommand) CommandName() string { return "update" }
func (ClearCartCommand) CommandName() string      { return "clear" }

// CartUsecase defines the interface for the shopping cart.
// Every mutation is persisted before it returns.
type CartUsecase interface {
	// AddItem increments the product's line or appends a new one. A zero
	// quantity means one unit.
	AddItem(ctx context.Context, productID, quantity int) (*entity.CartSummary, error)

	// RemoveItem drops the product's line; a missing line is not an error.
	RemoveItem(ctx context.Context, productID int) (*entity.CartSummary, error)

	// UpdateQuantity sets the quantity of an existing line.
	UpdateQuantity(ctx context.Context, productID, quantity int) (*entity.CartSummary, error)

	// Clear empties the cart.
	Clear(ctx context.Context) error

	// RemoveOrdered takes the quantities of an order out of the cart, keeping
	// whatever was added since the order's snapshot.
	RemoveOrdered(ctx context.Context, ordered []entity.CartLineItem) error

	// Apply dispatches a CartCommand.
	Apply(ctx context.Context, cmd CartCommand) (*entity.CartSummary, error)

	Items(ctx context.Context) ([]entity.CartLineItem, error)
	Total(ctx context.Context) (int64, error)
	ItemCount(ctx context.Context) (int, error)
	Summary(ctx context.Context) (*entity.CartSummary, error)
}
