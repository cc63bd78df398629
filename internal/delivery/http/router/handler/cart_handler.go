package handler

import (
	"net/http"

	"storefront/internal/delivery/http/response"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// CartHandler exposes the shopper's cart.
type CartHandler struct {
	cart usecase.CartUsecase
}

func NewCartHandler(cart usecase.CartUsecase) *CartHandler {
	return &CartHandler{cart: cart}
}

// AddItemRequest is the body of POST /api/cart/items. A missing quantity adds one unit.
type AddItemRequest struct {
	ProductID int `json:"productId" validate:"required,gt=0"`
	Quantity  int `json:"quantity" validate:"gte=0"`
}

// UpdateQuantityRequest is the body of PATCH /api/cart/items/:productId. A
// quantity of zero or less removes the line, so the field must be present.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// CartCommandRequest is the body of POST /api/cart/commands.
type CartCommandRequest struct {
	Type      string `json:"type" validate:"required,oneof=add remove update clear"`
	ProductID int    `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Command converts the request into a cart command.
func (r *CartCommandRequest) Command() (usecase.CartCommand, error) {
	switch r.Type {
	case usecase.AddItemCommand{}.CommandName():
		return usecase.AddItemCommand{ProductID: r.ProductID, Quantity: r.Quantity}, nil
	case usecase.RemoveItemCommand{}.CommandName():
		return usecase.RemoveItemCommand{ProductID: r.ProductID}, nil
	case usecase.UpdateQuantityCommand{}.CommandName():
		return usecase.UpdateQuantityCommand{ProductID: r.ProductID, Quantity: r.Quantity}, nil
	case usecase.ClearCartCommand{}.CommandName():
		return usecase.ClearCartCommand{}, nil
	default:
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown cart command " + r.Type)
	}
}

func (h *CartHandler) Summary(c echo.Context) error {
	summary, err := h.cart.Summary(c.Request().Context())
	if err != nil {
		return err
	}

	return response.OK(c, summary)
}

func (h *CartHandler) AddItem(c echo.Context) error {
	var req AddItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	summary, err := h.cart.AddItem(c.Request().Context(), req.ProductID, req.Quantity)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, summary, "Item added to cart")
}

func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	productID, err := intParam(c, "productId")
	if err != nil {
		return err
	}

	var req UpdateQuantityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	summary, err := h.cart.UpdateQuantity(c.Request().Context(), productID, *req.Quantity)
	if err != nil {
		return err
	}

	return response.OK(c, summary)
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	productID, err := intParam(c, "productId")
	if err != nil {
		return err
	}

	summary, err := h.cart.RemoveItem(c.Request().Context(), productID)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, summary, "Item removed from cart")
}

func (h *CartHandler) Clear(c echo.Context) error {
	if err := h.cart.Clear(c.Request().Context()); err != nil {
		return err
	}

	summary, err := h.cart.Summary(c.Request().Context())
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, summary, "Cart cleared")
}

func (h *CartHandler) Apply(c echo.Context) error {
	var req CartCommandRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := req.Command()
	if err != nil {
		return err
	}

	summary, err := h.cart.Apply(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return response.OK(c, summary)
}
