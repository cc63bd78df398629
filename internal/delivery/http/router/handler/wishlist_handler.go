package handler

import (
	"storefront/internal/delivery/http/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// WishlistHandler exposes the saved-products list.
type WishlistHandler struct {
	wishlist usecase.WishlistUsecase
}

func NewWishlistHandler(wishlist usecase.WishlistUsecase) *WishlistHandler {
	return &WishlistHandler{wishlist: wishlist}
}

// ToggleResponse tells whether the product is now on the wishlist.
type ToggleResponse struct {
	ProductID int  `json:"productId"`
	Saved     bool `json:"saved"`
}

func (h *WishlistHandler) Items(c echo.Context) error {
	products, err := h.wishlist.Items(c.Request().Context())
	if err != nil {
		return err
	}

	return response.OK(c, products)
}

func (h *WishlistHandler) Toggle(c echo.Context) error {
	productID, err := intParam(c, "productId")
	if err != nil {
		return err
	}

	saved, err := h.wishlist.Toggle(c.Request().Context(), productID)
	if err != nil {
		return err
	}

	return response.OK(c, ToggleResponse{ProductID: productID, Saved: saved})
}
