package handler

import (
	"net/http"

	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// CheckoutHandler drives the checkout page.
type CheckoutHandler struct {
	checkout usecase.CheckoutUsecase
}

func NewCheckoutHandler(checkout usecase.CheckoutUsecase) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// DeliveryOptionRequest is the body of PUT /api/checkout/delivery.
type DeliveryOptionRequest struct {
	Option string `json:"option" validate:"required"`
}

// PromoCodeRequest is the body of POST /api/checkout/promo. An empty code clears the discount.
type PromoCodeRequest struct {
	Code string `json:"code"`
}

func (h *CheckoutHandler) View(c echo.Context) error {
	view, err := h.checkout.View(c.Request().Context())
	if err != nil {
		return err
	}

	return response.OK(c, view)
}

func (h *CheckoutHandler) SetDeliveryOption(c echo.Context) error {
	var req DeliveryOptionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if _, err := h.checkout.SetDeliveryOption(entity.DeliveryOption(req.Option)); err != nil {
		return err
	}

	return h.View(c)
}

// ApplyPromoCode answers 200 for unknown codes too; the result says whether it applied.
func (h *CheckoutHandler) ApplyPromoCode(c echo.Context) error {
	var req PromoCodeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result := h.checkout.ApplyPromoCode(req.Code)
	message := "Invalid promo code"
	if result.Applied {
		message = "Promo code applied"
	}

	return response.Success(c, http.StatusOK, result, message)
}

// PlaceOrder leaves validation to the use case, which reports card problems separately.
func (h *CheckoutHandler) PlaceOrder(c echo.Context) error {
	var input usecase.PlaceOrderInput
	if err := bind(c, &input); err != nil {
		return err
	}

	confirmation, err := h.checkout.PlaceOrder(c.Request().Context(), &input)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, confirmation, "Order placed successfully")
}
