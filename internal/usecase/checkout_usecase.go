package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// Payment methods accepted at checkout.
const (
	PaymentMethodCard = "card"
	PaymentMethodUPI  = "upi"
	PaymentMethodCOD  = "cod"
)

// --- Input DTOs ---

// ShippingDetails is the checkout shipping form.
type ShippingDetails struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,phone10"`
	Address   string `json:"address" validate:"required"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state" validate:"required"`
	Pincode   string `json:"pincode" validate:"required,numeric,len=6"`
}

// CardDetails is only read when the payment method is card.
type CardDetails struct {
	Number string `json:"number" validate:"required,cardnumber"`
	Expiry string `json:"expiry" validate:"required,cardexpiry"`
	CVV    string `json:"cvv" validate:"required,numeric,len=3"`
	Name   string `json:"name"`
}

// PlaceOrderInput defines the data required to place an order.
type PlaceOrderInput struct {
	Shipping      ShippingDetails `json:"shipping"`
	PaymentMethod string          `json:"paymentMethod"`
	Card          *CardDetails    `json:"card,omitempty"`
}

// --- Output DTOs ---

// CheckoutView is the checkout page state: session plus totals for the current cart.
type CheckoutView struct {
	Session entity.CheckoutSession `json:"session"`
	Totals  entity.CheckoutTotals  `json:"totals"`
	Cart    entity.CartSummary     `json:"cart"`
}

// CheckoutUsecase defines the interface for checkout.
type CheckoutUsecase interface {
	// SetDeliveryOption switches the delivery option; unknown options leave the session unchanged.
	SetDeliveryOption(option entity.DeliveryOption) (*entity.CheckoutSession, error)

	// ApplyPromoCode applies or clears the promo discount. It never fails.
	ApplyPromoCode(code string) entity.PromoResult

	// ComputeTotals prices a subtotal with the current session.
	ComputeTotals(subtotal int64) entity.CheckoutTotals

	// Session returns the current checkout session.
	Session() entity.CheckoutSession

	// View combines the session with the current cart.
	View(ctx context.Context) (*CheckoutView, error)

	// PlaceOrder validates the input, runs the payment step and records the order.
	PlaceOrder(ctx context.Context, input *PlaceOrderInput) (*entity.OrderConfirmation, error)
}
