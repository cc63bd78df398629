package entity

import (
	"math"
	"strings"
)

// DeliveryOption is the shipping speed chosen at checkout.
type DeliveryOption string

const (
	DeliveryStandard DeliveryOption = "standard"
	DeliveryExpress  DeliveryOption = "express"
	DeliveryNextDay  DeliveryOption = "next-day"
)

// DeliveryRate is the cost and lead time of a delivery option.
type DeliveryRate struct {
	Cost int64 `json:"cost"`
	Days int   `json:"days"`
}

//nolint:gochecknoglobals
var deliveryRates = map[DeliveryOption]DeliveryRate{
	DeliveryStandard: {Cost: 0, Days: 7},
	DeliveryExpress:  {Cost: 99, Days: 3},
	DeliveryNextDay:  {Cost: 199, Days: 1},
}

// Rate looks up the delivery table.
func (o DeliveryOption) Rate() (DeliveryRate, bool) {
	rate, ok := deliveryRates[o]

	return rate, ok
}

//nolint:gochecknoglobals
var promoCodes = map[string]int64{
	"WELCOME10": 10,
	"SAVE20":    20,
	"FIRST50":   50,
	"NEWYEAR":   15,
}

// NormalizePromoCode trims and upper-cases a shopper-entered code.
func NormalizePromoCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// LookupPromoCode returns the flat discount of a code, matched case-insensitively.
func LookupPromoCode(code string) (int64, bool) {
	discount, ok := promoCodes[NormalizePromoCode(code)]

	return discount, ok
}

// PromoResult tells the caller which branch applying a code took.
type PromoResult struct {
	Applied  bool   `json:"applied"`
	Code     string `json:"code,omitempty"`
	Discount int64  `json:"discount"`
}

// CheckoutSession is the state of the checkout page.
type CheckoutSession struct {
	DeliveryOption DeliveryOption `json:"deliveryOption"`
	DeliveryCost   int64          `json:"deliveryCost"`
	DeliveryDays   int            `json:"deliveryDays"`
	PromoCode      string         `json:"promoCode,omitempty"`
	Discount       int64          `json:"discount"`
}

// CheckoutTotals are derived from the cart subtotal and the checkout session.
type CheckoutTotals struct {
	Subtotal     int64 `json:"subtotal"`
	DeliveryCost int64 `json:"deliveryCost"`
	Discount     int64 `json:"discount"`
	Tax          int64 `json:"tax"`
	GrandTotal   int64 `json:"grandTotal"`
}

// ComputeCheckoutTotals applies the checkout arithmetic. Tax is charged on the
// discounted subtotal only, never on delivery. The discount is capped at the
// subtotal so the grand total is never negative.
func ComputeCheckoutTotals(subtotal, deliveryCost, discount int64, taxRate float64) CheckoutTotals {
	discount = min(discount, max(subtotal, 0))
	tax := int64(math.Round(float64(subtotal-discount) * taxRate))

	return CheckoutTotals{
		Subtotal:     subtotal,
		DeliveryCost: deliveryCost,
		Discount:     discount,
		Tax:          tax,
		GrandTotal:   subtotal + deliveryCost + tax - discount,
	}
}
