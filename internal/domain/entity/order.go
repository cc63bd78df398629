package entity

import (
	"storefront/internal/errors"
)

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"

	// OrderStatusAll is the filter value that matches every order.
	OrderStatusAll OrderStatus = "all"
)

// ErrUnknownOrderStatus is returned by ParseOrderStatus.
var ErrUnknownOrderStatus = errors.New("unknown order status")

// ParseOrderStatus validates a status string.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch status := OrderStatus(s); status {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered:
		return status, nil
	default:
		return "", errors.Wrapf(ErrUnknownOrderStatus, "%q", s)
	}
}

// Next returns the only status an order may move to from s.
func (s OrderStatus) Next() (OrderStatus, bool) {
	switch s {
	case OrderStatusPending:
		return OrderStatusProcessing, true
	case OrderStatusProcessing:
		return OrderStatusShipped, true
	case OrderStatusShipped:
		return OrderStatusDelivered, true
	default:
		return "", false
	}
}

// CanTransitionTo reports whether next directly follows s.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	n, ok := s.Next()

	return ok && n == next
}

// OrderItem is the snapshot of a cart line kept on an order.
type OrderItem struct {
	ProductID int    `json:"id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	Image     string `json:"image"`
}

// OrderItemsFromCart snapshots cart lines so the order no longer follows the cart.
func OrderItemsFromCart(lines []CartLineItem) []OrderItem {
	items := make([]OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, OrderItem{
			ProductID: line.ProductID,
			Name:      line.Title,
			Price:     line.Price,
			Quantity:  line.Quantity,
			Image:     line.Image,
		})
	}

	return items
}

// ShippingAddress is the address denormalized onto an order.
type ShippingAddress struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

// Order is one entry of the order ledger.
type Order struct {
	ID              string          `json:"id"`             // "HE" + 6 digits, or a seeded id.
	Date            string          `json:"date"`           // Placement date, YYYY-MM-DD.
	Status          OrderStatus     `json:"status"`         // Fulfilment status.
	Items           []OrderItem     `json:"items"`          // Snapshot of the purchased lines.
	Total           int64           `json:"total"`          // Subtotal before shipping and tax.
	Shipping        int64           `json:"shipping"`       // Delivery cost.
	Tax             int64           `json:"tax"`            // Tax charged.
	GrandTotal      int64           `json:"grandTotal"`     // Amount paid.
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	TrackingNumber  *string         `json:"trackingNumber"` // Nil until shipped.
}

// OrderConfirmation is what the shopper sees after placing an order.
type OrderConfirmation struct {
	OrderNumber    string         `json:"orderNumber"`     // HE-YYYY-NNNN
	Order          *Order         `json:"order,omitempty"` // Ledger entry; nil for guests.
	Totals         CheckoutTotals `json:"totals"`
	DeliveryOption DeliveryOption `json:"deliveryOption"`
	DeliveryDate   string         `json:"deliveryDate"` // D/M/YYYY
	Address        string         `json:"address"`      // One-line shipping address.
	Items          []CartLineItem `json:"items"`
}
