package service

import (
	"context"
)

// PurchasedItem is one line of a purchase analytics event.
type PurchasedItem struct {
	ItemID   int    `json:"item_id"`
	ItemName string `json:"item_name"`
	Category string `json:"category,omitempty"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
}

// OrderPlacedEvent is published after checkout completes
type OrderPlacedEvent struct {
	RequestID     string          `json:"request_id,omitempty"` // For distributed tracing
	TransactionID string          `json:"transaction_id"`       // Confirmation order number
	OrderID       string          `json:"order_id,omitempty"`   // Ledger id, empty for guest checkouts
	Value         int64           `json:"value"`
	Currency      string          `json:"currency"`
	Items         []PurchasedItem `json:"items"`
	PlacedAt      string          `json:"placed_at"`
}

// EventPublisher defines the interface for publishing storefront events to a message queue
type EventPublisher interface {
	// PublishOrderPlaced publishes a purchase event for async analytics processing
	PublishOrderPlaced(ctx context.Context, event *OrderPlacedEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
