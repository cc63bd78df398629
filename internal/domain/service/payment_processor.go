package service

import "context"

// PaymentRequest is what checkout hands to the payment step.
type PaymentRequest struct {
	OrderNumber string
	Method      string
	Amount      int64
	CardLast4   string
}

// PaymentProcessor authorizes a payment. The storefront ships with a simulated
// processor only; no real gateway is involved.
type PaymentProcessor interface {
	Process(ctx context.Context, req *PaymentRequest) error
}
