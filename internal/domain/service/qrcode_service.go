package service

import "storefront/internal/domain/entity"

// QRCodeService defines the interface for order tracking QR codes
type QRCodeService interface {
	// GenerateOrderQR renders a PNG QR code that identifies the order
	GenerateOrderQR(order *entity.Order) ([]byte, error)

	// ParseOrderQR parses QR code data and returns the order id
	ParseOrderQR(qrData string) (string, error)
}
