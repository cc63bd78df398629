package qrcode

import (
	"encoding/json"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
	"storefront/internal/errors"

	"github.com/skip2/go-qrcode"
)

const (
	defaultSize       = 256
	orderTrackingType = "order_tracking"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// OrderQRData is the payload encoded in an order tracking QR code
type OrderQRData struct {
	OrderID        string `json:"order_id"`
	Type           string `json:"type"`
	TrackingNumber string `json:"tracking_number,omitempty"`
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel string) service.QRCodeService {
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	if size <= 0 {
		size = defaultSize
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// NewFromConfig builds the service from the qrcode config section
func NewFromConfig(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		return NewQRCodeService(defaultSize, "M")
	}

	return NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

// GenerateOrderQR renders a PNG that encodes the order id and tracking number
func (s *qrcodeService) GenerateOrderQR(order *entity.Order) ([]byte, error) {
	data := OrderQRData{
		OrderID: order.ID,
		Type:    orderTrackingType,
	}
	if order.TrackingNumber != nil {
		data.TrackingNumber = *order.TrackingNumber
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal QR code data")
	}

	qrCode, err := qrcode.New(string(jsonData), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}

// ParseOrderQR parses scanned QR code data and returns the order id
func (s *qrcodeService) ParseOrderQR(qrData string) (string, error) {
	var data OrderQRData
	if err := json.Unmarshal([]byte(qrData), &data); err != nil {
		return "", errors.Wrap(err, "failed to unmarshal QR code data")
	}

	if data.Type != orderTrackingType {
		return "", errors.Errorf("invalid QR code type: %s", data.Type)
	}
	if data.OrderID == "" {
		return "", errors.New("QR code carries no order id")
	}

	return data.OrderID, nil
}
