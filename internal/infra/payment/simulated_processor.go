// Package payment holds the storefront's payment step.
package payment

import (
	"context"
	"log/slog"
	"time"

	"storefront/config"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
)

// simulatedProcessor approves every payment after a fixed delay.
type simulatedProcessor struct {
	delay  time.Duration
	logger *slog.Logger
}

// NewSimulatedProcessor reads the delay from checkout.processingDelay.
func NewSimulatedProcessor(cfg *config.Config, logger *slog.Logger) service.PaymentProcessor {
	return &simulatedProcessor{
		delay:  cfg.Checkout.ProcessingDelay,
		logger: logger,
	}
}

// Process waits for the configured delay, or returns early when ctx is done.
func (p *simulatedProcessor) Process(ctx context.Context, req *service.PaymentRequest) error {
	if req.Amount <= 0 {
		return errors.Errorf("invalid payment amount %d", req.Amount)
	}

	timer := time.NewTimer(p.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "payment interrupted")
	case <-timer.C:
	}

	p.logger.Debug("Payment approved",
		slog.String("orderNumber", req.OrderNumber),
		slog.String("method", req.Method),
		slog.Int64("amount", req.Amount),
	)

	return nil
}
