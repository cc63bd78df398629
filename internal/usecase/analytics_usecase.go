package usecase

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
)

// AnalyticsUsecase defines the interface used by the analytics worker.
type AnalyticsUsecase interface {
	// RecordPurchase stores an order.placed event. Replays of a recorded
	// transaction are ignored.
	RecordPurchase(ctx context.Context, event *service.OrderPlacedEvent) error

	// Summary aggregates every recorded purchase.
	Summary(ctx context.Context) (*entity.PurchaseSummary, error)
}
