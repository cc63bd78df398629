package impl

import (
	"context"
	"log/slog"
	"sync"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/usecase"
)

// analyticsService implements the AnalyticsUsecase interface.
type analyticsService struct {
	mu     sync.Mutex
	store  repository.Store
	logger *slog.Logger
}

// NewAnalyticsService is the constructor for analyticsService.
func NewAnalyticsService(store repository.Store, logger *slog.Logger) usecase.AnalyticsUsecase {
	return &analyticsService{store: store, logger: logger}
}

func (srv *analyticsService) load(ctx context.Context) ([]entity.PurchaseRecord, error) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, srv.logger)

	return readDocument[[]entity.PurchaseRecord](ctx, srv.store, logger, constants.KeyAnalyticsPurchases)
}

// RecordPurchase stores the event once per transaction id.
func (srv *analyticsService) RecordPurchase(ctx context.Context, event *service.OrderPlacedEvent) error {
	if event.TransactionID == "" {
		return domainerrors.ErrValidationFailed.WithDetails("transaction_id is required")
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()

	records, err := srv.load(ctx)
	if err != nil {
		return err
	}

	for _, r := range records {
		if r.TransactionID == event.TransactionID {
			deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Debug("Purchase already recorded",
				slog.String("transactionID", event.TransactionID),
			)

			return nil
		}
	}

	itemCount := 0
	for _, item := range event.Items {
		itemCount += item.Quantity
	}

	records = append(records, entity.PurchaseRecord{
		TransactionID: event.TransactionID,
		Value:         event.Value,
		Currency:      event.Currency,
		ItemCount:     itemCount,
		PlacedAt:      event.PlacedAt,
		RequestID:     event.RequestID,
	})

	if err := writeDocument(ctx, srv.store, constants.KeyAnalyticsPurchases, records); err != nil {
		return errors.Wrap(err, "failed to save purchase record")
	}

	return nil
}

// Summary aggregates revenue and item counts over every record.
func (srv *analyticsService) Summary(ctx context.Context) (*entity.PurchaseSummary, error) {
	records, err := srv.load(ctx)
	if err != nil {
		return nil, err
	}

	summary := &entity.PurchaseSummary{Currency: constants.CurrencyCode}
	for _, r := range records {
		summary.Orders++
		summary.Revenue += r.Value
		summary.Items += r.ItemCount
	}
	if summary.Orders > 0 {
		summary.AverageOrder = summary.Revenue / int64(summary.Orders)
	}

	return summary, nil
}
