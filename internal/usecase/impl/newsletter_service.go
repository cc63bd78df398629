package impl

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/infra/validation"
	"storefront/internal/usecase"
)

type newsletterService struct {
	mu     sync.Mutex
	store  repository.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewNewsletterService is the constructor for newsletterService.
func NewNewsletterService(store repository.Store, logger *slog.Logger) usecase.NewsletterUsecase {
	return &newsletterService{store: store, logger: logger, now: time.Now}
}

// Subscribe appends a sign-up. Repeat sign-ups are kept, as the form allows them.
func (srv *newsletterService) Subscribe(ctx context.Context, email string) (*entity.NewsletterSubscription, error) {
	email = strings.TrimSpace(email)
	if !validation.IsEmail(email) {
		return nil, domainerrors.ErrInvalidEmail
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()

	logger := deliverycontext.GetLoggerOrDefault(ctx, srv.logger)

	subs, err := readDocument[[]entity.NewsletterSubscription](ctx, srv.store, logger, constants.KeyNewsletterSubscriptions)
	if err != nil {
		return nil, err
	}

	sub := entity.NewsletterSubscription{
		Email: email,
		Date:  srv.now().UTC().Format(time.RFC3339),
	}
	subs = append(subs, sub)

	if err := writeDocument(ctx, srv.store, constants.KeyNewsletterSubscriptions, subs); err != nil {
		return nil, errors.Wrap(err, "failed to save newsletter subscription")
	}

	logger.Info("Newsletter subscription added", slog.Int("subscriptions", len(subs)))

	return &sub, nil
}
