package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// NewsletterUsecase defines the interface for newsletter sign-ups.
type NewsletterUsecase interface {
	Subscribe(ctx context.Context, email string) (*entity.NewsletterSubscription, error)
}
