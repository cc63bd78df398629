// Package handler contains the analytics worker's HTTP handlers.
package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/constants"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/infra/pubsub"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

// TokenValidator checks a Google-signed push token against an audience.
type TokenValidator func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// PushHandler records order.placed events delivered by Pub/Sub push.
type PushHandler struct {
	verifyPushAuth bool
	validateToken  TokenValidator
	logger         *slog.Logger
	analytics      usecase.AnalyticsUsecase
}

// PushHandlerParams holds dependencies for the PushHandler
type PushHandlerParams struct {
	fx.In

	Config    *config.Config
	Logger    *slog.Logger
	Analytics usecase.AnalyticsUsecase
}

// NewPushHandler verifies push tokens only for the google provider outside develop.
func NewPushHandler(params PushHandlerParams) *PushHandler {
	verifyPushAuth := params.Config.PubSub != nil &&
		params.Config.PubSub.Provider == constants.PubSubProviderGoogle &&
		params.Config.Env.Env != constants.EnvDevelop

	return &PushHandler{
		verifyPushAuth: verifyPushAuth,
		validateToken:  idtoken.Validate,
		logger:         params.Logger,
		analytics:      params.Analytics,
	}
}

// HandlePush answers 503 for failures worth a redelivery and 2xx for
// everything else, so a poison message is acknowledged instead of retried forever.
func (h *PushHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	if h.verifyPushAuth {
		if err := h.verifyPubSubToken(c.Request()); err != nil {
			h.logger.Warn("[Worker] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var msg pubsub.PushMessage
	if err := c.Bind(&msg); err != nil {
		h.logger.Error("[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	event, err := msg.Decode()
	if err != nil {
		h.logger.Error("[Worker] Failed to decode push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}
	if msg.Message.Attributes["event_type"] != "" && msg.Message.Attributes["event_type"] != constants.EventTypeOrderPlaced {
		h.logger.Info("[Worker] Ignoring event", slog.String("event_type", msg.Message.Attributes["event_type"]))

		return c.NoContent(http.StatusNoContent)
	}

	requestID := h.extractRequestID(ctx, &msg, event)
	ctx, reqLogger := deliverycontext.WithRequestScope(ctx, requestID, h.logger)

	if err := h.analytics.RecordPurchase(ctx, event); err != nil {
		var appErr domainerrors.AppError
		if errors.As(err, &appErr) && appErr.HTTPCode() < http.StatusInternalServerError {
			reqLogger.Warn("[Worker] Rejected purchase event",
				slog.String("transaction_id", event.TransactionID),
				slog.String("code", appErr.ErrorCode()),
			)

			return c.NoContent(http.StatusOK)
		}

		reqLogger.Error("[Worker] Failed to record purchase",
			slog.String("transaction_id", event.TransactionID),
			slog.Any("error", err),
		)

		return c.NoContent(http.StatusServiceUnavailable)
	}

	reqLogger.Info("[Worker] Purchase recorded",
		slog.String("transaction_id", event.TransactionID),
		slog.Int64("value", event.Value),
	)

	return c.NoContent(http.StatusOK)
}

// Summary returns the aggregated purchase analytics.
func (h *PushHandler) Summary(c echo.Context) error {
	summary, err := h.analytics.Summary(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, summary)
}

// extractRequestID prefers the message attribute, then the event, then the
// X-Request-Id of the push request, and finally a new id.
func (h *PushHandler) extractRequestID(ctx context.Context, msg *pubsub.PushMessage, event *service.OrderPlacedEvent) string {
	if requestID := msg.Message.Attributes["request_id"]; requestID != "" {
		return requestID
	}
	if event.RequestID != "" {
		return event.RequestID
	}
	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	return uuid.New().String()
}

func (h *PushHandler) verifyPubSubToken(req *http.Request) error {
	token, found := strings.CutPrefix(req.Header.Get(echo.HeaderAuthorization), "Bearer ")
	if !found || token == "" {
		return errors.New("missing bearer token")
	}

	scheme := "https"
	if req.TLS == nil {
		scheme = "http"
	}
	audience := fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)

	payload, err := h.validateToken(req.Context(), token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}
	if verified, ok := payload.Claims["email_verified"].(bool); ok && !verified {
		return errors.New("email not verified")
	}

	return nil
}
