package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/config"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/infra/pubsub"
	"storefront/internal/infra/store"
	"storefront/internal/usecase"
	"storefront/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

type failingAnalytics struct {
	err error
}

func (f failingAnalytics) RecordPurchase(context.Context, *service.OrderPlacedEvent) error {
	return f.err
}

func (f failingAnalytics) Summary(context.Context) (*entity.PurchaseSummary, error) {
	return nil, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestHandler(t *testing.T, analytics usecase.AnalyticsUsecase) *PushHandler {
	t.Helper()

	if analytics == nil {
		s, err := store.NewStore(store.OpenMemoryDriver(), discardLogger())
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		analytics = impl.NewAnalyticsService(s, discardLogger())
	}

	cfg := &config.Config{}
	cfg.Env.Env = constants.EnvDevelop

	return NewPushHandler(PushHandlerParams{Config: cfg, Logger: discardLogger(), Analytics: analytics})
}

func pushBody(t *testing.T, event *service.OrderPlacedEvent, attributes map[string]string) string {
	t.Helper()

	data, err := json.Marshal(event)
	require.NoError(t, err)

	var msg pubsub.PushMessage
	msg.Message.Data = base64.StdEncoding.EncodeToString(data)
	msg.Message.MessageID = event.TransactionID
	msg.Message.Attributes = attributes
	msg.Subscription = "projects/local/subscriptions/order-analytics"

	body, err := json.Marshal(msg)
	require.NoError(t, err)

	return string(body)
}

func post(t *testing.T, h *PushHandler, body string) int {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/push", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.HandlePush(e.NewContext(req, rec)))

	return rec.Code
}

func TestHandlePush_RecordsOncePerTransaction(t *testing.T) {
	h := newTestHandler(t, nil)
	event := &service.OrderPlacedEvent{
		TransactionID: "HE-2025-0042",
		Value:         3066,
		Currency:      "INR",
		Items:         []service.PurchasedItem{{ItemID: 1, Quantity: 2, Price: 1299}},
	}
	body := pushBody(t, event, map[string]string{"event_type": constants.EventTypeOrderPlaced})

	assert.Equal(t, http.StatusOK, post(t, h, body))
	assert.Equal(t, http.StatusOK, post(t, h, body))

	e := echo.New()
	rec := httptest.NewRecorder()
	require.NoError(t, h.Summary(e.NewContext(httptest.NewRequest(http.MethodGet, "/summary", nil), rec)))

	var summary entity.PurchaseSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 1, summary.Orders)
	assert.Equal(t, int64(3066), summary.Revenue)
	assert.Equal(t, 2, summary.Items)
}

func TestHandlePush_StatusCodes(t *testing.T) {
	event := &service.OrderPlacedEvent{TransactionID: "HE-2025-0043", Value: 100}

	t.Run("malformed body", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, post(t, newTestHandler(t, nil), `{"message":`))
	})

	t.Run("undecodable data", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, post(t, newTestHandler(t, nil), `{"message":{"data":"!!"}}`))
	})

	t.Run("other event types are acknowledged", func(t *testing.T) {
		body := pushBody(t, event, map[string]string{"event_type": "cart.updated"})
		assert.Equal(t, http.StatusNoContent, post(t, newTestHandler(t, nil), body))
	})

	t.Run("invalid event is acknowledged", func(t *testing.T) {
		body := pushBody(t, &service.OrderPlacedEvent{Value: 1}, nil)
		assert.Equal(t, http.StatusOK, post(t, newTestHandler(t, nil), body))
	})

	t.Run("store failure asks for redelivery", func(t *testing.T) {
		h := newTestHandler(t, failingAnalytics{err: errors.New("disk full")})
		assert.Equal(t, http.StatusServiceUnavailable, post(t, h, pushBody(t, event, nil)))
	})
}

func TestHandlePush_VerifiesToken(t *testing.T) {
	h := newTestHandler(t, nil)
	h.verifyPushAuth = true
	h.validateToken = func(_ context.Context, token, audience string) (*idtoken.Payload, error) {
		if token != "good" {
			return nil, errors.New("bad signature")
		}
		assert.Equal(t, "http://example.com/push", audience)

		return &idtoken.Payload{Issuer: "https://accounts.google.com", Claims: map[string]any{"email_verified": true}}, nil
	}

	body := pushBody(t, &service.OrderPlacedEvent{TransactionID: "HE-2025-0044"}, nil)

	send := func(token string) int {
		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/push", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		if token != "" {
			req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		require.NoError(t, h.HandlePush(e.NewContext(req, rec)))

		return rec.Code
	}

	assert.Equal(t, http.StatusUnauthorized, send(""))
	assert.Equal(t, http.StatusUnauthorized, send("forged"))
	assert.Equal(t, http.StatusOK, send("good"))
}

func TestExtractRequestID(t *testing.T) {
	h := newTestHandler(t, nil)

	var msg pubsub.PushMessage
	msg.Message.Attributes = map[string]string{"request_id": "from-attr"}
	assert.Equal(t, "from-attr", h.extractRequestID(context.Background(), &msg, &service.OrderPlacedEvent{RequestID: "from-event"}))

	msg.Message.Attributes = nil
	assert.Equal(t, "from-event", h.extractRequestID(context.Background(), &msg, &service.OrderPlacedEvent{RequestID: "from-event"}))

	assert.NotEmpty(t, h.extractRequestID(context.Background(), &msg, &service.OrderPlacedEvent{}))
}
