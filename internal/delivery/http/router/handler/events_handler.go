package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/repository"

	"github.com/labstack/echo/v4"
)

const (
	eventBuffer       = 32
	heartbeatInterval = 15 * time.Second
)

// EventsHandler streams store change notifications as server-sent events, so
// every open page refreshes when another page or process writes the profile.
type EventsHandler struct {
	store  repository.ChangeNotifier
	logger *slog.Logger
}

func NewEventsHandler(store repository.Store, logger *slog.Logger) *EventsHandler {
	return &EventsHandler{store: store, logger: logger}
}

// Stream sends one "change" event per store write. The optional key query
// parameter narrows the stream to a single key.
func (h *EventsHandler) Stream(c echo.Context) error {
	ctx := c.Request().Context()
	logger := deliverycontext.GetLoggerOrDefault(ctx, h.logger)

	changes := make(chan repository.StoreChange, eventBuffer)
	unsubscribe := h.store.Subscribe(c.QueryParam("key"), func(change repository.StoreChange) {
		select {
		case changes <- change:
		default:
			logger.Warn("Dropping store change for slow event stream", slog.String("key", change.Key))
		}
	})
	defer unsubscribe()

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-heartbeat.C:
			if _, err := fmt.Fprint(res, ": ping\n\n"); err != nil {
				return nil
			}
			res.Flush()
		case change := <-changes:
			payload, err := json.Marshal(change)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(res, "event: change\ndata: %s\n\n", payload); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}
