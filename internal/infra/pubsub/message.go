package pubsub

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"storefront/internal/domain/constants"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
)

const localSubscription = "projects/local/subscriptions/order-analytics"

// PushMessage is the body Pub/Sub sends to push subscribers.
type PushMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

func newPushMessage(payload []byte, event *service.OrderPlacedEvent, publishedAt time.Time) PushMessage {
	var msg PushMessage
	msg.Subscription = localSubscription
	msg.Message.Data = base64.StdEncoding.EncodeToString(payload)
	msg.Message.Attributes = eventAttributes(event)
	msg.Message.MessageID = event.TransactionID
	msg.Message.PublishTime = publishedAt.UTC().Format(time.RFC3339)

	return msg
}

// Decode extracts the order event carried by the push message.
func (m *PushMessage) Decode() (*service.OrderPlacedEvent, error) {
	data, err := base64.StdEncoding.DecodeString(m.Message.Data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode message data")
	}

	var event service.OrderPlacedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal order event")
	}

	return &event, nil
}

// eventAttributes are what subscribers filter and trace on.
func eventAttributes(event *service.OrderPlacedEvent) map[string]string {
	attributes := map[string]string{
		"event_type":     constants.EventTypeOrderPlaced,
		"transaction_id": event.TransactionID,
	}
	if event.RequestID != "" {
		attributes["request_id"] = event.RequestID
	}

	return attributes
}
