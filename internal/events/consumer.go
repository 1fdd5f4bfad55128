package events

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
)

// EventHandler reacts to one decoded event.
type EventHandler func(ctx context.Context, event *Event) error

// Consume decodes and dispatches messages until ctx is done or the stream
// closes. Malformed messages are acked and dropped; handler errors nack.
func Consume(ctx context.Context, messages <-chan *message.Message, handler EventHandler, logger *slog.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}

			var event Event
			if err := json.Unmarshal(msg.Payload, &event); err != nil {
				logger.Warn("Dropping malformed event", "message_id", msg.UUID, "error", err)
				msg.Ack()
				continue
			}

			if err := handler(ctx, &event); err != nil {
				logger.Error("Event handler failed", "event_id", event.ID, "event_type", event.Type, "error", err)
				msg.Nack()
				continue
			}
			msg.Ack()
		}
	}
}

// LogEvent is an EventHandler that writes each event to the log.
func LogEvent(logger *slog.Logger) EventHandler {
	return func(_ context.Context, event *Event) error {
		logger.Info("Domain event",
			"event_id", event.ID,
			"event_type", event.Type,
			"source", event.Source,
			"timestamp", event.Timestamp)
		return nil
	}
}
