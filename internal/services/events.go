package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/clipstream/clipstream/internal/logger"
	"github.com/clipstream/clipstream/internal/models"
)

// EventWriter defines a Kafka writer abstraction for account events.
type EventWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the writer
}

// publishAccountEvent publishes an account lifecycle event. Publishing
// is fire-and-forget: a missing writer or a broker failure is logged
// and never fails the operation that triggered the event.
func publishAccountEvent(ctx context.Context, w EventWriter, userID uuid.UUID, action string) {
	if w == nil {
		logger.Log.Warnw("event writer not configured, skipping publishing", "action", action)
		return
	}

	evt := models.AccountEvent{
		EventID:   uuid.NewString(),
		Timestamp: time.Now().Unix(),
		UserID:    userID.String(),
		Action:    action,
	}

	data, err := json.Marshal(evt)
	if err != nil {
		logger.Log.Errorw("failed to marshal account event", "event_id", evt.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(evt.UserID),
		Value: data,
	}

	if err := w.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish account event", "event_id", evt.EventID, "action", action, "error", err)
	} else {
		logger.Log.Infow("account event published", "event_id", evt.EventID, "action", action, "user_id", evt.UserID)
	}
}
