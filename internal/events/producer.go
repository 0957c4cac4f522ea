package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// Audit event types published to the user_events topic. Message content is
// never published; delivery to devices is out of scope and events exist for
// audit only.
const (
	EventUserRegistered = "user_registered"
	EventUserLogin      = "user_login"
	EventUserLogout     = "user_logout"
	EventTokenRefreshed = "token_refreshed"
)

type Event struct {
	Type       string    `json:"type"`
	UserID     string    `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Producer publishes audit events. A nil Producer is valid and drops every
// event, which keeps tests and kafka-less deployments simple.
type Producer struct {
	writer *kafka.Writer
}

func NewProducer(address, topic string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(address),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 50 * time.Millisecond,
		},
	}
}

func (p *Producer) Publish(ctx context.Context, eventType, userID string) error {
	if p == nil || p.writer == nil {
		return nil
	}
	data, err := json.Marshal(Event{
		Type:       eventType,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("events: json.Marshal failed: %w", err)
	}
	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(userID),
		Value: data,
	}); err != nil {
		return fmt.Errorf("events: write failed: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
