package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/deanogram/ALT-Controller-bot/config"
	"github.com/deanogram/ALT-Controller-bot/internal/domain/audit/deps"
	"github.com/deanogram/ALT-Controller-bot/internal/domain/audit/entities"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// AuditEventMessage is the envelope written to the audit events topic
type AuditEventMessage struct {
	EventID    string  `json:"event_id"`
	EntryID    uint    `json:"entry_id"`
	UserID     *int64  `json:"user_id,omitempty"`
	Action     string  `json:"action"`
	TargetType *string `json:"target_type,omitempty"`
	TargetID   *int64  `json:"target_id,omitempty"`
	Extra      *string `json:"extra,omitempty"`
	Timestamp  int64   `json:"timestamp"`
}

// NewAuditEventMessage builds the envelope for one recorded entry
func NewAuditEventMessage(entry *entities.AuditEntry) AuditEventMessage {
	return AuditEventMessage{
		EventID:    uuid.NewString(),
		EntryID:    entry.ID,
		UserID:     entry.UserID,
		Action:     entry.Action,
		TargetType: entry.TargetType,
		TargetID:   entry.TargetID,
		Extra:      entry.ExtraJSON,
		Timestamp:  entry.TS.Unix(),
	}
}

type Producer struct {
	writer *kafka.Writer
	topic  string
	logger zerolog.Logger
}

func NewProducer(cfg *config.KafkaConfig, logger zerolog.Logger) (deps.EventPublisher, error) {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	logger.Info().
		Strs("brokers", cfg.Brokers).
		Str("topic", cfg.AuditTopic).
		Msg("Kafka producer initialized")

	return &Producer{
		writer: writer,
		topic:  cfg.AuditTopic,
		logger: logger,
	}, nil
}

// PublishAuditEvent publishes one recorded audit entry to the audit topic
func (p *Producer) PublishAuditEvent(ctx context.Context, entry *entities.AuditEntry) error {
	msg := NewAuditEventMessage(entry)

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: p.topic,
		Key:   []byte(msg.Action),
		Value: data,
	})
	if err != nil {
		p.logger.Error().Err(err).
			Uint("entry_id", entry.ID).
			Str("action", entry.Action).
			Msg("Failed to send audit event")
		return fmt.Errorf("failed to send message: %w", err)
	}

	p.logger.Debug().
		Uint("entry_id", entry.ID).
		Str("action", entry.Action).
		Msg("Audit event sent")

	return nil
}

// Close closes the producer
func (p *Producer) Close() error {
	return p.writer.Close()
}
