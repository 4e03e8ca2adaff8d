// Package kafka publishes advertiser notifications.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"marketplace-ads/internal/core/port"
)

var (
	_ port.Notifier = (*Notifier)(nil)
	_ port.Notifier = (*LogNotifier)(nil)
)

// MessageWriter is implemented by *kafka.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Notifier writes notifications as JSON keyed by advertiser ID, so one
// advertiser's messages stay ordered within a partition.
type Notifier struct {
	writer MessageWriter
}

func NewNotifier(w MessageWriter) *Notifier {
	return &Notifier{writer: w}
}

// NewWriter builds a hash-balanced writer for topic.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}
}

func (n *Notifier) Notify(ctx context.Context, msg port.Notification) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	err = n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.AdvertiserID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(msg.Type)},
		},
		Time: msg.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("publish %s for campaign %s: %w", msg.Type, msg.CampaignID, err)
	}
	return nil
}

// LogNotifier only logs notifications. It is used when no brokers are
// configured.
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(ctx context.Context, msg port.Notification) error {
	n.log.InfoContext(ctx, "advertiser notification",
		slog.String("type", string(msg.Type)),
		slog.String("advertiser_id", msg.AdvertiserID),
		slog.String("campaign_id", msg.CampaignID),
		slog.Any("metadata", msg.Metadata),
	)
	return nil
}
