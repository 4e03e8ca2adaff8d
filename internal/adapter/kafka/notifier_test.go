package kafka

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace-ads/internal/core/port"
)

type recordingWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func notification() port.Notification {
	return port.Notification{
		AdvertiserID: "adv-1",
		Type:         port.NotifyBudgetExhausted,
		CampaignID:   "c1",
		Metadata:     map[string]string{"spent": "10000"},
		CreatedAt:    time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestNotifyKeysByAdvertiser(t *testing.T) {
	w := &recordingWriter{}
	require.NoError(t, NewNotifier(w).Notify(context.Background(), notification()))

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, "adv-1", string(msg.Key))
	assert.Equal(t, "campaign_budget_exhausted", string(msg.Headers[0].Value))

	var got port.Notification
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, notification(), got)
}

func TestNotifyWrapsWriterError(t *testing.T) {
	w := &recordingWriter{err: errors.New("leader not available")}
	err := NewNotifier(w).Notify(context.Background(), notification())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "campaign c1")
	assert.Contains(t, err.Error(), "leader not available")
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(slog.New(slog.NewTextHandler(&buf, nil)))
	require.NoError(t, n.Notify(context.Background(), notification()))
	assert.Contains(t, buf.String(), "type=campaign_budget_exhausted")
	assert.Contains(t, buf.String(), "campaign_id=c1")
}

func TestNewWriter(t *testing.T) {
	w := NewWriter([]string{"k1:9092"}, "advertiser-notifications")
	assert.Equal(t, "advertiser-notifications", w.Topic)
	assert.IsType(t, &kafka.Hash{}, w.Balancer)
}
