package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := newKafkaPublisher(w, "", zap.NewNop().Sugar())

	err := p.Publish(context.Background(), Event{
		Type:    TypeVirtualNumberDeleted,
		Key:     "7000000001",
		Payload: NumberDeleted{DeletionID: "d1", Number: "7000000001", Category: "personal", MessagesBuffered: 2},
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, DefaultTopic, msg.Topic)
	assert.Equal(t, "7000000001", string(msg.Key))
	if assert.Len(t, msg.Headers, 1) {
		assert.Equal(t, TypeVirtualNumberDeleted, string(msg.Headers[0].Value))
	}

	var decoded struct {
		Type       string         `json:"type"`
		OccurredAt string         `json:"occurred_at"`
		Payload    map[string]any `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, TypeVirtualNumberDeleted, decoded.Type)
	assert.NotEmpty(t, decoded.OccurredAt)
	assert.Equal(t, "d1", decoded.Payload["deletion_id"])
	assert.Equal(t, float64(2), decoded.Payload["messages_buffered"])

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	p := newKafkaPublisher(w, "custom", zap.NewNop().Sugar())

	err := p.Publish(context.Background(), Event{Type: TypeMessageReceived, Key: "1"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), TypeMessageReceived)
}

func TestKafkaPublisher_MarshalError(t *testing.T) {
	p := newKafkaPublisher(&fakeWriter{}, "t", zap.NewNop().Sugar())
	err := p.Publish(context.Background(), Event{Type: "x", Payload: make(chan int)})
	assert.Error(t, err)
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), Event{Type: "x"}))
	assert.NoError(t, p.Close())
}
