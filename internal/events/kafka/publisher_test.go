package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestPublisher_Publish(t *testing.T) {
	writer := &recordingWriter{}
	publisher := NewPublisherWithWriter(writer)

	err := publisher.Publish(context.Background(), "digest-1", map[string]interface{}{"merchantCount": 2})
	require.NoError(t, err)
	require.Len(t, writer.messages, 1)

	msg := writer.messages[0]
	assert.Equal(t, "digest-1", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "content-type", msg.Headers[0].Key)
	assert.Equal(t, "application/json", string(msg.Headers[0].Value))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, 2.0, body["merchantCount"])

	require.NoError(t, publisher.Close())
	assert.True(t, writer.closed)
}

func TestPublisher_PublishErrors(t *testing.T) {
	writer := &recordingWriter{err: errors.New("leader not available")}
	publisher := NewPublisherWithWriter(writer)

	err := publisher.Publish(context.Background(), "k", struct{}{})
	assert.EqualError(t, err, "leader not available")

	err = publisher.Publish(context.Background(), "k", map[string]interface{}{"bad": make(chan int)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "marshal event")
}

func TestNewPublisher(t *testing.T) {
	publisher := NewPublisher([]string{"localhost:9092"}, "escrow.missed_payouts")

	writer, ok := publisher.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, "escrow.missed_payouts", writer.Topic)
	assert.Equal(t, kafka.RequireAll, writer.RequiredAcks)
}
