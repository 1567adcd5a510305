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

type captureWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *captureWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *captureWriter) Close() error {
	w.closed = true
	return nil
}

func TestNewProducerRequiresBrokersAndTopic(t *testing.T) {
	_, err := NewProducer(WithTopic("t"))
	assert.Error(t, err)

	_, err = NewProducer(WithBrokers([]string{"localhost:9092"}))
	assert.Error(t, err)
}

func TestPublishEncodesJSON(t *testing.T) {
	w := &captureWriter{}
	p := NewProducerWithWriter(w, "finbridge.transfers", "gzip")

	err := p.Publish(context.Background(), []byte("wio"), map[string]any{"success": true})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "wio", string(w.msgs[0].Key))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &body))
	assert.Equal(t, true, body["success"])

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPublishPropagatesWriterError(t *testing.T) {
	w := &captureWriter{err: errors.New("broker down")}
	p := NewProducerWithWriter(w, "finbridge.transfers", "gzip")

	err := p.Publish(context.Background(), nil, []byte("raw"))
	assert.EqualError(t, err, "broker down")
}
