package repository

import (
	"context"
	"testing"

	"FinBridge/internal/domain/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingProducer struct {
	keys   []string
	values []interface{}
	closed bool
}

func (r *recordingProducer) Publish(_ context.Context, key []byte, value interface{}) error {
	r.keys = append(r.keys, string(key))
	r.values = append(r.values, value)
	return nil
}

func (r *recordingProducer) Close() error {
	r.closed = true
	return nil
}

func TestKafkaPublisherKeysByProvider(t *testing.T) {
	prod := &recordingProducer{}
	pub := NewKafkaPublisher(prod)

	evt := &models.TransferEvent{
		Provider: models.ProviderMashreq,
		Amount:   decimal.NewFromInt(100),
		Currency: "AED",
		Success:  true,
	}
	require.NoError(t, pub.PublishTransfer(context.Background(), evt))
	assert.Equal(t, []string{"mashreq"}, prod.keys)
	assert.Same(t, evt, prod.values[0])

	require.NoError(t, pub.Close())
	assert.True(t, prod.closed)
}

func TestNoopPublisher(t *testing.T) {
	var p NoopPublisher
	assert.NoError(t, p.PublishTransfer(context.Background(), &models.TransferEvent{}))
	assert.NoError(t, p.Close())
}
