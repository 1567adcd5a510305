package repository

import (
	"context"

	"FinBridge/internal/domain/models"
	"FinBridge/internal/domain/repository"
)

// Producer is the part of pkg/kafka.Producer the publisher needs.
type Producer interface {
	Publish(ctx context.Context, key []byte, value interface{}) error
	Close() error
}

// KafkaPublisher implements EventPublisher for Kafka.
type KafkaPublisher struct {
	producer Producer
}

// NewKafkaPublisher creates Kafka publisher.
func NewKafkaPublisher(producer Producer) repository.EventPublisher {
	return &KafkaPublisher{producer: producer}
}

// PublishTransfer writes evt keyed by provider so events of one bank stay ordered.
func (p *KafkaPublisher) PublishTransfer(ctx context.Context, evt *models.TransferEvent) error {
	return p.producer.Publish(ctx, []byte(evt.Provider), evt)
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

// NoopPublisher drops events; used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishTransfer(context.Context, *models.TransferEvent) error { return nil }
func (NoopPublisher) Close() error                                                 { return nil }
