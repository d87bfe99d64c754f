package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ombrello-backend/internal/logger"

	"github.com/segmentio/kafka-go"
)

type KafkaConfig struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
}

// KafkaPublisher sends rental events keyed by umbrella code so events for one
// umbrella stay ordered within a partition.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(cfg KafkaConfig) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Topic:                  cfg.Topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			WriteTimeout:           cfg.WriteTimeout,
			AllowAutoTopicCreation: true,
		},
	}
}

func (p *KafkaPublisher) PublishRental(ctx context.Context, ev RentalEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal rental event: %w", err)
	}

	logger.ExternalServiceCall(ctx, "kafka", "publish", "topic", p.writer.Topic, "type", ev.Type)
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.Code),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(ev.Type)},
		},
	})
	logger.ExternalServiceResult(ctx, "kafka", "publish", err)
	if err != nil {
		return fmt.Errorf("publish rental event: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
