package sink

import (
	"context"

	"github.com/zhuxining/skills-dev/internal/longport"
	"github.com/zhuxining/skills-dev/pkg/kafka"
)

// KafkaSink publishes quotes to a Kafka topic keyed by symbol, so each
// symbol's quotes stay ordered within a partition.
type KafkaSink struct {
	producer *kafka.Producer
	topic    string
}

// NewKafkaSink wraps a producer for the given topic.
func NewKafkaSink(producer *kafka.Producer, topic string) *KafkaSink {
	return &KafkaSink{producer: producer, topic: topic}
}

func (s *KafkaSink) Name() string { return "kafka" }

func (s *KafkaSink) Publish(ctx context.Context, quote longport.Quote) error {
	return s.producer.Publish(ctx, s.topic, []byte(quote.Symbol), quote)
}

func (s *KafkaSink) Close() error {
	if s.producer != nil {
		return s.producer.Close()
	}
	return nil
}
