package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/quantsys/bondflow/pkg/messaging"
)

// KafkaMessageSender implements MessageSender using Kafka
type KafkaMessageSender struct {
	writer *kafka.Writer
	topic  string
}

// NewKafkaMessageSender creates a new Kafka message sender
func NewKafkaMessageSender(brokerAddr, topic string) (*KafkaMessageSender, error) {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokerAddr),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}

	return &KafkaMessageSender{
		writer: writer,
		topic:  topic,
	}, nil
}

// SendAuditMessage sends an audit row to Kafka, keyed on the entity key so
// rows for one entity land on one partition in order.
func (k *KafkaMessageSender) SendAuditMessage(ctx context.Context, msg *messaging.AuditMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal audit message: %w", err)
	}

	kmsg := kafka.Message{
		Key:   []byte(msg.Key),
		Value: data,
		Time:  time.Now(),
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := k.writer.WriteMessages(ctx, kmsg); err != nil {
		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	return nil
}

// Close closes the Kafka writer
func (k *KafkaMessageSender) Close() error {
	return k.writer.Close()
}

// Ensure KafkaMessageSender implements MessageSender
var _ messaging.MessageSender = (*KafkaMessageSender)(nil)
