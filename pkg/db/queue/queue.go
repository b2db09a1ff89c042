package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"

	"github.com/quantsys/bondflow/pkg/messaging"
)

var (
	brokerList = []string{"localhost:9092"}
	topic      = "bondflow-audit"
)

const maxRetry = 5

// SetBrokerList overrides the Kafka broker list for senders created after
// the call.
func SetBrokerList(brokers []string) {
	brokerList = brokers
}

// SetTopic overrides the Kafka topic for senders created after the call.
func SetTopic(t string) {
	topic = t
}

// QueueMessageSender implements the MessageSender interface
// for sending audit rows to Kafka
type QueueMessageSender struct {
	producer sarama.SyncProducer
	topic    string
}

// NewQueueMessageSender creates a sender with its own sync producer.
func NewQueueMessageSender() (*QueueMessageSender, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = maxRetry

	producer, err := sarama.NewSyncProducer(brokerList, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &QueueMessageSender{producer: producer, topic: topic}, nil
}

// newQueueMessageSenderWithProducer is used by tests to inject a mock.
func newQueueMessageSenderWithProducer(p sarama.SyncProducer) *QueueMessageSender {
	return &QueueMessageSender{producer: p, topic: topic}
}

// SendAuditMessage sends one audit row to the Kafka queue
func (q *QueueMessageSender) SendAuditMessage(_ context.Context, msg *messaging.AuditMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal audit message: %w", err)
	}

	pmsg := &sarama.ProducerMessage{
		Topic: q.topic,
		Key:   sarama.StringEncoder(msg.Key),
		Value: sarama.ByteEncoder(data),
	}

	if _, _, err := q.producer.SendMessage(pmsg); err != nil {
		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	return nil
}

// Close closes the underlying producer.
func (q *QueueMessageSender) Close() error {
	return q.producer.Close()
}

// Ensure QueueMessageSender implements MessageSender
var _ messaging.MessageSender = (*QueueMessageSender)(nil)
