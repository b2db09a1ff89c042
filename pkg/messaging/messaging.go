package messaging

import "context"

// MessageSender defines an interface for publishing audit rows
// This helps decouple the history package from specific implementations
// like Kafka in the queue package
type MessageSender interface {
	SendAuditMessage(ctx context.Context, msg *AuditMessage) error
	Close() error
}

// AuditMessage represents one persisted audit row for a downstream
// consumer.
type AuditMessage struct {
	// Stream names the audit stream the row belongs to, e.g. "positions".
	Stream string
	// Key is the persist key of the entity within the stream.
	Key string
	// Timestamp is the formatted event time.
	Timestamp string
	// Fields are the ordered display strings of the entity.
	Fields []string
}
