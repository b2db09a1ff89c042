package messaging

import "context"

// MockMessageSender records sent messages for testing.
type MockMessageSender struct {
	Sent []*AuditMessage
}

// NewMockMessageSender creates a new MockMessageSender.
func NewMockMessageSender() *MockMessageSender {
	return &MockMessageSender{}
}

// SendAuditMessage records the message.
func (m *MockMessageSender) SendAuditMessage(_ context.Context, msg *AuditMessage) error {
	m.Sent = append(m.Sent, msg)
	return nil
}

// Close does nothing.
func (m *MockMessageSender) Close() error {
	return nil
}

// Ensure MockMessageSender implements MessageSender
var _ MessageSender = (*MockMessageSender)(nil)
