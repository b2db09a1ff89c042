package queue

import (
	"context"
	"fmt"

	"github.com/quantsys/bondflow/pkg/messaging"
)

// DefaultPoolSize is the number of producers a pool opens up front.
const DefaultPoolSize = 32

// SenderPool is a MessageSender that spreads audit rows over a fixed set of
// reusable Kafka senders. A sender whose send failed is closed and replaced
// rather than going back into the pool.
type SenderPool struct {
	senders chan messaging.MessageSender
	factory func() (messaging.MessageSender, error)
}

// NewSenderPool opens size producers against the configured broker list. A
// non-positive size falls back to DefaultPoolSize.
func NewSenderPool(size int) (*SenderPool, error) {
	return newSenderPoolWithFactory(size, func() (messaging.MessageSender, error) {
		return NewQueueMessageSender()
	})
}

// newSenderPoolWithFactory is used by tests to inject mock senders.
func newSenderPoolWithFactory(size int, factory func() (messaging.MessageSender, error)) (*SenderPool, error) {
	if size <= 0 {
		size = DefaultPoolSize
	}
	p := &SenderPool{
		senders: make(chan messaging.MessageSender, size),
		factory: factory,
	}
	for i := 0; i < size; i++ {
		sender, err := factory()
		if err != nil {
			_ = p.Close()
			return nil, fmt.Errorf("failed to create pooled sender: %w", err)
		}
		p.senders <- sender
	}
	return p, nil
}

// Get takes a sender from the pool, opening a fresh one when the pool is
// empty.
func (p *SenderPool) Get() (messaging.MessageSender, error) {
	select {
	case sender := <-p.senders:
		return sender, nil
	default:
		return p.factory()
	}
}

// Return puts a healthy sender back. Overflow senders are closed.
func (p *SenderPool) Return(sender messaging.MessageSender) {
	if sender == nil {
		return
	}
	select {
	case p.senders <- sender:
	default:
		_ = sender.Close()
	}
}

// SendAuditMessage sends one audit row with a pooled sender. On failure the
// sender is closed instead of being returned, so later sends never pick up a
// producer that already errored.
func (p *SenderPool) SendAuditMessage(ctx context.Context, msg *messaging.AuditMessage) error {
	sender, err := p.Get()
	if err != nil {
		return fmt.Errorf("failed to get message sender from pool: %w", err)
	}

	if err := sender.SendAuditMessage(ctx, msg); err != nil {
		_ = sender.Close()
		return err
	}

	p.Return(sender)
	return nil
}

// Close drains the pool and closes every remaining sender.
func (p *SenderPool) Close() error {
	var firstErr error
	for {
		select {
		case sender := <-p.senders:
			if err := sender.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		default:
			return firstErr
		}
	}
}

// Ensure SenderPool implements MessageSender
var _ messaging.MessageSender = (*SenderPool)(nil)
