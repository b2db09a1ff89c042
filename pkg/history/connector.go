package history

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	backend "github.com/quantsys/bondflow/pkg/backend/redis"
	"github.com/quantsys/bondflow/pkg/messaging"
)

// TimeFormat is the timestamp prefix on every persisted row.
const TimeFormat = "2006-01-02 15:04:05.000"

// Connector writes audit rows outward: always to its writer, optionally to a
// message sender and a snapshot store. Publish only.
type Connector[V Record] struct {
	stream    string
	w         io.Writer
	now       func() time.Time
	sender    messaging.MessageSender
	snapshots *backend.SnapshotStore
}

// NewConnector creates a connector appending rows for one audit stream.
func NewConnector[V Record](stream string, w io.Writer) *Connector[V] {
	return &Connector[V]{
		stream: stream,
		w:      w,
		now:    time.Now,
	}
}

// SetSender attaches an audit row publisher.
func (c *Connector[V]) SetSender(sender messaging.MessageSender) {
	c.sender = sender
}

// SetSnapshots attaches a latest-row snapshot store.
func (c *Connector[V]) SetSnapshots(s *backend.SnapshotStore) {
	c.snapshots = s
}

// SetClock overrides the row timestamp source.
func (c *Connector[V]) SetClock(now func() time.Time) {
	c.now = now
}

// Publish persists one record as a timestamped row.
func (c *Connector[V]) Publish(v V) error {
	timestamp := c.now().Format(TimeFormat)
	fields := v.ToFields()
	row := timestamp + "," + strings.Join(fields, ",")

	if _, err := fmt.Fprintln(c.w, row); err != nil {
		return fmt.Errorf("history %s: %w", c.stream, err)
	}

	if c.sender != nil {
		msg := &messaging.AuditMessage{
			Stream:    c.stream,
			Key:       v.PersistKey(),
			Timestamp: timestamp,
			Fields:    fields,
		}
		if err := c.sender.SendAuditMessage(context.Background(), msg); err != nil {
			return err
		}
	}

	if c.snapshots != nil {
		if err := c.snapshots.SaveRow(context.Background(), c.stream, v.PersistKey(), row); err != nil {
			return err
		}
	}

	return nil
}

// Subscribe implements service.Connector; audit rows flow outward only.
func (c *Connector[V]) Subscribe(io.Reader) error {
	return nil
}
