package position

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantsys/bondflow/pkg/bondprice"
	"github.com/quantsys/bondflow/pkg/booking"
	"github.com/quantsys/bondflow/pkg/refdata"
	"github.com/quantsys/bondflow/pkg/service"
)

func testBond() refdata.Bond {
	return refdata.NewBond("91282CFV8", "US10Y", time.Date(2032, time.November, 15, 0, 0, 0, 0, time.UTC))
}

func trade(id, book string, qty int64, side booking.Side) booking.Trade {
	return booking.NewTrade(testBond(), id, bondprice.FromTicks(25600), book, qty, side)
}

func TestAddTradeNetsPerBook(t *testing.T) {
	svc := NewService()

	require.NoError(t, svc.AddTrade(trade("T1", "TRSY1", 1000000, booking.Buy)))
	require.NoError(t, svc.AddTrade(trade("T2", "TRSY1", 400000, booking.Sell)))
	require.NoError(t, svc.AddTrade(trade("T3", "TRSY2", 2000000, booking.Buy)))

	p, err := svc.Position("91282CFV8")
	require.NoError(t, err)
	assert.Equal(t, int64(600000), p.PositionIn("TRSY1"))
	assert.Equal(t, int64(2000000), p.PositionIn("TRSY2"))
	// Untouched books read zero
	assert.Equal(t, int64(0), p.PositionIn("TRSY3"))
	assert.Equal(t, int64(2600000), p.AggregatePosition())
}

// For any trade sequence the aggregate equals the signed quantity sum.
func TestAggregateMatchesSignedSum(t *testing.T) {
	svc := NewService()

	seq := []struct {
		book string
		qty  int64
		side booking.Side
	}{
		{"TRSY1", 1000000, booking.Buy},
		{"TRSY2", 3000000, booking.Sell},
		{"TRSY3", 2000000, booking.Buy},
		{"TRSY1", 5000000, booking.Sell},
		{"TRSY2", 4000000, booking.Buy},
	}

	var want int64
	for i, s := range seq {
		id := "T" + string(rune('1'+i))
		require.NoError(t, svc.AddTrade(trade(id, s.book, s.qty, s.side)))
		if s.side == booking.Buy {
			want += s.qty
		} else {
			want -= s.qty
		}
	}

	p, err := svc.Position("91282CFV8")
	require.NoError(t, err)
	assert.Equal(t, want, p.AggregatePosition())
}

func TestOneNotificationPerTrade(t *testing.T) {
	svc := NewService()

	notified := 0
	svc.AddListener(service.ListenerFunc[Position](func(Position) error {
		notified++
		return nil
	}))

	listener := svc.TradeListener()
	require.NoError(t, listener.OnAdd(trade("T1", "TRSY1", 1000000, booking.Buy)))
	require.NoError(t, listener.OnAdd(trade("T2", "TRSY1", 1000000, booking.Buy)))
	assert.Equal(t, 2, notified)
}

func TestPositionToFields(t *testing.T) {
	p := NewPosition(testBond()).
		AddPosition("TRSY2", 2000000, booking.Buy).
		AddPosition("TRSY1", 1000000, booking.Sell)

	assert.Equal(t, []string{
		"91282CFV8",
		"TRSY1", "-1000000",
		"TRSY2", "2000000",
		"AGGREGATE", "1000000",
	}, p.ToFields())
}
