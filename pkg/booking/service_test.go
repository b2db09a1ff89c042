package booking

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantsys/bondflow/pkg/bondprice"
	"github.com/quantsys/bondflow/pkg/execution"
	"github.com/quantsys/bondflow/pkg/marketdata"
	"github.com/quantsys/bondflow/pkg/refdata"
	"github.com/quantsys/bondflow/pkg/service"
)

func testBond() refdata.Bond {
	return refdata.NewBond("91282CFV8", "US10Y", time.Date(2032, time.November, 15, 0, 0, 0, 0, time.UTC))
}

func executedOrder(id string, side marketdata.Side, visible, hidden int64) execution.Order {
	return execution.NewOrder(testBond(), side, id, execution.TypeMarket,
		bondprice.FromTicks(25760), visible, hidden, "", false)
}

func TestExecutionListenerBooksTrades(t *testing.T) {
	svc := NewService()

	var trades []Trade
	svc.AddListener(service.ListenerFunc[Trade](func(tr Trade) error {
		trades = append(trades, tr)
		return nil
	}))

	listener := svc.ExecutionListener()
	require.NoError(t, listener.OnAdd(executedOrder("ORD-1", marketdata.Bid, 1000000, 2000000)))
	require.NoError(t, listener.OnAdd(executedOrder("ORD-2", marketdata.Offer, 2000000, 0)))
	require.Len(t, trades, 2)

	// An executed bid means the desk sold
	assert.Equal(t, Sell, trades[0].Side())
	assert.Equal(t, Buy, trades[1].Side())

	// Trade id carries the order id, quantity is visible plus hidden
	assert.Equal(t, "ORD-1", trades[0].TradeID())
	assert.Equal(t, int64(3000000), trades[0].Quantity())
	assert.Equal(t, int64(2000000), trades[1].Quantity())
}

func TestExecutionListenerRotatesBooks(t *testing.T) {
	svc := NewService()

	var books []string
	svc.AddListener(service.ListenerFunc[Trade](func(tr Trade) error {
		books = append(books, tr.Book())
		return nil
	}))

	listener := svc.ExecutionListener()
	for i := 0; i < 5; i++ {
		id := "ORD-" + string(rune('1'+i))
		require.NoError(t, listener.OnAdd(executedOrder(id, marketdata.Bid, 1000000, 0)))
	}

	assert.Equal(t, []string{"TRSY1", "TRSY2", "TRSY3", "TRSY1", "TRSY2"}, books)
}

func TestConnectorParsesTrades(t *testing.T) {
	svc := NewService()
	conn := NewConnector(svc, refdata.OnTheRun())

	input := strings.Join([]string{
		"91282CFV8,T1,99-000,TRSY1,1000000,BUY",
		"91282CFV8,T2,100-000,TRSY2,2000000,SELL",
	}, "\n")
	require.NoError(t, conn.Subscribe(strings.NewReader(input)))

	tr, err := svc.Trade("T2")
	require.NoError(t, err)
	assert.Equal(t, Sell, tr.Side())
	assert.Equal(t, "TRSY2", tr.Book())
	assert.Equal(t, int64(2000000), tr.Quantity())
	assert.Equal(t, "100-000", bondprice.Format(tr.Price()))
}

func TestConnectorMalformedTrade(t *testing.T) {
	svc := NewService()
	conn := NewConnector(svc, refdata.OnTheRun())

	for _, line := range []string{
		"91282CFV8,T1,99-000,TRSY1,1000000",
		"91282CFV8,T1,bad,TRSY1,1000000,BUY",
		"91282CFV8,T1,99-000,TRSY1,lots,BUY",
		"91282CFV8,T1,99-000,TRSY1,1000000,HOLD",
	} {
		err := conn.Subscribe(strings.NewReader(line))
		assert.ErrorIs(t, err, service.ErrMalformedRecord, line)
	}
}

func TestTradeToFields(t *testing.T) {
	tr := NewTrade(testBond(), "T1", bondprice.FromTicks(25600), "TRSY1", 1000000, Buy)
	assert.Equal(t, []string{"91282CFV8", "T1", "100-000", "TRSY1", "1000000", "BUY"}, tr.ToFields())
	assert.Equal(t, "T1", tr.PersistKey())
}
