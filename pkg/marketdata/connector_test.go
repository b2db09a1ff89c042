package marketdata

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantsys/bondflow/pkg/bondprice"
	"github.com/quantsys/bondflow/pkg/refdata"
	"github.com/quantsys/bondflow/pkg/service"
)

func TestConnectorBatchesIntoBooks(t *testing.T) {
	svc := NewService(2)
	conn := NewConnector(svc, refdata.OnTheRun())

	var books []OrderBook
	svc.AddListener(service.ListenerFunc[OrderBook](func(b OrderBook) error {
		books = append(books, b)
		return nil
	}))

	// Two full depth-2 batches
	input := strings.Join([]string{
		"91282CFV8,100-000,1000000,BID",
		"91282CFV8,99-317,2000000,BID",
		"91282CFV8,100-001,1000000,OFFER",
		"91282CFV8,100-002,2000000,OFFER",
		"91282CFV8,100-010,1000000,BID",
		"91282CFV8,100-007,2000000,BID",
		"91282CFV8,100-011,1000000,OFFER",
		"91282CFV8,100-012,2000000,OFFER",
	}, "\n")

	require.NoError(t, conn.Subscribe(strings.NewReader(input)))
	require.Len(t, books, 2)

	assert.Len(t, books[0].BidStack(), 2)
	assert.Len(t, books[0].OfferStack(), 2)

	stored, err := svc.Book("91282CFV8")
	require.NoError(t, err)
	bo, err := stored.BestBidOffer()
	require.NoError(t, err)
	assert.Equal(t, "100-010", bondprice.Format(bo.Bid().Price()))
}

func TestConnectorPartialBatchNotEmitted(t *testing.T) {
	svc := NewService(2)
	conn := NewConnector(svc, refdata.OnTheRun())

	notified := 0
	svc.AddListener(service.ListenerFunc[OrderBook](func(OrderBook) error {
		notified++
		return nil
	}))

	// Three lines, one short of a batch
	input := "91282CFV8,100-000,1000000,BID\n91282CFV8,99-317,2000000,BID\n91282CFV8,100-001,1000000,OFFER\n"
	require.NoError(t, conn.Subscribe(strings.NewReader(input)))
	assert.Equal(t, 0, notified)
}

func TestConnectorMalformedRecord(t *testing.T) {
	svc := NewService(2)
	conn := NewConnector(svc, refdata.OnTheRun())

	tests := []string{
		"91282CFV8,100-000,1000000",
		"91282CFV8,garbage,1000000,BID",
		"91282CFV8,100-000,many,BID",
		"91282CFV8,100-000,1000000,SIDEWAYS",
	}
	for _, line := range tests {
		err := conn.Subscribe(strings.NewReader(line))
		assert.ErrorIs(t, err, service.ErrMalformedRecord, line)
	}
}

func TestConnectorUnknownInstrument(t *testing.T) {
	svc := NewService(1)
	conn := NewConnector(svc, refdata.OnTheRun())

	input := "XXXXXXXXX,100-000,1000000,BID\nXXXXXXXXX,100-001,1000000,OFFER\n"
	err := conn.Subscribe(strings.NewReader(input))
	assert.ErrorIs(t, err, service.ErrNotFound)
}
