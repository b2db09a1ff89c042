package inquiry

import (
	"strings"
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

func received(id string) Inquiry {
	return NewInquiry(id, testBond(), booking.Buy, 1000000, bondprice.FromTicks(25600), Received)
}

func TestReceivedInquiryRunsToDone(t *testing.T) {
	svc := NewService()
	NewConnector(svc, refdata.OnTheRun())

	var notified []Inquiry
	svc.AddListener(service.ListenerFunc[Inquiry](func(i Inquiry) error {
		notified = append(notified, i)
		return nil
	}))

	require.NoError(t, svc.OnMessage(received("INQ1")))

	// Exactly one notification, for the DONE transition
	require.Len(t, notified, 1)
	assert.Equal(t, Done, notified[0].State())
	assert.Equal(t, "100-000", bondprice.Format(notified[0].Price()))

	stored, err := svc.Inquiry("INQ1")
	require.NoError(t, err)
	assert.Equal(t, Done, stored.State())
}

func TestSendQuoteNotifiesWithoutStateChange(t *testing.T) {
	svc := NewService()
	NewConnector(svc, refdata.OnTheRun())

	require.NoError(t, svc.OnMessage(received("INQ1")))

	var notified []Inquiry
	svc.AddListener(service.ListenerFunc[Inquiry](func(i Inquiry) error {
		notified = append(notified, i)
		return nil
	}))

	quote, err := bondprice.Parse("100-16+")
	require.NoError(t, err)
	require.NoError(t, svc.SendQuote("INQ1", quote))

	require.Len(t, notified, 1)
	assert.Equal(t, Done, notified[0].State())
	assert.Equal(t, "100-16+", bondprice.Format(notified[0].Price()))
}

func TestRejectInquiryDoesNotNotify(t *testing.T) {
	svc := NewService()
	NewConnector(svc, refdata.OnTheRun())

	require.NoError(t, svc.OnMessage(received("INQ1")))

	notified := 0
	svc.AddListener(service.ListenerFunc[Inquiry](func(Inquiry) error {
		notified++
		return nil
	}))

	require.NoError(t, svc.RejectInquiry("INQ1"))
	assert.Equal(t, 0, notified)

	stored, err := svc.Inquiry("INQ1")
	require.NoError(t, err)
	assert.Equal(t, Rejected, stored.State())
}

func TestSendQuoteUnknownInquiry(t *testing.T) {
	svc := NewService()
	err := svc.SendQuote("NOPE", bondprice.FromTicks(25600))
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestConnectorParsesInquiries(t *testing.T) {
	svc := NewService()
	conn := NewConnector(svc, refdata.OnTheRun())

	done := 0
	svc.AddListener(service.ListenerFunc[Inquiry](func(i Inquiry) error {
		if i.State() == Done {
			done++
		}
		return nil
	}))

	input := strings.Join([]string{
		"INQ1,91282CFV8,BUY,1000000,100-000,RECEIVED",
		"INQ2,91282CFV8,SELL,2000000,99-160,RECEIVED",
	}, "\n")
	require.NoError(t, conn.Subscribe(strings.NewReader(input)))
	assert.Equal(t, 2, done)

	stored, err := svc.Inquiry("INQ2")
	require.NoError(t, err)
	assert.Equal(t, booking.Sell, stored.Side())
	assert.Equal(t, int64(2000000), stored.Quantity())
}

func TestConnectorMalformedInquiry(t *testing.T) {
	svc := NewService()
	conn := NewConnector(svc, refdata.OnTheRun())

	for _, line := range []string{
		"INQ1,91282CFV8,BUY,1000000,100-000",
		"INQ1,91282CFV8,MAYBE,1000000,100-000,RECEIVED",
		"INQ1,91282CFV8,BUY,lots,100-000,RECEIVED",
		"INQ1,91282CFV8,BUY,1000000,bad,RECEIVED",
		"INQ1,91282CFV8,BUY,1000000,100-000,PONDERING",
	} {
		err := conn.Subscribe(strings.NewReader(line))
		assert.ErrorIs(t, err, service.ErrMalformedRecord, line)
	}
}

func TestInquiryToFields(t *testing.T) {
	i := NewInquiry("INQ1", testBond(), booking.Buy, 1000000, bondprice.FromTicks(25600), Quoted)
	assert.Equal(t, []string{"INQ1", "91282CFV8", "BUY", "1000000", "100-000", "QUOTED"}, i.ToFields())
	assert.Equal(t, "INQ1", i.PersistKey())
}
