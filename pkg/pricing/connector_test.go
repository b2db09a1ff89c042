package pricing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantsys/bondflow/pkg/bondprice"
	"github.com/quantsys/bondflow/pkg/refdata"
	"github.com/quantsys/bondflow/pkg/service"
)

func TestConnectorDerivesMidAndSpread(t *testing.T) {
	svc := NewService()
	conn := NewConnector(svc, refdata.OnTheRun())

	var prices []Price
	svc.AddListener(service.ListenerFunc[Price](func(p Price) error {
		prices = append(prices, p)
		return nil
	}))

	// bid 100-000, offer 100-004: mid 100-002, spread 4 ticks
	require.NoError(t, conn.Subscribe(strings.NewReader("91282CFV8,100-000,100-004\n")))
	require.Len(t, prices, 1)

	p := prices[0]
	assert.Equal(t, "91282CFV8", p.Product().ProductID())
	assert.Equal(t, "100-002", bondprice.Format(p.Mid()))
	assert.Equal(t, int64(4), bondprice.Ticks(p.Spread()))

	stored, err := svc.Price("91282CFV8")
	require.NoError(t, err)
	assert.True(t, stored.Mid().Equal(p.Mid()))
}

func TestConnectorOddSpreadMid(t *testing.T) {
	svc := NewService()
	conn := NewConnector(svc, refdata.OnTheRun())

	// bid 100-000, offer 100-001: mid is half a tick up
	require.NoError(t, conn.Subscribe(strings.NewReader("91282CFV8,100-000,100-001\n")))

	p, err := svc.Price("91282CFV8")
	require.NoError(t, err)
	assert.Equal(t, int64(1), bondprice.Ticks(p.Spread()))
	// mid sits exactly between bid and offer
	twice := p.Mid().Add(p.Mid())
	want := bondprice.FromTicks(2*100*bondprice.TicksPerPoint + 1)
	assert.True(t, twice.Equal(want))
}

func TestConnectorMalformed(t *testing.T) {
	svc := NewService()
	conn := NewConnector(svc, refdata.OnTheRun())

	for _, line := range []string{
		"91282CFV8,100-000",
		"91282CFV8,nope,100-004",
		"91282CFV8,100-000,nope",
	} {
		err := conn.Subscribe(strings.NewReader(line))
		assert.ErrorIs(t, err, service.ErrMalformedRecord, line)
	}
}

func TestToFields(t *testing.T) {
	bond, err := refdata.OnTheRun().BondByID("91282CFV8")
	require.NoError(t, err)

	p := NewPrice(bond, bondprice.FromTicks(25602), bondprice.FromTicks(4))
	assert.Equal(t, []string{"91282CFV8", "100-002", "0-00+"}, p.ToFields())
	assert.Equal(t, "91282CFV8", p.PersistKey())
}
