package risk

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantsys/bondflow/pkg/booking"
	"github.com/quantsys/bondflow/pkg/execution"
	"github.com/quantsys/bondflow/pkg/marketdata"
	"github.com/quantsys/bondflow/pkg/position"
	"github.com/quantsys/bondflow/pkg/refdata"
	"github.com/quantsys/bondflow/pkg/service"
)

type pipelineIDs struct{ n int }

func (p *pipelineIDs) NextID() string {
	p.n++
	return fmt.Sprintf("P-%d", p.n)
}

// One crossable book batch flows from the feed all the way to a risk figure.
func TestBookUpdatePropagatesToRisk(t *testing.T) {
	src := refdata.OnTheRun()

	mdSvc := marketdata.NewService(2)
	mdConn := marketdata.NewConnector(mdSvc, src)

	algo := execution.NewAlgoService(
		&execution.Config{SpreadThresholdTicks: 2, Market: execution.BrokerTec},
		&pipelineIDs{},
	)
	exec := execution.NewService()
	books := booking.NewService()
	positions := position.NewService()
	risks := NewService(src)

	mdSvc.AddListener(algo.BookListener())
	algo.AddListener(exec.AlgoListener())
	exec.AddListener(books.ExecutionListener())
	books.AddListener(positions.TradeListener())
	positions.AddListener(risks.PositionListener())

	var booked []booking.Trade
	books.AddListener(service.ListenerFunc[booking.Trade](func(tr booking.Trade) error {
		booked = append(booked, tr)
		return nil
	}))

	// Depth-2 batch, best bid 100-000 vs best offer 100-001: one tick wide
	input := strings.Join([]string{
		"91282CFV8,100-000,1000000,BID",
		"91282CFV8,99-310,2000000,BID",
		"91282CFV8,100-001,1000000,OFFER",
		"91282CFV8,100-010,2000000,OFFER",
	}, "\n")
	require.NoError(t, mdConn.Subscribe(strings.NewReader(input)))

	// First ever emission lifts the best bid, so the desk sells 1,000,000
	require.Len(t, booked, 1)
	assert.Equal(t, booking.Sell, booked[0].Side())
	assert.Equal(t, "P-1", booked[0].TradeID())
	assert.Equal(t, "TRSY1", booked[0].Book())

	p, err := positions.Position("91282CFV8")
	require.NoError(t, err)
	assert.Equal(t, int64(-1000000), p.AggregatePosition())

	figure, err := risks.PV01("91282CFV8")
	require.NoError(t, err)
	assert.Equal(t, int64(-1000000), figure.Quantity())
}

// A wide book must leave every downstream store untouched.
func TestWideBookLeavesNoFootprint(t *testing.T) {
	src := refdata.OnTheRun()

	mdSvc := marketdata.NewService(1)
	mdConn := marketdata.NewConnector(mdSvc, src)

	algo := execution.NewAlgoService(
		&execution.Config{SpreadThresholdTicks: 2, Market: execution.BrokerTec},
		&pipelineIDs{},
	)
	exec := execution.NewService()
	risks := NewService(src)

	mdSvc.AddListener(algo.BookListener())
	algo.AddListener(exec.AlgoListener())

	input := "91282CFV8,100-000,1000000,BID\n91282CFV8,100-200,1000000,OFFER\n"
	require.NoError(t, mdConn.Subscribe(strings.NewReader(input)))

	_, err := exec.Order("91282CFV8")
	assert.ErrorIs(t, err, service.ErrNotFound)
	_, err = risks.PV01("91282CFV8")
	assert.ErrorIs(t, err, service.ErrNotFound)
}
