package booking

import (
	"github.com/rs/zerolog"

	"github.com/quantsys/bondflow/pkg/execution"
	"github.com/quantsys/bondflow/pkg/logging"
	"github.com/quantsys/bondflow/pkg/marketdata"
	"github.com/quantsys/bondflow/pkg/service"
)

// Books that internal fills rotate through.
var tradeBooks = []string{"TRSY1", "TRSY2", "TRSY3"}

// Service books trades, keyed on trade id.
type Service struct {
	trades *service.Store[Trade]
	logger zerolog.Logger
}

// NewService creates a trade booking service.
func NewService() *Service {
	return &Service{
		trades: service.NewStore("booking", func(t Trade) string {
			return t.TradeID()
		}),
		logger: logging.Component("booking"),
	}
}

// OnMessage accepts a trade from a connector, stores it and notifies
// listeners.
func (s *Service) OnMessage(t Trade) error {
	return s.trades.Ingest(t)
}

// AddListener registers a downstream listener.
func (s *Service) AddListener(l service.Listener[Trade]) {
	s.trades.AddListener(l)
}

// Listeners returns the registered listeners in registration order.
func (s *Service) Listeners() []service.Listener[Trade] {
	return s.trades.Listeners()
}

// Trade returns a booked trade by id.
func (s *Service) Trade(tradeID string) (Trade, error) {
	return s.trades.Get(tradeID)
}

// BookTrade books a trade and notifies listeners.
func (s *Service) BookTrade(t Trade) error {
	s.logger.Debug().
		Str("trade_id", t.TradeID()).
		Str("product", t.Product().ProductID()).
		Str("book", t.Book()).
		Str("side", t.Side().String()).
		Int64("quantity", t.Quantity()).
		Msg("Booking trade")
	return s.trades.Ingest(t)
}

// ExecutionListener returns the listener to register on the execution
// service. Each executed order becomes one trade: an executed BID lifts a
// resting bid so the desk sells, an executed OFFER means the desk buys. The
// full order size, visible plus hidden, is booked, and fills rotate through
// the internal books in order.
func (s *Service) ExecutionListener() service.Listener[execution.Order] {
	return &executionListener{service: s}
}

type executionListener struct {
	service.NoopListener[execution.Order]
	service *Service
	count   int64
}

func (l *executionListener) OnAdd(o execution.Order) error {
	side := Buy
	if o.Side() == marketdata.Bid {
		side = Sell
	}
	book := tradeBooks[l.count%int64(len(tradeBooks))]
	l.count++

	trade := NewTrade(
		o.Product(),
		o.OrderID(),
		o.Price(),
		book,
		o.VisibleQuantity()+o.HiddenQuantity(),
		side,
	)
	return l.service.BookTrade(trade)
}
