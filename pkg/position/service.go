package position

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/quantsys/bondflow/pkg/booking"
	"github.com/quantsys/bondflow/pkg/logging"
	"github.com/quantsys/bondflow/pkg/service"
)

// Service nets booked trades into per-book positions, keyed on product
// identifier.
type Service struct {
	positions *service.Store[Position]
	logger    zerolog.Logger
}

// NewService creates a position service.
func NewService() *Service {
	return &Service{
		positions: service.NewStore("position", func(p Position) string {
			return p.Product().ProductID()
		}),
		logger: logging.Component("position"),
	}
}

// AddListener registers a downstream listener.
func (s *Service) AddListener(l service.Listener[Position]) {
	s.positions.AddListener(l)
}

// Listeners returns the registered listeners in registration order.
func (s *Service) Listeners() []service.Listener[Position] {
	return s.positions.Listeners()
}

// Position returns the netted position for a product.
func (s *Service) Position(productID string) (Position, error) {
	return s.positions.Get(productID)
}

// AddTrade applies one booked trade to the instrument's position and notifies
// listeners once. A first trade on an instrument starts from a zero position.
func (s *Service) AddTrade(t booking.Trade) error {
	current, err := s.positions.Get(t.Product().ProductID())
	if errors.Is(err, service.ErrNotFound) {
		current = NewPosition(t.Product())
	} else if err != nil {
		return err
	}

	updated := current.AddPosition(t.Book(), t.Quantity(), t.Side())

	s.logger.Debug().
		Str("product", t.Product().ProductID()).
		Str("book", t.Book()).
		Int64("aggregate", updated.AggregatePosition()).
		Msg("Applied trade to position")

	return s.positions.Ingest(updated)
}

// TradeListener returns the listener to register on the trade booking
// service.
func (s *Service) TradeListener() service.Listener[booking.Trade] {
	return &tradeListener{service: s}
}

type tradeListener struct {
	service.NoopListener[booking.Trade]
	service *Service
}

func (l *tradeListener) OnAdd(t booking.Trade) error {
	return l.service.AddTrade(t)
}
