package execution

import (
	"github.com/rs/zerolog"

	"github.com/quantsys/bondflow/pkg/bondprice"
	"github.com/quantsys/bondflow/pkg/logging"
	"github.com/quantsys/bondflow/pkg/marketdata"
	"github.com/quantsys/bondflow/pkg/service"
)

// AlgoOrder wraps an execution order with the venue it is routed to.
type AlgoOrder struct {
	order  Order
	market Market
}

// NewAlgoOrder pairs an execution order with a venue.
func NewAlgoOrder(order Order, market Market) AlgoOrder {
	return AlgoOrder{order: order, market: market}
}

// Order returns the wrapped execution order.
func (a AlgoOrder) Order() Order {
	return a.order
}

// Market returns the venue.
func (a AlgoOrder) Market() Market {
	return a.market
}

// AlgoService decides, on every inbound book update, whether to cross the
// spread. When the spread is within the threshold it emits exactly one
// MARKET order at the best level of the chosen side, alternating sides on
// successive emissions starting with BID. A wider spread suppresses the
// update silently.
type AlgoService struct {
	algoOrders *service.Store[AlgoOrder]
	threshold  int64 // in 1/256 ticks
	market     Market
	ids        IDSource
	count      int64
	logger     zerolog.Logger
}

// NewAlgoService creates an algo execution engine.
func NewAlgoService(cfg *Config, ids IDSource) *AlgoService {
	return &AlgoService{
		algoOrders: service.NewStore("algoexecution", func(a AlgoOrder) string {
			return a.Order().Product().ProductID()
		}),
		threshold: cfg.SpreadThresholdTicks,
		market:    cfg.Market,
		ids:       ids,
		logger:    logging.Component("algoexecution"),
	}
}

// AddListener registers a downstream listener.
func (s *AlgoService) AddListener(l service.Listener[AlgoOrder]) {
	s.algoOrders.AddListener(l)
}

// Listeners returns the registered listeners in registration order.
func (s *AlgoService) Listeners() []service.Listener[AlgoOrder] {
	return s.algoOrders.Listeners()
}

// AlgoOrder returns the latest emitted order for a product.
func (s *AlgoService) AlgoOrder(productID string) (AlgoOrder, error) {
	return s.algoOrders.Get(productID)
}

// BookListener returns the listener to register on the market data service.
func (s *AlgoService) BookListener() service.Listener[marketdata.OrderBook] {
	return &bookListener{service: s}
}

// Execute evaluates one book update and emits at most one child order.
func (s *AlgoService) Execute(book marketdata.OrderBook) error {
	bidOffer, err := book.BestBidOffer()
	if err != nil {
		return err
	}

	spreadTicks := bondprice.Ticks(bidOffer.Offer().Price()) - bondprice.Ticks(bidOffer.Bid().Price())
	if spreadTicks > s.threshold {
		s.logger.Debug().
			Str("product", book.Product().ProductID()).
			Int64("spread_ticks", spreadTicks).
			Msg("Spread too wide, suppressing")
		return nil
	}

	level := bidOffer.Bid()
	if s.count%2 == 1 {
		level = bidOffer.Offer()
	}
	s.count++

	order := NewOrder(
		book.Product(),
		level.Side(),
		s.ids.NextID(),
		TypeMarket,
		level.Price(),
		level.Quantity(),
		0,
		"",
		false,
	)

	s.logger.Info().
		Str("product", book.Product().ProductID()).
		Str("order_id", order.OrderID()).
		Str("side", order.Side().String()).
		Str("price", bondprice.Format(order.Price())).
		Int64("quantity", order.VisibleQuantity()).
		Msg("Crossing spread")

	return s.algoOrders.Ingest(NewAlgoOrder(order, s.market))
}

// bookListener feeds market data updates into the algo engine.
type bookListener struct {
	service.NoopListener[marketdata.OrderBook]
	service *AlgoService
}

func (l *bookListener) OnAdd(book marketdata.OrderBook) error {
	return l.service.Execute(book)
}
