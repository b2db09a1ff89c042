package marketdata

import (
	"github.com/rs/zerolog"

	"github.com/quantsys/bondflow/pkg/logging"
	"github.com/quantsys/bondflow/pkg/service"
)

// DefaultBookDepth is the number of price levels per side in one full book
// update from the market data feed.
const DefaultBookDepth = 10

// Service distributes order book market data, keyed on product identifier.
type Service struct {
	books  *service.Store[OrderBook]
	depth  int
	logger zerolog.Logger
}

// NewService creates a market data service with the given book depth.
func NewService(depth int) *Service {
	if depth <= 0 {
		depth = DefaultBookDepth
	}
	return &Service{
		books: service.NewStore("marketdata", func(b OrderBook) string {
			return b.Product().ProductID()
		}),
		depth:  depth,
		logger: logging.Component("marketdata"),
	}
}

// OnMessage is the ingestion entry point invoked by the connector. It upserts
// the book and notifies all listeners before returning.
func (s *Service) OnMessage(book OrderBook) error {
	return s.books.Ingest(book)
}

// AddListener registers a downstream listener.
func (s *Service) AddListener(l service.Listener[OrderBook]) {
	s.books.AddListener(l)
}

// Listeners returns the registered listeners in registration order.
func (s *Service) Listeners() []service.Listener[OrderBook] {
	return s.books.Listeners()
}

// Book returns the latest order book for a product.
func (s *Service) Book(productID string) (OrderBook, error) {
	return s.books.Get(productID)
}

// BookDepth returns the per-side depth of one feed batch.
func (s *Service) BookDepth() int {
	return s.depth
}

// BestBidOffer returns the best bid and offer of the stored book.
func (s *Service) BestBidOffer(productID string) (BidOffer, error) {
	book, err := s.books.Get(productID)
	if err != nil {
		return BidOffer{}, err
	}
	return book.BestBidOffer()
}

// AggregateDepth consolidates both sides of the stored book by price and
// replaces the stored book with the consolidated one.
func (s *Service) AggregateDepth(productID string) (OrderBook, error) {
	book, err := s.books.Get(productID)
	if err != nil {
		return OrderBook{}, err
	}

	aggregated := NewOrderBook(
		book.Product(),
		aggregateStack(book.BidStack(), Bid),
		aggregateStack(book.OfferStack(), Offer),
	)
	s.books.Put(aggregated)

	s.logger.Debug().
		Str("product", productID).
		Int("bid_levels", len(aggregated.BidStack())).
		Int("offer_levels", len(aggregated.OfferStack())).
		Msg("Aggregated book depth")
	return aggregated, nil
}
