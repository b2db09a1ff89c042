package streaming

import (
	"github.com/nikolaydubina/fpdecimal"
	"github.com/rs/zerolog"

	"github.com/quantsys/bondflow/pkg/logging"
	"github.com/quantsys/bondflow/pkg/marketdata"
	"github.com/quantsys/bondflow/pkg/pricing"
	"github.com/quantsys/bondflow/pkg/service"
)

var half = fpdecimal.FromFloat(0.5)

// AlgoService derives a two-way stream from every mid/spread price update.
// Bid and offer sit half the spread either side of mid. Visible size
// alternates 1,000,000 and 2,000,000 on successive updates and the hidden
// size is always twice the visible. Every price produces a stream; there is
// no suppression.
type AlgoService struct {
	streams *service.Store[Stream]
	count   int64
	logger  zerolog.Logger
}

// NewAlgoService creates an algo streaming engine.
func NewAlgoService() *AlgoService {
	return &AlgoService{
		streams: service.NewStore("algostreaming", func(s Stream) string {
			return s.Product().ProductID()
		}),
		logger: logging.Component("algostreaming"),
	}
}

// AddListener registers a downstream listener.
func (s *AlgoService) AddListener(l service.Listener[Stream]) {
	s.streams.AddListener(l)
}

// Listeners returns the registered listeners in registration order.
func (s *AlgoService) Listeners() []service.Listener[Stream] {
	return s.streams.Listeners()
}

// Stream returns the latest derived stream for a product.
func (s *AlgoService) Stream(productID string) (Stream, error) {
	return s.streams.Get(productID)
}

// PublishPrice derives one stream from a price update and notifies
// listeners.
func (s *AlgoService) PublishPrice(p pricing.Price) error {
	halfSpread := p.Spread().Mul(half)
	bidPrice := p.Mid().Sub(halfSpread)
	offerPrice := p.Mid().Add(halfSpread)

	visible := ((s.count % 2) + 1) * 1000000
	s.count++
	hidden := 2 * visible

	stream := NewStream(
		p.Product(),
		NewOrder(bidPrice, visible, hidden, marketdata.Bid),
		NewOrder(offerPrice, visible, hidden, marketdata.Offer),
	)

	s.logger.Debug().
		Str("product", p.Product().ProductID()).
		Int64("visible", visible).
		Msg("Derived price stream")

	return s.streams.Ingest(stream)
}

// PriceListener returns the listener to register on the pricing service.
func (s *AlgoService) PriceListener() service.Listener[pricing.Price] {
	return &priceListener{service: s}
}

type priceListener struct {
	service.NoopListener[pricing.Price]
	service *AlgoService
}

func (l *priceListener) OnAdd(p pricing.Price) error {
	return l.service.PublishPrice(p)
}
