package pricing

import (
	"github.com/quantsys/bondflow/pkg/service"
)

// Service manages internal mid prices and spreads, keyed on product
// identifier.
type Service struct {
	prices *service.Store[Price]
}

// NewService creates an empty pricing service.
func NewService() *Service {
	return &Service{
		prices: service.NewStore("pricing", func(p Price) string {
			return p.Product().ProductID()
		}),
	}
}

// OnMessage upserts the price and notifies all listeners.
func (s *Service) OnMessage(p Price) error {
	return s.prices.Ingest(p)
}

// AddListener registers a downstream listener.
func (s *Service) AddListener(l service.Listener[Price]) {
	s.prices.AddListener(l)
}

// Listeners returns the registered listeners in registration order.
func (s *Service) Listeners() []service.Listener[Price] {
	return s.prices.Listeners()
}

// Price returns the latest price for a product.
func (s *Service) Price(productID string) (Price, error) {
	return s.prices.Get(productID)
}
