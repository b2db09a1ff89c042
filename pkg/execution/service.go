package execution

import (
	"github.com/rs/zerolog"

	"github.com/quantsys/bondflow/pkg/logging"
	"github.com/quantsys/bondflow/pkg/service"
)

// Service places accepted execution orders on a venue, keyed on product
// identifier.
type Service struct {
	orders *service.Store[Order]
	logger zerolog.Logger
}

// NewService creates an execution service.
func NewService() *Service {
	return &Service{
		orders: service.NewStore("execution", func(o Order) string {
			return o.Product().ProductID()
		}),
		logger: logging.Component("execution"),
	}
}

// AddListener registers a downstream listener.
func (s *Service) AddListener(l service.Listener[Order]) {
	s.orders.AddListener(l)
}

// Listeners returns the registered listeners in registration order.
func (s *Service) Listeners() []service.Listener[Order] {
	return s.orders.Listeners()
}

// Order returns the latest executed order for a product.
func (s *Service) Order(productID string) (Order, error) {
	return s.orders.Get(productID)
}

// ExecuteOrder accepts an order for a venue, stores it and notifies all
// listeners exactly once.
func (s *Service) ExecuteOrder(order Order, market Market) error {
	s.logger.Debug().
		Str("product", order.Product().ProductID()).
		Str("order_id", order.OrderID()).
		Str("market", string(market)).
		Msg("Executing order")
	return s.orders.Ingest(order)
}

// AlgoListener returns the listener to register on the algo execution
// service.
func (s *Service) AlgoListener() service.Listener[AlgoOrder] {
	return &algoListener{service: s}
}

// algoListener forwards emitted algo orders into the execution service.
type algoListener struct {
	service.NoopListener[AlgoOrder]
	service *Service
}

func (l *algoListener) OnAdd(a AlgoOrder) error {
	return l.service.ExecuteOrder(a.Order(), a.Market())
}
