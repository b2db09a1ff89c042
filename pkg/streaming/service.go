package streaming

import (
	"github.com/rs/zerolog"

	"github.com/quantsys/bondflow/pkg/logging"
	"github.com/quantsys/bondflow/pkg/service"
)

// Service publishes derived price streams, keyed on product identifier.
type Service struct {
	streams *service.Store[Stream]
	logger  zerolog.Logger
}

// NewService creates a streaming service.
func NewService() *Service {
	return &Service{
		streams: service.NewStore("streaming", func(s Stream) string {
			return s.Product().ProductID()
		}),
		logger: logging.Component("streaming"),
	}
}

// AddListener registers a downstream listener.
func (s *Service) AddListener(l service.Listener[Stream]) {
	s.streams.AddListener(l)
}

// Listeners returns the registered listeners in registration order.
func (s *Service) Listeners() []service.Listener[Stream] {
	return s.streams.Listeners()
}

// Stream returns the latest published stream for a product.
func (s *Service) Stream(productID string) (Stream, error) {
	return s.streams.Get(productID)
}

// PublishPrice publishes a stream and notifies listeners.
func (s *Service) PublishPrice(stream Stream) error {
	s.logger.Debug().
		Str("product", stream.Product().ProductID()).
		Msg("Publishing price stream")
	return s.streams.Ingest(stream)
}

// AlgoListener returns the listener to register on the algo streaming
// service.
func (s *Service) AlgoListener() service.Listener[Stream] {
	return &algoListener{service: s}
}

type algoListener struct {
	service.NoopListener[Stream]
	service *Service
}

func (l *algoListener) OnAdd(stream Stream) error {
	return l.service.PublishPrice(stream)
}
