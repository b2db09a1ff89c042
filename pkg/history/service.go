package history

import (
	"github.com/rs/zerolog"

	"github.com/quantsys/bondflow/pkg/logging"
	"github.com/quantsys/bondflow/pkg/service"
)

// Service persists every update on an upstream store as a timestamped audit
// row, and keeps the latest record per key for lookup.
type Service[V Record] struct {
	records   *service.Store[V]
	connector service.Connector[V]
	logger    zerolog.Logger
}

// NewService creates a history service persisting through the given
// connector.
func NewService[V Record](name string, c service.Connector[V]) *Service[V] {
	return &Service[V]{
		records: service.NewStore(name, func(v V) string {
			return v.PersistKey()
		}),
		connector: c,
		logger:    logging.Component(name),
	}
}

// Record returns the latest persisted record for a key.
func (s *Service[V]) Record(key string) (V, error) {
	return s.records.Get(key)
}

// PersistData stores the record and writes it through the connector.
func (s *Service[V]) PersistData(v V) error {
	s.records.Put(v)
	return s.connector.Publish(v)
}

// Listener returns the listener to register on the upstream store.
func (s *Service[V]) Listener() service.Listener[V] {
	return &persistListener[V]{service: s}
}

type persistListener[V Record] struct {
	service.NoopListener[V]
	service *Service[V]
}

func (l *persistListener[V]) OnAdd(v V) error {
	return l.service.PersistData(v)
}
