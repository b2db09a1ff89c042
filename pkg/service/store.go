package service

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Connector bridges a store to the outside world. Subscribe reads a bounded
// record stream to completion, constructing one value per record (or record
// group) and handing it to the owning store's Ingest. Publish serializes a
// value outward; subscribe-only connectors implement it as a no-op.
type Connector[V any] interface {
	Publish(v V) error
	Subscribe(r io.Reader) error
}

// Store maps a string key to the latest value of type V and owns the ordered
// list of listeners notified on ingestion. Keys are derived from values by
// the keyOf function supplied at construction.
//
// Store is not safe for concurrent use; the propagation graph runs on a
// single logical thread and every Ingest completes its entire downstream
// fan-out before returning.
type Store[V any] struct {
	name      string
	keyOf     func(V) string
	values    map[string]V
	listeners []Listener[V]
	logger    zerolog.Logger
}

// NewStore creates an empty store. name identifies the store in logs.
func NewStore[V any](name string, keyOf func(V) string) *Store[V] {
	return &Store[V]{
		name:   name,
		keyOf:  keyOf,
		values: make(map[string]V),
		logger: log.With().Str("store", name).Logger(),
	}
}

// Get returns the latest value for key.
func (s *Store[V]) Get(key string) (V, error) {
	v, ok := s.values[key]
	if !ok {
		return v, fmt.Errorf("%s: %q: %w", s.name, key, ErrNotFound)
	}
	return v, nil
}

// Put upserts v without notifying listeners. It is the entry point for store
// variants that hold data but do not propagate it.
func (s *Store[V]) Put(v V) {
	s.values[s.keyOf(v)] = v
}

// Ingest upserts v and synchronously invokes OnAdd on every registered
// listener, in registration order, before returning. The first listener
// error aborts the remaining fan-out and is returned to the caller.
func (s *Store[V]) Ingest(v V) error {
	key := s.keyOf(v)
	s.values[key] = v
	s.logger.Debug().Str("key", key).Msg("Ingested value")
	return s.NotifyAdd(v)
}

// NotifyAdd dispatches an add event to all listeners without touching the
// stored data.
func (s *Store[V]) NotifyAdd(v V) error {
	for i, l := range s.listeners {
		if err := l.OnAdd(v); err != nil {
			return fmt.Errorf("%s: listener %d: %w", s.name, i, err)
		}
	}
	return nil
}

// AddListener appends l to the dispatch list. Listeners must outlive the
// store.
func (s *Store[V]) AddListener(l Listener[V]) {
	s.listeners = append(s.listeners, l)
}

// Listeners returns the dispatch list in registration order.
func (s *Store[V]) Listeners() []Listener[V] {
	return s.listeners
}

// Len returns the number of stored keys.
func (s *Store[V]) Len() int {
	return len(s.values)
}

// Keys returns all stored keys in unspecified order.
func (s *Store[V]) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	return keys
}
