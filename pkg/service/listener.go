package service

// Listener receives synchronous callbacks when a store accepts new data.
// Dispatch happens in registration order on the caller's stack; a listener
// that returns an error aborts the remaining fan-out of that ingestion.
//
// Only OnAdd is exercised by the current event graph. OnRemove and OnUpdate
// are reserved extension points for removal/update flows.
type Listener[V any] interface {
	OnAdd(v V) error
	OnRemove(v V) error
	OnUpdate(v V) error
}

// NoopListener provides no-op OnRemove/OnUpdate so concrete listeners only
// have to implement OnAdd. Embed it by value.
type NoopListener[V any] struct{}

// OnRemove implements Listener
func (NoopListener[V]) OnRemove(V) error { return nil }

// OnUpdate implements Listener
func (NoopListener[V]) OnUpdate(V) error { return nil }

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc[V any] func(v V) error

// OnAdd implements Listener
func (f ListenerFunc[V]) OnAdd(v V) error { return f(v) }

// OnRemove implements Listener
func (f ListenerFunc[V]) OnRemove(V) error { return nil }

// OnUpdate implements Listener
func (f ListenerFunc[V]) OnUpdate(V) error { return nil }
