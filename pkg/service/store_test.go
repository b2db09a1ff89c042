package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	id    string
	value int
}

func newRecordStore() *Store[record] {
	return NewStore("test", func(r record) string { return r.id })
}

func TestStoreGetPut(t *testing.T) {
	s := newRecordStore()

	_, err := s.Get("a")
	assert.ErrorIs(t, err, ErrNotFound)

	s.Put(record{id: "a", value: 1})
	got, err := s.Get("a")
	require.NoError(t, err)
	assert.Equal(t, 1, got.value)

	// Put replaces silently
	s.Put(record{id: "a", value: 2})
	got, _ = s.Get("a")
	assert.Equal(t, 2, got.value)
	assert.Equal(t, 1, s.Len())
}

func TestStorePutDoesNotNotify(t *testing.T) {
	s := newRecordStore()
	calls := 0
	s.AddListener(ListenerFunc[record](func(record) error {
		calls++
		return nil
	}))

	s.Put(record{id: "a"})
	assert.Equal(t, 0, calls)
}

func TestStoreIngestNotifiesInOrder(t *testing.T) {
	s := newRecordStore()

	var order []string
	for _, name := range []string{"first", "second", "third"} {
		name := name
		s.AddListener(ListenerFunc[record](func(record) error {
			order = append(order, name)
			return nil
		}))
	}

	require.NoError(t, s.Ingest(record{id: "a", value: 1}))
	assert.Equal(t, []string{"first", "second", "third"}, order)

	got, err := s.Get("a")
	require.NoError(t, err)
	assert.Equal(t, 1, got.value)
}

func TestStoreFirstListenerErrorAbortsFanout(t *testing.T) {
	s := newRecordStore()
	boom := errors.New("boom")

	reached := false
	s.AddListener(ListenerFunc[record](func(record) error { return boom }))
	s.AddListener(ListenerFunc[record](func(record) error {
		reached = true
		return nil
	}))

	err := s.Ingest(record{id: "a"})
	assert.ErrorIs(t, err, boom)
	if reached {
		t.Error("second listener ran after first returned an error")
	}

	// The value is stored even though dispatch failed
	_, err = s.Get("a")
	assert.NoError(t, err)
}

func TestNoopListenerReservedEvents(t *testing.T) {
	var l NoopListener[record]
	assert.NoError(t, l.OnRemove(record{}))
	assert.NoError(t, l.OnUpdate(record{}))
}
