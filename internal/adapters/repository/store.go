// Package repository keeps mounted views in memory.
package repository

import (
	"container/list"
	"context"
	"sync"
)

// defaultMaxSize bounds a store built without WithMaxSize.
const defaultMaxSize = 10_000

type entry[V any] struct {
	id    string
	value V
}

// Store is a bounded in-memory map that evicts the least recently used
// entry when full. It is safe for concurrent use.
type Store[V any] struct {
	mu      sync.Mutex
	items   map[string]*list.Element
	order   *list.List // front = most recently used
	maxSize int
	onEvict func(id string)
}

// NewStore creates a Store.
func NewStore[V any](opts ...Option) *Store[V] {
	cfg := storeConfig{maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Store[V]{
		items:   make(map[string]*list.Element),
		order:   list.New(),
		maxSize: cfg.maxSize,
		onEvict: cfg.onEvict,
	}
}

// Put inserts or replaces the value stored under id.
func (s *Store[V]) Put(_ context.Context, id string, v V) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if el, ok := s.items[id]; ok {
		el.Value.(*entry[V]).value = v
		s.order.MoveToFront(el)
		return
	}
	if s.maxSize > 0 && len(s.items) >= s.maxSize {
		s.evictOldest()
	}
	s.items[id] = s.order.PushFront(&entry[V]{id: id, value: v})
}

// Get returns the value stored under id and marks it as recently used.
func (s *Store[V]) Get(_ context.Context, id string) (V, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.items[id]
	if !ok {
		var zero V
		return zero, ErrNotFound
	}
	s.order.MoveToFront(el)
	return el.Value.(*entry[V]).value, nil
}

// Delete removes id. Unknown ids are ignored.
func (s *Store[V]) Delete(_ context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if el, ok := s.items[id]; ok {
		s.order.Remove(el)
		delete(s.items, id)
	}
}

// Len returns the number of entries.
func (s *Store[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Clear drops every entry without calling the evict hook.
func (s *Store[V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]*list.Element)
	s.order.Init()
}

// evictOldest must be called with s.mu held.
func (s *Store[V]) evictOldest() {
	el := s.order.Back()
	if el == nil {
		return
	}
	id := el.Value.(*entry[V]).id
	s.order.Remove(el)
	delete(s.items, id)
	if s.onEvict != nil {
		s.onEvict(id)
	}
}
