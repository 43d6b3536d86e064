package store

import (
	"sync"
	"time"
)

// Store is a keyed, bounded collection holding the entities that accumulate
// across learn runs (tasks, events, performance records). Put is an upsert.
// Implementations must be safe for concurrent use.
type Store[T any] interface {
	Put(key string, value T) error
	Get(key string) (T, bool)
	Delete(key string) error
	Len() int
	// Keys returns keys in insertion order, oldest first.
	Keys() []string
	// Values returns values in insertion order, oldest first.
	Values() []T
	Clear() error
}

// EvictFunc observes an entry leaving a bounded store, so owners can cascade
// dependent entries and keep referential integrity.
type EvictFunc[T any] func(key string, value T)

// Option configures a bounded store.
type Option[T any] func(*Bounded[T])

// WithCapacity bounds the number of resident entries. Zero means unbounded.
func WithCapacity[T any](n int) Option[T] {
	return func(s *Bounded[T]) {
		s.capacity = n
	}
}

// WithMaxAge expires entries older than d. Zero means no age limit.
func WithMaxAge[T any](d time.Duration) Option[T] {
	return func(s *Bounded[T]) {
		s.maxAge = d
	}
}

// WithOnEvict registers a callback invoked for every evicted or expired
// entry. The callback runs while the store lock is held; it must not call
// back into the store.
func WithOnEvict[T any](fn EvictFunc[T]) Option[T] {
	return func(s *Bounded[T]) {
		s.onEvict = fn
	}
}

// Bounded is an in-memory Store with insertion-order (oldest first) eviction
// by capacity and optional age-based expiry.
type Bounded[T any] struct {
	mu       sync.RWMutex
	entries  map[string]*boundedEntry[T]
	order    *entryList
	capacity int
	maxAge   time.Duration
	onEvict  EvictFunc[T]
}

type boundedEntry[T any] struct {
	value   T
	addedAt time.Time
	element *listElement
}

// Insertion-ordered list. New entries are pushed to the front; eviction takes
// from the back, so the back is always the oldest resident entry.
type listElement struct {
	key  string
	prev *listElement
	next *listElement
}

type entryList struct {
	head *listElement
	tail *listElement
	size int
}

func newEntryList() *entryList {
	head := &listElement{}
	tail := &listElement{}
	head.next = tail
	tail.prev = head
	return &entryList{head: head, tail: tail}
}

func (l *entryList) pushFront(key string) *listElement {
	elem := &listElement{key: key}
	elem.prev = l.head
	elem.next = l.head.next
	l.head.next.prev = elem
	l.head.next = elem
	l.size++
	return elem
}

func (l *entryList) removeElement(elem *listElement) {
	elem.prev.next = elem.next
	elem.next.prev = elem.prev
	l.size--
}

func (l *entryList) back() *listElement {
	if l.tail.prev == l.head {
		return nil
	}
	return l.tail.prev
}

// NewBounded creates a bounded in-memory store.
func NewBounded[T any](opts ...Option[T]) *Bounded[T] {
	s := &Bounded[T]{
		entries: make(map[string]*boundedEntry[T]),
		order:   newEntryList(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Put upserts a value. Updating an existing key keeps its insertion position.
func (s *Bounded[T]) Put(key string, value T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneExpiredLocked()

	if existing, exists := s.entries[key]; exists {
		existing.value = value
		return nil
	}

	if s.capacity > 0 && s.order.size >= s.capacity {
		s.evictOldestLocked()
	}

	s.entries[key] = &boundedEntry[T]{
		value:   value,
		addedAt: time.Now(),
		element: s.order.pushFront(key),
	}
	return nil
}

func (s *Bounded[T]) Get(key string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.entries[key]
	if !exists {
		var zero T
		return zero, false
	}
	if s.expiredLocked(entry) {
		var zero T
		return zero, false
	}
	return entry.value, true
}

func (s *Bounded[T]) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, exists := s.entries[key]; exists {
		delete(s.entries, key)
		s.order.removeElement(entry.element)
	}
	return nil
}

func (s *Bounded[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneExpiredLocked()
	return len(s.entries)
}

func (s *Bounded[T]) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneExpiredLocked()

	keys := make([]string, 0, s.order.size)
	for elem := s.order.back(); elem != nil && elem != s.order.head; elem = elem.prev {
		keys = append(keys, elem.key)
	}
	return keys
}

func (s *Bounded[T]) Values() []T {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneExpiredLocked()

	values := make([]T, 0, s.order.size)
	for elem := s.order.back(); elem != nil && elem != s.order.head; elem = elem.prev {
		values = append(values, s.entries[elem.key].value)
	}
	return values
}

func (s *Bounded[T]) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]*boundedEntry[T])
	s.order = newEntryList()
	return nil
}

func (s *Bounded[T]) expiredLocked(entry *boundedEntry[T]) bool {
	return s.maxAge > 0 && time.Since(entry.addedAt) > s.maxAge
}

func (s *Bounded[T]) evictOldestLocked() {
	elem := s.order.back()
	if elem == nil {
		return
	}
	entry := s.entries[elem.key]
	delete(s.entries, elem.key)
	s.order.removeElement(elem)
	if s.onEvict != nil {
		s.onEvict(elem.key, entry.value)
	}
}

func (s *Bounded[T]) pruneExpiredLocked() {
	if s.maxAge <= 0 {
		return
	}
	for {
		elem := s.order.back()
		if elem == nil {
			return
		}
		entry := s.entries[elem.key]
		if !s.expiredLocked(entry) {
			return
		}
		delete(s.entries, elem.key)
		s.order.removeElement(elem)
		if s.onEvict != nil {
			s.onEvict(elem.key, entry.value)
		}
	}
}
