// Package cache is a key-based store of server resource snapshots.
// Any number of screens read the same key; a mutation invalidates the
// key and the next fetch to land replaces the snapshot for everyone.
// Racing refetches against the same key are deliberately unordered:
// the last one to resolve determines what renders.
package cache

import (
	"sync"
	"time"
)

// Key identifies a cached server resource.
type Key string

const (
	Tickets Key = "tickets"
	Users   Key = "users"
	Logs    Key = "logs"
	Me      Key = "me"
)

type entry struct {
	value     any
	version   uint64
	stale     bool
	fetchedAt time.Time
}

// Store holds one snapshot per key.
type Store struct {
	mu      sync.Mutex
	entries map[Key]entry
}

// NewStore creates an empty cache. Every key starts stale: the first
// read from any screen triggers a fetch.
func NewStore() *Store {
	return &Store{entries: make(map[Key]entry)}
}

// Put stores a freshly fetched snapshot and clears the stale bit.
func (s *Store) Put(key Key, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entries[key]
	e.value = value
	e.version++
	e.stale = false
	e.fetchedAt = time.Now()
	s.entries[key] = e
}

// Get returns the last snapshot for key. ok is false when the key has
// never been fetched.
func (s *Store) Get(key Key) (value any, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, exists := s.entries[key]
	if !exists || e.value == nil {
		return nil, false
	}
	return e.value, true
}

// Invalidate marks the key stale. The stale snapshot keeps serving
// reads until the refetch lands, so screens never flash empty.
func (s *Store) Invalidate(key Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entries[key]
	e.stale = true
	s.entries[key] = e
}

// Stale reports whether key needs a refetch: never loaded or
// explicitly invalidated.
func (s *Store) Stale(key Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, exists := s.entries[key]
	if !exists || e.value == nil {
		return true
	}
	return e.stale
}

// Version returns a counter that increments on every Put. Screens can
// compare versions across renders to detect that a key changed.
func (s *Store) Version(key Key) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[key].version
}

// GetAs reads key as a T. ok is false when the key is missing or holds
// a different type.
func GetAs[T any](s *Store, key Key) (T, bool) {
	var zero T
	value, ok := s.Get(key)
	if !ok {
		return zero, false
	}
	typed, ok := value.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
