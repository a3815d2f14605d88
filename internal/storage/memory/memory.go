// Package memory provides the default in-memory implementation of storage.Store.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/mmynk/mentorboard/internal/metrics"
	"github.com/mmynk/mentorboard/internal/models"
	"github.com/mmynk/mentorboard/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

const backend = "memory"

// Store keeps the roster in a slice guarded by a RWMutex.
// Records are cloned on the way in and on the way out.
type Store struct {
	mu     sync.RWMutex
	people []models.Person
	ids    *storage.Sequence
}

// New creates an empty Store.
func New() *Store {
	return NewWithSequence(storage.NewSequence())
}

// NewWithSequence creates an empty Store that draws IDs from seq.
func NewWithSequence(seq *storage.Sequence) *Store {
	return &Store{ids: seq}
}

// List returns a copy of every record in store order.
func (s *Store) List(_ context.Context) ([]models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Person, len(s.people))
	for i, p := range s.people {
		out[i] = p.Clone()
	}
	return out, nil
}

// Get retrieves a record by ID.
func (s *Store) Get(_ context.Context, id int64) (*models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		p := s.people[i].Clone()
		return &p, nil
	}
	return nil, fmt.Errorf("%w: %d", storage.ErrNotFound, id)
}

// Create prepends a new record with a fresh ID.
func (s *Store) Create(_ context.Context, person models.Person) (models.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := person.Clone()
	stored.ID = s.ids.Next()
	s.people = append([]models.Person{stored}, s.people...)

	metrics.StoreOperations.WithLabelValues(backend, "create").Inc()
	return stored.Clone(), nil
}

// Update replaces the record in place. Unknown IDs are ignored.
func (s *Store) Update(_ context.Context, id int64, person models.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	stored := person.Clone()
	stored.ID = id
	s.people[i] = stored

	metrics.StoreOperations.WithLabelValues(backend, "update").Inc()
	return nil
}

// Delete removes the record. Unknown IDs are ignored.
func (s *Store) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	s.people = append(s.people[:i:i], s.people[i+1:]...)

	metrics.StoreOperations.WithLabelValues(backend, "delete").Inc()
	return nil
}

// ReplaceNonMentors keeps mentors in order and appends people with fresh IDs.
func (s *Store) ReplaceNonMentors(_ context.Context, people []models.Person) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.Person, 0, len(s.people)+len(people))
	for _, p := range s.people {
		if p.IsMentor {
			next = append(next, p)
		}
	}
	for _, p := range people {
		stored := p.Clone()
		stored.ID = s.ids.Next()
		next = append(next, stored)
	}
	s.people = next

	metrics.StoreOperations.WithLabelValues(backend, "replace_non_mentors").Inc()
	return len(people), nil
}

// Load replaces the whole roster.
func (s *Store) Load(_ context.Context, people []models.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.Person, len(people))
	for i, p := range people {
		next[i] = p.Clone()
		next[i].ID = s.ids.Next()
	}
	s.people = next

	metrics.StoreOperations.WithLabelValues(backend, "load").Inc()
	return nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error {
	return nil
}

func (s *Store) indexOf(id int64) int {
	for i := range s.people {
		if s.people[i].ID == id {
			return i
		}
	}
	return -1
}
