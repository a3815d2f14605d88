// Package storage provides abstractions for the people roster.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/mentorboard/internal/models"
)

// ErrNotFound is returned by Get when no record has the requested ID.
var ErrNotFound = errors.New("person not found")

// Store defines the interface for roster storage operations.
// Both backends keep the whole roster in process memory; nothing survives a restart.
type Store interface {
	// List returns deep copies of every record in store order.
	List(ctx context.Context) ([]models.Person, error)

	// Get retrieves a record by ID.
	// Returns ErrNotFound if no record matches.
	Get(ctx context.Context, id int64) (*models.Person, error)

	// Create assigns a fresh ID, prepends the record and returns the stored copy.
	Create(ctx context.Context, person models.Person) (models.Person, error)

	// Update replaces the record with the given ID wholesale, keeping its position.
	// An unknown ID is silently ignored.
	Update(ctx context.Context, id int64, person models.Person) error

	// Delete removes the record with the given ID.
	// An unknown ID is silently ignored. References to a deleted mentor are not cleared.
	Delete(ctx context.Context, id int64) error

	// ReplaceNonMentors keeps every mentor, drops every non-mentor and appends people.
	// Each appended record receives a fresh ID. Returns the number appended.
	ReplaceNonMentors(ctx context.Context, people []models.Person) (int, error)

	// Load replaces the whole roster with people, assigning fresh IDs in order.
	Load(ctx context.Context, people []models.Person) error

	// Close releases any resources held by the store.
	Close() error
}
