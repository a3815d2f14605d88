// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
//
// The default DSN is ":memory:", so the roster still lives only as long as the process.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/mentorboard/internal/metrics"
	"github.com/mmynk/mentorboard/internal/models"
	"github.com/mmynk/mentorboard/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

const backend = "sqlite"

// MemoryDSN keeps the database in process memory.
const MemoryDSN = ":memory:"

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db  *sql.DB
	ids *storage.Sequence
}

// New creates a new SQLiteStore with the given DSN.
// File DSNs get their parent directory created. Migrations run automatically.
func New(dsn string) (*SQLiteStore, error) {
	return NewWithSequence(dsn, storage.NewSequence())
}

// NewWithSequence is New with an explicit ID sequence.
func NewWithSequence(dsn string, seq *storage.Sequence) (*SQLiteStore, error) {
	if dsn == "" {
		dsn = MemoryDSN
	}
	if !isMemoryDSN(dsn) {
		dir := filepath.Dir(strings.TrimPrefix(dsn, "file:"))
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	var maxID sql.NullInt64
	if err := db.QueryRow("SELECT MAX(id) FROM people").Scan(&maxID); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to read max id: %w", err)
	}
	if maxID.Valid {
		seq.Observe(maxID.Int64)
	}

	return &SQLiteStore{db: db, ids: seq}, nil
}

func isMemoryDSN(dsn string) bool {
	return dsn == MemoryDSN || strings.Contains(dsn, "mode=memory")
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// List returns every person ordered by roster position.
func (s *SQLiteStore) List(ctx context.Context) ([]models.Person, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, payload FROM people ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}
	defer rows.Close()

	people := []models.Person{}
	for rows.Next() {
		var id int64
		var payload []byte
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		p, err := decode(id, payload)
		if err != nil {
			return nil, err
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate people: %w", err)
	}
	return people, nil
}

// Get retrieves a person by ID.
func (s *SQLiteStore) Get(ctx context.Context, id int64) (*models.Person, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, "SELECT payload FROM people WHERE id = ?", id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", storage.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get person: %w", err)
	}

	p, err := decode(id, payload)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts the person before every existing row.
func (s *SQLiteStore) Create(ctx context.Context, person models.Person) (models.Person, error) {
	stored := person.Clone()
	stored.ID = s.ids.Next()

	payload, err := json.Marshal(stored)
	if err != nil {
		return models.Person{}, fmt.Errorf("failed to encode person: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO people (id, position, is_mentor, payload)
		VALUES (?, (SELECT COALESCE(MIN(position), 0) - 1 FROM people), ?, ?)`,
		stored.ID, stored.IsMentor, payload,
	)
	if err != nil {
		return models.Person{}, fmt.Errorf("failed to insert person: %w", err)
	}

	metrics.StoreOperations.WithLabelValues(backend, "create").Inc()
	return stored, nil
}

// Update replaces the payload of an existing row. Unknown IDs are ignored.
func (s *SQLiteStore) Update(ctx context.Context, id int64, person models.Person) error {
	stored := person.Clone()
	stored.ID = id

	payload, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to encode person: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE people SET is_mentor = ?, payload = ? WHERE id = ?",
		stored.IsMentor, payload, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update person: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		metrics.StoreOperations.WithLabelValues(backend, "update").Inc()
	}
	return nil
}

// Delete removes a row. Unknown IDs are ignored.
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM people WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		metrics.StoreOperations.WithLabelValues(backend, "delete").Inc()
	}
	return nil
}

// ReplaceNonMentors deletes every non-mentor and appends people after the mentors
// in a single transaction.
func (s *SQLiteStore) ReplaceNonMentors(ctx context.Context, people []models.Person) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM people WHERE is_mentor = 0"); err != nil {
		return 0, fmt.Errorf("failed to delete non-mentors: %w", err)
	}

	var last int64
	if err := tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(position), 0) FROM people").Scan(&last); err != nil {
		return 0, fmt.Errorf("failed to read last position: %w", err)
	}

	if err := s.insertAll(ctx, tx, people, last+1); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	metrics.StoreOperations.WithLabelValues(backend, "replace_non_mentors").Inc()
	return len(people), nil
}

// Load replaces every row with people.
func (s *SQLiteStore) Load(ctx context.Context, people []models.Person) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM people"); err != nil {
		return fmt.Errorf("failed to clear people: %w", err)
	}
	if err := s.insertAll(ctx, tx, people, 1); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	metrics.StoreOperations.WithLabelValues(backend, "load").Inc()
	return nil
}

func (s *SQLiteStore) insertAll(ctx context.Context, tx *sql.Tx, people []models.Person, firstPosition int64) error {
	for i, p := range people {
		stored := p.Clone()
		stored.ID = s.ids.Next()

		payload, err := json.Marshal(stored)
		if err != nil {
			return fmt.Errorf("failed to encode person: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO people (id, position, is_mentor, payload) VALUES (?, ?, ?, ?)",
			stored.ID, firstPosition+int64(i), stored.IsMentor, payload,
		)
		if err != nil {
			return fmt.Errorf("failed to insert person: %w", err)
		}
	}
	return nil
}

func decode(id int64, payload []byte) (models.Person, error) {
	var p models.Person
	if err := json.Unmarshal(payload, &p); err != nil {
		return models.Person{}, fmt.Errorf("failed to decode person %d: %w", id, err)
	}
	p.ID = id
	return p, nil
}
