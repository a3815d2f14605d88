// Package draft implements the record editor: a working copy of one Person that
// collects edits, knows whether it differs from the record it was opened from, and
// only writes back to the store on an explicit save.
package draft

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/mentorboard/internal/auth"
	"github.com/mmynk/mentorboard/internal/models"
)

var (
	ErrNotEditing          = errors.New("no record is open for editing")
	ErrConfirmingExit      = errors.New("exit confirmation pending")
	ErrNotConfirming       = errors.New("no exit confirmation pending")
	ErrEmptyTaskName       = errors.New("task name is required")
	ErrEmptyObservation    = errors.New("observation text is required")
	ErrMentorRequired      = errors.New("assign a mentor before adding observations")
	ErrInvalidAmount       = errors.New("amount must be a non-negative number")
	ErrInvalidDate         = errors.New("date must be YYYY-MM-DD")
	ErrInvalidSlot         = errors.New("meeting slot must be between 1 and 5")
	ErrInvalidStep         = errors.New("unknown checklist step")
	ErrInvalidStatus       = errors.New("unknown task status")
	ErrTaskNotFound        = errors.New("task not found")
	ErrObservationNotFound = errors.New("observation not found")
	ErrUnknownEdit         = errors.New("unknown edit")
)

// State is the editor's lifecycle state.
type State int

const (
	StateClosed State = iota
	StateEditing
	StateConfirmingExit
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateEditing:
		return "editing"
	case StateConfirmingExit:
		return "confirming_exit"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Committer receives the draft on save. storage.Store satisfies it.
type Committer interface {
	Update(ctx context.Context, id int64, person models.Person) error
}

// Option configures a Session.
type Option func(*Session)

// WithClock sets the time source used to stamp tasks and observations.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithIDGenerator sets how task and observation IDs are made from their prefix.
func WithIDGenerator(gen func(prefix string) string) Option {
	return func(s *Session) { s.newID = gen }
}

// Session edits one Person at a time. It is not safe for concurrent use.
type Session struct {
	committer Committer
	now       func() time.Time
	newID     func(prefix string) string

	state    State
	baseline models.Person
	draft    models.Person

	// removal holds an observation delete until the shared secret is given.
	removal *auth.Prompt
}

// NewSession creates a closed session.
func NewSession(committer Committer, authz auth.Authorizer, opts ...Option) *Session {
	s := &Session{
		committer: committer,
		now:       time.Now,
		newID:     func(prefix string) string { return prefix + uuid.NewString() },
		removal:   auth.NewPrompt(authz, auth.ActionDeleteObservation),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open starts editing a copy of person. Any previous draft is dropped.
func (s *Session) Open(person models.Person) {
	s.baseline = person.Clone()
	s.draft = person.Clone()
	s.state = StateEditing
	s.removal.Cancel()
	slog.Debug("Draft opened", "person_id", person.ID)
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Draft returns a copy of the working record.
func (s *Session) Draft() models.Person {
	return s.draft.Clone()
}

// Baseline returns a copy of the record as it was when opened.
func (s *Session) Baseline() models.Person {
	return s.baseline.Clone()
}

// IsDirty reports whether the draft differs from the baseline.
func (s *Session) IsDirty() bool {
	if s.state == StateClosed {
		return false
	}
	return !s.draft.Equal(s.baseline)
}

// RequestClose closes a clean draft directly and asks for confirmation on a dirty one.
// It reports whether the session is now closed.
func (s *Session) RequestClose() (bool, error) {
	if err := s.editable(); err != nil {
		return false, err
	}
	if s.IsDirty() {
		s.state = StateConfirmingExit
		return false, nil
	}
	s.close()
	return true, nil
}

// SaveAndExit commits the draft from the exit confirmation and closes.
func (s *Session) SaveAndExit(ctx context.Context) (models.Person, error) {
	if s.state != StateConfirmingExit {
		return models.Person{}, ErrNotConfirming
	}
	return s.commit(ctx)
}

// DiscardAndExit closes from the exit confirmation without committing.
func (s *Session) DiscardAndExit() error {
	if s.state != StateConfirmingExit {
		return ErrNotConfirming
	}
	s.close()
	return nil
}

// ContinueEditing returns from the exit confirmation with the draft intact.
func (s *Session) ContinueEditing() error {
	if s.state != StateConfirmingExit {
		return ErrNotConfirming
	}
	s.state = StateEditing
	return nil
}

// Save commits the draft and closes, without going through the exit confirmation.
func (s *Session) Save(ctx context.Context) (models.Person, error) {
	if err := s.editable(); err != nil {
		return models.Person{}, err
	}
	return s.commit(ctx)
}

// commit writes the whole draft back. On failure the session keeps its state.
func (s *Session) commit(ctx context.Context) (models.Person, error) {
	saved := s.draft.Clone()
	if err := s.committer.Update(ctx, saved.ID, saved); err != nil {
		return models.Person{}, fmt.Errorf("failed to save draft: %w", err)
	}
	slog.Debug("Draft saved", "person_id", saved.ID)
	s.close()
	return saved, nil
}

func (s *Session) close() {
	s.state = StateClosed
	s.baseline = models.Person{}
	s.draft = models.Person{}
	s.removal.Cancel()
}

func (s *Session) editable() error {
	switch s.state {
	case StateEditing:
		return nil
	case StateConfirmingExit:
		return ErrConfirmingExit
	default:
		return ErrNotEditing
	}
}
