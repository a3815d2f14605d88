package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"connectrpc.com/connect"
	"github.com/google/uuid"

	"github.com/mmynk/mentorboard/internal/auth"
	"github.com/mmynk/mentorboard/internal/draft"
	"github.com/mmynk/mentorboard/internal/metrics"
	"github.com/mmynk/mentorboard/internal/storage"
	"github.com/mmynk/mentorboard/pkg/api"
)

// DefaultIdleTimeout is how long an untouched editing session is kept.
const DefaultIdleTimeout = 30 * time.Minute

// EditorService implements the Connect EditorService.
// Sessions live in memory until they close or sit idle past the idle timeout.
type EditorService struct {
	api.UnimplementedEditorServiceHandler
	store storage.Store
	authz auth.Authorizer
	opts  []draft.Option

	idleTimeout time.Duration
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*openSession
}

type openSession struct {
	draft    *draft.Session
	lastUsed time.Time
}

// NewEditorService creates a new EditorService. opts are passed to every session.
func NewEditorService(store storage.Store, authz auth.Authorizer, opts ...draft.Option) *EditorService {
	return &EditorService{
		store:       store,
		authz:       authz,
		opts:        opts,
		idleTimeout: DefaultIdleTimeout,
		now:         time.Now,
		sessions:    make(map[string]*openSession),
	}
}

// SetIdleTimeout changes how long an untouched session is kept.
// Zero or less keeps sessions until they close.
func (s *EditorService) SetIdleTimeout(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.idleTimeout = d
}

// OpenDraft starts a session on the stored record.
func (s *EditorService) OpenDraft(ctx context.Context, req *connect.Request[api.OpenDraftRequest]) (*connect.Response[api.OpenDraftResponse], error) {
	slog.Info("OpenDraft request received", "person_id", req.Msg.PersonID)

	person, err := s.store.Get(ctx, req.Msg.PersonID)
	if err != nil {
		slog.Error("OpenDraft failed", "person_id", req.Msg.PersonID, "error", err)
		return nil, toConnectError(err)
	}

	session := draft.NewSession(s.store, s.authz, s.opts...)
	session.Open(*person)
	id := uuid.NewString()

	s.mu.Lock()
	s.sweep()
	s.sessions[id] = &openSession{draft: session, lastUsed: s.now()}
	s.mu.Unlock()
	metrics.OpenDrafts.Inc()

	slog.Info("OpenDraft successful", "person_id", person.ID, "session_id", id)

	return connect.NewResponse(&api.OpenDraftResponse{Session: viewOf(id, session)}), nil
}

// ApplyEdit applies one field edit to the draft.
func (s *EditorService) ApplyEdit(ctx context.Context, req *connect.Request[api.ApplyEditRequest]) (*connect.Response[api.ApplyEditResponse], error) {
	slog.Debug("ApplyEdit request received", "session_id", req.Msg.SessionID, "op", req.Msg.Edit.Op)

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.session(req.Msg.SessionID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if err := session.Apply(req.Msg.Edit); err != nil {
		slog.Warn("ApplyEdit rejected", "session_id", req.Msg.SessionID, "op", req.Msg.Edit.Op, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ApplyEditResponse{Session: viewOf(req.Msg.SessionID, session)}), nil
}

// RemoveObservation holds the removal of an observation and, when a secret is
// given, submits it. A wrong secret leaves the removal pending.
func (s *EditorService) RemoveObservation(ctx context.Context, req *connect.Request[api.RemoveObservationRequest]) (*connect.Response[api.RemoveObservationResponse], error) {
	slog.Info("RemoveObservation request received",
		"session_id", req.Msg.SessionID,
		"observation_id", req.Msg.ObservationID,
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.session(req.Msg.SessionID)
	if err != nil {
		return nil, toConnectError(err)
	}

	if req.Msg.ObservationID != "" {
		if err := session.RequestRemoveObservation(req.Msg.ObservationID); err != nil {
			return nil, toConnectError(err)
		}
	}
	if req.Msg.Secret != "" {
		if err := session.ConfirmRemoveObservation(req.Msg.Secret); err != nil {
			slog.Warn("RemoveObservation denied", "session_id", req.Msg.SessionID, "error", err)
			return nil, toConnectError(err)
		}
		slog.Info("RemoveObservation successful", "session_id", req.Msg.SessionID)
	}

	return connect.NewResponse(&api.RemoveObservationResponse{Session: viewOf(req.Msg.SessionID, session)}), nil
}

// RequestClose closes a clean session or moves a dirty one to exit confirmation.
func (s *EditorService) RequestClose(ctx context.Context, req *connect.Request[api.RequestCloseRequest]) (*connect.Response[api.RequestCloseResponse], error) {
	slog.Info("RequestClose request received", "session_id", req.Msg.SessionID)

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.session(req.Msg.SessionID)
	if err != nil {
		return nil, toConnectError(err)
	}
	closed, err := session.RequestClose()
	if err != nil {
		return nil, toConnectError(err)
	}
	if closed {
		s.forget(req.Msg.SessionID)
	}

	return connect.NewResponse(&api.RequestCloseResponse{
		Closed:  closed,
		Session: viewOf(req.Msg.SessionID, session),
	}), nil
}

// ResolveExit answers a pending exit confirmation with save, discard or continue.
func (s *EditorService) ResolveExit(ctx context.Context, req *connect.Request[api.ResolveExitRequest]) (*connect.Response[api.ResolveExitResponse], error) {
	slog.Info("ResolveExit request received", "session_id", req.Msg.SessionID, "choice", req.Msg.Choice)

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.session(req.Msg.SessionID)
	if err != nil {
		return nil, toConnectError(err)
	}

	resp := &api.ResolveExitResponse{}
	switch req.Msg.Choice {
	case api.ExitSave:
		saved, err := session.SaveAndExit(ctx)
		if err != nil {
			slog.Error("ResolveExit save failed", "session_id", req.Msg.SessionID, "error", err)
			return nil, toConnectError(err)
		}
		resp.Saved = &saved
	case api.ExitDiscard:
		if err := session.DiscardAndExit(); err != nil {
			return nil, toConnectError(err)
		}
	case api.ExitContinue:
		if err := session.ContinueEditing(); err != nil {
			return nil, toConnectError(err)
		}
	default:
		return nil, toConnectError(ErrInvalidChoice)
	}

	resp.Closed = session.State() == draft.StateClosed
	if resp.Closed {
		s.forget(req.Msg.SessionID)
	}
	resp.Session = viewOf(req.Msg.SessionID, session)

	return connect.NewResponse(resp), nil
}

// SaveDraft commits the draft and closes the session.
func (s *EditorService) SaveDraft(ctx context.Context, req *connect.Request[api.SaveDraftRequest]) (*connect.Response[api.SaveDraftResponse], error) {
	slog.Info("SaveDraft request received", "session_id", req.Msg.SessionID)

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.session(req.Msg.SessionID)
	if err != nil {
		return nil, toConnectError(err)
	}
	saved, err := session.Save(ctx)
	if err != nil {
		slog.Error("SaveDraft failed", "session_id", req.Msg.SessionID, "error", err)
		return nil, toConnectError(err)
	}
	s.forget(req.Msg.SessionID)

	slog.Info("SaveDraft successful", "session_id", req.Msg.SessionID, "person_id", saved.ID)

	return connect.NewResponse(&api.SaveDraftResponse{Person: saved}), nil
}

// session looks up a live session and marks it used. Callers hold s.mu.
func (s *EditorService) session(id string) (*draft.Session, error) {
	s.sweep()
	open, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	open.lastUsed = s.now()
	return open.draft, nil
}

// sweep drops sessions idle past the timeout. Their drafts are discarded.
// Callers hold s.mu.
func (s *EditorService) sweep() {
	if s.idleTimeout <= 0 {
		return
	}
	cutoff := s.now().Add(-s.idleTimeout)
	for id, open := range s.sessions {
		if open.lastUsed.Before(cutoff) {
			delete(s.sessions, id)
			metrics.OpenDrafts.Dec()
			slog.Info("Editing session expired", "session_id", id, "dirty", open.draft.IsDirty())
		}
	}
}

// forget drops a closed session. Callers hold s.mu.
func (s *EditorService) forget(id string) {
	if _, ok := s.sessions[id]; ok {
		delete(s.sessions, id)
		metrics.OpenDrafts.Dec()
	}
}

func viewOf(id string, session *draft.Session) api.DraftView {
	v := api.DraftView{
		SessionID:         id,
		State:             session.State().String(),
		Dirty:             session.IsDirty(),
		CanAddObservation: session.CanAddObservation(),
		RemovalPending:    session.RemovalPending(),
	}
	if session.State() != draft.StateClosed {
		d := session.Draft()
		v.Draft = &d
	}
	return v
}
