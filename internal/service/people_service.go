package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/mentorboard/internal/auth"
	"github.com/mmynk/mentorboard/internal/importer"
	"github.com/mmynk/mentorboard/internal/metrics"
	"github.com/mmynk/mentorboard/internal/models"
	"github.com/mmynk/mentorboard/internal/seed"
	"github.com/mmynk/mentorboard/internal/storage"
	"github.com/mmynk/mentorboard/internal/views"
	"github.com/mmynk/mentorboard/pkg/api"
)

// LoadStatus reports the startup load. *seed.Loader satisfies it.
type LoadStatus interface {
	Status() seed.Status
}

// PeopleService implements the Connect PeopleService
type PeopleService struct {
	api.UnimplementedPeopleServiceHandler
	store  storage.Store
	authz  auth.Authorizer
	status LoadStatus
}

// NewPeopleService creates a new PeopleService with the given storage backend.
func NewPeopleService(store storage.Store, authz auth.Authorizer, status LoadStatus) *PeopleService {
	return &PeopleService{store: store, authz: authz, status: status}
}

// ListPeople returns the roster filtered by search text, mentor and meeting.
func (s *PeopleService) ListPeople(ctx context.Context, req *connect.Request[api.ListPeopleRequest]) (*connect.Response[api.ListPeopleResponse], error) {
	slog.Debug("ListPeople request received",
		"search", req.Msg.Search,
		"mentor", req.Msg.Mentor,
		"meeting", req.Msg.Meeting,
	)

	if req.Msg.Meeting != nil && !req.Msg.Meeting.Valid() {
		return nil, toConnectError(ErrInvalidMeeting)
	}

	people, err := s.store.List(ctx)
	if err != nil {
		slog.Error("ListPeople failed", "error", err)
		return nil, toConnectError(err)
	}

	filtered := views.Apply(people, req.Msg.Search, views.Filter{
		Mentor:  req.Msg.Mentor,
		Meeting: req.Msg.Meeting,
	})

	slog.Debug("ListPeople successful", "count", len(filtered))

	return connect.NewResponse(&api.ListPeopleResponse{People: filtered}), nil
}

// GetPerson retrieves one record by ID.
func (s *PeopleService) GetPerson(ctx context.Context, req *connect.Request[api.GetPersonRequest]) (*connect.Response[api.GetPersonResponse], error) {
	slog.Info("GetPerson request received", "person_id", req.Msg.ID)

	person, err := s.store.Get(ctx, req.Msg.ID)
	if err != nil {
		slog.Error("GetPerson failed", "person_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetPersonResponse{Person: *person}), nil
}

// CreatePerson adds a record at the top of the roster once the shared secret is confirmed.
func (s *PeopleService) CreatePerson(ctx context.Context, req *connect.Request[api.CreatePersonRequest]) (*connect.Response[api.CreatePersonResponse], error) {
	slog.Info("CreatePerson request received",
		"name", req.Msg.Name,
		"is_mentor", req.Msg.IsMentor,
	)

	var created models.Person
	err := auth.Guard(s.authz, auth.ActionCreatePerson, req.Msg.Secret, func() error {
		name := strings.TrimSpace(req.Msg.Name)
		if name == "" {
			return ErrNameRequired
		}
		person := models.NewPerson(name, strings.TrimSpace(req.Msg.SocialHandle), req.Msg.IsMentor)

		var err error
		created, err = s.store.Create(ctx, person)
		return err
	})
	if err != nil {
		slog.Warn("CreatePerson failed", "name", req.Msg.Name, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Person created", "person_id", created.ID, "is_mentor", created.IsMentor)

	return connect.NewResponse(&api.CreatePersonResponse{Person: created}), nil
}

// DeletePerson removes a record once the shared secret is confirmed.
// Mentees still naming a deleted mentor keep the name.
func (s *PeopleService) DeletePerson(ctx context.Context, req *connect.Request[api.DeletePersonRequest]) (*connect.Response[api.DeletePersonResponse], error) {
	slog.Info("DeletePerson request received", "person_id", req.Msg.ID)

	err := auth.Guard(s.authz, auth.ActionDeletePerson, req.Msg.Secret, func() error {
		return s.store.Delete(ctx, req.Msg.ID)
	})
	if err != nil {
		slog.Warn("DeletePerson failed", "person_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("DeletePerson successful", "person_id", req.Msg.ID)

	return connect.NewResponse(&api.DeletePersonResponse{}), nil
}

// ImportPeople replaces every mentee with the spreadsheet rows. Mentors are kept.
// A file that cannot be parsed leaves the roster untouched.
func (s *PeopleService) ImportPeople(ctx context.Context, req *connect.Request[api.ImportPeopleRequest]) (*connect.Response[api.ImportPeopleResponse], error) {
	slog.Info("ImportPeople request received",
		"filename", req.Msg.Filename,
		"bytes", len(req.Msg.Data),
	)

	people, err := importer.Parse(req.Msg.Filename, req.Msg.Data)
	if err != nil {
		metrics.ImportFailures.Inc()
		slog.Warn("ImportPeople failed", "filename", req.Msg.Filename, "error", err)
		return nil, toConnectError(err)
	}

	n, err := s.store.ReplaceNonMentors(ctx, people)
	if err != nil {
		metrics.ImportFailures.Inc()
		slog.Error("ImportPeople failed", "filename", req.Msg.Filename, "error", err)
		return nil, toConnectError(err)
	}
	metrics.ImportedRows.Add(float64(n))

	slog.Info("ImportPeople successful", "filename", req.Msg.Filename, "imported", n)

	return connect.NewResponse(&api.ImportPeopleResponse{
		Imported: n,
		Message:  fmt.Sprintf("%d mentorados foram importados com sucesso!", n),
	}), nil
}

// GetDashboard returns the headline counters and picker options.
func (s *PeopleService) GetDashboard(ctx context.Context, req *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error) {
	people, err := s.store.List(ctx)
	if err != nil {
		slog.Error("GetDashboard failed", "error", err)
		return nil, toConnectError(err)
	}

	meetings := make([]api.MeetingOption, 0, models.MeetingSlotCount)
	for _, slot := range models.MeetingSlots() {
		meetings = append(meetings, api.MeetingOption{Slot: slot, Legend: slot.Legend()})
	}

	resp := &api.GetDashboardResponse{
		Stats:    views.Summarize(people),
		Mentors:  views.MentorOptions(people),
		Meetings: meetings,
	}
	if s.status != nil {
		st := s.status.Status()
		resp.Loading = st.Loading
		resp.Connected = st.Connected
	}

	return connect.NewResponse(resp), nil
}
