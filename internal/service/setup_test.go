package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/mentorboard/internal/auth"
	"github.com/mmynk/mentorboard/internal/draft"
	"github.com/mmynk/mentorboard/internal/middleware"
	"github.com/mmynk/mentorboard/internal/models"
	"github.com/mmynk/mentorboard/internal/seed"
	"github.com/mmynk/mentorboard/internal/storage"
	"github.com/mmynk/mentorboard/internal/storage/sqlite"
	"github.com/mmynk/mentorboard/pkg/api"
)

type testClients struct {
	people api.PeopleServiceClient
	editor api.EditorServiceClient
	report api.ReportServiceClient
	store  storage.Store
}

// fixedStatus is a LoadStatus that never changes.
type fixedStatus seed.Status

func (s fixedStatus) Status() seed.Status { return seed.Status(s) }

func fixture() []models.Person {
	ana := models.NewPerson("Ana Souza (DJ Ana)", "@ana", false)
	ana.JoinDate = models.StringPtr("2024-03-15")

	bruno := models.NewPerson("Bruno Lima", "@bruno", false)
	bruno.AssignedMentor = models.StringPtr("Carla")
	bruno.MeetingsCompleted.Toggle(1)
	bruno.Observations = []models.Observation{
		{ID: "obs-1", Date: time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC), AuthorMentor: "Carla", Text: "Primeira reunião"},
	}

	return []models.Person{
		ana,
		bruno,
		models.NewPerson("Carla", "@carla", true),
		models.NewPerson("Diego", "@diego", true),
	}
}

// setupTestServer creates a test server over an in-memory SQLite store loaded with fixture().
func setupTestServer(t *testing.T) (*testClients, func()) {
	t.Helper()

	store, err := sqlite.New(sqlite.MemoryDSN)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	if err := store.Load(context.Background(), fixture()); err != nil {
		store.Close()
		t.Fatalf("failed to load fixture: %v", err)
	}

	tokens, err := auth.NewReportTokenManager("test-secret", time.Minute)
	if err != nil {
		store.Close()
		t.Fatalf("failed to create token manager: %v", err)
	}

	authz := auth.SharedSecret{}
	interceptors := connect.WithInterceptors(middleware.LoggingInterceptor())
	reportInterceptors := connect.WithInterceptors(
		middleware.LoggingInterceptor(),
		middleware.ReportAccess(tokens),
	)

	mux := http.NewServeMux()
	peoplePath, peopleHandler := api.NewPeopleServiceHandler(
		NewPeopleService(store, authz, fixedStatus{Loading: false, Connected: true}),
		interceptors,
	)
	mux.Handle(peoplePath, peopleHandler)

	editorPath, editorHandler := api.NewEditorServiceHandler(
		NewEditorService(store, authz, draft.WithClock(func() time.Time {
			return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		})),
		interceptors,
	)
	mux.Handle(editorPath, editorHandler)

	reportPath, reportHandler := api.NewReportServiceHandler(
		NewReportService(store, authz, tokens),
		reportInterceptors,
	)
	mux.Handle(reportPath, reportHandler)

	server := httptest.NewServer(mux)

	clients := &testClients{
		people: api.NewPeopleServiceClient(http.DefaultClient, server.URL),
		editor: api.NewEditorServiceClient(http.DefaultClient, server.URL),
		report: api.NewReportServiceClient(http.DefaultClient, server.URL),
		store:  store,
	}

	cleanup := func() {
		server.Close()
		store.Close()
	}

	return clients, cleanup
}

// idOf returns the ID of the first stored record with the given name.
func (c *testClients) idOf(t *testing.T, name string) int64 {
	t.Helper()
	people, err := c.store.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	for _, p := range people {
		if p.Name == name {
			return p.ID
		}
	}
	t.Fatalf("no record named %q", name)
	return 0
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected connect.Error, got %T", err)
	}
	if connectErr.Code() != want {
		t.Errorf("expected %v, got %v (%s)", want, connectErr.Code(), connectErr.Message())
	}
}
