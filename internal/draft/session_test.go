package draft

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/mmynk/mentorboard/internal/auth"
	"github.com/mmynk/mentorboard/internal/models"
)

// fakeCommitter records every Update call.
type fakeCommitter struct {
	saved []models.Person
	err   error
}

func (f *fakeCommitter) Update(_ context.Context, id int64, p models.Person) error {
	if f.err != nil {
		return f.err
	}
	p.ID = id
	f.saved = append(f.saved, p)
	return nil
}

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestSession(c Committer) *Session {
	n := 0
	return NewSession(c, auth.SharedSecret{},
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func(prefix string) string {
			n++
			return fmt.Sprintf("%s%d", prefix, n)
		}),
	)
}

func ana() models.Person {
	p := models.NewPerson("Ana", "@ana", false)
	p.ID = 1
	return p
}

func TestOpenAndCloseWithoutEdits(t *testing.T) {
	c := &fakeCommitter{}
	s := newTestSession(c)
	s.Open(ana())

	if s.State() != StateEditing {
		t.Fatalf("expected editing, got %s", s.State())
	}
	if s.IsDirty() {
		t.Fatal("fresh draft must be clean")
	}

	closed, err := s.RequestClose()
	if err != nil {
		t.Fatalf("RequestClose failed: %v", err)
	}
	if !closed || s.State() != StateClosed {
		t.Errorf("clean draft should close directly, state %s", s.State())
	}
	if len(c.saved) != 0 {
		t.Error("closing a clean draft must not commit")
	}
}

func TestEditRevertLeavesDraftClean(t *testing.T) {
	p := ana()
	p.MeetingsCompleted.Toggle(2)
	p.NextMeeting = models.SlotPtr(3)
	p.InitialFee = 1500

	tests := []struct {
		name   string
		edit   func(s *Session) error
		revert func(s *Session) error
	}{
		{
			"name",
			func(s *Session) error { return s.SetName("Ana Maria") },
			func(s *Session) error { return s.SetName("Ana") },
		},
		{
			"mentor",
			func(s *Session) error { return s.SetAssignedMentor("Carla") },
			func(s *Session) error { return s.SetAssignedMentor("") },
		},
		{
			"meeting",
			func(s *Session) error { return s.ToggleMeeting(2) },
			func(s *Session) error { return s.ToggleMeeting(2) },
		},
		{
			"next meeting cleared",
			func(s *Session) error { return s.SetNextMeeting(3) },
			func(s *Session) error { return s.SetNextMeeting(3) },
		},
		{
			"checklist",
			func(s *Session) error { return s.ToggleChecklist(models.StepAdsScripted) },
			func(s *Session) error { return s.ToggleChecklist(models.StepAdsScripted) },
		},
		{
			"fee",
			func(s *Session) error { return s.SetInitialFee("2000") },
			func(s *Session) error { return s.SetInitialFee("1500,00") },
		},
		{
			"join date",
			func(s *Session) error { return s.SetJoinDate("2024-03-15") },
			func(s *Session) error { return s.SetJoinDate("") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(&fakeCommitter{})
			s.Open(p)

			if err := tt.edit(s); err != nil {
				t.Fatalf("edit failed: %v", err)
			}
			if !s.IsDirty() {
				t.Fatal("edit should make the draft dirty")
			}
			if err := tt.revert(s); err != nil {
				t.Fatalf("revert failed: %v", err)
			}
			if s.IsDirty() {
				t.Errorf("reverted draft should be clean: %+v", s.Draft())
			}
			if closed, _ := s.RequestClose(); !closed {
				t.Error("reverted draft should close without confirmation")
			}
		})
	}
}

func TestEditsNeverTouchTheSource(t *testing.T) {
	p := ana()
	s := newTestSession(&fakeCommitter{})
	s.Open(p)

	_ = s.SetName("changed")
	_, _ = s.AddTask("task")
	_ = s.ToggleMeeting(1)

	if p.Name != "Ana" || len(p.Tasks) != 0 || p.MeetingsCompleted.Completed(1) {
		t.Errorf("source record was mutated: %+v", p)
	}
}

func TestExitConfirmation(t *testing.T) {
	t.Run("save and exit", func(t *testing.T) {
		c := &fakeCommitter{}
		s := newTestSession(c)
		s.Open(ana())
		_ = s.SetName("Ana Maria")

		closed, err := s.RequestClose()
		if err != nil || closed {
			t.Fatalf("dirty draft should ask for confirmation: closed=%v err=%v", closed, err)
		}
		if s.State() != StateConfirmingExit {
			t.Fatalf("expected confirming_exit, got %s", s.State())
		}
		if err := s.SetName("x"); !errors.Is(err, ErrConfirmingExit) {
			t.Errorf("edits during confirmation should fail, got %v", err)
		}

		saved, err := s.SaveAndExit(context.Background())
		if err != nil {
			t.Fatalf("SaveAndExit failed: %v", err)
		}
		if saved.Name != "Ana Maria" || len(c.saved) != 1 || c.saved[0].ID != 1 {
			t.Errorf("unexpected commit: %+v", c.saved)
		}
		if s.State() != StateClosed {
			t.Errorf("expected closed, got %s", s.State())
		}
	})

	t.Run("discard and exit", func(t *testing.T) {
		c := &fakeCommitter{}
		s := newTestSession(c)
		s.Open(ana())
		_ = s.SetName("Ana Maria")
		_, _ = s.RequestClose()

		if err := s.DiscardAndExit(); err != nil {
			t.Fatalf("DiscardAndExit failed: %v", err)
		}
		if len(c.saved) != 0 {
			t.Error("discard must not commit")
		}
		if s.State() != StateClosed {
			t.Errorf("expected closed, got %s", s.State())
		}
	})

	t.Run("continue editing", func(t *testing.T) {
		s := newTestSession(&fakeCommitter{})
		s.Open(ana())
		_ = s.SetName("Ana Maria")
		_, _ = s.RequestClose()

		if err := s.ContinueEditing(); err != nil {
			t.Fatalf("ContinueEditing failed: %v", err)
		}
		if s.State() != StateEditing || s.Draft().Name != "Ana Maria" || !s.IsDirty() {
			t.Errorf("draft should be preserved: state=%s draft=%+v", s.State(), s.Draft())
		}
	})

	t.Run("resolutions need a pending confirmation", func(t *testing.T) {
		s := newTestSession(&fakeCommitter{})
		s.Open(ana())
		if err := s.DiscardAndExit(); !errors.Is(err, ErrNotConfirming) {
			t.Errorf("expected ErrNotConfirming, got %v", err)
		}
		if err := s.ContinueEditing(); !errors.Is(err, ErrNotConfirming) {
			t.Errorf("expected ErrNotConfirming, got %v", err)
		}
		if _, err := s.SaveAndExit(context.Background()); !errors.Is(err, ErrNotConfirming) {
			t.Errorf("expected ErrNotConfirming, got %v", err)
		}
	})
}

func TestSave(t *testing.T) {
	c := &fakeCommitter{}
	s := newTestSession(c)
	s.Open(ana())
	_ = s.SetCurrentFee("3000")

	saved, err := s.Save(context.Background())
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if saved.CurrentFee != 3000 || len(c.saved) != 1 {
		t.Errorf("unexpected commit: %+v", c.saved)
	}
	if s.State() != StateClosed {
		t.Errorf("save should close, got %s", s.State())
	}

	if _, err := s.Save(context.Background()); !errors.Is(err, ErrNotEditing) {
		t.Errorf("expected ErrNotEditing after close, got %v", err)
	}
}

func TestSaveFailureKeepsDraft(t *testing.T) {
	c := &fakeCommitter{err: errors.New("disk full")}
	s := newTestSession(c)
	s.Open(ana())
	_ = s.SetName("Ana Maria")

	if _, err := s.Save(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if s.State() != StateEditing || s.Draft().Name != "Ana Maria" {
		t.Errorf("failed save should keep editing: state=%s", s.State())
	}
}

func TestObservationNeedsMentor(t *testing.T) {
	s := newTestSession(&fakeCommitter{})
	s.Open(ana())

	if s.CanAddObservation() {
		t.Error("no mentor: adding observations should be disabled")
	}
	if _, err := s.AddObservation("hello"); !errors.Is(err, ErrMentorRequired) {
		t.Fatalf("expected ErrMentorRequired, got %v", err)
	}
	if len(s.Draft().Observations) != 0 {
		t.Fatal("rejected observation must not be added")
	}
	if s.IsDirty() {
		t.Error("rejected observation must not dirty the draft")
	}

	if err := s.SetAssignedMentor("Carla"); err != nil {
		t.Fatalf("SetAssignedMentor failed: %v", err)
	}
	obs, err := s.AddObservation("hello")
	if err != nil {
		t.Fatalf("AddObservation failed: %v", err)
	}

	got := s.Draft().Observations
	if len(got) != 1 || got[0].AuthorMentor != "Carla" || got[0].Text != "hello" {
		t.Errorf("unexpected observations: %+v", got)
	}
	if !obs.Date.Equal(fixedNow) || obs.ID != "obs-1" {
		t.Errorf("unexpected stamp: %+v", obs)
	}

	if _, err := s.AddObservation("   "); !errors.Is(err, ErrEmptyObservation) {
		t.Errorf("expected ErrEmptyObservation, got %v", err)
	}
}

func TestObservationsNewestFirst(t *testing.T) {
	s := newTestSession(&fakeCommitter{})
	s.Open(ana())
	_ = s.SetAssignedMentor("Carla")
	_, _ = s.AddObservation("first")
	_ = s.SetAssignedMentor("Diego")
	_, _ = s.AddObservation("second")

	got := s.Draft().Observations
	if len(got) != 2 || got[0].Text != "second" || got[1].Text != "first" {
		t.Fatalf("unexpected order: %+v", got)
	}
	if got[0].AuthorMentor != "Diego" || got[1].AuthorMentor != "Carla" {
		t.Errorf("authors should be stamped at creation: %+v", got)
	}
}

func TestTasks(t *testing.T) {
	s := newTestSession(&fakeCommitter{})
	s.Open(ana())

	if _, err := s.AddTask("  "); !errors.Is(err, ErrEmptyTaskName) {
		t.Fatalf("expected ErrEmptyTaskName, got %v", err)
	}

	first, _ := s.AddTask(" Gravar reels ")
	second, _ := s.AddTask("Montar pacote")

	tasks := s.Draft().Tasks
	if len(tasks) != 2 || tasks[0].Name != "Gravar reels" || tasks[1].Name != "Montar pacote" {
		t.Fatalf("tasks should be trimmed and appended: %+v", tasks)
	}
	if first.Status != models.TaskNotStarted || first.ID == second.ID {
		t.Errorf("unexpected task fields: %+v %+v", first, second)
	}

	if err := s.SetTaskStatus(second.ID, models.TaskCompleted); err != nil {
		t.Fatalf("SetTaskStatus failed: %v", err)
	}
	if err := s.SetTaskStatus(second.ID, "done"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
	if err := s.RemoveTask(first.ID); err != nil {
		t.Fatalf("RemoveTask failed: %v", err)
	}
	if err := s.RemoveTask("task-missing"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}

	tasks = s.Draft().Tasks
	if len(tasks) != 1 || tasks[0].ID != second.ID || tasks[0].Status != models.TaskCompleted {
		t.Errorf("unexpected tasks: %+v", tasks)
	}
}

func TestRemoveObservationIsGated(t *testing.T) {
	p := ana()
	p.AssignedMentor = models.StringPtr("Carla")
	p.Observations = []models.Observation{
		{ID: "obs-a", Date: fixedNow, AuthorMentor: "Carla", Text: "a"},
		{ID: "obs-b", Date: fixedNow, AuthorMentor: "Carla", Text: "b"},
	}

	s := newTestSession(&fakeCommitter{})
	s.Open(p)

	if err := s.RequestRemoveObservation("obs-x"); !errors.Is(err, ErrObservationNotFound) {
		t.Fatalf("expected ErrObservationNotFound, got %v", err)
	}
	if err := s.RequestRemoveObservation("obs-a"); err != nil {
		t.Fatalf("RequestRemoveObservation failed: %v", err)
	}
	if !s.RemovalPending() {
		t.Fatal("removal should be pending")
	}

	if err := s.ConfirmRemoveObservation("wrong"); !errors.Is(err, auth.ErrWrongSecret) {
		t.Fatalf("expected ErrWrongSecret, got %v", err)
	}
	if len(s.Draft().Observations) != 2 || !s.RemovalPending() {
		t.Fatal("wrong secret must not remove or close the prompt")
	}

	if err := s.ConfirmRemoveObservation("SAGA"); err != nil {
		t.Fatalf("ConfirmRemoveObservation failed: %v", err)
	}
	got := s.Draft().Observations
	if len(got) != 1 || got[0].ID != "obs-b" {
		t.Errorf("unexpected observations: %+v", got)
	}
	if s.RemovalPending() {
		t.Error("prompt should close after removal")
	}
}

func TestInvalidInputsLeaveDraftUnchanged(t *testing.T) {
	s := newTestSession(&fakeCommitter{})
	s.Open(ana())

	tests := []struct {
		name string
		edit func() error
		want error
	}{
		{"negative fee", func() error { return s.SetInitialFee("-1") }, ErrInvalidAmount},
		{"text fee", func() error { return s.SetCurrentFee("abc") }, ErrInvalidAmount},
		{"bad date", func() error { return s.SetJoinDate("15/03/2024") }, ErrInvalidDate},
		{"slot 0", func() error { return s.ToggleMeeting(0) }, ErrInvalidSlot},
		{"slot 6", func() error { return s.SetNextMeeting(6) }, ErrInvalidSlot},
		{"step", func() error { return s.ToggleChecklist(models.ChecklistSize) }, ErrInvalidStep},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.edit(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if s.IsDirty() {
				t.Error("rejected edit must not dirty the draft")
			}
		})
	}
}

func TestEmptyFeeMeansZero(t *testing.T) {
	p := ana()
	p.InitialFee = 900
	s := newTestSession(&fakeCommitter{})
	s.Open(p)

	if err := s.SetInitialFee(""); err != nil {
		t.Fatalf("SetInitialFee failed: %v", err)
	}
	if s.Draft().InitialFee != 0 {
		t.Errorf("expected 0, got %v", s.Draft().InitialFee)
	}
}

func TestNextMeetingIsExclusive(t *testing.T) {
	s := newTestSession(&fakeCommitter{})
	s.Open(ana())

	_ = s.SetNextMeeting(2)
	_ = s.SetNextMeeting(4)
	if got := s.Draft().NextMeeting; got == nil || *got != 4 {
		t.Fatalf("expected slot 4, got %v", got)
	}
	_ = s.SetNextMeeting(4)
	if got := s.Draft().NextMeeting; got != nil {
		t.Errorf("toggling the marked slot should clear it, got %v", *got)
	}
}

func TestEditsRequireOpenSession(t *testing.T) {
	s := newTestSession(&fakeCommitter{})
	if err := s.SetName("x"); !errors.Is(err, ErrNotEditing) {
		t.Errorf("expected ErrNotEditing, got %v", err)
	}
	if _, err := s.RequestClose(); !errors.Is(err, ErrNotEditing) {
		t.Errorf("expected ErrNotEditing, got %v", err)
	}
	if s.IsDirty() {
		t.Error("closed session is never dirty")
	}
}

func TestApply(t *testing.T) {
	s := newTestSession(&fakeCommitter{})
	s.Open(ana())

	edits := []Edit{
		{Op: OpSetAssignedMentor, Value: "Carla"},
		{Op: OpToggleMeeting, Slot: 1},
		{Op: OpSetNextMeeting, Slot: 2},
		{Op: OpToggleChecklist, Step: "storytelling"},
		{Op: OpAddTask, Value: "Gravar reels"},
		{Op: OpSetTaskStatus, TaskID: "task-1", Status: models.TaskInProgress},
		{Op: OpAddObservation, Value: "Boa evolução"},
		{Op: OpSetInitialFee, Value: "1200"},
		{Op: OpSetJoinDate, Value: "2024-03-15"},
	}
	for _, e := range edits {
		if err := s.Apply(e); err != nil {
			t.Fatalf("Apply(%s) failed: %v", e.Op, err)
		}
	}

	d := s.Draft()
	if d.MentorName() != "Carla" || !d.MeetingsCompleted.Completed(1) || *d.NextMeeting != 2 {
		t.Errorf("unexpected draft: %+v", d)
	}
	if !d.FunnelChecklist.Done(models.StepStorytelling) || len(d.Tasks) != 1 || d.Tasks[0].Status != models.TaskInProgress {
		t.Errorf("unexpected draft: %+v", d)
	}
	if len(d.Observations) != 1 || d.InitialFee != 1200 || *d.JoinDate != "2024-03-15" {
		t.Errorf("unexpected draft: %+v", d)
	}

	if err := s.Apply(Edit{Op: "rename_everything"}); !errors.Is(err, ErrUnknownEdit) {
		t.Errorf("expected ErrUnknownEdit, got %v", err)
	}
	if err := s.Apply(Edit{Op: OpToggleChecklist, Step: "nope"}); !errors.Is(err, ErrInvalidStep) {
		t.Errorf("expected ErrInvalidStep, got %v", err)
	}
}

func TestReopenResetsState(t *testing.T) {
	s := newTestSession(&fakeCommitter{})
	p := ana()
	p.AssignedMentor = models.StringPtr("Carla")
	p.Observations = []models.Observation{{ID: "obs-a", AuthorMentor: "Carla", Text: "a"}}
	s.Open(p)
	_ = s.SetName("changed")
	_ = s.RequestRemoveObservation("obs-a")

	s.Open(p)
	if s.IsDirty() || s.RemovalPending() {
		t.Error("reopening should reset the dirty flag and pending removal")
	}
}
