package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmynk/mentorboard/internal/models"
	"github.com/mmynk/mentorboard/internal/storage/memory"
)

func TestDefaultSeed(t *testing.T) {
	people, err := Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}
	if len(people) == 0 {
		t.Fatal("expected a non-empty default roster")
	}

	sawMentor := false
	for i, p := range people {
		if p.IsMentor {
			sawMentor = true
			continue
		}
		if sawMentor {
			t.Errorf("mentee %q at %d listed after a mentor", p.Name, i)
		}
		for _, o := range p.Observations {
			if o.AuthorMentor == "" {
				t.Errorf("observation on %q has no author", p.Name)
			}
		}
	}
	if !sawMentor {
		t.Error("expected mentors in the default roster")
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
mentees:
  - name: Ana
    mentor: Carla
    meetings: [1, 3]
    nextMeeting: 2
    checklist: [storytelling]
    initialFee: 100
    tasks:
      - name: Primeira tarefa
mentors:
  - name: Carla
`)
	people, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(people) != 2 {
		t.Fatalf("expected 2 people, got %d", len(people))
	}

	ana := people[0]
	if ana.MentorName() != "Carla" {
		t.Errorf("mentor: expected Carla, got %q", ana.MentorName())
	}
	if !ana.MeetingsCompleted.Completed(1) || ana.MeetingsCompleted.Completed(2) || !ana.MeetingsCompleted.Completed(3) {
		t.Errorf("unexpected meetings: %v", ana.MeetingsCompleted)
	}
	if ana.NextMeeting == nil || *ana.NextMeeting != 2 {
		t.Errorf("next meeting: expected 2, got %v", ana.NextMeeting)
	}
	if !ana.FunnelChecklist.Done(models.StepStorytelling) || ana.FunnelChecklist.Count() != 1 {
		t.Errorf("unexpected checklist: %v", ana.FunnelChecklist)
	}
	if len(ana.Tasks) != 1 || ana.Tasks[0].Status != models.TaskNotStarted {
		t.Errorf("unexpected tasks: %+v", ana.Tasks)
	}
	if !people[1].IsMentor {
		t.Error("expected second record to be a mentor")
	}
}

func TestParseRejectsBadRecords(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad slot", "mentees:\n  - name: Ana\n    meetings: [6]\n"},
		{"bad step", "mentees:\n  - name: Ana\n    checklist: [nope]\n"},
		{"missing name", "mentees:\n  - socialHandle: x\n"},
		{"bad status", "mentees:\n  - name: Ana\n    tasks:\n      - name: t\n        status: done\n"},
		{"negative fee", "mentees:\n  - name: Ana\n    initialFee: -1\n"},
		{"not yaml", "mentees: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.yaml")
	if err := os.WriteFile(path, []byte("mentors:\n  - name: Carla\n"), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	people, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(people) != 1 || !people[0].IsMentor {
		t.Errorf("unexpected roster: %+v", people)
	}

	if _, err := ReadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoaderPopulatesOnce(t *testing.T) {
	store := memory.New()
	people := []models.Person{
		models.NewPerson("Ana", "", false),
		models.NewPerson("Carla", "", true),
	}
	loader := NewLoader(store, people, WithDelay(5*time.Millisecond), WithCoin(func() float64 { return 0.9 }))

	if !loader.Status().Loading {
		t.Error("expected loading before Start")
	}
	listed, _ := store.List(context.Background())
	if len(listed) != 0 {
		t.Errorf("store should be empty before load, got %d", len(listed))
	}

	loader.Start()
	loader.Start()

	select {
	case <-loader.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("loader did not finish")
	}

	status := loader.Status()
	if status.Loading {
		t.Error("expected loading to be false after load")
	}
	if !status.Connected {
		t.Error("expected connected with coin 0.9")
	}
	if status.Err != nil {
		t.Errorf("unexpected error: %v", status.Err)
	}

	listed, _ = store.List(context.Background())
	if len(listed) != 2 {
		t.Errorf("expected 2 people after load, got %d", len(listed))
	}
}

func TestLoaderDisconnectedCoin(t *testing.T) {
	loader := NewLoader(memory.New(), nil, WithDelay(time.Millisecond), WithCoin(func() float64 { return 0.3 }))
	loader.Start()
	<-loader.Done()
	if loader.Status().Connected {
		t.Error("coin 0.3 must report disconnected")
	}
}
