// Package storagetest holds the behavior every storage.Store backend must share.
package storagetest

import (
	"context"
	"errors"
	"testing"

	"github.com/mmynk/mentorboard/internal/models"
	"github.com/mmynk/mentorboard/internal/storage"
)

// Factory returns a fresh, empty store. The suite closes it.
type Factory func(t *testing.T) storage.Store

// Run exercises the storage.Store contract against stores built by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Helper()
	ctx := context.Background()

	open := func(t *testing.T) storage.Store {
		t.Helper()
		s := newStore(t)
		t.Cleanup(func() { s.Close() })
		return s
	}

	t.Run("Create assigns ID and prepends", func(t *testing.T) {
		s := open(t)

		first, err := s.Create(ctx, models.NewPerson("Ana", "@ana", false))
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		second, err := s.Create(ctx, models.NewPerson("Bia", "@bia", false))
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		if first.ID == 0 || second.ID == 0 {
			t.Fatal("expected non-zero IDs")
		}
		if first.ID == second.ID {
			t.Fatalf("duplicate ID %d", first.ID)
		}

		people := mustList(t, s)
		if names(people) != "Bia,Ana" {
			t.Errorf("expected newest first, got %s", names(people))
		}
	})

	t.Run("Create ignores caller ID", func(t *testing.T) {
		s := open(t)
		p := models.NewPerson("Ana", "", false)
		p.ID = 42
		a, _ := s.Create(ctx, p)
		b, _ := s.Create(ctx, p)
		if a.ID == 42 || a.ID == b.ID {
			t.Errorf("expected fresh distinct IDs, got %d and %d", a.ID, b.ID)
		}
	})

	t.Run("Get returns stored record", func(t *testing.T) {
		s := open(t)
		p := models.NewPerson("Ana", "@ana", false)
		p.AssignedMentor = models.StringPtr("Carla")
		p.MeetingsCompleted.Toggle(3)
		p.FunnelChecklist.Toggle(models.StepAdsScripted)
		created, _ := s.Create(ctx, p)

		got, err := s.Get(ctx, created.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !got.Equal(created) {
			t.Errorf("stored record mismatch: got %+v, want %+v", *got, created)
		}
	})

	t.Run("Get unknown ID returns ErrNotFound", func(t *testing.T) {
		s := open(t)
		_, err := s.Get(ctx, 12345)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Update replaces whole record in place", func(t *testing.T) {
		s := open(t)
		a, _ := s.Create(ctx, models.NewPerson("Ana", "@ana", false))
		s.Create(ctx, models.NewPerson("Bia", "@bia", false))

		replacement := models.NewPerson("Ana Paula", "", false)
		replacement.CurrentFee = 1500
		if err := s.Update(ctx, a.ID, replacement); err != nil {
			t.Fatalf("Update failed: %v", err)
		}

		people := mustList(t, s)
		if names(people) != "Bia,Ana Paula" {
			t.Errorf("expected position kept, got %s", names(people))
		}
		got, _ := s.Get(ctx, a.ID)
		if got.SocialHandle != "" || got.CurrentFee != 1500 || got.ID != a.ID {
			t.Errorf("expected full replace, got %+v", *got)
		}
	})

	t.Run("Update and Delete ignore unknown IDs", func(t *testing.T) {
		s := open(t)
		s.Create(ctx, models.NewPerson("Ana", "", false))

		if err := s.Update(ctx, 999, models.NewPerson("Ghost", "", false)); err != nil {
			t.Errorf("Update of unknown ID should be silent, got %v", err)
		}
		if err := s.Delete(ctx, 999); err != nil {
			t.Errorf("Delete of unknown ID should be silent, got %v", err)
		}
		if names(mustList(t, s)) != "Ana" {
			t.Errorf("store changed by unknown-ID operations: %s", names(mustList(t, s)))
		}
	})

	t.Run("Delete leaves mentor references dangling", func(t *testing.T) {
		s := open(t)
		mentor, _ := s.Create(ctx, models.NewPerson("Carla", "", true))
		mentee := models.NewPerson("Ana", "", false)
		mentee.AssignedMentor = models.StringPtr("Carla")
		created, _ := s.Create(ctx, mentee)

		if err := s.Delete(ctx, mentor.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		got, _ := s.Get(ctx, created.ID)
		if got.MentorName() != "Carla" {
			t.Errorf("expected dangling reference to stay, got %q", got.MentorName())
		}
		if _, err := s.Get(ctx, mentor.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected mentor gone, got %v", err)
		}
	})

	t.Run("ReplaceNonMentors keeps mentors and appends", func(t *testing.T) {
		s := open(t)
		s.Create(ctx, models.NewPerson("Old mentee", "", false))
		s.Create(ctx, models.NewPerson("Mentor B", "", true))
		s.Create(ctx, models.NewPerson("Mentor A", "", true))

		incoming := []models.Person{
			models.NewPerson("New 1", "", false),
			models.NewPerson("New 2", "", false),
		}
		incoming[0].ID = 7
		incoming[1].ID = 7

		n, err := s.ReplaceNonMentors(ctx, incoming)
		if err != nil {
			t.Fatalf("ReplaceNonMentors failed: %v", err)
		}
		if n != 2 {
			t.Errorf("expected 2 imported, got %d", n)
		}

		people := mustList(t, s)
		if names(people) != "Mentor A,Mentor B,New 1,New 2" {
			t.Errorf("unexpected roster: %s", names(people))
		}
		assertUniqueIDs(t, people)
	})

	t.Run("ReplaceNonMentors with empty input drops all mentees", func(t *testing.T) {
		s := open(t)
		s.Create(ctx, models.NewPerson("Mentee", "", false))
		s.Create(ctx, models.NewPerson("Mentor", "", true))

		if _, err := s.ReplaceNonMentors(ctx, nil); err != nil {
			t.Fatalf("ReplaceNonMentors failed: %v", err)
		}
		if names(mustList(t, s)) != "Mentor" {
			t.Errorf("unexpected roster: %s", names(mustList(t, s)))
		}
	})

	t.Run("Load replaces everything", func(t *testing.T) {
		s := open(t)
		s.Create(ctx, models.NewPerson("Old", "", true))

		err := s.Load(ctx, []models.Person{
			models.NewPerson("Ana", "", false),
			models.NewPerson("Carla", "", true),
		})
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		people := mustList(t, s)
		if names(people) != "Ana,Carla" {
			t.Errorf("unexpected roster: %s", names(people))
		}
		assertUniqueIDs(t, people)
	})

	t.Run("List returns copies", func(t *testing.T) {
		s := open(t)
		p := models.NewPerson("Ana", "", false)
		p.Tasks = []models.Task{{ID: "task-1", Name: "a", Status: models.TaskNotStarted}}
		s.Create(ctx, p)

		people := mustList(t, s)
		people[0].Name = "changed"
		people[0].Tasks[0].Name = "changed"

		again := mustList(t, s)
		if again[0].Name != "Ana" || again[0].Tasks[0].Name != "a" {
			t.Error("mutating a listed record changed the store")
		}
	})

	t.Run("IDs stay unique across mixed operations", func(t *testing.T) {
		s := open(t)
		for i := 0; i < 20; i++ {
			p, _ := s.Create(ctx, models.NewPerson("P", "", i%3 == 0))
			if i%4 == 0 {
				s.Delete(ctx, p.ID)
			}
			if i%5 == 0 {
				s.ReplaceNonMentors(ctx, []models.Person{models.NewPerson("X", "", false), models.NewPerson("Y", "", false)})
			}
		}
		assertUniqueIDs(t, mustList(t, s))
	})
}

func mustList(t *testing.T, s storage.Store) []models.Person {
	t.Helper()
	people, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	return people
}

func names(people []models.Person) string {
	out := ""
	for i, p := range people {
		if i > 0 {
			out += ","
		}
		out += p.Name
	}
	return out
}

func assertUniqueIDs(t *testing.T, people []models.Person) {
	t.Helper()
	seen := make(map[int64]bool, len(people))
	for _, p := range people {
		if seen[p.ID] {
			t.Fatalf("duplicate ID %d", p.ID)
		}
		seen[p.ID] = true
	}
}
