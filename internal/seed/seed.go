// Package seed loads the startup roster from a YAML file.
package seed

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/mmynk/mentorboard/internal/models"
)

//go:embed default.yaml
var defaultSeed []byte

// File is the on-disk seed layout.
type File struct {
	Mentees []Record `yaml:"mentees"`
	Mentors []Record `yaml:"mentors"`
}

// Record is the compact seed form of a person.
type Record struct {
	Name         string              `yaml:"name"`
	SocialHandle string              `yaml:"socialHandle"`
	Mentor       string              `yaml:"mentor"`
	Meetings     []int               `yaml:"meetings"`
	NextMeeting  int                 `yaml:"nextMeeting"`
	Checklist    []string            `yaml:"checklist"`
	InitialFee   float64             `yaml:"initialFee"`
	CurrentFee   float64             `yaml:"currentFee"`
	JoinDate     string              `yaml:"joinDate"`
	Tasks        []TaskRecord        `yaml:"tasks"`
	Observations []ObservationRecord `yaml:"observations"`
}

// TaskRecord is the seed form of a task.
type TaskRecord struct {
	Name      string    `yaml:"name"`
	Status    string    `yaml:"status"`
	CreatedAt time.Time `yaml:"createdAt"`
}

// ObservationRecord is the seed form of an observation.
type ObservationRecord struct {
	Date   time.Time `yaml:"date"`
	Mentor string    `yaml:"mentor"`
	Text   string    `yaml:"text"`
}

// Default returns the embedded roster.
func Default() ([]models.Person, error) {
	return Parse(defaultSeed)
}

// ReadFile loads a roster from path, or the embedded roster when path is empty.
func ReadFile(path string) ([]models.Person, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML seed into people: mentees first, then mentors.
func Parse(data []byte) ([]models.Person, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed: %w", err)
	}

	people := make([]models.Person, 0, len(f.Mentees)+len(f.Mentors))
	for i, r := range f.Mentees {
		p, err := r.toPerson(false)
		if err != nil {
			return nil, fmt.Errorf("mentee %d: %w", i+1, err)
		}
		people = append(people, p)
	}
	for _, r := range f.Mentors {
		people = append(people, models.NewPerson(r.Name, r.SocialHandle, true))
	}
	return people, nil
}

func (r Record) toPerson(isMentor bool) (models.Person, error) {
	p := models.NewPerson(r.Name, r.SocialHandle, isMentor)
	if strings.TrimSpace(r.Name) == "" {
		return p, fmt.Errorf("name is required")
	}
	if r.Mentor != "" {
		p.AssignedMentor = models.StringPtr(r.Mentor)
	}
	for _, n := range r.Meetings {
		slot := models.MeetingSlot(n)
		if !slot.Valid() {
			return p, fmt.Errorf("invalid meeting slot %d", n)
		}
		if !p.MeetingsCompleted.Completed(slot) {
			p.MeetingsCompleted.Toggle(slot)
		}
	}
	if r.NextMeeting != 0 {
		slot := models.MeetingSlot(r.NextMeeting)
		if !slot.Valid() {
			return p, fmt.Errorf("invalid next meeting %d", r.NextMeeting)
		}
		p.NextMeeting = &slot
	}
	for _, key := range r.Checklist {
		step, err := models.ParseChecklistStep(key)
		if err != nil {
			return p, err
		}
		if !p.FunnelChecklist.Done(step) {
			p.FunnelChecklist.Toggle(step)
		}
	}
	if r.InitialFee < 0 || r.CurrentFee < 0 {
		return p, fmt.Errorf("fees must be non-negative")
	}
	p.InitialFee = r.InitialFee
	p.CurrentFee = r.CurrentFee
	if r.JoinDate != "" {
		p.JoinDate = models.StringPtr(r.JoinDate)
	}
	for _, t := range r.Tasks {
		status := models.TaskStatus(t.Status)
		if t.Status == "" {
			status = models.TaskNotStarted
		}
		if !status.Valid() {
			return p, fmt.Errorf("invalid task status %q", t.Status)
		}
		p.Tasks = append(p.Tasks, models.Task{
			ID:        "task-" + uuid.NewString(),
			Name:      t.Name,
			Status:    status,
			CreatedAt: t.CreatedAt,
		})
	}
	for _, o := range r.Observations {
		p.Observations = append(p.Observations, models.Observation{
			ID:           "obs-" + uuid.NewString(),
			Date:         o.Date,
			AuthorMentor: o.Mentor,
			Text:         o.Text,
		})
	}
	return p, nil
}
