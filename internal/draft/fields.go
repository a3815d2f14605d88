package draft

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/mmynk/mentorboard/internal/models"
)

// SetName replaces the draft's name.
func (s *Session) SetName(name string) error {
	if err := s.editable(); err != nil {
		return err
	}
	s.draft.Name = name
	return nil
}

// SetSocialHandle replaces the draft's social handle.
func (s *Session) SetSocialHandle(handle string) error {
	if err := s.editable(); err != nil {
		return err
	}
	s.draft.SocialHandle = handle
	return nil
}

// SetAssignedMentor assigns a mentor by name. An empty name unassigns.
func (s *Session) SetAssignedMentor(name string) error {
	if err := s.editable(); err != nil {
		return err
	}
	if name == "" {
		s.draft.AssignedMentor = nil
		return nil
	}
	s.draft.AssignedMentor = models.StringPtr(name)
	return nil
}

// SetInitialFee parses input as the initial fee. Empty input means zero.
func (s *Session) SetInitialFee(input string) error {
	if err := s.editable(); err != nil {
		return err
	}
	v, err := parseAmount(input)
	if err != nil {
		return err
	}
	s.draft.InitialFee = v
	return nil
}

// SetCurrentFee parses input as the current fee. Empty input means zero.
func (s *Session) SetCurrentFee(input string) error {
	if err := s.editable(); err != nil {
		return err
	}
	v, err := parseAmount(input)
	if err != nil {
		return err
	}
	s.draft.CurrentFee = v
	return nil
}

// SetJoinDate sets the join date from YYYY-MM-DD input. Empty input clears it.
func (s *Session) SetJoinDate(input string) error {
	if err := s.editable(); err != nil {
		return err
	}
	input = strings.TrimSpace(input)
	if input == "" {
		s.draft.JoinDate = nil
		return nil
	}
	if _, err := time.Parse(time.DateOnly, input); err != nil {
		return ErrInvalidDate
	}
	s.draft.JoinDate = models.StringPtr(input)
	return nil
}

// ToggleMeeting flips one meeting slot.
func (s *Session) ToggleMeeting(slot models.MeetingSlot) error {
	if err := s.editable(); err != nil {
		return err
	}
	if !slot.Valid() {
		return ErrInvalidSlot
	}
	s.draft.MeetingsCompleted.Toggle(slot)
	return nil
}

// SetNextMeeting marks slot as the next meeting. Marking the current slot again clears it.
func (s *Session) SetNextMeeting(slot models.MeetingSlot) error {
	if err := s.editable(); err != nil {
		return err
	}
	if !slot.Valid() {
		return ErrInvalidSlot
	}
	if s.draft.NextMeeting != nil && *s.draft.NextMeeting == slot {
		s.draft.NextMeeting = nil
		return nil
	}
	s.draft.NextMeeting = models.SlotPtr(slot)
	return nil
}

// ToggleChecklist flips one funnel step.
func (s *Session) ToggleChecklist(step models.ChecklistStep) error {
	if err := s.editable(); err != nil {
		return err
	}
	if !step.Valid() {
		return ErrInvalidStep
	}
	s.draft.FunnelChecklist.Toggle(step)
	return nil
}

// AddTask appends a not-started task and returns it.
func (s *Session) AddTask(name string) (models.Task, error) {
	if err := s.editable(); err != nil {
		return models.Task{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Task{}, ErrEmptyTaskName
	}
	task := models.Task{
		ID:        s.newID("task-"),
		Name:      name,
		Status:    models.TaskNotStarted,
		CreatedAt: s.now(),
	}
	s.draft.Tasks = append(s.draft.Tasks, task)
	return task, nil
}

// SetTaskStatus changes the status of one task.
func (s *Session) SetTaskStatus(id string, status models.TaskStatus) error {
	if err := s.editable(); err != nil {
		return err
	}
	if !status.Valid() {
		return ErrInvalidStatus
	}
	i := s.taskIndex(id)
	if i < 0 {
		return ErrTaskNotFound
	}
	s.draft.Tasks[i].Status = status
	return nil
}

// RemoveTask deletes a task immediately.
func (s *Session) RemoveTask(id string) error {
	if err := s.editable(); err != nil {
		return err
	}
	i := s.taskIndex(id)
	if i < 0 {
		return ErrTaskNotFound
	}
	tasks := make([]models.Task, 0, len(s.draft.Tasks)-1)
	tasks = append(tasks, s.draft.Tasks[:i]...)
	s.draft.Tasks = append(tasks, s.draft.Tasks[i+1:]...)
	return nil
}

// CanAddObservation reports whether the draft has a mentor to author observations.
func (s *Session) CanAddObservation() bool {
	return s.state == StateEditing && s.draft.HasMentor()
}

// AddObservation prepends a note authored by the draft's current mentor.
func (s *Session) AddObservation(text string) (models.Observation, error) {
	if err := s.editable(); err != nil {
		return models.Observation{}, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Observation{}, ErrEmptyObservation
	}
	if !s.draft.HasMentor() {
		return models.Observation{}, ErrMentorRequired
	}
	obs := models.Observation{
		ID:           s.newID("obs-"),
		Date:         s.now(),
		AuthorMentor: s.draft.MentorName(),
		Text:         text,
	}
	s.draft.Observations = append([]models.Observation{obs}, s.draft.Observations...)
	return obs, nil
}

// RequestRemoveObservation holds the removal of one observation until
// ConfirmRemoveObservation receives the shared secret.
func (s *Session) RequestRemoveObservation(id string) error {
	if err := s.editable(); err != nil {
		return err
	}
	if s.observationIndex(id) < 0 {
		return ErrObservationNotFound
	}
	s.removal.Open(func() error {
		i := s.observationIndex(id)
		if i < 0 {
			return ErrObservationNotFound
		}
		obs := make([]models.Observation, 0, len(s.draft.Observations)-1)
		obs = append(obs, s.draft.Observations[:i]...)
		s.draft.Observations = append(obs, s.draft.Observations[i+1:]...)
		return nil
	})
	return nil
}

// ConfirmRemoveObservation submits the secret for the pending removal.
// A wrong secret leaves the removal pending.
func (s *Session) ConfirmRemoveObservation(secret string) error {
	if err := s.editable(); err != nil {
		return err
	}
	return s.removal.Submit(secret)
}

// CancelRemoveObservation drops the pending removal.
func (s *Session) CancelRemoveObservation() {
	s.removal.Cancel()
}

// RemovalPending reports whether an observation removal awaits the secret.
func (s *Session) RemovalPending() bool {
	return s.removal.IsOpen()
}

func (s *Session) taskIndex(id string) int {
	for i, t := range s.draft.Tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Session) observationIndex(id string) int {
	for i, o := range s.draft.Observations {
		if o.ID == id {
			return i
		}
	}
	return -1
}

// parseAmount accepts "1500", "1500.50" and "1500,50".
func parseAmount(input string) (float64, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(input, ",", "."), 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidAmount
	}
	return v, nil
}
