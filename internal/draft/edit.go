package draft

import (
	"fmt"

	"github.com/mmynk/mentorboard/internal/models"
)

// Op names one kind of field edit.
type Op string

const (
	OpSetName           Op = "set_name"
	OpSetSocialHandle   Op = "set_social_handle"
	OpSetAssignedMentor Op = "set_assigned_mentor"
	OpSetInitialFee     Op = "set_initial_fee"
	OpSetCurrentFee     Op = "set_current_fee"
	OpSetJoinDate       Op = "set_join_date"
	OpToggleMeeting     Op = "toggle_meeting"
	OpSetNextMeeting    Op = "set_next_meeting"
	OpToggleChecklist   Op = "toggle_checklist"
	OpAddTask           Op = "add_task"
	OpSetTaskStatus     Op = "set_task_status"
	OpRemoveTask        Op = "remove_task"
	OpAddObservation    Op = "add_observation"
)

// Edit is a serializable field edit. Only the fields the Op needs are read.
type Edit struct {
	Op     Op                 `json:"op"`
	Value  string             `json:"value,omitempty"`
	Slot   models.MeetingSlot `json:"slot,omitempty"`
	Step   string             `json:"step,omitempty"`
	TaskID string             `json:"taskId,omitempty"`
	Status models.TaskStatus  `json:"status,omitempty"`
}

// Apply dispatches e to the matching Session method.
func (s *Session) Apply(e Edit) error {
	switch e.Op {
	case OpSetName:
		return s.SetName(e.Value)
	case OpSetSocialHandle:
		return s.SetSocialHandle(e.Value)
	case OpSetAssignedMentor:
		return s.SetAssignedMentor(e.Value)
	case OpSetInitialFee:
		return s.SetInitialFee(e.Value)
	case OpSetCurrentFee:
		return s.SetCurrentFee(e.Value)
	case OpSetJoinDate:
		return s.SetJoinDate(e.Value)
	case OpToggleMeeting:
		return s.ToggleMeeting(e.Slot)
	case OpSetNextMeeting:
		return s.SetNextMeeting(e.Slot)
	case OpToggleChecklist:
		step, err := models.ParseChecklistStep(e.Step)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidStep, e.Step)
		}
		return s.ToggleChecklist(step)
	case OpAddTask:
		_, err := s.AddTask(e.Value)
		return err
	case OpSetTaskStatus:
		return s.SetTaskStatus(e.TaskID, e.Status)
	case OpRemoveTask:
		return s.RemoveTask(e.TaskID)
	case OpAddObservation:
		_, err := s.AddObservation(e.Value)
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEdit, e.Op)
	}
}
