package models

import "time"

// TaskStatus is the progress state of a Task.
type TaskStatus string

const (
	TaskNotStarted TaskStatus = "not_started"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

// TaskStatusOptions lists the statuses in the order staff pick them.
var TaskStatusOptions = []TaskStatus{TaskNotStarted, TaskInProgress, TaskCompleted}

// Valid reports whether the status is one of the three known values.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskNotStarted, TaskInProgress, TaskCompleted:
		return true
	default:
		return false
	}
}

// Label returns the display name of the status.
func (s TaskStatus) Label() string {
	switch s {
	case TaskNotStarted:
		return "Não Iniciada"
	case TaskInProgress:
		return "Em Andamento"
	case TaskCompleted:
		return "Concluída"
	default:
		return ""
	}
}

// Task is a free-form to-do item attached to a Person.
// Tasks are kept in creation order.
type Task struct {
	// ID is unique per task ("task-" followed by a UUID).
	ID string `json:"id"`

	// Name is the trimmed, non-empty task description.
	Name string `json:"name"`

	Status TaskStatus `json:"status"`

	// CreatedAt is when the task was added in the editor.
	CreatedAt time.Time `json:"createdAt"`
}

// Observation is a dated note about a mentee, authored by the mentor assigned at
// the time it was written. Observations are kept newest first.
type Observation struct {
	// ID is unique per observation ("obs-" followed by a UUID).
	ID string `json:"id"`

	Date time.Time `json:"date"`

	// AuthorMentor is the mentor name copied from the Person when the note was written.
	AuthorMentor string `json:"authorMentor"`

	Text string `json:"text"`
}
