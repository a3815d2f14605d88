package views

import (
	"math"

	"github.com/mmynk/mentorboard/internal/models"
)

// IsComplete reports whether a mentee finished all five meetings and all ten funnel steps.
// Mentors are never complete.
func IsComplete(p models.Person) bool {
	return !p.IsMentor && p.MeetingsCompleted.All() && p.FunnelChecklist.All()
}

// CompletionCount counts the complete mentees.
func CompletionCount(people []models.Person) int {
	n := 0
	for _, p := range people {
		if IsComplete(p) {
			n++
		}
	}
	return n
}

// Partition splits people into mentees and mentors, keeping order.
func Partition(people []models.Person) (mentees, mentors []models.Person) {
	for _, p := range people {
		if p.IsMentor {
			mentors = append(mentors, p)
		} else {
			mentees = append(mentees, p)
		}
	}
	return mentees, mentors
}

// Stats are the headline counters of the dashboard.
type Stats struct {
	Mentees   int `json:"mentees"`
	Mentors   int `json:"mentors"`
	Completed int `json:"completed"`
}

// Summarize computes Stats over the full roster.
func Summarize(people []models.Person) Stats {
	mentees, mentors := Partition(people)
	return Stats{
		Mentees:   len(mentees),
		Mentors:   len(mentors),
		Completed: CompletionCount(mentees),
	}
}

// MentorOptions returns the mentor names in store order, for filter and assignment pickers.
func MentorOptions(people []models.Person) []string {
	names := []string{}
	for _, p := range people {
		if p.IsMentor {
			names = append(names, p.Name)
		}
	}
	return names
}

// Progress is a done-out-of-total counter.
type Progress struct {
	Done  int `json:"done"`
	Total int `json:"total"`
}

// Percent returns Done/Total as a whole percentage. An empty total is 0%.
func (p Progress) Percent() int {
	if p.Total == 0 {
		return 0
	}
	return int(math.Round(float64(p.Done) / float64(p.Total) * 100))
}

// TaskProgress counts completed tasks.
func TaskProgress(p models.Person) Progress {
	done := 0
	for _, t := range p.Tasks {
		if t.Status == models.TaskCompleted {
			done++
		}
	}
	return Progress{Done: done, Total: len(p.Tasks)}
}

// ChecklistProgress counts checked funnel steps.
func ChecklistProgress(p models.Person) Progress {
	return Progress{Done: p.FunnelChecklist.Count(), Total: models.ChecklistSize}
}

// MeetingProgress counts completed meetings.
func MeetingProgress(p models.Person) Progress {
	return Progress{Done: p.MeetingsCompleted.Count(), Total: models.MeetingSlotCount}
}
