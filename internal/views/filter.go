// Package views computes the dashboard's derived views from a store snapshot.
//
// Every function here is pure: it reads the people it is given and returns new
// slices without touching the records themselves.
package views

import (
	"strings"

	"github.com/mmynk/mentorboard/internal/models"
)

// Search returns the people whose name or social handle contains text, ignoring case.
// Empty text matches everyone.
func Search(people []models.Person, text string) []models.Person {
	if text == "" {
		return append([]models.Person(nil), people...)
	}
	needle := strings.ToLower(text)

	var out []models.Person
	for _, p := range people {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.SocialHandle), needle) {
			out = append(out, p)
		}
	}
	return out
}

// Filter is the pair of single-select dashboard filters.
// A nil field means that filter is off.
type Filter struct {
	Mentor  *string
	Meeting *models.MeetingSlot
}

// ToggleMentor selects name, or clears the mentor filter if name is already selected.
func (f *Filter) ToggleMentor(name string) {
	if f.Mentor != nil && *f.Mentor == name {
		f.Mentor = nil
		return
	}
	f.Mentor = models.StringPtr(name)
}

// ToggleMeeting selects slot, or clears the meeting filter if slot is already selected.
func (f *Filter) ToggleMeeting(slot models.MeetingSlot) {
	if f.Meeting != nil && *f.Meeting == slot {
		f.Meeting = nil
		return
	}
	f.Meeting = models.SlotPtr(slot)
}

// Active reports whether either filter is set.
func (f Filter) Active() bool {
	return f.Mentor != nil || f.Meeting != nil
}

// ApplyMentorFilter drops mentors, then keeps the mentees assigned to mentor.
func ApplyMentorFilter(people []models.Person, mentor string) []models.Person {
	var out []models.Person
	for _, p := range people {
		if p.IsMentor {
			continue
		}
		if p.AssignedMentor != nil && *p.AssignedMentor == mentor {
			out = append(out, p)
		}
	}
	return out
}

// ApplyMeetingFilter drops mentors, then keeps the mentees that completed slot.
func ApplyMeetingFilter(people []models.Person, slot models.MeetingSlot) []models.Person {
	var out []models.Person
	for _, p := range people {
		if p.IsMentor {
			continue
		}
		if p.MeetingsCompleted.Completed(slot) {
			out = append(out, p)
		}
	}
	return out
}

// Apply runs the search first and then every active filter. All conditions must hold.
func Apply(people []models.Person, text string, f Filter) []models.Person {
	out := Search(people, text)
	if f.Mentor != nil {
		out = ApplyMentorFilter(out, *f.Mentor)
	}
	if f.Meeting != nil {
		out = ApplyMeetingFilter(out, *f.Meeting)
	}
	if out == nil {
		out = []models.Person{}
	}
	return out
}
