package models

// Person is a mentee or a mentor.
//
// Mentors only use Name and SocialHandle; every other field stays at its zero value.
type Person struct {
	// ID is unique within the store and assigned by it.
	ID int64 `json:"id"`

	Name         string `json:"name"`
	SocialHandle string `json:"socialHandle"`

	IsMentor bool `json:"isMentor"`

	// AssignedMentor is the mentor's Name, or nil when unassigned.
	// It is a weak reference: it is not updated when the mentor is renamed or deleted.
	AssignedMentor *string `json:"assignedMentor"`

	MeetingsCompleted Meetings `json:"meetingsCompleted"`

	// NextMeeting marks the upcoming meeting. At most one slot can be marked.
	NextMeeting *MeetingSlot `json:"nextMeeting"`

	Tasks        []Task        `json:"tasks"`
	Observations []Observation `json:"observations"`

	FunnelChecklist Checklist `json:"funnelChecklist"`

	// InitialFee and CurrentFee are the mentee's show fee (BRL) at joining and today.
	InitialFee float64 `json:"initialFee"`
	CurrentFee float64 `json:"currentFee"`

	// JoinDate is usually YYYY-MM-DD. Imported rows keep the spreadsheet text as-is.
	JoinDate *string `json:"joinDate"`
}

// NewPerson returns a record with every progress field at its baseline.
func NewPerson(name, socialHandle string, isMentor bool) Person {
	return Person{
		Name:         name,
		SocialHandle: socialHandle,
		IsMentor:     isMentor,
		Tasks:        []Task{},
		Observations: []Observation{},
	}
}

// HasMentor reports whether a mentor is assigned.
func (p Person) HasMentor() bool {
	return p.AssignedMentor != nil && *p.AssignedMentor != ""
}

// MentorName returns the assigned mentor, or an empty string.
func (p Person) MentorName() string {
	if p.AssignedMentor == nil {
		return ""
	}
	return *p.AssignedMentor
}

// Clone returns a deep copy that shares no memory with p.
func (p Person) Clone() Person {
	out := p
	out.AssignedMentor = cloneString(p.AssignedMentor)
	out.JoinDate = cloneString(p.JoinDate)
	if p.NextMeeting != nil {
		slot := *p.NextMeeting
		out.NextMeeting = &slot
	}
	if p.Tasks != nil {
		out.Tasks = append([]Task(nil), p.Tasks...)
	}
	if p.Observations != nil {
		out.Observations = append([]Observation(nil), p.Observations...)
	}
	return out
}

// Equal compares two records field by field. Nil and empty slices are equal.
func (p Person) Equal(o Person) bool {
	if p.ID != o.ID ||
		p.Name != o.Name ||
		p.SocialHandle != o.SocialHandle ||
		p.IsMentor != o.IsMentor ||
		p.MeetingsCompleted != o.MeetingsCompleted ||
		p.FunnelChecklist != o.FunnelChecklist ||
		p.InitialFee != o.InitialFee ||
		p.CurrentFee != o.CurrentFee {
		return false
	}
	if !equalString(p.AssignedMentor, o.AssignedMentor) || !equalString(p.JoinDate, o.JoinDate) {
		return false
	}
	if (p.NextMeeting == nil) != (o.NextMeeting == nil) {
		return false
	}
	if p.NextMeeting != nil && *p.NextMeeting != *o.NextMeeting {
		return false
	}
	if len(p.Tasks) != len(o.Tasks) || len(p.Observations) != len(o.Observations) {
		return false
	}
	for i := range p.Tasks {
		if !p.Tasks[i].equal(o.Tasks[i]) {
			return false
		}
	}
	for i := range p.Observations {
		if !p.Observations[i].equal(o.Observations[i]) {
			return false
		}
	}
	return true
}

func (t Task) equal(o Task) bool {
	return t.ID == o.ID && t.Name == o.Name && t.Status == o.Status && t.CreatedAt.Equal(o.CreatedAt)
}

func (ob Observation) equal(o Observation) bool {
	return ob.ID == o.ID && ob.AuthorMentor == o.AuthorMentor && ob.Text == o.Text && ob.Date.Equal(o.Date)
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func equalString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

// SlotPtr returns a pointer to slot.
func SlotPtr(slot MeetingSlot) *MeetingSlot {
	return &slot
}
