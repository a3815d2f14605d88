package views

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/mmynk/mentorboard/internal/models"
)

const (
	noArtisticName = "N/A"
	noJoinDate     = "Não definida"
	noMentor       = "Sem mentor"
)

// Names written as "Full Name (Stage Name)".
var artisticName = regexp.MustCompile(`(.*?)\s*\((.*?)\)`)

var monthNames = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// Report is the header of a mentee's confidential report.
type Report struct {
	PersonID     int64    `json:"personId"`
	FullName     string   `json:"fullName"`
	ArtisticName string   `json:"artisticName"`
	JoinDate     string   `json:"joinDate"`
	Mentor       string   `json:"mentor"`
	Meetings     Progress `json:"meetings"`
	Checklist    Progress `json:"checklist"`
	Tasks        Progress `json:"tasks"`
	InitialFee   float64  `json:"initialFee"`
	CurrentFee   float64  `json:"currentFee"`
}

// BuildReport assembles the report header from a stored record.
func BuildReport(p models.Person) Report {
	full, artistic := SplitName(p.Name)

	mentor := p.MentorName()
	if mentor == "" {
		mentor = noMentor
	}

	return Report{
		PersonID:     p.ID,
		FullName:     full,
		ArtisticName: artistic,
		JoinDate:     FormatJoinDate(p.JoinDate),
		Mentor:       mentor,
		Meetings:     MeetingProgress(p),
		Checklist:    ChecklistProgress(p),
		Tasks:        TaskProgress(p),
		InitialFee:   p.InitialFee,
		CurrentFee:   p.CurrentFee,
	}
}

// SplitName separates "Full Name (Stage Name)" into its two parts.
// Without parentheses the stage name is "N/A".
func SplitName(name string) (full, artistic string) {
	m := artisticName.FindStringSubmatch(name)
	if m == nil {
		return name, noArtisticName
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
}

// FormatJoinDate renders a YYYY-MM-DD date in Portuguese long form ("15 de março de 2024").
// Unset dates read "Não definida"; text that is not a date is returned unchanged.
func FormatJoinDate(date *string) string {
	if date == nil || *date == "" {
		return noJoinDate
	}
	t, err := time.Parse(time.DateOnly, *date)
	if err != nil {
		return *date
	}
	return fmt.Sprintf("%d de %s de %d", t.Day(), monthNames[t.Month()-1], t.Year())
}
