package api

import (
	"time"

	"github.com/mmynk/mentorboard/internal/draft"
	"github.com/mmynk/mentorboard/internal/models"
	"github.com/mmynk/mentorboard/internal/views"
)

// PeopleService messages.

type ListPeopleRequest struct {
	Search  string              `json:"search,omitempty"`
	Mentor  *string             `json:"mentor,omitempty"`
	Meeting *models.MeetingSlot `json:"meeting,omitempty"`
}

type ListPeopleResponse struct {
	People []models.Person `json:"people"`
}

type GetPersonRequest struct {
	ID int64 `json:"id"`
}

type GetPersonResponse struct {
	Person models.Person `json:"person"`
}

type CreatePersonRequest struct {
	Name         string `json:"name"`
	SocialHandle string `json:"socialHandle"`
	IsMentor     bool   `json:"isMentor"`
	Secret       string `json:"secret"`
}

type CreatePersonResponse struct {
	Person models.Person `json:"person"`
}

type DeletePersonRequest struct {
	ID     int64  `json:"id"`
	Secret string `json:"secret"`
}

type DeletePersonResponse struct{}

// ImportPeopleRequest carries a spreadsheet. Data is base64 in JSON.
type ImportPeopleRequest struct {
	Filename string `json:"filename"`
	Data     []byte `json:"data"`
}

type ImportPeopleResponse struct {
	Imported int    `json:"imported"`
	Message  string `json:"message"`
}

type GetDashboardRequest struct{}

// MeetingOption describes one meeting slot for filter pickers.
type MeetingOption struct {
	Slot   models.MeetingSlot `json:"slot"`
	Legend string             `json:"legend"`
}

type GetDashboardResponse struct {
	Stats     views.Stats     `json:"stats"`
	Mentors   []string        `json:"mentors"`
	Meetings  []MeetingOption `json:"meetings"`
	Loading   bool            `json:"loading"`
	Connected bool            `json:"connected"`
}

// EditorService messages.

// DraftView is the editor state returned by every EditorService call.
type DraftView struct {
	SessionID         string         `json:"sessionId"`
	State             string         `json:"state"`
	Dirty             bool           `json:"dirty"`
	CanAddObservation bool           `json:"canAddObservation"`
	RemovalPending    bool           `json:"removalPending"`
	Draft             *models.Person `json:"draft,omitempty"`
}

type OpenDraftRequest struct {
	PersonID int64 `json:"personId"`
}

type OpenDraftResponse struct {
	Session DraftView `json:"session"`
}

type ApplyEditRequest struct {
	SessionID string     `json:"sessionId"`
	Edit      draft.Edit `json:"edit"`
}

type ApplyEditResponse struct {
	Session DraftView `json:"session"`
}

// RemoveObservationRequest holds the removal when Secret is empty and submits it otherwise.
type RemoveObservationRequest struct {
	SessionID     string `json:"sessionId"`
	ObservationID string `json:"observationId"`
	Secret        string `json:"secret"`
}

type RemoveObservationResponse struct {
	Session DraftView `json:"session"`
}

type RequestCloseRequest struct {
	SessionID string `json:"sessionId"`
}

type RequestCloseResponse struct {
	Closed  bool      `json:"closed"`
	Session DraftView `json:"session"`
}

// Exit choices for ResolveExit.
const (
	ExitSave     = "save"
	ExitDiscard  = "discard"
	ExitContinue = "continue"
)

type ResolveExitRequest struct {
	SessionID string `json:"sessionId"`
	Choice    string `json:"choice"`
}

type ResolveExitResponse struct {
	Closed  bool           `json:"closed"`
	Saved   *models.Person `json:"saved,omitempty"`
	Session DraftView      `json:"session"`
}

type SaveDraftRequest struct {
	SessionID string `json:"sessionId"`
}

type SaveDraftResponse struct {
	Person models.Person `json:"person"`
}

// ReportService messages.

type UnlockReportRequest struct {
	PersonID int64  `json:"personId"`
	Secret   string `json:"secret"`
}

type UnlockReportResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type GetReportRequest struct {
	PersonID int64 `json:"personId"`
}

type GetReportResponse struct {
	Report views.Report `json:"report"`
}
