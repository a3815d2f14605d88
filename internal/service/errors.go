package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/mentorboard/internal/auth"
	"github.com/mmynk/mentorboard/internal/draft"
	"github.com/mmynk/mentorboard/internal/importer"
	"github.com/mmynk/mentorboard/internal/storage"
)

var (
	ErrNameRequired    = errors.New("name is required")
	ErrSessionNotFound = errors.New("editing session not found")
	ErrInvalidMeeting  = errors.New("meeting slot must be between 1 and 5")
	ErrInvalidChoice   = errors.New("choice must be save, discard or continue")
	ErrReportScope     = errors.New("token does not grant access to this report")
)

// toConnectError maps domain errors onto Connect codes.
func toConnectError(err error) *connect.Error {
	var parseErr *importer.ParseError
	switch {
	case errors.Is(err, auth.ErrWrongSecret), errors.Is(err, ErrReportScope):
		return connect.NewError(connect.CodePermissionDenied, err)
	case errors.Is(err, auth.ErrMissingToken), errors.Is(err, auth.ErrInvalidToken):
		return connect.NewError(connect.CodeUnauthenticated, err)
	case errors.Is(err, storage.ErrNotFound),
		errors.Is(err, ErrSessionNotFound),
		errors.Is(err, draft.ErrTaskNotFound),
		errors.Is(err, draft.ErrObservationNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, draft.ErrNotEditing),
		errors.Is(err, draft.ErrConfirmingExit),
		errors.Is(err, draft.ErrNotConfirming),
		errors.Is(err, auth.ErrPromptClosed):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.As(err, &parseErr),
		errors.Is(err, ErrNameRequired),
		errors.Is(err, ErrInvalidMeeting),
		errors.Is(err, ErrInvalidChoice),
		errors.Is(err, draft.ErrEmptyTaskName),
		errors.Is(err, draft.ErrEmptyObservation),
		errors.Is(err, draft.ErrMentorRequired),
		errors.Is(err, draft.ErrInvalidAmount),
		errors.Is(err, draft.ErrInvalidDate),
		errors.Is(err, draft.ErrInvalidSlot),
		errors.Is(err, draft.ErrInvalidStep),
		errors.Is(err, draft.ErrInvalidStatus),
		errors.Is(err, draft.ErrUnknownEdit):
		return connect.NewError(connect.CodeInvalidArgument, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
