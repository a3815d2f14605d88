package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/mentorboard/internal/auth"
	"github.com/mmynk/mentorboard/internal/middleware"
	"github.com/mmynk/mentorboard/internal/storage"
	"github.com/mmynk/mentorboard/internal/views"
	"github.com/mmynk/mentorboard/pkg/api"
)

// ReportService implements the Connect ReportService
type ReportService struct {
	api.UnimplementedReportServiceHandler
	store  storage.Store
	authz  auth.Authorizer
	tokens *auth.ReportTokenManager
}

// NewReportService creates a new ReportService.
func NewReportService(store storage.Store, authz auth.Authorizer, tokens *auth.ReportTokenManager) *ReportService {
	return &ReportService{store: store, authz: authz, tokens: tokens}
}

// UnlockReport checks the shared secret and returns a token for one person's report.
func (s *ReportService) UnlockReport(ctx context.Context, req *connect.Request[api.UnlockReportRequest]) (*connect.Response[api.UnlockReportResponse], error) {
	slog.Info("UnlockReport request received", "person_id", req.Msg.PersonID)

	if _, err := s.store.Get(ctx, req.Msg.PersonID); err != nil {
		slog.Error("UnlockReport failed", "person_id", req.Msg.PersonID, "error", err)
		return nil, toConnectError(err)
	}

	resp := &api.UnlockReportResponse{}
	err := auth.Guard(s.authz, auth.ActionUnlockReport, req.Msg.Secret, func() error {
		var err error
		resp.Token, resp.ExpiresAt, err = s.tokens.Generate(req.Msg.PersonID)
		return err
	})
	if err != nil {
		slog.Warn("UnlockReport failed", "person_id", req.Msg.PersonID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("UnlockReport successful", "person_id", req.Msg.PersonID, "expires_at", resp.ExpiresAt)

	return connect.NewResponse(resp), nil
}

// GetReport returns the report header built from the stored record.
// The request must carry a token issued for the same person.
func (s *ReportService) GetReport(ctx context.Context, req *connect.Request[api.GetReportRequest]) (*connect.Response[api.GetReportResponse], error) {
	slog.Info("GetReport request received", "person_id", req.Msg.PersonID)

	claims := middleware.GetReportClaims(ctx)
	if claims == nil {
		return nil, toConnectError(auth.ErrMissingToken)
	}
	if claims.PersonID != req.Msg.PersonID {
		slog.Warn("GetReport denied", "person_id", req.Msg.PersonID, "token_person_id", claims.PersonID)
		return nil, toConnectError(ErrReportScope)
	}

	person, err := s.store.Get(ctx, req.Msg.PersonID)
	if err != nil {
		slog.Error("GetReport failed", "person_id", req.Msg.PersonID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetReportResponse{Report: views.BuildReport(*person)}), nil
}
