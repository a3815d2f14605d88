package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// EditorServiceName is the fully-qualified name of the EditorService.
const EditorServiceName = "mentorboard.v1.EditorService"

// Procedure paths of the EditorService.
const (
	EditorServiceOpenDraftProcedure         = "/mentorboard.v1.EditorService/OpenDraft"
	EditorServiceApplyEditProcedure         = "/mentorboard.v1.EditorService/ApplyEdit"
	EditorServiceRemoveObservationProcedure = "/mentorboard.v1.EditorService/RemoveObservation"
	EditorServiceRequestCloseProcedure      = "/mentorboard.v1.EditorService/RequestClose"
	EditorServiceResolveExitProcedure       = "/mentorboard.v1.EditorService/ResolveExit"
	EditorServiceSaveDraftProcedure         = "/mentorboard.v1.EditorService/SaveDraft"
)

// EditorServiceClient is a client for the EditorService.
//
// Each session edits a private copy of one record until it is saved or discarded.
type EditorServiceClient interface {
	// OpenDraft starts a session on a copy of one record.
	OpenDraft(context.Context, *connect.Request[OpenDraftRequest]) (*connect.Response[OpenDraftResponse], error)
	// ApplyEdit applies one field edit to the draft.
	ApplyEdit(context.Context, *connect.Request[ApplyEditRequest]) (*connect.Response[ApplyEditResponse], error)
	// RemoveObservation holds or confirms an observation removal.
	RemoveObservation(context.Context, *connect.Request[RemoveObservationRequest]) (*connect.Response[RemoveObservationResponse], error)
	// RequestClose closes a clean draft or asks to confirm a dirty one.
	RequestClose(context.Context, *connect.Request[RequestCloseRequest]) (*connect.Response[RequestCloseResponse], error)
	// ResolveExit answers the exit confirmation.
	ResolveExit(context.Context, *connect.Request[ResolveExitRequest]) (*connect.Response[ResolveExitResponse], error)
	// SaveDraft commits the draft and closes the session.
	SaveDraft(context.Context, *connect.Request[SaveDraftRequest]) (*connect.Response[SaveDraftResponse], error)
}

// NewEditorServiceClient constructs a client for the EditorService at baseURL.
func NewEditorServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) EditorServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &editorServiceClient{
		openDraft: connect.NewClient[OpenDraftRequest, OpenDraftResponse](
			httpClient,
			baseURL+EditorServiceOpenDraftProcedure,
			opts...,
		),
		applyEdit: connect.NewClient[ApplyEditRequest, ApplyEditResponse](
			httpClient,
			baseURL+EditorServiceApplyEditProcedure,
			opts...,
		),
		removeObservation: connect.NewClient[RemoveObservationRequest, RemoveObservationResponse](
			httpClient,
			baseURL+EditorServiceRemoveObservationProcedure,
			opts...,
		),
		requestClose: connect.NewClient[RequestCloseRequest, RequestCloseResponse](
			httpClient,
			baseURL+EditorServiceRequestCloseProcedure,
			opts...,
		),
		resolveExit: connect.NewClient[ResolveExitRequest, ResolveExitResponse](
			httpClient,
			baseURL+EditorServiceResolveExitProcedure,
			opts...,
		),
		saveDraft: connect.NewClient[SaveDraftRequest, SaveDraftResponse](
			httpClient,
			baseURL+EditorServiceSaveDraftProcedure,
			opts...,
		),
	}
}

type editorServiceClient struct {
	openDraft         *connect.Client[OpenDraftRequest, OpenDraftResponse]
	applyEdit         *connect.Client[ApplyEditRequest, ApplyEditResponse]
	removeObservation *connect.Client[RemoveObservationRequest, RemoveObservationResponse]
	requestClose      *connect.Client[RequestCloseRequest, RequestCloseResponse]
	resolveExit       *connect.Client[ResolveExitRequest, ResolveExitResponse]
	saveDraft         *connect.Client[SaveDraftRequest, SaveDraftResponse]
}

func (c *editorServiceClient) OpenDraft(ctx context.Context, req *connect.Request[OpenDraftRequest]) (*connect.Response[OpenDraftResponse], error) {
	return c.openDraft.CallUnary(ctx, req)
}

func (c *editorServiceClient) ApplyEdit(ctx context.Context, req *connect.Request[ApplyEditRequest]) (*connect.Response[ApplyEditResponse], error) {
	return c.applyEdit.CallUnary(ctx, req)
}

func (c *editorServiceClient) RemoveObservation(ctx context.Context, req *connect.Request[RemoveObservationRequest]) (*connect.Response[RemoveObservationResponse], error) {
	return c.removeObservation.CallUnary(ctx, req)
}

func (c *editorServiceClient) RequestClose(ctx context.Context, req *connect.Request[RequestCloseRequest]) (*connect.Response[RequestCloseResponse], error) {
	return c.requestClose.CallUnary(ctx, req)
}

func (c *editorServiceClient) ResolveExit(ctx context.Context, req *connect.Request[ResolveExitRequest]) (*connect.Response[ResolveExitResponse], error) {
	return c.resolveExit.CallUnary(ctx, req)
}

func (c *editorServiceClient) SaveDraft(ctx context.Context, req *connect.Request[SaveDraftRequest]) (*connect.Response[SaveDraftResponse], error) {
	return c.saveDraft.CallUnary(ctx, req)
}

// EditorServiceHandler is implemented by the server side of the EditorService.
type EditorServiceHandler interface {
	OpenDraft(context.Context, *connect.Request[OpenDraftRequest]) (*connect.Response[OpenDraftResponse], error)
	ApplyEdit(context.Context, *connect.Request[ApplyEditRequest]) (*connect.Response[ApplyEditResponse], error)
	RemoveObservation(context.Context, *connect.Request[RemoveObservationRequest]) (*connect.Response[RemoveObservationResponse], error)
	RequestClose(context.Context, *connect.Request[RequestCloseRequest]) (*connect.Response[RequestCloseResponse], error)
	ResolveExit(context.Context, *connect.Request[ResolveExitRequest]) (*connect.Response[ResolveExitResponse], error)
	SaveDraft(context.Context, *connect.Request[SaveDraftRequest]) (*connect.Response[SaveDraftResponse], error)
}

// NewEditorServiceHandler builds an HTTP handler for svc and returns the path to mount it on.
func NewEditorServiceHandler(svc EditorServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)
	openDraftHandler := connect.NewUnaryHandler(
		EditorServiceOpenDraftProcedure,
		svc.OpenDraft,
		opts...,
	)
	applyEditHandler := connect.NewUnaryHandler(
		EditorServiceApplyEditProcedure,
		svc.ApplyEdit,
		opts...,
	)
	removeObservationHandler := connect.NewUnaryHandler(
		EditorServiceRemoveObservationProcedure,
		svc.RemoveObservation,
		opts...,
	)
	requestCloseHandler := connect.NewUnaryHandler(
		EditorServiceRequestCloseProcedure,
		svc.RequestClose,
		opts...,
	)
	resolveExitHandler := connect.NewUnaryHandler(
		EditorServiceResolveExitProcedure,
		svc.ResolveExit,
		opts...,
	)
	saveDraftHandler := connect.NewUnaryHandler(
		EditorServiceSaveDraftProcedure,
		svc.SaveDraft,
		opts...,
	)
	return "/" + EditorServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case EditorServiceOpenDraftProcedure:
			openDraftHandler.ServeHTTP(w, r)
		case EditorServiceApplyEditProcedure:
			applyEditHandler.ServeHTTP(w, r)
		case EditorServiceRemoveObservationProcedure:
			removeObservationHandler.ServeHTTP(w, r)
		case EditorServiceRequestCloseProcedure:
			requestCloseHandler.ServeHTTP(w, r)
		case EditorServiceResolveExitProcedure:
			resolveExitHandler.ServeHTTP(w, r)
		case EditorServiceSaveDraftProcedure:
			saveDraftHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedEditorServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedEditorServiceHandler struct{}

func (UnimplementedEditorServiceHandler) OpenDraft(context.Context, *connect.Request[OpenDraftRequest]) (*connect.Response[OpenDraftResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("mentorboard.v1.EditorService.OpenDraft is not implemented"))
}

func (UnimplementedEditorServiceHandler) ApplyEdit(context.Context, *connect.Request[ApplyEditRequest]) (*connect.Response[ApplyEditResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("mentorboard.v1.EditorService.ApplyEdit is not implemented"))
}

func (UnimplementedEditorServiceHandler) RemoveObservation(context.Context, *connect.Request[RemoveObservationRequest]) (*connect.Response[RemoveObservationResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("mentorboard.v1.EditorService.RemoveObservation is not implemented"))
}

func (UnimplementedEditorServiceHandler) RequestClose(context.Context, *connect.Request[RequestCloseRequest]) (*connect.Response[RequestCloseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("mentorboard.v1.EditorService.RequestClose is not implemented"))
}

func (UnimplementedEditorServiceHandler) ResolveExit(context.Context, *connect.Request[ResolveExitRequest]) (*connect.Response[ResolveExitResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("mentorboard.v1.EditorService.ResolveExit is not implemented"))
}

func (UnimplementedEditorServiceHandler) SaveDraft(context.Context, *connect.Request[SaveDraftRequest]) (*connect.Response[SaveDraftResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("mentorboard.v1.EditorService.SaveDraft is not implemented"))
}
