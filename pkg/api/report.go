package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// ReportServiceName is the fully-qualified name of the ReportService.
const ReportServiceName = "mentorboard.v1.ReportService"

// Procedure paths of the ReportService.
const (
	ReportServiceUnlockReportProcedure = "/mentorboard.v1.ReportService/UnlockReport"
	ReportServiceGetReportProcedure    = "/mentorboard.v1.ReportService/GetReport"
)

// ReportServiceClient is a client for the ReportService.
//
// GetReport needs a token obtained from UnlockReport.
type ReportServiceClient interface {
	// UnlockReport exchanges the shared secret for a report token.
	UnlockReport(context.Context, *connect.Request[UnlockReportRequest]) (*connect.Response[UnlockReportResponse], error)
	// GetReport returns the report. Requires a token for the same person.
	GetReport(context.Context, *connect.Request[GetReportRequest]) (*connect.Response[GetReportResponse], error)
}

// NewReportServiceClient constructs a client for the ReportService at baseURL.
func NewReportServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ReportServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &reportServiceClient{
		unlockReport: connect.NewClient[UnlockReportRequest, UnlockReportResponse](
			httpClient,
			baseURL+ReportServiceUnlockReportProcedure,
			opts...,
		),
		getReport: connect.NewClient[GetReportRequest, GetReportResponse](
			httpClient,
			baseURL+ReportServiceGetReportProcedure,
			opts...,
		),
	}
}

type reportServiceClient struct {
	unlockReport *connect.Client[UnlockReportRequest, UnlockReportResponse]
	getReport    *connect.Client[GetReportRequest, GetReportResponse]
}

func (c *reportServiceClient) UnlockReport(ctx context.Context, req *connect.Request[UnlockReportRequest]) (*connect.Response[UnlockReportResponse], error) {
	return c.unlockReport.CallUnary(ctx, req)
}

func (c *reportServiceClient) GetReport(ctx context.Context, req *connect.Request[GetReportRequest]) (*connect.Response[GetReportResponse], error) {
	return c.getReport.CallUnary(ctx, req)
}

// ReportServiceHandler is implemented by the server side of the ReportService.
type ReportServiceHandler interface {
	UnlockReport(context.Context, *connect.Request[UnlockReportRequest]) (*connect.Response[UnlockReportResponse], error)
	GetReport(context.Context, *connect.Request[GetReportRequest]) (*connect.Response[GetReportResponse], error)
}

// NewReportServiceHandler builds an HTTP handler for svc and returns the path to mount it on.
func NewReportServiceHandler(svc ReportServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)
	unlockReportHandler := connect.NewUnaryHandler(
		ReportServiceUnlockReportProcedure,
		svc.UnlockReport,
		opts...,
	)
	getReportHandler := connect.NewUnaryHandler(
		ReportServiceGetReportProcedure,
		svc.GetReport,
		opts...,
	)
	return "/" + ReportServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case ReportServiceUnlockReportProcedure:
			unlockReportHandler.ServeHTTP(w, r)
		case ReportServiceGetReportProcedure:
			getReportHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedReportServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedReportServiceHandler struct{}

func (UnimplementedReportServiceHandler) UnlockReport(context.Context, *connect.Request[UnlockReportRequest]) (*connect.Response[UnlockReportResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("mentorboard.v1.ReportService.UnlockReport is not implemented"))
}

func (UnimplementedReportServiceHandler) GetReport(context.Context, *connect.Request[GetReportRequest]) (*connect.Response[GetReportResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("mentorboard.v1.ReportService.GetReport is not implemented"))
}
