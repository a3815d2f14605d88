package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// PeopleServiceName is the fully-qualified name of the PeopleService.
const PeopleServiceName = "mentorboard.v1.PeopleService"

// Procedure paths of the PeopleService.
const (
	PeopleServiceListPeopleProcedure   = "/mentorboard.v1.PeopleService/ListPeople"
	PeopleServiceGetPersonProcedure    = "/mentorboard.v1.PeopleService/GetPerson"
	PeopleServiceCreatePersonProcedure = "/mentorboard.v1.PeopleService/CreatePerson"
	PeopleServiceDeletePersonProcedure = "/mentorboard.v1.PeopleService/DeletePerson"
	PeopleServiceImportPeopleProcedure = "/mentorboard.v1.PeopleService/ImportPeople"
	PeopleServiceGetDashboardProcedure = "/mentorboard.v1.PeopleService/GetDashboard"
)

// PeopleServiceClient is a client for the PeopleService.
//
// It covers roster reads and writes, spreadsheet import and dashboard counters.
type PeopleServiceClient interface {
	// ListPeople returns the roster after search and filters.
	ListPeople(context.Context, *connect.Request[ListPeopleRequest]) (*connect.Response[ListPeopleResponse], error)
	// GetPerson returns one record.
	GetPerson(context.Context, *connect.Request[GetPersonRequest]) (*connect.Response[GetPersonResponse], error)
	// CreatePerson adds a mentee or mentor. Requires the shared secret.
	CreatePerson(context.Context, *connect.Request[CreatePersonRequest]) (*connect.Response[CreatePersonResponse], error)
	// DeletePerson removes a record. Requires the shared secret.
	DeletePerson(context.Context, *connect.Request[DeletePersonRequest]) (*connect.Response[DeletePersonResponse], error)
	// ImportPeople replaces every mentee with the rows of a spreadsheet.
	ImportPeople(context.Context, *connect.Request[ImportPeopleRequest]) (*connect.Response[ImportPeopleResponse], error)
	// GetDashboard returns counters, picker options and load status.
	GetDashboard(context.Context, *connect.Request[GetDashboardRequest]) (*connect.Response[GetDashboardResponse], error)
}

// NewPeopleServiceClient constructs a client for the PeopleService at baseURL.
func NewPeopleServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) PeopleServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &peopleServiceClient{
		listPeople: connect.NewClient[ListPeopleRequest, ListPeopleResponse](
			httpClient,
			baseURL+PeopleServiceListPeopleProcedure,
			opts...,
		),
		getPerson: connect.NewClient[GetPersonRequest, GetPersonResponse](
			httpClient,
			baseURL+PeopleServiceGetPersonProcedure,
			opts...,
		),
		createPerson: connect.NewClient[CreatePersonRequest, CreatePersonResponse](
			httpClient,
			baseURL+PeopleServiceCreatePersonProcedure,
			opts...,
		),
		deletePerson: connect.NewClient[DeletePersonRequest, DeletePersonResponse](
			httpClient,
			baseURL+PeopleServiceDeletePersonProcedure,
			opts...,
		),
		importPeople: connect.NewClient[ImportPeopleRequest, ImportPeopleResponse](
			httpClient,
			baseURL+PeopleServiceImportPeopleProcedure,
			opts...,
		),
		getDashboard: connect.NewClient[GetDashboardRequest, GetDashboardResponse](
			httpClient,
			baseURL+PeopleServiceGetDashboardProcedure,
			opts...,
		),
	}
}

type peopleServiceClient struct {
	listPeople   *connect.Client[ListPeopleRequest, ListPeopleResponse]
	getPerson    *connect.Client[GetPersonRequest, GetPersonResponse]
	createPerson *connect.Client[CreatePersonRequest, CreatePersonResponse]
	deletePerson *connect.Client[DeletePersonRequest, DeletePersonResponse]
	importPeople *connect.Client[ImportPeopleRequest, ImportPeopleResponse]
	getDashboard *connect.Client[GetDashboardRequest, GetDashboardResponse]
}

func (c *peopleServiceClient) ListPeople(ctx context.Context, req *connect.Request[ListPeopleRequest]) (*connect.Response[ListPeopleResponse], error) {
	return c.listPeople.CallUnary(ctx, req)
}

func (c *peopleServiceClient) GetPerson(ctx context.Context, req *connect.Request[GetPersonRequest]) (*connect.Response[GetPersonResponse], error) {
	return c.getPerson.CallUnary(ctx, req)
}

func (c *peopleServiceClient) CreatePerson(ctx context.Context, req *connect.Request[CreatePersonRequest]) (*connect.Response[CreatePersonResponse], error) {
	return c.createPerson.CallUnary(ctx, req)
}

func (c *peopleServiceClient) DeletePerson(ctx context.Context, req *connect.Request[DeletePersonRequest]) (*connect.Response[DeletePersonResponse], error) {
	return c.deletePerson.CallUnary(ctx, req)
}

func (c *peopleServiceClient) ImportPeople(ctx context.Context, req *connect.Request[ImportPeopleRequest]) (*connect.Response[ImportPeopleResponse], error) {
	return c.importPeople.CallUnary(ctx, req)
}

func (c *peopleServiceClient) GetDashboard(ctx context.Context, req *connect.Request[GetDashboardRequest]) (*connect.Response[GetDashboardResponse], error) {
	return c.getDashboard.CallUnary(ctx, req)
}

// PeopleServiceHandler is implemented by the server side of the PeopleService.
type PeopleServiceHandler interface {
	ListPeople(context.Context, *connect.Request[ListPeopleRequest]) (*connect.Response[ListPeopleResponse], error)
	GetPerson(context.Context, *connect.Request[GetPersonRequest]) (*connect.Response[GetPersonResponse], error)
	CreatePerson(context.Context, *connect.Request[CreatePersonRequest]) (*connect.Response[CreatePersonResponse], error)
	DeletePerson(context.Context, *connect.Request[DeletePersonRequest]) (*connect.Response[DeletePersonResponse], error)
	ImportPeople(context.Context, *connect.Request[ImportPeopleRequest]) (*connect.Response[ImportPeopleResponse], error)
	GetDashboard(context.Context, *connect.Request[GetDashboardRequest]) (*connect.Response[GetDashboardResponse], error)
}

// NewPeopleServiceHandler builds an HTTP handler for svc and returns the path to mount it on.
func NewPeopleServiceHandler(svc PeopleServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)
	listPeopleHandler := connect.NewUnaryHandler(
		PeopleServiceListPeopleProcedure,
		svc.ListPeople,
		opts...,
	)
	getPersonHandler := connect.NewUnaryHandler(
		PeopleServiceGetPersonProcedure,
		svc.GetPerson,
		opts...,
	)
	createPersonHandler := connect.NewUnaryHandler(
		PeopleServiceCreatePersonProcedure,
		svc.CreatePerson,
		opts...,
	)
	deletePersonHandler := connect.NewUnaryHandler(
		PeopleServiceDeletePersonProcedure,
		svc.DeletePerson,
		opts...,
	)
	importPeopleHandler := connect.NewUnaryHandler(
		PeopleServiceImportPeopleProcedure,
		svc.ImportPeople,
		opts...,
	)
	getDashboardHandler := connect.NewUnaryHandler(
		PeopleServiceGetDashboardProcedure,
		svc.GetDashboard,
		opts...,
	)
	return "/" + PeopleServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case PeopleServiceListPeopleProcedure:
			listPeopleHandler.ServeHTTP(w, r)
		case PeopleServiceGetPersonProcedure:
			getPersonHandler.ServeHTTP(w, r)
		case PeopleServiceCreatePersonProcedure:
			createPersonHandler.ServeHTTP(w, r)
		case PeopleServiceDeletePersonProcedure:
			deletePersonHandler.ServeHTTP(w, r)
		case PeopleServiceImportPeopleProcedure:
			importPeopleHandler.ServeHTTP(w, r)
		case PeopleServiceGetDashboardProcedure:
			getDashboardHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedPeopleServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedPeopleServiceHandler struct{}

func (UnimplementedPeopleServiceHandler) ListPeople(context.Context, *connect.Request[ListPeopleRequest]) (*connect.Response[ListPeopleResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("mentorboard.v1.PeopleService.ListPeople is not implemented"))
}

func (UnimplementedPeopleServiceHandler) GetPerson(context.Context, *connect.Request[GetPersonRequest]) (*connect.Response[GetPersonResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("mentorboard.v1.PeopleService.GetPerson is not implemented"))
}

func (UnimplementedPeopleServiceHandler) CreatePerson(context.Context, *connect.Request[CreatePersonRequest]) (*connect.Response[CreatePersonResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("mentorboard.v1.PeopleService.CreatePerson is not implemented"))
}

func (UnimplementedPeopleServiceHandler) DeletePerson(context.Context, *connect.Request[DeletePersonRequest]) (*connect.Response[DeletePersonResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("mentorboard.v1.PeopleService.DeletePerson is not implemented"))
}

func (UnimplementedPeopleServiceHandler) ImportPeople(context.Context, *connect.Request[ImportPeopleRequest]) (*connect.Response[ImportPeopleResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("mentorboard.v1.PeopleService.ImportPeople is not implemented"))
}

func (UnimplementedPeopleServiceHandler) GetDashboard(context.Context, *connect.Request[GetDashboardRequest]) (*connect.Response[GetDashboardResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("mentorboard.v1.PeopleService.GetDashboard is not implemented"))
}
