package rpc

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const (
	// BMIServiceName is the fully-qualified name of the BMI service.
	BMIServiceName = "bmi.v1.BMIService"
	// AuthServiceName is the fully-qualified name of the auth service.
	AuthServiceName = "bmi.v1.AuthService"
)

const (
	BMIServiceCalculateProcedure   = "/bmi.v1.BMIService/Calculate"
	BMIServiceSaveRecordProcedure  = "/bmi.v1.BMIService/SaveRecord"
	BMIServiceListRecordsProcedure = "/bmi.v1.BMIService/ListRecords"
	BMIServiceGetTrendProcedure    = "/bmi.v1.BMIService/GetTrend"
	AuthServiceLoginProcedure      = "/bmi.v1.AuthService/Login"
)

// BMIServiceHandler is implemented by the server side of bmi.v1.BMIService.
type BMIServiceHandler interface {
	Calculate(context.Context, *connect.Request[CalculateRequest]) (*connect.Response[CalculateResponse], error)
	SaveRecord(context.Context, *connect.Request[SaveRecordRequest]) (*connect.Response[SaveRecordResponse], error)
	ListRecords(context.Context, *connect.Request[ListRecordsRequest]) (*connect.Response[ListRecordsResponse], error)
	GetTrend(context.Context, *connect.Request[GetTrendRequest]) (*connect.Response[GetTrendResponse], error)
}

// AuthServiceHandler is implemented by the server side of bmi.v1.AuthService.
type AuthServiceHandler interface {
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error)
}

// NewBMIServiceHandler builds an HTTP handler for svc and returns the path
// to mount it on.
func NewBMIServiceHandler(svc BMIServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withJSON(opts)
	calculate := connect.NewUnaryHandler(BMIServiceCalculateProcedure, svc.Calculate, opts...)
	saveRecord := connect.NewUnaryHandler(BMIServiceSaveRecordProcedure, svc.SaveRecord, opts...)
	listRecords := connect.NewUnaryHandler(BMIServiceListRecordsProcedure, svc.ListRecords, opts...)
	getTrend := connect.NewUnaryHandler(BMIServiceGetTrendProcedure, svc.GetTrend, opts...)

	return "/" + BMIServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case BMIServiceCalculateProcedure:
			calculate.ServeHTTP(w, r)
		case BMIServiceSaveRecordProcedure:
			saveRecord.ServeHTTP(w, r)
		case BMIServiceListRecordsProcedure:
			listRecords.ServeHTTP(w, r)
		case BMIServiceGetTrendProcedure:
			getTrend.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// NewAuthServiceHandler builds an HTTP handler for svc and returns the path
// to mount it on.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withJSON(opts)
	login := connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...)

	return "/" + AuthServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case AuthServiceLoginProcedure:
			login.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// BMIServiceClient is a client for bmi.v1.BMIService.
type BMIServiceClient interface {
	Calculate(context.Context, *connect.Request[CalculateRequest]) (*connect.Response[CalculateResponse], error)
	SaveRecord(context.Context, *connect.Request[SaveRecordRequest]) (*connect.Response[SaveRecordResponse], error)
	ListRecords(context.Context, *connect.Request[ListRecordsRequest]) (*connect.Response[ListRecordsResponse], error)
	GetTrend(context.Context, *connect.Request[GetTrendRequest]) (*connect.Response[GetTrendResponse], error)
}

// NewBMIServiceClient constructs a client for the service at baseURL
// (e.g. http://localhost:8080).
func NewBMIServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BMIServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)
	return &bmiServiceClient{
		calculate:   connect.NewClient[CalculateRequest, CalculateResponse](httpClient, baseURL+BMIServiceCalculateProcedure, opts...),
		saveRecord:  connect.NewClient[SaveRecordRequest, SaveRecordResponse](httpClient, baseURL+BMIServiceSaveRecordProcedure, opts...),
		listRecords: connect.NewClient[ListRecordsRequest, ListRecordsResponse](httpClient, baseURL+BMIServiceListRecordsProcedure, opts...),
		getTrend:    connect.NewClient[GetTrendRequest, GetTrendResponse](httpClient, baseURL+BMIServiceGetTrendProcedure, opts...),
	}
}

type bmiServiceClient struct {
	calculate   *connect.Client[CalculateRequest, CalculateResponse]
	saveRecord  *connect.Client[SaveRecordRequest, SaveRecordResponse]
	listRecords *connect.Client[ListRecordsRequest, ListRecordsResponse]
	getTrend    *connect.Client[GetTrendRequest, GetTrendResponse]
}

func (c *bmiServiceClient) Calculate(ctx context.Context, req *connect.Request[CalculateRequest]) (*connect.Response[CalculateResponse], error) {
	return c.calculate.CallUnary(ctx, req)
}

func (c *bmiServiceClient) SaveRecord(ctx context.Context, req *connect.Request[SaveRecordRequest]) (*connect.Response[SaveRecordResponse], error) {
	return c.saveRecord.CallUnary(ctx, req)
}

func (c *bmiServiceClient) ListRecords(ctx context.Context, req *connect.Request[ListRecordsRequest]) (*connect.Response[ListRecordsResponse], error) {
	return c.listRecords.CallUnary(ctx, req)
}

func (c *bmiServiceClient) GetTrend(ctx context.Context, req *connect.Request[GetTrendRequest]) (*connect.Response[GetTrendResponse], error) {
	return c.getTrend.CallUnary(ctx, req)
}

// AuthServiceClient is a client for bmi.v1.AuthService.
type AuthServiceClient interface {
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error)
}

// NewAuthServiceClient constructs a client for the auth service at baseURL.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AuthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)
	return &authServiceClient{
		login: connect.NewClient[LoginRequest, LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
	}
}

type authServiceClient struct {
	login *connect.Client[LoginRequest, LoginResponse]
}

func (c *authServiceClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func withJSON(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{
		connect.WithCodec(JSONCodec{}),
		connect.WithCodec(jsonCharsetCodec{}),
	}, opts...)
}
