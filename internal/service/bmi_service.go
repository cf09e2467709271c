package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"connectrpc.com/connect"
	"github.com/patrickmn/go-cache"

	"github.com/mmynk/bmitracker/internal/bmi"
	"github.com/mmynk/bmitracker/internal/form"
	"github.com/mmynk/bmitracker/internal/models"
	"github.com/mmynk/bmitracker/internal/rpc"
	"github.com/mmynk/bmitracker/internal/storage"
	"github.com/mmynk/bmitracker/internal/trend"
)

const trendCacheKey = "trend"

// DefaultTrendCacheTTL bounds how long a chart is reused when nothing is saved.
const DefaultTrendCacheTTL = 5 * time.Minute

// Recorder receives domain events for metrics.
type Recorder interface {
	RecordCalculation(category string)
	RecordInvalidInput()
	RecordSave(err error)
	SetRecordsStored(n int)
}

type nopRecorder struct{}

func (nopRecorder) RecordCalculation(string) {}
func (nopRecorder) RecordInvalidInput()      {}
func (nopRecorder) RecordSave(error)         {}
func (nopRecorder) SetRecordsStored(int)     {}

// Ensure BMIService implements the RPC interface
var _ rpc.BMIServiceHandler = (*BMIService)(nil)

// BMIService implements the Connect BMIService.
type BMIService struct {
	store    storage.Store
	recorder Recorder
	charts   *cache.Cache
}

// Option configures a BMIService.
type Option func(*BMIService)

// WithRecorder reports calculations and saves to r.
func WithRecorder(r Recorder) Option {
	return func(s *BMIService) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithTrendCacheTTL sets how long a built chart is cached.
func WithTrendCacheTTL(ttl time.Duration) Option {
	return func(s *BMIService) {
		s.charts = cache.New(ttl, 2*ttl)
	}
}

// NewBMIService creates a new BMIService with the given storage backend.
func NewBMIService(store storage.Store, opts ...Option) *BMIService {
	s := &BMIService{
		store:    store,
		recorder: nopRecorder{},
		charts:   cache.New(DefaultTrendCacheTTL, 2*DefaultTrendCacheTTL),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Calculate computes BMI and category from the submitted text.
func (s *BMIService) Calculate(ctx context.Context, req *connect.Request[rpc.CalculateRequest]) (*connect.Response[rpc.CalculateResponse], error) {
	res, err := bmi.Calculate(req.Msg.Weight, req.Msg.Height)
	if err != nil {
		return nil, s.invalidInput(err)
	}

	s.recorder.RecordCalculation(res.Category.String())
	slog.Debug("BMI calculated",
		"weight", res.WeightKg,
		"height", res.HeightCm,
		"bmi", res.BMI,
		"category", res.Category.String(),
	)

	return connect.NewResponse(&rpc.CalculateResponse{
		BMI:        res.BMI,
		BMIDisplay: res.Display(),
		Category:   res.Category.String(),
	}), nil
}

// SaveRecord recalculates from the submitted values, persists the result
// and returns the updated record set.
func (s *BMIService) SaveRecord(ctx context.Context, req *connect.Request[rpc.SaveRecordRequest]) (*connect.Response[rpc.SaveRecordResponse], error) {
	f := form.New(s.store)
	res, err := f.Calculate(req.Msg.Weight, req.Msg.Height)
	if err != nil {
		return nil, s.invalidInput(err)
	}
	s.recorder.RecordCalculation(res.Category.String())

	record, err := f.Save(ctx, req.Msg.Name)
	s.recorder.RecordSave(err)
	if err != nil {
		slog.Error("SaveRecord failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	s.charts.Flush()
	slog.Info("Record saved", "id", record.ID, "name", record.Name, "bmi", bmi.Format(record.BMI))

	records, err := s.store.ListRecords(ctx)
	if err != nil {
		slog.Error("SaveRecord: failed to list records", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	s.recorder.SetRecordsStored(len(records))

	return connect.NewResponse(&rpc.SaveRecordResponse{
		Record:  toRPCRecord(*record),
		Records: toRPCRecords(records),
	}), nil
}

// ListRecords returns every stored record.
func (s *BMIService) ListRecords(ctx context.Context, req *connect.Request[rpc.ListRecordsRequest]) (*connect.Response[rpc.ListRecordsResponse], error) {
	records, err := s.store.ListRecords(ctx)
	if err != nil {
		slog.Error("ListRecords failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	s.recorder.SetRecordsStored(len(records))

	return connect.NewResponse(&rpc.ListRecordsResponse{
		Records: toRPCRecords(records),
	}), nil
}

// GetTrend returns the height/BMI chart, or a nil chart when nothing is stored.
func (s *BMIService) GetTrend(ctx context.Context, req *connect.Request[rpc.GetTrendRequest]) (*connect.Response[rpc.GetTrendResponse], error) {
	chart, err := s.Chart(ctx)
	if err != nil {
		slog.Error("GetTrend failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(&rpc.GetTrendResponse{Chart: chart}), nil
}

// Chart returns the current trend chart, served from cache until the next save.
func (s *BMIService) Chart(ctx context.Context) (*trend.Chart, error) {
	if cached, found := s.charts.Get(trendCacheKey); found {
		return cached.(*trend.Chart), nil
	}

	chart, err := form.New(s.store).Trend(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build trend: %w", err)
	}
	s.charts.Set(trendCacheKey, chart, cache.DefaultExpiration)
	return chart, nil
}

// invalidInput logs the parse failure and returns the error shown to users.
func (s *BMIService) invalidInput(err error) error {
	s.recorder.RecordInvalidInput()
	if errors.Is(err, bmi.ErrInvalidInput) {
		slog.Debug("Rejected input", "error", err)
		return connect.NewError(connect.CodeInvalidArgument, errors.New(bmi.InvalidInputText))
	}
	return connect.NewError(connect.CodeInvalidArgument, err)
}

// toRPCRecord converts a stored row for the wire. JSON cannot carry Inf or
// NaN, which rows written by other tools may hold, so those become 0.
func toRPCRecord(r models.Record) *rpc.Record {
	return &rpc.Record{
		ID:         r.ID,
		Name:       r.Name,
		Weight:     finiteOrZero(r.Weight),
		Height:     finiteOrZero(r.Height),
		BMI:        finiteOrZero(r.BMI),
		BMIDisplay: bmi.Format(finiteOrZero(r.BMI)),
		Category:   r.Category().String(),
	}
}

func finiteOrZero(v float64) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return v
}

func toRPCRecords(records []models.Record) []*rpc.Record {
	out := make([]*rpc.Record, len(records))
	for i, r := range records {
		out[i] = toRPCRecord(r)
	}
	return out
}
