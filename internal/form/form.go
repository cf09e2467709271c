// Package form holds the state of one BMI entry form: the last successful
// calculation and the store it is saved to.
package form

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmynk/bmitracker/internal/bmi"
	"github.com/mmynk/bmitracker/internal/models"
	"github.com/mmynk/bmitracker/internal/storage"
	"github.com/mmynk/bmitracker/internal/trend"
)

// ErrNothingToSave is returned by Save when no valid calculation is pending.
var ErrNothingToSave = errors.New("no calculated BMI to save")

// Form is not safe for concurrent use.
type Form struct {
	store   storage.Store
	pending *bmi.Result
}

// New creates an empty form backed by store.
func New(store storage.Store) *Form {
	return &Form{store: store}
}

// Calculate runs the engine on the entered text. A failed calculation
// discards any earlier result so a later Save cannot persist stale values.
func (f *Form) Calculate(weight, height string) (bmi.Result, error) {
	res, err := bmi.Calculate(weight, height)
	if err != nil {
		f.pending = nil
		return bmi.Result{}, err
	}
	f.pending = &res
	return res, nil
}

// Pending returns the result waiting to be saved, if any.
func (f *Form) Pending() (bmi.Result, bool) {
	if f.pending == nil {
		return bmi.Result{}, false
	}
	return *f.pending, true
}

// Clear resets the form.
func (f *Form) Clear() {
	f.pending = nil
}

// Save persists the pending result under name and clears the form.
func (f *Form) Save(ctx context.Context, name string) (*models.Record, error) {
	if f.pending == nil {
		return nil, ErrNothingToSave
	}

	record := models.NewRecord(name, *f.pending)
	if err := f.store.InsertRecord(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save record: %w", err)
	}
	slog.Debug("Record saved", "id", record.ID, "bmi", record.BMI)

	f.Clear()
	return record, nil
}

// History returns every saved record.
func (f *Form) History(ctx context.Context) ([]models.Record, error) {
	return f.store.ListRecords(ctx)
}

// Trend builds the height/BMI chart from all saved records.
// It returns nil when nothing has been saved yet.
func (f *Form) Trend(ctx context.Context) (*trend.Chart, error) {
	points, err := f.store.ListHeightBMI(ctx)
	if err != nil {
		return nil, err
	}
	return trend.Build(points), nil
}
