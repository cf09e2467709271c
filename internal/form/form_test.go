package form

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/bmitracker/internal/bmi"
	"github.com/mmynk/bmitracker/internal/models"
	"github.com/mmynk/bmitracker/internal/storage/sqlite"
)

func newTestForm(t *testing.T) (*Form, *sqlite.SQLiteStore) {
	t.Helper()
	store, err := sqlite.New(sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return New(store), store
}

func TestCalculateThenSave(t *testing.T) {
	f, store := newTestForm(t)
	ctx := context.Background()

	res, err := f.Calculate("60", "165")
	require.NoError(t, err)
	assert.Equal(t, "22.04", res.Display())
	assert.Equal(t, bmi.Normal, res.Category)

	pending, ok := f.Pending()
	require.True(t, ok)
	assert.Equal(t, res, pending)

	rec, err := f.Save(ctx, "Alice")
	require.NoError(t, err)
	assert.NotZero(t, rec.ID)
	assert.Equal(t, "Alice", rec.Name)
	assert.Equal(t, 60.0, rec.Weight)
	assert.Equal(t, 165.0, rec.Height)
	assert.Equal(t, res.BMI, rec.BMI)

	_, ok = f.Pending()
	assert.False(t, ok, "save should clear the form")

	records, err := store.ListRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, *rec, records[0])
}

func TestSaveWithoutCalculation(t *testing.T) {
	f, store := newTestForm(t)

	_, err := f.Save(context.Background(), "Nobody")
	assert.ErrorIs(t, err, ErrNothingToSave)

	n, err := store.CountRecords(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestFailedCalculationDiscardsPendingResult(t *testing.T) {
	f, store := newTestForm(t)

	_, err := f.Calculate("70", "175")
	require.NoError(t, err)

	_, err = f.Calculate("abc", "170")
	require.Error(t, err)
	assert.True(t, errors.Is(err, bmi.ErrInvalidInput))

	_, err = f.Save(context.Background(), "Stale")
	assert.ErrorIs(t, err, ErrNothingToSave)

	n, err := store.CountRecords(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSaveTwiceNeedsNewCalculation(t *testing.T) {
	f, _ := newTestForm(t)
	ctx := context.Background()

	_, err := f.Calculate("80", "180")
	require.NoError(t, err)
	_, err = f.Save(ctx, "Bob")
	require.NoError(t, err)

	_, err = f.Save(ctx, "Bob")
	assert.ErrorIs(t, err, ErrNothingToSave)
}

func TestClear(t *testing.T) {
	f, _ := newTestForm(t)

	_, err := f.Calculate("80", "180")
	require.NoError(t, err)
	f.Clear()

	_, ok := f.Pending()
	assert.False(t, ok)
}

func TestHistoryAndTrend(t *testing.T) {
	f, _ := newTestForm(t)
	ctx := context.Background()

	chart, err := f.Trend(ctx)
	require.NoError(t, err)
	assert.Nil(t, chart, "no chart before the first save")

	inputs := []struct{ name, weight, height string }{
		{"Alice", "60", "165"},
		{"Bob", "85", "175"},
		{"", "45", "170"},
	}
	for _, in := range inputs {
		_, err := f.Calculate(in.weight, in.height)
		require.NoError(t, err)
		_, err = f.Save(ctx, in.name)
		require.NoError(t, err)
	}

	records, err := f.History(ctx)
	require.NoError(t, err)
	require.Len(t, records, len(inputs))
	assert.Equal(t, []bmi.Category{bmi.Normal, bmi.Overweight, bmi.Underweight},
		[]bmi.Category{records[0].Category(), records[1].Category(), records[2].Category()})

	chart, err = f.Trend(ctx)
	require.NoError(t, err)
	require.NotNil(t, chart)
	require.Len(t, chart.Series, 1)
	require.Len(t, chart.Series[0].Points, len(records))
	for i, r := range records {
		assert.Equal(t, r.Height, chart.Series[0].Points[i].X)
		assert.Equal(t, r.BMI, chart.Series[0].Points[i].Y)
	}
}

type failingStore struct {
	*sqlite.SQLiteStore
}

func (failingStore) InsertRecord(context.Context, *models.Record) error {
	return errors.New("disk full")
}

func TestSaveKeepsPendingOnStoreError(t *testing.T) {
	_, store := newTestForm(t)
	f := New(failingStore{store})

	_, err := f.Calculate("60", "165")
	require.NoError(t, err)

	_, err = f.Save(context.Background(), "Alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	_, ok := f.Pending()
	assert.True(t, ok, "a failed save should leave the result for a retry")
}
