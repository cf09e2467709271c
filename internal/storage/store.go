// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/mmynk/bmitracker/internal/models"
)

// Store defines the interface for BMI record storage.
// The store is append-only: there are no update or delete operations.
type Store interface {
	// InsertRecord appends a record and writes the assigned ID back into record.ID.
	// Any ID set by the caller is ignored.
	InsertRecord(ctx context.Context, record *models.Record) error

	// ListRecords returns every stored record in insertion order.
	ListRecords(ctx context.Context) ([]models.Record, error)

	// ListHeightBMI returns the (height, bmi) projection of every record,
	// in the same order as ListRecords.
	ListHeightBMI(ctx context.Context) ([]models.HeightBMI, error)

	// CountRecords returns the number of stored records.
	CountRecords(ctx context.Context) (int, error)

	// Close releases any resources held by the store.
	Close() error
}
