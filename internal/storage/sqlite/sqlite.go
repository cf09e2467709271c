// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/bmitracker/internal/models"
	"github.com/mmynk/bmitracker/internal/storage"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New opens (or creates) the database at dbPath and ensures the records
// table exists. Existing rows are left untouched.
func New(dbPath string) (*SQLiteStore, error) {
	if dbPath != MemoryPath {
		// Create parent directory if it doesn't exist
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection: single writer, and an in-memory database lives only
	// as long as its connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := runMigrations(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// InsertRecord appends a record and sets record.ID to the assigned row id.
func (s *SQLiteStore) InsertRecord(ctx context.Context, record *models.Record) error {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO bmi_records (name, weight, height, bmi) VALUES (?, ?, ?, ?)",
		record.Name, record.Weight, record.Height, record.BMI,
	)
	if err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read record id: %w", err)
	}
	record.ID = id

	return nil
}

// ListRecords returns all records ordered by id.
func (s *SQLiteStore) ListRecords(ctx context.Context) ([]models.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, COALESCE(name, ''), COALESCE(weight, 0), COALESCE(height, 0), COALESCE(bmi, 0)
		FROM bmi_records
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	records := []models.Record{}
	for rows.Next() {
		var r models.Record
		if err := rows.Scan(&r.ID, &r.Name, &r.Weight, &r.Height, &r.BMI); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}

	return records, nil
}

// ListHeightBMI returns the (height, bmi) pairs of all records ordered by id.
func (s *SQLiteStore) ListHeightBMI(ctx context.Context) ([]models.HeightBMI, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT COALESCE(height, 0), COALESCE(bmi, 0) FROM bmi_records ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list height/bmi pairs: %w", err)
	}
	defer rows.Close()

	points := []models.HeightBMI{}
	for rows.Next() {
		var p models.HeightBMI
		if err := rows.Scan(&p.Height, &p.BMI); err != nil {
			return nil, fmt.Errorf("failed to scan height/bmi pair: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate height/bmi pairs: %w", err)
	}

	return points, nil
}

// CountRecords returns the number of stored records.
func (s *SQLiteStore) CountRecords(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM bmi_records").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return n, nil
}
