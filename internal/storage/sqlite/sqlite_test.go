package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/mmynk/bmitracker/internal/models"
)

func newTestStore(t *testing.T) (*SQLiteStore, string) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "data", "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store, dbPath
}

func TestSQLiteStore(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	t.Run("InsertRecord assigns ID and keeps fields", func(t *testing.T) {
		rec := &models.Record{Name: "Alice", Weight: 60, Height: 165, BMI: 22.04}
		if err := store.InsertRecord(ctx, rec); err != nil {
			t.Fatalf("InsertRecord failed: %v", err)
		}
		if rec.ID == 0 {
			t.Fatal("Expected record ID to be assigned")
		}

		records, err := store.ListRecords(ctx)
		if err != nil {
			t.Fatalf("ListRecords failed: %v", err)
		}
		var found *models.Record
		for i := range records {
			if records[i].ID == rec.ID {
				found = &records[i]
			}
		}
		if found == nil {
			t.Fatalf("Inserted record %d not returned by ListRecords", rec.ID)
		}
		if *found != *rec {
			t.Errorf("Record mismatch: got %+v, want %+v", *found, *rec)
		}
	})

	t.Run("InsertRecord ignores caller supplied ID", func(t *testing.T) {
		first := &models.Record{Name: "Bob", Weight: 80, Height: 180, BMI: 24.69}
		if err := store.InsertRecord(ctx, first); err != nil {
			t.Fatalf("InsertRecord failed: %v", err)
		}
		second := &models.Record{ID: first.ID, Name: "Bob", Weight: 81, Height: 180, BMI: 25}
		if err := store.InsertRecord(ctx, second); err != nil {
			t.Fatalf("InsertRecord with preset ID failed: %v", err)
		}
		if second.ID <= first.ID {
			t.Errorf("Expected increasing IDs, got %d after %d", second.ID, first.ID)
		}
	})

	t.Run("Empty name is stored", func(t *testing.T) {
		rec := &models.Record{Weight: 50, Height: 160, BMI: 19.53}
		if err := store.InsertRecord(ctx, rec); err != nil {
			t.Fatalf("InsertRecord failed: %v", err)
		}
		records, _ := store.ListRecords(ctx)
		last := records[len(records)-1]
		if last.ID != rec.ID || last.Name != "" {
			t.Errorf("Unexpected last record: %+v", last)
		}
	})

	t.Run("ListHeightBMI matches ListRecords", func(t *testing.T) {
		records, err := store.ListRecords(ctx)
		if err != nil {
			t.Fatalf("ListRecords failed: %v", err)
		}
		points, err := store.ListHeightBMI(ctx)
		if err != nil {
			t.Fatalf("ListHeightBMI failed: %v", err)
		}
		if len(points) != len(records) {
			t.Fatalf("Count mismatch: %d points, %d records", len(points), len(records))
		}
		for i := range records {
			if points[i].Height != records[i].Height || points[i].BMI != records[i].BMI {
				t.Errorf("Point %d = %+v, want height %v bmi %v", i, points[i], records[i].Height, records[i].BMI)
			}
		}
	})

	t.Run("CountRecords", func(t *testing.T) {
		records, _ := store.ListRecords(ctx)
		n, err := store.CountRecords(ctx)
		if err != nil {
			t.Fatalf("CountRecords failed: %v", err)
		}
		if n != len(records) {
			t.Errorf("CountRecords = %d, want %d", n, len(records))
		}
	})
}

func TestListRecordsInsertionOrder(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	names := []string{"first", "second", "third", "fourth"}
	for i, name := range names {
		rec := &models.Record{Name: name, Weight: float64(60 + i), Height: 170, BMI: float64(20 + i)}
		if err := store.InsertRecord(ctx, rec); err != nil {
			t.Fatalf("InsertRecord failed: %v", err)
		}
	}

	records, err := store.ListRecords(ctx)
	if err != nil {
		t.Fatalf("ListRecords failed: %v", err)
	}
	if len(records) != len(names) {
		t.Fatalf("Expected %d records, got %d", len(names), len(records))
	}
	for i, name := range names {
		if records[i].Name != name {
			t.Errorf("records[%d].Name = %q, want %q", i, records[i].Name, name)
		}
		if i > 0 && records[i].ID <= records[i-1].ID {
			t.Errorf("IDs not increasing: %d then %d", records[i-1].ID, records[i].ID)
		}
	}
}

func TestEmptyStoreReturnsEmptySlices(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	records, err := store.ListRecords(ctx)
	if err != nil {
		t.Fatalf("ListRecords failed: %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Errorf("Expected empty non-nil slice, got %#v", records)
	}

	points, err := store.ListHeightBMI(ctx)
	if err != nil {
		t.Fatalf("ListHeightBMI failed: %v", err)
	}
	if points == nil || len(points) != 0 {
		t.Errorf("Expected empty non-nil slice, got %#v", points)
	}
}

func TestNewIsIdempotent(t *testing.T) {
	store, dbPath := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"Alice", "Bob"} {
		if err := store.InsertRecord(ctx, &models.Record{Name: name, Weight: 60, Height: 165, BMI: 22.04}); err != nil {
			t.Fatalf("InsertRecord failed: %v", err)
		}
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		reopened, err := New(dbPath)
		if err != nil {
			t.Fatalf("Reopen %d failed: %v", i, err)
		}
		n, err := reopened.CountRecords(ctx)
		reopened.Close()
		if err != nil {
			t.Fatalf("CountRecords failed: %v", err)
		}
		if n != 2 {
			t.Errorf("Reopen %d: expected 2 records, got %d", i, n)
		}
	}
}

func TestNewAcceptsExistingTable(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "legacy.db")

	// A table written by another tool, including a NULL name.
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open raw database: %v", err)
	}
	_, err = db.Exec(`
		CREATE TABLE bmi_records (id INTEGER PRIMARY KEY, name TEXT, weight REAL, height REAL, bmi REAL);
		INSERT INTO bmi_records (name, weight, height, bmi) VALUES ('Carol', 55.5, 160.0, 21.68);
		INSERT INTO bmi_records (name, weight, height, bmi) VALUES (NULL, 90.0, 185.0, 26.3);
	`)
	db.Close()
	if err != nil {
		t.Fatalf("Failed to seed legacy table: %v", err)
	}

	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("New failed on existing table: %v", err)
	}
	defer store.Close()

	records, err := store.ListRecords(context.Background())
	if err != nil {
		t.Fatalf("ListRecords failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].Name != "Carol" || records[0].Weight != 55.5 {
		t.Errorf("Unexpected first record: %+v", records[0])
	}
	if records[1].Name != "" {
		t.Errorf("NULL name should read back empty, got %q", records[1].Name)
	}
}

func TestMemoryStore(t *testing.T) {
	store, err := New(MemoryPath)
	if err != nil {
		t.Fatalf("New(%q) failed: %v", MemoryPath, err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.InsertRecord(ctx, &models.Record{Name: "mem", Weight: 70, Height: 175, BMI: 22.86}); err != nil {
		t.Fatalf("InsertRecord failed: %v", err)
	}
	n, err := store.CountRecords(ctx)
	if err != nil {
		t.Fatalf("CountRecords failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 record, got %d", n)
	}
}
