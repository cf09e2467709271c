package sqlite

import (
	"context"
	"database/sql"
)

// schema creates the records table if it is missing. It never drops or
// alters an existing table, so opening the same file twice is safe.
const schema = `
CREATE TABLE IF NOT EXISTS bmi_records (
    id INTEGER PRIMARY KEY,
    name TEXT,
    weight REAL,
    height REAL,
    bmi REAL
);
`

// runMigrations executes the schema setup.
func runMigrations(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
