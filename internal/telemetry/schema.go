package telemetry

import (
	"database/sql"

	"codeberg.org/mutker/spbmctl/internal/errors"
)

// initSchema initializes the database schema for recorded readings
func initSchema(db *sql.DB) error {
	errFactory := errors.New()

	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS readings (
            timestamp INTEGER NOT NULL,
            category TEXT NOT NULL,
            label TEXT NOT NULL,
            value INTEGER NOT NULL,
            PRIMARY KEY (timestamp, category, label)
        )
    `)
	if err != nil {
		return errFactory.Wrap(ErrStorageInit, err)
	}

	return nil
}
