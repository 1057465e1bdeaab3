package telemetry

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"

	"codeberg.org/mutker/spbmctl/internal/errors"
	"codeberg.org/mutker/spbmctl/internal/logger"

	_ "github.com/mattn/go-sqlite3"
)

type Repository interface {
	Record(ctx context.Context, snapshot *Snapshot) error
	Close() error
}

type sqliteRepository struct {
	db *sql.DB
	mu sync.Mutex
}

func NewRepository(cfg Config) (Repository, error) {
	errFactory := errors.New()

	if cfg.DBPath == "" {
		return nil, errFactory.New(ErrInvalidDBPath)
	}

	logger.Debug().Msgf("Initializing telemetry repository at: %s", cfg.DBPath)

	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), defaultDirPerm); err != nil {
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal=WAL")
	if err != nil {
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	return &sqliteRepository{
		db: db,
	}, nil
}

func (r *sqliteRepository) Record(ctx context.Context, snapshot *Snapshot) error {
	errFactory := errors.New()

	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errFactory.Wrap(ErrStorageAccess, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
        INSERT INTO readings (timestamp, category, label, value)
        VALUES (?, ?, ?, ?)
        ON CONFLICT(timestamp, category, label) DO UPDATE SET
            value = excluded.value
    `)
	if err != nil {
		tx.Rollback()
		return errFactory.Wrap(ErrStorageAccess, err)
	}
	defer stmt.Close()

	ts := snapshot.Timestamp.Unix()
	for _, reading := range snapshot.Readings {
		if _, err := stmt.ExecContext(ctx, ts, reading.Category, reading.Label, reading.Value); err != nil {
			tx.Rollback()
			return errFactory.Wrap(ErrStorageAccess, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errFactory.Wrap(ErrStorageAccess, err)
	}

	return nil
}

func (r *sqliteRepository) Close() error {
	errFactory := errors.New()

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.db.Close(); err != nil {
		return errFactory.Wrap(ErrStorageClose, err)
	}
	return nil
}
