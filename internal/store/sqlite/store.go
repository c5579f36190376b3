// Package sqlite provides a SQLite-backed implementation of the dataset
// persistence backend.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/globaldefense/index-server/internal/domain"
	domainerrors "github.com/globaldefense/index-server/internal/errors"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Store provides SQLite-backed persistence for the dataset document.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open creates a new SQLite store at the given path.
// It configures WAL mode, sets pragmas, and runs schema migrations.
func Open(path string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("exec schema: %w", err)
	}

	if logger != nil {
		logger.Info("SQLite database opened successfully", "path", path)
	}

	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns the stored dataset, or (nil, nil) when none exists.
func (s *Store) Load(ctx context.Context) (*domain.Dataset, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM dataset WHERE id = 1`).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodePersistence, "failed to load dataset")
	}

	var ds domain.Dataset
	if err := json.Unmarshal([]byte(doc), &ds); err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodePersistence, "failed to decode dataset")
	}
	return &ds, nil
}

// Save merges the patch into the stored document inside one transaction.
func (s *Store) Save(ctx context.Context, patch domain.Patch) (*domain.Dataset, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodePersistence, "failed to begin transaction")
	}
	defer tx.Rollback()

	ds := &domain.Dataset{}
	var doc string
	err = tx.QueryRowContext(ctx, `SELECT doc FROM dataset WHERE id = 1`).Scan(&doc)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// First save: merge into an empty document.
	case err != nil:
		return nil, domainerrors.Wrap(err, domainerrors.CodePersistence, "failed to load dataset")
	default:
		if err := json.Unmarshal([]byte(doc), ds); err != nil {
			return nil, domainerrors.Wrap(err, domainerrors.CodePersistence, "failed to decode dataset")
		}
	}

	ds.Apply(patch)

	if err := upsert(ctx, tx, ds); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodePersistence, "failed to commit dataset")
	}
	return ds, nil
}

// EnsureSeeded writes seed as the initial document when the row is absent.
func (s *Store) EnsureSeeded(ctx context.Context, seed *domain.Dataset) (*domain.Dataset, bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, domainerrors.Wrap(err, domainerrors.CodePersistence, "failed to begin transaction")
	}
	defer tx.Rollback()

	var doc string
	err = tx.QueryRowContext(ctx, `SELECT doc FROM dataset WHERE id = 1`).Scan(&doc)
	if err == nil {
		var ds domain.Dataset
		if err := json.Unmarshal([]byte(doc), &ds); err != nil {
			return nil, false, domainerrors.Wrap(err, domainerrors.CodePersistence, "failed to decode dataset")
		}
		return &ds, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, domainerrors.Wrap(err, domainerrors.CodePersistence, "failed to load dataset")
	}

	if err := upsert(ctx, tx, seed); err != nil {
		return nil, false, err
	}
	if err := tx.Commit(); err != nil {
		return nil, false, domainerrors.Wrap(err, domainerrors.CodePersistence, "failed to commit seed dataset")
	}

	if s.logger != nil {
		s.logger.Info("Seeded initial dataset",
			"countries", len(seed.Countries),
			"aircrafts", len(seed.Aircrafts))
	}
	return seed.Clone(), true, nil
}

func upsert(ctx context.Context, tx *sql.Tx, ds *domain.Dataset) error {
	data, err := json.Marshal(ds)
	if err != nil {
		return domainerrors.Wrap(err, domainerrors.CodePersistence, "failed to encode dataset")
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO dataset (id, doc, updated_at) VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at`,
		string(data), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return domainerrors.Wrap(err, domainerrors.CodePersistence, "failed to write dataset")
	}
	return nil
}
