package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/globaldefense/index-server/internal/domain"
	domainerrors "github.com/globaldefense/index-server/internal/errors"
)

// datasetKey is the single key the dataset document lives under.
var datasetKey = []byte("dataset:v1")

// Store wraps a Badger database instance holding the dataset document.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

// New opens a Badger database at the given path.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	if logger != nil {
		logger.Info("Badger database opened successfully", "path", path)
	}

	return &Store{db: db, logger: logger}, nil
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	return s.db.Close()
}

// Load returns the stored dataset, or (nil, nil) when none exists.
func (s *Store) Load(_ context.Context) (*domain.Dataset, error) {
	var ds domain.Dataset
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(datasetKey)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &ds)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodePersistence, "failed to load dataset")
	}
	return &ds, nil
}

// Save merges the patch into the stored document inside a single update
// transaction, so concurrent saves serialize on Badger's write path.
func (s *Store) Save(_ context.Context, patch domain.Patch) (*domain.Dataset, error) {
	var merged *domain.Dataset
	err := s.db.Update(func(txn *badger.Txn) error {
		ds := &domain.Dataset{}
		item, err := txn.Get(datasetKey)
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
			// First save: merge into an empty document.
		case err != nil:
			return err
		default:
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, ds)
			}); err != nil {
				return err
			}
		}

		ds.Apply(patch)

		data, err := json.Marshal(ds)
		if err != nil {
			return fmt.Errorf("failed to marshal dataset: %w", err)
		}
		if err := txn.Set(datasetKey, data); err != nil {
			return err
		}
		merged = ds
		return nil
	})
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodePersistence, "failed to save dataset")
	}
	return merged, nil
}

// EnsureSeeded writes seed as the initial document when the key is absent.
func (s *Store) EnsureSeeded(_ context.Context, seed *domain.Dataset) (*domain.Dataset, bool, error) {
	var (
		stored *domain.Dataset
		wrote  bool
	)
	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(datasetKey)
		if err == nil {
			var ds domain.Dataset
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &ds)
			}); err != nil {
				return err
			}
			stored = &ds
			return nil
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		data, err := json.Marshal(seed)
		if err != nil {
			return fmt.Errorf("failed to marshal seed dataset: %w", err)
		}
		if err := txn.Set(datasetKey, data); err != nil {
			return err
		}
		stored = seed.Clone()
		wrote = true
		return nil
	})
	if err != nil {
		return nil, false, domainerrors.Wrap(err, domainerrors.CodePersistence, "failed to seed dataset")
	}
	if wrote && s.logger != nil {
		s.logger.Info("Seeded initial dataset",
			"countries", len(seed.Countries),
			"aircrafts", len(seed.Aircrafts))
	}
	return stored, wrote, nil
}
