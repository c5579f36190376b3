package providers

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/globaldefense/index-server/internal/config"
	"github.com/globaldefense/index-server/internal/domain"
	"github.com/globaldefense/index-server/internal/logger"
	"github.com/globaldefense/index-server/internal/realtime"
	"github.com/globaldefense/index-server/internal/store"
	"github.com/globaldefense/index-server/internal/store/sqlite"
)

// BackendHandle wraps the persistence backend with shutdown capability.
type BackendHandle struct {
	store.Backend
}

// Shutdown implements do.Shutdownable.
func (h *BackendHandle) Shutdown() error {
	return h.Close()
}

// ProvideBackend provides the configured persistence backend.
func ProvideBackend(i do.Injector) (*BackendHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	var (
		backend store.Backend
		err     error
	)
	switch cfg.Data.Backend {
	case "sqlite":
		dbPath := filepath.Join(cfg.Data.Path, "dataset.db")
		backend, err = sqlite.Open(dbPath, log.Logger)
	case "badger":
		dbPath := filepath.Join(cfg.Data.Path, "db")
		backend, err = store.New(dbPath, log.Logger)
	default:
		return nil, fmt.Errorf("unknown data backend %q", cfg.Data.Backend)
	}
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "backend", cfg.Data.Backend, "path", cfg.Data.Path)

	return &BackendHandle{Backend: backend}, nil
}

// SyncerHandle wraps the realtime syncer with shutdown capability.
type SyncerHandle struct {
	*realtime.Syncer
}

// Shutdown implements do.Shutdownable.
func (h *SyncerHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvideSyncer provides the realtime syncer over the backend and seeds the
// dataset document on first boot.
func ProvideSyncer(i do.Injector) (*SyncerHandle, error) {
	backend := do.MustInvoke[*BackendHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	syncer := realtime.New(backend.Backend, log.Logger)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if _, err := syncer.EnsureSeeded(ctx, domain.DefaultDataset()); err != nil {
		syncer.Close()
		return nil, err
	}

	return &SyncerHandle{Syncer: syncer}, nil
}
