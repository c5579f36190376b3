package providers

import (
	"log/slog"
	"testing"

	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globaldefense/index-server/internal/domain"
	"github.com/globaldefense/index-server/internal/logger"
	"github.com/globaldefense/index-server/internal/realtime"
	"github.com/globaldefense/index-server/internal/store"
	"github.com/globaldefense/index-server/internal/validation"
)

func TestProvideDomainServices_OneCoordinatorPerKind(t *testing.T) {
	backend, err := store.New(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	syncer := realtime.New(backend, slog.New(slog.DiscardHandler))
	t.Cleanup(syncer.Close)

	injector := do.New()
	do.ProvideValue(injector, &SyncerHandle{Syncer: syncer})
	do.ProvideValue(injector, validation.New())
	do.ProvideValue(injector, &logger.Logger{Logger: slog.New(slog.DiscardHandler)})

	domains, err := ProvideDomainServices(injector)
	require.NoError(t, err)

	kinds := domain.Kinds()
	assert.Len(t, domains.ByKind, len(kinds))
	for _, kind := range kinds {
		svc, ok := domains.ByKind[kind]
		require.True(t, ok, "missing coordinator for %s", kind)
		assert.Equal(t, kind, svc.Kind())
	}
}
