package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/globaldefense/index-server/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestLoad_EmptyDatabase(t *testing.T) {
	s := setupTestStore(t)

	ds, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, ds)
}

func TestSave_MergeAndRoundTrip(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	countries := []domain.Entity{{ID: "usa", Name: "United States", Score: 98.5, Rank: 1,
		Stats: map[string]float64{"tanks": 5500}}}
	_, err := s.Save(ctx, domain.Patch{Countries: &countries})
	require.NoError(t, err)

	aircrafts := []domain.Entity{{ID: "f22", Name: "F-22 Raptor", Score: 96, Rank: 1}}
	merged, err := s.Save(ctx, domain.Patch{Aircrafts: &aircrafts})
	require.NoError(t, err)
	assert.Len(t, merged.Countries, 1)
	assert.Len(t, merged.Aircrafts, 1)

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, merged, loaded)
	assert.Equal(t, 5500.0, loaded.Countries[0].Stats["tanks"])
}

func TestEnsureSeeded_OnlyWritesOnce(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	seed := domain.DefaultDataset()
	_, wrote, err := s.EnsureSeeded(ctx, seed)
	require.NoError(t, err)
	assert.True(t, wrote)

	_, wrote, err = s.EnsureSeeded(ctx, seed)
	require.NoError(t, err)
	assert.False(t, wrote)
}
