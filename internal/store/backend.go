// Package store provides persistence for the shared dataset document.
package store

import (
	"context"

	"github.com/globaldefense/index-server/internal/domain"
)

// Backend is the persistence contract for the dataset document.
//
// The whole dashboard state lives in a single document, so the surface is
// deliberately small: load it, merge a partial update into it, seed it when
// absent. Implementations must make Save atomic with respect to concurrent
// callers.
type Backend interface {
	// Load returns the current dataset, or (nil, nil) when none has been
	// written yet.
	Load(ctx context.Context) (*domain.Dataset, error)

	// Save merges the patch into the stored document and returns the merged
	// result. Collections present in the patch replace the stored ones
	// wholesale; absent collections are left untouched. Saving a patch when
	// no document exists treats the patch as a full document over an empty
	// dataset.
	Save(ctx context.Context, patch domain.Patch) (*domain.Dataset, error)

	// EnsureSeeded writes seed as the initial document if none exists.
	// Returns the stored dataset and whether the seed was written.
	EnsureSeeded(ctx context.Context, seed *domain.Dataset) (*domain.Dataset, bool, error)

	Close() error
}
