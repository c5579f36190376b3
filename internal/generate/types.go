// Package generate produces candidate entities and comparisons from a
// generative model and validates candidates against the registered schema
// before they are admitted into the dataset.
package generate

import (
	"context"

	"github.com/globaldefense/index-server/internal/domain"
)

// Producer generates candidate entities and comparison analyses.
type Producer interface {
	// GenerateEntity produces a candidate for the named subject. The
	// candidate is raw model output; callers must run it through the
	// Validator before admitting it.
	GenerateEntity(ctx context.Context, req EntityRequest) (*domain.Entity, error)

	// Compare produces a strategic comparison of two entities.
	Compare(ctx context.Context, a, b domain.Entity) (*Comparison, error)
}

// EntityRequest describes what to generate.
type EntityRequest struct {
	Kind domain.Kind
	// Name is the subject as typed by the user.
	Name string
	// CurrentCount anchors the model's rank estimate below the existing list.
	CurrentCount int
	// Stats is the registered schema the candidate must fill exactly.
	Stats []domain.StatDefinition
}

// Comparison is the model's analysis of two entities.
type Comparison struct {
	Analysis string   `json:"analysis"`
	Winner   string   `json:"winnerPrediction"`
	Factors  []string `json:"keyFactors"`
}
