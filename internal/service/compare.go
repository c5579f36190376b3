package service

import (
	"context"
	"log/slog"

	"github.com/globaldefense/index-server/internal/domain"
	domainerrors "github.com/globaldefense/index-server/internal/errors"
	"github.com/globaldefense/index-server/internal/generate"
)

// CompareService produces an AI strategic analysis of two nations.
type CompareService struct {
	nations  *DomainService
	producer generate.Producer
	logger   *slog.Logger
}

// NewCompareService creates the comparison service.
func NewCompareService(nations *DomainService, producer generate.Producer, logger *slog.Logger) *CompareService {
	return &CompareService{
		nations:  nations,
		producer: producer,
		logger:   logger,
	}
}

// ComparisonResult pairs the analyzed entities with the model's verdict.
type ComparisonResult struct {
	First      domain.Entity       `json:"first"`
	Second     domain.Entity       `json:"second"`
	Comparison *generate.Comparison `json:"comparison"`
}

// Compare looks up both nations and asks the model for an analysis.
func (s *CompareService) Compare(ctx context.Context, firstID, secondID string) (*ComparisonResult, error) {
	if firstID == secondID {
		return nil, domainerrors.Validation("cannot compare an entity with itself")
	}

	first, err := s.nations.Entity(ctx, firstID)
	if err != nil {
		return nil, err
	}
	second, err := s.nations.Entity(ctx, secondID)
	if err != nil {
		return nil, err
	}

	comparison, err := s.producer.Compare(ctx, *first, *second)
	if err != nil {
		return nil, err
	}

	s.logger.Info("comparison produced",
		"first", firstID, "second", secondID, "winner", comparison.Winner)

	return &ComparisonResult{
		First:      *first,
		Second:     *second,
		Comparison: comparison,
	}, nil
}
