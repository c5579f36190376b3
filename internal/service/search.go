package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/globaldefense/index-server/internal/domain"
	domainerrors "github.com/globaldefense/index-server/internal/errors"
	"github.com/globaldefense/index-server/internal/generate"
)

// SearchService resolves a typed name to an entity: an existing near-match
// when one exists, otherwise a freshly generated and validated candidate.
type SearchService struct {
	coordinators map[domain.Kind]*DomainService
	producer     generate.Producer
	admitter     *generate.Validator
	logger       *slog.Logger
}

// NewSearchService creates the search service over the two coordinators.
func NewSearchService(
	coordinators map[domain.Kind]*DomainService,
	producer generate.Producer,
	admitter *generate.Validator,
	logger *slog.Logger,
) *SearchService {
	return &SearchService{
		coordinators: coordinators,
		producer:     producer,
		admitter:     admitter,
		logger:       logger,
	}
}

// SearchResult is the outcome of a find-or-generate call.
type SearchResult struct {
	Entity *domain.Entity
	// Generated reports whether the entity was produced by the model on
	// this call rather than found in the existing list.
	Generated bool
}

// FindOrGenerate returns the first existing entity whose name contains the
// query case-insensitively. The generator is only invoked when no such match
// exists; its candidate must pass schema admission before it is upserted.
// Two overlapping generations of the same name resolve last-write-wins at
// the entity id.
func (s *SearchService) FindOrGenerate(ctx context.Context, kind domain.Kind, query string) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domainerrors.Validation("search query cannot be empty")
	}

	coord, ok := s.coordinators[kind]
	if !ok {
		return nil, domainerrors.NotFoundf("unknown domain %q", kind)
	}

	entities, err := coord.Entities(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	for i := range entities {
		if strings.Contains(strings.ToLower(entities[i].Name), needle) {
			return &SearchResult{Entity: &entities[i]}, nil
		}
	}

	defs, err := coord.Stats(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Info("no match found, generating candidate",
		"kind", string(kind), "query", query)

	candidate, err := s.producer.GenerateEntity(ctx, generate.EntityRequest{
		Kind:         kind,
		Name:         query,
		CurrentCount: len(entities),
		Stats:        defs,
	})
	if err != nil {
		return nil, err
	}

	if err := s.admitter.Admit(candidate, kind, defs); err != nil {
		s.logger.Warn("generated candidate rejected",
			"kind", string(kind), "query", query, "error", err)
		return nil, err
	}

	saved, err := coord.upsert(ctx, *candidate)
	if err != nil {
		return nil, err
	}

	s.logger.Info("generated entity admitted",
		"kind", string(kind), "entity_id", saved.ID, "rank", saved.Rank)

	return &SearchResult{Entity: saved, Generated: true}, nil
}
