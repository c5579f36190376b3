package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/globaldefense/index-server/internal/domain"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchEntities",
		Method:      http.MethodPost,
		Path:        "/api/v1/domains/{kind}/search",
		Summary:     "Find or generate an entity",
		Description: "Returns an existing entity whose name matches the query, or generates and validates a new one",
		Tags:        []string{"Search"},
	}, s.handleSearch)
}

// === DTOs ===

type SearchRequest struct {
	Query string `json:"query" validate:"required,min=1,max=200" doc:"Entity name to look up"`
}

type SearchInput struct {
	Kind string `path:"kind" doc:"Domain kind"`
	Body SearchRequest
}

type SearchResponse struct {
	Entity    domain.Entity `json:"entity" doc:"Found or generated entity"`
	Generated bool          `json:"generated" doc:"Whether the entity was generated on this call"`
}

type SearchOutput struct {
	Body SearchResponse
}

// === Handlers ===

func (s *Server) handleSearch(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	kind, err := domain.ParseKind(input.Kind)
	if err != nil {
		return nil, huma.Error404NotFound("Unknown domain: " + input.Kind)
	}

	result, err := s.services.Search.FindOrGenerate(ctx, kind, input.Body.Query)
	if err != nil {
		return nil, err
	}

	return &SearchOutput{Body: SearchResponse{
		Entity:    *result.Entity,
		Generated: result.Generated,
	}}, nil
}
