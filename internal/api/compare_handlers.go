package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/globaldefense/index-server/internal/domain"
	"github.com/globaldefense/index-server/internal/generate"
)

func (s *Server) registerCompareRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "compareNations",
		Method:      http.MethodPost,
		Path:        "/api/v1/compare",
		Summary:     "Compare two nations",
		Description: "Produces an AI strategic analysis of two nations",
		Tags:        []string{"Compare"},
	}, s.handleCompare)
}

// === DTOs ===

type CompareRequest struct {
	FirstID  string `json:"firstId" validate:"required" doc:"First nation ID"`
	SecondID string `json:"secondId" validate:"required" doc:"Second nation ID"`
}

type CompareInput struct {
	Body CompareRequest
}

type CompareResponse struct {
	First      domain.Entity        `json:"first" doc:"First nation"`
	Second     domain.Entity        `json:"second" doc:"Second nation"`
	Comparison *generate.Comparison `json:"comparison" doc:"Model verdict"`
}

type CompareOutput struct {
	Body CompareResponse
}

// === Handlers ===

func (s *Server) handleCompare(ctx context.Context, input *CompareInput) (*CompareOutput, error) {
	result, err := s.services.Compare.Compare(ctx, input.Body.FirstID, input.Body.SecondID)
	if err != nil {
		return nil, err
	}

	return &CompareOutput{Body: CompareResponse{
		First:      result.First,
		Second:     result.Second,
		Comparison: result.Comparison,
	}}, nil
}
