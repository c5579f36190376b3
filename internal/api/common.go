package api

import (
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/globaldefense/index-server/internal/auth"
	"github.com/globaldefense/index-server/internal/domain"
	"github.com/globaldefense/index-server/internal/service"
)

// MessageResponse contains a simple message.
type MessageResponse struct {
	Message string `json:"message" doc:"Success message"`
}

// MessageOutput wraps the message response for Huma.
type MessageOutput struct {
	Body MessageResponse
}

// authenticateAdmin validates the Authorization header against the admin
// token and returns the verified claims. Every write endpoint calls this
// before touching a service.
func (s *Server) authenticateAdmin(authHeader string) (*auth.AccessClaims, error) {
	if authHeader == "" {
		return nil, huma.Error401Unauthorized("Missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, huma.Error401Unauthorized("Invalid authorization header format")
	}

	claims, err := s.services.Auth.Verify(parts[1])
	if err != nil {
		return nil, huma.Error401Unauthorized("Invalid or expired token")
	}

	return claims, nil
}

// resolveDomain parses the kind path segment and returns its coordinator.
func (s *Server) resolveDomain(kindParam string) (*service.DomainService, error) {
	kind, err := domain.ParseKind(kindParam)
	if err != nil {
		return nil, huma.Error404NotFound("Unknown domain: " + kindParam)
	}
	svc, ok := s.services.Domains[kind]
	if !ok {
		return nil, huma.Error404NotFound("Unknown domain: " + kindParam)
	}
	return svc, nil
}
