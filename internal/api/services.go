package api

import (
	"github.com/globaldefense/index-server/internal/domain"
	"github.com/globaldefense/index-server/internal/service"
)

// Services holds all application services used by the API handlers.
type Services struct {
	Auth    *service.AuthService
	Domains map[domain.Kind]*service.DomainService
	Search  *service.SearchService
	Compare *service.CompareService
}
