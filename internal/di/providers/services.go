package providers

import (
	"github.com/samber/do/v2"

	"github.com/globaldefense/index-server/internal/auth"
	"github.com/globaldefense/index-server/internal/config"
	"github.com/globaldefense/index-server/internal/domain"
	"github.com/globaldefense/index-server/internal/generate"
	"github.com/globaldefense/index-server/internal/logger"
	"github.com/globaldefense/index-server/internal/service"
	"github.com/globaldefense/index-server/internal/validation"
)

// DomainServices holds the per-kind coordinators.
type DomainServices struct {
	ByKind map[domain.Kind]*service.DomainService
}

// ProvideValidator provides the request validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideDomainServices provides one coordinator per kind over the shared syncer.
func ProvideDomainServices(i do.Injector) (*DomainServices, error) {
	syncerHandle := do.MustInvoke[*SyncerHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	kinds := domain.Kinds()
	byKind := make(map[domain.Kind]*service.DomainService, len(kinds))
	for _, kind := range kinds {
		byKind[kind] = service.NewDomainService(kind, syncerHandle.Syncer, validator, log.Logger)
	}

	return &DomainServices{ByKind: byKind}, nil
}

// ProvideAuthService provides the admin authentication service. A plain-text
// ADMIN_PASSWORD is hashed at startup for development setups.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	tokens := do.MustInvoke[*auth.TokenService](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	passwordHash := cfg.Auth.AdminPasswordHash
	if passwordHash == "" && cfg.Auth.AdminPassword != "" {
		hash, err := auth.HashPassword(cfg.Auth.AdminPassword)
		if err != nil {
			return nil, err
		}
		passwordHash = hash
		log.Warn("Hashed plain-text admin password from config; set ADMIN_PASSWORD_HASH in production")
	}

	return service.NewAuthService(cfg.Auth.AdminEmail, passwordHash, tokens, validator, log.Logger), nil
}

// ProvideProducer provides the Gemini entity generator.
func ProvideProducer(i do.Injector) (generate.Producer, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Gemini.APIKey == "" {
		log.Warn("GEMINI_API_KEY not set; search will not generate new entities")
	}

	return generate.NewGeminiClient(generate.GeminiOptions{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		BaseURL: cfg.Gemini.BaseURL,
	}, log.Logger), nil
}

// ProvideSearchService provides find-or-generate search.
func ProvideSearchService(i do.Injector) (*service.SearchService, error) {
	domains := do.MustInvoke[*DomainServices](i)
	producer := do.MustInvoke[generate.Producer](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSearchService(domains.ByKind, producer, generate.NewValidator(), log.Logger), nil
}

// ProvideCompareService provides the nation comparison service.
func ProvideCompareService(i do.Injector) (*service.CompareService, error) {
	domains := do.MustInvoke[*DomainServices](i)
	producer := do.MustInvoke[generate.Producer](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCompareService(domains.ByKind[domain.KindNations], producer, log.Logger), nil
}
