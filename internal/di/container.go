// Package di provides dependency injection configuration for the Defense
// Index server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/globaldefense/index-server/internal/auth"
	"github.com/globaldefense/index-server/internal/config"
	"github.com/globaldefense/index-server/internal/di/providers"
	"github.com/globaldefense/index-server/internal/generate"
	"github.com/globaldefense/index-server/internal/logger"
	"github.com/globaldefense/index-server/internal/service"
	"github.com/globaldefense/index-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)

	// Data layer
	do.Provide(injector, providers.ProvideBackend)
	do.Provide(injector, providers.ProvideSyncer)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Business services
	do.Provide(injector, providers.ProvideValidator)
	do.Provide(injector, providers.ProvideDomainServices)
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideProducer)
	do.Provide(injector, providers.ProvideSearchService)
	do.Provide(injector, providers.ProvideCompareService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	// Invoke core services to trigger initialization
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*providers.BackendHandle](injector)
	_ = do.MustInvoke[*providers.SyncerHandle](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)

	// Business services
	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[*providers.DomainServices](injector)
	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[generate.Producer](injector)
	_ = do.MustInvoke[*service.SearchService](injector)
	_ = do.MustInvoke[*service.CompareService](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
