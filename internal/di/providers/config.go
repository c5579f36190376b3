// Package providers contains dependency injection providers for the Global
// Defense Index server.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/globaldefense/index-server/internal/config"
	"github.com/globaldefense/index-server/internal/logger"
)

// ProvideConfig provides the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.LoadConfig()
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
	})

	log.Info("Starting Defense Index Server",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"data_backend", cfg.Data.Backend,
		"data_path", cfg.Data.Path,
	)

	return log, nil
}
