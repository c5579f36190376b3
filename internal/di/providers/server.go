package providers

import (
	"context"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/globaldefense/index-server/internal/api"
	"github.com/globaldefense/index-server/internal/config"
	"github.com/globaldefense/index-server/internal/logger"
	"github.com/globaldefense/index-server/internal/service"
	"github.com/globaldefense/index-server/internal/sse"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	syncerHandle := do.MustInvoke[*SyncerHandle](i)
	domains := do.MustInvoke[*DomainServices](i)
	log := do.MustInvoke[*logger.Logger](i)

	services := &api.Services{
		Auth:    do.MustInvoke[*service.AuthService](i),
		Domains: domains.ByKind,
		Search:  do.MustInvoke[*service.SearchService](i),
		Compare: do.MustInvoke[*service.CompareService](i),
	}

	sseHandler := sse.NewHandler(syncerHandle.Syncer, log.Logger)
	handler := api.NewServer(services, syncerHandle.Syncer, sseHandler, cfg.Server.AllowedOrigins, log.Logger)

	srv := &http.Server{
		Addr:        ":" + cfg.Server.Port,
		Handler:     handler,
		ReadTimeout: cfg.Server.ReadTimeout,
		// WriteTimeout stays zero so SSE streams are never cut off.
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", srv.Addr)

	return &HTTPServerHandle{Server: srv}, nil
}
