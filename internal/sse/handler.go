package sse

import (
	"encoding/json/v2"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/globaldefense/index-server/internal/domain"
	"github.com/globaldefense/index-server/internal/http/response"
	"github.com/globaldefense/index-server/internal/id"
	"github.com/globaldefense/index-server/internal/realtime"
)

// Handler handles SSE connections at GET /api/v1/stream.
type Handler struct {
	syncer            *realtime.Syncer
	logger            *slog.Logger
	heartbeatInterval time.Duration
}

// NewHandler creates a new SSE Handler over the shared syncer.
func NewHandler(syncer *realtime.Syncer, logger *slog.Logger) *Handler {
	return &Handler{
		syncer:            syncer,
		logger:            logger,
		heartbeatInterval: 30 * time.Second,
	}
}

// ServeHTTP handles the SSE connection. The syncer delivers the current
// dataset first, then every revision in save order; the stream mirrors that
// as one data.updated (or data.empty) per delivery.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed", h.logger)
		return
	}

	ctx := r.Context()
	if ctx.Err() != nil {
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	rc := http.NewResponseController(w)

	if err := rc.Flush(); err != nil {
		h.logger.Error("failed to flush headers", slog.String("error", err.Error()))
		response.InternalError(w, "Streaming not supported", h.logger)
		return
	}

	clientID, err := id.Generate("sse")
	if err != nil {
		h.logger.Error("failed to assign client id", slog.String("error", err.Error()))
		http.Error(w, "Failed to establish connection", http.StatusInternalServerError)
		return
	}

	clientLogger := h.logger.With(slog.String("client_id", clientID))

	if err := h.sendEvent(w, rc, NewConnectedEvent(clientID)); err != nil {
		clientLogger.Warn("failed to send connected event", slog.String("error", err.Error()))
		return
	}

	// The syncer invokes the callback sequentially per subscriber, so this
	// buffered bridge preserves delivery order into the write loop.
	revisions := make(chan *domain.Dataset, 8)
	dispose := h.syncer.Subscribe(ctx, func(ds *domain.Dataset) {
		select {
		case revisions <- ds:
		case <-ctx.Done():
		}
	})
	defer dispose()

	clientLogger.Info("stream client connected")
	start := time.Now()
	defer func() {
		clientLogger.Info("stream client disconnected",
			slog.Duration("duration", time.Since(start)))
	}()

	heartbeatTicker := time.NewTicker(h.heartbeatInterval)
	defer heartbeatTicker.Stop()

	for {
		select {
		case ds := <-revisions:
			event := NewDataEmptyEvent()
			if ds != nil {
				event = NewDataUpdatedEvent(ds)
			}
			if err := h.sendEvent(w, rc, event); err != nil {
				clientLogger.Info("client disconnected during send")
				return
			}

		case <-heartbeatTicker.C:
			if err := h.sendEvent(w, rc, NewHeartbeatEvent()); err != nil {
				clientLogger.Info("client disconnected during heartbeat")
				return
			}

		case <-ctx.Done():
			clientLogger.Info("client context canceled")
			return
		}
	}
}

// sendEvent writes one SSE frame and flushes it.
func (h *Handler) sendEvent(w http.ResponseWriter, rc *http.ResponseController, event Event) error {
	jsonData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event data: %w", err)
	}

	if _, err := fmt.Fprintf(w, "event: %s\n", event.Type); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", jsonData); err != nil {
		return err
	}

	if err := rc.Flush(); err != nil {
		return err
	}

	// Reset the write deadline after each successful frame so a hung
	// connection eventually errors out instead of leaking.
	if err := rc.SetWriteDeadline(time.Now().Add(60 * time.Second)); err != nil {
		h.logger.Debug("failed to set write deadline", slog.String("error", err.Error()))
	}

	return nil
}
