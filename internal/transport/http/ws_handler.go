package http

import (
	"log/slog"
	"net/http"

	"pasarcli/internal/progress"
)

// WSHandler upgrades HTTP connections to the progress stream.
type WSHandler struct {
	hub    *progress.Hub
	logger *slog.Logger
}

func NewWSHandler(hub *progress.Hub, logger *slog.Logger) *WSHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WSHandler{hub: hub, logger: logger}
}

// Serve handles a WebSocket upgrade request. Upgrade failures have
// already been answered by the upgrader, so they are only logged here.
func (h *WSHandler) Serve(w http.ResponseWriter, r *http.Request) {
	if err := progress.ServeWS(h.hub, w, r); err != nil {
		h.logger.WarnContext(r.Context(), "websocket upgrade failed",
			slog.String("remote_addr", r.RemoteAddr),
			slog.String("error", err.Error()))
	}
}
