package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/mmuslimabdulj/city-pulse/internal/delivery/ws"
)

// HandleWebSocket upgrades to the notice channel of the caller's session
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.existingSession(r)
	if !ok {
		http.Error(w, "Session required", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}

	client := ws.NewClient(h.hub, conn, sess.Token)
	h.hub.Register(client)

	// Start read/write pumps in goroutines
	go client.WritePump()
	go client.ReadPump()
}
