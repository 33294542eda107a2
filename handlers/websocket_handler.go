package handlers

import (
	"net/http"

	"github.com/Dosada05/bowling-tracker/live"
)

type WebSocketHandler struct {
	hub *live.Hub
}

func NewWebSocketHandler(hub *live.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// ServeWs attaches the connection to the current user's room. Clients connect
// to /ws and receive STATS_UPDATED messages after each of their writes.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	h.hub.ServeWS(w, r, currentUser(r).ID)
}
