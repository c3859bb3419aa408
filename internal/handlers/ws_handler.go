package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/WAKO-NZ/tap4service2-sub000/internal/notify"
)

type WSHandler struct {
	hub *notify.Hub
}

func NewWSHandler(hub *notify.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

// Serve upgrades the connection and hands it to the hub. Interest is
// declared afterwards by the client's subscribe message.
func (h *WSHandler) Serve(c *gin.Context) {
	notify.ServeWs(h.hub, c.Writer, c.Request)
}
