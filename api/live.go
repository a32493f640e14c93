package api

import (
	"log"

	"github.com/Domenick1991/flightlog/internal/live"
	"github.com/gin-gonic/gin"
)

type LiveHandler struct {
	hub *live.Hub
}

func NewLiveHandler(hub *live.Hub) *LiveHandler {
	return &LiveHandler{hub: hub}
}

func (h *LiveHandler) Register(router *gin.RouterGroup) {
	router.GET("/ws", h.subscribe)
}

func (h *LiveHandler) subscribe(c *gin.Context) {
	if err := h.hub.Serve(c.Writer, c.Request, userID(c)); err != nil {
		log.Printf("websocket upgrade failed: %v", err)
	}
}
