package router

import (
	"github.com/gin-gonic/gin"

	"parley.chat/api-server/internal/http/handler"
)

// SSORouter wires the federation endpoints. Both are unauthenticated: they
// are the entry and exit of the login flow itself.
func SSORouter(rg *gin.RouterGroup, h *handler.SSOHandler) {
	rg.GET("/:id/start", h.Start)
	rg.GET("/callback", h.Callback)
}
