package router

import (
	"github.com/gin-gonic/gin"

	"parley.chat/api-server/internal/http/handler"
)

func AuthRouter(rg *gin.RouterGroup, h *handler.SessionHandler, requireAuth gin.HandlerFunc) {
	rg.Use(requireAuth)
	rg.GET("/me", h.Me)
	rg.POST("/logout", h.Logout)
}
