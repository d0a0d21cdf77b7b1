package router

import (
	"github.com/gin-gonic/gin"

	"parley.chat/api-server/internal/http/handler"
)

// OrganizationRouter wires the organization-scoped API. Everything here is
// authenticated; reads additionally run through org context resolution so
// the orgId cookie stays consistent.
func OrganizationRouter(
	rg *gin.RouterGroup,
	orgHandler *handler.OrganizationHandler,
	inviteHandler *handler.InviteHandler,
	requireAuth gin.HandlerFunc,
	orgContext gin.HandlerFunc,
) {
	rg.Use(requireAuth)

	rg.POST("", orgHandler.Create)
	rg.PATCH("/:id", orgHandler.Update)
	rg.DELETE("/:id", orgHandler.Delete)
	rg.POST("/:id/switch", orgHandler.Switch)

	rg.POST("/:id/invites", inviteHandler.Create)
	rg.POST("/invites/accept", inviteHandler.Accept)

	resolved := rg.Group("")
	resolved.Use(orgContext)
	{
		resolved.GET("", orgHandler.List)
		resolved.GET("/current", orgHandler.Current)
	}
}
