package router

import (
	"github.com/gin-gonic/gin"

	"parley.chat/api-server/internal/http/handler"
	"parley.chat/api-server/internal/http/middleware"
	"parley.chat/api-server/internal/service"
)

type RouterConfig struct {
	ClientOrigin string
	IsProduction bool
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	requireAuth := middleware.RequireAuth(services.Sessions(), cfg.IsProduction)
	orgContext := middleware.OrgContext(services.OrgResolver(), cfg.IsProduction)

	sessionHandler := handler.NewSessionHandler(services.Sessions(), cfg.IsProduction)
	AuthRouter(router.Group("/auth"), sessionHandler, requireAuth)

	v1 := router.Group("/api/v1")
	{
		orgHandler := handler.NewOrganizationHandler(services.Organizations(), services.Invites(), services.Authz(), cfg.IsProduction)
		inviteHandler := handler.NewInviteHandler(services.Invites(), services.Authz(), cfg.IsProduction)
		OrganizationRouter(v1.Group("/organizations"), orgHandler, inviteHandler, requireAuth, orgContext)

		ssoHandler := handler.NewSSOHandler(services.SSO(), cfg.ClientOrigin, cfg.IsProduction)
		SSORouter(v1.Group("/organizations/sso"), ssoHandler)
	}
}
