package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"parley.chat/api-server/internal/http/middleware"
	"parley.chat/api-server/internal/service"
)

type SessionHandler struct {
	sessionService service.SessionService
	isProduction   bool
}

func NewSessionHandler(sessionService service.SessionService, isProduction bool) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		isProduction:   isProduction,
	}
}

// Me returns the authenticated caller.
func (h *SessionHandler) Me(c *gin.Context) {
	user := middleware.GetUser(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"id":             user.ID,
		"name":           user.Name,
		"email":          user.Email,
		"email_verified": user.EmailVerified,
		"provider":       user.Provider,
	})
}

func (h *SessionHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := middleware.GetSessionID(ctx)

	if err := h.sessionService.Logout(ctx, sessionID); err != nil {
		slog.ErrorContext(ctx, "failed to delete session", "error", err, "session_id", sessionID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log out"})
		return
	}

	middleware.ClearSessionCookie(c, h.isProduction)
	c.Status(http.StatusNoContent)
}
