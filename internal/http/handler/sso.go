package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"parley.chat/api-server/internal/http/middleware"
	"parley.chat/api-server/internal/service"
)

type SSOHandler struct {
	ssoService   service.SSOService
	clientOrigin string
	isProduction bool
}

func NewSSOHandler(ssoService service.SSOService, clientOrigin string, isProduction bool) *SSOHandler {
	return &SSOHandler{
		ssoService:   ssoService,
		clientOrigin: clientOrigin,
		isProduction: isProduction,
	}
}

// Start redirects the browser to the identity provider for the
// organization's SSO connection. Unauthenticated: this is where login
// begins.
func (h *SSOHandler) Start(c *gin.Context) {
	ctx := c.Request.Context()

	orgID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid organization id"})
		return
	}

	authURL, err := h.ssoService.Start(ctx, orgID)
	if err != nil {
		if errors.Is(err, service.ErrSSONotConfigured) {
			c.JSON(http.StatusNotFound, gin.H{"error": "sso is not configured for this organization"})
			return
		}
		slog.ErrorContext(ctx, "failed to start sso", "error", err, "org_id", orgID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start sso"})
		return
	}

	c.Redirect(http.StatusFound, authURL)
}

// Callback completes the SSO round-trip. Every failure lands the browser on
// the login page with a generic error; success carries the session and org
// back to the client.
func (h *SSOHandler) Callback(c *gin.Context) {
	ctx := c.Request.Context()

	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		h.redirectFailure(c)
		return
	}

	result, err := h.ssoService.Callback(ctx, code, state)
	if err != nil {
		if !errors.Is(err, service.ErrSSOFailed) && !errors.Is(err, service.ErrSSONotConfigured) {
			slog.ErrorContext(ctx, "sso callback failed", "error", err)
		}
		h.redirectFailure(c)
		return
	}

	middleware.SetSessionCookie(c, result.Session.ID, h.isProduction)
	middleware.SetOrgCookie(c, result.Organization.ID, h.isProduction)

	c.Redirect(http.StatusFound, fmt.Sprintf(
		"%s/login?token=%d&orgId=%d",
		h.clientOrigin,
		result.Session.ID,
		result.Organization.ID,
	))
}

func (h *SSOHandler) redirectFailure(c *gin.Context) {
	c.Redirect(http.StatusFound, h.clientOrigin+"/login?error=sso_failed")
}
