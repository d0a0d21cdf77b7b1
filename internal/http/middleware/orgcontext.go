package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"parley.chat/api-server/common/logger"
	"parley.chat/api-server/internal/service"
)

const (
	OrgCookieName = "orgId"

	orgCookieMaxAge = 30 * 24 * 60 * 60

	orgIDContextKey contextKey = "org_id"
)

// OrgContext resolves which organization the request operates in and keeps
// the client's orgId cookie honest. Must run after RequireAuth. Requests
// from users with no organization pass through with no org in context.
func OrgContext(resolver service.OrgResolver, isProduction bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetUser(c.Request.Context())
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		hint, _ := c.Cookie(OrgCookieName)
		res := resolver.Resolve(c.Request.Context(), user, hint)

		switch res.Affinity.Op {
		case service.AffinitySet:
			SetOrgCookie(c, res.Affinity.OrganizationID, isProduction)
		case service.AffinityClear:
			clearOrgCookie(c, isProduction)
		}

		if res.OrganizationID != nil {
			ctx := context.WithValue(c.Request.Context(), orgIDContextKey, *res.OrganizationID)
			ctx = logger.WithLogFields(ctx, logger.LogFields{OrgID: res.OrganizationID})
			c.Request = c.Request.WithContext(ctx)
		}

		c.Next()
	}
}

// GetOrgID returns the resolved organization ID, or nil when the request has
// no organization context.
func GetOrgID(ctx context.Context) *int64 {
	if orgID, ok := ctx.Value(orgIDContextKey).(int64); ok {
		return &orgID
	}
	return nil
}

func SetOrgCookie(c *gin.Context, orgID int64, isProduction bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		OrgCookieName,
		strconv.FormatInt(orgID, 10),
		orgCookieMaxAge,
		"/",
		"",
		isProduction,
		true,
	)
}

func clearOrgCookie(c *gin.Context, isProduction bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		OrgCookieName,
		"",
		-1,
		"/",
		"",
		isProduction,
		true,
	)
}
