package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"parley.chat/api-server/common/logger"
	"parley.chat/api-server/internal/model"
	"parley.chat/api-server/internal/service"
)

type contextKey string

const (
	SessionCookieName = "parley_session"

	sessionCookieMaxAge = 7 * 24 * 60 * 60

	userContextKey      contextKey = "user"
	sessionIDContextKey contextKey = "session_id"
)

// RequireAuth resolves the session cookie to a user and aborts with 401 when
// there is none. Handlers downstream read the user with GetUser.
func RequireAuth(sessionService service.SessionService, isProduction bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := getSessionID(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		user, err := sessionService.ValidateSession(c.Request.Context(), sessionID)
		if err != nil {
			if errors.Is(err, service.ErrSessionInvalid) {
				ClearSessionCookie(c, isProduction)
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to validate session"})
			return
		}

		ctx := context.WithValue(c.Request.Context(), userContextKey, user)
		ctx = context.WithValue(ctx, sessionIDContextKey, sessionID)
		ctx = logger.WithLogFields(ctx, logger.LogFields{
			UserID:    logger.Ptr(user.ID),
			SessionID: logger.Ptr(sessionID),
		})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func GetUser(ctx context.Context) *model.User {
	user, _ := ctx.Value(userContextKey).(*model.User)
	return user
}

func GetSessionID(ctx context.Context) int64 {
	sessionID, _ := ctx.Value(sessionIDContextKey).(int64)
	return sessionID
}

func SetSessionCookie(c *gin.Context, sessionID int64, isProduction bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		SessionCookieName,
		strconv.FormatInt(sessionID, 10),
		sessionCookieMaxAge,
		"/",
		"",
		isProduction,
		true,
	)
}

func ClearSessionCookie(c *gin.Context, isProduction bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		SessionCookieName,
		"",
		-1,
		"/",
		"",
		isProduction,
		true,
	)
}

func getSessionID(c *gin.Context) (int64, error) {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(cookie, 10, 64)
}
