package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"suppliertracker/internal/domain/model"
)

const (
	// SessionContextKey is a gin context key for the resolved session.
	SessionContextKey = "session"
	// TokenContextKey is a gin context key for the raw session token.
	TokenContextKey = "sessionToken"
	authCookieName  = "suppliertracker_token"
)

// SessionResolver resolves a raw token into an active session. The absence
// of a session is reported as (nil, nil), not as an error.
type SessionResolver interface {
	CurrentSession(ctx context.Context, token string) (*model.Session, error)
}

// AuthRequired ensures an active session exists before the handler runs.
func AuthRequired(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractToken(c)
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		session, err := resolver.CurrentSession(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		if session == nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set(SessionContextKey, session)
		c.Set(TokenContextKey, token)
		c.Next()
	}
}

// ExtractToken pulls the session token from the Authorization header or the
// auth cookie.
func ExtractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes the session token cookie to the response.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetCookie(authCookieName, token, 0, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}

// ClearAuthCookie expires the session token cookie.
func ClearAuthCookie(c *gin.Context) {
	c.SetCookie(authCookieName, "", -1, "/", "", false, true)
}
