package handlers

import (
	"github.com/gin-gonic/gin"

	"suppliertracker/internal/domain/model"
	"suppliertracker/internal/server/http/middleware"
)

// CurrentSession extracts the authenticated session from context.
func CurrentSession(c *gin.Context) *model.Session {
	val, ok := c.Get(middleware.SessionContextKey)
	if !ok {
		return nil
	}
	session, _ := val.(*model.Session)
	return session
}

// CurrentToken extracts the raw session token from context.
func CurrentToken(c *gin.Context) string {
	val, ok := c.Get(middleware.TokenContextKey)
	if !ok {
		return ""
	}
	token, _ := val.(string)
	return token
}
