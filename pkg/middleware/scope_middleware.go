package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ScopesHeader carries the comma separated scopes the gateway granted the caller.
const ScopesHeader = "X-User-Scopes"

type ScopeMiddleware interface {
	RequireScope(requiredScope string) gin.HandlerFunc
}

type scopeMiddleware struct {
}

func (s *scopeMiddleware) RequireScope(requiredScope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		scopesHeader := c.Request.Header.Get(ScopesHeader)
		if len(strings.TrimSpace(scopesHeader)) == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "X-User-Scopes header is empty",
			})
			return
		}
		for _, scope := range strings.Split(scopesHeader, ",") {
			if strings.TrimSpace(scope) == requiredScope {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"message": "Permission denied",
		})
	}
}

func NewScopeMiddleware() ScopeMiddleware {
	return &scopeMiddleware{}
}
