package middleware

import (
	"errors"
	"net/http"
	"strings"

	"rps_referee/internal/service"

	"github.com/gin-gonic/gin"
)

// AgentIDKey is the gin context key holding the authenticated token subject.
const AgentIDKey = "agent_id"

// AgentAuth requires a tool-scoped bearer token. With nil tokens the routes
// are open, which is how local development runs.
func AgentAuth(tokens *service.AgentTokens) gin.HandlerFunc {
	return requireScope(tokens, service.ToolScope)
}

// OperatorAuth requires an operator-scoped bearer token. Agent tokens are
// refused with 403.
func OperatorAuth(tokens *service.AgentTokens) gin.HandlerFunc {
	return requireScope(tokens, service.OperatorScope)
}

func requireScope(tokens *service.AgentTokens, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokens == nil {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		subject, err := tokens.ParseScoped(raw, scope)
		if errors.Is(err, service.ErrInsufficientScope) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "token scope does not allow this route"})
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(AgentIDKey, subject)
		c.Next()
	}
}
