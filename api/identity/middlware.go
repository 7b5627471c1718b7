package identity

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vaibhavshukla06/Labyrnith-Survival/service/i"
)

// ContextUserClaims is the gin context key under which the authorization
// middleware stores the decoded token claims.
const ContextUserClaims = "userClaims"

// Authoriz guards protected routes: it expects a bearer token in the
// Authorization header, validates it with the tokenizer, and attaches the
// claims to the request context. Anything less gets a 401.
func Authoriz(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Status(http.StatusUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.Status(http.StatusUnauthorized)
			c.Abort()
			return
		}

		claims, err := ts.Decode(parts[1])
		if err != nil {
			c.Status(http.StatusUnauthorized)
			c.Abort()
			return
		}

		c.Set(ContextUserClaims, claims)
		c.Next()
	}
}
