package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskvault/taskvault/internal/domain/repository"
	"github.com/taskvault/taskvault/pkg/helpers"
)

// TokenHeader carries the auth token on requests and responses.
const TokenHeader = "x-auth"

// Context keys set by Auth for downstream handlers.
const (
	CtxUserIDKey    = "userID"
	CtxUserEmailKey = "userEmail"
	CtxTokenKey     = "authToken"
)

// Auth resolves the caller from the x-auth header: the token must parse
// (signature and expiry) and still exist in the user's stored token
// sequence. Any failure aborts with a bare 401 before route logic runs.
func Auth(users repository.UserRepository, tokens *helpers.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(TokenHeader)
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		if _, err := tokens.Parse(token); err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		u, err := users.GetByToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set(CtxUserIDKey, u.ID)
		c.Set(CtxUserEmailKey, u.Email)
		c.Set(CtxTokenKey, token)
		c.Next()
	}
}
