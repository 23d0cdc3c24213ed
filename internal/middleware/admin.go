package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/imgoedu/imgo-backend/internal/response"
)

// HeaderAdminToken is the shared-secret header checked by admin endpoints.
const HeaderAdminToken = "X-Admin-Token"

// RequireAdminToken rejects requests whose X-Admin-Token header does not
// exactly equal the configured token. There is no other authentication.
func RequireAdminToken(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader(HeaderAdminToken)
		if got == "" || got != token {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrUnauthorized)
			return
		}
		c.Next()
	}
}
