package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-devconnector/pkg/helpers"
	"github.com/oksasatya/go-devconnector/pkg/response"
)

const (
	accountIDKey = "accountID"

	// LegacyTokenHeader is accepted when no Authorization header is sent.
	LegacyTokenHeader = "x-auth-token"
)

// TokenAuthorizer resolves a raw token to an account ID.
type TokenAuthorizer interface {
	Authorize(raw string) (string, error)
}

// Auth rejects requests without a valid token with a generic 401.
// On success it sets accountID in the Gin context.
func Auth(gate TokenAuthorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := helpers.BearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			raw = c.GetHeader(LegacyTokenHeader)
		}
		id, err := gate.Authorize(raw)
		if err != nil {
			c.Set("auth_error", err.Error())
			response.Abort(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		c.Set(accountIDKey, id)
		c.Next()
	}
}

// AccountID returns the account set by Auth, or "".
func AccountID(c *gin.Context) string {
	return c.GetString(accountIDKey)
}
