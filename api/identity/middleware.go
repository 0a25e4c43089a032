package identity

import (
	"errors"
	"net/http"
	"strings"

	"github.com/beka-birhanu/vinom-agent/service"
	"github.com/beka-birhanu/vinom-agent/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ContextUserClaims is the key used to store token claims in the Gin context.
	ContextUserClaims = "userClaims"
)

var (
	ErrNoClaims       = errors.New("request carries no token claims")
	ErrNoSessionClaim = errors.New("token carries no session")
)

// Authorize rejects requests without a valid Bearer token and stores the token claims in the
// context otherwise.
func Authorize(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Retrieve the access token from the Authorization header.
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Status(http.StatusUnauthorized) // No token found in the header.
			c.Abort()
			return
		}

		// Split the "Bearer" prefix from the token.
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.Status(http.StatusUnauthorized) // Malformed Authorization header.
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

// SessionID returns the agent session the request's token was issued for.
func SessionID(c *gin.Context) (uuid.UUID, error) {
	value, ok := c.Get(ContextUserClaims)
	if !ok {
		return uuid.Nil, ErrNoClaims
	}
	claims, ok := value.(map[string]interface{})
	if !ok {
		return uuid.Nil, ErrNoClaims
	}
	raw, ok := claims[service.ClaimSessionID].(string)
	if !ok {
		return uuid.Nil, ErrNoSessionClaim
	}
	return uuid.Parse(raw)
}
