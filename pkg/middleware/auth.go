package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kart-io/haven/pkg/auth/jwt"
	"github.com/kart-io/haven/pkg/errors"
	"github.com/kart-io/haven/pkg/response"
)

// ContextKeyUserID is the gin context key holding the authenticated user ID.
const ContextKeyUserID = "user_id"

// AuthConfig defines the config for the Auth middleware.
type AuthConfig struct {
	// Manager verifies bearer tokens.
	Manager *jwt.Manager

	// SkipPaths is a list of exact paths that bypass authentication.
	SkipPaths []string

	// SkipPathPrefixes is a list of path prefixes that bypass authentication.
	SkipPathPrefixes []string
}

// Auth returns a middleware that authenticates requests with a JWT bearer
// token and stores the subject user ID in the gin context.
func Auth(manager *jwt.Manager, skipPaths ...string) gin.HandlerFunc {
	return AuthWithConfig(AuthConfig{Manager: manager, SkipPaths: skipPaths})
}

// AuthWithConfig returns an Auth middleware with custom config.
func AuthWithConfig(config AuthConfig) gin.HandlerFunc {
	skipPaths := make(map[string]bool, len(config.SkipPaths))
	for _, path := range config.SkipPaths {
		skipPaths[path] = true
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if skipPaths[path] {
			c.Next()
			return
		}
		for _, prefix := range config.SkipPathPrefixes {
			if prefix != "" && strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		token, err := extractBearerToken(c)
		if err != nil {
			response.Fail(c, err)
			c.Abort()
			return
		}

		claims, err := config.Manager.Verify(c.Request.Context(), token)
		if err != nil {
			response.Fail(c, err)
			c.Abort()
			return
		}

		c.Set(ContextKeyUserID, claims.Subject)
		c.Next()
	}
}

// UserID returns the authenticated user ID from the gin context.
// Returns empty string if the request is unauthenticated.
func UserID(c *gin.Context) string {
	return c.GetString(ContextKeyUserID)
}

func extractBearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", errors.ErrUnauthorized.WithMessage("missing authorization header")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.ErrInvalidToken.WithMessage("authorization header must be a bearer token")
	}
	return parts[1], nil
}
