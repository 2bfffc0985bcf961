package middleware

import (
	"net/http"
	"strings"

	"go-candidate-feed/internal/delivery/http/response"
	"go-candidate-feed/internal/domain"
	"go-candidate-feed/pkg/auth"
	"go-candidate-feed/pkg/logger"

	"github.com/gin-gonic/gin"
)

// TokenVerifier turns a bearer token into the caller's identity.
type TokenVerifier interface {
	Verify(token string) (*auth.Identity, error)
}

// AuthMiddleware requires a valid ID token and stores the caller on the context.
func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Need to sign in first", nil)
			c.Abort()
			return
		}

		identity, err := verifier.Verify(tokenString)
		if err != nil {
			logger.Log.Debug("token validation failed", "error", err, "path", c.FullPath())
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		setIdentity(c, identity)
		c.Next()
	}
}

// OptionalAuth identifies the caller when a token is present and valid, and lets anonymous
// requests through otherwise. Handlers decide what anonymous callers may see.
func OptionalAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := bearerToken(c); tokenString != "" {
			if identity, err := verifier.Verify(tokenString); err == nil {
				setIdentity(c, identity)
			} else {
				logger.Log.Debug("ignoring invalid optional token", "error", err)
			}
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie, err := c.Cookie("auth_token"); err == nil {
		return cookie
	}
	return ""
}

func setIdentity(c *gin.Context, identity *auth.Identity) {
	c.Set(string(domain.KeyUserID), identity.UserID)
	c.Set(string(domain.KeyUserEmail), identity.Email)
}
