package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"recipehub/internal/httpapi/authz"
	"recipehub/internal/httpapi/models"
	"recipehub/internal/httpapi/service"
)

const identityKey = "identity"

// AuthMiddleware is a Gin middleware for JWT authentication of API requests.
// It checks for the presence and validity of a JWT token in the Authorization header.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := bearerIdentity(c, authService)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid authorization header"})
			c.Abort()
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// OptionalAuth resolves the caller identity when a valid bearer token is
// present but lets anonymous requests through. Used on public reads whose
// visibility rules differ for owners and admins.
func OptionalAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity, ok := bearerIdentity(c, authService); ok {
			c.Set(identityKey, identity)
		}
		c.Next()
	}
}

// RequireAdmin rejects non-admin callers. Must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := Identity(c)
		if identity == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}
		if identity.Role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// Identity returns the resolved caller identity, or nil for anonymous
// requests.
func Identity(c *gin.Context) *authz.Identity {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil
	}
	identity, ok := value.(*authz.Identity)
	if !ok {
		return nil
	}
	return identity
}

func bearerIdentity(c *gin.Context, authService service.AuthService) (*authz.Identity, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	// Expected format: "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	claims, err := authService.ValidateToken(parts[1])
	if err != nil {
		return nil, false
	}

	return &authz.Identity{UserID: claims.UserID, Role: claims.Role}, true
}
