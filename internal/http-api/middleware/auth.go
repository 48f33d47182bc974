package middleware

import (
	"net/http"
	"strings"

	"mediahub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

// AuthMiddleware requires a valid bearer token and stores the resolved
// actor in the request context.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c, authService)
		if !ok {
			return
		}
		c.Set(actorKey, claims)
		c.Next()
	}
}

// OptionalAuth resolves an actor when a token is present but lets anonymous
// requests through; read endpoints are public.
func OptionalAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		claims, ok := bearerClaims(c, authService)
		if !ok {
			return
		}
		c.Set(actorKey, claims)
		c.Next()
	}
}

func bearerClaims(c *gin.Context, authService service.AuthService) (*service.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
		return nil, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
		return nil, false
	}

	claims, err := authService.ValidateToken(parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return nil, false
	}
	return claims, true
}

// ActorFrom returns the authorization context resolved by AuthMiddleware or
// OptionalAuth; ok is false on anonymous requests.
func ActorFrom(c *gin.Context) (*service.Claims, bool) {
	v, exists := c.Get(actorKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*service.Claims)
	return claims, ok
}

// RequireAdmin gates admin-only routes. It runs behind AuthMiddleware, so a
// missing actor means a broken chain rather than a missing token.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if !actor.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin privileges required"})
			return
		}
		c.Next()
	}
}
