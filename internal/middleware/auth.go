package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kaveenpsnd/hustlefolio/internal/auth"
	"github.com/kaveenpsnd/hustlefolio/internal/models"
)

const (
	authUsernameKey = "auth_username"
	authRoleKey     = "auth_role"
)

// RequireAuth validates the bearer token and sets user context
func RequireAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Extract token from Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		// Check for Bearer token format
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization format. Use: Bearer <token>"})
			c.Abort()
			return
		}

		tokenString := parts[1]

		// Validate token
		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			if err == auth.ErrExpiredToken {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			}
			c.Abort()
			return
		}

		// Store user info in context
		c.Set(authUsernameKey, claims.Username)
		c.Set(authRoleKey, claims.Role)

		c.Next()
	}
}

// RequireAdmin ensures the authenticated user has the ADMIN role
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetAuthRole(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		if role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetAuthUsername retrieves the authenticated username from context
func GetAuthUsername(c *gin.Context) (string, bool) {
	username, exists := c.Get(authUsernameKey)
	if !exists {
		return "", false
	}
	return username.(string), true
}

// GetAuthRole retrieves the authenticated user's role from context
func GetAuthRole(c *gin.Context) (string, bool) {
	role, exists := c.Get(authRoleKey)
	if !exists {
		return "", false
	}
	return role.(string), true
}
