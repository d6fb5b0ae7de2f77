package middlewares

import (
	"DentaBill/tenant"
	"DentaBill/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

// TokenAuthMiddleware validates the access token and attaches the resolved
// tenant session to the request context. The token is read from the auth
// cookie first, falling back to the accessToken query parameter. Role
// checks are RoleAuthMiddleware's job.
func TokenAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("accessToken")
		if err != nil || token == "" {
			token = c.DefaultQuery("accessToken", "")
		}
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing access token"})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		session := tenant.Session{
			DentistID:     claims.DentistID,
			Role:          claims.Role,
			Authenticated: true,
		}
		c.Request = c.Request.WithContext(tenant.NewContext(c.Request.Context(), session))

		c.Next()
	}
}

// OptionalTokenAuthMiddleware attaches a tenant session when a valid token
// is present and lets the request through either way. Handlers that need an
// identity fail later with a 401; public bill links proceed without one.
func OptionalTokenAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("accessToken")
		if err != nil || token == "" {
			token = c.DefaultQuery("accessToken", "")
		}
		if token != "" {
			if claims, err := utils.ValidateToken(token); err == nil {
				session := tenant.Session{
					DentistID:     claims.DentistID,
					Role:          claims.Role,
					Authenticated: true,
				}
				c.Request = c.Request.WithContext(tenant.NewContext(c.Request.Context(), session))
			}
		}
		c.Next()
	}
}

// RoleAuthMiddleware restricts access to sessions with the specified role.
func RoleAuthMiddleware(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := tenant.FromContext(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not found in context"})
			c.Abort()
			return
		}

		if session.Role != requiredRole {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient privileges"})
			c.Abort()
			return
		}

		c.Next()
	}
}
