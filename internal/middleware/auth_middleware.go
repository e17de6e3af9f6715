package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shoplane/shoplane-api/internal/utils"
)

// AuthMiddleware gates routes behind a bearer token. Protect resolves the
// caller identity; Admin additionally requires the admin role.
type AuthMiddleware struct {
	rateLimiter *InvalidAuthRateLimiter
}

// NewAuthMiddleware constructs an AuthMiddleware.
func NewAuthMiddleware() *AuthMiddleware {
	return &AuthMiddleware{rateLimiter: NewInvalidAuthRateLimiter()}
}

// Protect requires a valid token and stores the caller identity in context.
func (m *AuthMiddleware) Protect() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			m.reject(c, "Not authorized, no token")
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := utils.ValidateJWT(token)
		if err != nil {
			m.reject(c, "Not authorized, token failed")
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("is_admin", claims.IsAdmin)
		c.Next()
	}
}

// Admin requires the resolved identity to carry the admin role. It must run
// after Protect.
func (m *AuthMiddleware) Admin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool("is_admin") {
			c.AbortWithStatusJSON(403, gin.H{"message": "Not authorized as admin"})
			return
		}
		c.Next()
	}
}

func (m *AuthMiddleware) reject(c *gin.Context, message string) {
	// Throttle repeated invalid attempts per client IP.
	if !m.rateLimiter.Allow(c.ClientIP()) {
		c.AbortWithStatusJSON(429, gin.H{"message": "Too many invalid authentication attempts"})
		return
	}
	c.AbortWithStatusJSON(401, gin.H{"message": message})
}

// UserID returns the authenticated user id from context, or "".
func UserID(c *gin.Context) string {
	return c.GetString("user_id")
}

// IsAdmin reports whether the authenticated user carries the admin role.
func IsAdmin(c *gin.Context) bool {
	return c.GetBool("is_admin")
}
