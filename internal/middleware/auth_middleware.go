package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lanlyastar/reservation-backend/pkg/jwt"
)

// ClerkContextKey is the key used to store clerk information in Gin context
const ClerkContextKey = "clerk"

// ClerkContext represents the authenticated clerk's information
type ClerkContext struct {
	ClerkID  uuid.UUID `json:"clerk_id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
}

// AuthMiddleware creates a middleware that validates JWT access tokens
func AuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Authorization header is required",
				"code":    "MISSING_AUTH_HEADER",
			})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Invalid authorization header format. Expected: Bearer <token>",
				"code":    "INVALID_AUTH_FORMAT",
			})
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Token cannot be empty",
				"code":    "INVALID_AUTH_FORMAT",
			})
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateAccessToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "invalid_token",
				"message": "Invalid or expired access token",
				"code":    "INVALID_TOKEN",
			})
			c.Abort()
			return
		}

		c.Set(ClerkContextKey, ClerkContext{
			ClerkID:  claims.ClerkID,
			Username: claims.Username,
			Role:     claims.Role,
		})

		c.Next()
	}
}

// RequireRole creates a middleware that checks if the clerk has one of the
// required roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		clerkCtx, exists := GetClerkContext(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Clerk context not found. Auth middleware may not be applied.",
				"code":    "MISSING_CLERK_CONTEXT",
			})
			c.Abort()
			return
		}

		for _, role := range roles {
			if clerkCtx.Role == role {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{
			"error":   "forbidden",
			"message": "You don't have permission to access this resource",
			"code":    "INSUFFICIENT_PERMISSIONS",
		})
		c.Abort()
	}
}

// GetClerkContext retrieves the clerk context from Gin context
func GetClerkContext(c *gin.Context) (ClerkContext, bool) {
	value, exists := c.Get(ClerkContextKey)
	if !exists {
		return ClerkContext{}, false
	}

	clerkCtx, ok := value.(ClerkContext)
	if !ok {
		return ClerkContext{}, false
	}

	return clerkCtx, true
}
