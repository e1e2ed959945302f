package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/snapcal/backend/internal/models"
	"github.com/snapcal/backend/internal/types"
)

// TokenValidator resolves a bearer token to a live account. Claims
// alone are not enough here: a guest can be deactivated by the expiry
// sweep, or pass its expires_at, while its token is still within TTL.
type TokenValidator interface {
	ValidateToken(token string) (*types.TokenClaims, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// AuthMiddleware creates a middleware that validates JWT tokens and
// re-checks the account behind them on every request.
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := validator.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		// The lookup excludes deactivated accounts, so a guest swept
		// mid-TTL fails here even with a well-formed token.
		user, err := validator.GetUserByID(c.Request.Context(), claims.UserID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}
		if user.IsGuest && user.ExpiresAt != nil && user.ExpiresAt.Before(time.Now()) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "guest session expired"})
			c.Abort()
			return
		}

		// Store user info in context
		c.Set("user_id", user.ID)
		c.Set("is_guest", user.IsGuest)
		c.Next()
	}
}

// RequireRegistered creates a middleware that blocks guest identities
// from endpoints reserved for full accounts.
func RequireRegistered() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetBool("is_guest") {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "registered account required",
				"message": "Convert your guest session to a full account to use this feature",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
