package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/snapcal/backend/internal/service"
)

// respondError maps service errors onto HTTP statuses. Anything not in
// the taxonomy is logged and reported as a 500 without leaking detail.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDishNotFound),
		errors.Is(err, service.ErrMealNotFound),
		errors.Is(err, service.ErrMealEntryNotFound),
		errors.Is(err, service.ErrLogNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrGuestNotFound),
		errors.Is(err, service.ErrRatingNotFound),
		errors.Is(err, service.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrEmailExists),
		errors.Is(err, service.ErrRatingExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrInvalidServings),
		errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrInvalidMealType),
		errors.Is(err, service.ErrInvalidCode),
		errors.Is(err, service.ErrCodeExpired),
		errors.Is(err, service.ErrCodeConsumed),
		errors.Is(err, service.ErrAlreadyRegistered):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrSessionExpired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})

	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// currentUserID reads the authenticated user set by the auth
// middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	val, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return uuid.Nil, false
	}
	userID, ok := val.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return uuid.Nil, false
	}
	return userID, true
}
