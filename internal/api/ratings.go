package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/snapcal/backend/internal/middleware"
	"github.com/snapcal/backend/internal/service"
	"github.com/snapcal/backend/internal/types"
)

// RatingHandler exposes per-dish ratings.
type RatingHandler struct {
	ratingService service.IRatingService
	authService   service.IAuthService
}

func NewRatingHandler(ratingService service.IRatingService, authService service.IAuthService) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
		authService:   authService,
	}
}

func (h *RatingHandler) RegisterRoutes(router *gin.RouterGroup) {
	ratings := router.Group("/dishes/:id/ratings")
	ratings.Use(middleware.AuthMiddleware(h.authService))
	{
		ratings.GET("", h.ListRatings)
		ratings.POST("", h.RateDish)
		ratings.PATCH("", h.UpdateRating)
		ratings.DELETE("", h.DeleteRating)
	}
}

func (h *RatingHandler) ListRatings(c *gin.Context) {
	dishID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dish id"})
		return
	}

	ratings, err := h.ratingService.GetDishRatings(c.Request.Context(), dishID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ratings)
}

func (h *RatingHandler) RateDish(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	dishID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dish id"})
		return
	}

	var req types.CreateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rating, err := h.ratingService.RateDish(c.Request.Context(), userID, dishID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rating)
}

func (h *RatingHandler) UpdateRating(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	dishID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dish id"})
		return
	}

	var req types.UpdateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rating, err := h.ratingService.UpdateRating(c.Request.Context(), userID, dishID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rating)
}

func (h *RatingHandler) DeleteRating(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	dishID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dish id"})
		return
	}

	if err := h.ratingService.DeleteRating(c.Request.Context(), userID, dishID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
