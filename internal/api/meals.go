package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/snapcal/backend/internal/middleware"
	"github.com/snapcal/backend/internal/service"
	"github.com/snapcal/backend/internal/types"
)

// MealHandler exposes the meal logging pipeline: adding a dish to a
// meal slot and removing a logged entry.
type MealHandler struct {
	mealService service.IMealService
	authService service.IAuthService
}

func NewMealHandler(mealService service.IMealService, authService service.IAuthService) *MealHandler {
	return &MealHandler{
		mealService: mealService,
		authService: authService,
	}
}

func (h *MealHandler) RegisterRoutes(router *gin.RouterGroup) {
	meals := router.Group("/meals")
	meals.Use(middleware.AuthMiddleware(h.authService))
	{
		meals.POST("/dishes", h.AddDish)
		meals.DELETE("/entries/:id", h.RemoveEntry)
		meals.GET("/:id", h.GetMeal)
	}
}

// AddDish logs a dish into the caller's meal slot for a date. The log
// and meal are created on first use; totals at every level are
// recomputed before the response is built.
func (h *MealHandler) AddDish(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.AddDishToMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	dishID, err := uuid.Parse(req.DishID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dish id"})
		return
	}

	date, err := service.ParseLogDate(req.Date)
	if err != nil {
		respondError(c, err)
		return
	}

	entry, meal, err := h.mealService.AddDishToMeal(c.Request.Context(), userID, dishID, req.MealType, date, req.Servings, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"entry": entry,
		"meal":  meal,
	})
}

// RemoveEntry deletes a logged entry owned by the caller and recomputes
// the affected meal and log totals.
func (h *MealHandler) RemoveEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return
	}

	if err := h.mealService.RemoveDishFromMeal(c.Request.Context(), userID, entryID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *MealHandler) GetMeal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	mealID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	meal, err := h.mealService.GetMeal(c.Request.Context(), userID, mealID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, meal)
}
