package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/snapcal/backend/internal/middleware"
	"github.com/snapcal/backend/internal/service"
	"github.com/snapcal/backend/internal/types"
)

// DishHandler exposes the dish catalog.
type DishHandler struct {
	dishService service.IDishService
	authService service.IAuthService
}

func NewDishHandler(dishService service.IDishService, authService service.IAuthService) *DishHandler {
	return &DishHandler{
		dishService: dishService,
		authService: authService,
	}
}

func (h *DishHandler) RegisterRoutes(router *gin.RouterGroup) {
	dishes := router.Group("/dishes")
	dishes.Use(middleware.AuthMiddleware(h.authService))
	{
		dishes.GET("", h.ListDishes)
		dishes.GET("/categories", h.ListCategories)
		dishes.GET("/:id", h.GetDish)
	}

	manage := router.Group("/dishes")
	manage.Use(middleware.AuthMiddleware(h.authService), middleware.RequireRegistered())
	{
		manage.POST("", h.CreateDish)
		manage.PATCH("/:id", h.UpdateDish)
		manage.DELETE("/:id", h.DeactivateDish)
	}
}

func (h *DishHandler) ListDishes(c *gin.Context) {
	filter := types.DishFilter{Search: c.Query("search")}
	if v := c.Query("category_id"); v != "" {
		filter.CategoryID = &v
	}
	if v := c.Query("diet_tag_id"); v != "" {
		filter.DietTagID = &v
	}

	dishes, err := h.dishService.ListDishes(c.Request.Context(), &filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dishes)
}

func (h *DishHandler) GetDish(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dish id"})
		return
	}

	dish, err := h.dishService.GetDish(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dish)
}

func (h *DishHandler) CreateDish(c *gin.Context) {
	var req types.CreateDishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	dish, err := h.dishService.CreateDish(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dish)
}

func (h *DishHandler) UpdateDish(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dish id"})
		return
	}

	var req types.UpdateDishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	dish, err := h.dishService.UpdateDish(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dish)
}

func (h *DishHandler) DeactivateDish(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dish id"})
		return
	}

	if err := h.dishService.DeactivateDish(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *DishHandler) ListCategories(c *gin.Context) {
	categories, err := h.dishService.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}
