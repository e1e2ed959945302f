package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/snapcal/backend/internal/middleware"
	"github.com/snapcal/backend/internal/service"
	"github.com/snapcal/backend/internal/types"
)

// GuestHandler exposes anonymous session creation and the direct
// conversion path.
type GuestHandler struct {
	guestService      service.IGuestService
	authService       service.IAuthService
	sessionRateLimits *middleware.RateLimiter
}

func NewGuestHandler(guestService service.IGuestService, authService service.IAuthService, sessionRateLimits *middleware.RateLimiter) *GuestHandler {
	return &GuestHandler{
		guestService:      guestService,
		authService:       authService,
		sessionRateLimits: sessionRateLimits,
	}
}

func (h *GuestHandler) RegisterRoutes(router *gin.RouterGroup) {
	guest := router.Group("/guest")
	{
		create := guest.Group("")
		if h.sessionRateLimits != nil {
			create.Use(h.sessionRateLimits.ByClientIP())
		}
		create.POST("/sessions", h.CreateSession)
	}

	authed := router.Group("/guest")
	authed.Use(middleware.AuthMiddleware(h.authService))
	{
		authed.POST("/convert", h.Convert)
	}
}

// CreateSession provisions an anonymous identity from the onboarding
// payload and returns its access token.
func (h *GuestHandler) CreateSession(c *gin.Context) {
	var req types.CreateGuestSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	resp, err := h.guestService.CreateGuestSession(c.Request.Context(), &req, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Convert upgrades the authenticated guest to a full account without
// email verification.
func (h *GuestHandler) Convert(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.ConvertGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	resp, err := h.guestService.ConvertGuestToUser(c.Request.Context(), userID, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
