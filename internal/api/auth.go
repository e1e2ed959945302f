package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/snapcal/backend/internal/middleware"
	"github.com/snapcal/backend/internal/service"
	"github.com/snapcal/backend/internal/types"
)

// AuthHandler exposes registration, login, token refresh, OAuth and
// email verification.
type AuthHandler struct {
	authService          service.IAuthService
	conversionRateLimits *middleware.RateLimiter
}

func NewAuthHandler(authService service.IAuthService, conversionRateLimits *middleware.RateLimiter) *AuthHandler {
	return &AuthHandler{
		authService:          authService,
		conversionRateLimits: conversionRateLimits,
	}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/oauth", h.OAuthLogin)
		auth.POST("/verify-email", h.VerifyEmail)
	}

	convert := router.Group("/auth/convert")
	convert.Use(middleware.AuthMiddleware(h.authService))
	if h.conversionRateLimits != nil {
		convert.Use(h.conversionRateLimits.ByUserID())
	}
	{
		convert.POST("/request", h.RequestConversion)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req types.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	resp, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) OAuthLogin(c *gin.Context) {
	var info types.OAuthUserInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	resp, err := h.authService.HandleOAuthLogin(c.Request.Context(), &info)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RequestConversion starts the email-verified guest conversion
// handshake for the authenticated guest.
func (h *AuthHandler) RequestConversion(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.ConvertGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	resp, err := h.authService.RequestGuestConversion(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, resp)
}

// VerifyEmail consumes a verification code and completes the pending
// conversion. It is unauthenticated on purpose: the guest may open the
// link from a different device than the one holding the session.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req types.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	resp, err := h.authService.VerifyEmail(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
