package api

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/snapcal/backend/config"
	"github.com/snapcal/backend/internal/middleware"
	"github.com/snapcal/backend/internal/service"
)

// SetupAPI wires services, rate limiters and handlers onto /api/v1.
// A nil redis client disables rate limiting, which keeps tests and
// local development free of a redis dependency.
func SetupAPI(router *gin.Engine, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	v1 := router.Group("/api/v1")
	{
		// Initialize services
		emailService := service.NewEmailService(cfg)
		authService := service.NewAuthService(db, cfg.JWTSecret, cfg.JWTRefreshSecret, emailService)
		guestService := service.NewGuestService(db, cfg.JWTSecret, cfg.JWTRefreshSecret, cfg.GuestSessionExpirationDays)
		mealService := service.NewMealService(db)
		logService := service.NewLogService(db)
		dishService := service.NewDishService(db)
		ratingService := service.NewRatingService(db)
		profileService := service.NewProfileService(db)

		var sessionLimiter, conversionLimiter *middleware.RateLimiter
		if redisClient != nil {
			sessionLimiter = middleware.NewGuestSessionRateLimiter(redisClient)
			conversionLimiter = middleware.NewConversionRateLimiter(redisClient)
		}

		// Initialize handlers
		authHandler := NewAuthHandler(authService, conversionLimiter)
		guestHandler := NewGuestHandler(guestService, authService, sessionLimiter)
		mealHandler := NewMealHandler(mealService, authService)
		logHandler := NewLogHandler(logService, authService)
		dishHandler := NewDishHandler(dishService, authService)
		ratingHandler := NewRatingHandler(ratingService, authService)
		profileHandler := NewProfileHandler(profileService, authService)

		// Register routes
		authHandler.RegisterRoutes(v1)
		guestHandler.RegisterRoutes(v1)
		mealHandler.RegisterRoutes(v1)
		logHandler.RegisterRoutes(v1)
		dishHandler.RegisterRoutes(v1)
		ratingHandler.RegisterRoutes(v1)
		profileHandler.RegisterRoutes(v1)
	}
}
