package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/snapcal/backend/internal/models"
	"github.com/snapcal/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*types.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*types.AuthResponse, error)
	HandleOAuthLogin(ctx context.Context, info *types.OAuthUserInfo) (*types.AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*types.AuthResponse, error)
	ValidateToken(tokenString string) (*types.TokenClaims, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
	RequestGuestConversion(ctx context.Context, userID uuid.UUID, req *types.ConvertGuestRequest) (*types.ConversionPendingResponse, error)
	VerifyEmail(ctx context.Context, email, code string) (*types.AuthResponse, error)
}

// IGuestService defines the interface for anonymous session operations
type IGuestService interface {
	CreateGuestSession(ctx context.Context, req *types.CreateGuestSessionRequest, ipAddress, userAgent string) (*types.GuestSessionResponse, error)
	ValidateGuestSession(ctx context.Context, guestToken string) (*models.User, error)
	ConvertGuestToUser(ctx context.Context, userID uuid.UUID, email, password string) (*types.AuthResponse, error)
	CleanupExpiredSessions(ctx context.Context) (int64, error)
}

// IMealService defines the interface for meal logging operations
type IMealService interface {
	AddDishToMeal(ctx context.Context, userID, dishID uuid.UUID, mealType string, date time.Time, servings float64, notes *string) (*models.MealDish, *models.Meal, error)
	RemoveDishFromMeal(ctx context.Context, userID, entryID uuid.UUID) error
	GetMeal(ctx context.Context, userID, mealID uuid.UUID) (*models.Meal, error)
}

// ILogService defines the interface for daily log operations
type ILogService interface {
	FindOrCreateDailyLog(ctx context.Context, userID uuid.UUID, date time.Time) (*models.DailyLog, error)
	RecalculateLogTotals(ctx context.Context, logID uuid.UUID) error
	GetDailyLog(ctx context.Context, userID uuid.UUID, date time.Time) (*models.DailyLog, error)
	GetLogsByDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]models.DailyLog, error)
	UpdateDailyLog(ctx context.Context, userID uuid.UUID, date time.Time, req *types.UpdateDailyLogRequest) (*models.DailyLog, error)
}

// IDishService defines the interface for dish catalog operations
type IDishService interface {
	CreateDish(ctx context.Context, req *types.CreateDishRequest) (*models.Dish, error)
	GetDish(ctx context.Context, id uuid.UUID) (*models.Dish, error)
	ListDishes(ctx context.Context, filter *types.DishFilter) ([]models.Dish, error)
	UpdateDish(ctx context.Context, id uuid.UUID, req *types.UpdateDishRequest) (*models.Dish, error)
	DeactivateDish(ctx context.Context, id uuid.UUID) error
	ListCategories(ctx context.Context) ([]models.DishCategory, error)
}

// IRatingService defines the interface for dish rating operations
type IRatingService interface {
	RateDish(ctx context.Context, userID, dishID uuid.UUID, req *types.CreateRatingRequest) (*models.DishRating, error)
	UpdateRating(ctx context.Context, userID, dishID uuid.UUID, req *types.UpdateRatingRequest) (*models.DishRating, error)
	DeleteRating(ctx context.Context, userID, dishID uuid.UUID) error
	GetDishRatings(ctx context.Context, dishID uuid.UUID) ([]models.DishRating, error)
}

// IProfileService defines the interface for user profile operations
type IProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.UserProfile, error)
	AddBodyMeasurement(ctx context.Context, userID uuid.UUID, req *types.CreateBodyMeasurementRequest) (*models.BodyMeasurement, error)
	GetBodyMeasurements(ctx context.Context, userID uuid.UUID) ([]models.BodyMeasurement, error)
	GetSettings(ctx context.Context, userID uuid.UUID) (*models.UserSettings, error)
	UpdateSettings(ctx context.Context, userID uuid.UUID, req *types.UpdateSettingsRequest) (*models.UserSettings, error)
	SetDietPreferences(ctx context.Context, userID uuid.UUID, tagIDs []string) ([]models.DietTag, error)
	ListDietTags(ctx context.Context) ([]models.DietTag, error)
}

// IEmailService defines the interface for email operations
type IEmailService interface {
	SendEmail(to, subject, body string) error
	SendVerificationCode(to, code string) error
	SendWelcomeEmail(to string, firstName *string) error
}
