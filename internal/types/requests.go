package types

// RegisterRequest creates a full account directly.
type RegisterRequest struct {
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required,min=8"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

// LoginRequest authenticates an email-backed account.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest exchanges a refresh token for fresh tokens.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// OAuthUserInfo is the normalized record the OAuth collaborator
// produces after a successful external handshake.
type OAuthUserInfo struct {
	Provider       string  `json:"provider" binding:"required"`
	ProviderUserID string  `json:"provider_user_id" binding:"required"`
	Email          *string `json:"email"`
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	AvatarURL      *string `json:"avatar_url"`
	AccessToken    string  `json:"access_token"`
	RefreshToken   string  `json:"refresh_token"`
}

// CreateGuestSessionRequest carries the anonymous onboarding payload.
type CreateGuestSessionRequest struct {
	DeviceID          *string  `json:"device_id"`
	DeviceType        *string  `json:"device_type"`
	DateOfBirth       *string  `json:"date_of_birth"`
	Gender            *string  `json:"gender"`
	HeightCm          *float64 `json:"height_cm"`
	CurrentWeightKg   *float64 `json:"current_weight_kg"`
	Goal              *string  `json:"goal"`
	ActivityLevel     *string  `json:"activity_level"`
	TargetWeightKg    *float64 `json:"target_weight_kg"`
	TargetCalories    *int     `json:"target_calories"`
	TargetProteinG    *float64 `json:"target_protein_g"`
	TargetCarbsG      *float64 `json:"target_carbs_g"`
	TargetFatsG       *float64 `json:"target_fats_g"`
	MeasurementSystem *string  `json:"measurement_system"`
	DietTagIDs        []string `json:"diet_tag_ids"`
}

// ConvertGuestRequest upgrades a guest identity to an email-backed
// account, directly or via the verification handshake.
type ConvertGuestRequest struct {
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required,min=8"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	AvatarURL *string `json:"avatar_url"`
}

// VerifyEmailRequest consumes a verification challenge.
type VerifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6"`
}

// AddDishToMealRequest logs a dish into a meal slot.
type AddDishToMealRequest struct {
	DishID   string  `json:"dish_id" binding:"required,uuid"`
	MealType string  `json:"meal_type" binding:"required,oneof=breakfast lunch dinner"`
	Date     string  `json:"date" binding:"required"`
	Servings float64 `json:"servings" binding:"required"`
	Notes    *string `json:"notes"`
}

// UpdateDailyLogRequest patches the authoritative daily-log fields.
/// The derived consumed-* totals have no counterpart here on purpose:
// they cannot be set through any public operation.
type UpdateDailyLogRequest struct {
	CaloriesBurned    *int     `json:"calories_burned"`
	WaterIntakeLiters *float64 `json:"water_intake_liters"`
	Notes             *string  `json:"notes"`
}

// CreateDishRequest adds a dish to the catalog.
type CreateDishRequest struct {
	Name            string   `json:"name" binding:"required,max=255"`
	Description     *string  `json:"description"`
	ImageURL        *string  `json:"image_url"`
	PrepTimeMinutes *int     `json:"prep_time_minutes"`
	CookTimeMinutes *int     `json:"cook_time_minutes"`
	Servings        *int     `json:"servings"`
	Calories        int      `json:"calories" binding:"required,min=0"`
	ProteinG        float64  `json:"protein_g" binding:"min=0"`
	CarbsG          float64  `json:"carbs_g" binding:"min=0"`
	FatsG           float64  `json:"fats_g" binding:"min=0"`
	FiberG          *float64 `json:"fiber_g"`
	SugarG          *float64 `json:"sugar_g"`
	SodiumMg        *float64 `json:"sodium_mg"`
	CategoryIDs     []string `json:"category_ids"`
	DietTagIDs      []string `json:"diet_tag_ids"`
}

// UpdateDishRequest patches dish catalog fields.
type UpdateDishRequest struct {
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	ImageURL        *string  `json:"image_url"`
	PrepTimeMinutes *int     `json:"prep_time_minutes"`
	CookTimeMinutes *int     `json:"cook_time_minutes"`
	Calories        *int     `json:"calories"`
	ProteinG        *float64 `json:"protein_g"`
	CarbsG          *float64 `json:"carbs_g"`
	FatsG           *float64 `json:"fats_g"`
}

// DishFilter narrows catalog listings.
type DishFilter struct {
	CategoryID *string
	DietTagID  *string
	Search     string
}

// CreateRatingRequest rates a dish once per user.
type CreateRatingRequest struct {
	Rating  int     `json:"rating" binding:"required,min=1,max=5"`
	Comment *string `json:"comment"`
}

// UpdateRatingRequest edits the caller's existing rating.
type UpdateRatingRequest struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment"`
}

// UpdateProfileRequest patches profile fields.
type UpdateProfileRequest struct {
	FirstName       *string  `json:"first_name"`
	LastName        *string  `json:"last_name"`
	AvatarURL       *string  `json:"avatar_url"`
	DateOfBirth     *string  `json:"date_of_birth"`
	Gender          *string  `json:"gender"`
	HeightCm        *float64 `json:"height_cm"`
	CurrentWeightKg *float64 `json:"current_weight_kg"`
}

// UpdateSettingsRequest patches goal and target fields.
type UpdateSettingsRequest struct {
	Goal                 *string  `json:"goal" binding:"omitempty,oneof=lose_weight maintain_weight gain_weight"`
	ActivityLevel        *string  `json:"activity_level" binding:"omitempty,oneof=sedentary light moderate active very_active"`
	TargetWeightKg       *float64 `json:"target_weight_kg"`
	TargetCalories       *int     `json:"target_calories"`
	TargetProteinG       *float64 `json:"target_protein_g"`
	TargetCarbsG         *float64 `json:"target_carbs_g"`
	TargetFatsG          *float64 `json:"target_fats_g"`
	MeasurementSystem    *string  `json:"measurement_system" binding:"omitempty,oneof=metric imperial"`
	NotificationsEnabled *bool    `json:"notifications_enabled"`
}

// CreateBodyMeasurementRequest appends a measurement history point.
type CreateBodyMeasurementRequest struct {
	HeightCm *float64 `json:"height_cm"`
	WeightKg *float64 `json:"weight_kg"`
}
