package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/snapcal/backend/internal/models"
	"github.com/snapcal/backend/internal/types"
)

// GuestService manages anonymous identities: creation with onboarding
// data, per-request validation, direct conversion to a full account,
// and the periodic expiry sweep.
type GuestService struct {
	db             *gorm.DB
	tokens         tokenIssuer
	expirationDays int
}

var _ IGuestService = (*GuestService)(nil)

// NewGuestService creates a new GuestService instance.
func NewGuestService(db *gorm.DB, jwtSecret, jwtRefreshSecret string, expirationDays int) *GuestService {
	if expirationDays <= 0 {
		expirationDays = 30
	}
	return &GuestService{
		db:             db,
		tokens:         tokenIssuer{secret: jwtSecret, refreshSecret: jwtRefreshSecret},
		expirationDays: expirationDays,
	}
}

// CreateGuestSession creates an anonymous user plus its onboarding
// profile and settings snapshot, and issues a signed token bound to
// the new user id.
func (s *GuestService) CreateGuestSession(ctx context.Context, req *types.CreateGuestSessionRequest, ipAddress, userAgent string) (*types.GuestSessionResponse, error) {
	var dateOfBirth *time.Time
	if req.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			return nil, ErrInvalidDate
		}
		dateOfBirth = &dob
	}

	guestToken := uuid.NewString()
	now := time.Now()
	expiresAt := now.AddDate(0, 0, s.expirationDays)

	user := models.User{
		AuthProvider:   models.AuthProviderGuest,
		IsGuest:        true,
		IsActive:       true,
		GuestToken:     &guestToken,
		DeviceID:       req.DeviceID,
		DeviceType:     req.DeviceType,
		ExpiresAt:      &expiresAt,
		LastActivityAt: &now,
	}
	if ipAddress != "" {
		user.IPAddress = &ipAddress
	}
	if userAgent != "" {
		user.UserAgent = &userAgent
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		profile := models.UserProfile{
			UserID:          user.ID,
			DateOfBirth:     dateOfBirth,
			Gender:          req.Gender,
			HeightCm:        req.HeightCm,
			CurrentWeightKg: req.CurrentWeightKg,
		}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}

		if req.HeightCm != nil || req.CurrentWeightKg != nil {
			measurement := models.BodyMeasurement{
				UserID:     user.ID,
				HeightCm:   req.HeightCm,
				WeightKg:   req.CurrentWeightKg,
				MeasuredAt: now,
			}
			if err := tx.Create(&measurement).Error; err != nil {
				return err
			}
		}

		settings := models.UserSettings{
			UserID:            user.ID,
			Goal:              models.GoalMaintainWeight,
			ActivityLevel:     models.ActivityModerate,
			TargetWeightKg:    req.TargetWeightKg,
			TargetCalories:    req.TargetCalories,
			TargetProteinG:    req.TargetProteinG,
			TargetCarbsG:      req.TargetCarbsG,
			TargetFatsG:       req.TargetFatsG,
			MeasurementSystem: "metric",
		}
		if req.Goal != nil {
			settings.Goal = *req.Goal
		}
		if req.ActivityLevel != nil {
			settings.ActivityLevel = *req.ActivityLevel
		}
		if req.MeasurementSystem != nil {
			settings.MeasurementSystem = *req.MeasurementSystem
		}
		if err := tx.Create(&settings).Error; err != nil {
			return err
		}

		if req.TargetCalories != nil {
			notes := "Initial onboarding targets"
			target := models.UserCalorieTarget{
				UserID:         user.ID,
				TargetDate:     now,
				TargetCalories: *req.TargetCalories,
				TargetProteinG: req.TargetProteinG,
				TargetCarbsG:   req.TargetCarbsG,
				TargetFatsG:    req.TargetFatsG,
				Notes:          &notes,
			}
			if err := tx.Create(&target).Error; err != nil {
				return err
			}
		}

		if len(req.DietTagIDs) > 0 {
			var tags []models.DietTag
			if err := tx.Where("id IN ?", req.DietTagIDs).Find(&tags).Error; err != nil {
				return err
			}
			if len(tags) > 0 {
				if err := tx.Model(&user).Association("DietTags").Append(tags); err != nil {
					return err
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	accessToken, err := s.tokens.sign(&user, s.tokens.secret, accessTokenTTL)
	if err != nil {
		return nil, err
	}

	return &types.GuestSessionResponse{
		AccessToken: accessToken,
		GuestToken:  guestToken,
		TokenType:   "Bearer",
		UserID:      user.ID,
		ExpiresAt:   expiresAt,
	}, nil
}

// ValidateGuestSession is the authorization check run on every
// guest-authenticated request: it resolves the token, rejects expired
// sessions, and refreshes last_activity_at.
func (s *GuestService) ValidateGuestSession(ctx context.Context, guestToken string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("guest_token = ? AND is_guest = ? AND is_active = ?", guestToken, true, true).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if user.ExpiresAt != nil && user.ExpiresAt.Before(time.Now()) {
		return nil, ErrSessionExpired
	}

	now := time.Now()
	if err := s.db.WithContext(ctx).Model(&user).Update("last_activity_at", now).Error; err != nil {
		return nil, err
	}
	user.LastActivityAt = &now

	return &user, nil
}

// ConvertGuestToUser is the direct conversion path: no email
// verification step, the identity is mutated in place and fresh tokens
// are issued.
func (s *GuestService) ConvertGuestToUser(ctx context.Context, userID uuid.UUID, email, password string) (*types.AuthResponse, error) {
	db := s.db.WithContext(ctx)

	var user models.User
	if err := db.Where("id = ? AND is_guest = ?", userID, true).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}

	var count int64
	if err := db.Model(&models.User{}).Where("email = ? AND id <> ?", email, userID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashStr := string(hash)

	if err := db.Model(&user).Updates(map[string]interface{}{
		"email":          email,
		"password_hash":  hashStr,
		"auth_provider":  models.AuthProviderEmail,
		"is_guest":       false,
		"email_verified": false,
		// Registered accounts carry no guest session data.
		"guest_token":      nil,
		"device_id":        nil,
		"device_type":      nil,
		"ip_address":       nil,
		"user_agent":       nil,
		"expires_at":       nil,
		"last_activity_at": nil,
	}).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	user.Email = &email
	user.IsGuest = false

	return s.tokens.issueTokens(&user)
}

// CleanupExpiredSessions deactivates every still-guest identity whose
// expiry has passed. Rows are never deleted so logged history
// survives. Returns the number of identities deactivated.
func (s *GuestService) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("is_guest = ? AND is_active = ? AND expires_at < ?", true, true, time.Now()).
		Update("is_active", false)
	return res.RowsAffected, res.Error
}
