package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/snapcal/backend/internal/models"
	"github.com/snapcal/backend/internal/types"
)

// ProfileService manages profiles, body measurement history, settings
// and diet preferences.
type ProfileService struct {
	db *gorm.DB
}

var _ IProfileService = (*ProfileService)(nil)

// NewProfileService creates a new ProfileService instance.
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// GetProfile resolves a user's profile.
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile patches profile fields. A weight or height change also
// appends a body measurement so history stays continuous.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.UserProfile, error) {
	var profile models.UserProfile

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProfileNotFound
			}
			return err
		}

		updates := map[string]interface{}{}
		if req.FirstName != nil {
			updates["first_name"] = *req.FirstName
		}
		if req.LastName != nil {
			updates["last_name"] = *req.LastName
		}
		if req.AvatarURL != nil {
			updates["avatar_url"] = *req.AvatarURL
		}
		if req.Gender != nil {
			updates["gender"] = *req.Gender
		}
		if req.DateOfBirth != nil {
			dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
			if err != nil {
				return ErrInvalidDate
			}
			updates["date_of_birth"] = dob
		}
		if req.HeightCm != nil {
			updates["height_cm"] = *req.HeightCm
		}
		if req.CurrentWeightKg != nil {
			updates["current_weight_kg"] = *req.CurrentWeightKg
		}
		if len(updates) > 0 {
			if err := tx.Model(&profile).Updates(updates).Error; err != nil {
				return err
			}
		}

		if req.HeightCm != nil || req.CurrentWeightKg != nil {
			measurement := models.BodyMeasurement{
				UserID:     userID,
				HeightCm:   req.HeightCm,
				WeightKg:   req.CurrentWeightKg,
				MeasuredAt: time.Now(),
			}
			if err := tx.Create(&measurement).Error; err != nil {
				return err
			}
		}

		return tx.Where("user_id = ?", userID).First(&profile).Error
	})
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

// AddBodyMeasurement appends a measurement history point and mirrors
// the latest values onto the profile.
func (s *ProfileService) AddBodyMeasurement(ctx context.Context, userID uuid.UUID, req *types.CreateBodyMeasurementRequest) (*models.BodyMeasurement, error) {
	measurement := models.BodyMeasurement{
		UserID:     userID,
		HeightCm:   req.HeightCm,
		WeightKg:   req.WeightKg,
		MeasuredAt: time.Now(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&measurement).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if req.HeightCm != nil {
			updates["height_cm"] = *req.HeightCm
		}
		if req.WeightKg != nil {
			updates["current_weight_kg"] = *req.WeightKg
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&models.UserProfile{}).Where("user_id = ?", userID).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	return &measurement, nil
}

// GetBodyMeasurements returns a user's measurement history, newest
// first.
func (s *ProfileService) GetBodyMeasurements(ctx context.Context, userID uuid.UUID) ([]models.BodyMeasurement, error) {
	var measurements []models.BodyMeasurement
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("measured_at DESC").
		Find(&measurements).Error
	if err != nil {
		return nil, err
	}
	return measurements, nil
}

// GetSettings resolves a user's settings.
func (s *ProfileService) GetSettings(ctx context.Context, userID uuid.UUID) (*models.UserSettings, error) {
	var settings models.UserSettings
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&settings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &settings, nil
}

// UpdateSettings patches goal and target fields. A calorie-target
// change also records a dated target snapshot.
func (s *ProfileService) UpdateSettings(ctx context.Context, userID uuid.UUID, req *types.UpdateSettingsRequest) (*models.UserSettings, error) {
	var settings models.UserSettings

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).First(&settings).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProfileNotFound
			}
			return err
		}

		updates := map[string]interface{}{}
		if req.Goal != nil {
			updates["goal"] = *req.Goal
		}
		if req.ActivityLevel != nil {
			updates["activity_level"] = *req.ActivityLevel
		}
		if req.TargetWeightKg != nil {
			updates["target_weight_kg"] = *req.TargetWeightKg
		}
		if req.TargetCalories != nil {
			updates["target_calories"] = *req.TargetCalories
		}
		if req.TargetProteinG != nil {
			updates["target_protein_g"] = *req.TargetProteinG
		}
		if req.TargetCarbsG != nil {
			updates["target_carbs_g"] = *req.TargetCarbsG
		}
		if req.TargetFatsG != nil {
			updates["target_fats_g"] = *req.TargetFatsG
		}
		if req.MeasurementSystem != nil {
			updates["measurement_system"] = *req.MeasurementSystem
		}
		if req.NotificationsEnabled != nil {
			updates["notifications_enabled"] = *req.NotificationsEnabled
		}
		if len(updates) > 0 {
			if err := tx.Model(&settings).Updates(updates).Error; err != nil {
				return err
			}
		}

		if req.TargetCalories != nil {
			target := models.UserCalorieTarget{
				UserID:         userID,
				TargetDate:     time.Now(),
				TargetCalories: *req.TargetCalories,
				TargetProteinG: req.TargetProteinG,
				TargetCarbsG:   req.TargetCarbsG,
				TargetFatsG:    req.TargetFatsG,
			}
			if err := tx.Create(&target).Error; err != nil {
				return err
			}
		}

		return tx.Where("user_id = ?", userID).First(&settings).Error
	})
	if err != nil {
		return nil, err
	}

	return &settings, nil
}

// SetDietPreferences replaces the user's diet tag selection.
func (s *ProfileService) SetDietPreferences(ctx context.Context, userID uuid.UUID, tagIDs []string) ([]models.DietTag, error) {
	db := s.db.WithContext(ctx)

	var user models.User
	if err := db.Where("id = ? AND is_active = ?", userID, true).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var tags []models.DietTag
	if len(tagIDs) > 0 {
		if err := db.Where("id IN ?", tagIDs).Find(&tags).Error; err != nil {
			return nil, err
		}
	}

	if err := db.Model(&user).Association("DietTags").Replace(tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// ListDietTags returns the diet tag catalog.
func (s *ProfileService) ListDietTags(ctx context.Context) ([]models.DietTag, error) {
	var tags []models.DietTag
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}
