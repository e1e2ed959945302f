package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Goals stored on user_settings.goal.
const (
	GoalLoseWeight     = "lose_weight"
	GoalMaintainWeight = "maintain_weight"
	GoalGainWeight     = "gain_weight"
)

// Activity levels stored on user_settings.activity_level.
const (
	ActivitySedentary  = "sedentary"
	ActivityLight      = "light"
	ActivityModerate   = "moderate"
	ActivityActive     = "active"
	ActivityVeryActive = "very_active"
)

// UserSettings holds per-user goals and daily targets.
type UserSettings struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID               uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Goal                 string    `gorm:"size:30;not null;default:'maintain_weight'" json:"goal"`
	ActivityLevel        string    `gorm:"size:30;not null;default:'moderate'" json:"activity_level"`
	TargetWeightKg       *float64  `json:"target_weight_kg,omitempty"`
	TargetCalories       *int      `json:"target_calories,omitempty"`
	TargetProteinG       *float64  `json:"target_protein_g,omitempty"`
	TargetCarbsG         *float64  `json:"target_carbs_g,omitempty"`
	TargetFatsG          *float64  `json:"target_fats_g,omitempty"`
	MeasurementSystem    string    `gorm:"size:10;not null;default:'metric'" json:"measurement_system"`
	NotificationsEnabled bool      `gorm:"not null;default:true" json:"notifications_enabled"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func (UserSettings) TableName() string {
	return "user_settings"
}

func (s *UserSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// UserCalorieTarget is a dated snapshot of the targets in force on a
// given day, kept so history is not rewritten when settings change.
type UserCalorieTarget struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	TargetDate     time.Time `gorm:"type:date;not null" json:"target_date"`
	TargetCalories int       `gorm:"not null" json:"target_calories"`
	TargetProteinG *float64  `json:"target_protein_g,omitempty"`
	TargetCarbsG   *float64  `json:"target_carbs_g,omitempty"`
	TargetFatsG    *float64  `json:"target_fats_g,omitempty"`
	Notes          *string   `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func (UserCalorieTarget) TableName() string {
	return "user_calorie_targets"
}

func (t *UserCalorieTarget) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
