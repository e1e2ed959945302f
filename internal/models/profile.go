package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserProfile holds the body stats and display data captured during
// onboarding or editing.
type UserProfile struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	FirstName       *string    `gorm:"size:100" json:"first_name,omitempty"`
	LastName        *string    `gorm:"size:100" json:"last_name,omitempty"`
	AvatarURL       *string    `gorm:"size:500" json:"avatar_url,omitempty"`
	DateOfBirth     *time.Time `gorm:"type:date" json:"date_of_birth,omitempty"`
	Gender          *string    `gorm:"size:20" json:"gender,omitempty"`
	HeightCm        *float64   `json:"height_cm,omitempty"`
	CurrentWeightKg *float64   `json:"current_weight_kg,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

func (p *UserProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// BodyMeasurement is an append-only weight/height history point.
type BodyMeasurement struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	HeightCm   *float64  `json:"height_cm,omitempty"`
	WeightKg   *float64  `json:"weight_kg,omitempty"`
	MeasuredAt time.Time `json:"measured_at"`
	CreatedAt  time.Time `json:"created_at"`
}

func (BodyMeasurement) TableName() string {
	return "body_measurements"
}

func (m *BodyMeasurement) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
