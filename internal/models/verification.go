package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmailVerification binds a user and a target email to a short-lived
// 6-digit code. At most one unconsumed row exists per user: issuing a
// new code deletes any earlier one.
type EmailVerification struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Email            string     `gorm:"size:255;not null;index" json:"email"`
	VerificationCode string     `gorm:"size:6;not null" json:"-"`
	ExpiresAt        time.Time  `gorm:"not null" json:"expires_at"`
	IsVerified       bool       `gorm:"not null;default:false" json:"is_verified"`
	VerifiedAt       *time.Time `json:"verified_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (EmailVerification) TableName() string {
	return "email_verifications"
}

func (v *EmailVerification) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
