package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Auth provider tags stored on users.auth_provider.
const (
	AuthProviderEmail    = "email"
	AuthProviderGuest    = "guest"
	AuthProviderGoogle   = "google"
	AuthProviderApple    = "apple"
	AuthProviderFacebook = "facebook"
)

// User is an account row. Guest accounts carry the guest-only fields
// (token, device info, expiry); converting to a registered account
// clears all of them and flips IsGuest.
type User struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email         *string    `gorm:"size:255;uniqueIndex" json:"email"`
	PasswordHash  *string    `gorm:"size:255" json:"-"`
	AuthProvider  string     `gorm:"size:20;not null;default:'email'" json:"auth_provider"`
	IsGuest       bool       `gorm:"not null;default:false" json:"is_guest"`
	IsActive      bool       `gorm:"not null;default:true" json:"is_active"`
	EmailVerified bool       `gorm:"not null;default:false" json:"email_verified"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`

	// Guest session fields, null once the account is registered.
	GuestToken     *string    `gorm:"size:255;uniqueIndex" json:"-"`
	DeviceID       *string    `gorm:"size:255" json:"-"`
	DeviceType     *string    `gorm:"size:100" json:"-"`
	IPAddress      *string    `gorm:"size:45" json:"-"`
	UserAgent      *string    `gorm:"type:text" json:"-"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	LastActivityAt *time.Time `json:"last_activity_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	DietTags []DietTag `gorm:"many2many:user_diet_preferences" json:"diet_tags,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// OAuthAccount links a user to an external identity, keyed by
// (provider, provider_user_id).
type OAuthAccount struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Provider       string    `gorm:"size:20;not null;uniqueIndex:idx_oauth_provider_user" json:"provider"`
	ProviderUserID string    `gorm:"size:255;not null;uniqueIndex:idx_oauth_provider_user" json:"provider_user_id"`
	ProviderEmail  *string   `gorm:"size:255" json:"provider_email,omitempty"`
	AccessToken    *string   `gorm:"type:text" json:"-"`
	RefreshToken   *string   `gorm:"type:text" json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (OAuthAccount) TableName() string {
	return "user_oauth_accounts"
}

func (a *OAuthAccount) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
