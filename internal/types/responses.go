package types

import (
	"time"

	"github.com/google/uuid"
)

// AuthUser is the user summary embedded in auth responses.
type AuthUser struct {
	ID      uuid.UUID `json:"id"`
	Email   *string   `json:"email"`
	IsGuest bool      `json:"is_guest"`
}

// AuthResponse carries a fresh token pair.
type AuthResponse struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	TokenType    string   `json:"token_type"`
	ExpiresIn    int      `json:"expires_in"`
	User         AuthUser `json:"user"`
}

// GuestSessionResponse is returned when an anonymous session starts.
type GuestSessionResponse struct {
	AccessToken string    `json:"access_token"`
	GuestToken  string    `json:"guest_token"`
	TokenType   string    `json:"token_type"`
	UserID      uuid.UUID `json:"user_id"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// ConversionPendingResponse acknowledges a verified-conversion request
// while the emailed code is outstanding.
type ConversionPendingResponse struct {
	Message   string    `json:"message"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}
