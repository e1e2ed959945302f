package service

import "errors"

// Sentinel errors returned by the services. Handlers map them onto
// HTTP statuses; ownership violations reuse the not-found errors so
// callers cannot probe for other users' data.
var (
	// Not found.
	ErrDishNotFound      = errors.New("dish not found")
	ErrMealNotFound      = errors.New("meal not found")
	ErrMealEntryNotFound = errors.New("meal dish not found")
	ErrLogNotFound       = errors.New("daily log not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrGuestNotFound     = errors.New("guest user not found")
	ErrSessionNotFound   = errors.New("guest session not found")
	ErrRatingNotFound    = errors.New("rating not found")
	ErrProfileNotFound   = errors.New("profile not found")

	// Conflict.
	ErrEmailExists  = errors.New("email already exists")
	ErrRatingExists = errors.New("dish already rated")

	// Bad request.
	ErrInvalidServings   = errors.New("servings must be positive")
	ErrInvalidDate       = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidMealType   = errors.New("invalid meal type")
	ErrInvalidCode       = errors.New("invalid verification code")
	ErrCodeExpired       = errors.New("verification code expired")
	ErrCodeConsumed      = errors.New("email already verified")
	ErrAlreadyRegistered = errors.New("user is already registered")

	// Unauthorized.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrSessionExpired     = errors.New("guest session expired")
)
