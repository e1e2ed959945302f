package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/snapcal/backend/internal/models"
	"github.com/snapcal/backend/internal/types"
)

const verificationCodeTTL = 15 * time.Minute

// AuthService handles registration, login, OAuth, token refresh and
// the email-verified guest-conversion handshake.
type AuthService struct {
	db     *gorm.DB
	tokens tokenIssuer
	email  IEmailService
}

var _ IAuthService = (*AuthService)(nil)

// NewAuthService creates a new AuthService instance.
func NewAuthService(db *gorm.DB, jwtSecret, jwtRefreshSecret string, email IEmailService) *AuthService {
	return &AuthService{
		db:     db,
		tokens: tokenIssuer{secret: jwtSecret, refreshSecret: jwtRefreshSecret},
		email:  email,
	}
}

// Register creates an email-backed account with its profile and
// default settings.
func (s *AuthService) Register(ctx context.Context, req *types.RegisterRequest) (*types.AuthResponse, error) {
	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashStr := string(hash)

	user := models.User{
		Email:        &req.Email,
		PasswordHash: &hashStr,
		AuthProvider: models.AuthProviderEmail,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrEmailExists
			}
			return err
		}
		profile := models.UserProfile{
			UserID:    user.ID,
			FirstName: req.FirstName,
			LastName:  req.LastName,
		}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		settings := models.UserSettings{
			UserID:            user.ID,
			Goal:              models.GoalMaintainWeight,
			ActivityLevel:     models.ActivityModerate,
			MeasurementSystem: "metric",
		}
		return tx.Create(&settings).Error
	})
	if err != nil {
		return nil, err
	}

	return s.tokens.issueTokens(&user)
}

// Login authenticates an active email-backed account. Missing users
// and wrong passwords are reported identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (*types.AuthResponse, error) {
	db := s.db.WithContext(ctx)

	var user models.User
	if err := db.Where("email = ? AND is_active = ?", email, true).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if user.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	if err := db.Model(&user).Update("last_login_at", now).Error; err != nil {
		return nil, err
	}

	return s.tokens.issueTokens(&user)
}

// HandleOAuthLogin consumes the normalized record from the OAuth
// collaborator and finds or creates the local identity keyed on
// (provider, provider_user_id).
func (s *AuthService) HandleOAuthLogin(ctx context.Context, info *types.OAuthUserInfo) (*types.AuthResponse, error) {
	db := s.db.WithContext(ctx)

	var user models.User
	err := db.Transaction(func(tx *gorm.DB) error {
		var account models.OAuthAccount
		err := tx.Where("provider = ? AND provider_user_id = ?", info.Provider, info.ProviderUserID).First(&account).Error

		switch {
		case err == nil:
			if err := tx.First(&user, "id = ?", account.UserID).Error; err != nil {
				return err
			}
			return tx.Model(&account).Updates(map[string]interface{}{
				"access_token":  info.AccessToken,
				"refresh_token": info.RefreshToken,
			}).Error

		case errors.Is(err, gorm.ErrRecordNotFound):
			// New OAuth account. Attach to an existing user with the
			// same email when there is one.
			found := false
			if info.Email != nil {
				if err := tx.Where("email = ?", *info.Email).First(&user).Error; err == nil {
					found = true
				} else if !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
			}

			if !found {
				user = models.User{
					Email:         info.Email,
					AuthProvider:  info.Provider,
					EmailVerified: info.Email != nil,
				}
				if err := tx.Create(&user).Error; err != nil {
					return err
				}
				profile := models.UserProfile{
					UserID:    user.ID,
					FirstName: info.FirstName,
					LastName:  info.LastName,
					AvatarURL: info.AvatarURL,
				}
				if err := tx.Create(&profile).Error; err != nil {
					return err
				}
				settings := models.UserSettings{
					UserID:            user.ID,
					Goal:              models.GoalMaintainWeight,
					ActivityLevel:     models.ActivityModerate,
					MeasurementSystem: "metric",
				}
				if err := tx.Create(&settings).Error; err != nil {
					return err
				}
			}

			account = models.OAuthAccount{
				UserID:         user.ID,
				Provider:       info.Provider,
				ProviderUserID: info.ProviderUserID,
				ProviderEmail:  info.Email,
				AccessToken:    &info.AccessToken,
				RefreshToken:   &info.RefreshToken,
			}
			return tx.Create(&account).Error

		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := db.Model(&user).Update("last_login_at", now).Error; err != nil {
		return nil, err
	}

	return s.tokens.issueTokens(&user)
}

// RefreshToken exchanges a valid refresh token for a fresh pair.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*types.AuthResponse, error) {
	claims, err := s.tokens.parse(refreshToken, s.tokens.refreshSecret)
	if err != nil {
		return nil, ErrInvalidToken
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ? AND is_active = ?", claims.UserID, true).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	return s.tokens.issueTokens(&user)
}

// ValidateToken parses an access token for the auth middleware.
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	return s.tokens.parse(tokenString, s.tokens.secret)
}

// GetUserByID resolves an active user.
func (s *AuthService) GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ? AND is_active = ?", userID, true).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// RequestGuestConversion starts the email-verified conversion
/// handshake: it validates the guest and the target email like the
// direct path, then stashes the hashed password and pending email on
// the still-guest identity, replaces any outstanding challenge with a
// fresh 6-digit code, and dispatches the code by mail.
func (s *AuthService) RequestGuestConversion(ctx context.Context, userID uuid.UUID, req *types.ConvertGuestRequest) (*types.ConversionPendingResponse, error) {
	db := s.db.WithContext(ctx)

	var user models.User
	if err := db.Where("id = ? AND is_guest = ?", userID, true).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}

	var count int64
	if err := db.Model(&models.User{}).Where("email = ? AND id <> ?", req.Email, userID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashStr := string(hash)

	code := fmt.Sprintf("%06d", 100000+rand.Intn(900000))
	expiresAt := time.Now().Add(verificationCodeTTL)

	err = db.Transaction(func(tx *gorm.DB) error {
		// One active challenge per user: a new request discards any
		// prior unconsumed code.
		if err := tx.Where("user_id = ?", userID).Delete(&models.EmailVerification{}).Error; err != nil {
			return err
		}

		verification := models.EmailVerification{
			UserID:           userID,
			Email:            req.Email,
			VerificationCode: code,
			ExpiresAt:        expiresAt,
		}
		if err := tx.Create(&verification).Error; err != nil {
			return err
		}

		// Stash credentials on the identity without flipping its
		// guest flag; only a consumed challenge does that.
		if err := tx.Model(&user).Updates(map[string]interface{}{
			"email":         req.Email,
			"password_hash": hashStr,
		}).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrEmailExists
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
		if len(updates) > 0 {
			if err := tx.Model(&models.UserProfile{}).Where("user_id = ?", userID).Updates(updates).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Mail delivery is fire-and-forget: failures are logged, and the
	// pending conversion stands so the code can be re-requested.
	if err := s.email.SendVerificationCode(req.Email, code); err != nil {
		log.Printf("failed to send verification code to %s: %v", req.Email, err)
	}

	return &types.ConversionPendingResponse{
		Message:   "Verification code sent to email",
		Email:     req.Email,
		ExpiresAt: expiresAt,
	}, nil
}

// VerifyEmail consumes a verification challenge. On success the owning
// identity becomes a registered account: guest-only fields are cleared,
// the email is marked verified, and fresh tokens are issued.
func (s *AuthService) VerifyEmail(ctx context.Context, email, code string) (*types.AuthResponse, error) {
	db := s.db.WithContext(ctx)

	var user models.User
	err := db.Transaction(func(tx *gorm.DB) error {
		var verification models.EmailVerification
		err := tx.Where("email = ? AND verification_code = ?", email, code).First(&verification).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidCode
			}
			return err
		}

		if verification.IsVerified {
			return ErrCodeConsumed
		}
		if verification.ExpiresAt.Before(time.Now()) {
			return ErrCodeExpired
		}

		if err := tx.First(&user, "id = ?", verification.UserID).Error; err != nil {
			return err
		}
		if !user.IsGuest {
			return ErrAlreadyRegistered
		}

		now := time.Now()
		if err := tx.Model(&verification).Updates(map[string]interface{}{
			"is_verified": true,
			"verified_at": now,
		}).Error; err != nil {
			return err
		}

		return tx.Model(&user).Updates(map[string]interface{}{
			"auth_provider":    models.AuthProviderEmail,
			"is_guest":         false,
			"email_verified":   true,
			"guest_token":      nil,
			"device_id":        nil,
			"device_type":      nil,
			"ip_address":       nil,
			"user_agent":       nil,
			"expires_at":       nil,
			"last_activity_at": nil,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	user.IsGuest = false
	user.Email = &email

	var profile models.UserProfile
	var firstName *string
	if err := db.Where("user_id = ?", user.ID).First(&profile).Error; err == nil {
		firstName = profile.FirstName
	}
	if err := s.email.SendWelcomeEmail(email, firstName); err != nil {
		log.Printf("failed to send welcome email to %s: %v", email, err)
	}

	return s.tokens.issueTokens(&user)
}
