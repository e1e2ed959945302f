package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/snapcal/backend/internal/models"
	"github.com/snapcal/backend/internal/types"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

// tokenIssuer signs and parses the HS256 tokens shared by the auth and
// guest services.
type tokenIssuer struct {
	secret        string
	refreshSecret string
}

func (ti tokenIssuer) sign(user *models.User, secret string, ttl time.Duration) (string, error) {
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID:  user.ID,
		IsGuest: user.IsGuest,
	}
	if user.Email != nil {
		claims.Email = *user.Email
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// issueTokens builds the access/refresh pair returned from every
// authentication path.
func (ti tokenIssuer) issueTokens(user *models.User) (*types.AuthResponse, error) {
	access, err := ti.sign(user, ti.secret, accessTokenTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := ti.sign(user, ti.refreshSecret, refreshTokenTTL)
	if err != nil {
		return nil, err
	}

	return &types.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int(refreshTokenTTL.Seconds()),
		User: types.AuthUser{
			ID:      user.ID,
			Email:   user.Email,
			IsGuest: user.IsGuest,
		},
	}, nil
}

func (ti tokenIssuer) parse(tokenString, secret string) (*types.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &types.TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*types.TokenClaims)
	if !ok || !token.Valid || claims.UserID == uuid.Nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
