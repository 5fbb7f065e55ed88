package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/KrrishNichanii/Todo-Backend/internal/model"
)

// RefreshTTL is the fixed lifetime of refresh tokens. Access token
// lifetime is configurable; refresh tokens are always 10 days.
const RefreshTTL = 10 * 24 * time.Hour

// ErrInvalidToken indicates a token that failed signature, expiry or
// structural validation.
var ErrInvalidToken = errors.New("invalid token")

// TokenConfig carries the signing secret and access token lifetime.
// It is passed explicitly so tests can run with distinct secrets.
type TokenConfig struct {
	Secret    string
	AccessTTL time.Duration
}

// AccessClaims are embedded in access tokens: identity plus role,
// enough for the middleware to resolve and gate the principal.
type AccessClaims struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// RefreshClaims carry only the user id.
type RefreshClaims struct {
	jwt.RegisteredClaims
}

// NewAccessToken issues a short-lived signed access token for the user.
func (c TokenConfig) NewAccessToken(u *model.User) (string, error) {
	now := time.Now()
	claims := &AccessClaims{
		Email:    u.Email,
		Username: u.Username,
		Role:     string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.AccessTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(c.Secret))
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

// NewRefreshToken issues a long-lived signed refresh token holding only
// the user id.
func (c TokenConfig) NewRefreshToken(u *model.User) (string, error) {
	now := time.Now()
	claims := &RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(RefreshTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(c.Secret))
	if err != nil {
		return "", fmt.Errorf("sign refresh token: %w", err)
	}
	return signed, nil
}

// ParseAccessToken verifies signature and expiry and returns the claims.
func (c TokenConfig) ParseAccessToken(raw string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := c.parse(raw, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// ParseRefreshToken verifies signature and expiry and returns the claims.
func (c TokenConfig) ParseRefreshToken(raw string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := c.parse(raw, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (c TokenConfig) parse(raw string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(c.Secret), nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return ErrInvalidToken
	}
	return nil
}
