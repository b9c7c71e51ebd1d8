package service

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
	"time"

	"github.com/smartpot-labs/smartpot-api/internal/config"
	"github.com/smartpot-labs/smartpot-api/internal/constants"

	"github.com/golang-jwt/jwt/v5"
)

const deviceTokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// TokenClaims carried in every issued JWT. Subject is the user email;
// Purpose separates access, refresh and reset tokens signed with the
// same key.
type TokenClaims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// GenerateToken signs a token for the subject email with the given
// purpose and lifetime.
func (s *AuthService) GenerateToken(email, purpose string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := TokenClaims{
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.Auth.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseToken verifies signature and expiry and checks the purpose
// claim. An expired token with a valid signature yields
// ErrTokenExpired; every other failure yields ErrTokenInvalid.
func (s *AuthService) ParseToken(tokenString, purpose string) (*TokenClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &TokenClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.Auth.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.Purpose != purpose {
		return nil, ErrTokenInvalid
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// AccessTTL returns the configured access token lifetime.
func (s *AuthService) AccessTTL() time.Duration {
	minutes := s.cfg.Auth.AccessExpireMinutes
	if minutes <= 0 {
		minutes = 30
	}
	return time.Duration(minutes) * time.Minute
}

// RefreshTTL returns the configured refresh token lifetime.
func (s *AuthService) RefreshTTL() time.Duration {
	days := s.cfg.Auth.RefreshExpireDays
	if days <= 0 {
		days = 7
	}
	return time.Duration(days) * 24 * time.Hour
}

// ResetTTL returns the configured reset token lifetime.
func (s *AuthService) ResetTTL() time.Duration {
	minutes := s.cfg.Auth.ResetExpireMinutes
	if minutes <= 0 {
		minutes = 1440
	}
	return time.Duration(minutes) * time.Minute
}

func (s *AuthService) issueSessionTokens(email string) (string, string, time.Time, error) {
	access, expiresAt, err := s.GenerateToken(email, constants.TokenPurposeAccess, s.AccessTTL())
	if err != nil {
		return "", "", time.Time{}, err
	}
	refresh, _, err := s.GenerateToken(email, constants.TokenPurposeRefresh, s.RefreshTTL())
	if err != nil {
		return "", "", time.Time{}, err
	}
	return access, refresh, expiresAt, nil
}

// RandomDeviceToken generates a pairing token of the configured
// length. Device tokens are opaque strings compared by value, not
// parsed.
func RandomDeviceToken(cfg *config.Config) (string, error) {
	length := 15
	if cfg != nil && cfg.Device.TokenLength > 0 {
		length = cfg.Device.TokenLength
	}
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(deviceTokenAlphabet))))
		if err != nil {
			return "", err
		}
		b.WriteByte(deviceTokenAlphabet[n.Int64()])
	}
	return b.String(), nil
}
