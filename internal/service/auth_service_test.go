package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/smartpot-labs/smartpot-api/internal/config"
	"github.com/smartpot-labs/smartpot-api/internal/constants"
	"github.com/smartpot-labs/smartpot-api/internal/models"
	"github.com/smartpot-labs/smartpot-api/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:auth_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.RevokedToken{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	cfg := &config.Config{
		Auth: config.AuthConfig{
			SecretKey:           "auth-service-test-secret-key-0123456789",
			AccessExpireMinutes: 30,
			RefreshExpireDays:   7,
			ResetExpireMinutes:  60,
		},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{
				MinLength:     8,
				MaxLength:     64,
				RequireUpper:  true,
				RequireLower:  true,
				RequireNumber: true,
			},
		},
		Frontend: config.FrontendConfig{BaseURL: "https://app.example.com"},
	}
	svc := NewAuthService(cfg, repository.NewUserRepository(db), repository.NewRevokedTokenRepository(db), nil, nil)
	return svc, db
}

func TestHashAndVerifyPassword(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	hash, err := svc.HashPassword("Garden1234")
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	if hash == "Garden1234" {
		t.Fatalf("hash should not equal the plaintext")
	}
	if err := svc.VerifyPassword(hash, "Garden1234"); err != nil {
		t.Fatalf("verify should accept the original password: %v", err)
	}
	if err := svc.VerifyPassword(hash, "garden1234"); err == nil {
		t.Fatalf("verify should reject a wrong password")
	}
}

func TestRegisterNormalizesEmailAndStartsInactive(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	user, err := svc.Register("  Ala Kowalska ", "  Ala@Example.COM ", "Garden1234")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "ala@example.com" {
		t.Fatalf("email should be lowercased, got %s", user.Email)
	}
	if user.FullName != "Ala Kowalska" {
		t.Fatalf("full name should be trimmed, got %q", user.FullName)
	}
	if user.IsActive {
		t.Fatalf("new accounts should start inactive")
	}
	if user.Language != constants.DefaultLanguage || user.Timezone != constants.DefaultTimezone {
		t.Fatalf("expected profile defaults, got %s %s", user.Language, user.Timezone)
	}
	if user.PasswordHash == "Garden1234" {
		t.Fatalf("password must be stored hashed")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	if _, err := svc.Register("One", "dup@example.com", "Garden1234"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register("Two", "DUP@example.com", "Garden1234"); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestRegisterRejectsBadInput(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	if _, err := svc.Register("X", "not-an-email", "Garden1234"); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
	if _, err := svc.Register("X", "weak@example.com", "short"); err == nil {
		t.Fatalf("expected a password policy error")
	}
	if _, err := svc.Register("X", "weak@example.com", "alllowercase1"); err == nil {
		t.Fatalf("expected a password policy error for missing upper case")
	}
}

func TestLoginActivatesUserAndIssuesTokens(t *testing.T) {
	svc, db := setupAuthServiceTest(t)

	if _, err := svc.Register("Login User", "login@example.com", "Garden1234"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, access, refresh, expiresAt, err := svc.Login("Login@Example.com", "Garden1234")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !user.IsActive {
		t.Fatalf("login should activate the user")
	}
	if access == "" || refresh == "" || access == refresh {
		t.Fatalf("expected distinct non-empty token pair")
	}
	if !expiresAt.After(time.Now()) {
		t.Fatalf("access expiry should be in the future")
	}

	var stored models.User
	if err := db.Where("email = ?", "login@example.com").First(&stored).Error; err != nil {
		t.Fatalf("load user failed: %v", err)
	}
	if !stored.IsActive {
		t.Fatalf("activity flag should be persisted")
	}

	claims, err := svc.ParseToken(access, constants.TokenPurposeAccess)
	if err != nil {
		t.Fatalf("parse access token failed: %v", err)
	}
	if claims.Subject != "login@example.com" {
		t.Fatalf("access subject want login@example.com got %s", claims.Subject)
	}
	if _, err := svc.ParseToken(refresh, constants.TokenPurposeRefresh); err != nil {
		t.Fatalf("parse refresh token failed: %v", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	if _, err := svc.Register("X", "creds@example.com", "Garden1234"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, _, _, err := svc.Login("creds@example.com", "Wrong1234"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, _, _, err := svc.Login("nobody@example.com", "Garden1234"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, _, _, err := svc.Login("not-an-email", "Garden1234"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("malformed email: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogoutBlacklistsTokenAndDeactivates(t *testing.T) {
	svc, db := setupAuthServiceTest(t)

	if _, err := svc.Register("X", "logout@example.com", "Garden1234"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	user, access, _, _, err := svc.Login("logout@example.com", "Garden1234")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := svc.Logout(user, access); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if user.IsActive {
		t.Fatalf("logout should deactivate the user")
	}

	revoked, err := repository.NewRevokedTokenRepository(db).Contains(access)
	if err != nil {
		t.Fatalf("blacklist lookup failed: %v", err)
	}
	if !revoked {
		t.Fatalf("access token should be on the blacklist")
	}

	if err := svc.Logout(user, access); !errors.Is(err, ErrAlreadyRevoked) {
		t.Fatalf("second logout: expected ErrAlreadyRevoked, got %v", err)
	}
}

func TestLogoutRejectsForeignToken(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	if _, err := svc.Register("A", "owner-a@example.com", "Garden1234"); err != nil {
		t.Fatalf("register a failed: %v", err)
	}
	if _, err := svc.Register("B", "owner-b@example.com", "Garden1234"); err != nil {
		t.Fatalf("register b failed: %v", err)
	}
	userA, accessA, _, _, err := svc.Login("owner-a@example.com", "Garden1234")
	if err != nil {
		t.Fatalf("login a failed: %v", err)
	}
	userB, _, refreshB, _, err := svc.Login("owner-b@example.com", "Garden1234")
	if err != nil {
		t.Fatalf("login b failed: %v", err)
	}

	if err := svc.Logout(userB, accessA); !errors.Is(err, ErrTokenMismatch) {
		t.Fatalf("foreign token: expected ErrTokenMismatch, got %v", err)
	}
	if err := svc.Logout(userA, refreshB); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("refresh token at logout: expected ErrTokenInvalid, got %v", err)
	}
}

func TestRefreshRotatesTokens(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	if _, err := svc.Register("X", "refresh@example.com", "Garden1234"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	_, _, refresh, _, err := svc.Login("refresh@example.com", "Garden1234")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	user, access2, refresh2, expiresAt, err := svc.Refresh(refresh)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if user.Email != "refresh@example.com" {
		t.Fatalf("refresh resolved wrong user %s", user.Email)
	}
	if access2 == "" || refresh2 == "" {
		t.Fatalf("expected a fresh token pair")
	}
	if !expiresAt.After(time.Now()) {
		t.Fatalf("new access expiry should be in the future")
	}
	if _, err := svc.ParseToken(access2, constants.TokenPurposeAccess); err != nil {
		t.Fatalf("new access token should parse: %v", err)
	}
}

func TestRefreshRejectsRevokedAndInactive(t *testing.T) {
	svc, db := setupAuthServiceTest(t)

	if _, err := svc.Register("X", "gate@example.com", "Garden1234"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	_, access, refresh, _, err := svc.Login("gate@example.com", "Garden1234")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// Access tokens are never valid for refresh.
	if _, _, _, _, err := svc.Refresh(access); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("access token at refresh: expected ErrTokenInvalid, got %v", err)
	}

	// A blacklisted refresh token is rejected as revoked.
	if _, err := repository.NewRevokedTokenRepository(db).Record(refresh, time.Now()); err != nil {
		t.Fatalf("record refresh token failed: %v", err)
	}
	if _, _, _, _, err := svc.Refresh(refresh); !errors.Is(err, ErrTokenRevoked) {
		t.Fatalf("revoked refresh: expected ErrTokenRevoked, got %v", err)
	}

	// An inactive user cannot refresh even with a clean token.
	user2, _, refresh2, _, err := svc.Login("gate@example.com", "Garden1234")
	if err != nil {
		t.Fatalf("second login failed: %v", err)
	}
	user2.IsActive = false
	if err := db.Save(user2).Error; err != nil {
		t.Fatalf("deactivate user failed: %v", err)
	}
	if _, _, _, _, err := svc.Refresh(refresh2); !errors.Is(err, ErrUserInactive) {
		t.Fatalf("inactive refresh: expected ErrUserInactive, got %v", err)
	}
}

func TestParseTokenExpiredVersusInvalid(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	expired, _, err := svc.GenerateToken("x@example.com", constants.TokenPurposeAccess, -time.Minute)
	if err != nil {
		t.Fatalf("generate expired token failed: %v", err)
	}
	if _, err := svc.ParseToken(expired, constants.TokenPurposeAccess); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expired token: expected ErrTokenExpired, got %v", err)
	}

	valid, _, err := svc.GenerateToken("x@example.com", constants.TokenPurposeAccess, time.Minute)
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}

	// Wrong purpose, tampered body and garbage are all invalid, not expired.
	if _, err := svc.ParseToken(valid, constants.TokenPurposeReset); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("wrong purpose: expected ErrTokenInvalid, got %v", err)
	}
	parts := strings.Split(valid, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]
	if _, err := svc.ParseToken(tampered, constants.TokenPurposeAccess); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("tampered token: expected ErrTokenInvalid, got %v", err)
	}
	if _, err := svc.ParseToken("not.a.jwt", constants.TokenPurposeAccess); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("garbage token: expected ErrTokenInvalid, got %v", err)
	}

	empty, _, err := svc.GenerateToken("", constants.TokenPurposeAccess, time.Minute)
	if err != nil {
		t.Fatalf("generate empty-subject token failed: %v", err)
	}
	if _, err := svc.ParseToken(empty, constants.TokenPurposeAccess); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("empty subject: expected ErrTokenInvalid, got %v", err)
	}
}

func TestAuthenticateResolvesUser(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	ctx := context.Background()

	if _, err := svc.Register("X", "bearer@example.com", "Garden1234"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	user, access, _, _, err := svc.Login("bearer@example.com", "Garden1234")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	resolved, err := svc.Authenticate(ctx, access)
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if resolved.Email != user.Email {
		t.Fatalf("resolved wrong user %s", resolved.Email)
	}

	if err := svc.Logout(user, access); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := svc.Authenticate(ctx, access); !errors.Is(err, ErrTokenRevoked) {
		t.Fatalf("revoked bearer: expected ErrTokenRevoked, got %v", err)
	}

	// Logged out user is inactive; a second, unrevoked token still fails.
	access2, _, err := svc.GenerateToken(user.Email, constants.TokenPurposeAccess, time.Minute)
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}
	if _, err := svc.Authenticate(ctx, access2); !errors.Is(err, ErrUserInactive) {
		t.Fatalf("inactive bearer: expected ErrUserInactive, got %v", err)
	}

	if err := db.Where("email = ?", user.Email).Delete(&models.User{}).Error; err != nil {
		t.Fatalf("delete user failed: %v", err)
	}
	if _, err := svc.Authenticate(ctx, access2); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("deleted user: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestResetPasswordFlow(t *testing.T) {
	svc, db := setupAuthServiceTest(t)

	if _, err := svc.Register("X", "reset@example.com", "Garden1234"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	user, _, _, _, err := svc.Login("reset@example.com", "Garden1234")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	resetToken, _, err := svc.GenerateToken(user.Email, constants.TokenPurposeReset, svc.ResetTTL())
	if err != nil {
		t.Fatalf("generate reset token failed: %v", err)
	}

	if _, err := svc.ResetPassword(resetToken, "weak"); err == nil {
		t.Fatalf("weak new password should be rejected")
	}

	updated, err := svc.ResetPassword(resetToken, "NewGarden5678")
	if err != nil {
		t.Fatalf("reset password failed: %v", err)
	}
	if err := svc.VerifyPassword(updated.PasswordHash, "NewGarden5678"); err != nil {
		t.Fatalf("new password should verify: %v", err)
	}
	if _, _, _, _, err := svc.Login("reset@example.com", "Garden1234"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password should stop working, got %v", err)
	}

	// Access tokens are not reset tokens.
	access, _, err := svc.GenerateToken(user.Email, constants.TokenPurposeAccess, time.Minute)
	if err != nil {
		t.Fatalf("generate access token failed: %v", err)
	}
	if _, err := svc.ResetPassword(access, "NewGarden5678"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("access token at reset: expected ErrTokenInvalid, got %v", err)
	}

	// Inactive accounts may not reset.
	user.IsActive = false
	if err := db.Save(user).Error; err != nil {
		t.Fatalf("deactivate user failed: %v", err)
	}
	resetToken2, _, err := svc.GenerateToken(user.Email, constants.TokenPurposeReset, svc.ResetTTL())
	if err != nil {
		t.Fatalf("generate second reset token failed: %v", err)
	}
	if _, err := svc.ResetPassword(resetToken2, "NewGarden5678"); !errors.Is(err, ErrUserInactive) {
		t.Fatalf("inactive reset: expected ErrUserInactive, got %v", err)
	}
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	if err := svc.ForgotPassword("missing@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown email: expected ErrNotFound, got %v", err)
	}
	if err := svc.ForgotPassword("not-an-email"); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("malformed email: expected ErrInvalidEmail, got %v", err)
	}
}

func TestBuildResetLink(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	link := svc.buildResetLink("abc+def")
	if link != "https://app.example.com/reset-password?token=abc%2Bdef" {
		t.Fatalf("unexpected reset link %s", link)
	}

	svc.cfg.Frontend.BaseURL = "https://app.example.com/"
	svc.cfg.Frontend.ResetPath = "new-password"
	link = svc.buildResetLink("t")
	if link != "https://app.example.com/new-password?token=t" {
		t.Fatalf("unexpected reset link %s", link)
	}
}

func TestRandomDeviceToken(t *testing.T) {
	cfg := &config.Config{Device: config.DeviceConfig{TokenLength: 24}}

	token, err := RandomDeviceToken(cfg)
	if err != nil {
		t.Fatalf("generate device token failed: %v", err)
	}
	if len(token) != 24 {
		t.Fatalf("token length want 24 got %d", len(token))
	}
	for _, r := range token {
		if !strings.ContainsRune(deviceTokenAlphabet, r) {
			t.Fatalf("unexpected character %q in token", r)
		}
	}

	fallback, err := RandomDeviceToken(nil)
	if err != nil {
		t.Fatalf("generate fallback token failed: %v", err)
	}
	if len(fallback) != 15 {
		t.Fatalf("fallback length want 15 got %d", len(fallback))
	}

	other, err := RandomDeviceToken(cfg)
	if err != nil {
		t.Fatalf("generate second token failed: %v", err)
	}
	if token == other {
		t.Fatalf("two generated tokens should differ")
	}
}
