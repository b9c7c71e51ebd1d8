package service

import (
	"context"
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/smartpot-labs/smartpot-api/internal/cache"
	"github.com/smartpot-labs/smartpot-api/internal/config"
	"github.com/smartpot-labs/smartpot-api/internal/constants"
	"github.com/smartpot-labs/smartpot-api/internal/i18n"
	"github.com/smartpot-labs/smartpot-api/internal/logger"
	"github.com/smartpot-labs/smartpot-api/internal/models"
	"github.com/smartpot-labs/smartpot-api/internal/queue"
	"github.com/smartpot-labs/smartpot-api/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// AuthService owns credentials and the session lifecycle: hashing,
// token issuance and verification, the revocation blacklist and the
// login / logout / refresh / reset flows.
type AuthService struct {
	cfg          *config.Config
	userRepo     repository.UserRepository
	revokedRepo  repository.RevokedTokenRepository
	queueClient  *queue.Client
	emailService *EmailService
}

// NewAuthService creates the auth service.
func NewAuthService(cfg *config.Config, userRepo repository.UserRepository, revokedRepo repository.RevokedTokenRepository, queueClient *queue.Client, emailService *EmailService) *AuthService {
	return &AuthService{
		cfg:          cfg,
		userRepo:     userRepo,
		revokedRepo:  revokedRepo,
		queueClient:  queueClient,
		emailService: emailService,
	}
}

// HashPassword hashes a password with bcrypt.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks a password against its hash.
func (s *AuthService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// ValidatePassword checks a password against the configured policy.
func (s *AuthService) ValidatePassword(password string) error {
	if s == nil || s.cfg == nil {
		return nil
	}
	return validatePassword(s.cfg.Security.PasswordPolicy, password)
}

// Register creates a user. New accounts start inactive; the first
// login activates them.
func (s *AuthService) Register(fullName, email, password string) (*models.User, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if err := s.ValidatePassword(password); err != nil {
		return nil, err
	}

	exist, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrEmailExists
	}

	hashedPassword, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		FullName:     strings.TrimSpace(fullName),
		Email:        normalized,
		PasswordHash: hashedPassword,
		IsActive:     false,
		Language:     constants.DefaultLanguage,
		Timezone:     constants.DefaultTimezone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials, marks the user active and issues an
// access and refresh token pair.
func (s *AuthService) Login(email, password string) (*models.User, string, string, time.Time, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, "", "", time.Time{}, ErrInvalidCredentials
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, "", "", time.Time{}, err
	}
	if user == nil {
		return nil, "", "", time.Time{}, ErrInvalidCredentials
	}
	if err := s.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, "", "", time.Time{}, ErrInvalidCredentials
	}

	access, refresh, expiresAt, err := s.issueSessionTokens(user.Email)
	if err != nil {
		return nil, "", "", time.Time{}, err
	}

	user.IsActive = true
	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(user); err != nil {
		return nil, "", "", time.Time{}, err
	}
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))

	return user, access, refresh, expiresAt, nil
}

// Logout records the access token in the blacklist and marks the user
// inactive. The token subject must match the calling user; a token
// already on the blacklist is a conflict.
func (s *AuthService) Logout(user *models.User, tokenString string) error {
	if user == nil {
		return ErrNotFound
	}
	claims, err := s.ParseToken(tokenString, constants.TokenPurposeAccess)
	if err != nil {
		return err
	}
	if !strings.EqualFold(claims.Subject, user.Email) {
		return ErrTokenMismatch
	}

	if _, err := s.revokedRepo.Record(tokenString, time.Now()); err != nil {
		if err == repository.ErrTokenAlreadyRevoked {
			return ErrAlreadyRevoked
		}
		return err
	}

	user.IsActive = false
	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(user); err != nil {
		return err
	}
	_ = cache.DelUserAuthState(context.Background(), user.Email)
	return nil
}

// Refresh exchanges a refresh token for a new access and refresh pair.
func (s *AuthService) Refresh(refreshToken string) (*models.User, string, string, time.Time, error) {
	claims, err := s.ParseToken(refreshToken, constants.TokenPurposeRefresh)
	if err != nil {
		return nil, "", "", time.Time{}, err
	}
	revoked, err := s.revokedRepo.Contains(refreshToken)
	if err != nil {
		return nil, "", "", time.Time{}, err
	}
	if revoked {
		return nil, "", "", time.Time{}, ErrTokenRevoked
	}

	user, err := s.userRepo.GetByEmail(strings.ToLower(claims.Subject))
	if err != nil {
		return nil, "", "", time.Time{}, err
	}
	if user == nil {
		return nil, "", "", time.Time{}, ErrTokenInvalid
	}
	if !user.IsActive {
		return nil, "", "", time.Time{}, ErrUserInactive
	}

	access, refresh, expiresAt, err := s.issueSessionTokens(user.Email)
	if err != nil {
		return nil, "", "", time.Time{}, err
	}
	return user, access, refresh, expiresAt, nil
}

// Authenticate resolves a bearer access token into a user. Order:
// parse, blacklist, activity gate (cache first), full subject load.
// The cache snapshot only short-circuits inactive subjects; the
// returned user is always the full row, since handlers persist it.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := s.ParseToken(tokenString, constants.TokenPurposeAccess)
	if err != nil {
		return nil, err
	}

	revoked, err := s.revokedRepo.Contains(tokenString)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	email := strings.ToLower(claims.Subject)
	if state, hit, err := cache.GetUserAuthState(ctx, email); err == nil && hit && !state.IsActive {
		return nil, ErrUserInactive
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	_ = cache.SetUserAuthState(ctx, cache.BuildUserAuthState(user))
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	return user, nil
}

// ForgotPassword issues a reset token and sends the reset link. The
// email is queued when the worker is running, otherwise sent inline.
func (s *AuthService) ForgotPassword(email string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}

	resetToken, _, err := s.GenerateToken(user.Email, constants.TokenPurposeReset, s.ResetTTL())
	if err != nil {
		return err
	}
	resetLink := s.buildResetLink(resetToken)
	locale := i18n.FromLanguage(user.Language)

	if s.queueClient.Enabled() {
		err := s.queueClient.EnqueuePasswordResetEmail(queue.PasswordResetEmailPayload{
			Email:     user.Email,
			ResetLink: resetLink,
			Locale:    locale,
		})
		if err == nil {
			return nil
		}
		logger.Warnw("password_reset_enqueue_failed", "error", err, "email", user.Email)
	}
	if s.emailService == nil {
		return ErrEmailServiceNotConfigured
	}
	return s.emailService.SendPasswordReset(user.Email, resetLink, locale)
}

// ResetPassword sets a new password from a reset token. Only active
// users may reset; inactive accounts are rejected.
func (s *AuthService) ResetPassword(resetToken, newPassword string) (*models.User, error) {
	claims, err := s.ParseToken(resetToken, constants.TokenPurposeReset)
	if err != nil {
		return nil, err
	}
	if err := s.ValidatePassword(newPassword); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(strings.ToLower(claims.Subject))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	hashedPassword, err := s.HashPassword(newPassword)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hashedPassword
	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))
	return user, nil
}

func (s *AuthService) buildResetLink(resetToken string) string {
	base := strings.TrimRight(strings.TrimSpace(s.cfg.Frontend.BaseURL), "/")
	path := strings.TrimSpace(s.cfg.Frontend.ResetPath)
	if path == "" {
		path = "/reset-password"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return fmt.Sprintf("%s%s?token=%s", base, path, url.QueryEscape(resetToken))
}

func normalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return "", ErrInvalidEmail
	}
	return normalized, nil
}

// NormalizeEmail normalizes an email address.
func NormalizeEmail(email string) (string, error) {
	return normalizeEmail(email)
}
