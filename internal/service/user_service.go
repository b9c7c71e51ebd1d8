package service

import (
	"context"
	"strings"
	"time"

	"github.com/smartpot-labs/smartpot-api/internal/cache"
	"github.com/smartpot-labs/smartpot-api/internal/config"
	"github.com/smartpot-labs/smartpot-api/internal/constants"
	"github.com/smartpot-labs/smartpot-api/internal/models"
	"github.com/smartpot-labs/smartpot-api/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// UserService manages user profile state.
type UserService struct {
	cfg         *config.Config
	userRepo    repository.UserRepository
	revokedRepo repository.RevokedTokenRepository
}

// NewUserService creates the user service.
func NewUserService(cfg *config.Config, userRepo repository.UserRepository, revokedRepo repository.RevokedTokenRepository) *UserService {
	return &UserService{
		cfg:         cfg,
		userRepo:    userRepo,
		revokedRepo: revokedRepo,
	}
}

// GetByEmail fetches a user by email.
func (s *UserService) GetByEmail(email string) (*models.User, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	return s.userRepo.GetByEmail(normalized)
}

// GetByID fetches a user by ID.
func (s *UserService) GetByID(id uint) (*models.User, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	return s.userRepo.GetByID(id)
}

// SetTimezone validates and stores an IANA timezone. Spaces are
// normalized to underscores before validation ("America/New York"
// becomes "America/New_York") and the normalized form is persisted.
func (s *UserService) SetTimezone(user *models.User, timezone string) error {
	if user == nil {
		return ErrNotFound
	}
	normalized, err := NormalizeTimezone(timezone)
	if err != nil {
		return err
	}
	user.Timezone = normalized
	user.UpdatedAt = time.Now()
	return s.userRepo.Update(user)
}

// NormalizeTimezone maps a raw timezone string to its canonical IANA
// name, or ErrInvalidTimezone.
func NormalizeTimezone(timezone string) (string, error) {
	candidate := strings.ReplaceAll(strings.TrimSpace(timezone), " ", "_")
	if candidate == "" {
		return "", ErrInvalidTimezone
	}
	if _, err := time.LoadLocation(candidate); err != nil {
		return "", ErrInvalidTimezone
	}
	return candidate, nil
}

// SetLanguage stores one of the supported languages.
func (s *UserService) SetLanguage(user *models.User, language string) error {
	if user == nil {
		return ErrNotFound
	}
	normalized := strings.ToUpper(strings.TrimSpace(language))
	if !isLanguageSupported(normalized) {
		return ErrInvalidLanguage
	}
	user.Language = normalized
	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(user); err != nil {
		return err
	}
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))
	return nil
}

// SetFullName updates the display name.
func (s *UserService) SetFullName(user *models.User, fullName string) error {
	if user == nil {
		return ErrNotFound
	}
	trimmed := strings.TrimSpace(fullName)
	if trimmed == "" {
		return ErrInvalidCredentials
	}
	user.FullName = trimmed
	user.UpdatedAt = time.Now()
	return s.userRepo.Update(user)
}

// SetActive flips the activity flag directly.
func (s *UserService) SetActive(user *models.User, active bool) error {
	if user == nil {
		return ErrNotFound
	}
	user.IsActive = active
	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(user); err != nil {
		return err
	}
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))
	return nil
}

// DeleteAccount removes the user after a password check. The current
// access token goes on the blacklist so it cannot outlive the account.
func (s *UserService) DeleteAccount(user *models.User, password, accessToken string) error {
	if user == nil {
		return ErrNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return ErrInvalidPassword
	}
	if strings.TrimSpace(accessToken) != "" {
		if _, err := s.revokedRepo.Record(accessToken, time.Now()); err != nil && err != repository.ErrTokenAlreadyRevoked {
			return err
		}
	}
	if err := s.userRepo.Delete(user); err != nil {
		return err
	}
	_ = cache.DelUserAuthState(context.Background(), user.Email)
	return nil
}

func isLanguageSupported(language string) bool {
	for _, supported := range constants.SupportedLanguages {
		if language == supported {
			return true
		}
	}
	return false
}
