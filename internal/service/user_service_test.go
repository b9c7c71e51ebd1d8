package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/smartpot-labs/smartpot-api/internal/config"
	"github.com/smartpot-labs/smartpot-api/internal/constants"
	"github.com/smartpot-labs/smartpot-api/internal/models"
	"github.com/smartpot-labs/smartpot-api/internal/repository"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupUserServiceTest(t *testing.T) (*UserService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:user_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.RevokedToken{}, &models.Device{}, &models.Plant{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	svc := NewUserService(&config.Config{}, repository.NewUserRepository(db), repository.NewRevokedTokenRepository(db))
	return svc, db
}

func createProfileUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("Garden1234"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	user := &models.User{
		FullName:     "Profile User",
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     true,
		Language:     constants.DefaultLanguage,
		Timezone:     constants.DefaultTimezone,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func TestSetTimezone(t *testing.T) {
	svc, db := setupUserServiceTest(t)
	user := createProfileUser(t, db, "tz@example.com")

	cases := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"iana name", "Europe/Warsaw", "Europe/Warsaw", false},
		{"utc", "UTC", "UTC", false},
		{"space normalized", "America/New York", "America/New_York", false},
		{"trimmed", "  Asia/Tokyo  ", "Asia/Tokyo", false},
		{"offset rejected", "UTC+1", "", true},
		{"empty rejected", "   ", "", true},
		{"garbage rejected", "Narnia/Lantern", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.SetTimezone(user, tc.input)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidTimezone) {
					t.Fatalf("expected ErrInvalidTimezone, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("set timezone failed: %v", err)
			}
			if user.Timezone != tc.want {
				t.Fatalf("timezone want %s got %s", tc.want, user.Timezone)
			}
		})
	}

	var stored models.User
	if err := db.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("load user failed: %v", err)
	}
	if stored.Timezone != "Asia/Tokyo" {
		t.Fatalf("last valid timezone should be persisted, got %s", stored.Timezone)
	}
}

func TestSetLanguage(t *testing.T) {
	svc, db := setupUserServiceTest(t)
	user := createProfileUser(t, db, "lang@example.com")

	if err := svc.SetLanguage(user, "PL"); err != nil {
		t.Fatalf("set language PL failed: %v", err)
	}
	if user.Language != constants.LanguagePolish {
		t.Fatalf("language want PL got %s", user.Language)
	}

	// Case-insensitive on input, stored upper case.
	if err := svc.SetLanguage(user, " eng "); err != nil {
		t.Fatalf("set language eng failed: %v", err)
	}
	if user.Language != constants.LanguageEnglish {
		t.Fatalf("language want ENG got %s", user.Language)
	}

	if err := svc.SetLanguage(user, "DE"); !errors.Is(err, ErrInvalidLanguage) {
		t.Fatalf("unsupported language: expected ErrInvalidLanguage, got %v", err)
	}
	if err := svc.SetLanguage(user, ""); !errors.Is(err, ErrInvalidLanguage) {
		t.Fatalf("empty language: expected ErrInvalidLanguage, got %v", err)
	}
}

func TestSetFullName(t *testing.T) {
	svc, db := setupUserServiceTest(t)
	user := createProfileUser(t, db, "name@example.com")

	if err := svc.SetFullName(user, "  Jan Nowak "); err != nil {
		t.Fatalf("set full name failed: %v", err)
	}
	if user.FullName != "Jan Nowak" {
		t.Fatalf("full name want Jan Nowak got %q", user.FullName)
	}
	if err := svc.SetFullName(user, "   "); err == nil {
		t.Fatalf("blank name should be rejected")
	}
}

func TestDeleteAccount(t *testing.T) {
	svc, db := setupUserServiceTest(t)
	user := createProfileUser(t, db, "delete@example.com")

	if err := svc.DeleteAccount(user, "WrongPass1", "token-abc"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("wrong password: expected ErrInvalidPassword, got %v", err)
	}

	if err := svc.DeleteAccount(user, "Garden1234", "token-abc"); err != nil {
		t.Fatalf("delete account failed: %v", err)
	}

	var count int64
	db.Model(&models.User{}).Where("email = ?", user.Email).Count(&count)
	if count != 0 {
		t.Fatalf("user row should be gone, found %d", count)
	}

	revoked, err := repository.NewRevokedTokenRepository(db).Contains("token-abc")
	if err != nil {
		t.Fatalf("blacklist lookup failed: %v", err)
	}
	if !revoked {
		t.Fatalf("access token should be blacklisted on account deletion")
	}
}
