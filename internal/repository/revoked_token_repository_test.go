package repository

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/smartpot-labs/smartpot-api/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupRevokedTokenRepositoryTest(t *testing.T) *GormRevokedTokenRepository {
	t.Helper()
	dsn := fmt.Sprintf("file:revoked_token_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.RevokedToken{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewRevokedTokenRepository(db)
}

func TestRecordAndContains(t *testing.T) {
	repo := setupRevokedTokenRepositoryTest(t)

	revoked, err := repo.Contains("token-a")
	if err != nil {
		t.Fatalf("contains failed: %v", err)
	}
	if revoked {
		t.Fatalf("fresh table should not contain the token")
	}

	invalidatedAt := time.Now().Truncate(time.Second)
	entry, err := repo.Record("token-a", invalidatedAt)
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if entry.ID == 0 {
		t.Fatalf("entry should get an id")
	}
	if entry.Token != "token-a" {
		t.Fatalf("entry token want token-a got %s", entry.Token)
	}

	revoked, err = repo.Contains("token-a")
	if err != nil {
		t.Fatalf("contains failed: %v", err)
	}
	if !revoked {
		t.Fatalf("recorded token should be contained")
	}

	got, err := repo.Get("token-a")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got == nil || !got.InvalidatedAt.Equal(entry.InvalidatedAt) {
		t.Fatalf("get should return the stored entry, got %+v", got)
	}
}

func TestRecordDuplicateIsConflict(t *testing.T) {
	repo := setupRevokedTokenRepositoryTest(t)

	if _, err := repo.Record("token-dup", time.Now()); err != nil {
		t.Fatalf("first record failed: %v", err)
	}
	if _, err := repo.Record("token-dup", time.Now()); !errors.Is(err, ErrTokenAlreadyRevoked) {
		t.Fatalf("expected ErrTokenAlreadyRevoked, got %v", err)
	}

	// Other tokens are unaffected.
	if _, err := repo.Record("token-other", time.Now()); err != nil {
		t.Fatalf("record other token failed: %v", err)
	}
}

// The unique constraint, not a read-before-write, decides the conflict.
// A row that lands between any lookup and the insert, as happens when
// two revocations of the same token race, must still come back as
// ErrTokenAlreadyRevoked rather than a raw driver error.
func TestRecordMapsConstraintViolationToConflict(t *testing.T) {
	repo := setupRevokedTokenRepositoryTest(t)

	interloper := models.RevokedToken{Token: "token-raced", InvalidatedAt: time.Now()}
	if err := repo.db.Create(&interloper).Error; err != nil {
		t.Fatalf("seed row failed: %v", err)
	}

	if err := repo.db.Create(&models.RevokedToken{Token: "token-raced", InvalidatedAt: time.Now()}).Error; !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("driver error should translate to gorm.ErrDuplicatedKey, got %v", err)
	}

	if _, err := repo.Record("token-raced", time.Now()); !errors.Is(err, ErrTokenAlreadyRevoked) {
		t.Fatalf("expected ErrTokenAlreadyRevoked, got %v", err)
	}

	var count int64
	repo.db.Model(&models.RevokedToken{}).Where("token = ?", "token-raced").Count(&count)
	if count != 1 {
		t.Fatalf("blacklist should hold one row per token, found %d", count)
	}
}
