package repository

import (
	"errors"
	"time"

	"github.com/smartpot-labs/smartpot-api/internal/models"

	"gorm.io/gorm"
)

// ErrTokenAlreadyRevoked is returned when a token is inserted twice.
var ErrTokenAlreadyRevoked = errors.New("token already revoked")

// RevokedTokenRepository blacklist data access. The table is
// append-only; entries are never updated or removed.
type RevokedTokenRepository interface {
	Record(token string, invalidatedAt time.Time) (*models.RevokedToken, error)
	Contains(token string) (bool, error)
	Get(token string) (*models.RevokedToken, error)
}

// GormRevokedTokenRepository GORM implementation.
type GormRevokedTokenRepository struct {
	db *gorm.DB
}

// NewRevokedTokenRepository creates a blacklist repository.
func NewRevokedTokenRepository(db *gorm.DB) *GormRevokedTokenRepository {
	return &GormRevokedTokenRepository{db: db}
}

// Record inserts a blacklist entry. The unique constraint on the token
// column is the authority: a duplicate insert, including the loser of
// two concurrent revocations, returns ErrTokenAlreadyRevoked.
func (r *GormRevokedTokenRepository) Record(token string, invalidatedAt time.Time) (*models.RevokedToken, error) {
	entry := models.RevokedToken{
		Token:         token,
		InvalidatedAt: invalidatedAt,
	}
	if err := r.db.Create(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTokenAlreadyRevoked
		}
		return nil, err
	}
	return &entry, nil
}

// Contains reports whether the token has been revoked.
func (r *GormRevokedTokenRepository) Contains(token string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.RevokedToken{}).Where("token = ?", token).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Get fetches a blacklist entry by token value.
func (r *GormRevokedTokenRepository) Get(token string) (*models.RevokedToken, error) {
	var entry models.RevokedToken
	if err := r.db.Where("token = ?", token).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}
