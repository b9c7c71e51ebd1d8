package models

import (
	"time"
)

// RevokedToken is an append-only blacklist entry. Presence means the
// token may no longer be used, regardless of its expiry.
type RevokedToken struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	Token         string    `gorm:"uniqueIndex;not null" json:"token"`
	InvalidatedAt time.Time `gorm:"index;not null" json:"invalidated_at"`
}

// TableName sets the table name.
func (RevokedToken) TableName() string {
	return "revoked_tokens"
}
