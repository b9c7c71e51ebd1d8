package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/smartpot-labs/smartpot-api/internal/models"
)

const authStateCacheTTL = 10 * time.Minute

// UserAuthState is a server side snapshot of the fields the bearer
// middleware needs, keyed by the token subject email. It only saves a
// database round trip; the user row remains the source of truth.
type UserAuthState struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	IsActive  bool   `json:"is_active"`
	Language  string `json:"language"`
	UpdatedAt int64  `json:"updated_at"`
}

func userAuthStateKey(email string) string {
	return fmt.Sprintf("auth:user:%s", strings.ToLower(strings.TrimSpace(email)))
}

// BuildUserAuthState builds a snapshot from the user model.
func BuildUserAuthState(user *models.User) *UserAuthState {
	if user == nil {
		return nil
	}
	return &UserAuthState{
		UserID:    user.ID,
		Email:     user.Email,
		IsActive:  user.IsActive,
		Language:  user.Language,
		UpdatedAt: time.Now().Unix(),
	}
}

// GetUserAuthState reads a snapshot.
func GetUserAuthState(ctx context.Context, email string) (*UserAuthState, bool, error) {
	if strings.TrimSpace(email) == "" {
		return nil, false, nil
	}
	var state UserAuthState
	hit, err := GetJSON(ctx, userAuthStateKey(email), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetUserAuthState writes a snapshot.
func SetUserAuthState(ctx context.Context, state *UserAuthState) error {
	if state == nil || strings.TrimSpace(state.Email) == "" {
		return nil
	}
	return SetJSON(ctx, userAuthStateKey(state.Email), state, authStateCacheTTL)
}

// DelUserAuthState removes a snapshot.
func DelUserAuthState(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return nil
	}
	return Del(ctx, userAuthStateKey(email))
}
