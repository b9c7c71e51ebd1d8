package service

import "errors"

// Sentinel errors mapped to HTTP responses in the handler layer.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrTokenMismatch      = errors.New("token subject mismatch")
	ErrAlreadyRevoked     = errors.New("token already revoked")
	ErrUserInactive       = errors.New("inactive user")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrWeakPassword       = errors.New("weak password")
	ErrInvalidTimezone    = errors.New("invalid timezone")
	ErrInvalidLanguage    = errors.New("invalid language")
	ErrInvalidDeviceType  = errors.New("invalid device type")
	ErrDeviceNameExists   = errors.New("device name already used")
	ErrDeviceLinked       = errors.New("device already linked to a plant")
	ErrInvalidSensorName  = errors.New("invalid sensor name")
	ErrReadingOutOfRange  = errors.New("sensor reading out of range")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")

	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
)
