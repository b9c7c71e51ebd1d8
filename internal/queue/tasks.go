package queue

import (
	"encoding/json"
	"errors"

	"github.com/smartpot-labs/smartpot-api/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskDeviceTokenEmail device pairing token email task.
	TaskDeviceTokenEmail = constants.TaskDeviceTokenEmail
	// TaskPasswordResetEmail password reset email task.
	TaskPasswordResetEmail = constants.TaskPasswordReset
)

// ErrQueueDisabled is returned when the queue is not enabled; callers
// fall back to synchronous delivery.
var ErrQueueDisabled = errors.New("queue disabled")

// DeviceTokenEmailPayload device pairing token email payload.
type DeviceTokenEmailPayload struct {
	Email      string `json:"email"`
	DeviceName string `json:"device_name"`
	DeviceID   string `json:"device_id"`
	Token      string `json:"token"`
	Locale     string `json:"locale"`
}

// PasswordResetEmailPayload password reset email payload.
type PasswordResetEmailPayload struct {
	Email     string `json:"email"`
	ResetLink string `json:"reset_link"`
	Locale    string `json:"locale"`
}

// NewDeviceTokenEmailTask creates a device pairing token email task.
func NewDeviceTokenEmailTask(payload DeviceTokenEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDeviceTokenEmail, body), nil
}

// NewPasswordResetEmailTask creates a password reset email task.
func NewPasswordResetEmailTask(payload PasswordResetEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPasswordResetEmail, body), nil
}
