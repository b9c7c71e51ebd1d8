package worker

import (
	"context"
	"encoding/json"

	"github.com/smartpot-labs/smartpot-api/internal/logger"
	"github.com/smartpot-labs/smartpot-api/internal/provider"
	"github.com/smartpot-labs/smartpot-api/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer handles queued email tasks.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates the consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register binds task handlers to the mux.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskDeviceTokenEmail, c.handleDeviceTokenEmail)
	mux.HandleFunc(queue.TaskPasswordResetEmail, c.handlePasswordResetEmail)
}

func (c *Consumer) handleDeviceTokenEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_device_token_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.DeviceTokenEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_device_token_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.Email == "" || payload.Token == "" {
		logger.Debugw("worker_device_token_email_skip_invalid_payload", "email", payload.Email, "device_id", payload.DeviceID)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_device_token_email_skip_email_service_nil", "device_id", payload.DeviceID)
		return nil
	}
	if err := c.EmailService.SendDeviceToken(payload.Email, payload.DeviceName, payload.DeviceID, payload.Token, payload.Locale); err != nil {
		logger.Warnw("worker_device_token_email_send_failed",
			"device_id", payload.DeviceID,
			"receiver_email", payload.Email,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) handlePasswordResetEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_password_reset_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.PasswordResetEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_password_reset_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.Email == "" || payload.ResetLink == "" {
		logger.Debugw("worker_password_reset_email_skip_invalid_payload", "email", payload.Email)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_password_reset_email_skip_email_service_nil", "receiver_email", payload.Email)
		return nil
	}
	if err := c.EmailService.SendPasswordReset(payload.Email, payload.ResetLink, payload.Locale); err != nil {
		logger.Warnw("worker_password_reset_email_send_failed",
			"receiver_email", payload.Email,
			"error", err,
		)
		return err
	}
	return nil
}
