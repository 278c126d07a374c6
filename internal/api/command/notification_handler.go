package command

import (
	"context"

	"github.com/spec-kit/project-tracker/internal/api/dto"
	"github.com/spec-kit/project-tracker/internal/service"
)

// NotificationHandler serves viewNotifications.
type NotificationHandler struct {
	notifications *service.NotificationService
}

// NewNotificationHandler constructs handler.
func NewNotificationHandler(notifications *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// View evaluates milestone triggers and drains the caller's queue.
func (h *NotificationHandler) View(ctx context.Context, cmd dto.Command) (*dto.Result, error) {
	messages, err := h.notifications.View(ctx, principal(ctx), cmd.Timestamp)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []string{}
	}
	return dto.BodyResult(cmd, dto.NotificationsBody{Notifications: messages}), nil
}
