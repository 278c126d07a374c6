package worker

import (
	"go.uber.org/zap"

	"github.com/spec-kit/project-tracker/internal/service"
)

// StartNotificationWorker subscribes the notification service to domain
// events. Delivery is synchronous, so the worker owns no goroutine.
func StartNotificationWorker(notifications *service.NotificationService, logger *zap.Logger) {
	if notifications == nil {
		return
	}
	notifications.RegisterHandlers()
	if logger != nil {
		logger.Debug("notification handlers registered")
	}
}
