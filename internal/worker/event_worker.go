package worker

import (
	"go.uber.org/zap"

	"github.com/spec-kit/laundry-service/internal/service"
)

// StartEventSubscribers registers the lifecycle event handlers on the dispatcher.
func StartEventSubscribers(subscribers *service.EventSubscribers, logger *zap.Logger) {
	if subscribers == nil {
		return
	}
	subscribers.RegisterHandlers()
	logger.Debug("event subscribers registered")
}
