package worker

import (
	"github.com/spec-kit/nexa-sys/internal/events"
	"github.com/spec-kit/nexa-sys/internal/service"
)

// Subscriber is a service that reacts to task events.
type Subscriber interface {
	RegisterHandlers(dispatcher events.Dispatcher)
}

// StartNotificationWorker registers the notification handlers and every
// extra subscriber on the dispatcher.
func StartNotificationWorker(notificationService *service.NotificationService, dispatcher events.Dispatcher, subscribers ...Subscriber) {
	if notificationService != nil {
		notificationService.RegisterHandlers()
	}
	if dispatcher == nil {
		return
	}
	for _, sub := range subscribers {
		if sub != nil {
			sub.RegisterHandlers(dispatcher)
		}
	}
}
