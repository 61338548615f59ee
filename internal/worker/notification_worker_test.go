package worker

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/nexa-sys/internal/config"
	"github.com/spec-kit/nexa-sys/internal/events"
	"github.com/spec-kit/nexa-sys/internal/service"
)

type recordingSubscriber struct {
	seen []events.EventType
}

func (r *recordingSubscriber) RegisterHandlers(dispatcher events.Dispatcher) {
	dispatcher.Subscribe(events.EventTaskCreated, func(_ context.Context, e events.Event) error {
		r.seen = append(r.seen, e.Type)
		return nil
	})
}

func TestStartNotificationWorkerRegistersSubscribers(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	notifier := service.NewNotificationService(dispatcher, zap.NewNop(), nil, config.NotificationConfig{})
	sub := &recordingSubscriber{}

	StartNotificationWorker(notifier, dispatcher, sub)

	if err := dispatcher.Publish(context.Background(), events.Event{Type: events.EventTaskCreated, TaskID: "t1"}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(sub.seen) != 1 {
		t.Fatalf("expected subscriber to see one event, got %d", len(sub.seen))
	}
}
