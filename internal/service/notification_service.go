package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/nexa-sys/internal/config"
	"github.com/spec-kit/nexa-sys/internal/events"
	"github.com/spec-kit/nexa-sys/internal/observability"
)

// NotificationService reacts to task events: it logs them, records status
// transition metrics and hands them to the webhook stub.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    metrics,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTaskCreated, n.handleTaskCreated)
	n.dispatcher.Subscribe(events.EventTaskStatusChanged, n.handleTaskStatusChanged)
	n.dispatcher.Subscribe(events.EventTaskApproved, n.handleTaskApproved)
	n.dispatcher.Subscribe(events.EventTaskUpdated, n.handleTaskUpdated)
}

func (n *NotificationService) handleTaskCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("TaskCreated", eventFields(event)...)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleTaskStatusChanged(ctx context.Context, event events.Event) error {
	if payload, ok := event.Payload.(events.TaskStatusChangedPayload); ok {
		n.metrics.RecordTaskTransition(payload.OldStatus, payload.NewStatus)
	}
	n.logger.Info("TaskStatusChanged", eventFields(event)...)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleTaskApproved(ctx context.Context, event events.Event) error {
	n.logger.Info("TaskApproved", eventFields(event)...)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleTaskUpdated(ctx context.Context, event events.Event) error {
	n.logger.Debug("TaskUpdated", eventFields(event)...)
	return nil
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("task_id", event.TaskID),
		zap.String("event_type", string(event.Type)))
}

func eventFields(event events.Event) []zap.Field {
	return []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("task_id", event.TaskID),
		zap.String("project_id", event.ProjectID),
		zap.String("actor_id", event.Actor.UserID),
		zap.Any("payload", event.Payload),
	}
}
