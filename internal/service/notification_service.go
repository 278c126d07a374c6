package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/project-tracker/internal/config"
	"github.com/spec-kit/project-tracker/internal/domain"
	"github.com/spec-kit/project-tracker/internal/events"
	"github.com/spec-kit/project-tracker/internal/repository"
)

const (
	keyDueTomorrow     = "DUE_TOMORROW:"
	keyUnblockAfterDue = "UNBLOCK_AFTER_DUE:"
)

// NotificationService queues user notifications, evaluates the milestone
// triggers and mirrors queued messages to an optional external sink.
type NotificationService struct {
	queue      repository.NotificationRepository
	tickets    repository.TicketRepository
	milestones repository.MilestoneRepository
	engine     *MilestoneEngine
	mirror     repository.NotificationMirror
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NotificationDependencies bundles collaborators. Mirror may be nil.
type NotificationDependencies struct {
	Store      *repository.Store
	Engine     *MilestoneEngine
	Mirror     repository.NotificationMirror
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Config     config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(deps NotificationDependencies) *NotificationService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		queue:      deps.Store.Notifications,
		tickets:    deps.Store.Tickets,
		milestones: deps.Store.Milestones,
		engine:     deps.Engine,
		mirror:     deps.Mirror,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		cfg:        deps.Config,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventMilestoneCreated, n.handleMilestoneCreated)
	n.dispatcher.SubscribeAll(n.auditEvent)
}

func (n *NotificationService) handleMilestoneCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.MilestoneCreatedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	msg := fmt.Sprintf("New milestone %s has been created with due date %s.", payload.Name, payload.DueDate)
	for _, dev := range payload.AssignedDevs {
		n.Notify(ctx, dev, msg)
	}
	return nil
}

func (n *NotificationService) auditEvent(_ context.Context, event events.Event) error {
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.String("actor", event.Actor),
		zap.String("timestamp", event.Timestamp),
		zap.Any("payload", event.Payload),
	}
	if event.TicketID != nil {
		fields = append(fields, zap.Int("ticket_id", *event.TicketID))
	}
	n.logger.Debug("domain event", fields...)
	return nil
}

// Notify queues message for username and mirrors it when a sink is set.
func (n *NotificationService) Notify(ctx context.Context, username, message string) {
	n.queue.Push(username, message)
	if n.mirror == nil || !n.cfg.MirrorEnabled {
		return
	}
	if err := n.mirror.Mirror(ctx, username, message); err != nil {
		n.logger.Warn("notification mirror failed", zap.String("username", username), zap.Error(err))
	}
}

// View evaluates the milestone triggers as of timestamp and drains the
// caller's queue.
func (n *NotificationService) View(ctx context.Context, user *domain.User, timestamp string) ([]string, error) {
	now, err := parseTimestamp(timestamp)
	if err != nil {
		return nil, err
	}
	n.EvaluateTriggers(ctx, user.Username, timestamp, now)
	return n.queue.Drain(user.Username), nil
}

// EvaluateTriggers fires each milestone notification at most once per run.
func (n *NotificationService) EvaluateTriggers(ctx context.Context, actor, timestamp string, now time.Time) {
	deps := escalationDeps{tickets: n.tickets, engine: n.engine, dispatcher: n.dispatcher}

	n.engine.ObserveBlocked()
	for _, m := range n.milestones.List() {
		blocked := n.engine.IsBlocked(m)

		due := domain.MustDate(m.DueDate)
		if now.Equal(due.AddDate(0, 0, 1)) && n.queue.MarkOnce(keyDueTomorrow+m.Name, timestamp) {
			forceCritical(ctx, deps, m, actor, timestamp, "due_tomorrow")
			n.notifyDevelopers(ctx, m, fmt.Sprintf(
				"Milestone %s is due tomorrow. All unresolved tickets are now CRITICAL.", m.Name))
		}

		if now.After(due) && !blocked && m.WasEverBlocked() &&
			n.queue.MarkOnce(keyUnblockAfterDue+m.Name, timestamp) {
			forceCritical(ctx, deps, m, actor, timestamp, "unblocked_after_due")
			n.notifyDevelopers(ctx, m, fmt.Sprintf(
				"Milestone %s was unblocked after due date. All active tickets are now CRITICAL.", m.Name))
		}
	}
}

func (n *NotificationService) notifyDevelopers(ctx context.Context, m *domain.Milestone, message string) {
	for _, dev := range m.AssignedDevs {
		n.Notify(ctx, dev, message)
	}
}
