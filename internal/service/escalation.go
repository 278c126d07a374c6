package service

import (
	"context"
	"time"

	"github.com/spec-kit/project-tracker/internal/domain"
	"github.com/spec-kit/project-tracker/internal/events"
)

// EscalatedPriority returns the priority a ticket of an active milestone
// should carry when daysUntilDue days (inclusive) remain. It never lowers.
func EscalatedPriority(t *domain.Ticket, daysUntilDue int) domain.Priority {
	switch {
	case daysUntilDue <= 2:
		return domain.PriorityCritical
	case daysUntilDue <= 3:
		if t.Type == domain.TicketTypeBug && t.Severity == domain.SeveritySevere {
			return domain.PriorityCritical
		}
		return t.Priority.Max(domain.PriorityHigh)
	}
	return t.Priority
}

// applyEscalation raises priorities of tickets in active milestones as of now.
func applyEscalation(ctx context.Context, deps escalationDeps, actor, timestamp string, now time.Time) {
	for _, t := range deps.tickets.List() {
		m, ok := deps.engine.MilestoneFor(t.ID)
		if !ok || !deps.engine.IsActive(m) {
			continue
		}
		days := domain.DaysUntilInclusive(now, domain.MustDate(m.DueDate))
		next := EscalatedPriority(t, days)
		if next == t.Priority {
			continue
		}
		old := t.Priority
		t.Priority = next
		id := t.ID
		publish(ctx, deps.dispatcher, events.New(events.EventTicketPriorityChanged, actor, timestamp, &id,
			events.TicketPriorityChangedPayload{OldPriority: old, NewPriority: next, Reason: "due_date_proximity"}))
	}
}

// forceCritical moves every non-CLOSED member of m to CRITICAL.
func forceCritical(ctx context.Context, deps escalationDeps, m *domain.Milestone, actor, timestamp, reason string) {
	for _, id := range m.Tickets {
		t, err := deps.tickets.GetByID(id)
		if err != nil || t.Status == domain.TicketStatusClosed || t.Priority == domain.PriorityCritical {
			continue
		}
		old := t.Priority
		t.Priority = domain.PriorityCritical
		ticketID := t.ID
		publish(ctx, deps.dispatcher, events.New(events.EventTicketPriorityChanged, actor, timestamp, &ticketID,
			events.TicketPriorityChangedPayload{OldPriority: old, NewPriority: domain.PriorityCritical, Reason: reason}))
	}
}
