package events

import (
	"github.com/google/uuid"

	"github.com/spec-kit/project-tracker/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketReported        EventType = "ticket_reported"
	EventTicketAssigned        EventType = "ticket_assigned"
	EventTicketDeAssigned      EventType = "ticket_de_assigned"
	EventTicketStatusChanged   EventType = "ticket_status_changed"
	EventTicketCommentAdded    EventType = "ticket_comment_added"
	EventTicketPriorityChanged EventType = "ticket_priority_changed"
	EventMilestoneCreated      EventType = "milestone_created"
)

// Event represents a domain event emitted by services. Timestamp is the
// command date that caused it.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	TicketID  *int      `json:"ticket_id,omitempty"`
	Actor     string    `json:"actor"`
	Timestamp string    `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// New builds an event with a fresh id.
func New(eventType EventType, actor, timestamp string, ticketID *int, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		TicketID:  ticketID,
		Actor:     actor,
		Timestamp: timestamp,
		Payload:   payload,
	}
}

// TicketReportedPayload payload.
type TicketReportedPayload struct {
	Type     domain.TicketType `json:"type"`
	Priority domain.Priority   `json:"priority"`
	Title    string            `json:"title"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	Developer string `json:"developer"`
	Milestone string `json:"milestone,omitempty"`
}

// TicketStatusChangedPayload payload. Undo marks a reverted step.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
	Undo      bool                `json:"undo,omitempty"`
}

// TicketPriorityChangedPayload payload.
type TicketPriorityChangedPayload struct {
	OldPriority domain.Priority `json:"old_priority"`
	NewPriority domain.Priority `json:"new_priority"`
	Reason      string          `json:"reason"`
}

// TicketCommentAddedPayload payload.
type TicketCommentAddedPayload struct {
	Author      string `json:"author"`
	BodyPreview string `json:"body_preview"`
}

// MilestoneCreatedPayload payload.
type MilestoneCreatedPayload struct {
	Name         string   `json:"name"`
	DueDate      string   `json:"due_date"`
	Tickets      []int    `json:"tickets"`
	AssignedDevs []string `json:"assigned_devs"`
}
