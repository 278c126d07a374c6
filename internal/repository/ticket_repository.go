package repository

import (
	"fmt"

	"github.com/spec-kit/project-tracker/internal/domain"
)

// TicketFilter captures list criteria. Nil and empty fields match everything.
type TicketFilter struct {
	ReportedBy   *string
	AssignedTo   *string
	Statuses     []domain.TicketStatus
	Types        []domain.TicketType
	Priorities   []domain.Priority
	CreatedAfter *string
}

// TicketRepository owns tickets and the sequential id allocator.
type TicketRepository interface {
	NextID() int
	Create(ticket *domain.Ticket) error
	GetByID(id int) (*domain.Ticket, error)
	List() []*domain.Ticket
	ListWithFilter(filter TicketFilter) []*domain.Ticket
}

type ticketRepository struct {
	nextID  int
	tickets []*domain.Ticket
	byID    map[int]*domain.Ticket
}

// NewTicketRepository instantiates an empty repository whose first id is 0.
func NewTicketRepository() TicketRepository {
	return &ticketRepository{byID: make(map[int]*domain.Ticket)}
}

// NextID hands out ids monotonically; an id is consumed even when the
// caller later discards the ticket.
func (r *ticketRepository) NextID() int {
	id := r.nextID
	r.nextID++
	return id
}

func (r *ticketRepository) Create(ticket *domain.Ticket) error {
	if _, exists := r.byID[ticket.ID]; exists {
		return fmt.Errorf("ticket %d: %w", ticket.ID, ErrDuplicate)
	}
	r.tickets = append(r.tickets, ticket)
	r.byID[ticket.ID] = ticket
	return nil
}

func (r *ticketRepository) GetByID(id int) (*domain.Ticket, error) {
	ticket, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return ticket, nil
}

// List returns tickets in creation order, which is also id order.
func (r *ticketRepository) List() []*domain.Ticket {
	result := make([]*domain.Ticket, len(r.tickets))
	copy(result, r.tickets)
	return result
}

func (r *ticketRepository) ListWithFilter(filter TicketFilter) []*domain.Ticket {
	var result []*domain.Ticket
	for _, ticket := range r.tickets {
		if filter.matches(ticket) {
			result = append(result, ticket)
		}
	}
	return result
}

func (f TicketFilter) matches(t *domain.Ticket) bool {
	if f.ReportedBy != nil && t.ReportedBy != *f.ReportedBy {
		return false
	}
	if f.AssignedTo != nil && t.AssignedTo != *f.AssignedTo {
		return false
	}
	if len(f.Statuses) > 0 && !contains(f.Statuses, t.Status) {
		return false
	}
	if len(f.Types) > 0 && !contains(f.Types, t.Type) {
		return false
	}
	if len(f.Priorities) > 0 && !contains(f.Priorities, t.Priority) {
		return false
	}
	// ISO dates compare lexically.
	if f.CreatedAfter != nil && t.CreatedAt <= *f.CreatedAfter {
		return false
	}
	return true
}

func contains[T comparable](values []T, v T) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
