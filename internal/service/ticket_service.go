package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spec-kit/project-tracker/internal/domain"
	"github.com/spec-kit/project-tracker/internal/events"
	"github.com/spec-kit/project-tracker/internal/repository"
	apperrors "github.com/spec-kit/project-tracker/pkg/util"
)

// TicketService coordinates ticket reporting, listing and status workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	project    *repository.ProjectState
	engine     *MilestoneEngine
	dispatcher events.Dispatcher
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	Store      *repository.Store
	Engine     *MilestoneEngine
	Dispatcher events.Dispatcher
}

// ReportTicketInput describes a reportTicket payload.
type ReportTicketInput struct {
	Type           domain.TicketType
	Title          string
	Description    string
	Priority       domain.Priority
	ReportedBy     string
	ExpertiseArea  domain.ExpertiseArea
	Severity       domain.Severity
	Frequency      domain.Frequency
	BusinessValue  domain.BusinessValue
	CustomerDemand domain.CustomerDemand
	UsabilityScore *int
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.Store.Tickets,
		project:    deps.Store.Project,
		engine:     deps.Engine,
		dispatcher: deps.Dispatcher,
	}
}

// Report creates a ticket during a testing phase. The id is allocated before
// the anonymous rule is checked, so a rejected report still consumes one.
func (s *TicketService) Report(ctx context.Context, actor *domain.User, timestamp string, input ReportTicketInput) (*domain.Ticket, error) {
	now, err := parseTimestamp(timestamp)
	if err != nil {
		return nil, err
	}
	if !s.project.IsTestingPhase(now) {
		return nil, apperrors.NewDomainError(apperrors.CodeInvalidPhase,
			"Tickets can only be reported during testing phases.", nil)
	}
	if !input.Type.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("Unknown ticket type %s.", input.Type), nil)
	}
	if !input.Priority.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("Unknown business priority %s.", input.Priority), nil)
	}

	id := s.tickets.NextID()
	priority := input.Priority
	if input.ReportedBy == "" {
		if input.Type != domain.TicketTypeBug {
			return nil, apperrors.NewDomainError(apperrors.CodeAnonymousTicket,
				"Anonymous reports are only allowed for tickets of type BUG.", map[string]any{"ticket_id": id})
		}
		priority = domain.PriorityLow
	}

	ticket := &domain.Ticket{
		ID:             id,
		Type:           input.Type,
		Title:          input.Title,
		Description:    strings.TrimSpace(input.Description),
		Priority:       priority,
		Status:         domain.TicketStatusOpen,
		CreatedAt:      timestamp,
		ReportedBy:     input.ReportedBy,
		ExpertiseArea:  input.ExpertiseArea,
		Severity:       input.Severity,
		Frequency:      input.Frequency,
		BusinessValue:  input.BusinessValue,
		CustomerDemand: input.CustomerDemand,
		UsabilityScore: input.UsabilityScore,
	}
	if err := s.tickets.Create(ticket); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	publish(ctx, s.dispatcher, events.New(events.EventTicketReported, actor.Username, timestamp, &ticket.ID,
		events.TicketReportedPayload{Type: ticket.Type, Priority: ticket.Priority, Title: ticket.Title}))
	return ticket, nil
}

// ListVisible escalates priorities as of timestamp, then returns the tickets
// user may see ordered by creation date and id.
func (s *TicketService) ListVisible(ctx context.Context, user *domain.User, timestamp string) ([]*domain.Ticket, error) {
	now, err := parseTimestamp(timestamp)
	if err != nil {
		return nil, err
	}
	applyEscalation(ctx, s.escalationDeps(), user.Username, timestamp, now)

	var visible []*domain.Ticket
	switch user.Role {
	case domain.RoleManager:
		visible = s.tickets.List()
	case domain.RoleReporter:
		visible = s.tickets.ListWithFilter(repository.TicketFilter{ReportedBy: &user.Username})
	case domain.RoleDeveloper:
		open := s.tickets.ListWithFilter(repository.TicketFilter{Statuses: []domain.TicketStatus{domain.TicketStatusOpen}})
		for _, t := range open {
			if m, ok := s.engine.MilestoneFor(t.ID); ok && m.HasDeveloper(user.Username) {
				visible = append(visible, t)
			}
		}
	}

	sort.SliceStable(visible, func(i, j int) bool {
		if visible[i].CreatedAt != visible[j].CreatedAt {
			return visible[i].CreatedAt < visible[j].CreatedAt
		}
		return visible[i].ID < visible[j].ID
	})
	return visible, nil
}

// ListAssigned returns the caller's tickets, highest priority first, then by
// creation date and id.
func (s *TicketService) ListAssigned(user *domain.User) []*domain.Ticket {
	assigned := s.tickets.ListWithFilter(repository.TicketFilter{AssignedTo: &user.Username})
	sort.SliceStable(assigned, func(i, j int) bool {
		a, b := assigned[i], assigned[j]
		if a.Priority.Rank() != b.Priority.Rank() {
			return a.Priority.Rank() > b.Priority.Rank()
		}
		if a.CreatedAt != b.CreatedAt {
			return a.CreatedAt < b.CreatedAt
		}
		return a.ID < b.ID
	})
	return assigned
}

// ChangeStatus advances an assigned ticket one step. Unknown tickets and
// tickets with no forward move are ignored.
func (s *TicketService) ChangeStatus(ctx context.Context, user *domain.User, ticketID int, timestamp string) error {
	ticket, ok := s.ownedTicket(ticketID)
	if !ok {
		return nil
	}
	if !ticket.IsAssignedTo(user.Username) {
		return notAssignedToDeveloper(ticketID, user.Username)
	}
	from, to, moved := ticket.Advance(user.Username, timestamp)
	if !moved {
		return nil
	}
	publish(ctx, s.dispatcher, events.New(events.EventTicketStatusChanged, user.Username, timestamp, &ticket.ID,
		events.TicketStatusChangedPayload{OldStatus: from, NewStatus: to}))
	return nil
}

// UndoChangeStatus reverts the most recent status step of an assigned ticket.
func (s *TicketService) UndoChangeStatus(ctx context.Context, user *domain.User, ticketID int, timestamp string) error {
	ticket, ok := s.ownedTicket(ticketID)
	if !ok {
		return nil
	}
	if !ticket.IsAssignedTo(user.Username) {
		return notAssignedToDeveloper(ticketID, user.Username)
	}
	from, to, moved := ticket.UndoStatus(user.Username, timestamp)
	if !moved {
		return nil
	}
	publish(ctx, s.dispatcher, events.New(events.EventTicketStatusChanged, user.Username, timestamp, &ticket.ID,
		events.TicketStatusChangedPayload{OldStatus: from, NewStatus: to, Undo: true}))
	return nil
}

// History returns every ticket the user acted on, ordered by id.
func (s *TicketService) History(user *domain.User) []*domain.Ticket {
	var mine []*domain.Ticket
	for _, t := range s.tickets.List() {
		if t.InvolvedActor(user.Username) {
			mine = append(mine, t)
		}
	}
	sort.Slice(mine, func(i, j int) bool { return mine[i].ID < mine[j].ID })
	return mine
}

func (s *TicketService) ownedTicket(ticketID int) (*domain.Ticket, bool) {
	ticket, err := s.tickets.GetByID(ticketID)
	if err != nil {
		return nil, false
	}
	return ticket, true
}

func (s *TicketService) escalationDeps() escalationDeps {
	return escalationDeps{tickets: s.tickets, engine: s.engine, dispatcher: s.dispatcher}
}

func notAssignedToDeveloper(ticketID int, username string) error {
	return apperrors.NewDomainError(apperrors.CodeNotAssignee,
		fmt.Sprintf("Ticket %d is not assigned to developer %s.", ticketID, username),
		map[string]any{"ticket_id": ticketID, "username": username})
}

// parseTimestamp validates a command date.
func parseTimestamp(timestamp string) (time.Time, error) {
	t, err := domain.ParseDate(timestamp)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError(
			fmt.Sprintf("Invalid timestamp %s.", timestamp), map[string]any{"timestamp": timestamp})
	}
	return t, nil
}

// ticketNotFound builds the shared "does not exist" error.
func ticketNotFound(ticketID int, err error) error {
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewInternalError(err)
	}
	return apperrors.NewNotFound(fmt.Sprintf("The ticket %d does not exist.", ticketID),
		map[string]any{"ticket_id": ticketID})
}
