package service

import (
	"context"
	"fmt"

	"github.com/spec-kit/project-tracker/internal/domain"
	"github.com/spec-kit/project-tracker/internal/events"
	"github.com/spec-kit/project-tracker/internal/repository"
	apperrors "github.com/spec-kit/project-tracker/pkg/util"
)

// AssignmentService handles developer self-assignment.
type AssignmentService struct {
	tickets    repository.TicketRepository
	engine     *MilestoneEngine
	dispatcher events.Dispatcher
}

// AssignmentDependencies bundles collaborators.
type AssignmentDependencies struct {
	Store      *repository.Store
	Engine     *MilestoneEngine
	Dispatcher events.Dispatcher
}

// NewAssignmentService creates the service.
func NewAssignmentService(deps AssignmentDependencies) *AssignmentService {
	return &AssignmentService{
		tickets:    deps.Store.Tickets,
		engine:     deps.Engine,
		dispatcher: deps.Dispatcher,
	}
}

// Assign lets a developer take an OPEN ticket.
func (s *AssignmentService) Assign(ctx context.Context, dev *domain.User, ticketID int, timestamp string) error {
	ticket, err := s.tickets.GetByID(ticketID)
	if err != nil {
		return ticketNotFound(ticketID, err)
	}
	if ticket.Status != domain.TicketStatusOpen {
		return apperrors.NewDomainError(apperrors.CodeNotOpen, "Only OPEN tickets can be assigned.",
			map[string]any{"ticket_id": ticketID, "status": ticket.Status})
	}
	if err := s.CheckEligibility(dev, ticket); err != nil {
		return err
	}

	ticket.AssignTo(dev.Username, timestamp)

	payload := events.TicketAssignedPayload{Developer: dev.Username}
	if m, ok := s.engine.MilestoneFor(ticket.ID); ok {
		payload.Milestone = m.Name
	}
	publish(ctx, s.dispatcher, events.New(events.EventTicketAssigned, dev.Username, timestamp, &ticket.ID, payload))
	return nil
}

// Unassign returns an IN_PROGRESS ticket to OPEN; only the current assignee
// may do it.
func (s *AssignmentService) Unassign(ctx context.Context, dev *domain.User, ticketID int, timestamp string) error {
	ticket, err := s.tickets.GetByID(ticketID)
	if err != nil {
		return ticketNotFound(ticketID, err)
	}
	if !ticket.IsAssignedTo(dev.Username) {
		return apperrors.NewDomainError(apperrors.CodeNotAssignee,
			fmt.Sprintf("The ticket %d is not assigned to %s.", ticketID, dev.Username),
			map[string]any{"ticket_id": ticketID, "username": dev.Username})
	}

	if !ticket.Unassign(dev.Username, timestamp) {
		return apperrors.NewDomainError(apperrors.CodeNotInProgress,
			fmt.Sprintf("Only IN_PROGRESS tickets can be unassigned. Ticket %d is %s.", ticketID, ticket.Status),
			map[string]any{"ticket_id": ticketID, "status": string(ticket.Status)})
	}
	publish(ctx, s.dispatcher, events.New(events.EventTicketDeAssigned, dev.Username, timestamp, &ticket.ID,
		events.TicketAssignedPayload{Developer: dev.Username}))
	return nil
}

// CheckEligibility runs the milestone, blocking, expertise and seniority
// rules in that order and returns the first violation.
func (s *AssignmentService) CheckEligibility(dev *domain.User, ticket *domain.Ticket) error {
	profile, ok := dev.Developer()
	if !ok {
		return apperrors.NewForbidden(fmt.Sprintf("The user %s is not a developer.", dev.Username))
	}

	if m, ok := s.engine.MilestoneFor(ticket.ID); ok {
		if !m.HasDeveloper(dev.Username) {
			return apperrors.NewDomainError(apperrors.CodeNotMilestoneMember,
				fmt.Sprintf("Developer %s is not assigned to milestone %s.", dev.Username, m.Name),
				map[string]any{"milestone": m.Name})
		}
		if s.engine.IsBlocked(m) {
			return apperrors.NewDomainError(apperrors.CodeMilestoneBlocked,
				fmt.Sprintf("Cannot assign ticket %d from blocked milestone %s.", ticket.ID, m.Name),
				map[string]any{"milestone": m.Name})
		}
	}

	if ticket.ExpertiseArea != "" && !domain.CanHandle(profile.Expertise, ticket.ExpertiseArea) {
		return apperrors.NewDomainError(apperrors.CodeExpertiseMismatch,
			fmt.Sprintf("Developer %s cannot assign ticket %d due to expertise area. Required: %s; Current: %s.",
				dev.Username, ticket.ID, domain.RequiredExpertise(ticket.ExpertiseArea), profile.Expertise),
			nil)
	}

	if ticket.Priority.Rank() >= domain.PriorityHigh.Rank() && profile.Seniority == domain.SeniorityJunior {
		return apperrors.NewDomainError(apperrors.CodeSeniorityMismatch,
			fmt.Sprintf("Developer %s cannot assign ticket %d due to seniority level. Required: MID, SENIOR; Current: %s.",
				dev.Username, ticket.ID, profile.Seniority),
			nil)
	}
	return nil
}
