package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/spec-kit/project-tracker/internal/domain"
	"github.com/spec-kit/project-tracker/internal/events"
	"github.com/spec-kit/project-tracker/internal/repository"
	apperrors "github.com/spec-kit/project-tracker/pkg/util"
)

// MilestoneService creates and lists milestones.
type MilestoneService struct {
	users      repository.UserRepository
	tickets    repository.TicketRepository
	milestones repository.MilestoneRepository
	project    *repository.ProjectState
	engine     *MilestoneEngine
	dispatcher events.Dispatcher
}

// MilestoneDependencies bundles collaborators.
type MilestoneDependencies struct {
	Store      *repository.Store
	Engine     *MilestoneEngine
	Dispatcher events.Dispatcher
}

// CreateMilestoneInput describes a createMilestone payload.
type CreateMilestoneInput struct {
	Name         string
	DueDate      string
	BlockingFor  []string
	Tickets      []int
	AssignedDevs []string
}

// NewMilestoneService creates the service.
func NewMilestoneService(deps MilestoneDependencies) *MilestoneService {
	return &MilestoneService{
		users:      deps.Store.Users,
		tickets:    deps.Store.Tickets,
		milestones: deps.Store.Milestones,
		project:    deps.Store.Project,
		engine:     deps.Engine,
		dispatcher: deps.Dispatcher,
	}
}

// Create validates and stores a milestone, links its tickets and announces it.
func (s *MilestoneService) Create(ctx context.Context, manager *domain.User, timestamp string, input CreateMilestoneInput) (*domain.Milestone, error) {
	now, err := parseTimestamp(timestamp)
	if err != nil {
		return nil, err
	}
	if s.project.IsTestingPhase(now) {
		return nil, apperrors.NewDomainError(apperrors.CodeInvalidPhase,
			"Milestones can only be created during development phases.", nil)
	}
	if _, err := domain.ParseDate(input.DueDate); err != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("Invalid due date %s.", input.DueDate), nil)
	}

	for _, dev := range input.AssignedDevs {
		user, err := s.users.GetByUsername(dev)
		if err != nil {
			return nil, apperrors.NewDomainError(apperrors.CodeUnknownOrWrongRole,
				fmt.Sprintf("The user %s does not exist.", dev), map[string]any{"username": dev})
		}
		if user.Role != domain.RoleDeveloper {
			return nil, apperrors.NewDomainError(apperrors.CodeUnknownOrWrongRole,
				fmt.Sprintf("The user %s is not a developer.", dev), map[string]any{"username": dev})
		}
	}
	for _, id := range input.Tickets {
		if _, err := s.tickets.GetByID(id); err != nil {
			return nil, ticketNotFound(id, err)
		}
	}
	for _, id := range input.Tickets {
		if existing, ok := s.milestones.MilestoneForTicket(id); ok {
			return nil, apperrors.NewDomainError(apperrors.CodeAlreadyLinked,
				fmt.Sprintf("Tickets %d already assigned to milestone %s.", id, existing.Name),
				map[string]any{"ticket_id": id, "milestone": existing.Name})
		}
	}

	milestone := &domain.Milestone{
		Name:         input.Name,
		BlockingFor:  append([]string{}, input.BlockingFor...),
		DueDate:      input.DueDate,
		CreatedAt:    timestamp,
		CreatedBy:    manager.Username,
		Tickets:      append([]int{}, input.Tickets...),
		AssignedDevs: append([]string{}, input.AssignedDevs...),
	}
	if err := s.milestones.Create(milestone); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("Milestone %s already exists.", input.Name),
				map[string]any{"milestone": input.Name})
		}
		return nil, apperrors.NewInternalError(err)
	}

	for _, id := range milestone.Tickets {
		s.milestones.LinkTicket(id, milestone.Name)
		if t, err := s.tickets.GetByID(id); err == nil {
			t.LinkMilestone(milestone.Name, manager.Username, timestamp)
		}
	}

	publish(ctx, s.dispatcher, events.New(events.EventMilestoneCreated, manager.Username, timestamp, nil,
		events.MilestoneCreatedPayload{
			Name:         milestone.Name,
			DueDate:      milestone.DueDate,
			Tickets:      milestone.Tickets,
			AssignedDevs: milestone.AssignedDevs,
		}))
	return milestone, nil
}

// ListVisible returns snapshots of the milestones a manager created or a
// developer belongs to, ordered by due date then name.
func (s *MilestoneService) ListVisible(user *domain.User, timestamp string) ([]MilestoneSnapshot, error) {
	now, err := parseTimestamp(timestamp)
	if err != nil {
		return nil, err
	}

	var visible []*domain.Milestone
	for _, m := range s.milestones.List() {
		switch user.Role {
		case domain.RoleManager:
			if m.CreatedBy == user.Username {
				visible = append(visible, m)
			}
		case domain.RoleDeveloper:
			if m.HasDeveloper(user.Username) {
				visible = append(visible, m)
			}
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		if visible[i].DueDate != visible[j].DueDate {
			return visible[i].DueDate < visible[j].DueDate
		}
		return visible[i].Name < visible[j].Name
	})

	snapshots := make([]MilestoneSnapshot, 0, len(visible))
	for _, m := range visible {
		snapshots = append(snapshots, s.engine.Snapshot(m, now))
	}
	return snapshots, nil
}
