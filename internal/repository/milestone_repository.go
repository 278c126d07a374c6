package repository

import (
	"fmt"

	"github.com/spec-kit/project-tracker/internal/domain"
)

// MilestoneRepository stores milestones and the ticket to milestone index.
type MilestoneRepository interface {
	Create(milestone *domain.Milestone) error
	List() []*domain.Milestone
	LinkTicket(ticketID int, milestone string)
	MilestoneForTicket(ticketID int) (*domain.Milestone, bool)
}

type milestoneRepository struct {
	ordered  []*domain.Milestone
	byName   map[string]*domain.Milestone
	byTicket map[int]string
}

// NewMilestoneRepository returns an empty in-memory repository.
func NewMilestoneRepository() MilestoneRepository {
	return &milestoneRepository{
		byName:   make(map[string]*domain.Milestone),
		byTicket: make(map[int]string),
	}
}

func (r *milestoneRepository) Create(milestone *domain.Milestone) error {
	if _, exists := r.byName[milestone.Name]; exists {
		return fmt.Errorf("milestone %s: %w", milestone.Name, ErrDuplicate)
	}
	r.ordered = append(r.ordered, milestone)
	r.byName[milestone.Name] = milestone
	return nil
}

// List returns milestones in creation order.
func (r *milestoneRepository) List() []*domain.Milestone {
	result := make([]*domain.Milestone, len(r.ordered))
	copy(result, r.ordered)
	return result
}

func (r *milestoneRepository) LinkTicket(ticketID int, milestone string) {
	r.byTicket[ticketID] = milestone
}

func (r *milestoneRepository) MilestoneForTicket(ticketID int) (*domain.Milestone, bool) {
	name, ok := r.byTicket[ticketID]
	if !ok {
		return nil, false
	}
	milestone, ok := r.byName[name]
	return milestone, ok
}
