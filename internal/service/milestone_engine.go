package service

import (
	"sort"
	"time"

	"github.com/spec-kit/project-tracker/internal/domain"
	"github.com/spec-kit/project-tracker/internal/repository"
)

// MilestoneEngine computes derived milestone state. Nothing it returns is
// cached; every call reads the current store.
type MilestoneEngine struct {
	tickets    repository.TicketRepository
	milestones repository.MilestoneRepository
}

// NewMilestoneEngine builds the engine over store.
func NewMilestoneEngine(store *repository.Store) *MilestoneEngine {
	return &MilestoneEngine{tickets: store.Tickets, milestones: store.Milestones}
}

// Repartition is one developer's share of a milestone.
type Repartition struct {
	Developer       string
	AssignedTickets []int
}

// MilestoneSnapshot is a milestone together with its derived state at a date.
type MilestoneSnapshot struct {
	Milestone            *domain.Milestone
	Status               domain.MilestoneStatus
	IsBlocked            bool
	DaysUntilDue         int
	OverdueBy            int
	OpenTickets          []int
	ClosedTickets        []int
	CompletionPercentage float64
	Repartition          []Repartition
}

// MilestoneFor returns the milestone a ticket belongs to.
func (e *MilestoneEngine) MilestoneFor(ticketID int) (*domain.Milestone, bool) {
	return e.milestones.MilestoneForTicket(ticketID)
}

// IsActive reports whether any member ticket is not CLOSED.
func (e *MilestoneEngine) IsActive(m *domain.Milestone) bool {
	for _, id := range m.Tickets {
		t, err := e.tickets.GetByID(id)
		if err == nil && t.Status != domain.TicketStatusClosed {
			return true
		}
	}
	return false
}

// IsBlocked reports whether another active milestone lists m in blockingFor.
func (e *MilestoneEngine) IsBlocked(m *domain.Milestone) bool {
	for _, other := range e.milestones.List() {
		if other == m {
			continue
		}
		if other.Blocks(m.Name) && e.IsActive(other) {
			return true
		}
	}
	return false
}

// ObserveBlocked samples IsBlocked into the ever-blocked latch of every milestone.
func (e *MilestoneEngine) ObserveBlocked() {
	for _, m := range e.milestones.List() {
		m.ObserveBlocked(e.IsBlocked(m))
	}
}

// completionDate is the latest day a member ticket was moved to CLOSED.
func (e *MilestoneEngine) completionDate(m *domain.Milestone) (time.Time, bool) {
	var latest time.Time
	found := false
	for _, id := range m.Tickets {
		t, err := e.tickets.GetByID(id)
		if err != nil {
			continue
		}
		ts, ok := t.LastTransitionTo(domain.TicketStatusClosed)
		if !ok {
			continue
		}
		if d := domain.MustDate(ts); !found || d.After(latest) {
			latest, found = d, true
		}
	}
	return latest, found
}

// Snapshot derives the state of m as seen at now.
func (e *MilestoneEngine) Snapshot(m *domain.Milestone, now time.Time) MilestoneSnapshot {
	snap := MilestoneSnapshot{
		Milestone:     m,
		Status:        domain.MilestoneStatusActive,
		IsBlocked:     e.IsBlocked(m),
		OpenTickets:   []int{},
		ClosedTickets: []int{},
	}

	reference := now
	if !e.IsActive(m) {
		snap.Status = domain.MilestoneStatusCompleted
		if completed, ok := e.completionDate(m); ok {
			reference = completed
		}
	}

	due := domain.MustDate(m.DueDate)
	snap.DaysUntilDue = domain.DaysUntilInclusive(reference, due)
	if reference.After(due) {
		snap.OverdueBy = domain.DaysBetween(due, reference) + 1
	}

	for _, id := range m.Tickets {
		t, err := e.tickets.GetByID(id)
		if err != nil {
			continue
		}
		if t.Status == domain.TicketStatusClosed {
			snap.ClosedTickets = append(snap.ClosedTickets, id)
		} else {
			snap.OpenTickets = append(snap.OpenTickets, id)
		}
	}
	sort.Ints(snap.OpenTickets)
	sort.Ints(snap.ClosedTickets)

	if len(m.Tickets) > 0 {
		snap.CompletionPercentage = round2(float64(len(snap.ClosedTickets)) / float64(len(m.Tickets)))
	}

	snap.Repartition = e.repartition(m)
	return snap
}

// repartition lists each assigned developer's member tickets, fewest first,
// ties by developer name.
func (e *MilestoneEngine) repartition(m *domain.Milestone) []Repartition {
	rows := make([]Repartition, 0, len(m.AssignedDevs))
	for _, dev := range m.AssignedDevs {
		row := Repartition{Developer: dev, AssignedTickets: []int{}}
		for _, id := range m.Tickets {
			t, err := e.tickets.GetByID(id)
			if err == nil && t.IsAssignedTo(dev) {
				row.AssignedTickets = append(row.AssignedTickets, id)
			}
		}
		sort.Ints(row.AssignedTickets)
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if len(rows[i].AssignedTickets) != len(rows[j].AssignedTickets) {
			return len(rows[i].AssignedTickets) < len(rows[j].AssignedTickets)
		}
		return rows[i].Developer < rows[j].Developer
	})
	return rows
}
