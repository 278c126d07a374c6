package domain

// MilestoneStatus is derived from the member tickets.
type MilestoneStatus string

const (
	MilestoneStatusActive    MilestoneStatus = "ACTIVE"
	MilestoneStatusCompleted MilestoneStatus = "COMPLETED"
)

// Milestone groups tickets under a due date. Tickets and AssignedDevs are
// fixed at creation.
type Milestone struct {
	Name         string
	BlockingFor  []string
	DueDate      string
	CreatedAt    string
	CreatedBy    string
	Tickets      []int
	AssignedDevs []string

	everBlocked bool
}

// HasDeveloper reports whether username is one of the assigned developers.
func (m *Milestone) HasDeveloper(username string) bool {
	for _, dev := range m.AssignedDevs {
		if dev == username {
			return true
		}
	}
	return false
}

// Blocks reports whether m lists name in its blockingFor set.
func (m *Milestone) Blocks(name string) bool {
	for _, other := range m.BlockingFor {
		if other == name {
			return true
		}
	}
	return false
}

// ObserveBlocked latches the ever-blocked flag; it never resets.
func (m *Milestone) ObserveBlocked(blocked bool) {
	if blocked {
		m.everBlocked = true
	}
}

// WasEverBlocked reports whether the milestone was observed blocked.
func (m *Milestone) WasEverBlocked() bool {
	return m.everBlocked
}
