package repository

// Store bundles the repositories that make up one run's state. It is created
// once per run and passed to every service; it is not safe for concurrent use.
type Store struct {
	Users         UserRepository
	Tickets       TicketRepository
	Milestones    MilestoneRepository
	Notifications NotificationRepository
	Project       *ProjectState
}

// NewStore builds an empty store.
func NewStore(testingDays int) *Store {
	return &Store{
		Users:         NewUserRepository(),
		Tickets:       NewTicketRepository(),
		Milestones:    NewMilestoneRepository(),
		Notifications: NewNotificationRepository(),
		Project:       NewProjectState(testingDays),
	}
}
