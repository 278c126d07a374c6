package service

import (
	"go.uber.org/zap"

	"github.com/spec-kit/project-tracker/internal/config"
	"github.com/spec-kit/project-tracker/internal/events"
	"github.com/spec-kit/project-tracker/internal/repository"
)

// Services is every service of one run, built over a single store.
type Services struct {
	Store         *repository.Store
	Engine        *MilestoneEngine
	Tickets       *TicketService
	Assignment    *AssignmentService
	Comments      *CommentService
	Milestones    *MilestoneService
	Notifications *NotificationService
	Reports       *ReportService
	Search        *SearchService
	Phase         *PhaseService
}

// Options configures optional collaborators of New.
type Options struct {
	Dispatcher   events.Dispatcher
	Mirror       repository.NotificationMirror
	Logger       *zap.Logger
	Notification config.NotificationConfig
}

// New wires the services over store. Notification handlers are not
// registered; callers do that through the notification worker.
func New(store *repository.Store, opts Options) *Services {
	dispatcher := opts.Dispatcher
	if dispatcher == nil {
		dispatcher = events.NewInMemoryDispatcher()
	}
	engine := NewMilestoneEngine(store)
	assignment := NewAssignmentService(AssignmentDependencies{Store: store, Engine: engine, Dispatcher: dispatcher})
	reports := NewReportService(ReportDependencies{Store: store})

	return &Services{
		Store:      store,
		Engine:     engine,
		Tickets:    NewTicketService(TicketDependencies{Store: store, Engine: engine, Dispatcher: dispatcher}),
		Assignment: assignment,
		Comments:   NewCommentService(CommentDependencies{Store: store, Dispatcher: dispatcher}),
		Milestones: NewMilestoneService(MilestoneDependencies{Store: store, Engine: engine, Dispatcher: dispatcher}),
		Notifications: NewNotificationService(NotificationDependencies{
			Store:      store,
			Engine:     engine,
			Mirror:     opts.Mirror,
			Dispatcher: dispatcher,
			Logger:     opts.Logger,
			Config:     opts.Notification,
		}),
		Reports: reports,
		Search:  NewSearchService(SearchDependencies{Store: store, Engine: engine, Assignment: assignment, Reports: reports}),
		Phase:   NewPhaseService(store),
	}
}
