package command

import (
	"github.com/spec-kit/project-tracker/internal/api/dto"
	"github.com/spec-kit/project-tracker/internal/domain"
	"github.com/spec-kit/project-tracker/internal/service"
)

var (
	reporters  = []domain.Role{domain.RoleReporter}
	developers = []domain.Role{domain.RoleDeveloper}
	managers   = []domain.Role{domain.RoleManager}
	everyone   = []domain.Role{domain.RoleReporter, domain.RoleDeveloper, domain.RoleManager}
)

// RouteConfig bundles the handlers for route registration.
type RouteConfig struct {
	Tickets       *TicketHandler
	Milestones    *MilestoneHandler
	Phase         *PhaseHandler
	Search        *SearchHandler
	Notifications *NotificationHandler
	Reports       *ReportHandler
}

// NewRouteConfig builds every handler over svc.
func NewRouteConfig(svc *service.Services) RouteConfig {
	return RouteConfig{
		Tickets:       NewTicketHandler(svc.Tickets, svc.Assignment, svc.Comments),
		Milestones:    NewMilestoneHandler(svc.Milestones),
		Phase:         NewPhaseHandler(svc.Phase),
		Search:        NewSearchHandler(svc.Search),
		Notifications: NewNotificationHandler(svc.Notifications),
		Reports:       NewReportHandler(svc.Reports),
	}
}

// RegisterRoutes wires the command catalog. Role lists keep the order used
// in permission errors.
func RegisterRoutes(r *Router, cfg RouteConfig) {
	r.Register(dto.KindReportTicket, reporters, cfg.Tickets.Report)
	r.Register(dto.KindViewTickets, everyone, cfg.Tickets.View)
	r.Register(dto.KindStartTestingPhase, managers, cfg.Phase.StartTesting)
	r.Register(dto.KindLostInvestors, managers, cfg.Phase.LostInvestors)

	r.Register(dto.KindCreateMilestone, managers, cfg.Milestones.Create)
	r.Register(dto.KindViewMilestones, []domain.Role{domain.RoleManager, domain.RoleDeveloper}, cfg.Milestones.View)

	r.Register(dto.KindAssignTicket, developers, cfg.Tickets.Assign)
	r.Register(dto.KindUndoAssignTicket, developers, cfg.Tickets.Unassign)
	r.Register(dto.KindViewAssignedTickets, developers, cfg.Tickets.ViewAssigned)
	r.Register(dto.KindChangeStatus, developers, cfg.Tickets.ChangeStatus)
	r.Register(dto.KindUndoChangeStatus, developers, cfg.Tickets.UndoChangeStatus)
	r.Register(dto.KindViewTicketHistory, developers, cfg.Tickets.History)

	r.Register(dto.KindAddComment, everyone, cfg.Tickets.AddComment)
	r.Register(dto.KindUndoAddComment, everyone, cfg.Tickets.UndoComment)
	r.Register(dto.KindSearch, []domain.Role{domain.RoleManager, domain.RoleDeveloper, domain.RoleReporter}, cfg.Search.Search)
	r.Register(dto.KindViewNotifications, []domain.Role{domain.RoleDeveloper, domain.RoleManager, domain.RoleReporter}, cfg.Notifications.View)

	r.Register(dto.KindCustomerImpactReport, managers, cfg.Reports.CustomerImpact)
	r.Register(dto.KindTicketRiskReport, managers, cfg.Reports.TicketRisk)
	r.Register(dto.KindResolutionEfficiency, managers, cfg.Reports.ResolutionEfficiency)
	r.Register(dto.KindAppStabilityReport, managers, cfg.Reports.AppStability)
	r.Register(dto.KindPerformanceReport, managers, cfg.Reports.Performance)
}
