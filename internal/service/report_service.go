package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/spec-kit/project-tracker/internal/domain"
	"github.com/spec-kit/project-tracker/internal/repository"
	apperrors "github.com/spec-kit/project-tracker/pkg/util"
)

// ByType holds one value per ticket type.
type ByType[T any] struct {
	Bug            T
	FeatureRequest T
	UIFeedback     T
}

func (b *ByType[T]) at(t domain.TicketType) *T {
	switch t {
	case domain.TicketTypeFeatureRequest:
		return &b.FeatureRequest
	case domain.TicketTypeUIFeedback:
		return &b.UIFeedback
	}
	return &b.Bug
}

// ByPriority holds a count per business priority.
type ByPriority struct {
	Low      int
	Medium   int
	High     int
	Critical int
}

func (b *ByPriority) add(p domain.Priority) {
	switch p {
	case domain.PriorityMedium:
		b.Medium++
	case domain.PriorityHigh:
		b.High++
	case domain.PriorityCritical:
		b.Critical++
	default:
		b.Low++
	}
}

// TicketBreakdown is the count section shared by every aggregate report.
type TicketBreakdown struct {
	Total      int
	ByType     ByType[int]
	ByPriority ByPriority
}

// CustomerImpactReport sums impact scores per type.
type CustomerImpactReport struct {
	TicketBreakdown
	ImpactByType ByType[float64]
}

// TicketRiskReport grades open tickets per type.
type TicketRiskReport struct {
	TicketBreakdown
	RiskByType ByType[string]
}

// ResolutionEfficiencyReport compares SLA to actual days for milestone tickets.
type ResolutionEfficiencyReport struct {
	TicketBreakdown
	EfficiencyByType ByType[float64]
}

// AppStabilityReport combines risk and impact of open tickets.
type AppStabilityReport struct {
	TicketBreakdown
	RiskByType   ByType[string]
	ImpactByType ByType[float64]
	AppStability string
}

// PerformanceRow is one developer in the performance report.
type PerformanceRow struct {
	Username              string
	ClosedTickets         int
	AverageResolutionTime float64
	PerformanceScore      float64
	Seniority             domain.Seniority
}

// ReportService computes manager reports over the current ticket set.
type ReportService struct {
	users      repository.UserRepository
	tickets    repository.TicketRepository
	milestones repository.MilestoneRepository
}

// ReportDependencies bundles collaborators.
type ReportDependencies struct {
	Store *repository.Store
}

// NewReportService creates the service.
func NewReportService(deps ReportDependencies) *ReportService {
	return &ReportService{
		users:      deps.Store.Users,
		tickets:    deps.Store.Tickets,
		milestones: deps.Store.Milestones,
	}
}

func breakdown(tickets []*domain.Ticket) TicketBreakdown {
	b := TicketBreakdown{Total: len(tickets)}
	for _, t := range tickets {
		*b.ByType.at(t.Type)++
		b.ByPriority.add(t.Priority)
	}
	return b
}

func groupByType(tickets []*domain.Ticket) ByType[[]*domain.Ticket] {
	var groups ByType[[]*domain.Ticket]
	for _, t := range tickets {
		g := groups.at(t.Type)
		*g = append(*g, t)
	}
	return groups
}

func (s *ReportService) openTickets() []*domain.Ticket {
	return s.tickets.ListWithFilter(repository.TicketFilter{Statuses: []domain.TicketStatus{domain.TicketStatusOpen}})
}

func sumImpact(tickets []*domain.Ticket, score func(*domain.Ticket) float64) ByType[float64] {
	var impact ByType[float64]
	for _, t := range tickets {
		*impact.at(t.Type) += score(t)
	}
	for _, tt := range domain.TicketTypes {
		*impact.at(tt) = round2(*impact.at(tt))
	}
	return impact
}

// CustomerImpact covers every ticket except LOW priority UI_FEEDBACK.
func (s *ReportService) CustomerImpact() CustomerImpactReport {
	var considered []*domain.Ticket
	for _, t := range s.tickets.List() {
		if t.Type == domain.TicketTypeUIFeedback && t.Priority == domain.PriorityLow {
			continue
		}
		considered = append(considered, t)
	}
	return CustomerImpactReport{
		TicketBreakdown: breakdown(considered),
		ImpactByType:    sumImpact(considered, CustomerImpact),
	}
}

// TicketRisk grades OPEN tickets per type.
func (s *ReportService) TicketRisk() TicketRiskReport {
	open := s.openTickets()
	groups := groupByType(open)
	report := TicketRiskReport{TicketBreakdown: breakdown(open)}
	for _, tt := range domain.TicketTypes {
		*report.RiskByType.at(tt) = riskLabel(*groups.at(tt), 3.0, RiskMajor)
	}
	return report
}

// ResolutionEfficiency covers tickets linked to a milestone.
func (s *ReportService) ResolutionEfficiency() ResolutionEfficiencyReport {
	var linked []*domain.Ticket
	for _, t := range s.tickets.List() {
		if _, ok := s.milestones.MilestoneForTicket(t.ID); ok {
			linked = append(linked, t)
		}
	}
	groups := groupByType(linked)
	report := ResolutionEfficiencyReport{TicketBreakdown: breakdown(linked)}
	for _, tt := range domain.TicketTypes {
		*report.EfficiencyByType.at(tt) = efficiency(*groups.at(tt))
	}
	return report
}

// AppStability grades OPEN tickets and decides STABLE or UNSTABLE from the
// BUG risk and impact.
func (s *ReportService) AppStability() AppStabilityReport {
	open := s.openTickets()
	groups := groupByType(open)
	report := AppStabilityReport{
		TicketBreakdown: breakdown(open),
		ImpactByType:    sumImpact(open, StabilityImpact),
		AppStability:    StabilityStable,
	}
	for _, tt := range domain.TicketTypes {
		*report.RiskByType.at(tt) = riskLabel(*groups.at(tt), 3.5, RiskSignificant)
	}
	if report.RiskByType.Bug == RiskSignificant || report.ImpactByType.Bug >= 50 {
		report.AppStability = StabilityUnstable
	}
	return report
}

// Performance rates the manager's subordinate developers on the tickets they
// closed during the calendar month before timestamp.
func (s *ReportService) Performance(manager *domain.User, timestamp string) ([]PerformanceRow, error) {
	now, err := parseTimestamp(timestamp)
	if err != nil {
		return nil, err
	}
	profile, ok := manager.Manager()
	if !ok {
		return nil, apperrors.NewForbidden(fmt.Sprintf("The user %s is not a manager.", manager.Username))
	}
	year, month := domain.PreviousMonth(now)

	var devs []*domain.User
	for _, name := range profile.Subordinates {
		u, err := s.users.GetByUsername(name)
		if err != nil || u.Role != domain.RoleDeveloper {
			continue
		}
		devs = append(devs, u)
	}
	sort.Slice(devs, func(i, j int) bool { return devs[i].Username < devs[j].Username })

	rows := make([]PerformanceRow, 0, len(devs))
	for _, dev := range devs {
		rows = append(rows, s.performanceRow(dev, year, month))
	}
	return rows, nil
}

// DeveloperScore is the score dev would get in a performance report generated
// at now. Developer search shows it.
func (s *ReportService) DeveloperScore(dev *domain.User, now time.Time) float64 {
	year, month := domain.PreviousMonth(now)
	return s.performanceRow(dev, year, month).PerformanceScore
}

func (s *ReportService) performanceRow(dev *domain.User, year int, month time.Month) PerformanceRow {
	row := PerformanceRow{Username: dev.Username}
	if profile, ok := dev.Developer(); ok {
		row.Seniority = profile.Seniority
	}

	totalDays := 0
	for _, t := range s.tickets.ListWithFilter(repository.TicketFilter{AssignedTo: &dev.Username}) {
		closedAt, ok := t.FirstTransitionTo(domain.TicketStatusClosed)
		if !ok {
			continue
		}
		d := domain.MustDate(closedAt)
		if d.Year() != year || d.Month() != month {
			continue
		}
		row.ClosedTickets++
		totalDays += domain.DaysBetween(domain.MustDate(t.AssignedAt), domain.MustDate(t.SolvedAt)) + 1
	}

	if row.ClosedTickets > 0 {
		row.AverageResolutionTime = round2(float64(totalDays) / float64(row.ClosedTickets))
		row.PerformanceScore = PerformanceScore(row.Seniority, row.ClosedTickets, row.AverageResolutionTime)
	}
	return row
}
