package command

import (
	"github.com/spec-kit/project-tracker/internal/api/dto"
	"github.com/spec-kit/project-tracker/internal/domain"
	"github.com/spec-kit/project-tracker/internal/service"
)

func ticketViews(tickets []*domain.Ticket) []dto.TicketView {
	views := make([]dto.TicketView, 0, len(tickets))
	for _, t := range tickets {
		views = append(views, ticketView(t))
	}
	return views
}

func ticketView(t *domain.Ticket) dto.TicketView {
	return dto.TicketView{
		ID:               t.ID,
		Type:             string(t.Type),
		Title:            t.Title,
		BusinessPriority: string(t.Priority),
		Status:           string(t.Status),
		CreatedAt:        t.CreatedAt,
		AssignedAt:       t.AssignedAt,
		SolvedAt:         t.SolvedAt,
		AssignedTo:       t.AssignedTo,
		ReportedBy:       t.ReportedBy,
		Comments:         commentViews(t.Comments),
	}
}

func commentViews(comments []domain.Comment) []dto.CommentView {
	views := make([]dto.CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, dto.CommentView{Author: c.Author, Content: c.Content, CreatedAt: c.CreatedAt})
	}
	return views
}

func ticketHistoryView(t *domain.Ticket) dto.TicketHistoryView {
	actions := make([]dto.ActionView, 0, len(t.Actions))
	for _, a := range t.Actions {
		actions = append(actions, dto.ActionView{
			Milestone: a.Milestone,
			From:      string(a.From),
			To:        string(a.To),
			By:        a.By,
			Timestamp: a.Timestamp,
			Action:    string(a.Kind),
		})
	}
	return dto.TicketHistoryView{
		ID:       t.ID,
		Title:    t.Title,
		Status:   string(t.Status),
		Actions:  actions,
		Comments: commentViews(t.Comments),
	}
}

func milestoneView(snap service.MilestoneSnapshot) dto.MilestoneView {
	m := snap.Milestone
	repartition := make([]dto.RepartitionView, 0, len(snap.Repartition))
	for _, row := range snap.Repartition {
		repartition = append(repartition, dto.RepartitionView{Developer: row.Developer, AssignedTickets: row.AssignedTickets})
	}
	return dto.MilestoneView{
		Name:                 m.Name,
		BlockingFor:          nonNil(m.BlockingFor),
		DueDate:              m.DueDate,
		CreatedAt:            m.CreatedAt,
		Tickets:              nonNil(m.Tickets),
		AssignedDevs:         nonNil(m.AssignedDevs),
		CreatedBy:            m.CreatedBy,
		Status:               string(snap.Status),
		IsBlocked:            snap.IsBlocked,
		DaysUntilDue:         snap.DaysUntilDue,
		OverdueBy:            snap.OverdueBy,
		OpenTickets:          snap.OpenTickets,
		ClosedTickets:        snap.ClosedTickets,
		CompletionPercentage: dto.Decimal(snap.CompletionPercentage),
		Repartition:          repartition,
	}
}

// nonNil keeps empty lists encoding as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
