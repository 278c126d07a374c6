package command

import (
	"context"

	"github.com/spec-kit/project-tracker/internal/api/dto"
	"github.com/spec-kit/project-tracker/internal/service"
)

// TicketHandler serves ticket reporting, listing, assignment, status and
// comment commands.
type TicketHandler struct {
	tickets    *service.TicketService
	assignment *service.AssignmentService
	comments   *service.CommentService
}

// NewTicketHandler constructs handler.
func NewTicketHandler(tickets *service.TicketService, assignment *service.AssignmentService, comments *service.CommentService) *TicketHandler {
	return &TicketHandler{tickets: tickets, assignment: assignment, comments: comments}
}

// Report handles reportTicket. Success yields no result.
func (h *TicketHandler) Report(ctx context.Context, cmd dto.Command) (*dto.Result, error) {
	payload, err := dto.PayloadAs[dto.ReportTicketPayload](cmd)
	if err != nil {
		return nil, err
	}
	p := payload.Params
	_, err = h.tickets.Report(ctx, principal(ctx), cmd.Timestamp, service.ReportTicketInput{
		Type:           p.Type,
		Title:          p.Title,
		Description:    p.Description,
		Priority:       p.BusinessPriority,
		ReportedBy:     p.ReportedBy,
		ExpertiseArea:  p.ExpertiseArea,
		Severity:       p.Severity,
		Frequency:      p.Frequency,
		BusinessValue:  p.BusinessValue,
		CustomerDemand: p.CustomerDemand,
		UsabilityScore: p.UsabilityScore,
	})
	return nil, err
}

// View handles viewTickets.
func (h *TicketHandler) View(ctx context.Context, cmd dto.Command) (*dto.Result, error) {
	tickets, err := h.tickets.ListVisible(ctx, principal(ctx), cmd.Timestamp)
	if err != nil {
		return nil, err
	}
	return dto.BodyResult(cmd, dto.TicketsBody{Tickets: ticketViews(tickets)}), nil
}

// ViewAssigned handles viewAssignedTickets.
func (h *TicketHandler) ViewAssigned(ctx context.Context, cmd dto.Command) (*dto.Result, error) {
	tickets := h.tickets.ListAssigned(principal(ctx))
	return dto.BodyResult(cmd, dto.AssignedTicketsBody{AssignedTickets: ticketViews(tickets)}), nil
}

// Assign handles assignTicket.
func (h *TicketHandler) Assign(ctx context.Context, cmd dto.Command) (*dto.Result, error) {
	payload, err := dto.PayloadAs[dto.TicketPayload](cmd)
	if err != nil {
		return nil, err
	}
	return nil, h.assignment.Assign(ctx, principal(ctx), payload.TicketID, cmd.Timestamp)
}

// Unassign handles undoAssignTicket.
func (h *TicketHandler) Unassign(ctx context.Context, cmd dto.Command) (*dto.Result, error) {
	payload, err := dto.PayloadAs[dto.TicketPayload](cmd)
	if err != nil {
		return nil, err
	}
	return nil, h.assignment.Unassign(ctx, principal(ctx), payload.TicketID, cmd.Timestamp)
}

// ChangeStatus handles changeStatus.
func (h *TicketHandler) ChangeStatus(ctx context.Context, cmd dto.Command) (*dto.Result, error) {
	payload, err := dto.PayloadAs[dto.TicketPayload](cmd)
	if err != nil {
		return nil, err
	}
	return nil, h.tickets.ChangeStatus(ctx, principal(ctx), payload.TicketID, cmd.Timestamp)
}

// UndoChangeStatus handles undoChangeStatus.
func (h *TicketHandler) UndoChangeStatus(ctx context.Context, cmd dto.Command) (*dto.Result, error) {
	payload, err := dto.PayloadAs[dto.TicketPayload](cmd)
	if err != nil {
		return nil, err
	}
	return nil, h.tickets.UndoChangeStatus(ctx, principal(ctx), payload.TicketID, cmd.Timestamp)
}

// History handles viewTicketHistory.
func (h *TicketHandler) History(ctx context.Context, cmd dto.Command) (*dto.Result, error) {
	tickets := h.tickets.History(principal(ctx))
	entries := make([]dto.TicketHistoryView, 0, len(tickets))
	for _, t := range tickets {
		entries = append(entries, ticketHistoryView(t))
	}
	return dto.BodyResult(cmd, dto.TicketHistoryBody{TicketHistory: entries}), nil
}

// AddComment handles addComment.
func (h *TicketHandler) AddComment(ctx context.Context, cmd dto.Command) (*dto.Result, error) {
	payload, err := dto.PayloadAs[dto.CommentPayload](cmd)
	if err != nil {
		return nil, err
	}
	return nil, h.comments.Add(ctx, principal(ctx), payload.TicketID, payload.Comment, cmd.Timestamp)
}

// UndoComment handles undoAddComment.
func (h *TicketHandler) UndoComment(ctx context.Context, cmd dto.Command) (*dto.Result, error) {
	payload, err := dto.PayloadAs[dto.CommentPayload](cmd)
	if err != nil {
		return nil, err
	}
	return nil, h.comments.Undo(principal(ctx), payload.TicketID)
}
