package command

import (
	"context"

	"github.com/spec-kit/project-tracker/internal/api/dto"
	"github.com/spec-kit/project-tracker/internal/service"
)

// MilestoneHandler serves createMilestone and viewMilestones.
type MilestoneHandler struct {
	milestones *service.MilestoneService
}

// NewMilestoneHandler constructs handler.
func NewMilestoneHandler(milestones *service.MilestoneService) *MilestoneHandler {
	return &MilestoneHandler{milestones: milestones}
}

// Create handles createMilestone. Success yields no result.
func (h *MilestoneHandler) Create(ctx context.Context, cmd dto.Command) (*dto.Result, error) {
	payload, err := dto.PayloadAs[dto.CreateMilestonePayload](cmd)
	if err != nil {
		return nil, err
	}
	_, err = h.milestones.Create(ctx, principal(ctx), cmd.Timestamp, service.CreateMilestoneInput{
		Name:         payload.Name,
		DueDate:      payload.DueDate,
		BlockingFor:  payload.BlockingFor,
		Tickets:      payload.Tickets,
		AssignedDevs: payload.AssignedDevs,
	})
	return nil, err
}

// View handles viewMilestones.
func (h *MilestoneHandler) View(ctx context.Context, cmd dto.Command) (*dto.Result, error) {
	snapshots, err := h.milestones.ListVisible(principal(ctx), cmd.Timestamp)
	if err != nil {
		return nil, err
	}
	views := make([]dto.MilestoneView, 0, len(snapshots))
	for _, snap := range snapshots {
		views = append(views, milestoneView(snap))
	}
	return dto.BodyResult(cmd, dto.MilestonesBody{Milestones: views}), nil
}
