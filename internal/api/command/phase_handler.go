package command

import (
	"context"

	"github.com/spec-kit/project-tracker/internal/api/dto"
	"github.com/spec-kit/project-tracker/internal/service"
)

// PhaseHandler serves the project phase commands. Neither yields a result.
type PhaseHandler struct {
	phase *service.PhaseService
}

// NewPhaseHandler constructs handler.
func NewPhaseHandler(phase *service.PhaseService) *PhaseHandler {
	return &PhaseHandler{phase: phase}
}

// StartTesting handles startTestingPhase.
func (h *PhaseHandler) StartTesting(_ context.Context, cmd dto.Command) (*dto.Result, error) {
	return nil, h.phase.StartTesting(cmd.Timestamp)
}

// LostInvestors handles lostInvestors; the replay stops after it.
func (h *PhaseHandler) LostInvestors(context.Context, dto.Command) (*dto.Result, error) {
	h.phase.Stop()
	return nil, nil
}
