package service

import (
	"github.com/spec-kit/project-tracker/internal/repository"
)

// PhaseService controls the project phase and run lifetime.
type PhaseService struct {
	project *repository.ProjectState
}

// NewPhaseService creates the service.
func NewPhaseService(store *repository.Store) *PhaseService {
	return &PhaseService{project: store.Project}
}

// StartTesting opens a new testing window at timestamp.
func (s *PhaseService) StartTesting(timestamp string) error {
	now, err := parseTimestamp(timestamp)
	if err != nil {
		return err
	}
	s.project.StartTestingPhase(now)
	return nil
}

// Stop halts the replay after the current command.
func (s *PhaseService) Stop() {
	s.project.Stop()
}

// Stopped reports whether Stop was called.
func (s *PhaseService) Stopped() bool {
	return s.project.Stopped()
}
