package repository

import (
	"time"

	"github.com/spec-kit/project-tracker/internal/domain"
)

// ProjectState tracks the testing phase window and whether replay was halted.
type ProjectState struct {
	testingDays  int
	testingStart time.Time
	started      bool
	stopped      bool
}

// NewProjectState builds a state whose testing phases last testingDays.
func NewProjectState(testingDays int) *ProjectState {
	return &ProjectState{testingDays: testingDays}
}

// StartTestingPhase (re)starts the window at date.
func (s *ProjectState) StartTestingPhase(date time.Time) {
	s.testingStart = date
	s.started = true
}

// IsTestingPhase reports whether date falls inside the window. When no phase
// was ever started the first check starts one at date.
func (s *ProjectState) IsTestingPhase(date time.Time) bool {
	if !s.started {
		s.StartTestingPhase(date)
	}
	return domain.DaysBetween(s.testingStart, date) < s.testingDays
}

// Stop halts replay after the current command.
func (s *ProjectState) Stop() {
	s.stopped = true
}

// Stopped reports whether Stop was called.
func (s *ProjectState) Stopped() bool {
	return s.stopped
}
