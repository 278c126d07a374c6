package observability

import (
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Outcome classifies how a command finished.
type Outcome string

const (
	OutcomeResult  Outcome = "result"
	OutcomeSilent  Outcome = "silent"
	OutcomeError   Outcome = "error"
	OutcomeIgnored Outcome = "ignored"
)

// Metrics provides basic in-memory counters per command kind.
type Metrics struct {
	mu           sync.Mutex
	commandCount map[string]int64
	outcomeCount map[Outcome]int64
	errorCount   map[string]int64
	elapsed      time.Duration
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		commandCount: make(map[string]int64),
		outcomeCount: make(map[Outcome]int64),
		errorCount:   make(map[string]int64),
	}
}

// RecordCommand counts one executed command.
func (m *Metrics) RecordCommand(kind string, outcome Outcome, duration time.Duration) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commandCount[kind]++
	m.outcomeCount[outcome]++
	m.elapsed += duration
}

// RecordError counts a failed command by error code.
func (m *Metrics) RecordError(kind, code string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[kind+"|"+code]++
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Commands map[string]int64
	Outcomes map[Outcome]int64
	Errors   map[string]int64
	Total    int64
	Elapsed  time.Duration
}

// Snapshot copies the current counters.
func (m *Metrics) Snapshot() Snapshot {
	snap := Snapshot{
		Commands: map[string]int64{},
		Outcomes: map[Outcome]int64{},
		Errors:   map[string]int64{},
	}
	if m == nil {
		return snap
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range m.commandCount {
		snap.Commands[k] = v
		snap.Total += v
	}
	for k, v := range m.outcomeCount {
		snap.Outcomes[k] = v
	}
	for k, v := range m.errorCount {
		snap.Errors[k] = v
	}
	snap.Elapsed = m.elapsed
	return snap
}

// Log writes the snapshot as a single structured entry.
func (s Snapshot) Log(logger *zap.Logger) {
	errorKeys := make([]string, 0, len(s.Errors))
	for k := range s.Errors {
		errorKeys = append(errorKeys, k)
	}
	sort.Strings(errorKeys)

	logger.Info("replay metrics",
		zap.Int64("commands", s.Total),
		zap.Int64("results", s.Outcomes[OutcomeResult]),
		zap.Int64("errors", s.Outcomes[OutcomeError]),
		zap.Int64("silent", s.Outcomes[OutcomeSilent]),
		zap.Int64("ignored", s.Outcomes[OutcomeIgnored]),
		zap.Any("by_command", s.Commands),
		zap.Strings("error_codes", errorKeys),
		zap.Duration("elapsed", s.Elapsed),
	)
}
