package observability

import (
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/project-tracker/internal/config"
)

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordCommand("assignTicket", OutcomeError, time.Millisecond)
	m.RecordError("assignTicket", "NOT_OPEN")
	m.RecordCommand("assignTicket", OutcomeSilent, time.Millisecond)
	m.RecordCommand("viewTickets", OutcomeResult, time.Millisecond)

	snap := m.Snapshot()
	if snap.Total != 3 {
		t.Fatalf("Total = %d, want 3", snap.Total)
	}
	wantCommands := map[string]int64{"assignTicket": 2, "viewTickets": 1}
	if !reflect.DeepEqual(snap.Commands, wantCommands) {
		t.Fatalf("Commands = %v", snap.Commands)
	}
	if snap.Errors["assignTicket|NOT_OPEN"] != 1 {
		t.Fatalf("Errors = %v", snap.Errors)
	}
	if snap.Elapsed != 3*time.Millisecond {
		t.Fatalf("Elapsed = %s", snap.Elapsed)
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordCommand("x", OutcomeResult, 0)
	m.RecordError("x", "y")
	if snap := m.Snapshot(); snap.Total != 0 {
		t.Fatalf("nil snapshot total = %d", snap.Total)
	}
}

func TestSnapshotLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	m := NewMetrics()
	m.RecordCommand("search", OutcomeResult, 0)
	m.Snapshot().Log(zap.New(core))

	entries := logs.FilterMessage("replay metrics").All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries", len(entries))
	}
	if got := entries[0].ContextMap()["commands"]; got != int64(1) {
		t.Fatalf("commands field = %v", got)
	}
}

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	logger, err := NewLogger(config.LoggerConfig{Level: "chatty", Format: "xml"}, config.AppConfig{Name: "tracker"})
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	if logger.Core().Enabled(zap.DebugLevel) {
		t.Fatal("unknown level must fall back to info")
	}
}
