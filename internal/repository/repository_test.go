package repository

import (
	"errors"
	"reflect"
	"testing"

	"github.com/spec-kit/project-tracker/internal/domain"
)

func TestTicketRepositoryAllocatesSequentialIDs(t *testing.T) {
	repo := NewTicketRepository()
	for want := 0; want < 3; want++ {
		if got := repo.NextID(); got != want {
			t.Fatalf("NextID() = %d, want %d", got, want)
		}
	}
	if err := repo.Create(&domain.Ticket{ID: 2}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := repo.Create(&domain.Ticket{ID: 2}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate Create() error = %v", err)
	}
	if _, err := repo.GetByID(0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetByID(0) error = %v", err)
	}
}

func TestTicketFilter(t *testing.T) {
	repo := NewTicketRepository()
	tickets := []*domain.Ticket{
		{ID: 0, Type: domain.TicketTypeBug, Priority: domain.PriorityLow, Status: domain.TicketStatusOpen, CreatedAt: "2025-10-01", ReportedBy: "rita"},
		{ID: 1, Type: domain.TicketTypeFeatureRequest, Priority: domain.PriorityHigh, Status: domain.TicketStatusOpen, CreatedAt: "2025-10-02", ReportedBy: "rita"},
		{ID: 2, Type: domain.TicketTypeBug, Priority: domain.PriorityHigh, Status: domain.TicketStatusInProgress, CreatedAt: "2025-10-03", ReportedBy: "sam", AssignedTo: "dev"},
	}
	for _, tk := range tickets {
		if err := repo.Create(tk); err != nil {
			t.Fatal(err)
		}
	}

	rita, dev, after := "rita", "dev", "2025-10-01"
	tests := []struct {
		name   string
		filter TicketFilter
		want   []int
	}{
		{"all", TicketFilter{}, []int{0, 1, 2}},
		{"reporter", TicketFilter{ReportedBy: &rita}, []int{0, 1}},
		{"assignee", TicketFilter{AssignedTo: &dev}, []int{2}},
		{"open bugs", TicketFilter{Statuses: []domain.TicketStatus{domain.TicketStatusOpen}, Types: []domain.TicketType{domain.TicketTypeBug}}, []int{0}},
		{"high", TicketFilter{Priorities: []domain.Priority{domain.PriorityHigh}}, []int{1, 2}},
		{"created after is strict", TicketFilter{CreatedAfter: &after}, []int{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []int
			for _, tk := range repo.ListWithFilter(tt.filter) {
				got = append(got, tk.ID)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ids = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMilestoneRepositoryIndex(t *testing.T) {
	repo := NewMilestoneRepository()
	for _, name := range []string{"B", "A"} {
		if err := repo.Create(&domain.Milestone{Name: name}); err != nil {
			t.Fatal(err)
		}
	}
	if err := repo.Create(&domain.Milestone{Name: "A"}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate error = %v", err)
	}
	repo.LinkTicket(7, "A")
	m, ok := repo.MilestoneForTicket(7)
	if !ok || m.Name != "A" {
		t.Fatalf("MilestoneForTicket(7) = %v, %v", m, ok)
	}
	if _, ok := repo.MilestoneForTicket(8); ok {
		t.Fatal("unlinked ticket must have no milestone")
	}
	var names []string
	for _, m := range repo.List() {
		names = append(names, m.Name)
	}
	if !reflect.DeepEqual(names, []string{"B", "A"}) {
		t.Fatalf("List() order = %v", names)
	}
}

func TestNotificationRepository(t *testing.T) {
	repo := NewNotificationRepository()
	repo.Push("dev", "one")
	repo.Push("dev", "two")
	if got := repo.Drain("dev"); !reflect.DeepEqual(got, []string{"one", "two"}) {
		t.Fatalf("Drain() = %v", got)
	}
	if got := repo.Drain("dev"); got == nil || len(got) != 0 {
		t.Fatalf("second Drain() = %#v, want empty non-nil", got)
	}
	if !repo.MarkOnce("DUE_TOMORROW:A", "2025-10-10") || repo.MarkOnce("DUE_TOMORROW:A", "2025-10-11") {
		t.Fatal("MarkOnce must fire exactly once per key")
	}
}

func TestProjectStateTestingWindow(t *testing.T) {
	state := NewProjectState(12)
	start := domain.MustDate("2025-10-01")
	if !state.IsTestingPhase(start) {
		t.Fatal("first check starts the phase")
	}
	if !state.IsTestingPhase(domain.MustDate("2025-10-12")) {
		t.Fatal("day 11 is inside the window")
	}
	if state.IsTestingPhase(domain.MustDate("2025-10-13")) {
		t.Fatal("day 12 is outside the window")
	}
	state.StartTestingPhase(domain.MustDate("2025-11-01"))
	if !state.IsTestingPhase(domain.MustDate("2025-11-05")) {
		t.Fatal("restarted window must apply")
	}
	state.Stop()
	if !state.Stopped() {
		t.Fatal("Stopped() = false after Stop()")
	}
}

func TestNotificationKey(t *testing.T) {
	if got := NotificationKey("tracker", "dev"); got != "tracker:notifications:dev" {
		t.Fatalf("NotificationKey = %q", got)
	}
	if got := NotificationKey("", "dev"); got != "notifications:dev" {
		t.Fatalf("NotificationKey without prefix = %q", got)
	}
}
