package domain

import (
	"reflect"
	"testing"
)

func newOpenTicket() *Ticket {
	return &Ticket{
		ID:         0,
		Type:       TicketTypeBug,
		Title:      "Crash on login",
		Priority:   PriorityMedium,
		Status:     TicketStatusOpen,
		CreatedAt:  "2025-10-01",
		ReportedBy: "rita",
	}
}

func TestPriorityRankAndMax(t *testing.T) {
	if PriorityLow.Rank() != 0 || PriorityCritical.Rank() != 3 {
		t.Fatalf("unexpected ranks: low=%d critical=%d", PriorityLow.Rank(), PriorityCritical.Rank())
	}
	if got := PriorityMedium.Max(PriorityHigh); got != PriorityHigh {
		t.Fatalf("Max(MEDIUM, HIGH) = %s", got)
	}
	if got := PriorityCritical.Max(PriorityHigh); got != PriorityCritical {
		t.Fatalf("Max(CRITICAL, HIGH) = %s", got)
	}
}

func TestTicketLifecycleFollowsLinearOrder(t *testing.T) {
	tk := newOpenTicket()

	if _, _, ok := tk.Advance("dev", "2025-10-02"); ok {
		t.Fatal("OPEN ticket must not advance through change-status")
	}

	tk.AssignTo("dev", "2025-10-02")
	if tk.Status != TicketStatusInProgress || tk.AssignedTo != "dev" || tk.AssignedAt != "2025-10-02" {
		t.Fatalf("unexpected state after assign: %+v", tk)
	}

	steps := []TicketStatus{TicketStatusResolved, TicketStatusClosed}
	for _, want := range steps {
		_, to, ok := tk.Advance("dev", "2025-10-03")
		if !ok || to != want {
			t.Fatalf("Advance() = %s, %v; want %s", to, ok, want)
		}
	}
	if tk.SolvedAt != "2025-10-03" {
		t.Fatalf("solvedAt = %q", tk.SolvedAt)
	}
	if _, _, ok := tk.Advance("dev", "2025-10-04"); ok {
		t.Fatal("CLOSED ticket must not advance")
	}

	kinds := make([]ActionKind, 0, len(tk.Actions))
	for _, a := range tk.Actions {
		kinds = append(kinds, a.Kind)
	}
	want := []ActionKind{ActionAssigned, ActionStatusChanged, ActionStatusChanged, ActionStatusChanged}
	if !reflect.DeepEqual(kinds, want) {
		t.Fatalf("actions = %v, want %v", kinds, want)
	}
}

func TestUndoStatusPopsOneStep(t *testing.T) {
	tk := newOpenTicket()
	tk.AssignTo("dev", "2025-10-02")
	tk.Advance("dev", "2025-10-03")
	tk.Advance("dev", "2025-10-04")

	from, to, ok := tk.UndoStatus("dev", "2025-10-05")
	if !ok || from != TicketStatusClosed || to != TicketStatusResolved {
		t.Fatalf("UndoStatus() = %s -> %s, %v", from, to, ok)
	}
	tk.UndoStatus("dev", "2025-10-05")
	if tk.Status != TicketStatusInProgress {
		t.Fatalf("status = %s, want IN_PROGRESS", tk.Status)
	}
	if tk.SolvedAt != "2025-10-03" {
		t.Fatalf("undo must keep solvedAt, got %q", tk.SolvedAt)
	}
	if _, _, ok := tk.UndoStatus("dev", "2025-10-06"); ok {
		t.Fatal("assignment is not an undoable status step")
	}

	last := tk.Actions[len(tk.Actions)-1]
	if last.From != TicketStatusResolved || last.To != TicketStatusInProgress {
		t.Fatalf("mirrored action = %+v", last)
	}
}

func TestUnassignRestoresOpen(t *testing.T) {
	tk := newOpenTicket()
	tk.AssignTo("dev", "2025-10-02")
	if !tk.Unassign("dev", "2025-10-03") {
		t.Fatal("Unassign() of an IN_PROGRESS ticket must succeed")
	}

	if tk.Status != TicketStatusOpen || tk.AssignedTo != "" || tk.AssignedAt != "" {
		t.Fatalf("unexpected state after unassign: %+v", tk)
	}
	if got := tk.Actions[len(tk.Actions)-1].Kind; got != ActionDeAssigned {
		t.Fatalf("last action = %s", got)
	}
}

func TestUnassignOnlyFromInProgress(t *testing.T) {
	tk := newOpenTicket()
	tk.AssignTo("dev", "2025-10-02")
	tk.Advance("dev", "2025-10-03")
	tk.Advance("dev", "2025-10-04")
	actions := len(tk.Actions)

	if tk.Unassign("dev", "2025-10-05") {
		t.Fatal("Unassign() must refuse a CLOSED ticket")
	}
	if tk.Status != TicketStatusClosed || tk.AssignedTo != "dev" || len(tk.Actions) != actions {
		t.Fatalf("refused unassign changed the ticket: %+v", tk)
	}

	tk.UndoStatus("dev", "2025-10-05")
	if tk.Unassign("dev", "2025-10-05") {
		t.Fatal("Unassign() must refuse a RESOLVED ticket")
	}

	tk.UndoStatus("dev", "2025-10-06")
	if !tk.Unassign("dev", "2025-10-06") {
		t.Fatal("Unassign() of an IN_PROGRESS ticket must succeed")
	}
	if tk.SolvedAt != "" {
		t.Fatalf("solvedAt after unassign = %q, want empty", tk.SolvedAt)
	}
	if _, _, ok := tk.UndoStatus("dev", "2025-10-07"); ok {
		t.Fatal("undo stack must be empty after returning to OPEN")
	}

	tk.AssignTo("dev", "2025-10-08")
	if _, _, ok := tk.UndoStatus("dev", "2025-10-08"); ok || tk.Status != TicketStatusInProgress {
		t.Fatalf("undo after reassign moved the ticket to %s", tk.Status)
	}
}

func TestRemoveLastCommentBySkipsOtherAuthors(t *testing.T) {
	tk := newOpenTicket()
	tk.AddComment(Comment{Author: "rita", Content: "first from rita"})
	tk.AddComment(Comment{Author: "dev", Content: "reply from dev"})
	tk.AddComment(Comment{Author: "rita", Content: "second from rita"})
	tk.AddComment(Comment{Author: "dev", Content: "another reply"})

	if !tk.RemoveLastCommentBy("rita") {
		t.Fatal("expected a comment to be removed")
	}
	got := make([]string, 0, len(tk.Comments))
	for _, c := range tk.Comments {
		got = append(got, c.Content)
	}
	want := []string{"first from rita", "reply from dev", "another reply"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("comments = %v, want %v", got, want)
	}
	if tk.RemoveLastCommentBy("nobody") {
		t.Fatal("unknown author must not remove anything")
	}
}

func TestTransitionLookups(t *testing.T) {
	tk := newOpenTicket()
	tk.AssignTo("dev", "2025-10-02")
	tk.Advance("dev", "2025-10-05")
	tk.Advance("dev", "2025-10-07")
	tk.UndoStatus("dev", "2025-10-08")
	tk.Advance("dev", "2025-10-09")

	if ts, ok := tk.FirstTransitionTo(TicketStatusResolved, TicketStatusClosed); !ok || ts != "2025-10-05" {
		t.Fatalf("FirstTransitionTo = %q, %v", ts, ok)
	}
	if ts, ok := tk.FirstTransitionTo(TicketStatusClosed); !ok || ts != "2025-10-07" {
		t.Fatalf("first CLOSED = %q, %v", ts, ok)
	}
	if ts, ok := tk.LastTransitionTo(TicketStatusClosed); !ok || ts != "2025-10-09" {
		t.Fatalf("last CLOSED = %q, %v", ts, ok)
	}
	if !tk.InvolvedActor("dev") || tk.InvolvedActor("rita") {
		t.Fatal("InvolvedActor mismatch")
	}
}
