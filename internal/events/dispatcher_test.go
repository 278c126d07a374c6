package events

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestPublishRunsAllHandlersInOrder(t *testing.T) {
	d := NewInMemoryDispatcher()
	var calls []string
	boom := errors.New("boom")

	d.Subscribe(EventMilestoneCreated, func(_ context.Context, e Event) error {
		calls = append(calls, "first:"+e.Actor)
		return boom
	})
	d.Subscribe(EventMilestoneCreated, func(_ context.Context, e Event) error {
		calls = append(calls, "second:"+e.Actor)
		return nil
	})
	d.Subscribe(EventTicketReported, func(context.Context, Event) error {
		calls = append(calls, "unrelated")
		return nil
	})

	err := d.Publish(context.Background(), New(EventMilestoneCreated, "mgr", "2025-10-01", nil, nil))
	if !errors.Is(err, boom) {
		t.Fatalf("Publish() error = %v, want boom", err)
	}
	if want := []string{"first:mgr", "second:mgr"}; !reflect.DeepEqual(calls, want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
}

func TestNewAssignsUniqueIDs(t *testing.T) {
	id := 3
	a := New(EventTicketAssigned, "dev", "2025-10-01", &id, TicketAssignedPayload{Developer: "dev"})
	b := New(EventTicketAssigned, "dev", "2025-10-01", &id, TicketAssignedPayload{Developer: "dev"})
	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("ids must be unique and non-empty: %q %q", a.ID, b.ID)
	}
	if *a.TicketID != 3 {
		t.Fatalf("TicketID = %d", *a.TicketID)
	}
}

func TestObserversSeeEveryEventAfterHandlers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var calls []string
	d.SubscribeAll(func(_ context.Context, e Event) error {
		calls = append(calls, "observer:"+string(e.Type))
		return nil
	})
	d.Subscribe(EventTicketReported, func(context.Context, Event) error {
		calls = append(calls, "reported")
		return nil
	})

	for _, typ := range []EventType{EventTicketReported, EventTicketAssigned} {
		if err := d.Publish(context.Background(), New(typ, "rita", "2025-10-01", nil, nil)); err != nil {
			t.Fatalf("Publish(%s) error = %v", typ, err)
		}
	}
	want := []string{"reported", "observer:ticket_reported", "observer:ticket_assigned"}
	if !reflect.DeepEqual(calls, want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
}
