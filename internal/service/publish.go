package service

import (
	"context"

	"github.com/spec-kit/project-tracker/internal/events"
	"github.com/spec-kit/project-tracker/internal/repository"
)

// escalationDeps is what the priority rules need to mutate and announce.
type escalationDeps struct {
	tickets    repository.TicketRepository
	engine     *MilestoneEngine
	dispatcher events.Dispatcher
}

// publish delivers event synchronously. Handler failures never fail the command.
func publish(ctx context.Context, dispatcher events.Dispatcher, event events.Event) {
	if dispatcher == nil {
		return
	}
	_ = dispatcher.Publish(ctx, event)
}
