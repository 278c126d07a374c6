package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/spec-kit/project-tracker/internal/domain"
	"github.com/spec-kit/project-tracker/internal/events"
	"github.com/spec-kit/project-tracker/internal/repository"
	apperrors "github.com/spec-kit/project-tracker/pkg/util"
)

// MinCommentLength is the shortest accepted comment, in characters.
const MinCommentLength = 10

const previewLength = 40

// CommentService manages ticket comments.
type CommentService struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
}

// CommentDependencies bundles collaborators.
type CommentDependencies struct {
	Store      *repository.Store
	Dispatcher events.Dispatcher
}

// NewCommentService creates the service.
func NewCommentService(deps CommentDependencies) *CommentService {
	return &CommentService{tickets: deps.Store.Tickets, dispatcher: deps.Dispatcher}
}

// Add appends a comment. Unknown tickets are ignored.
func (s *CommentService) Add(ctx context.Context, user *domain.User, ticketID int, content, timestamp string) error {
	ticket, err := s.tickets.GetByID(ticketID)
	if err != nil {
		return nil
	}
	if user.Role == domain.RoleReporter && ticket.Status == domain.TicketStatusClosed {
		return apperrors.NewDomainError(apperrors.CodeClosedTicket, "Reporters cannot comment on CLOSED tickets.", nil)
	}
	if ticket.IsAnonymous() {
		return errAnonymousComments
	}
	if utf8.RuneCountInString(content) < MinCommentLength {
		return apperrors.NewDomainError(apperrors.CodeTooShort,
			fmt.Sprintf("Comment must be at least %d characters long.", MinCommentLength), nil)
	}
	if err := checkCommentAccess(user, ticket); err != nil {
		return err
	}

	ticket.AddComment(domain.Comment{Author: user.Username, Content: content, CreatedAt: timestamp})
	publish(ctx, s.dispatcher, events.New(events.EventTicketCommentAdded, user.Username, timestamp, &ticket.ID,
		events.TicketCommentAddedPayload{Author: user.Username, BodyPreview: preview(content)}))
	return nil
}

// Undo removes the caller's most recent comment; nothing to remove is not an error.
func (s *CommentService) Undo(user *domain.User, ticketID int) error {
	ticket, err := s.tickets.GetByID(ticketID)
	if err != nil {
		return nil
	}
	if ticket.IsAnonymous() {
		return errAnonymousComments
	}
	if err := checkCommentAccess(user, ticket); err != nil {
		return err
	}
	ticket.RemoveLastCommentBy(user.Username)
	return nil
}

var errAnonymousComments = apperrors.NewDomainError(apperrors.CodeAnonymousTicket,
	"Comments are not allowed on anonymous tickets.", nil)

// checkCommentAccess: developers only on their assigned tickets, reporters
// only on their own reports. Managers are unrestricted.
func checkCommentAccess(user *domain.User, ticket *domain.Ticket) error {
	switch user.Role {
	case domain.RoleDeveloper:
		if !ticket.IsAssignedTo(user.Username) {
			return apperrors.NewDomainError(apperrors.CodeNotAuthorizedToComment,
				fmt.Sprintf("Ticket %d is not assigned to the developer %s.", ticket.ID, user.Username), nil)
		}
	case domain.RoleReporter:
		if ticket.ReportedBy != user.Username {
			return apperrors.NewDomainError(apperrors.CodeNotAuthorizedToComment,
				fmt.Sprintf("Reporter %s cannot comment on ticket %d.", user.Username, ticket.ID), nil)
		}
	}
	return nil
}

func preview(content string) string {
	runes := []rune(content)
	if len(runes) <= previewLength {
		return content
	}
	return string(runes[:previewLength]) + "..."
}
