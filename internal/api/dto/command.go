package dto

import (
	"encoding/json"
	"fmt"

	"github.com/spec-kit/project-tracker/internal/domain"
)

// Kind names a command. Records with a kind outside this set decode with a
// nil payload and are ignored by the router.
type Kind string

const (
	KindReportTicket         Kind = "reportTicket"
	KindViewTickets          Kind = "viewTickets"
	KindStartTestingPhase    Kind = "startTestingPhase"
	KindLostInvestors        Kind = "lostInvestors"
	KindCreateMilestone      Kind = "createMilestone"
	KindViewMilestones       Kind = "viewMilestones"
	KindAssignTicket         Kind = "assignTicket"
	KindUndoAssignTicket     Kind = "undoAssignTicket"
	KindViewAssignedTickets  Kind = "viewAssignedTickets"
	KindChangeStatus         Kind = "changeStatus"
	KindUndoChangeStatus     Kind = "undoChangeStatus"
	KindViewTicketHistory    Kind = "viewTicketHistory"
	KindAddComment           Kind = "addComment"
	KindUndoAddComment       Kind = "undoAddComment"
	KindSearch               Kind = "search"
	KindViewNotifications    Kind = "viewNotifications"
	KindCustomerImpactReport Kind = "generateCustomerImpactReport"
	KindTicketRiskReport     Kind = "generateTicketRiskReport"
	KindResolutionEfficiency Kind = "generateResolutionEfficiencyReport"
	KindAppStabilityReport   Kind = "appStabilityReport"
	KindPerformanceReport    Kind = "generatePerformanceReport"
)

// Command is one decoded input record. Payload holds the kind-specific
// struct: ReportTicketPayload, CreateMilestonePayload, TicketPayload,
// CommentPayload or SearchPayload; it is nil for kinds without fields.
// PayloadErr is set instead of Payload when the kind-specific fields could
// not be decoded; the record still runs and answers with an error.
type Command struct {
	Kind       Kind
	Username   string
	Timestamp  string
	Payload    any
	PayloadErr error
}

type envelope struct {
	Command   Kind   `json:"command"`
	Username  string `json:"username"`
	Timestamp string `json:"timestamp"`
}

// ReportTicketParams is the params object of reportTicket.
type ReportTicketParams struct {
	Type             domain.TicketType     `json:"type"`
	Title            string                `json:"title"`
	Description      string                `json:"description"`
	BusinessPriority domain.Priority       `json:"businessPriority"`
	ReportedBy       string                `json:"reportedBy"`
	ExpertiseArea    domain.ExpertiseArea  `json:"expertiseArea"`
	Severity         domain.Severity       `json:"severity"`
	Frequency        domain.Frequency      `json:"frequency"`
	BusinessValue    domain.BusinessValue  `json:"businessValue"`
	CustomerDemand   domain.CustomerDemand `json:"customerDemand"`
	UsabilityScore   *int                  `json:"usabilityScore"`
}

// ReportTicketPayload carries reportTicket fields.
type ReportTicketPayload struct {
	Params ReportTicketParams `json:"params"`
}

// CreateMilestonePayload carries createMilestone fields.
type CreateMilestonePayload struct {
	Name         string   `json:"name"`
	DueDate      string   `json:"dueDate"`
	BlockingFor  []string `json:"blockingFor"`
	Tickets      []int    `json:"tickets"`
	AssignedDevs []string `json:"assignedDevs"`
}

// TicketPayload is shared by the ticket-scoped commands.
type TicketPayload struct {
	TicketID int `json:"ticketID"`
}

// CommentPayload carries addComment and undoAddComment fields.
type CommentPayload struct {
	TicketID int    `json:"ticketID"`
	Comment  string `json:"comment"`
}

// SearchFilters is the filters object of search.
type SearchFilters struct {
	SearchType             string               `json:"searchType"`
	Type                   domain.TicketType    `json:"type"`
	BusinessPriority       domain.Priority      `json:"businessPriority"`
	CreatedAfter           string               `json:"createdAfter"`
	Keywords               []string             `json:"keywords"`
	AvailableForAssignment bool                 `json:"availableForAssignment"`
	ExpertiseArea          domain.ExpertiseArea `json:"expertiseArea"`
	Seniority              domain.Seniority     `json:"seniority"`
}

// SearchPayload carries search fields.
type SearchPayload struct {
	Filters SearchFilters `json:"filters"`
}

// DecodeCommand parses one raw record into its typed form. Only a record
// that is not an object with string command fields is an error.
func DecodeCommand(raw []byte) (Command, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Command{}, fmt.Errorf("decode command: %w", err)
	}
	cmd := Command{Kind: env.Command, Username: env.Username, Timestamp: env.Timestamp}

	var err error
	switch env.Command {
	case KindReportTicket:
		cmd.Payload, err = decodeAs[ReportTicketPayload](raw)
	case KindCreateMilestone:
		cmd.Payload, err = decodeAs[CreateMilestonePayload](raw)
	case KindAssignTicket, KindUndoAssignTicket, KindChangeStatus, KindUndoChangeStatus:
		cmd.Payload, err = decodeAs[TicketPayload](raw)
	case KindAddComment, KindUndoAddComment:
		cmd.Payload, err = decodeAs[CommentPayload](raw)
	case KindSearch:
		cmd.Payload, err = decodeAs[SearchPayload](raw)
	}
	if err != nil {
		cmd.Payload = nil
		cmd.PayloadErr = fmt.Errorf("decode %s payload: %w", env.Command, err)
	}
	return cmd, nil
}

func decodeAs[T any](raw []byte) (any, error) {
	var payload T
	err := json.Unmarshal(raw, &payload)
	return payload, err
}

// PayloadAs extracts the typed payload of cmd.
func PayloadAs[T any](cmd Command) (T, error) {
	p, ok := cmd.Payload.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("command %s: payload is %T, want %T", cmd.Kind, cmd.Payload, zero)
	}
	return p, nil
}
