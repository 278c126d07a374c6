package domain

// TicketType enumerates the kinds of reported tickets.
type TicketType string

const (
	TicketTypeBug            TicketType = "BUG"
	TicketTypeFeatureRequest TicketType = "FEATURE_REQUEST"
	TicketTypeUIFeedback     TicketType = "UI_FEEDBACK"
)

// TicketTypes lists every type in report order.
var TicketTypes = []TicketType{TicketTypeBug, TicketTypeFeatureRequest, TicketTypeUIFeedback}

// Valid reports whether t is a known type.
func (t TicketType) Valid() bool {
	for _, candidate := range TicketTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "OPEN"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusResolved   TicketStatus = "RESOLVED"
	TicketStatusClosed     TicketStatus = "CLOSED"
)

// Priority enumerates business priority, lowest first.
type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

// Priorities lists every priority in ascending order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

// Rank is the ordinal of p (LOW=0 ... CRITICAL=3); unknown values rank as LOW.
func (p Priority) Rank() int {
	for i, candidate := range Priorities {
		if candidate == p {
			return i
		}
	}
	return 0
}

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	for _, candidate := range Priorities {
		if candidate == p {
			return true
		}
	}
	return false
}

// Max returns the higher of p and other.
func (p Priority) Max(other Priority) Priority {
	if other.Rank() > p.Rank() {
		return other
	}
	return p
}

// Severity of a BUG ticket.
type Severity string

const (
	SeverityMinor    Severity = "MINOR"
	SeverityModerate Severity = "MODERATE"
	SeveritySevere   Severity = "SEVERE"
)

// Frequency of a BUG ticket.
type Frequency string

const (
	FrequencyRare       Frequency = "RARE"
	FrequencyOccasional Frequency = "OCCASIONAL"
	FrequencyFrequent   Frequency = "FREQUENT"
	FrequencyAlways     Frequency = "ALWAYS"
)

// BusinessValue sizes FEATURE_REQUEST and UI_FEEDBACK tickets.
type BusinessValue string

const (
	BusinessValueS  BusinessValue = "S"
	BusinessValueM  BusinessValue = "M"
	BusinessValueL  BusinessValue = "L"
	BusinessValueXL BusinessValue = "XL"
)

// CustomerDemand of a FEATURE_REQUEST ticket.
type CustomerDemand string

const (
	CustomerDemandLow      CustomerDemand = "LOW"
	CustomerDemandMedium   CustomerDemand = "MEDIUM"
	CustomerDemandHigh     CustomerDemand = "HIGH"
	CustomerDemandVeryHigh CustomerDemand = "VERY_HIGH"
)

// Comment is a message left on a ticket.
type Comment struct {
	Author    string
	Content   string
	CreatedAt string
}

// ActionKind identifies an entry of the ticket action log.
type ActionKind string

const (
	ActionAddedToMilestone ActionKind = "ADDED_TO_MILESTONE"
	ActionAssigned         ActionKind = "ASSIGNED"
	ActionDeAssigned       ActionKind = "DE-ASSIGNED"
	ActionStatusChanged    ActionKind = "STATUS_CHANGED"
)

// Action is an immutable audit entry. Milestone is set for
// ADDED_TO_MILESTONE, From and To for STATUS_CHANGED.
type Action struct {
	Kind      ActionKind
	By        string
	Timestamp string
	Milestone string
	From      TicketStatus
	To        TicketStatus
}

// Ticket is the aggregate for reported work items.
type Ticket struct {
	ID          int
	Type        TicketType
	Title       string
	Description string
	Priority    Priority
	Status      TicketStatus
	CreatedAt   string
	AssignedAt  string
	SolvedAt    string
	AssignedTo  string
	ReportedBy  string

	ExpertiseArea  ExpertiseArea
	Severity       Severity
	Frequency      Frequency
	BusinessValue  BusinessValue
	CustomerDemand CustomerDemand
	UsabilityScore *int

	Comments []Comment
	Actions  []Action

	statusHistory []TicketStatus
}

// IsAnonymous reports whether the ticket has no reporter.
func (t *Ticket) IsAnonymous() bool {
	return t.ReportedBy == ""
}

// IsAssignedTo reports whether username is the current assignee.
func (t *Ticket) IsAssignedTo(username string) bool {
	return t.AssignedTo != "" && t.AssignedTo == username
}

// InvolvedActor reports whether username performed any logged action.
func (t *Ticket) InvolvedActor(username string) bool {
	for _, a := range t.Actions {
		if a.By == username {
			return true
		}
	}
	return false
}

// FirstTransitionTo returns the timestamp of the first STATUS_CHANGED entry
// whose target is one of statuses.
func (t *Ticket) FirstTransitionTo(statuses ...TicketStatus) (string, bool) {
	for _, a := range t.Actions {
		if a.Kind != ActionStatusChanged {
			continue
		}
		for _, s := range statuses {
			if a.To == s {
				return a.Timestamp, true
			}
		}
	}
	return "", false
}

// LastTransitionTo returns the timestamp of the most recent STATUS_CHANGED
// entry targeting status.
func (t *Ticket) LastTransitionTo(status TicketStatus) (string, bool) {
	for i := len(t.Actions) - 1; i >= 0; i-- {
		a := t.Actions[i]
		if a.Kind == ActionStatusChanged && a.To == status {
			return a.Timestamp, true
		}
	}
	return "", false
}
