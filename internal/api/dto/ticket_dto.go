package dto

// TicketView is the ticket shape used by viewTickets and viewAssignedTickets.
type TicketView struct {
	ID               int           `json:"id"`
	Type             string        `json:"type"`
	Title            string        `json:"title"`
	BusinessPriority string        `json:"businessPriority"`
	Status           string        `json:"status"`
	CreatedAt        string        `json:"createdAt"`
	AssignedAt       string        `json:"assignedAt"`
	SolvedAt         string        `json:"solvedAt"`
	AssignedTo       string        `json:"assignedTo"`
	ReportedBy       string        `json:"reportedBy"`
	Comments         []CommentView `json:"comments"`
}

// CommentView is one ticket comment.
type CommentView struct {
	Author    string `json:"author"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}

// ActionView is one action log entry. Milestone, From and To appear only on
// the kinds that carry them.
type ActionView struct {
	Milestone string `json:"milestone,omitempty"`
	From      string `json:"from,omitempty"`
	To        string `json:"to,omitempty"`
	By        string `json:"by"`
	Timestamp string `json:"timestamp"`
	Action    string `json:"action"`
}

// TicketHistoryView is one entry of viewTicketHistory.
type TicketHistoryView struct {
	ID       int           `json:"id"`
	Title    string        `json:"title"`
	Status   string        `json:"status"`
	Actions  []ActionView  `json:"actions"`
	Comments []CommentView `json:"comments"`
}

// TicketsBody answers viewTickets.
type TicketsBody struct {
	Tickets []TicketView `json:"tickets"`
}

// AssignedTicketsBody answers viewAssignedTickets.
type AssignedTicketsBody struct {
	AssignedTickets []TicketView `json:"assignedTickets"`
}

// TicketHistoryBody answers viewTicketHistory.
type TicketHistoryBody struct {
	TicketHistory []TicketHistoryView `json:"ticketHistory"`
}

// NotificationsBody answers viewNotifications.
type NotificationsBody struct {
	Notifications []string `json:"notifications"`
}
