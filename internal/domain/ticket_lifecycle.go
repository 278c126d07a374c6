package domain

// forwardTransitions is the linear lifecycle driven by change-status.
// OPEN leaves only through assignment; CLOSED is terminal.
var forwardTransitions = map[TicketStatus]TicketStatus{
	TicketStatusInProgress: TicketStatusResolved,
	TicketStatusResolved:   TicketStatusClosed,
}

// NextStatus returns the status a change-status command moves to.
func NextStatus(current TicketStatus) (TicketStatus, bool) {
	next, ok := forwardTransitions[current]
	return next, ok
}

// Advance moves the ticket one step forward. It records the prior status for
// undo and appends a STATUS_CHANGED action. ok is false when the current
// status has no forward move.
func (t *Ticket) Advance(by, timestamp string) (from, to TicketStatus, ok bool) {
	from = t.Status
	to, ok = NextStatus(from)
	if !ok {
		return from, from, false
	}
	t.statusHistory = append(t.statusHistory, from)
	t.Status = to
	t.Actions = append(t.Actions, Action{Kind: ActionStatusChanged, By: by, Timestamp: timestamp, From: from, To: to})
	if to == TicketStatusResolved {
		t.SolvedAt = timestamp
	}
	return from, to, true
}

// UndoStatus reverts the most recent Advance. ok is false when there is
// nothing to undo.
func (t *Ticket) UndoStatus(by, timestamp string) (from, to TicketStatus, ok bool) {
	n := len(t.statusHistory)
	if n == 0 {
		return t.Status, t.Status, false
	}
	from = t.Status
	to = t.statusHistory[n-1]
	t.statusHistory = t.statusHistory[:n-1]
	t.Status = to
	t.Actions = append(t.Actions, Action{Kind: ActionStatusChanged, By: by, Timestamp: timestamp, From: from, To: to})
	return from, to, true
}

// AssignTo self-assigns an OPEN ticket and starts work on it.
func (t *Ticket) AssignTo(developer, timestamp string) {
	from := t.Status
	t.AssignedTo = developer
	t.AssignedAt = timestamp
	t.Status = TicketStatusInProgress
	t.Actions = append(t.Actions,
		Action{Kind: ActionAssigned, By: developer, Timestamp: timestamp},
		Action{Kind: ActionStatusChanged, By: developer, Timestamp: timestamp, From: from, To: TicketStatusInProgress},
	)
}

// Unassign returns an IN_PROGRESS ticket to OPEN. The assignment, the
// solved date and the status undo stack are cleared. ok is false for any
// other status.
func (t *Ticket) Unassign(by, timestamp string) (ok bool) {
	if t.Status != TicketStatusInProgress {
		return false
	}
	t.AssignedTo = ""
	t.AssignedAt = ""
	t.SolvedAt = ""
	t.statusHistory = nil
	t.Status = TicketStatusOpen
	t.Actions = append(t.Actions, Action{Kind: ActionDeAssigned, By: by, Timestamp: timestamp})
	return true
}

// LinkMilestone logs the ticket joining a milestone.
func (t *Ticket) LinkMilestone(milestone, by, timestamp string) {
	t.Actions = append(t.Actions, Action{Kind: ActionAddedToMilestone, By: by, Timestamp: timestamp, Milestone: milestone})
}

// AddComment appends a comment.
func (t *Ticket) AddComment(c Comment) {
	t.Comments = append(t.Comments, c)
}

// RemoveLastCommentBy deletes the most recent comment written by author,
// skipping newer comments from other authors.
func (t *Ticket) RemoveLastCommentBy(author string) bool {
	for i := len(t.Comments) - 1; i >= 0; i-- {
		if t.Comments[i].Author == author {
			t.Comments = append(t.Comments[:i], t.Comments[i+1:]...)
			return true
		}
	}
	return false
}
