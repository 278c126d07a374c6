package dto

// MilestoneView is one entry of viewMilestones.
type MilestoneView struct {
	Name                 string            `json:"name"`
	BlockingFor          []string          `json:"blockingFor"`
	DueDate              string            `json:"dueDate"`
	CreatedAt            string            `json:"createdAt"`
	Tickets              []int             `json:"tickets"`
	AssignedDevs         []string          `json:"assignedDevs"`
	CreatedBy            string            `json:"createdBy"`
	Status               string            `json:"status"`
	IsBlocked            bool              `json:"isBlocked"`
	DaysUntilDue         int               `json:"daysUntilDue"`
	OverdueBy            int               `json:"overdueBy"`
	OpenTickets          []int             `json:"openTickets"`
	ClosedTickets        []int             `json:"closedTickets"`
	CompletionPercentage Decimal           `json:"completionPercentage"`
	Repartition          []RepartitionView `json:"repartition"`
}

// RepartitionView is a developer's share of a milestone.
type RepartitionView struct {
	Developer       string `json:"developer"`
	AssignedTickets []int  `json:"assignedTickets"`
}

// MilestonesBody answers viewMilestones.
type MilestonesBody struct {
	Milestones []MilestoneView `json:"milestones"`
}
