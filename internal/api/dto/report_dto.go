package dto

// CountByType counts tickets per type.
type CountByType struct {
	Bug            int `json:"BUG"`
	FeatureRequest int `json:"FEATURE_REQUEST"`
	UIFeedback     int `json:"UI_FEEDBACK"`
}

// CountByPriority counts tickets per business priority.
type CountByPriority struct {
	Low      int `json:"LOW"`
	Medium   int `json:"MEDIUM"`
	High     int `json:"HIGH"`
	Critical int `json:"CRITICAL"`
}

// ScoreByType holds a rounded score per type.
type ScoreByType struct {
	Bug            Decimal `json:"BUG"`
	FeatureRequest Decimal `json:"FEATURE_REQUEST"`
	UIFeedback     Decimal `json:"UI_FEEDBACK"`
}

// LabelByType holds a risk label per type.
type LabelByType struct {
	Bug            string `json:"BUG"`
	FeatureRequest string `json:"FEATURE_REQUEST"`
	UIFeedback     string `json:"UI_FEEDBACK"`
}

// CustomerImpactView is the report of generateCustomerImpactReport.
type CustomerImpactView struct {
	TotalTickets         int             `json:"totalTickets"`
	TicketsByType        CountByType     `json:"ticketsByType"`
	TicketsByPriority    CountByPriority `json:"ticketsByPriority"`
	CustomerImpactByType ScoreByType     `json:"customerImpactByType"`
}

// TicketRiskView is the report of generateTicketRiskReport.
type TicketRiskView struct {
	TotalTickets      int             `json:"totalTickets"`
	TicketsByType     CountByType     `json:"ticketsByType"`
	TicketsByPriority CountByPriority `json:"ticketsByPriority"`
	RiskByType        LabelByType     `json:"riskByType"`
}

// ResolutionEfficiencyView is the report of generateResolutionEfficiencyReport.
type ResolutionEfficiencyView struct {
	TotalTickets      int             `json:"totalTickets"`
	TicketsByType     CountByType     `json:"ticketsByType"`
	TicketsByPriority CountByPriority `json:"ticketsByPriority"`
	EfficiencyByType  ScoreByType     `json:"efficiencyByType"`
}

// AppStabilityView is the report of appStabilityReport.
type AppStabilityView struct {
	TotalOpenTickets      int             `json:"totalOpenTickets"`
	OpenTicketsByType     CountByType     `json:"openTicketsByType"`
	OpenTicketsByPriority CountByPriority `json:"openTicketsByPriority"`
	RiskByType            LabelByType     `json:"riskByType"`
	ImpactByType          ScoreByType     `json:"impactByType"`
	AppStability          string          `json:"appStability"`
}

// PerformanceRowView is one developer of generatePerformanceReport.
type PerformanceRowView struct {
	Username              string  `json:"username"`
	ClosedTickets         int     `json:"closedTickets"`
	AverageResolutionTime Decimal `json:"averageResolutionTime"`
	PerformanceScore      Decimal `json:"performanceScore"`
	Seniority             string  `json:"seniority"`
}

// ReportBody wraps every report under the "report" key.
type ReportBody struct {
	Report any `json:"report"`
}
