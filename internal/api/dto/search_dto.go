package dto

// TicketSearchResult is one TICKET search hit.
type TicketSearchResult struct {
	ID               int      `json:"id"`
	Type             string   `json:"type"`
	Title            string   `json:"title"`
	BusinessPriority string   `json:"businessPriority"`
	Status           string   `json:"status"`
	CreatedAt        string   `json:"createdAt"`
	SolvedAt         string   `json:"solvedAt"` // search hits are OPEN, so always empty
	ReportedBy       string   `json:"reportedBy"`
	MatchingWords    []string `json:"matchingWords,omitempty"`
}

// DeveloperSearchResult is one DEVELOPER search hit.
type DeveloperSearchResult struct {
	Username         string  `json:"username"`
	ExpertiseArea    string  `json:"expertiseArea"`
	Seniority        string  `json:"seniority"`
	PerformanceScore Decimal `json:"performanceScore"`
	HireDate         string  `json:"hireDate"`
}

// SearchBody answers search. Results holds a slice of one of the result
// types above.
type SearchBody struct {
	SearchType string `json:"searchType"`
	Results    any    `json:"results"`
}
