package domain

// ExpertiseArea enumerates technical areas for developers and tickets.
type ExpertiseArea string

const (
	ExpertiseFrontend  ExpertiseArea = "FRONTEND"
	ExpertiseBackend   ExpertiseArea = "BACKEND"
	ExpertiseDevOps    ExpertiseArea = "DEVOPS"
	ExpertiseDesign    ExpertiseArea = "DESIGN"
	ExpertiseDB        ExpertiseArea = "DB"
	ExpertiseFullstack ExpertiseArea = "FULLSTACK"
)

// compatibleAreas lists, per developer expertise, the ticket areas the
// developer may take.
var compatibleAreas = map[ExpertiseArea][]ExpertiseArea{
	ExpertiseFrontend:  {ExpertiseFrontend, ExpertiseDesign},
	ExpertiseBackend:   {ExpertiseBackend, ExpertiseDB},
	ExpertiseDesign:    {ExpertiseDesign, ExpertiseFrontend},
	ExpertiseDevOps:    {ExpertiseDevOps},
	ExpertiseDB:        {ExpertiseDB},
	ExpertiseFullstack: {ExpertiseFrontend, ExpertiseBackend, ExpertiseDevOps, ExpertiseDesign, ExpertiseDB},
}

// requiredExpertise is the text listing the developer areas accepted for a
// ticket area, in the order used by error messages.
var requiredExpertise = map[ExpertiseArea]string{
	ExpertiseFrontend: "FRONTEND, FULLSTACK, DESIGN",
	ExpertiseBackend:  "BACKEND, FULLSTACK",
	ExpertiseDevOps:   "DEVOPS, FULLSTACK",
	ExpertiseDesign:   "DESIGN, FRONTEND, FULLSTACK",
	ExpertiseDB:       "BACKEND, DB, FULLSTACK",
}

// CanHandle reports whether a developer with expertise dev may take a ticket
// declaring area ticket.
func CanHandle(dev, ticket ExpertiseArea) bool {
	for _, area := range compatibleAreas[dev] {
		if area == ticket {
			return true
		}
	}
	return false
}

// RequiredExpertise returns the accepted developer areas for a ticket area.
func RequiredExpertise(ticket ExpertiseArea) string {
	if s, ok := requiredExpertise[ticket]; ok {
		return s
	}
	return string(ExpertiseFullstack)
}
