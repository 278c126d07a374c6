package service

import (
	"regexp"
	"sort"
	"strings"

	"github.com/spec-kit/project-tracker/internal/domain"
	"github.com/spec-kit/project-tracker/internal/repository"
)

// Search types.
const (
	SearchTypeTicket    = "TICKET"
	SearchTypeDeveloper = "DEVELOPER"
)

// TicketSearchFilters narrows a ticket search. Empty fields are ignored.
type TicketSearchFilters struct {
	Type                   domain.TicketType
	Priority               domain.Priority
	CreatedAfter           string
	Keywords               []string
	AvailableForAssignment bool
}

// TicketMatch is a ticket search hit. MatchingWords is nil unless keywords
// were given.
type TicketMatch struct {
	Ticket        *domain.Ticket
	MatchingWords []string
}

// DeveloperSearchFilters narrows a developer search.
type DeveloperSearchFilters struct {
	ExpertiseArea domain.ExpertiseArea
	Seniority     domain.Seniority
}

// DeveloperMatch is a developer search hit.
type DeveloperMatch struct {
	User             *domain.User
	Profile          *domain.DeveloperProfile
	PerformanceScore float64
}

// SearchService answers ticket and developer searches.
type SearchService struct {
	users      repository.UserRepository
	tickets    repository.TicketRepository
	engine     *MilestoneEngine
	assignment *AssignmentService
	reports    *ReportService
}

// SearchDependencies bundles collaborators.
type SearchDependencies struct {
	Store      *repository.Store
	Engine     *MilestoneEngine
	Assignment *AssignmentService
	Reports    *ReportService
}

// NewSearchService creates the service.
func NewSearchService(deps SearchDependencies) *SearchService {
	return &SearchService{
		users:      deps.Store.Users,
		tickets:    deps.Store.Tickets,
		engine:     deps.Engine,
		assignment: deps.Assignment,
		reports:    deps.Reports,
	}
}

// Tickets returns the OPEN tickets user may see that satisfy filters,
// ordered by id.
func (s *SearchService) Tickets(user *domain.User, filters TicketSearchFilters) []TicketMatch {
	open := s.tickets.ListWithFilter(repository.TicketFilter{Statuses: []domain.TicketStatus{domain.TicketStatusOpen}})

	var matches []TicketMatch
	for _, t := range open {
		if !s.visible(user, t) {
			continue
		}
		if filters.AvailableForAssignment && !s.available(user, t) {
			continue
		}
		if filters.Type != "" && t.Type != filters.Type {
			continue
		}
		if filters.Priority != "" && t.Priority != filters.Priority {
			continue
		}
		if filters.CreatedAfter != "" && t.CreatedAt <= filters.CreatedAfter {
			continue
		}

		match := TicketMatch{Ticket: t}
		if len(filters.Keywords) > 0 {
			match.MatchingWords = matchingWords(t.Title, filters.Keywords)
			if len(match.MatchingWords) == 0 {
				continue
			}
		}
		matches = append(matches, match)
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].Ticket.ID < matches[j].Ticket.ID })
	return matches
}

func (s *SearchService) visible(user *domain.User, t *domain.Ticket) bool {
	switch user.Role {
	case domain.RoleManager:
		return true
	case domain.RoleDeveloper:
		m, ok := s.engine.MilestoneFor(t.ID)
		return ok && m.HasDeveloper(user.Username)
	case domain.RoleReporter:
		return t.ReportedBy == user.Username
	}
	return false
}

// available requires a developer, an unassigned milestone ticket and a
// passing eligibility check.
func (s *SearchService) available(user *domain.User, t *domain.Ticket) bool {
	if user.Role != domain.RoleDeveloper || t.AssignedTo != "" {
		return false
	}
	if _, ok := s.engine.MilestoneFor(t.ID); !ok {
		return false
	}
	return s.assignment.CheckEligibility(user, t) == nil
}

// matchingWords returns the keywords that occur as whole words in title,
// ignoring case, in the order given.
func matchingWords(title string, keywords []string) []string {
	lower := strings.ToLower(title)
	var found []string
	for _, kw := range keywords {
		re, err := regexp.Compile(`\b` + regexp.QuoteMeta(strings.ToLower(kw)) + `\b`)
		if err != nil {
			continue
		}
		if re.MatchString(lower) {
			found = append(found, kw)
		}
	}
	return found
}

// Developers lists developers matching filters, ordered by username.
func (s *SearchService) Developers(filters DeveloperSearchFilters, timestamp string) ([]DeveloperMatch, error) {
	now, err := parseTimestamp(timestamp)
	if err != nil {
		return nil, err
	}

	var matches []DeveloperMatch
	for _, u := range s.users.ListByRole(domain.RoleDeveloper) {
		profile, ok := u.Developer()
		if !ok {
			continue
		}
		if filters.ExpertiseArea != "" && profile.Expertise != filters.ExpertiseArea {
			continue
		}
		if filters.Seniority != "" && profile.Seniority != filters.Seniority {
			continue
		}
		matches = append(matches, DeveloperMatch{
			User:             u,
			Profile:          profile,
			PerformanceScore: s.reports.DeveloperScore(u, now),
		})
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].User.Username < matches[j].User.Username })
	return matches, nil
}
