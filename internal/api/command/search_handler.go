package command

import (
	"context"

	"github.com/spec-kit/project-tracker/internal/api/dto"
	"github.com/spec-kit/project-tracker/internal/service"
)

// SearchHandler serves search.
type SearchHandler struct {
	search *service.SearchService
}

// NewSearchHandler constructs handler.
func NewSearchHandler(search *service.SearchService) *SearchHandler {
	return &SearchHandler{search: search}
}

// Search dispatches on filters.searchType. An unknown type answers with an
// empty result list.
func (h *SearchHandler) Search(ctx context.Context, cmd dto.Command) (*dto.Result, error) {
	payload, err := dto.PayloadAs[dto.SearchPayload](cmd)
	if err != nil {
		return nil, err
	}
	f := payload.Filters
	body := dto.SearchBody{SearchType: f.SearchType, Results: []any{}}

	switch f.SearchType {
	case service.SearchTypeTicket:
		matches := h.search.Tickets(principal(ctx), service.TicketSearchFilters{
			Type:                   f.Type,
			Priority:               f.BusinessPriority,
			CreatedAfter:           f.CreatedAfter,
			Keywords:               f.Keywords,
			AvailableForAssignment: f.AvailableForAssignment,
		})
		results := make([]dto.TicketSearchResult, 0, len(matches))
		for _, m := range matches {
			results = append(results, dto.TicketSearchResult{
				ID:               m.Ticket.ID,
				Type:             string(m.Ticket.Type),
				Title:            m.Ticket.Title,
				BusinessPriority: string(m.Ticket.Priority),
				Status:           string(m.Ticket.Status),
				CreatedAt:        m.Ticket.CreatedAt,
				ReportedBy:       m.Ticket.ReportedBy,
				MatchingWords:    m.MatchingWords,
			})
		}
		body.Results = results

	case service.SearchTypeDeveloper:
		matches, err := h.search.Developers(service.DeveloperSearchFilters{
			ExpertiseArea: f.ExpertiseArea,
			Seniority:     f.Seniority,
		}, cmd.Timestamp)
		if err != nil {
			return nil, err
		}
		results := make([]dto.DeveloperSearchResult, 0, len(matches))
		for _, m := range matches {
			results = append(results, dto.DeveloperSearchResult{
				Username:         m.User.Username,
				ExpertiseArea:    string(m.Profile.Expertise),
				Seniority:        string(m.Profile.Seniority),
				PerformanceScore: dto.Decimal(m.PerformanceScore),
				HireDate:         m.Profile.HireDate,
			})
		}
		body.Results = results
	}
	return dto.BodyResult(cmd, body), nil
}
