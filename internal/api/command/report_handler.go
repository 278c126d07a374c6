package command

import (
	"context"

	"github.com/spec-kit/project-tracker/internal/api/dto"
	"github.com/spec-kit/project-tracker/internal/service"
)

// ReportHandler serves the manager reports.
type ReportHandler struct {
	reports *service.ReportService
}

// NewReportHandler constructs handler.
func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// CustomerImpact handles generateCustomerImpactReport.
func (h *ReportHandler) CustomerImpact(_ context.Context, cmd dto.Command) (*dto.Result, error) {
	r := h.reports.CustomerImpact()
	return reportResult(cmd, dto.CustomerImpactView{
		TotalTickets:         r.Total,
		TicketsByType:        countByType(r.ByType),
		TicketsByPriority:    countByPriority(r.ByPriority),
		CustomerImpactByType: scoreByType(r.ImpactByType),
	}), nil
}

// TicketRisk handles generateTicketRiskReport.
func (h *ReportHandler) TicketRisk(_ context.Context, cmd dto.Command) (*dto.Result, error) {
	r := h.reports.TicketRisk()
	return reportResult(cmd, dto.TicketRiskView{
		TotalTickets:      r.Total,
		TicketsByType:     countByType(r.ByType),
		TicketsByPriority: countByPriority(r.ByPriority),
		RiskByType:        labelByType(r.RiskByType),
	}), nil
}

// ResolutionEfficiency handles generateResolutionEfficiencyReport.
func (h *ReportHandler) ResolutionEfficiency(_ context.Context, cmd dto.Command) (*dto.Result, error) {
	r := h.reports.ResolutionEfficiency()
	return reportResult(cmd, dto.ResolutionEfficiencyView{
		TotalTickets:      r.Total,
		TicketsByType:     countByType(r.ByType),
		TicketsByPriority: countByPriority(r.ByPriority),
		EfficiencyByType:  scoreByType(r.EfficiencyByType),
	}), nil
}

// AppStability handles appStabilityReport.
func (h *ReportHandler) AppStability(_ context.Context, cmd dto.Command) (*dto.Result, error) {
	r := h.reports.AppStability()
	return reportResult(cmd, dto.AppStabilityView{
		TotalOpenTickets:      r.Total,
		OpenTicketsByType:     countByType(r.ByType),
		OpenTicketsByPriority: countByPriority(r.ByPriority),
		RiskByType:            labelByType(r.RiskByType),
		ImpactByType:          scoreByType(r.ImpactByType),
		AppStability:          r.AppStability,
	}), nil
}

// Performance handles generatePerformanceReport for the caller's
// subordinates.
func (h *ReportHandler) Performance(ctx context.Context, cmd dto.Command) (*dto.Result, error) {
	rows, err := h.reports.Performance(principal(ctx), cmd.Timestamp)
	if err != nil {
		return nil, err
	}
	views := make([]dto.PerformanceRowView, 0, len(rows))
	for _, row := range rows {
		views = append(views, dto.PerformanceRowView{
			Username:              row.Username,
			ClosedTickets:         row.ClosedTickets,
			AverageResolutionTime: dto.Decimal(row.AverageResolutionTime),
			PerformanceScore:      dto.Decimal(row.PerformanceScore),
			Seniority:             string(row.Seniority),
		})
	}
	return reportResult(cmd, views), nil
}

func reportResult(cmd dto.Command, report any) *dto.Result {
	return dto.BodyResult(cmd, dto.ReportBody{Report: report})
}

func countByType(b service.ByType[int]) dto.CountByType {
	return dto.CountByType{Bug: b.Bug, FeatureRequest: b.FeatureRequest, UIFeedback: b.UIFeedback}
}

func countByPriority(b service.ByPriority) dto.CountByPriority {
	return dto.CountByPriority{Low: b.Low, Medium: b.Medium, High: b.High, Critical: b.Critical}
}

func scoreByType(b service.ByType[float64]) dto.ScoreByType {
	return dto.ScoreByType{
		Bug:            dto.Decimal(b.Bug),
		FeatureRequest: dto.Decimal(b.FeatureRequest),
		UIFeedback:     dto.Decimal(b.UIFeedback),
	}
}

func labelByType(b service.ByType[string]) dto.LabelByType {
	return dto.LabelByType{Bug: b.Bug, FeatureRequest: b.FeatureRequest, UIFeedback: b.UIFeedback}
}
