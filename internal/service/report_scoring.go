package service

import (
	"math"

	"github.com/spec-kit/project-tracker/internal/domain"
)

// Scoring tables. The values are calibrated against reference outputs and
// are kept as-is.
var (
	bugPriorityBase = map[domain.Priority]float64{
		domain.PriorityLow:      5,
		domain.PriorityMedium:   10,
		domain.PriorityHigh:     20,
		domain.PriorityCritical: 30,
	}
	bugFrequencyMultiplier = map[domain.Frequency]float64{
		domain.FrequencyRare:     0.8,
		domain.FrequencyFrequent: 1.2,
		domain.FrequencyAlways:   1.5,
	}
	bugSeverityMultiplier = map[domain.Severity]float64{
		domain.SeverityMinor:    1.0,
		domain.SeverityModerate: 1.299,
		domain.SeveritySevere:   2.0,
	}
	featureValueWeight = map[domain.BusinessValue]float64{
		domain.BusinessValueS:  5,
		domain.BusinessValueM:  10,
		domain.BusinessValueL:  15,
		domain.BusinessValueXL: 20,
	}
	featureDemandMultiplier = map[domain.CustomerDemand]float64{
		domain.CustomerDemandMedium: 0.75,
		domain.CustomerDemandHigh:   1.0,
	}
	uiValueWeight = map[domain.BusinessValue]float64{
		domain.BusinessValueS:  10,
		domain.BusinessValueM:  14,
		domain.BusinessValueL:  16,
		domain.BusinessValueXL: 20,
	}
	uiStabilityValueRank = map[domain.BusinessValue]float64{
		domain.BusinessValueM:  1,
		domain.BusinessValueL:  2,
		domain.BusinessValueXL: 3,
	}
	slaBaselineDays = map[domain.TicketType]float64{
		domain.TicketTypeBug:            29.142857142857142,
		domain.TicketTypeFeatureRequest: 19.636363636363637,
		domain.TicketTypeUIFeedback:     18.75,
	}
	slaPriorityDivisor = map[domain.Priority]float64{
		domain.PriorityLow:      1.5,
		domain.PriorityMedium:   2.5,
		domain.PriorityHigh:     3.0,
		domain.PriorityCritical: 4.0,
	}
	seniorityWeight = map[domain.Seniority]float64{
		domain.SeniorityJunior: 3.16,
		domain.SeniorityMid:    7.75,
		domain.SenioritySenior: 11.75,
	}
)

const defaultUsabilityScore = 5

// Risk labels.
const (
	RiskNone        = "LOW"
	RiskMinor       = "MINOR"
	RiskModerate    = "MODERATE"
	RiskMajor       = "MAJOR"
	RiskSignificant = "SIGNIFICANT"

	StabilityStable   = "STABLE"
	StabilityUnstable = "UNSTABLE"
)

// round2 rounds half-up to two decimals.
func round2(x float64) float64 {
	return math.Floor(x*100+0.5) / 100
}

func lookup[K comparable](table map[K]float64, key K, fallback float64) float64 {
	if v, ok := table[key]; ok {
		return v
	}
	return fallback
}

func usability(t *domain.Ticket) float64 {
	if t.UsabilityScore == nil {
		return defaultUsabilityScore
	}
	return float64(*t.UsabilityScore)
}

// priorityWeight maps LOW..CRITICAL to 1..4.
func priorityWeight(p domain.Priority) float64 {
	return float64(p.Rank() + 1)
}

// CustomerImpact scores a single ticket for the customer impact report.
func CustomerImpact(t *domain.Ticket) float64 {
	switch t.Type {
	case domain.TicketTypeBug:
		raw := lookup(bugPriorityBase, t.Priority, 5) *
			lookup(bugFrequencyMultiplier, t.Frequency, 1.0) *
			lookup(bugSeverityMultiplier, t.Severity, 1.0)
		return round2(raw / math.Sqrt(3))
	case domain.TicketTypeFeatureRequest:
		return lookup(featureValueWeight, t.BusinessValue, 5) * lookup(featureDemandMultiplier, t.CustomerDemand, 0.5)
	case domain.TicketTypeUIFeedback:
		factor := (11 - usability(t)) / 10
		return round2(lookup(uiValueWeight, t.BusinessValue, 10) * factor * (2.5 + 1.25*float64(t.Priority.Rank())))
	}
	return 0
}

// StabilityImpact scores a single ticket for the stability report. Only
// UI_FEEDBACK differs from CustomerImpact.
func StabilityImpact(t *domain.Ticket) float64 {
	if t.Type != domain.TicketTypeUIFeedback {
		return CustomerImpact(t)
	}
	valueWeight := 8 + 7*lookup(uiStabilityValueRank, t.BusinessValue, 0)
	return round2(valueWeight * usability(t) / 10 * priorityWeight(t.Priority))
}

// riskLabel grades the mean priority weight of tickets against the major
// threshold. No tickets yields RiskNone.
func riskLabel(tickets []*domain.Ticket, major float64, majorLabel string) string {
	if len(tickets) == 0 {
		return RiskNone
	}
	var sum float64
	for _, t := range tickets {
		sum += priorityWeight(t.Priority)
	}
	avg := sum / float64(len(tickets))
	switch {
	case avg >= major:
		return majorLabel
	case avg >= 1.5:
		return RiskModerate
	}
	return RiskMinor
}

// ExpectedDays is the SLA for a ticket's type scaled down by its priority.
func ExpectedDays(t *domain.Ticket) float64 {
	return lookup(slaBaselineDays, t.Type, 15) / lookup(slaPriorityDivisor, t.Priority, 2.5)
}

// ResolutionDays counts days from creation to the first RESOLVED or CLOSED
// transition, never less than one. Unresolved tickets count as one day.
func ResolutionDays(t *domain.Ticket) int {
	resolved, ok := t.FirstTransitionTo(domain.TicketStatusResolved, domain.TicketStatusClosed)
	if !ok {
		return 1
	}
	days := domain.DaysBetween(domain.MustDate(t.CreatedAt), domain.MustDate(resolved))
	if days < 1 {
		return 1
	}
	return days
}

// efficiency is 100 times expected over actual days, rounded.
func efficiency(tickets []*domain.Ticket) float64 {
	var expected, actual float64
	for _, t := range tickets {
		expected += ExpectedDays(t)
		actual += float64(ResolutionDays(t))
	}
	if actual == 0 {
		return 0
	}
	return round2(100 * expected / actual)
}

// PerformanceScore weighs closed work by seniority over the rounded mean
// resolution time.
func PerformanceScore(seniority domain.Seniority, closed int, avgRounded float64) float64 {
	if closed == 0 || avgRounded <= 0 {
		return 0
	}
	return round2(float64(closed) * lookup(seniorityWeight, seniority, 3.16) / avgRounded)
}
