package calculator

import (
	"fmt"
	"math"
	"time"

	"github.com/montanaflynn/stats"

	"portfoliotracker/internal/domain"
)

// 252 trading days per year, the convention for annualizing daily return
// variance.
const tradingDaysPerYear = 252

type MetricsPanel struct {
	TotalValue           float64
	DailyChange          float64
	DailyChangePct       float64
	MaxValue             float64
	MinValue             float64
	TotalReturn          float64
	CumulativeReturnPct  float64
	PortfolioIndex       float64
	IndexChange          float64
	IndexChangePct       float64
	AnnualizedVolatility float64
}

// CalculateMetrics derives the dashboard statistics panel from an evolution
// series ordered ascending by date. Every call recomputes from scratch;
// there is no incremental path.
func CalculateMetrics(entries []domain.EvolutionEntry) (*MetricsPanel, error) {
	if len(entries) == 0 {
		return nil, domain.ErrEmptySeries
	}

	first := entries[0]
	latest := entries[len(entries)-1]
	previous := latest
	if len(entries) >= 2 {
		previous = entries[len(entries)-2]
	}

	dailyChange := latest.Value - previous.Value
	dailyChangePct := 0.0
	if previous.Value != 0 {
		dailyChangePct = dailyChange / previous.Value * 100
	}

	values := make([]float64, 0, len(entries))
	dailyReturns := make([]float64, 0, len(entries))
	for _, e := range entries {
		values = append(values, e.Value)
		dailyReturns = append(dailyReturns, e.DailyReturn)
	}

	maxValue, err := stats.Max(values)
	if err != nil {
		return nil, fmt.Errorf("failed to compute max value: %w", err)
	}
	minValue, err := stats.Min(values)
	if err != nil {
		return nil, fmt.Errorf("failed to compute min value: %w", err)
	}

	totalReturn := latest.Value - latest.Contributions
	cumulativeReturnPct := 0.0
	if first.Contributions != 0 {
		cumulativeReturnPct = (latest.Value - first.Contributions) / first.Contributions * 100
	}

	// Mean squared deviation of the daily returns, annualized by the
	// trading-day convention.
	variance, err := stats.PopulationVariance(dailyReturns)
	if err != nil {
		return nil, fmt.Errorf("failed to compute return variance: %w", err)
	}
	annualizedVolatility := math.Sqrt(variance) * math.Sqrt(tradingDaysPerYear) * 100

	indexChange := latest.PortfolioIndex - first.PortfolioIndex
	indexChangePct := 0.0
	if first.PortfolioIndex != 0 {
		indexChangePct = indexChange / first.PortfolioIndex * 100
	}

	return &MetricsPanel{
		TotalValue:           latest.Value,
		DailyChange:          dailyChange,
		DailyChangePct:       dailyChangePct,
		MaxValue:             maxValue,
		MinValue:             minValue,
		TotalReturn:          totalReturn,
		CumulativeReturnPct:  cumulativeReturnPct,
		PortfolioIndex:       latest.PortfolioIndex,
		IndexChange:          indexChange,
		IndexChangePct:       indexChangePct,
		AnnualizedVolatility: annualizedVolatility,
	}, nil
}

const dateLayout = "2006-01-02"

// FilterByTimeRange returns the trailing subsequence of the series covered
// by the requested range. The cutoff is computed relative to the last
// entry's date: N months/years back for the fixed windows, January 1 of the
// last entry's year for YTD. Comparison is inclusive and lexicographic on
// the ISO calendar dates. ALL returns the series untouched.
func FilterByTimeRange(entries []domain.EvolutionEntry, timeRange domain.TimeRange) []domain.EvolutionEntry {
	if timeRange == domain.TimeRange_All || len(entries) == 0 {
		return entries
	}

	lastDate, err := time.Parse(dateLayout, entries[len(entries)-1].Date)
	if err != nil {
		return entries
	}

	var cutoff time.Time
	switch timeRange {
	case domain.TimeRange_1M:
		cutoff = lastDate.AddDate(0, -1, 0)
	case domain.TimeRange_3M:
		cutoff = lastDate.AddDate(0, -3, 0)
	case domain.TimeRange_6M:
		cutoff = lastDate.AddDate(0, -6, 0)
	case domain.TimeRange_1Y:
		cutoff = lastDate.AddDate(-1, 0, 0)
	case domain.TimeRange_YTD:
		cutoff = time.Date(lastDate.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		return entries
	}

	cutoffDate := cutoff.Format(dateLayout)
	filtered := []domain.EvolutionEntry{}
	for _, e := range entries {
		if e.Date >= cutoffDate {
			filtered = append(filtered, e)
		}
	}
	return filtered
}
