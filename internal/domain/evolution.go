package domain

// EvolutionEntry is one point in a portfolio's externally maintained value
// time series. Dates are ISO calendar dates (YYYY-MM-DD) so ordering is
// lexicographic.
type EvolutionEntry struct {
	Date           string  `json:"date"`
	Value          float64 `json:"value"`
	DailyReturn    float64 `json:"dailyReturn"`
	Contributions  float64 `json:"contributions"`
	PortfolioIndex float64 `json:"portfolioIndex"`
}

// TimeRange selects a trailing window of the evolution series. The cutoff
// is anchored to the last entry's date, not to the current date.
type TimeRange string

const (
	TimeRange_1M  TimeRange = "1M"
	TimeRange_3M  TimeRange = "3M"
	TimeRange_6M  TimeRange = "6M"
	TimeRange_1Y  TimeRange = "1Y"
	TimeRange_YTD TimeRange = "YTD"
	TimeRange_All TimeRange = "ALL"
)

func ParseTimeRange(s string) (TimeRange, error) {
	switch TimeRange(s) {
	case TimeRange_1M, TimeRange_3M, TimeRange_6M, TimeRange_1Y, TimeRange_YTD, TimeRange_All:
		return TimeRange(s), nil
	case "":
		return TimeRange_All, nil
	}
	return "", ErrInvalidTimeRange
}
