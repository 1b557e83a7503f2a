package evolution

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"portfoliotracker/internal/domain"
)

// The wire document holds one array-valued field. There is no currency
// field; consumers fall back to a fixed default.
const (
	evolutionField  = "array"
	DefaultCurrency = "CLP"
)

type Document struct {
	Entries  []domain.EvolutionEntry
	Currency string
}

type rawEntry struct {
	Date           json.RawMessage `json:"date"`
	PortfolioValue float64         `json:"portfolioValue"`
	DailyReturn    float64         `json:"dailyReturn"`
	Contributions  float64         `json:"contributions"`
	PortfolioIndex float64         `json:"portfolioIndex"`
}

// isoDate normalizes the entry date to YYYY-MM-DD. Accepted encodings: an
// ISO 8601 string, or an object with epoch seconds. Anything else yields
// an empty string and the entry is dropped.
func (r rawEntry) isoDate() string {
	var s string
	if err := json.Unmarshal(r.Date, &s); err == nil {
		if len(s) >= 10 {
			return s[:10]
		}
		return s
	}

	var ts struct {
		Seconds int64 `json:"seconds"`
	}
	if err := json.Unmarshal(r.Date, &ts); err == nil && ts.Seconds != 0 {
		return time.Unix(ts.Seconds, 0).UTC().Format("2006-01-02")
	}

	return ""
}

// ParseDocument decodes a raw evolution document snapshot. A missing or
// non-array evolution field is a malformed document; an empty-but-present
// array is valid. Entries without a usable date are dropped, and the
// result is sorted ascending by date.
func ParseDocument(raw []byte) (*Document, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
	}

	rawField, ok := doc[evolutionField]
	if !ok {
		return nil, fmt.Errorf("%w: field %q is missing", domain.ErrMalformedDocument, evolutionField)
	}

	var rawEntries []rawEntry
	if err := json.Unmarshal(rawField, &rawEntries); err != nil {
		return nil, fmt.Errorf("%w: field %q is not an array", domain.ErrMalformedDocument, evolutionField)
	}

	entries := make([]domain.EvolutionEntry, 0, len(rawEntries))
	for _, r := range rawEntries {
		date := r.isoDate()
		if date == "" {
			continue
		}
		entries = append(entries, domain.EvolutionEntry{
			Date:           date,
			Value:          r.PortfolioValue,
			DailyReturn:    r.DailyReturn,
			Contributions:  r.Contributions,
			PortfolioIndex: r.PortfolioIndex,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date < entries[j].Date
	})

	return &Document{
		Entries:  entries,
		Currency: DefaultCurrency,
	}, nil
}
