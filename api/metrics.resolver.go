package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"portfoliotracker/internal/domain"
	"portfoliotracker/internal/evolution"
)

type MetricsPanelResponse struct {
	TotalValue           float64 `json:"totalValue"`
	DailyChange          float64 `json:"dailyChange"`
	DailyChangePct       float64 `json:"dailyChangePct"`
	MaxValue             float64 `json:"maxValue"`
	MinValue             float64 `json:"minValue"`
	TotalReturn          float64 `json:"totalReturn"`
	CumulativeReturnPct  float64 `json:"cumulativeReturnPct"`
	PortfolioIndex       float64 `json:"portfolioIndex"`
	IndexChange          float64 `json:"indexChange"`
	IndexChangePct       float64 `json:"indexChangePct"`
	AnnualizedVolatility float64 `json:"volatility"`
}

type GetMetricsPanelResponse struct {
	Panel       *MetricsPanelResponse   `json:"panel"`
	Evolution   []domain.EvolutionEntry `json:"evolution"`
	Currency    string                  `json:"currency"`
	Range       domain.TimeRange        `json:"range"`
	Empty       bool                    `json:"empty"`
	Stale       bool                    `json:"stale"`
	LastUpdated string                  `json:"lastUpdated,omitempty"`
}

func (m ApiHandler) getMetricsPanel(c *gin.Context) {
	portfolioID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		returnBadRequestJson(fmt.Errorf("invalid portfolio id: %w", err), c)
		return
	}

	timeRange, err := domain.ParseTimeRange(c.Query("range"))
	if err != nil {
		m.returnErrorJson(err, c)
		return
	}

	view, err := m.EvolutionManager.GetPanel(c.Request.Context(), portfolioID, timeRange)
	if err != nil {
		m.returnErrorJson(err, c)
		return
	}

	successJson(c, 200, getMetricsPanelResponseFromDomain(view), "Portfolio metrics retrieved")
}

func getMetricsPanelResponseFromDomain(view *evolution.PanelView) GetMetricsPanelResponse {
	out := GetMetricsPanelResponse{
		Evolution: view.Entries,
		Currency:  view.Currency,
		Range:     view.Range,
		Empty:     view.Empty,
		Stale:     view.Stale,
	}
	if !view.LastUpdated.IsZero() {
		out.LastUpdated = view.LastUpdated.Format(time.RFC3339)
	}
	if view.Panel != nil {
		out.Panel = &MetricsPanelResponse{
			TotalValue:           view.Panel.TotalValue,
			DailyChange:          view.Panel.DailyChange,
			DailyChangePct:       view.Panel.DailyChangePct,
			MaxValue:             view.Panel.MaxValue,
			MinValue:             view.Panel.MinValue,
			TotalReturn:          view.Panel.TotalReturn,
			CumulativeReturnPct:  view.Panel.CumulativeReturnPct,
			PortfolioIndex:       view.Panel.PortfolioIndex,
			IndexChange:          view.Panel.IndexChange,
			IndexChangePct:       view.Panel.IndexChangePct,
			AnnualizedVolatility: view.Panel.AnnualizedVolatility,
		}
	}
	return out
}
