package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"portfoliotracker/internal/domain"
)

type GetSummaryResponse struct {
	PortfolioID uuid.UUID `json:"portfolioId"`
	CashBalance float64   `json:"cashBalance"`
	StocksValue float64   `json:"stocksValue"`
	TotalValue  float64   `json:"totalValue"`
	Currency    string    `json:"currency"`
}

func (m ApiHandler) getSummary(c *gin.Context) {
	portfolioID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		returnBadRequestJson(fmt.Errorf("invalid portfolio id: %w", err), c)
		return
	}

	summary, err := m.PortfolioService.GetSummary(c.Request.Context(), portfolioID)
	if err != nil {
		m.returnErrorJson(err, c)
		return
	}

	successJson(c, 200, getSummaryResponseFromDomain(summary), "Portfolio summary retrieved")
}

func getSummaryResponseFromDomain(summary *domain.PortfolioSummary) GetSummaryResponse {
	return GetSummaryResponse{
		PortfolioID: summary.PortfolioID,
		CashBalance: summary.CashBalance.InexactFloat64(),
		StocksValue: summary.StocksValue.InexactFloat64(),
		TotalValue:  summary.TotalValue.InexactFloat64(),
		Currency:    summary.Currency,
	}
}
