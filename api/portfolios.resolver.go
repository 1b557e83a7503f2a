package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"portfoliotracker/internal/domain"
	"portfoliotracker/internal/repository"
)

type updatePortfolioRequest struct {
	Name     *string `json:"name"`
	Currency *string `json:"currency"`
}

type PortfolioResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Name      string    `json:"name"`
	Currency  string    `json:"currency"`
	CreatedAt string    `json:"createdAt"`
	UpdatedAt string    `json:"updatedAt"`
}

func (m ApiHandler) updatePortfolio(c *gin.Context) {
	portfolioID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		returnBadRequestJson(fmt.Errorf("invalid portfolio id: %w", err), c)
		return
	}

	var body updatePortfolioRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		returnBadRequestJson(err, c)
		return
	}
	if body.Name == nil && body.Currency == nil {
		returnBadRequestJson(fmt.Errorf("at least one field must be provided"), c)
		return
	}

	portfolio, err := m.PortfolioService.Update(c.Request.Context(), portfolioID, repository.PortfolioUpdate{
		Name:     body.Name,
		Currency: body.Currency,
	})
	if err != nil {
		m.returnErrorJson(err, c)
		return
	}

	successJson(c, 200, portfolioResponseFromDomain(portfolio), "Portfolio updated")
}

func portfolioResponseFromDomain(p *domain.Portfolio) PortfolioResponse {
	return PortfolioResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		Name:      p.Name,
		Currency:  p.Currency,
		CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
