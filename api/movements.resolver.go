package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"portfoliotracker/internal/domain"
	"portfoliotracker/internal/movement"
)

type movementsQuery struct {
	Limit int `form:"limit,default=10"`
	Page  int `form:"page,default=1"`
}

// MovementResponse is the wire shape of one movement: the common
// projection plus the variant-specific fields.
type MovementResponse struct {
	ID           uuid.UUID `json:"id"`
	MovementType string    `json:"movementType"`
	PortfolioID  uuid.UUID `json:"portfolioId"`
	UserID       uuid.UUID `json:"userId"`
	Date         string    `json:"date"`
	CreatedAt    string    `json:"createdAt"`

	// transaction variant
	Amount *float64 `json:"amount,omitempty"`
	Notes  *string  `json:"notes,omitempty"`

	// order variant
	Ticker   *string  `json:"ticker,omitempty"`
	Quantity *float64 `json:"quantity,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Status   *string  `json:"status,omitempty"`
}

type GetMovementsResponse struct {
	Items      []MovementResponse `json:"items"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"totalPages"`
}

func (m ApiHandler) getMovements(c *gin.Context) {
	portfolioID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		returnBadRequestJson(fmt.Errorf("invalid portfolio id: %w", err), c)
		return
	}

	query := movementsQuery{}
	if err := c.ShouldBindQuery(&query); err != nil {
		returnBadRequestJson(err, c)
		return
	}

	page, err := m.PortfolioService.GetMovements(c.Request.Context(), portfolioID, query.Limit, query.Page)
	if err != nil {
		m.returnErrorJson(err, c)
		return
	}

	out, err := getMovementsResponseFromDomain(page)
	if err != nil {
		m.returnErrorJson(err, c)
		return
	}

	successJson(c, 200, out, "Portfolio movements retrieved")
}

func getMovementsResponseFromDomain(page *movement.Page) (*GetMovementsResponse, error) {
	items := []MovementResponse{}
	for _, mv := range page.Items {
		item, err := movementResponseFromDomain(mv)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return &GetMovementsResponse{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages,
	}, nil
}

// Exhaustive over the movement variants; an impossible empty movement is
// an internal error, not a silent skip.
func movementResponseFromDomain(mv domain.Movement) (MovementResponse, error) {
	out := MovementResponse{
		ID:           mv.ID(),
		MovementType: mv.Type(),
		PortfolioID:  mv.PortfolioID(),
		UserID:       mv.UserID(),
		Date:         mv.Date().UTC().Format(time.RFC3339),
		CreatedAt:    mv.CreatedAt().UTC().Format(time.RFC3339),
	}

	switch {
	case mv.Transaction != nil:
		amount := mv.Transaction.Amount.InexactFloat64()
		out.Amount = &amount
		out.Notes = mv.Transaction.Notes
	case mv.Order != nil:
		quantity := mv.Order.Quantity.InexactFloat64()
		price := mv.Order.Price.InexactFloat64()
		status := string(mv.Order.Status)
		out.Ticker = &mv.Order.Ticker
		out.Quantity = &quantity
		out.Price = &price
		out.Status = &status
	default:
		return MovementResponse{}, fmt.Errorf("movement %s has no variant", mv.ID())
	}

	return out, nil
}
