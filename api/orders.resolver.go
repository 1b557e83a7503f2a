package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"portfoliotracker/internal/domain"
	"portfoliotracker/internal/service"
)

type createOrderRequest struct {
	PortfolioID uuid.UUID `json:"portfolioId" binding:"required"`
	UserID      uuid.UUID `json:"userId" binding:"required"`
	Ticker      string    `json:"ticker" binding:"required"`
	Side        string    `json:"type" binding:"required,oneof=BUY SELL"`
	Quantity    float64   `json:"quantity" binding:"required,gt=0"`
	Price       float64   `json:"price" binding:"required,gt=0"`
	Date        string    `json:"date" binding:"required"`
}

type OrderResponse struct {
	ID          uuid.UUID `json:"id"`
	PortfolioID uuid.UUID `json:"portfolioId"`
	UserID      uuid.UUID `json:"userId"`
	Ticker      string    `json:"ticker"`
	Side        string    `json:"type"`
	Quantity    float64   `json:"quantity"`
	Price       float64   `json:"price"`
	Status      string    `json:"status"`
	Date        string    `json:"date"`
	CreatedAt   string    `json:"createdAt"`
}

func (m ApiHandler) createOrder(c *gin.Context) {
	var body createOrderRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		returnBadRequestJson(err, c)
		return
	}

	date, err := time.Parse(time.RFC3339, body.Date)
	if err != nil {
		returnBadRequestJson(fmt.Errorf("invalid date, expected RFC3339: %w", err), c)
		return
	}

	order, err := m.OrderService.Create(c.Request.Context(), service.CreateOrderRequest{
		PortfolioID: body.PortfolioID,
		UserID:      body.UserID,
		Ticker:      body.Ticker,
		Side:        domain.OrderSide(body.Side),
		Quantity:    decimal.NewFromFloat(body.Quantity),
		Price:       decimal.NewFromFloat(body.Price),
		Date:        date,
	})
	if err != nil {
		m.returnErrorJson(err, c)
		return
	}

	successJson(c, 201, orderResponseFromDomain(order), "Order created")
}

func orderResponseFromDomain(o *domain.Order) OrderResponse {
	return OrderResponse{
		ID:          o.ID,
		PortfolioID: o.PortfolioID,
		UserID:      o.UserID,
		Ticker:      o.Ticker,
		Side:        string(o.Side),
		Quantity:    o.Quantity.InexactFloat64(),
		Price:       o.Price.InexactFloat64(),
		Status:      string(o.Status),
		Date:        o.Date.UTC().Format(time.RFC3339),
		CreatedAt:   o.CreatedAt.UTC().Format(time.RFC3339),
	}
}
