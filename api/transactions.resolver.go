package api

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"portfoliotracker/internal/domain"
	"portfoliotracker/internal/service"
)

type createTransactionRequest struct {
	PortfolioID uuid.UUID `json:"portfolioId" binding:"required"`
	UserID      uuid.UUID `json:"userId" binding:"required"`
	Amount      float64   `json:"amount" binding:"required,gt=0"`
	Date        string    `json:"date" binding:"required"`
	Notes       *string   `json:"notes"`
}

type TransactionResponse struct {
	ID          uuid.UUID `json:"id"`
	PortfolioID uuid.UUID `json:"portfolioId"`
	UserID      uuid.UUID `json:"userId"`
	Kind        string    `json:"kind"`
	Amount      float64   `json:"amount"`
	Date        string    `json:"date"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedAt   string    `json:"createdAt"`
}

func (m ApiHandler) createDeposit(c *gin.Context) {
	m.createTransaction(c, m.TransactionService.CreateDeposit, "Deposit created")
}

func (m ApiHandler) createWithdrawal(c *gin.Context) {
	m.createTransaction(c, m.TransactionService.CreateWithdrawal, "Withdrawal created")
}

func (m ApiHandler) createTransaction(
	c *gin.Context,
	create func(ctx context.Context, req service.CreateTransactionRequest) (*domain.Transaction, error),
	message string,
) {
	var body createTransactionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		returnBadRequestJson(err, c)
		return
	}

	date, err := time.Parse(time.RFC3339, body.Date)
	if err != nil {
		returnBadRequestJson(fmt.Errorf("invalid date, expected RFC3339: %w", err), c)
		return
	}

	transaction, err := create(c.Request.Context(), service.CreateTransactionRequest{
		PortfolioID: body.PortfolioID,
		UserID:      body.UserID,
		Amount:      decimal.NewFromFloat(body.Amount),
		Date:        date,
		Notes:       body.Notes,
	})
	if err != nil {
		m.returnErrorJson(err, c)
		return
	}

	successJson(c, 201, transactionResponseFromDomain(transaction), message)
}

func transactionResponseFromDomain(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		PortfolioID: t.PortfolioID,
		UserID:      t.UserID,
		Kind:        string(t.Kind),
		Amount:      t.Amount.InexactFloat64(),
		Date:        t.Date.UTC().Format(time.RFC3339),
		Notes:       t.Notes,
		CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339),
	}
}
