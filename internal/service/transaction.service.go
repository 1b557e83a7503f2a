package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"portfoliotracker/internal/domain"
	"portfoliotracker/internal/repository"
)

type CreateTransactionRequest struct {
	PortfolioID uuid.UUID
	UserID      uuid.UUID
	Amount      decimal.Decimal
	Date        time.Time
	Notes       *string
}

type TransactionService interface {
	CreateDeposit(ctx context.Context, req CreateTransactionRequest) (*domain.Transaction, error)
	CreateWithdrawal(ctx context.Context, req CreateTransactionRequest) (*domain.Transaction, error)
}

type transactionServiceHandler struct {
	TransactionRepository repository.TransactionRepository
	ValidationService     ValidationService
}

func NewTransactionService(
	transactionRepository repository.TransactionRepository,
	validationService ValidationService,
) TransactionService {
	return transactionServiceHandler{
		TransactionRepository: transactionRepository,
		ValidationService:     validationService,
	}
}

func (h transactionServiceHandler) CreateDeposit(ctx context.Context, req CreateTransactionRequest) (*domain.Transaction, error) {
	return h.create(ctx, req, domain.TransactionKind_Deposit)
}

func (h transactionServiceHandler) CreateWithdrawal(ctx context.Context, req CreateTransactionRequest) (*domain.Transaction, error) {
	return h.create(ctx, req, domain.TransactionKind_Withdrawal)
}

func (h transactionServiceHandler) create(ctx context.Context, req CreateTransactionRequest, kind domain.TransactionKind) (*domain.Transaction, error) {
	if err := h.ValidationService.ValidatePortfolioAndUser(ctx, req.PortfolioID, req.UserID); err != nil {
		return nil, err
	}

	return h.TransactionRepository.Add(ctx, domain.Transaction{
		PortfolioID: req.PortfolioID,
		UserID:      req.UserID,
		Kind:        kind,
		Amount:      req.Amount,
		Date:        req.Date,
		Notes:       req.Notes,
	})
}
