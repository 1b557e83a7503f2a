package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"portfoliotracker/internal/domain"
)

const (
	_insertTransaction = `INSERT INTO transactions (id, portfolio_id, user_id, kind, amount, date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, portfolio_id, user_id, kind, amount, date, notes, created_at`
	_listTransactions = `SELECT id, portfolio_id, user_id, kind, amount, date, notes, created_at
		FROM transactions WHERE portfolio_id = $1`
)

type TransactionRepository interface {
	Add(ctx context.Context, transaction domain.Transaction) (*domain.Transaction, error)
	List(ctx context.Context, portfolioID uuid.UUID) ([]domain.Transaction, error)
}

type transactionRepositoryHandler struct {
	db *sqlx.DB
}

func NewTransactionRepository(db *sqlx.DB) TransactionRepository {
	return transactionRepositoryHandler{db: db}
}

func (h transactionRepositoryHandler) Add(ctx context.Context, transaction domain.Transaction) (*domain.Transaction, error) {
	if transaction.ID == uuid.Nil {
		transaction.ID = uuid.New()
	}
	transaction.CreatedAt = time.Now().UTC()

	out := domain.Transaction{}
	err := h.db.GetContext(ctx, &out, _insertTransaction,
		transaction.ID,
		transaction.PortfolioID,
		transaction.UserID,
		transaction.Kind,
		transaction.Amount,
		transaction.Date,
		transaction.Notes,
		transaction.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}

	return &out, nil
}

func (h transactionRepositoryHandler) List(ctx context.Context, portfolioID uuid.UUID) ([]domain.Transaction, error) {
	out := []domain.Transaction{}
	err := h.db.SelectContext(ctx, &out, _listTransactions, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for portfolio %s: %w", portfolioID, err)
	}

	return out, nil
}
