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
	_insertOrder = `INSERT INTO orders (id, portfolio_id, user_id, ticker, side, quantity, price, status, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, portfolio_id, user_id, ticker, side, quantity, price, status, date, created_at`
	_listOrders = `SELECT id, portfolio_id, user_id, ticker, side, quantity, price, status, date, created_at
		FROM orders WHERE portfolio_id = $1`
)

type OrderRepository interface {
	Add(ctx context.Context, order domain.Order) (*domain.Order, error)
	List(ctx context.Context, portfolioID uuid.UUID) ([]domain.Order, error)
}

type orderRepositoryHandler struct {
	db *sqlx.DB
}

func NewOrderRepository(db *sqlx.DB) OrderRepository {
	return orderRepositoryHandler{db: db}
}

func (h orderRepositoryHandler) Add(ctx context.Context, order domain.Order) (*domain.Order, error) {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	order.CreatedAt = time.Now().UTC()

	out := domain.Order{}
	err := h.db.GetContext(ctx, &out, _insertOrder,
		order.ID,
		order.PortfolioID,
		order.UserID,
		order.Ticker,
		order.Side,
		order.Quantity,
		order.Price,
		order.Status,
		order.Date,
		order.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	return &out, nil
}

func (h orderRepositoryHandler) List(ctx context.Context, portfolioID uuid.UUID) ([]domain.Order, error) {
	out := []domain.Order{}
	err := h.db.SelectContext(ctx, &out, _listOrders, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders for portfolio %s: %w", portfolioID, err)
	}

	return out, nil
}
