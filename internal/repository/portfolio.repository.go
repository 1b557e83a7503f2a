package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"portfoliotracker/internal/domain"
)

const (
	_insertPortfolio = `INSERT INTO portfolios (id, user_id, name, currency, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, name, currency, created_at, updated_at`
	_getPortfolio = `SELECT id, user_id, name, currency, created_at, updated_at
		FROM portfolios WHERE id = $1`
	_updatePortfolio = `UPDATE portfolios
		SET name = COALESCE($2, name), currency = COALESCE($3, currency), updated_at = $4
		WHERE id = $1
		RETURNING id, user_id, name, currency, created_at, updated_at`
)

// PortfolioUpdate carries the mutable portfolio fields; nil leaves a field
// untouched.
type PortfolioUpdate struct {
	Name     *string
	Currency *string
}

type PortfolioRepository interface {
	Add(ctx context.Context, portfolio domain.Portfolio) (*domain.Portfolio, error)
	Get(ctx context.Context, portfolioID uuid.UUID) (*domain.Portfolio, error)
	Update(ctx context.Context, portfolioID uuid.UUID, update PortfolioUpdate) (*domain.Portfolio, error)
}

type portfolioRepositoryHandler struct {
	db *sqlx.DB
}

func NewPortfolioRepository(db *sqlx.DB) PortfolioRepository {
	return portfolioRepositoryHandler{db: db}
}

func (h portfolioRepositoryHandler) Add(ctx context.Context, portfolio domain.Portfolio) (*domain.Portfolio, error) {
	if portfolio.ID == uuid.Nil {
		portfolio.ID = uuid.New()
	}
	now := time.Now().UTC()
	portfolio.CreatedAt = now
	portfolio.UpdatedAt = now

	out := domain.Portfolio{}
	err := h.db.GetContext(ctx, &out, _insertPortfolio,
		portfolio.ID,
		portfolio.UserID,
		portfolio.Name,
		portfolio.Currency,
		portfolio.CreatedAt,
		portfolio.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert portfolio: %w", err)
	}

	return &out, nil
}

func (h portfolioRepositoryHandler) Get(ctx context.Context, portfolioID uuid.UUID) (*domain.Portfolio, error) {
	out := domain.Portfolio{}
	err := h.db.GetContext(ctx, &out, _getPortfolio, portfolioID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("portfolio %s: %w", portfolioID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get portfolio %s: %w", portfolioID, err)
	}

	return &out, nil
}

func (h portfolioRepositoryHandler) Update(ctx context.Context, portfolioID uuid.UUID, update PortfolioUpdate) (*domain.Portfolio, error) {
	out := domain.Portfolio{}
	err := h.db.GetContext(ctx, &out, _updatePortfolio,
		portfolioID,
		update.Name,
		update.Currency,
		time.Now().UTC(),
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("portfolio %s: %w", portfolioID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update portfolio %s: %w", portfolioID, err)
	}

	return &out, nil
}
