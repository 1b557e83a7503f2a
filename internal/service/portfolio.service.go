package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"portfoliotracker/internal/domain"
	"portfoliotracker/internal/movement"
	"portfoliotracker/internal/repository"
	"portfoliotracker/internal/valuation"
)

type PortfolioService interface {
	Update(ctx context.Context, portfolioID uuid.UUID, update repository.PortfolioUpdate) (*domain.Portfolio, error)
	GetSummary(ctx context.Context, portfolioID uuid.UUID) (*domain.PortfolioSummary, error)
	GetMovements(ctx context.Context, portfolioID uuid.UUID, limit, page int) (*movement.Page, error)
}

type portfolioServiceHandler struct {
	PortfolioRepository   repository.PortfolioRepository
	TransactionRepository repository.TransactionRepository
	OrderRepository       repository.OrderRepository
}

func NewPortfolioService(
	portfolioRepository repository.PortfolioRepository,
	transactionRepository repository.TransactionRepository,
	orderRepository repository.OrderRepository,
) PortfolioService {
	return portfolioServiceHandler{
		PortfolioRepository:   portfolioRepository,
		TransactionRepository: transactionRepository,
		OrderRepository:       orderRepository,
	}
}

func (h portfolioServiceHandler) Update(ctx context.Context, portfolioID uuid.UUID, update repository.PortfolioUpdate) (*domain.Portfolio, error) {
	return h.PortfolioRepository.Update(ctx, portfolioID, update)
}

// GetSummary reduces the portfolio's full event collections into a
// valuation snapshot. The two fetches are independent reads, not one
// transaction; an event landing between them shows up on the next call.
func (h portfolioServiceHandler) GetSummary(ctx context.Context, portfolioID uuid.UUID) (*domain.PortfolioSummary, error) {
	portfolio, err := h.PortfolioRepository.Get(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	transactions, err := h.TransactionRepository.List(ctx, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions for summary: %w", err)
	}
	orders, err := h.OrderRepository.List(ctx, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders for summary: %w", err)
	}

	summary := valuation.Calculate(portfolioID, portfolio.Currency, transactions, orders)
	return &summary, nil
}

// GetMovements merges the portfolio's transactions and orders into one
// date-descending feed and slices out the requested page.
func (h portfolioServiceHandler) GetMovements(ctx context.Context, portfolioID uuid.UUID, limit, page int) (*movement.Page, error) {
	if _, err := h.PortfolioRepository.Get(ctx, portfolioID); err != nil {
		return nil, err
	}

	transactions, err := h.TransactionRepository.List(ctx, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions for movements: %w", err)
	}
	orders, err := h.OrderRepository.List(ctx, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders for movements: %w", err)
	}

	movements := movement.Aggregate(transactions, orders)
	return movement.Paginate(movements, limit, page)
}
