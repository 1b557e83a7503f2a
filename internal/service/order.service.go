package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"portfoliotracker/internal/domain"
	"portfoliotracker/internal/repository"
)

type CreateOrderRequest struct {
	PortfolioID uuid.UUID
	UserID      uuid.UUID
	Ticker      string
	Side        domain.OrderSide
	Quantity    decimal.Decimal
	Price       decimal.Decimal
	Date        time.Time
}

type OrderService interface {
	Create(ctx context.Context, req CreateOrderRequest) (*domain.Order, error)
}

type orderServiceHandler struct {
	OrderRepository   repository.OrderRepository
	ValidationService ValidationService
}

func NewOrderService(
	orderRepository repository.OrderRepository,
	validationService ValidationService,
) OrderService {
	return orderServiceHandler{
		OrderRepository:   orderRepository,
		ValidationService: validationService,
	}
}

// Create admits a new order in PENDING status. Execution or cancellation
// happens elsewhere.
func (h orderServiceHandler) Create(ctx context.Context, req CreateOrderRequest) (*domain.Order, error) {
	if err := h.ValidationService.ValidatePortfolioAndUser(ctx, req.PortfolioID, req.UserID); err != nil {
		return nil, err
	}

	return h.OrderRepository.Add(ctx, domain.Order{
		PortfolioID: req.PortfolioID,
		UserID:      req.UserID,
		Ticker:      req.Ticker,
		Side:        req.Side,
		Quantity:    req.Quantity,
		Price:       req.Price,
		Status:      domain.OrderStatus_Pending,
		Date:        req.Date,
	})
}
