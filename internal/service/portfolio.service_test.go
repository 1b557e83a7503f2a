package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"portfoliotracker/internal/domain"
	"portfoliotracker/internal/repository"
)

type fakePortfolioRepository struct {
	portfolios map[uuid.UUID]domain.Portfolio
}

func (f fakePortfolioRepository) Add(ctx context.Context, portfolio domain.Portfolio) (*domain.Portfolio, error) {
	if portfolio.ID == uuid.Nil {
		portfolio.ID = uuid.New()
	}
	f.portfolios[portfolio.ID] = portfolio
	return &portfolio, nil
}

func (f fakePortfolioRepository) Get(ctx context.Context, portfolioID uuid.UUID) (*domain.Portfolio, error) {
	portfolio, ok := f.portfolios[portfolioID]
	if !ok {
		return nil, fmt.Errorf("portfolio %s: %w", portfolioID, domain.ErrNotFound)
	}
	return &portfolio, nil
}

func (f fakePortfolioRepository) Update(ctx context.Context, portfolioID uuid.UUID, update repository.PortfolioUpdate) (*domain.Portfolio, error) {
	portfolio, ok := f.portfolios[portfolioID]
	if !ok {
		return nil, fmt.Errorf("portfolio %s: %w", portfolioID, domain.ErrNotFound)
	}
	if update.Name != nil {
		portfolio.Name = *update.Name
	}
	if update.Currency != nil {
		portfolio.Currency = *update.Currency
	}
	f.portfolios[portfolioID] = portfolio
	return &portfolio, nil
}

type fakeTransactionRepository struct {
	transactions []domain.Transaction
}

func (f *fakeTransactionRepository) Add(ctx context.Context, transaction domain.Transaction) (*domain.Transaction, error) {
	if transaction.ID == uuid.Nil {
		transaction.ID = uuid.New()
	}
	f.transactions = append(f.transactions, transaction)
	return &transaction, nil
}

func (f *fakeTransactionRepository) List(ctx context.Context, portfolioID uuid.UUID) ([]domain.Transaction, error) {
	out := []domain.Transaction{}
	for _, t := range f.transactions {
		if t.PortfolioID == portfolioID {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeOrderRepository struct {
	orders []domain.Order
}

func (f *fakeOrderRepository) Add(ctx context.Context, order domain.Order) (*domain.Order, error) {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	f.orders = append(f.orders, order)
	return &order, nil
}

func (f *fakeOrderRepository) List(ctx context.Context, portfolioID uuid.UUID) ([]domain.Order, error) {
	out := []domain.Order{}
	for _, o := range f.orders {
		if o.PortfolioID == portfolioID {
			out = append(out, o)
		}
	}
	return out, nil
}

type fakeUserRepository struct {
	users map[uuid.UUID]domain.User
}

func (f fakeUserRepository) Add(ctx context.Context, user domain.User) (*domain.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users[user.ID] = user
	return &user, nil
}

func (f fakeUserRepository) Get(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}
	return &user, nil
}

func (f fakeUserRepository) Update(ctx context.Context, userID uuid.UUID, update repository.UserUpdate) (*domain.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}
	if update.Name != nil {
		user.Name = *update.Name
	}
	f.users[userID] = user
	return &user, nil
}

func newFixture() (fakePortfolioRepository, *fakeTransactionRepository, *fakeOrderRepository, domain.Portfolio) {
	portfolio := domain.Portfolio{
		ID:       uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		UserID:   uuid.MustParse("22222222-2222-2222-2222-222222222222"),
		Name:     "Portafolio Principal",
		Currency: "CLP",
	}
	portfolioRepository := fakePortfolioRepository{
		portfolios: map[uuid.UUID]domain.Portfolio{portfolio.ID: portfolio},
	}
	return portfolioRepository, &fakeTransactionRepository{}, &fakeOrderRepository{}, portfolio
}

func TestPortfolioService_GetSummary(t *testing.T) {
	t.Run("computes valuation from both collections", func(t *testing.T) {
		portfolioRepository, transactionRepository, orderRepository, portfolio := newFixture()

		transactionRepository.transactions = []domain.Transaction{
			{PortfolioID: portfolio.ID, Kind: domain.TransactionKind_Deposit, Amount: decimal.NewFromInt(100)},
			{PortfolioID: portfolio.ID, Kind: domain.TransactionKind_Withdrawal, Amount: decimal.NewFromInt(30)},
		}
		orderRepository.orders = []domain.Order{
			{
				PortfolioID: portfolio.ID,
				Side:        domain.OrderSide_Buy,
				Status:      domain.OrderStatus_Executed,
				Quantity:    decimal.NewFromInt(4),
				Price:       decimal.NewFromInt(10),
			},
		}

		svc := NewPortfolioService(portfolioRepository, transactionRepository, orderRepository)
		summary, err := svc.GetSummary(context.Background(), portfolio.ID)

		require.NoError(t, err)
		require.Equal(t, "70", summary.CashBalance.String())
		require.Equal(t, "40", summary.StocksValue.String())
		require.Equal(t, "110", summary.TotalValue.String())
		require.Equal(t, "CLP", summary.Currency)
	})

	t.Run("unknown portfolio", func(t *testing.T) {
		portfolioRepository, transactionRepository, orderRepository, _ := newFixture()

		svc := NewPortfolioService(portfolioRepository, transactionRepository, orderRepository)
		_, err := svc.GetSummary(context.Background(), uuid.New())

		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestPortfolioService_GetMovements(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC)
	}

	t.Run("merged feed comes back date descending and paginated", func(t *testing.T) {
		portfolioRepository, transactionRepository, orderRepository, portfolio := newFixture()

		transactionRepository.transactions = []domain.Transaction{
			{ID: uuid.New(), PortfolioID: portfolio.ID, Kind: domain.TransactionKind_Deposit, Amount: decimal.NewFromInt(100), Date: day(1)},
			{ID: uuid.New(), PortfolioID: portfolio.ID, Kind: domain.TransactionKind_Deposit, Amount: decimal.NewFromInt(50), Date: day(3)},
		}
		orderRepository.orders = []domain.Order{
			{ID: uuid.New(), PortfolioID: portfolio.ID, Ticker: "AAPL", Side: domain.OrderSide_Buy, Status: domain.OrderStatus_Executed, Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(10), Date: day(2)},
		}

		svc := NewPortfolioService(portfolioRepository, transactionRepository, orderRepository)
		page, err := svc.GetMovements(context.Background(), portfolio.ID, 2, 1)

		require.NoError(t, err)
		require.Equal(t, 3, page.Total)
		require.Equal(t, 2, page.TotalPages)
		require.Len(t, page.Items, 2)
		require.Equal(t, day(3), page.Items[0].Date())
		require.Equal(t, day(2), page.Items[1].Date())
	})

	t.Run("unknown portfolio rejected before pagination", func(t *testing.T) {
		portfolioRepository, transactionRepository, orderRepository, _ := newFixture()

		svc := NewPortfolioService(portfolioRepository, transactionRepository, orderRepository)
		_, err := svc.GetMovements(context.Background(), uuid.New(), 10, 1)

		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("invalid pagination params rejected", func(t *testing.T) {
		portfolioRepository, transactionRepository, orderRepository, portfolio := newFixture()

		svc := NewPortfolioService(portfolioRepository, transactionRepository, orderRepository)

		_, err := svc.GetMovements(context.Background(), portfolio.ID, 0, 1)
		require.ErrorIs(t, err, domain.ErrInvalidLimit)

		_, err = svc.GetMovements(context.Background(), portfolio.ID, 10, 0)
		require.ErrorIs(t, err, domain.ErrInvalidPage)
	})
}

func TestTransactionService(t *testing.T) {
	t.Run("deposit validates and persists", func(t *testing.T) {
		portfolioRepository, transactionRepository, _, portfolio := newFixture()
		userRepository := fakeUserRepository{users: map[uuid.UUID]domain.User{
			portfolio.UserID: {ID: portfolio.UserID, Name: "Catalina"},
		}}

		svc := NewTransactionService(transactionRepository, NewValidationService(portfolioRepository, userRepository))
		created, err := svc.CreateDeposit(context.Background(), CreateTransactionRequest{
			PortfolioID: portfolio.ID,
			UserID:      portfolio.UserID,
			Amount:      decimal.NewFromInt(100),
			Date:        time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		})

		require.NoError(t, err)
		require.Equal(t, domain.TransactionKind_Deposit, created.Kind)
		require.Len(t, transactionRepository.transactions, 1)
	})

	t.Run("withdrawal for unknown user rejected", func(t *testing.T) {
		portfolioRepository, transactionRepository, _, portfolio := newFixture()
		userRepository := fakeUserRepository{users: map[uuid.UUID]domain.User{}}

		svc := NewTransactionService(transactionRepository, NewValidationService(portfolioRepository, userRepository))
		_, err := svc.CreateWithdrawal(context.Background(), CreateTransactionRequest{
			PortfolioID: portfolio.ID,
			UserID:      uuid.New(),
			Amount:      decimal.NewFromInt(100),
		})

		require.ErrorIs(t, err, domain.ErrNotFound)
		require.Empty(t, transactionRepository.transactions)
	})
}

func TestOrderService_Create(t *testing.T) {
	t.Run("new orders start pending", func(t *testing.T) {
		portfolioRepository, _, orderRepository, portfolio := newFixture()
		userRepository := fakeUserRepository{users: map[uuid.UUID]domain.User{
			portfolio.UserID: {ID: portfolio.UserID},
		}}

		svc := NewOrderService(orderRepository, NewValidationService(portfolioRepository, userRepository))
		created, err := svc.Create(context.Background(), CreateOrderRequest{
			PortfolioID: portfolio.ID,
			UserID:      portfolio.UserID,
			Ticker:      "AAPL",
			Side:        domain.OrderSide_Buy,
			Quantity:    decimal.NewFromInt(2),
			Price:       decimal.NewFromInt(150),
			Date:        time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		})

		require.NoError(t, err)
		require.Equal(t, domain.OrderStatus_Pending, created.Status)
	})

	t.Run("unknown portfolio rejected", func(t *testing.T) {
		portfolioRepository, _, orderRepository, portfolio := newFixture()
		userRepository := fakeUserRepository{users: map[uuid.UUID]domain.User{
			portfolio.UserID: {ID: portfolio.UserID},
		}}

		svc := NewOrderService(orderRepository, NewValidationService(portfolioRepository, userRepository))
		_, err := svc.Create(context.Background(), CreateOrderRequest{
			PortfolioID: uuid.New(),
			UserID:      portfolio.UserID,
			Ticker:      "AAPL",
			Side:        domain.OrderSide_Buy,
			Quantity:    decimal.NewFromInt(1),
			Price:       decimal.NewFromInt(10),
		})

		require.ErrorIs(t, err, domain.ErrNotFound)
		require.Empty(t, orderRepository.orders)
	})
}
