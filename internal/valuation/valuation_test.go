package valuation

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"portfoliotracker/internal/domain"
)

func TestCalculate(t *testing.T) {
	portfolioID := uuid.MustParse("11111111-1111-1111-1111-111111111111")

	deposit := func(amount int64) domain.Transaction {
		return domain.Transaction{Kind: domain.TransactionKind_Deposit, Amount: decimal.NewFromInt(amount)}
	}
	withdrawal := func(amount int64) domain.Transaction {
		return domain.Transaction{Kind: domain.TransactionKind_Withdrawal, Amount: decimal.NewFromInt(amount)}
	}
	order := func(side domain.OrderSide, status domain.OrderStatus, quantity, price int64) domain.Order {
		return domain.Order{
			Side:     side,
			Status:   status,
			Quantity: decimal.NewFromInt(quantity),
			Price:    decimal.NewFromInt(price),
		}
	}

	t.Run("cash minus withdrawals plus executed buys", func(t *testing.T) {
		transactions := []domain.Transaction{deposit(100), withdrawal(30)}
		orders := []domain.Order{order(domain.OrderSide_Buy, domain.OrderStatus_Executed, 4, 10)}

		summary := Calculate(portfolioID, "CLP", transactions, orders)

		require.Equal(t, "70", summary.CashBalance.String())
		require.Equal(t, "40", summary.StocksValue.String())
		require.Equal(t, "110", summary.TotalValue.String())
		require.Equal(t, portfolioID, summary.PortfolioID)
		require.Equal(t, "CLP", summary.Currency)
	})

	t.Run("sells subtract from stocks value", func(t *testing.T) {
		orders := []domain.Order{
			order(domain.OrderSide_Buy, domain.OrderStatus_Executed, 10, 5),
			order(domain.OrderSide_Sell, domain.OrderStatus_Executed, 3, 5),
		}

		summary := Calculate(portfolioID, "CLP", nil, orders)

		require.Equal(t, "35", summary.StocksValue.String())
	})

	t.Run("pending and cancelled orders contribute nothing", func(t *testing.T) {
		orders := []domain.Order{
			order(domain.OrderSide_Buy, domain.OrderStatus_Pending, 100, 100),
			order(domain.OrderSide_Buy, domain.OrderStatus_Cancelled, 100, 100),
		}

		summary := Calculate(portfolioID, "CLP", nil, orders)

		require.True(t, summary.StocksValue.IsZero())
		require.True(t, summary.TotalValue.IsZero())
	})

	t.Run("empty collections yield zero balances", func(t *testing.T) {
		summary := Calculate(portfolioID, "USD", nil, nil)

		require.True(t, summary.CashBalance.IsZero())
		require.True(t, summary.StocksValue.IsZero())
		require.True(t, summary.TotalValue.IsZero())
		require.Equal(t, "USD", summary.Currency)
	})

	t.Run("unrecognized kinds contribute zero", func(t *testing.T) {
		transactions := []domain.Transaction{
			deposit(100),
			{Kind: domain.TransactionKind("FEE"), Amount: decimal.NewFromInt(5)},
		}

		summary := Calculate(portfolioID, "CLP", transactions, nil)

		require.Equal(t, "100", summary.CashBalance.String())
	})

	t.Run("recomputation is idempotent", func(t *testing.T) {
		transactions := []domain.Transaction{deposit(100), withdrawal(30)}
		orders := []domain.Order{order(domain.OrderSide_Buy, domain.OrderStatus_Executed, 4, 10)}

		first := Calculate(portfolioID, "CLP", transactions, orders)
		second := Calculate(portfolioID, "CLP", transactions, orders)

		require.True(t, first.TotalValue.Equal(second.TotalValue))
	})

	t.Run("withdrawals can drive cash negative", func(t *testing.T) {
		summary := Calculate(portfolioID, "CLP", []domain.Transaction{withdrawal(50)}, nil)

		require.Equal(t, "-50", summary.CashBalance.String())
		require.Equal(t, "-50", summary.TotalValue.String())
	})
}
