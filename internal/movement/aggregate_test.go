package movement

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"portfoliotracker/internal/domain"
)

func newTransaction(id string, date time.Time) domain.Transaction {
	return domain.Transaction{
		ID:     uuid.MustParse(id),
		Kind:   domain.TransactionKind_Deposit,
		Amount: decimal.NewFromInt(100),
		Date:   date,
	}
}

func newOrder(id string, date time.Time) domain.Order {
	return domain.Order{
		ID:       uuid.MustParse(id),
		Ticker:   "AAPL",
		Side:     domain.OrderSide_Buy,
		Quantity: decimal.NewFromInt(1),
		Price:    decimal.NewFromInt(10),
		Status:   domain.OrderStatus_Executed,
		Date:     date,
	}
}

func TestAggregate(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC)
	}

	t.Run("merges both collections completely", func(t *testing.T) {
		transactions := []domain.Transaction{
			newTransaction("11111111-1111-1111-1111-111111111111", day(1)),
			newTransaction("22222222-2222-2222-2222-222222222222", day(2)),
		}
		orders := []domain.Order{
			newOrder("33333333-3333-3333-3333-333333333333", day(3)),
		}

		movements := Aggregate(transactions, orders)

		require.Len(t, movements, 3)
		seen := map[uuid.UUID]bool{}
		for _, m := range movements {
			seen[m.ID()] = true
		}
		require.Len(t, seen, 3)
	})

	t.Run("sorts date descending", func(t *testing.T) {
		transactions := []domain.Transaction{
			newTransaction("11111111-1111-1111-1111-111111111111", day(1)),
			newTransaction("22222222-2222-2222-2222-222222222222", day(5)),
		}
		orders := []domain.Order{
			newOrder("33333333-3333-3333-3333-333333333333", day(3)),
		}

		movements := Aggregate(transactions, orders)

		require.Equal(t, day(5), movements[0].Date())
		require.Equal(t, day(3), movements[1].Date())
		require.Equal(t, day(1), movements[2].Date())
	})

	t.Run("equal dates tie-break by id ascending", func(t *testing.T) {
		transactions := []domain.Transaction{
			newTransaction("bbbbbbbb-0000-0000-0000-000000000000", day(4)),
		}
		orders := []domain.Order{
			newOrder("aaaaaaaa-0000-0000-0000-000000000000", day(4)),
		}

		movements := Aggregate(transactions, orders)

		require.Equal(t, "aaaaaaaa-0000-0000-0000-000000000000", movements[0].ID().String())
		require.Equal(t, "bbbbbbbb-0000-0000-0000-000000000000", movements[1].ID().String())
	})

	t.Run("zero date sorts last", func(t *testing.T) {
		transactions := []domain.Transaction{
			newTransaction("11111111-1111-1111-1111-111111111111", time.Time{}),
			newTransaction("22222222-2222-2222-2222-222222222222", day(1)),
		}

		movements := Aggregate(transactions, nil)

		require.Equal(t, day(1), movements[0].Date())
		require.True(t, movements[1].Date().IsZero())
	})

	t.Run("empty inputs yield empty feed", func(t *testing.T) {
		movements := Aggregate(nil, nil)
		require.Empty(t, movements)
	})

	t.Run("input order does not change output", func(t *testing.T) {
		a := newTransaction("11111111-1111-1111-1111-111111111111", day(2))
		b := newTransaction("22222222-2222-2222-2222-222222222222", day(2))

		first := Aggregate([]domain.Transaction{a, b}, nil)
		second := Aggregate([]domain.Transaction{b, a}, nil)

		require.Equal(t, first[0].ID(), second[0].ID())
		require.Equal(t, first[1].ID(), second[1].ID())
	})
}
