package valuation

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"portfoliotracker/internal/domain"
)

// Calculate reduces a portfolio's full transaction and order collections
// into a cash/securities/total snapshot. Single pass per collection, no
// caching: the underlying collections can change between calls and the
// store offers no cheap delta query.
//
// cashBalance = sum of deposits - sum of withdrawals. stocksValue counts
// EXECUTED orders only: +quantity*price for BUY, -quantity*price for SELL.
// Unrecognized kinds contribute zero rather than failing. Empty collections
// yield zero balances.
func Calculate(portfolioID uuid.UUID, currency string, transactions []domain.Transaction, orders []domain.Order) domain.PortfolioSummary {
	cashBalance := decimal.Zero
	for _, t := range transactions {
		switch t.Kind {
		case domain.TransactionKind_Deposit:
			cashBalance = cashBalance.Add(t.Amount)
		case domain.TransactionKind_Withdrawal:
			cashBalance = cashBalance.Sub(t.Amount)
		}
	}

	stocksValue := decimal.Zero
	for _, o := range orders {
		if o.Status != domain.OrderStatus_Executed {
			continue
		}
		value := o.Quantity.Mul(o.Price)
		switch o.Side {
		case domain.OrderSide_Buy:
			stocksValue = stocksValue.Add(value)
		case domain.OrderSide_Sell:
			stocksValue = stocksValue.Sub(value)
		}
	}

	return domain.PortfolioSummary{
		PortfolioID: portfolioID,
		CashBalance: cashBalance,
		StocksValue: stocksValue,
		TotalValue:  cashBalance.Add(stocksValue),
		Currency:    currency,
	}
}
