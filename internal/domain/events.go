package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionKind string

const (
	TransactionKind_Deposit    TransactionKind = "DEPOSIT"
	TransactionKind_Withdrawal TransactionKind = "WITHDRAWAL"
)

type OrderSide string

const (
	OrderSide_Buy  OrderSide = "BUY"
	OrderSide_Sell OrderSide = "SELL"
)

// Order status transitions are one-way: PENDING -> EXECUTED or
// PENDING -> CANCELLED, flipped by a process outside this service.
type OrderStatus string

const (
	OrderStatus_Pending   OrderStatus = "PENDING"
	OrderStatus_Executed  OrderStatus = "EXECUTED"
	OrderStatus_Cancelled OrderStatus = "CANCELLED"
)

// Transaction is a cash movement against a portfolio. Immutable once
// written.
type Transaction struct {
	ID          uuid.UUID       `db:"id"`
	PortfolioID uuid.UUID       `db:"portfolio_id"`
	UserID      uuid.UUID       `db:"user_id"`
	Kind        TransactionKind `db:"kind"`
	Amount      decimal.Decimal `db:"amount"`
	Date        time.Time       `db:"date"`
	Notes       *string         `db:"notes"`
	CreatedAt   time.Time       `db:"created_at"`
}

// Order is a security order against a portfolio. Created as PENDING.
type Order struct {
	ID          uuid.UUID       `db:"id"`
	PortfolioID uuid.UUID       `db:"portfolio_id"`
	UserID      uuid.UUID       `db:"user_id"`
	Ticker      string          `db:"ticker"`
	Side        OrderSide       `db:"side"`
	Quantity    decimal.Decimal `db:"quantity"`
	Price       decimal.Decimal `db:"price"`
	Status      OrderStatus     `db:"status"`
	Date        time.Time       `db:"date"`
	CreatedAt   time.Time       `db:"created_at"`
}
