package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type User struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Rut       *string   `db:"rut"`
	Phone     *string   `db:"phone"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type Portfolio struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Name      string    `db:"name"`
	Currency  string    `db:"currency"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// PortfolioSummary is a point-in-time valuation of one portfolio,
// recomputed from a full event scan on every request.
type PortfolioSummary struct {
	PortfolioID uuid.UUID
	CashBalance decimal.Decimal
	StocksValue decimal.Decimal
	TotalValue  decimal.Decimal
	Currency    string
}
