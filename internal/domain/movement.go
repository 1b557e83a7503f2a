package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Movement is a read-time projection over either a cash transaction or a
// security order, used for unified chronological display. Exactly one of
// the two variants is set; it is never persisted.
type Movement struct {
	Transaction *Transaction
	Order       *Order
}

func NewTransactionMovement(t Transaction) Movement {
	return Movement{Transaction: &t}
}

func NewOrderMovement(o Order) Movement {
	return Movement{Order: &o}
}

func (m Movement) ID() uuid.UUID {
	switch {
	case m.Transaction != nil:
		return m.Transaction.ID
	case m.Order != nil:
		return m.Order.ID
	}
	return uuid.Nil
}

func (m Movement) PortfolioID() uuid.UUID {
	switch {
	case m.Transaction != nil:
		return m.Transaction.PortfolioID
	case m.Order != nil:
		return m.Order.PortfolioID
	}
	return uuid.Nil
}

func (m Movement) UserID() uuid.UUID {
	switch {
	case m.Transaction != nil:
		return m.Transaction.UserID
	case m.Order != nil:
		return m.Order.UserID
	}
	return uuid.Nil
}

// Date returns the event date. An event written without a usable date
// reports the zero time, which sorts last in a date-descending feed.
func (m Movement) Date() time.Time {
	switch {
	case m.Transaction != nil:
		return m.Transaction.Date
	case m.Order != nil:
		return m.Order.Date
	}
	return time.Time{}
}

func (m Movement) CreatedAt() time.Time {
	switch {
	case m.Transaction != nil:
		return m.Transaction.CreatedAt
	case m.Order != nil:
		return m.Order.CreatedAt
	}
	return time.Time{}
}

// Type reports the concrete movement kind: DEPOSIT/WITHDRAWAL for the
// transaction variant, BUY/SELL for the order variant.
func (m Movement) Type() string {
	switch {
	case m.Transaction != nil:
		return string(m.Transaction.Kind)
	case m.Order != nil:
		return string(m.Order.Side)
	}
	return ""
}

func (m Movement) Validate() error {
	if m.Transaction == nil && m.Order == nil {
		return fmt.Errorf("movement has no variant set")
	}
	if m.Transaction != nil && m.Order != nil {
		return fmt.Errorf("movement has both variants set")
	}
	return nil
}
