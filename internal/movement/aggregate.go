package movement

import (
	"sort"

	"portfoliotracker/internal/domain"
)

// Aggregate merges the transaction and order events of one portfolio into a
// single movement feed sorted by date descending (most recent first).
//
// Events sharing an identical date order by movement id ascending, so the
// feed is deterministic across re-fetches even when the store reorders its
// results. Events with a zero date sort last. Pure function of its inputs.
func Aggregate(transactions []domain.Transaction, orders []domain.Order) []domain.Movement {
	movements := make([]domain.Movement, 0, len(transactions)+len(orders))
	for _, t := range transactions {
		movements = append(movements, domain.NewTransactionMovement(t))
	}
	for _, o := range orders {
		movements = append(movements, domain.NewOrderMovement(o))
	}

	sort.SliceStable(movements, func(i, j int) bool {
		di, dj := movements[i].Date(), movements[j].Date()
		if di.Equal(dj) {
			return movements[i].ID().String() < movements[j].ID().String()
		}
		return di.After(dj)
	})

	return movements
}
