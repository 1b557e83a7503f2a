package movement

import (
	"portfoliotracker/internal/domain"
)

// Page is one slice of a sorted movement feed plus count metadata.
type Page struct {
	Items      []domain.Movement
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

// Paginate slices a sorted movement feed into the requested page.
// offset = (page-1)*limit; a page past the end yields an empty item list.
// Out-of-range page and limit values are rejected, not clamped.
func Paginate(movements []domain.Movement, limit, page int) (*Page, error) {
	if limit < 1 {
		return nil, domain.ErrInvalidLimit
	}
	if page < 1 {
		return nil, domain.ErrInvalidPage
	}

	total := len(movements)
	totalPages := (total + limit - 1) / limit

	offset := (page - 1) * limit
	items := []domain.Movement{}
	if offset < total {
		end := offset + limit
		if end > total {
			end = total
		}
		items = movements[offset:end]
	}

	return &Page{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}
