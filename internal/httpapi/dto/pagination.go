package dto

// Pagination bounds shared by every list endpoint.
const (
	DefaultTake = 20
	MaxTake     = 50
)

// PageRequest is a normalized pagination window. Build one with
// NewPageRequest so page and take are always inside their bounds.
type PageRequest struct {
	Page int
	Take int
}

// NewPageRequest clamps page to >= 1 and take to [1, MaxTake]. Callers that
// want DefaultTake for an absent take pass it explicitly; an explicit zero
// clamps to 1 like any other out-of-range value.
func NewPageRequest(page, take int) PageRequest {
	if page < 1 {
		page = 1
	}
	if take < 1 {
		take = 1
	}
	if take > MaxTake {
		take = MaxTake
	}
	return PageRequest{Page: page, Take: take}
}

// Skip is the row offset for the window.
func (p PageRequest) Skip() int {
	return (p.Page - 1) * p.Take
}

// PageCount is ceil(total/take), never below 1 so an empty result still has
// one (empty) page.
func PageCount(total int64, take int) int {
	if total <= 0 {
		return 1
	}
	pages := int(total) / take
	if int(total)%take != 0 {
		pages++
	}
	return pages
}
