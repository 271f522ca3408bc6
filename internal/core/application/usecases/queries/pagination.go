package queries

import (
	"fmt"

	"settlement/internal/pkg/errs"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
	MaxPage          = 1_000_000
)

// Pagination is a 1-based page request. Zero values fall back to page 1 and
// DefaultPageLimit.
type Pagination struct {
	Page  int
	Limit int
}

// NewPagination normalizes page and limit. A limit above MaxPageLimit or a page
// above MaxPage is rejected.
func NewPagination(page, limit int) (Pagination, error) {
	if page < 0 {
		return Pagination{}, errs.NewValueIsInvalidErrorWithCause("page", fmt.Errorf("%d is negative", page))
	}
	if page > MaxPage {
		return Pagination{}, errs.NewValueIsOutOfRangeError("page", page, 1, MaxPage)
	}
	if limit < 0 || limit > MaxPageLimit {
		return Pagination{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxPageLimit)
	}
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = DefaultPageLimit
	}
	return Pagination{Page: page, Limit: limit}, nil
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Page is one page of a read model together with the unpaged total.
type Page[T any] struct {
	Items []T
	Total int64
	Page  int
	Limit int
}
