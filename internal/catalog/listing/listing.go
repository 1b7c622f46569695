// Package listing turns page/limit query parameters into store offsets and
// builds the pagination block returned alongside every listing.
package listing

import (
	"math"
	"strconv"
	"strings"

	"github.com/burgerboots/catalog/internal/catalog"
)

// Request is a validated page request.
type Request struct {
	Page  int
	Limit int
}

// ParseRequest reads raw page/limit values. Absent or non-numeric values fall back to
// page 1 and defaultLimit; numeric values below 1 are rejected with
// catalog.ErrInvalidPagination. The returned Request always carries the values that
// were understood so callers can echo them in an error response.
func ParseRequest(pageRaw, limitRaw string, defaultLimit int) (Request, error) {
	r := Request{Page: parseOr(pageRaw, 1), Limit: parseOr(limitRaw, defaultLimit)}
	if r.Page < 1 || r.Limit < 1 {
		return r, catalog.ErrInvalidPagination
	}
	return r, nil
}

func parseOr(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	return n
}

// Skip is the number of matching records before this page. It is not clamped to the
// result size: pages past the end simply come back empty. Offsets too large for an
// int64 saturate at math.MaxInt64, which is past the end of any result.
func (r Request) Skip() int64 {
	if r.Page <= 1 || r.Limit <= 0 {
		return 0
	}
	page, limit := int64(r.Page-1), int64(r.Limit)
	if page > math.MaxInt64/limit {
		return math.MaxInt64
	}
	return page * limit
}

// Pagination is the metadata block of a listing response.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalItems  int64 `json:"totalItems"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

// NewPagination computes page metadata for total matching records. An empty result
// has zero pages.
func NewPagination(r Request, total int64) Pagination {
	pages := 0
	if total > 0 && r.Limit > 0 {
		limit := int64(r.Limit)
		n := total / limit
		if total%limit != 0 {
			n++
		}
		pages = int(n)
	}
	return Pagination{
		CurrentPage: r.Page,
		TotalPages:  pages,
		TotalItems:  total,
		HasNext:     r.Page < pages,
		HasPrev:     r.Page > 1,
	}
}

// Page is one page of a listing.
type Page[T any] struct {
	Items      []T
	Pagination Pagination
}

// NewPage wraps items, normalising nil to an empty slice so it encodes as [].
func NewPage[T any](r Request, items []T, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Pagination: NewPagination(r, total)}
}
