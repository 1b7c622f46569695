package repository

import (
	"context"
	"sort"
	"time"

	"github.com/burgerboots/catalog/internal/catalog"
)

// ProductRepository persists products. Implementations assign ids and timestamps on
// Insert, refresh updatedAt on Update and return catalog.ErrNotFound for unknown ids.
type ProductRepository interface {
	Insert(ctx context.Context, p *catalog.Product) error
	FindByID(ctx context.Context, id string) (*catalog.Product, error)
	Update(ctx context.Context, id string, patch catalog.ProductPatch) (*catalog.Product, error)
	Delete(ctx context.Context, id string) error
	// Query returns one window of matching products, newest first, and the total match count.
	Query(ctx context.Context, f catalog.ProductFilter, skip, limit int64) ([]catalog.Product, int64, error)
	// Categories returns the distinct non-empty product categories, sorted.
	Categories(ctx context.Context) ([]string, error)
}

// BlogRepository persists blog posts with the same contract as ProductRepository.
type BlogRepository interface {
	Insert(ctx context.Context, b *catalog.Blog) error
	FindByID(ctx context.Context, id string) (*catalog.Blog, error)
	Update(ctx context.Context, id string, patch catalog.BlogPatch) (*catalog.Blog, error)
	Delete(ctx context.Context, id string) error
	Query(ctx context.Context, f catalog.BlogFilter, skip, limit int64) ([]catalog.Blog, int64, error)
}

// Pinger is implemented by backends that can report connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// now returns the store clock truncated to Mongo's millisecond precision so both
// backends hand out identical timestamps.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// sortNewestFirst orders by created desc with id asc as tie-break, giving a total
// order and stable pagination.
func sortNewestFirst[T any](items []T, created func(T) time.Time, id func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		ci, cj := created(items[i]), created(items[j])
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return id(items[i]) < id(items[j])
	})
}

func window[T any](items []T, skip, limit int64) []T {
	n := int64(len(items))
	if skip < 0 || skip >= n {
		return []T{}
	}
	end := n
	if limit > 0 && limit < n-skip {
		end = skip + limit
	}
	return append([]T{}, items[skip:end]...)
}
