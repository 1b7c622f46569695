// Package service implements the product and blog lifecycle on top of the record
// store and the media store.
package service

import (
	"context"
	"strings"

	"github.com/burgerboots/catalog/internal/catalog/listing"
	"github.com/burgerboots/catalog/internal/media"
)

// Options configures both services.
type Options struct {
	MediaPrefix     string
	DefaultAuthor   string
	ProductPageSize int
	BlogPageSize    int
}

func (o Options) withDefaults() Options {
	if o.MediaPrefix == "" {
		o.MediaPrefix = "/uploads"
	}
	if o.DefaultAuthor == "" {
		o.DefaultAuthor = "Burger Boots"
	}
	if o.ProductPageSize < 1 {
		o.ProductPageSize = 6
	}
	if o.BlogPageSize < 1 {
		o.BlogPageSize = 10
	}
	return o
}

// saveImage stores an attached upload and returns its public reference.
func saveImage(ctx context.Context, store media.Store, prefix string, f *media.File) (string, error) {
	key, err := store.Save(ctx, *f)
	if err != nil {
		return "", err
	}
	return media.PublicRef(prefix, key), nil
}

// invalidPage is returned alongside catalog.ErrInvalidPagination so callers can still
// render the empty listing shape.
func invalidPage[T any]() listing.Page[T] {
	return listing.Page[T]{Items: []T{}}
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
