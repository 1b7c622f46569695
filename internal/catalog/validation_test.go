package catalog

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator() *Validator {
	return NewValidator(NewCategories([]string{"Technology", "Food", "Cooking"}))
}

func TestValidatorProductPriceBounds(t *testing.T) {
	val := newTestValidator()
	cases := []struct {
		price float64
		ok    bool
	}{
		{-1, false},
		{0, true},
		{9.99, true},
		{10000, true},
		{10001, false},
	}
	for _, tc := range cases {
		err := val.Product(Product{Name: "Bacon Burger", Price: tc.price})
		if tc.ok {
			assert.NoError(t, err, "price %v", tc.price)
			continue
		}
		var ve *ValidationError
		require.True(t, errors.As(err, &ve), "price %v", tc.price)
		assert.True(t, ve.Has("price"), "price %v: %v", tc.price, ve)
	}
}

func TestValidatorProductReportsAllViolations(t *testing.T) {
	val := newTestValidator()
	err := val.Product(Product{
		Name:        strings.Repeat("x", 101),
		Price:       -5,
		Quantity:    -1,
		Description: strings.Repeat("d", 501),
	})
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	for _, f := range []string{"name", "price", "quantity", "description"} {
		assert.True(t, ve.Has(f), "expected violation for %s in %v", f, ve.Errors)
	}
}

func TestValidatorNameLengthCountsCharacters(t *testing.T) {
	val := newTestValidator()
	// 100 multi-byte characters is still within the limit
	require.NoError(t, val.Product(Product{Name: strings.Repeat("é", 100), Price: 1}))
}

func TestValidatorBlogCategory(t *testing.T) {
	val := newTestValidator()
	ok := Blog{Title: "t", Body: "b", Author: "a", Category: "Food"}
	require.NoError(t, val.Blog(ok))

	bad := ok
	bad.Category = "food"
	var ve *ValidationError
	require.True(t, errors.As(val.Blog(bad), &ve))
	assert.True(t, ve.Has("category"))

	missing := Blog{}
	require.True(t, errors.As(val.Blog(missing), &ve))
	for _, f := range []string{"title", "body", "author", "category"} {
		assert.True(t, ve.Has(f), f)
	}
}

func TestValidatorBlogTagLength(t *testing.T) {
	val := newTestValidator()
	b := Blog{Title: "t", Body: "b", Author: "a", Category: "Food", Tags: []string{"ok", strings.Repeat("x", 51)}}
	var ve *ValidationError
	require.True(t, errors.As(val.Blog(b), &ve))
	assert.True(t, ve.Has("tags"))
}

func TestCategoriesPreserveOrderAndDedupe(t *testing.T) {
	c := NewCategories([]string{"b", "a", "b", "", "c"})
	assert.Equal(t, []string{"b", "a", "c"}, c.List())
	assert.True(t, c.Contains("a"))
	assert.False(t, c.Contains("A"))

	l := c.List()
	l[0] = "mutated"
	assert.Equal(t, "b", c.List()[0])
}

func TestPatchApplyOnlyTouchesSuppliedFields(t *testing.T) {
	name := "New"
	p := Product{ID: "1", Name: "Old", Price: 3, Quantity: 2, Description: "keep"}
	got := ProductPatch{Name: &name}.Apply(p)
	assert.Equal(t, "New", got.Name)
	assert.Equal(t, 3.0, got.Price)
	assert.Equal(t, 2, got.Quantity)
	assert.Equal(t, "keep", got.Description)
	assert.Equal(t, "Old", p.Name)

	tags := []string{"x"}
	b := BlogPatch{Tags: &tags}.Apply(Blog{Title: "t", Tags: []string{"a", "b"}})
	assert.Equal(t, []string{"x"}, b.Tags)
	assert.Equal(t, "t", b.Title)
	assert.True(t, BlogPatch{}.Empty())
	assert.False(t, ProductPatch{Name: &name}.Empty())
}
