package repository

import (
	"strings"
	"testing"

	"github.com/burgerboots/catalog/internal/catalog"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestProductQuery(t *testing.T) {
	assert.Equal(t, bson.M{}, ProductQuery(catalog.ProductFilter{}))
	assert.Equal(t, bson.M{}, ProductQuery(catalog.ProductFilter{Search: "   ", Category: " "}))

	assert.Equal(t,
		bson.M{"name": primitive.Regex{Pattern: `^Bacon Burger$`, Options: "i"}},
		ProductQuery(catalog.ProductFilter{Search: " Bacon Burger "}))

	assert.Equal(t,
		bson.M{"name": primitive.Regex{Pattern: `^1\+1 \(combo\)$`, Options: "i"}},
		ProductQuery(catalog.ProductFilter{Search: "1+1 (combo)", Category: "ignored"}))

	assert.Equal(t,
		bson.M{"category": primitive.Regex{Pattern: `burger`, Options: "i"}},
		ProductQuery(catalog.ProductFilter{Category: "burger"}))
}

func TestBlogQuery(t *testing.T) {
	assert.Equal(t, bson.M{}, BlogQuery(catalog.BlogFilter{}))
	assert.Equal(t, bson.M{"category": "Food"}, BlogQuery(catalog.BlogFilter{Category: "Food"}))

	rx := primitive.Regex{Pattern: `spic\.`, Options: "i"}
	assert.Equal(t, bson.M{
		"category": "Food",
		"$or": bson.A{
			bson.M{"title": rx},
			bson.M{"body": rx},
			bson.M{"tags": rx},
		},
	}, BlogQuery(catalog.BlogFilter{Category: "Food", Search: "spic."}))
}

func TestMatchProductMirrorsQuery(t *testing.T) {
	p := catalog.Product{Name: "Bacon Burger", Category: "Burgers"}
	assert.True(t, MatchProduct(catalog.ProductFilter{Search: "bacon BURGER"}, p))
	assert.False(t, MatchProduct(catalog.ProductFilter{Search: "Bacon"}, p))
	assert.False(t, MatchProduct(catalog.ProductFilter{Search: "Bacon Burger Deluxe"}, p))
	assert.True(t, MatchProduct(catalog.ProductFilter{Category: "urg"}, p))
	assert.True(t, MatchProduct(catalog.ProductFilter{}, p))
}

func TestMatchersFoldASCII(t *testing.T) {
	p := catalog.Product{Name: "Classic Burger", Category: "Burgers"}
	b := catalog.Blog{Title: "Burger night", Body: "Smoke", Category: "Food"}
	for c := 'a'; c <= 'z'; c++ {
		lower, upper := string(c), strings.ToUpper(string(c))
		p.Name, b.Body = "x"+lower+"y", "x"+lower+"y"
		assert.True(t, MatchProduct(catalog.ProductFilter{Search: "X" + upper + "Y"}, p), lower)
		assert.True(t, MatchBlog(catalog.BlogFilter{Search: upper + "Y"}, b), lower)
	}
	p.Category = "Kebab"
	assert.True(t, MatchProduct(catalog.ProductFilter{Category: "KEB"}, p))
}

func TestMatchBlogMirrorsQuery(t *testing.T) {
	b := catalog.Blog{Title: "Burger night", Body: "With our spicy sauce", Tags: []string{"Grill"}, Category: "Food"}
	assert.True(t, MatchBlog(catalog.BlogFilter{Search: "SPICY"}, b))
	assert.True(t, MatchBlog(catalog.BlogFilter{Search: "gri"}, b))
	assert.True(t, MatchBlog(catalog.BlogFilter{Search: "night", Category: "Food"}, b))
	assert.False(t, MatchBlog(catalog.BlogFilter{Search: "night", Category: "food"}, b))
	assert.False(t, MatchBlog(catalog.BlogFilter{Search: "pizza"}, b))
}

func TestSetDocumentsOnlyCarrySuppliedFields(t *testing.T) {
	name := "n"
	q := 0
	assert.Equal(t, bson.M{"name": "n", "quantity": 0}, productSet(catalog.ProductPatch{Name: &name, Quantity: &q}))

	var nilTags []string
	featured := false
	assert.Equal(t, bson.M{"tags": []string{}, "featured": false}, blogSet(catalog.BlogPatch{Tags: &nilTags, Featured: &featured}))
}
