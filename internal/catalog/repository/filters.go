package repository

import (
	"regexp"
	"strings"

	"github.com/burgerboots/catalog/internal/catalog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductQuery builds the Mongo filter for a product listing.
//
// A non-empty search matches the name exactly, ignoring case ("Bacon Burger" does not
// match "Bacon Burger Deluxe"). Otherwise a non-empty category matches as a
// case-insensitive substring. Input is quoted, never interpreted as a pattern.
func ProductQuery(f catalog.ProductFilter) bson.M {
	if s := strings.TrimSpace(f.Search); s != "" {
		return bson.M{"name": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(s) + "$", Options: "i"}}
	}
	if c := strings.TrimSpace(f.Category); c != "" {
		return bson.M{"category": primitive.Regex{Pattern: regexp.QuoteMeta(c), Options: "i"}}
	}
	return bson.M{}
}

// BlogQuery builds the Mongo filter for a blog listing. Search is a case-insensitive
// substring over title, body or any tag; category is an exact match; both combine
// with AND.
func BlogQuery(f catalog.BlogFilter) bson.M {
	q := bson.M{}
	if c := strings.TrimSpace(f.Category); c != "" {
		q["category"] = c
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		rx := primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
		q["$or"] = bson.A{
			bson.M{"title": rx},
			bson.M{"body": rx},
			bson.M{"tags": rx},
		}
	}
	return q
}

// MatchProduct applies ProductQuery semantics to an in-memory record.
// Case folding agrees with the Mongo regex for ASCII only; Go's Unicode folding
// (Kelvin sign K against "k", for example) may match where Mongo does not.
func MatchProduct(f catalog.ProductFilter, p catalog.Product) bool {
	if s := strings.TrimSpace(f.Search); s != "" {
		return strings.EqualFold(p.Name, s)
	}
	if c := strings.TrimSpace(f.Category); c != "" {
		return containsFold(p.Category, c)
	}
	return true
}

// MatchBlog applies BlogQuery semantics to an in-memory record.
func MatchBlog(f catalog.BlogFilter, b catalog.Blog) bool {
	if c := strings.TrimSpace(f.Category); c != "" && b.Category != c {
		return false
	}
	s := strings.TrimSpace(f.Search)
	if s == "" {
		return true
	}
	if containsFold(b.Title, s) || containsFold(b.Body, s) {
		return true
	}
	for _, tag := range b.Tags {
		if containsFold(tag, s) {
			return true
		}
	}
	return false
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// productSet is the $set document for a product patch.
func productSet(p catalog.ProductPatch) bson.M {
	set := bson.M{}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Price != nil {
		set["price"] = *p.Price
	}
	if p.Quantity != nil {
		set["quantity"] = *p.Quantity
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Category != nil {
		set["category"] = *p.Category
	}
	if p.Image != nil {
		set["image"] = *p.Image
	}
	return set
}

// blogSet is the $set document for a blog patch.
func blogSet(p catalog.BlogPatch) bson.M {
	set := bson.M{}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Body != nil {
		set["body"] = *p.Body
	}
	if p.Author != nil {
		set["author"] = *p.Author
	}
	if p.Tags != nil {
		tags := *p.Tags
		if tags == nil {
			tags = []string{}
		}
		set["tags"] = tags
	}
	if p.Category != nil {
		set["category"] = *p.Category
	}
	if p.Image != nil {
		set["image"] = *p.Image
	}
	if p.Featured != nil {
		set["featured"] = *p.Featured
	}
	return set
}
