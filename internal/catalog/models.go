package catalog

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a shop item persisted in the "products" collection.
type Product struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name" validate:"required,max=100"`
	Price       float64   `json:"price" bson:"price" validate:"gte=0,lte=10000"`
	Quantity    int       `json:"quantity" bson:"quantity" validate:"gte=0"`
	Description string    `json:"description" bson:"description" validate:"max=500"`
	Category    string    `json:"category" bson:"category" validate:"max=50"`
	Image       string    `json:"image" bson:"image"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Blog is a post persisted in the "blogs" collection.
type Blog struct {
	ID        string    `json:"id" bson:"_id"`
	Title     string    `json:"title" bson:"title" validate:"required,max=200"`
	Body      string    `json:"body" bson:"body" validate:"required"`
	Author    string    `json:"author" bson:"author" validate:"required,max=100"`
	Tags      []string  `json:"tags" bson:"tags" validate:"dive,max=50"`
	Category  string    `json:"category" bson:"category" validate:"required,blogcategory"`
	Image     string    `json:"image" bson:"image"`
	Featured  bool      `json:"featured" bson:"featured"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// ProductPatch carries the fields of a product update; nil means "leave untouched".
type ProductPatch struct {
	Name        *string
	Price       *float64
	Quantity    *int
	Description *string
	Category    *string
	Image       *string
}

// Apply returns a copy of p with the supplied fields overwritten.
func (pp ProductPatch) Apply(p Product) Product {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Price != nil {
		p.Price = *pp.Price
	}
	if pp.Quantity != nil {
		p.Quantity = *pp.Quantity
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	if pp.Category != nil {
		p.Category = *pp.Category
	}
	if pp.Image != nil {
		p.Image = *pp.Image
	}
	return p
}

// Empty reports whether the patch changes nothing.
func (pp ProductPatch) Empty() bool {
	return pp.Name == nil && pp.Price == nil && pp.Quantity == nil &&
		pp.Description == nil && pp.Category == nil && pp.Image == nil
}

// BlogPatch carries the fields of a blog update; nil means "leave untouched".
type BlogPatch struct {
	Title    *string
	Body     *string
	Author   *string
	Tags     *[]string
	Category *string
	Image    *string
	Featured *bool
}

// Apply returns a copy of b with the supplied fields overwritten.
func (bp BlogPatch) Apply(b Blog) Blog {
	if bp.Title != nil {
		b.Title = *bp.Title
	}
	if bp.Body != nil {
		b.Body = *bp.Body
	}
	if bp.Author != nil {
		b.Author = *bp.Author
	}
	if bp.Tags != nil {
		b.Tags = append([]string{}, (*bp.Tags)...)
	}
	if bp.Category != nil {
		b.Category = *bp.Category
	}
	if bp.Image != nil {
		b.Image = *bp.Image
	}
	if bp.Featured != nil {
		b.Featured = *bp.Featured
	}
	return b
}

// Empty reports whether the patch changes nothing.
func (bp BlogPatch) Empty() bool {
	return bp.Title == nil && bp.Body == nil && bp.Author == nil && bp.Tags == nil &&
		bp.Category == nil && bp.Image == nil && bp.Featured == nil
}

// ProductFilter narrows a product listing. Search takes precedence over Category.
type ProductFilter struct {
	Search   string
	Category string
}

// BlogFilter narrows a blog listing. Both constraints apply when set.
type BlogFilter struct {
	Search   string
	Category string
}

// NewID returns a fresh record identifier. Identifiers are ObjectID hex strings so
// they sort in creation order and look familiar to Mongo tooling.
func NewID() string {
	return primitive.NewObjectID().Hex()
}
