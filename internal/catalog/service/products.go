package service

import (
	"context"

	"github.com/burgerboots/catalog/internal/catalog"
	"github.com/burgerboots/catalog/internal/catalog/listing"
	"github.com/burgerboots/catalog/internal/catalog/repository"
	"github.com/burgerboots/catalog/internal/media"
)

// ProductInput is a create or update request. Nil fields were not supplied.
type ProductInput struct {
	Name        *string
	Price       *float64
	Quantity    *int
	Description *string
	Category    *string
	Image       *media.File
}

// ProductService owns product validation, media attachment and listing.
type ProductService struct {
	repo     repository.ProductRepository
	media    media.Store
	validate *catalog.Validator
	opts     Options
}

func NewProductService(repo repository.ProductRepository, store media.Store, v *catalog.Validator, opts Options) *ProductService {
	return &ProductService{repo: repo, media: store, validate: v, opts: opts.withDefaults()}
}

// Create validates in, stores the attached image if any and inserts the product.
// Nothing is written when validation fails.
func (s *ProductService) Create(ctx context.Context, in ProductInput) (*catalog.Product, error) {
	var missing []string
	if blank(in.Name) {
		missing = append(missing, "name")
	}
	if in.Price == nil {
		missing = append(missing, "price")
	}
	if in.Quantity == nil {
		missing = append(missing, "quantity")
	}
	if len(missing) > 0 {
		return nil, &catalog.MissingFieldsError{Fields: missing}
	}

	p := catalog.ProductPatch{
		Name:        trimPtr(in.Name),
		Price:       in.Price,
		Quantity:    in.Quantity,
		Description: trimPtr(in.Description),
		Category:    trimPtr(in.Category),
	}.Apply(catalog.Product{})
	if err := s.validate.Product(p); err != nil {
		return nil, err
	}
	if in.Image != nil {
		ref, err := saveImage(ctx, s.media, s.opts.MediaPrefix, in.Image)
		if err != nil {
			return nil, err
		}
		p.Image = ref
	}
	if err := s.repo.Insert(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*catalog.Product, error) {
	return s.repo.FindByID(ctx, id)
}

// Update merges the supplied fields into the stored product. The merged record must
// pass the same validation as Create. A new image replaces the reference; the old
// file is kept.
func (s *ProductService) Update(ctx context.Context, id string, in ProductInput) (*catalog.Product, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch := catalog.ProductPatch{
		Name:        trimPtr(in.Name),
		Price:       in.Price,
		Quantity:    in.Quantity,
		Description: trimPtr(in.Description),
		Category:    trimPtr(in.Category),
	}
	if err := s.validate.Product(patch.Apply(*current)); err != nil {
		return nil, err
	}
	if in.Image != nil {
		ref, err := saveImage(ctx, s.media, s.opts.MediaPrefix, in.Image)
		if err != nil {
			return nil, err
		}
		patch.Image = &ref
	}
	if patch.Empty() {
		return current, nil
	}
	return s.repo.Update(ctx, id, patch)
}

// Delete removes the record only. Its image stays in the media store.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// List returns one page of products. Invalid page/limit values yield
// catalog.ErrInvalidPagination together with an empty page.
func (s *ProductService) List(ctx context.Context, pageRaw, limitRaw string, f catalog.ProductFilter) (listing.Page[catalog.Product], error) {
	req, err := listing.ParseRequest(pageRaw, limitRaw, s.opts.ProductPageSize)
	if err != nil {
		return invalidPage[catalog.Product](), err
	}
	items, total, err := s.repo.Query(ctx, f, req.Skip(), int64(req.Limit))
	if err != nil {
		return invalidPage[catalog.Product](), err
	}
	return listing.NewPage(req, items, total), nil
}

// Categories returns the distinct categories in use.
func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	cats, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, err
	}
	if cats == nil {
		cats = []string{}
	}
	return cats, nil
}
