package service

import (
	"context"
	"strings"

	"github.com/burgerboots/catalog/internal/catalog"
	"github.com/burgerboots/catalog/internal/catalog/listing"
	"github.com/burgerboots/catalog/internal/catalog/repository"
	"github.com/burgerboots/catalog/internal/media"
)

// BlogInput is a create or update request. Nil fields were not supplied.
type BlogInput struct {
	Title    *string
	Body     *string
	Author   *string
	Tags     *[]string
	Category *string
	Featured *bool
	Image    *media.File
}

type BlogService struct {
	repo     repository.BlogRepository
	media    media.Store
	validate *catalog.Validator
	opts     Options
}

func NewBlogService(repo repository.BlogRepository, store media.Store, v *catalog.Validator, opts Options) *BlogService {
	return &BlogService{repo: repo, media: store, validate: v, opts: opts.withDefaults()}
}

// Categories returns the configured blog categories in order.
func (s *BlogService) Categories() []string {
	return s.validate.Categories().List()
}

func (s *BlogService) checkCategory(c *string) error {
	if c == nil {
		return nil
	}
	if !s.validate.Categories().Contains(*c) {
		return &catalog.InvalidCategoryError{Value: *c, Valid: s.Categories()}
	}
	return nil
}

// patch normalises input: strings trimmed, blank tags dropped, blank author replaced
// by the default author.
func (s *BlogService) patch(in BlogInput) catalog.BlogPatch {
	p := catalog.BlogPatch{
		Title:    trimPtr(in.Title),
		Body:     trimPtr(in.Body),
		Author:   trimPtr(in.Author),
		Category: trimPtr(in.Category),
		Featured: in.Featured,
	}
	if p.Author != nil && *p.Author == "" {
		def := s.opts.DefaultAuthor
		p.Author = &def
	}
	if in.Tags != nil {
		tags := make([]string, 0, len(*in.Tags))
		for _, t := range *in.Tags {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
		p.Tags = &tags
	}
	return p
}

// Create checks required fields and the category before anything is written.
func (s *BlogService) Create(ctx context.Context, in BlogInput) (*catalog.Blog, error) {
	var missing []string
	if blank(in.Title) {
		missing = append(missing, "title")
	}
	if blank(in.Body) {
		missing = append(missing, "body")
	}
	if blank(in.Category) {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		return nil, &catalog.MissingFieldsError{Fields: missing}
	}

	patch := s.patch(in)
	if err := s.checkCategory(patch.Category); err != nil {
		return nil, err
	}
	b := patch.Apply(catalog.Blog{Author: s.opts.DefaultAuthor, Tags: []string{}})
	if err := s.validate.Blog(b); err != nil {
		return nil, err
	}
	if in.Image != nil {
		ref, err := saveImage(ctx, s.media, s.opts.MediaPrefix, in.Image)
		if err != nil {
			return nil, err
		}
		b.Image = ref
	}
	if err := s.repo.Insert(ctx, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *BlogService) Get(ctx context.Context, id string) (*catalog.Blog, error) {
	return s.repo.FindByID(ctx, id)
}

// Update merges the supplied fields; a supplied category must be valid.
func (s *BlogService) Update(ctx context.Context, id string, in BlogInput) (*catalog.Blog, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch := s.patch(in)
	if err := s.checkCategory(patch.Category); err != nil {
		return nil, err
	}
	if err := s.validate.Blog(patch.Apply(*current)); err != nil {
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

func (s *BlogService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *BlogService) List(ctx context.Context, pageRaw, limitRaw string, f catalog.BlogFilter) (listing.Page[catalog.Blog], error) {
	req, err := listing.ParseRequest(pageRaw, limitRaw, s.opts.BlogPageSize)
	if err != nil {
		return invalidPage[catalog.Blog](), err
	}
	items, total, err := s.repo.Query(ctx, f, req.Skip(), int64(req.Limit))
	if err != nil {
		return invalidPage[catalog.Blog](), err
	}
	return listing.NewPage(req, items, total), nil
}
