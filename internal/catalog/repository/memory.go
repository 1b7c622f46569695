package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/burgerboots/catalog/internal/catalog"
)

// MemoryProductRepo is an in-memory ProductRepository used by tests and the
// standalone dev server.
type MemoryProductRepo struct {
	mu    sync.RWMutex
	store map[string]catalog.Product
	now   func() time.Time
}

func NewMemoryProductRepo() *MemoryProductRepo {
	return &MemoryProductRepo{store: make(map[string]catalog.Product), now: now}
}

func (m *MemoryProductRepo) Ping(ctx context.Context) error { return nil }

func (m *MemoryProductRepo) Insert(ctx context.Context, p *catalog.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == "" {
		p.ID = catalog.NewID()
	}
	p.CreatedAt = m.now()
	p.UpdatedAt = p.CreatedAt
	m.store[p.ID] = *p
	return nil
}

func (m *MemoryProductRepo) FindByID(ctx context.Context, id string) (*catalog.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return &p, nil
}

func (m *MemoryProductRepo) Update(ctx context.Context, id string, patch catalog.ProductPatch) (*catalog.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	p = patch.Apply(p)
	p.UpdatedAt = m.now()
	m.store[id] = p
	return &p, nil
}

func (m *MemoryProductRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return catalog.ErrNotFound
	}
	delete(m.store, id)
	return nil
}

func (m *MemoryProductRepo) Query(ctx context.Context, f catalog.ProductFilter, skip, limit int64) ([]catalog.Product, int64, error) {
	m.mu.RLock()
	matched := make([]catalog.Product, 0, len(m.store))
	for _, p := range m.store {
		if MatchProduct(f, p) {
			matched = append(matched, p)
		}
	}
	m.mu.RUnlock()

	sortNewestFirst(matched,
		func(p catalog.Product) time.Time { return p.CreatedAt },
		func(p catalog.Product) string { return p.ID })
	return window(matched, skip, limit), int64(len(matched)), nil
}

func (m *MemoryProductRepo) Categories(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := map[string]bool{}
	out := []string{}
	for _, p := range m.store {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	sort.Strings(out)
	return out, nil
}

// MemoryBlogRepo is the in-memory BlogRepository.
type MemoryBlogRepo struct {
	mu    sync.RWMutex
	store map[string]catalog.Blog
	now   func() time.Time
}

func NewMemoryBlogRepo() *MemoryBlogRepo {
	return &MemoryBlogRepo{store: make(map[string]catalog.Blog), now: now}
}

func (m *MemoryBlogRepo) Ping(ctx context.Context) error { return nil }

func (m *MemoryBlogRepo) Insert(ctx context.Context, b *catalog.Blog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b.ID == "" {
		b.ID = catalog.NewID()
	}
	if b.Tags == nil {
		b.Tags = []string{}
	}
	b.CreatedAt = m.now()
	b.UpdatedAt = b.CreatedAt
	m.store[b.ID] = cloneBlog(*b)
	return nil
}

func (m *MemoryBlogRepo) FindByID(ctx context.Context, id string) (*catalog.Blog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.store[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	b = cloneBlog(b)
	return &b, nil
}

func (m *MemoryBlogRepo) Update(ctx context.Context, id string, patch catalog.BlogPatch) (*catalog.Blog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.store[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	b = patch.Apply(b)
	b.UpdatedAt = m.now()
	m.store[id] = cloneBlog(b)
	return &b, nil
}

func (m *MemoryBlogRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return catalog.ErrNotFound
	}
	delete(m.store, id)
	return nil
}

func (m *MemoryBlogRepo) Query(ctx context.Context, f catalog.BlogFilter, skip, limit int64) ([]catalog.Blog, int64, error) {
	m.mu.RLock()
	matched := make([]catalog.Blog, 0, len(m.store))
	for _, b := range m.store {
		if MatchBlog(f, b) {
			matched = append(matched, cloneBlog(b))
		}
	}
	m.mu.RUnlock()

	sortNewestFirst(matched,
		func(b catalog.Blog) time.Time { return b.CreatedAt },
		func(b catalog.Blog) string { return b.ID })
	return window(matched, skip, limit), int64(len(matched)), nil
}

// cloneBlog copies the tag slice so callers never share backing arrays with the store.
func cloneBlog(b catalog.Blog) catalog.Blog {
	b.Tags = append([]string{}, b.Tags...)
	return b
}
