package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/burgerboots/catalog/internal/catalog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// newestFirst is the listing sort: createdAt desc, _id asc as a unique tie-break.
var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}}

// MongoProductRepo implements ProductRepository on a Mongo collection.
// Every call runs under its own timeout so a stalled server fails the request
// instead of hanging it.
type MongoProductRepo struct {
	col     *mongo.Collection
	timeout time.Duration
	now     func() time.Time
}

func NewMongoProductRepo(col *mongo.Collection, timeout time.Duration) *MongoProductRepo {
	return &MongoProductRepo{col: col, timeout: timeout, now: now}
}

// EnsureIndexes creates the listing and lookup indexes (idempotent).
func (m *MongoProductRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	_, err := m.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: newestFirst},
		{Keys: bson.D{{Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create product indexes: %w", err)
	}
	return nil
}

func (m *MongoProductRepo) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	return classify(m.col.Database().Client().Ping(ctx, nil))
}

func (m *MongoProductRepo) Insert(ctx context.Context, p *catalog.Product) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	if p.ID == "" {
		p.ID = catalog.NewID()
	}
	p.CreatedAt = m.now()
	p.UpdatedAt = p.CreatedAt
	if _, err := m.col.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("insert product: %w", classify(err))
	}
	return nil
}

func (m *MongoProductRepo) FindByID(ctx context.Context, id string) (*catalog.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	var p catalog.Product
	if err := m.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, catalog.ErrNotFound
		}
		return nil, fmt.Errorf("find product %s: %w", id, classify(err))
	}
	return &p, nil
}

func (m *MongoProductRepo) Update(ctx context.Context, id string, patch catalog.ProductPatch) (*catalog.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	set := productSet(patch)
	set["updatedAt"] = m.now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p catalog.Product
	if err := m.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, catalog.ErrNotFound
		}
		return nil, fmt.Errorf("update product %s: %w", id, classify(err))
	}
	return &p, nil
}

func (m *MongoProductRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	res, err := m.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete product %s: %w", id, classify(err))
	}
	if res.DeletedCount == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (m *MongoProductRepo) Query(ctx context.Context, f catalog.ProductFilter, skip, limit int64) ([]catalog.Product, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	filter := ProductQuery(f)
	total, err := m.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count products: %w", classify(err))
	}
	out := []catalog.Product{}
	if total == 0 || skip < 0 || skip >= total {
		return out, total, nil
	}
	if limit <= 0 || limit > total-skip {
		limit = total - skip
	}
	opts := options.Find().SetSort(newestFirst).SetSkip(skip).SetLimit(limit)
	cur, err := m.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find products: %w", classify(err))
	}
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, fmt.Errorf("decode products: %w", classify(err))
	}
	return out, total, nil
}

func (m *MongoProductRepo) Categories(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	vals, err := m.col.Distinct(ctx, "category", bson.M{"category": bson.M{"$nin": bson.A{"", nil}}})
	if err != nil {
		return nil, fmt.Errorf("distinct categories: %w", classify(err))
	}
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out, nil
}

// MongoBlogRepo implements BlogRepository on a Mongo collection.
type MongoBlogRepo struct {
	col     *mongo.Collection
	timeout time.Duration
	now     func() time.Time
}

func NewMongoBlogRepo(col *mongo.Collection, timeout time.Duration) *MongoBlogRepo {
	return &MongoBlogRepo{col: col, timeout: timeout, now: now}
}

// EnsureIndexes creates the listing indexes (idempotent).
func (m *MongoBlogRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	_, err := m.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: newestFirst},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("create blog indexes: %w", err)
	}
	return nil
}

func (m *MongoBlogRepo) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	return classify(m.col.Database().Client().Ping(ctx, nil))
}

func (m *MongoBlogRepo) Insert(ctx context.Context, b *catalog.Blog) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	if b.ID == "" {
		b.ID = catalog.NewID()
	}
	if b.Tags == nil {
		b.Tags = []string{}
	}
	b.CreatedAt = m.now()
	b.UpdatedAt = b.CreatedAt
	if _, err := m.col.InsertOne(ctx, b); err != nil {
		return fmt.Errorf("insert blog: %w", classify(err))
	}
	return nil
}

func (m *MongoBlogRepo) FindByID(ctx context.Context, id string) (*catalog.Blog, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	var b catalog.Blog
	if err := m.col.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, catalog.ErrNotFound
		}
		return nil, fmt.Errorf("find blog %s: %w", id, classify(err))
	}
	return &b, nil
}

func (m *MongoBlogRepo) Update(ctx context.Context, id string, patch catalog.BlogPatch) (*catalog.Blog, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	set := blogSet(patch)
	set["updatedAt"] = m.now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var b catalog.Blog
	if err := m.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, catalog.ErrNotFound
		}
		return nil, fmt.Errorf("update blog %s: %w", id, classify(err))
	}
	return &b, nil
}

func (m *MongoBlogRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	res, err := m.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete blog %s: %w", id, classify(err))
	}
	if res.DeletedCount == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (m *MongoBlogRepo) Query(ctx context.Context, f catalog.BlogFilter, skip, limit int64) ([]catalog.Blog, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	filter := BlogQuery(f)
	total, err := m.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count blogs: %w", classify(err))
	}
	out := []catalog.Blog{}
	if total == 0 || skip < 0 || skip >= total {
		return out, total, nil
	}
	if limit <= 0 || limit > total-skip {
		limit = total - skip
	}
	opts := options.Find().SetSort(newestFirst).SetSkip(skip).SetLimit(limit)
	cur, err := m.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find blogs: %w", classify(err))
	}
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, fmt.Errorf("decode blogs: %w", classify(err))
	}
	return out, total, nil
}

// classify marks timeouts and network failures as catalog.ErrUnavailable.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return fmt.Errorf("%w: %v", catalog.ErrUnavailable, err)
	}
	return err
}
