package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/burgerboots/catalog/internal/catalog"
	"github.com/burgerboots/catalog/internal/database"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

// mongoTestDB connects to MONGODB_TEST_URI and returns a throwaway database.
func mongoTestDB(t *testing.T) *mongo.Database {
	t.Helper()
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set; skipping Mongo repository tests")
	}
	ctx := context.Background()
	client, err := database.ConnectMongo(ctx, uri, 5*time.Second)
	require.NoError(t, err)
	db := client.Database(fmt.Sprintf("catalog_test_%d", time.Now().UnixNano()))
	t.Cleanup(func() {
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return db
}

func TestMongoProductRepoContract(t *testing.T) {
	db := mongoTestDB(t)
	repo := NewMongoProductRepo(db.Collection("products"), 5*time.Second)
	require.NoError(t, repo.EnsureIndexes(context.Background()))
	require.NoError(t, repo.Ping(context.Background()))
	productRepoContract(t, repo, func(f func() time.Time) { repo.now = f })
}

func TestMongoBlogRepoContract(t *testing.T) {
	db := mongoTestDB(t)
	repo := NewMongoBlogRepo(db.Collection("blogs"), 5*time.Second)
	require.NoError(t, repo.EnsureIndexes(context.Background()))
	blogRepoContract(t, repo, func(f func() time.Time) { repo.now = f })
}

func TestClassifyMarksTimeouts(t *testing.T) {
	require.NoError(t, classify(nil))
	err := classify(fmt.Errorf("wrapped: %w", context.DeadlineExceeded))
	require.ErrorIs(t, err, catalog.ErrUnavailable)
	require.NotErrorIs(t, classify(fmt.Errorf("dup key")), catalog.ErrUnavailable)
}
