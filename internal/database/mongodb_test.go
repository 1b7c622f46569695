package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConnectMongoWithRetryGivesUp(t *testing.T) {
	start := time.Now()
	_, err := ConnectMongoWithRetry(context.Background(), "mongodb://127.0.0.1:1/?connect=direct", 200*time.Millisecond, 1)
	require.Error(t, err)
	require.Contains(t, err.Error(), "after 1 attempts")
	require.Less(t, time.Since(start), 5*time.Second)
}

func TestConnectMongoWithRetryHonoursCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ConnectMongoWithRetry(ctx, "mongodb://127.0.0.1:1/?connect=direct", 100*time.Millisecond, 3)
	require.Error(t, err)
}
