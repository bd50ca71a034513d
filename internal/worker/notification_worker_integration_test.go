//go:build integration

package worker

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/edustar/intake-backend/internal/config"
)

func newRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	url, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	opts, err := redis.ParseURL(url)
	require.NoError(t, err)

	rdb := redis.NewClient(opts)
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestNotificationWorker_ConsumesQueue(t *testing.T) {
	rdb := newRedis(t)
	pub := &recordingPublisher{}
	w := NewNotificationWorker(rdb, pub, zerolog.New(io.Discard))

	queue := config.WorkerKey.SubmissionCreatedQueue
	require.NoError(t, rdb.RPush(context.Background(), queue, encodeEvent(t, "EDU-Q00001"), "garbage").Err())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return pub.count() == 1 }, 5*time.Second, 20*time.Millisecond)
	cancel()
	<-done

	n, err := rdb.LLen(context.Background(), queue).Result()
	require.NoError(t, err)
	assert.Zero(t, n, "malformed entries are dropped, not requeued")
}

func TestNotificationWorker_DrainRequeuesOnFailure(t *testing.T) {
	rdb := newRedis(t)
	pub := &recordingPublisher{err: errors.New("broker down")}
	w := NewNotificationWorker(rdb, pub, zerolog.New(io.Discard))

	queue := config.WorkerKey.SubmissionCreatedQueue
	require.NoError(t, rdb.RPush(context.Background(), queue, encodeEvent(t, "EDU-Q00002")).Err())

	w.drain(context.Background())

	n, err := rdb.LLen(context.Background(), queue).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
