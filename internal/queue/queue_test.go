package queue_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/craftroot/checkout-api/internal/queue"
)

func setup(t *testing.T) *redis.Client {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestEnqueueDedup(t *testing.T) {
	client := setup(t)
	ctx := context.Background()
	enq := queue.Enqueuer{R: client, Prefix: "test", DedupTTL: time.Hour}

	task := queue.Task{Kind: "invoice:render", Payload: []byte(`{"orderId":"x"}`), IdempotencyKey: "order-1"}
	require.NoError(t, enq.Enqueue(ctx, task))
	require.NoError(t, enq.Enqueue(ctx, task))

	n, err := client.ZCard(ctx, "test:queue:invoice:render").Result()
	require.NoError(t, err)
	require.Equal(t, int64(1), n, "duplicate idempotency key must not enqueue twice")
}

func TestWorkOnceProcessesDueTask(t *testing.T) {
	client := setup(t)
	ctx := context.Background()
	enq := queue.Enqueuer{R: client, Prefix: "test"}
	require.NoError(t, enq.Enqueue(ctx, queue.Task{Kind: "invoice:render", Payload: []byte(`{"orderId":"a"}`)}))

	var handled []string
	w := queue.Worker{
		R:      client,
		Prefix: "test",
		Kind:   "invoice:render",
		Handler: func(_ context.Context, task queue.Task) error {
			handled = append(handled, string(task.Payload))
			return nil
		},
	}
	require.NoError(t, w.WorkOnce(ctx))
	require.Equal(t, []string{`{"orderId":"a"}`}, handled)

	n, err := client.ZCard(ctx, "test:queue:invoice:render").Result()
	require.NoError(t, err)
	require.Zero(t, n, "processed task must leave the queue")
}

func TestWorkOnceSkipsDelayedTask(t *testing.T) {
	client := setup(t)
	ctx := context.Background()
	enq := queue.Enqueuer{R: client, Prefix: "test"}
	require.NoError(t, enq.Enqueue(ctx, queue.Task{Kind: "invoice:render", Delay: time.Hour}))

	called := false
	w := queue.Worker{
		R:      client,
		Prefix: "test",
		Kind:   "invoice:render",
		Handler: func(context.Context, queue.Task) error {
			called = true
			return nil
		},
	}
	require.NoError(t, w.WorkOnce(ctx))
	require.False(t, called, "delayed task must not run before its available time")
}

func TestWorkOnceRetriesWithBackoff(t *testing.T) {
	client := setup(t)
	ctx := context.Background()
	enq := queue.Enqueuer{R: client, Prefix: "test"}
	require.NoError(t, enq.Enqueue(ctx, queue.Task{Kind: "invoice:render", MaxAttempts: 3}))

	attempts := 0
	w := queue.Worker{
		R:         client,
		Prefix:    "test",
		Kind:      "invoice:render",
		RetryBase: time.Minute,
		Handler: func(context.Context, queue.Task) error {
			attempts++
			return errors.New("boom")
		},
	}
	require.NoError(t, w.WorkOnce(ctx))
	require.Equal(t, 1, attempts)

	// Requeued with a future score: a second immediate pass sees nothing.
	require.NoError(t, w.WorkOnce(ctx))
	require.Equal(t, 1, attempts)

	n, err := client.ZCard(ctx, "test:queue:invoice:render").Result()
	require.NoError(t, err)
	require.Equal(t, int64(1), n, "failed task must be requeued for retry")
}

func TestTaskDroppedAfterMaxAttempts(t *testing.T) {
	client := setup(t)
	ctx := context.Background()
	enq := queue.Enqueuer{R: client, Prefix: "test"}
	require.NoError(t, enq.Enqueue(ctx, queue.Task{Kind: "invoice:render", MaxAttempts: 1}))

	w := queue.Worker{
		R:      client,
		Prefix: "test",
		Kind:   "invoice:render",
		Handler: func(context.Context, queue.Task) error {
			return errors.New("boom")
		},
	}
	require.NoError(t, w.WorkOnce(ctx))

	n, err := client.ZCard(ctx, "test:queue:invoice:render").Result()
	require.NoError(t, err)
	require.Zero(t, n, "exhausted task must be dropped, not requeued")
}
