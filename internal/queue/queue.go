package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Task represents a job to be processed asynchronously.
type Task struct {
	Kind           string
	Payload        []byte
	IdempotencyKey string
	MaxAttempts    int
	Delay          time.Duration
}

type taskMessage struct {
	Kind        string `json:"kind"`
	Key         string `json:"key,omitempty"`
	Payload     []byte `json:"payload,omitempty"`
	Attempt     int    `json:"attempt"`
	MaxAttempts int    `json:"maxAttempts"`
	AvailableAt int64  `json:"availableAt"`
}

// Enqueuer publishes tasks onto redis sorted-set queues scored by the time
// they become available.
type Enqueuer struct {
	R        *redis.Client
	Prefix   string
	DedupTTL time.Duration
}

// Enqueue inserts the task into its queue. With an idempotency key the task
// is only enqueued once within the deduplication window.
func (e Enqueuer) Enqueue(ctx context.Context, t Task) error {
	if e.R == nil {
		return errors.New("queue: redis client not configured")
	}
	if t.Kind == "" {
		return errors.New("queue: task kind is required")
	}
	msg := taskMessage{
		Kind:        t.Kind,
		Key:         t.IdempotencyKey,
		Payload:     t.Payload,
		MaxAttempts: t.MaxAttempts,
	}
	if msg.MaxAttempts <= 0 {
		msg.MaxAttempts = 5
	}
	msg.AvailableAt = time.Now().Add(t.Delay).UnixNano()

	if msg.Key != "" {
		ttl := e.DedupTTL
		if ttl <= 0 {
			ttl = 24 * time.Hour
		}
		ok, err := e.R.SetNX(ctx, e.key("dedup:"+t.Kind+":"+msg.Key), "1", ttl).Result()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
	raw, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return e.R.ZAdd(ctx, e.key("queue:"+t.Kind), redis.Z{
		Score:  float64(msg.AvailableAt),
		Member: raw,
	}).Err()
}

func (e Enqueuer) key(suffix string) string {
	if e.Prefix == "" {
		return suffix
	}
	return e.Prefix + ":" + suffix
}

// Worker consumes tasks of one kind, retrying failed tasks with exponential
// backoff until MaxAttempts is exhausted.
type Worker struct {
	R            *redis.Client
	Prefix       string
	Kind         string
	Handler      func(context.Context, Task) error
	PollInterval time.Duration
	RetryBase    time.Duration
	Logger       *zerolog.Logger
}

// Run polls until the context is cancelled.
func (w Worker) Run(ctx context.Context) error {
	if w.R == nil || w.Handler == nil || w.Kind == "" {
		return errors.New("queue: worker not configured")
	}
	interval := w.PollInterval
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.WorkOnce(ctx); err != nil && w.Logger != nil {
				w.Logger.Error().Err(err).Str("kind", w.Kind).Msg("queue worker pass failed")
			}
		}
	}
}

// WorkOnce claims and processes at most one due task. Claiming is a ZRem of
// the exact member, so concurrent workers never process the same message.
func (w Worker) WorkOnce(ctx context.Context) error {
	queueKey := w.queueKey()
	now := time.Now().UnixNano()
	members, err := w.R.ZRangeByScore(ctx, queueKey, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   fmt.Sprintf("%d", now),
		Count: 1,
	}).Result()
	if err != nil {
		return err
	}
	if len(members) == 0 {
		return nil
	}
	raw := members[0]
	removed, err := w.R.ZRem(ctx, queueKey, raw).Result()
	if err != nil {
		return err
	}
	if removed == 0 {
		return nil
	}
	var msg taskMessage
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		return fmt.Errorf("queue: decode task: %w", err)
	}
	task := Task{
		Kind:           msg.Kind,
		Payload:        msg.Payload,
		IdempotencyKey: msg.Key,
		MaxAttempts:    msg.MaxAttempts,
	}
	if err := w.Handler(ctx, task); err != nil {
		return w.retry(ctx, msg, err)
	}
	return nil
}

func (w Worker) retry(ctx context.Context, msg taskMessage, cause error) error {
	msg.Attempt++
	if msg.Attempt >= msg.MaxAttempts {
		if w.Logger != nil {
			w.Logger.Error().Err(cause).
				Str("kind", msg.Kind).
				Str("key", msg.Key).
				Int("attempts", msg.Attempt).
				Msg("task dropped after max attempts")
		}
		return nil
	}
	base := w.RetryBase
	if base <= 0 {
		base = 2 * time.Second
	}
	delay := base << (msg.Attempt - 1)
	msg.AvailableAt = time.Now().Add(delay).UnixNano()
	raw, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return w.R.ZAdd(ctx, w.queueKey(), redis.Z{
		Score:  float64(msg.AvailableAt),
		Member: raw,
	}).Err()
}

func (w Worker) queueKey() string {
	if w.Prefix == "" {
		return "queue:" + w.Kind
	}
	return w.Prefix + ":queue:" + w.Kind
}
