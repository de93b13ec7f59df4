package queue

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"scoreworker/internal/logging"
)

const (
	defaultScoreQueueKey = "score_matches"
	retrySuffix          = ":retry"
	dlqSuffix            = ":dlq"
	retryCounterSuffix   = ":retry-count:"
	maxRetryAttempts     = 3
	retryCounterTTL      = 24 * time.Hour
	brPopBlock           = 5 * time.Second
)

// Handler processes one job payload. A returned error schedules a retry.
type Handler func(ctx context.Context, payload []byte) error

// Depth is the number of pending jobs per list of a queue.
type Depth struct {
	Pending int64
	Retry   int64
	Dead    int64
}

// RedisQueue implements queue operations using Redis lists.
type RedisQueue struct {
	client *redis.Client
	key    string
}

// NewRedisQueue builds a Redis-backed queue helper.
func NewRedisQueue(client *redis.Client) *RedisQueue {
	return &RedisQueue{client: client, key: defaultScoreQueueKey}
}

type queueKeys struct {
	base, retry, dlq string
}

func (q *RedisQueue) keys(queueName string) queueKeys {
	if queueName == "" {
		queueName = q.key
	}
	return queueKeys{base: queueName, retry: queueName + retrySuffix, dlq: queueName + dlqSuffix}
}

// Enqueue pushes a job payload onto the queue. BRPOP consumers pop from the
// tail, so jobs run in enqueue order.
func (q *RedisQueue) Enqueue(ctx context.Context, queueName string, payload []byte) error {
	k := q.keys(queueName)
	if err := q.client.LPush(ctx, k.base, payload).Err(); err != nil {
		return fmt.Errorf("enqueue to %s: %w", k.base, err)
	}
	return nil
}

// Depth reports how many jobs wait in the main, retry and dead-letter lists.
func (q *RedisQueue) Depth(ctx context.Context, queueName string) (Depth, error) {
	k := q.keys(queueName)
	pipe := q.client.Pipeline()
	base := pipe.LLen(ctx, k.base)
	retry := pipe.LLen(ctx, k.retry)
	dead := pipe.LLen(ctx, k.dlq)
	if _, err := pipe.Exec(ctx); err != nil {
		return Depth{}, fmt.Errorf("queue depth for %s: %w", k.base, err)
	}
	return Depth{Pending: base.Val(), Retry: retry.Val(), Dead: dead.Val()}, nil
}

// Consume uses BRPOP to deliver jobs to the handler until the context is canceled.
func (q *RedisQueue) Consume(ctx context.Context, queueName string, handler Handler) error {
	k := q.keys(queueName)
	for {
		payload, err := q.pop(ctx, k)
		if err != nil {
			return err
		}
		if payload == nil {
			continue
		}
		q.process(ctx, k, "consumer", payload, handler)
	}
}

// ConsumeConcurrent uses BRPOP to feed jobs to a worker pool for concurrent processing.
func (q *RedisQueue) ConsumeConcurrent(ctx context.Context, queueName string, workerCount, bufferSize int, handler Handler) error {
	logger := logging.Logger()
	k := q.keys(queueName)

	jobChan := make(chan []byte, bufferSize)
	var wg sync.WaitGroup

	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			label := fmt.Sprintf("worker %d", workerID)
			for payload := range jobChan {
				q.process(ctx, k, label, payload, handler)
			}
			logger.Infof("%s: exiting", label)
		}(i)
	}

	logger.Infof("started %d concurrent workers for queue %s", workerCount, k.base)

	stop := func(err error) error {
		close(jobChan)
		wg.Wait()
		return err
	}

	for {
		payload, err := q.pop(ctx, k)
		if err != nil {
			return stop(err)
		}
		if payload == nil {
			continue
		}

		select {
		case jobChan <- payload:
		case <-ctx.Done():
			return stop(ctx.Err())
		}
	}
}

// pop blocks for the next job, preferring the retry list. It returns a nil
// payload when nothing arrived within the block window or after a transient
// Redis error, and a non-nil error only once ctx is done.
func (q *RedisQueue) pop(ctx context.Context, k queueKeys) ([]byte, error) {
	logger := logging.Logger()
	if ctx.Err() != nil {
		logger.Warnf("redis consumer exiting: %v", ctx.Err())
		return nil, ctx.Err()
	}

	result, err := q.client.BRPop(ctx, brPopBlock, k.retry, k.base).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		if ctx.Err() != nil {
			logger.Warnf("redis BRPOP canceled: %v", ctx.Err())
			return nil, ctx.Err()
		}
		logger.Warnf("redis BRPOP error: %v", err)
		return nil, nil
	}
	if len(result) < 2 {
		return nil, nil
	}
	return []byte(result[1]), nil
}

func (q *RedisQueue) process(ctx context.Context, k queueKeys, label string, payload []byte, handler Handler) {
	logger := logging.Logger()
	if err := handler(ctx, payload); err != nil {
		logger.Warnf("%s: handler error, scheduling retry: %v", label, err)
		if err := q.handleRetry(ctx, k, payload); err != nil {
			logger.Errorf("%s: retry handling failed: %v", label, err)
		}
		return
	}
	_ = q.clearRetryCounter(ctx, k.base, payload)
}

func (q *RedisQueue) handleRetry(ctx context.Context, k queueKeys, payload []byte) error {
	logger := logging.Logger()
	attempt, err := q.incrementRetryCounter(ctx, k.base, payload)
	if err != nil {
		return err
	}
	if !shouldRetry(attempt) {
		logger.Warnf("moving job to DLQ after %d attempts", attempt-1)
		_ = q.client.LPush(ctx, k.dlq, payload).Err()
		_ = q.clearRetryCounter(ctx, k.base, payload)
		return nil
	}
	return q.client.LPush(ctx, k.retry, payload).Err()
}

func shouldRetry(attempt int64) bool {
	return attempt <= maxRetryAttempts
}

func (q *RedisQueue) incrementRetryCounter(ctx context.Context, queueName string, payload []byte) (int64, error) {
	key := retryCounterKey(queueName, payload)
	count, err := q.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	_ = q.client.Expire(ctx, key, retryCounterTTL).Err()
	return count, nil
}

func (q *RedisQueue) clearRetryCounter(ctx context.Context, queueName string, payload []byte) error {
	key := retryCounterKey(queueName, payload)
	return q.client.Del(ctx, key).Err()
}

func retryCounterKey(queue string, payload []byte) string {
	sum := sha256.Sum256(payload)
	return fmt.Sprintf("%s%s%s", queue, retryCounterSuffix, hex.EncodeToString(sum[:]))
}
