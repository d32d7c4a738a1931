package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisJobsKey = "dentalpay:notify:jobs"
	redisDeadKey = "dentalpay:notify:dead"
)

// RedisQueue keeps jobs in Redis lists so pending and dead-lettered emails survive restarts.
// Producers LPUSH and consumers BRPOP, giving FIFO order.
type RedisQueue struct {
	client      redis.Cmdable
	pollTimeout time.Duration
}

func NewRedisQueue(client redis.Cmdable) *RedisQueue {
	return &RedisQueue{client: client, pollTimeout: time.Second}
}

func (q *RedisQueue) Enqueue(ctx context.Context, job Job) error {
	return q.push(ctx, redisJobsKey, job)
}

func (q *RedisQueue) Dequeue(ctx context.Context) (Job, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Job{}, err
		}
		res, err := q.client.BRPop(ctx, q.pollTimeout, redisJobsKey).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return Job{}, fmt.Errorf("brpop %s: %w", redisJobsKey, err)
		}
		if len(res) != 2 {
			continue
		}
		return decodeJob(res[1])
	}
}

func (q *RedisQueue) DeadLetter(ctx context.Context, job Job) error {
	return q.push(ctx, redisDeadKey, job)
}

func (q *RedisQueue) DeadLetters(ctx context.Context, limit int) ([]Job, error) {
	var jobs []Job
	for limit <= 0 || len(jobs) < limit {
		raw, err := q.client.RPop(ctx, redisDeadKey).Result()
		if errors.Is(err, redis.Nil) {
			break
		}
		if err != nil {
			return jobs, fmt.Errorf("rpop %s: %w", redisDeadKey, err)
		}
		job, err := decodeJob(raw)
		if err != nil {
			// Undecodable entries are dropped.
			continue
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func (q *RedisQueue) Requeue(ctx context.Context, job Job) error {
	return q.push(ctx, redisJobsKey, job)
}

func (q *RedisQueue) push(ctx context.Context, key string, job Job) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("encode job: %w", err)
	}
	if err := q.client.LPush(ctx, key, payload).Err(); err != nil {
		return fmt.Errorf("lpush %s: %w", key, err)
	}
	return nil
}

func decodeJob(raw string) (Job, error) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		return Job{}, fmt.Errorf("decode job: %w", err)
	}
	return job, nil
}
