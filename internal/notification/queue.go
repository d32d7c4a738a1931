package notification

import (
	"context"
	"errors"
	"sync"
)

var ErrQueueFull = errors.New("notification queue full")

type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	// Dequeue blocks until a job is available or ctx is done.
	Dequeue(ctx context.Context) (Job, error)
	DeadLetter(ctx context.Context, job Job) error
	// DeadLetters removes and returns up to limit dead-lettered jobs.
	DeadLetters(ctx context.Context, limit int) ([]Job, error)
	Requeue(ctx context.Context, job Job) error
}

// depthReporter is implemented by queues that can report their backlog cheaply.
type depthReporter interface {
	Depth() int
}

// MemoryQueue is a bounded in-process queue. Jobs do not survive a restart.
type MemoryQueue struct {
	jobs chan Job

	mu   sync.Mutex
	dead []Job
}

func NewMemoryQueue(size int) *MemoryQueue {
	if size <= 0 {
		size = 1
	}
	return &MemoryQueue{jobs: make(chan Job, size)}
}

func (q *MemoryQueue) Enqueue(ctx context.Context, job Job) error {
	select {
	case q.jobs <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrQueueFull
	}
}

func (q *MemoryQueue) Dequeue(ctx context.Context) (Job, error) {
	select {
	case job := <-q.jobs:
		return job, nil
	case <-ctx.Done():
		return Job{}, ctx.Err()
	}
}

func (q *MemoryQueue) DeadLetter(_ context.Context, job Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.dead = append(q.dead, job)
	return nil
}

func (q *MemoryQueue) DeadLetters(_ context.Context, limit int) ([]Job, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := len(q.dead)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Job, n)
	copy(out, q.dead[:n])
	q.dead = append(q.dead[:0:0], q.dead[n:]...)
	return out, nil
}

func (q *MemoryQueue) Requeue(ctx context.Context, job Job) error {
	return q.Enqueue(ctx, job)
}

func (q *MemoryQueue) Depth() int {
	return len(q.jobs)
}
