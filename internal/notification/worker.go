package notification

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/smallbiznis/dentalpay/internal/observability/metrics"
	"github.com/smallbiznis/dentalpay/internal/providers/email"
	"github.com/smallbiznis/dentalpay/pkg/retry"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const dequeueErrorBackoff = time.Second

type WorkerParams struct {
	fx.In

	Queue    Queue
	Provider email.Provider
	Config   Config
	Log      *zap.Logger
	Metrics  *metrics.NotificationMetrics `optional:"true"`
}

// Worker runs a fixed pool of goroutines that deliver queued notifications.
type Worker struct {
	queue    Queue
	provider email.Provider
	cfg      Config
	log      *zap.Logger
	metrics  *metrics.NotificationMetrics

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewWorker(p WorkerParams) *Worker {
	return &Worker{
		queue:    p.Queue,
		provider: p.Provider,
		cfg:      p.Config,
		log:      p.Log.Named("notification.worker"),
		metrics:  p.Metrics,
	}
}

// Start launches the pool. The pool outlives ctx; call Stop to end it.
func (w *Worker) Start(context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	for i := 0; i < w.cfg.Workers; i++ {
		w.wg.Add(1)
		go w.run(ctx, i)
	}
	w.log.Info("notification workers started", zap.Int("workers", w.cfg.Workers), zap.String("queue", w.cfg.Queue))
}

// Stop cancels in-flight work and waits for the pool to exit or ctx to expire.
func (w *Worker) Stop(ctx context.Context) error {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()
	if cancel == nil {
		return nil
	}
	cancel()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Worker) run(ctx context.Context, id int) {
	defer w.wg.Done()
	log := w.log.With(zap.Int("worker", id))

	for {
		job, err := w.queue.Dequeue(ctx)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			log.Warn("dequeue failed", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(dequeueErrorBackoff):
			}
			continue
		}
		if dr, ok := w.queue.(depthReporter); ok {
			w.metrics.SetQueueDepth(dr.Depth())
		}
		_ = w.Process(ctx, job)
	}
}

// Process renders and sends one job with retries. A job that cannot be delivered is dead-lettered.
func (w *Worker) Process(ctx context.Context, job Job) error {
	log := w.log.With(
		zap.String("job_id", job.ID.String()),
		zap.String("salary_id", job.Record.ID.String()),
		zap.String("request_id", job.RequestID),
	)

	body, err := Render(job.Record)
	if err != nil {
		return w.deadLetter(ctx, log, job, err)
	}

	retryCfg := w.cfg.Retry
	retryCfg.Logger = log
	attempts, err := retry.Do(ctx, retryCfg, func(ctx context.Context) error {
		sendCtx, cancel := context.WithTimeout(ctx, w.cfg.SendTimeout)
		defer cancel()
		if err := w.provider.Send(sendCtx, []string{w.cfg.Recipient}, Subject, body); err != nil {
			if errors.Is(err, email.ErrNoRecipients) {
				return retry.Permanent(err)
			}
			return err
		}
		return nil
	})
	job.Attempts += attempts
	if err != nil {
		return w.deadLetter(ctx, log, job, err)
	}

	if attempts > 1 {
		w.metrics.IncJob(metrics.NotificationStatusRetried)
	}
	w.metrics.IncJob(metrics.NotificationStatusSent)
	w.metrics.ObserveDelivery(job.EnqueuedAt)
	log.Info("notification sent", zap.Int("attempts", job.Attempts))
	return nil
}

func (w *Worker) deadLetter(ctx context.Context, log *zap.Logger, job Job, cause error) error {
	job.LastError = cause.Error()
	w.metrics.IncError(cause)
	w.metrics.IncJob(metrics.NotificationStatusFailed)

	if err := w.queue.DeadLetter(context.WithoutCancel(ctx), job); err != nil {
		log.Error("dead letter failed, notification lost", zap.Error(err), zap.NamedError("cause", cause))
		return errors.Join(cause, err)
	}
	w.metrics.IncJob(metrics.NotificationStatusDeadLetter)
	log.Warn("notification dead-lettered", zap.Int("attempts", job.Attempts), zap.Error(cause))
	return cause
}
