package notification

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/smallbiznis/dentalpay/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type SweeperParams struct {
	fx.In

	Queue   Queue
	Config  Config
	Log     *zap.Logger
	Metrics *metrics.NotificationMetrics `optional:"true"`
}

// Sweeper periodically moves dead-lettered jobs back onto the queue until
// they exhaust MaxRedelivery.
type Sweeper struct {
	queue   Queue
	cfg     Config
	log     *zap.Logger
	metrics *metrics.NotificationMetrics
	cron    *cron.Cron
}

func NewSweeper(p SweeperParams) *Sweeper {
	return &Sweeper{
		queue:   p.Queue,
		cfg:     p.Config,
		log:     p.Log.Named("notification.sweeper"),
		metrics: p.Metrics,
		cron:    cron.New(),
	}
}

func (s *Sweeper) Start() error {
	_, err := s.cron.AddFunc(s.cfg.SweepSpec, func() {
		if _, _, err := s.Sweep(context.Background()); err != nil {
			s.log.Warn("dead letter sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	s.cron.Start()
	s.log.Info("dead letter sweeper started", zap.String("spec", s.cfg.SweepSpec))
	return nil
}

// Stop waits for a running sweep to finish or ctx to expire.
func (s *Sweeper) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Sweep drains the dead-letter list once. Jobs under the redelivery cap are
// requeued with a fresh attempt budget; the rest are dropped.
func (s *Sweeper) Sweep(ctx context.Context) (requeued, dropped int, err error) {
	jobs, err := s.queue.DeadLetters(ctx, sweepBatchSize)
	if err != nil {
		return 0, 0, err
	}

	for i, job := range jobs {
		log := s.log.With(zap.String("job_id", job.ID.String()), zap.Int("deliveries", job.Deliveries))
		if job.Deliveries >= s.cfg.MaxRedelivery {
			dropped++
			s.metrics.IncJob(metrics.NotificationStatusDropped)
			log.Error("notification dropped after redelivery cap",
				zap.String("salary_id", job.Record.ID.String()),
				zap.String("last_error", job.LastError),
			)
			continue
		}

		job.Deliveries++
		job.Attempts = 0
		if err := s.queue.Requeue(ctx, job); err != nil {
			// Put this and every unprocessed job back for the next sweep.
			for _, rest := range jobs[i:] {
				_ = s.queue.DeadLetter(ctx, rest)
			}
			return requeued, dropped, fmt.Errorf("requeue: %w", err)
		}
		requeued++
		s.metrics.IncJob(metrics.NotificationStatusRequeued)
		log.Info("notification requeued")
	}
	return requeued, dropped, nil
}
