package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/smallbiznis/dentalpay/internal/clock"
	obsctx "github.com/smallbiznis/dentalpay/internal/observability/context"
	"github.com/smallbiznis/dentalpay/internal/observability/metrics"
	salarydomain "github.com/smallbiznis/dentalpay/internal/salary/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var ErrNoRecipient = errors.New("notification recipient not configured")

type DispatcherParams struct {
	fx.In

	Queue   Queue
	Clock   clock.Clock
	Config  Config
	Log     *zap.Logger
	Metrics *metrics.NotificationMetrics `optional:"true"`
}

// Dispatcher hands saved submissions to the queue. It never sends mail itself.
type Dispatcher struct {
	queue     Queue
	clock     clock.Clock
	recipient string
	log       *zap.Logger
	metrics   *metrics.NotificationMetrics
}

func NewDispatcher(p DispatcherParams) *Dispatcher {
	return &Dispatcher{
		queue:     p.Queue,
		clock:     p.Clock,
		recipient: p.Config.Recipient,
		log:       p.Log.Named("notification.dispatcher"),
		metrics:   p.Metrics,
	}
}

func (d *Dispatcher) Notify(ctx context.Context, record salarydomain.SalaryRecord) error {
	if d.recipient == "" {
		d.metrics.IncJob(metrics.NotificationStatusDropped)
		return ErrNoRecipient
	}

	job := NewJob(record, d.clock.Now(), obsctx.RequestIDFromContext(ctx))
	if err := d.queue.Enqueue(ctx, job); err != nil {
		d.metrics.IncJob(metrics.NotificationStatusDropped)
		return fmt.Errorf("enqueue notification: %w", err)
	}
	if dr, ok := d.queue.(depthReporter); ok {
		d.metrics.SetQueueDepth(dr.Depth())
	}
	d.log.Debug("notification enqueued",
		zap.String("job_id", job.ID.String()),
		zap.String("salary_id", record.ID.String()),
	)
	return nil
}
