package metrics

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	NotificationStatusSent       = "sent"
	NotificationStatusRetried    = "retried"
	NotificationStatusFailed     = "failed"
	NotificationStatusDeadLetter = "dead_letter"
	NotificationStatusRequeued   = "requeued"
	NotificationStatusDropped    = "dropped"
)

const (
	NotificationReasonDeadlineExceeded = "deadline_exceeded"
	NotificationReasonNetwork          = "network"
	NotificationReasonRender           = "render"
	NotificationReasonUnknown          = "unknown"
)

// ErrRender marks template failures so they are classified separately from transport errors.
var ErrRender = errors.New("notification render failed")

// NotificationMetrics tracks the background email pipeline.
type NotificationMetrics struct {
	jobs       *prometheus.CounterVec
	errors     *prometheus.CounterVec
	delivery   prometheus.Observer
	queueDepth prometheus.Gauge
}

var (
	notificationMetricsOnce sync.Once
	notificationMetrics     *NotificationMetrics
)

// Notification returns the process-wide notification metrics registered on the default registry.
func Notification(cfg Config) *NotificationMetrics {
	notificationMetricsOnce.Do(func() {
		notificationMetrics = newNotificationMetrics(prometheus.DefaultRegisterer, cfg)
	})
	return notificationMetrics
}

// ResetNotificationMetricsForTest drops the singleton so tests can register fresh collectors.
func ResetNotificationMetricsForTest() {
	notificationMetricsOnce = sync.Once{}
	notificationMetrics = nil
}

func newNotificationMetrics(registerer prometheus.Registerer, cfg Config) *NotificationMetrics {
	constLabels := serviceLabels(cfg)

	jobs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "dentalpay_notifications_total",
		Help:        "Submission notification jobs by outcome.",
		ConstLabels: constLabels,
	}, []string{"status"})
	errs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "dentalpay_notification_errors_total",
		Help:        "Notification delivery errors by low-cardinality reason.",
		ConstLabels: constLabels,
	}, []string{"reason"})
	delivery := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:        "dentalpay_notification_delivery_seconds",
		Help:        "Time from enqueue to successful delivery.",
		Buckets:     []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 300, 900},
		ConstLabels: constLabels,
	})
	depth := prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        "dentalpay_notification_queue_depth",
		Help:        "Jobs waiting in the in-process notification queue.",
		ConstLabels: constLabels,
	})

	m := &NotificationMetrics{}
	m.jobs, _ = registerCollector(registerer, jobs)
	m.errors, _ = registerCollector(registerer, errs)
	if h, err := registerCollector(registerer, delivery); err == nil {
		m.delivery = h
	}
	m.queueDepth, _ = registerCollector(registerer, depth)
	return m
}

func (m *NotificationMetrics) IncJob(status string) {
	if m == nil || m.jobs == nil {
		return
	}
	m.jobs.WithLabelValues(status).Inc()
}

func (m *NotificationMetrics) IncError(err error) {
	if m == nil || m.errors == nil || err == nil {
		return
	}
	m.errors.WithLabelValues(ClassifyNotificationReason(err)).Inc()
}

func (m *NotificationMetrics) ObserveDelivery(since time.Time) {
	if m == nil || m.delivery == nil {
		return
	}
	m.delivery.Observe(time.Since(since).Seconds())
}

func (m *NotificationMetrics) SetQueueDepth(depth int) {
	if m == nil || m.queueDepth == nil {
		return
	}
	m.queueDepth.Set(float64(depth))
}

// ClassifyNotificationReason maps delivery errors to a bounded reason label.
func ClassifyNotificationReason(err error) string {
	if err == nil {
		return NotificationReasonUnknown
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return NotificationReasonDeadlineExceeded
	}
	if errors.Is(err, ErrRender) {
		return NotificationReasonRender
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return NotificationReasonNetwork
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return NotificationReasonNetwork
	}
	return NotificationReasonUnknown
}
