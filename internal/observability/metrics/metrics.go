package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes survey-level instruments pushed over OTLP.
type Metrics struct {
	submissions     metric.Int64Counter
	ledgerUpserts   metric.Int64Counter
	analyticsCalls  metric.Int64Counter
	analyticsFailed metric.Int64Counter
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(15*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				log.Info("shutting down meter provider")
				return provider.Shutdown(ctx)
			},
		})
	}

	log.Info("metrics initialized",
		zap.String("endpoint", cfg.ExporterEndpoint),
		zap.String("protocol", cfg.ExporterProtocol),
	)
	return provider, nil
}

// New creates the survey instruments on the configured provider.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "dentalpay"
	}
	meter := provider.Meter(name)

	m := &Metrics{}
	var err error
	if m.submissions, err = meter.Int64Counter("dentalpay_salary_submissions_total"); err != nil {
		return nil, err
	}
	if m.ledgerUpserts, err = meter.Int64Counter("dentalpay_email_ledger_upserts_total"); err != nil {
		return nil, err
	}
	if m.analyticsCalls, err = meter.Int64Counter("dentalpay_analytics_queries_total"); err != nil {
		return nil, err
	}
	if m.analyticsFailed, err = meter.Int64Counter("dentalpay_analytics_query_errors_total"); err != nil {
		return nil, err
	}
	return m, nil
}

// RecordSubmission counts one persisted survey response.
func (m *Metrics) RecordSubmission(ctx context.Context, practiceSetting string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("practice_setting", strings.ToLower(strings.TrimSpace(practiceSetting))))
	m.submissions.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordLedgerUpsert counts ledger writes by source (salary, contact, feedback).
func (m *Metrics) RecordLedgerUpsert(ctx context.Context, source string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("source", strings.TrimSpace(source)))
	m.ledgerUpserts.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordAnalyticsQuery counts one analytics operation and its failure, if any.
func (m *Metrics) RecordAnalyticsQuery(ctx context.Context, operation string, err error) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("operation", strings.TrimSpace(operation)))
	m.analyticsCalls.Add(ctx, 1, metric.WithAttributes(attrs...))
	if err != nil {
		m.analyticsFailed.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	protocol = strings.ToLower(strings.TrimSpace(protocol))
	switch protocol {
	case "http", "http/protobuf":
		opts := []otlpmetrichttp.Option{otlpmetrichttp.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		}
		return otlpmetrichttp.New(context.Background(), opts...)
	case "grpc", "grpc/protobuf", "":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(context.Background(), opts...)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol %q", protocol)
	}
}

var allowedLabelKeys = map[attribute.Key]struct{}{
	"practice_setting": {},
	"source":           {},
	"operation":        {},
	"status":           {},
	"reason":           {},
}

// FilterAttributes strips labels outside the allow list to keep series bounded.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, ok := allowedLabelKeys[attr.Key]; !ok {
			continue
		}
		filtered = append(filtered, attr)
	}
	return filtered
}
