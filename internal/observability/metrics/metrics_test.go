package metrics

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestFilterAttributesDropsForbiddenLabels(t *testing.T) {
	attrs := FilterAttributes(
		attribute.String("source", "salary"),
		attribute.String("email", "someone@example.com"),
		attribute.String("operation", "search"),
	)
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(attrs))
	}
	for _, attr := range attrs {
		if attr.Key == "email" {
			t.Fatalf("expected email to be dropped")
		}
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.RecordSubmission(context.Background(), "Private Practice")
	m.RecordLedgerUpsert(context.Background(), "salary")
	m.RecordAnalyticsQuery(context.Background(), "search", errors.New("boom"))
}

func TestNewWithNoopProvider(t *testing.T) {
	m, err := New(Config{}, noop.NewMeterProvider())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	m.RecordAnalyticsQuery(context.Background(), "search", nil)
}
