package observability

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

type Observability struct {
	meterProvider      *metric.MeterProvider
	meter              otelmetric.Meter
	evaluationCounter  otelmetric.Int64Counter
	evaluationDuration otelmetric.Float64Histogram
}

func New(serviceName string) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	evaluationCounter, _ := meter.Int64Counter(
		"evaluations.processed",
		otelmetric.WithDescription("Number of credit evaluations processed"),
	)

	evaluationDuration, _ := meter.Float64Histogram(
		"evaluations.duration",
		otelmetric.WithDescription("Credit evaluation duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider:      provider,
		meter:              meter,
		evaluationCounter:  evaluationCounter,
		evaluationDuration: evaluationDuration,
	}
}

func (o *Observability) RecordEvaluation(ctx context.Context, status string) {
	if o.evaluationCounter != nil {
		o.evaluationCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordEvaluationDuration(ctx context.Context, duration time.Duration, status string) {
	if o.evaluationDuration != nil {
		o.evaluationDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

func (o *Observability) Shutdown() {
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		o.meterProvider.Shutdown(ctx)
	}
}
