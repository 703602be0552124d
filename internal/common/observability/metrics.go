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

// Observability owns the OpenTelemetry meter and tracer providers.
type Observability struct {
	meterProvider  *metric.MeterProvider
	meter          otelmetric.Meter
	jobCounter     otelmetric.Int64Counter
	jobDuration    otelmetric.Float64Histogram
	reconcileCount otelmetric.Int64Counter
	reconcileTime  otelmetric.Float64Histogram
	fieldsMapped   otelmetric.Int64Histogram
	tracing        *Tracing
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

	jobCounter, _ := meter.Int64Counter(
		"jobs.processed",
		otelmetric.WithDescription("Number of jobs processed"),
	)
	jobDuration, _ := meter.Float64Histogram(
		"jobs.duration",
		otelmetric.WithDescription("Job processing duration"),
		otelmetric.WithUnit("ms"),
	)
	reconcileCount, _ := meter.Int64Counter(
		"prefill.reconciliations",
		otelmetric.WithDescription("Reconciliations by outcome"),
	)
	reconcileTime, _ := meter.Float64Histogram(
		"prefill.reconcile.duration",
		otelmetric.WithDescription("End to end reconciliation latency"),
		otelmetric.WithUnit("ms"),
	)
	fieldsMapped, _ := meter.Int64Histogram(
		"prefill.fields.mapped",
		otelmetric.WithDescription("Form fields produced per reconciliation"),
	)

	return &Observability{
		meterProvider:  provider,
		meter:          meter,
		jobCounter:     jobCounter,
		jobDuration:    jobDuration,
		reconcileCount: reconcileCount,
		reconcileTime:  reconcileTime,
		fieldsMapped:   fieldsMapped,
	}
}

func (o *Observability) RecordJobProcessed(ctx context.Context, status string) {
	if o == nil || o.jobCounter == nil {
		return
	}
	o.jobCounter.Add(ctx, 1, otelmetric.WithAttributes(
		attribute.String("status", status),
	))
}

func (o *Observability) RecordJobDuration(ctx context.Context, duration time.Duration, status string) {
	if o == nil || o.jobDuration == nil {
		return
	}
	o.jobDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
		attribute.String("status", status),
	))
}

// RecordReconcile satisfies the reconciler's recorder hook.
func (o *Observability) RecordReconcile(ctx context.Context, outcome string, duration time.Duration, fields int) {
	if o == nil || o.reconcileCount == nil {
		return
	}
	attrs := otelmetric.WithAttributes(attribute.String("outcome", outcome))
	o.reconcileCount.Add(ctx, 1, attrs)
	o.reconcileTime.Record(ctx, float64(duration.Milliseconds()), attrs)
	if fields > 0 {
		o.fieldsMapped.Record(ctx, int64(fields))
	}
}

// AttachTracing lets Shutdown flush spans as well.
func (o *Observability) AttachTracing(t *Tracing) {
	if o != nil {
		o.tracing = t
	}
}

func (o *Observability) Shutdown() {
	if o == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if o.meterProvider != nil {
		if err := o.meterProvider.Shutdown(ctx); err != nil {
			log.Printf("meter provider shutdown: %v", err)
		}
	}
	if o.tracing != nil {
		if err := o.tracing.Shutdown(ctx); err != nil {
			log.Printf("tracer provider shutdown: %v", err)
		}
	}
}
