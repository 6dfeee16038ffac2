package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// BusinessMetrics records business operation metrics for the qr and attendance domains.
type BusinessMetrics interface {
	// RecordOperation records a business operation with its status.
	// Domain examples: "qr", "attendance"
	// Operation examples: "token_issue", "token_verify", "gate_authorize"
	// Status examples: "success", "error"
	RecordOperation(ctx context.Context, domain, operation, status string)

	// RecordDuration records the duration of a business operation in seconds.
	RecordDuration(ctx context.Context, domain, operation string, duration time.Duration, status string)

	// RecordRejection counts a refused scan by reason (expired, bad_signature, low_confidence...).
	RecordRejection(ctx context.Context, domain, reason string)

	// AddActiveSessions moves the active scan session gauge by delta.
	AddActiveSessions(ctx context.Context, delta int64)
}

type businessMetrics struct {
	operationCounter metric.Int64Counter
	durationHisto    metric.Float64Histogram
	rejectionCounter metric.Int64Counter
	activeSessions   metric.Int64UpDownCounter
}

// NewBusinessMetrics creates a BusinessMetrics backed by the given meter provider.
// The namespace prefixes every metric name (e.g., "attendance").
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	meter := meterProvider.Meter(namespace)

	operationCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_operations_total", namespace),
		metric.WithDescription("Total number of business operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation counter: %w", err)
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_operation_duration_seconds", namespace),
		metric.WithDescription("Duration of business operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	rejectionCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_scan_rejections_total", namespace),
		metric.WithDescription("Total number of refused QR scans by reason"),
		metric.WithUnit("{rejection}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create rejection counter: %w", err)
	}

	activeSessions, err := meter.Int64UpDownCounter(
		fmt.Sprintf("%s_active_scan_sessions", namespace),
		metric.WithDescription("Number of scan sessions awaiting authorization"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create active sessions gauge: %w", err)
	}

	return &businessMetrics{
		operationCounter: operationCounter,
		durationHisto:    durationHisto,
		rejectionCounter: rejectionCounter,
		activeSessions:   activeSessions,
	}, nil
}

func (b *businessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	b.operationCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("domain", domain),
			attribute.String("operation", operation),
			attribute.String("status", status),
		),
	)
}

func (b *businessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	b.durationHisto.Record(ctx, duration.Seconds(),
		metric.WithAttributes(
			attribute.String("domain", domain),
			attribute.String("operation", operation),
			attribute.String("status", status),
		),
	)
}

func (b *businessMetrics) RecordRejection(ctx context.Context, domain, reason string) {
	b.rejectionCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("domain", domain),
			attribute.String("reason", reason),
		),
	)
}

func (b *businessMetrics) AddActiveSessions(ctx context.Context, delta int64) {
	b.activeSessions.Add(ctx, delta)
}

// NoOpBusinessMetrics is used when metrics are disabled.
type NoOpBusinessMetrics struct{}

// NewNoOpBusinessMetrics creates a no-op BusinessMetrics implementation.
func NewNoOpBusinessMetrics() BusinessMetrics {
	return &NoOpBusinessMetrics{}
}

func (n *NoOpBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {}

func (n *NoOpBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
}

func (n *NoOpBusinessMetrics) RecordRejection(ctx context.Context, domain, reason string) {}

func (n *NoOpBusinessMetrics) AddActiveSessions(ctx context.Context, delta int64) {}
