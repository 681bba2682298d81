package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// RateLimitMetrics records admission decisions made by the rate limiter.
type RateLimitMetrics struct {
	decisionCounter metric.Int64Counter
}

// NewRateLimitMetrics creates rate limit decision instruments on the given
// meter provider. Returns nil if instrument creation fails, which callers
// treat as metrics disabled.
func NewRateLimitMetrics(meterProvider metric.MeterProvider, namespace string) *RateLimitMetrics {
	meter := meterProvider.Meter(namespace)

	decisionCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_rate_limit_decisions_total", namespace),
		metric.WithDescription("Total number of rate limit admission decisions"),
		metric.WithUnit("{decision}"),
	)
	if err != nil {
		return nil
	}

	return &RateLimitMetrics{decisionCounter: decisionCounter}
}

// RecordDecision records a single admit/reject decision. Safe to call on a
// nil receiver.
func (m *RateLimitMetrics) RecordDecision(ctx context.Context, allowed bool) {
	if m == nil {
		return
	}

	outcome := "admitted"
	if !allowed {
		outcome = "rejected"
	}

	m.decisionCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}
