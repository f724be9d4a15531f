package notify

import (
	"context"
	"strings"

	"doneapp/internal/core/port"
	"doneapp/internal/core/telemetry"
)

// MetricsSink counts fired alerts by kind before handing them on.
type MetricsSink struct {
	next    port.AlertSink
	metrics *telemetry.AppMetrics
}

func NewMetricsSink(next port.AlertSink, metrics *telemetry.AppMetrics) *MetricsSink {
	return &MetricsSink{
		next:    next,
		metrics: metrics,
	}
}

func (s *MetricsSink) Deliver(ctx context.Context, req port.AlertRequest) {
	kind := "time"
	if strings.HasSuffix(req.ID, "-location") {
		kind = "location"
	}

	s.metrics.RecordAlertFired(ctx, kind)
	s.next.Deliver(ctx, req)
}
