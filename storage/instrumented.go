package storage

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentedState wraps a State with spans, operation counters and a
// latency histogram.
type InstrumentedState struct {
	next    State
	backend string
	tracer  trace.Tracer

	ops      metric.Int64Counter
	failures metric.Int64Counter
	bytes    metric.Int64Histogram
	latency  metric.Float64Histogram
}

// NewInstrumentedState decorates next. backend names the store in telemetry attributes.
func NewInstrumentedState(next State, backend string, tracer trace.Tracer, meter metric.Meter) *InstrumentedState {
	ops, _ := meter.Int64Counter("favorites_state_operations_total",
		metric.WithDescription("Total number of favorites state loads and saves"))
	failures, _ := meter.Int64Counter("favorites_state_failures_total",
		metric.WithDescription("Total number of favorites state operations that failed"))
	bytes, _ := meter.Int64Histogram("favorites_state_bytes",
		metric.WithDescription("Size of the favorites blob read or written"))
	latency, _ := meter.Float64Histogram("favorites_state_duration_seconds",
		metric.WithDescription("Duration of favorites state operations in seconds"))

	return &InstrumentedState{
		next:     next,
		backend:  backend,
		tracer:   tracer,
		ops:      ops,
		failures: failures,
		bytes:    bytes,
		latency:  latency,
	}
}

func (s *InstrumentedState) Load(ctx context.Context) ([]byte, error) {
	ctx, span := s.tracer.Start(ctx, "State.Load", trace.WithAttributes(attribute.String("state.backend", s.backend)))
	defer span.End()

	start := time.Now()
	data, err := s.next.Load(ctx)
	s.record(ctx, span, "load", start, len(data), err)
	return data, err
}

func (s *InstrumentedState) Save(ctx context.Context, data []byte) error {
	ctx, span := s.tracer.Start(ctx, "State.Save", trace.WithAttributes(attribute.String("state.backend", s.backend)))
	defer span.End()

	start := time.Now()
	err := s.next.Save(ctx, data)
	s.record(ctx, span, "save", start, len(data), err)
	return err
}

func (s *InstrumentedState) record(ctx context.Context, span trace.Span, op string, start time.Time, size int, err error) {
	attrs := metric.WithAttributes(
		attribute.String("state.backend", s.backend),
		attribute.String("state.op", op),
	)
	s.ops.Add(ctx, 1, attrs)
	s.latency.Record(ctx, time.Since(start).Seconds(), attrs)

	// A missing blob is the normal first-run state, not a failure.
	if err != nil && !errors.Is(err, ErrNotFound) {
		s.failures.Add(ctx, 1, attrs)
		span.SetStatus(codes.Error, op+" failed")
		span.RecordError(err)
		return
	}
	s.bytes.Record(ctx, int64(size), attrs)
	span.SetAttributes(attribute.Int("state.bytes", size))
}
