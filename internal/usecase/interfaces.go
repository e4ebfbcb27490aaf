package usecase

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"recyclemart/internal/domain/entity"
)

// EventPublisher receives core events after the state change is persisted.
// Implementations must not block.
type EventPublisher interface {
	Publish(ctx context.Context, event entity.Event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, entity.Event) {}

// NopPublisher discards all events.
func NopPublisher() EventPublisher {
	return nopPublisher{}
}

// Clock returns the current time. Usecases take one so tests control time.
type Clock func() time.Time

func SystemClock() time.Time {
	return time.Now().UTC()
}

var tracer = otel.Tracer("recyclemart/usecase")

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// finishSpan records err on the span, if any, and ends it.
func finishSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
