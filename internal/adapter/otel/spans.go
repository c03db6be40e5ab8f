package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "portside"

// StartAvailabilitySpan starts a span for a public availability read.
func StartAvailabilitySpan(ctx context.Context, portalSlug string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "availability",
		trace.WithAttributes(
			attribute.String("portal.slug", portalSlug),
		),
	)
}

// StartAdmissionSpan starts a span for a reservation admission attempt.
func StartAdmissionSpan(ctx context.Context, portalSlug, assetID string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "reservation.admission",
		trace.WithAttributes(
			attribute.String("portal.slug", portalSlug),
			attribute.String("asset.id", assetID),
		),
	)
}
