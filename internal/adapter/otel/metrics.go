package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "portside"

// Metrics holds all Portside metric instruments.
type Metrics struct {
	AvailabilityQueries   metric.Int64Counter
	ReservationsCommitted metric.Int64Counter
	ReservationsRejected  metric.Int64Counter
	ReservationConflicts  metric.Int64Counter
	AdmissionDuration     metric.Float64Histogram
}

// NewMetrics creates all metric instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.AvailabilityQueries, err = meter.Int64Counter("portside.availability.queries",
		metric.WithDescription("Number of public availability queries"))
	if err != nil {
		return nil, err
	}

	m.ReservationsCommitted, err = meter.Int64Counter("portside.reservations.committed",
		metric.WithDescription("Number of reservations committed"))
	if err != nil {
		return nil, err
	}

	m.ReservationsRejected, err = meter.Int64Counter("portside.reservations.rejected",
		metric.WithDescription("Number of reservation attempts rejected as not disclosed"))
	if err != nil {
		return nil, err
	}

	m.ReservationConflicts, err = meter.Int64Counter("portside.reservations.conflicts",
		metric.WithDescription("Number of reservation attempts rejected on window conflict"))
	if err != nil {
		return nil, err
	}

	m.AdmissionDuration, err = meter.Float64Histogram("portside.admission.duration_seconds",
		metric.WithDescription("Reservation admission duration in seconds"))
	if err != nil {
		return nil, err
	}

	return m, nil
}
