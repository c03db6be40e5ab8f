package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	otelx "github.com/portside-hq/portside/internal/adapter/otel"
	"github.com/portside-hq/portside/internal/domain"
	"github.com/portside-hq/portside/internal/domain/listing"
	"github.com/portside-hq/portside/internal/domain/reservation"
	"github.com/portside-hq/portside/internal/logger"
	"github.com/portside-hq/portside/internal/port/database"
	"github.com/portside-hq/portside/internal/port/messagequeue"
)

// ReservationService orchestrates reservation admission, cancellation and
// operator queries. It never decides disclosure or overlap itself; both
// verdicts come from the store's transactional admission path.
type ReservationService struct {
	store   database.Store
	queue   messagequeue.Queue
	lookup  *PortalLookup
	metrics *otelx.Metrics
	log     *slog.Logger
}

// NewReservationService creates a reservation service.
func NewReservationService(store database.Store, queue messagequeue.Queue, lookup *PortalLookup, metrics *otelx.Metrics, log *slog.Logger) *ReservationService {
	return &ReservationService{store: store, queue: queue, lookup: lookup, metrics: metrics, log: log}
}

// Reserve admits a reservation attempt on a public portal. The attempt is
// accepted only if the (portal, asset) pair is disclosed and the window is
// free, both decided inside one serializable transaction. An unknown or
// retired portal yields the same not-disclosed verdict as a hidden asset.
func (s *ReservationService) Reserve(ctx context.Context, slug string, req reservation.AdmissionRequest) (*reservation.Reservation, error) {
	ctx, span := otelx.StartAdmissionSpan(ctx, slug, req.AssetID)
	defer span.End()

	p, err := s.lookup.BySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			err := &domain.NotDisclosedError{Cause: string(listing.CausePortalInactive)}
			s.recordDenial(ctx, "", slug, req.AssetID, err)
			return nil, err
		}
		return nil, fmt.Errorf("reserve: %w", err)
	}
	if !p.Active() {
		err := &domain.NotDisclosedError{Cause: string(listing.CausePortalInactive)}
		s.recordDenial(ctx, p.ID, slug, req.AssetID, err)
		return nil, err
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}
	req.PortalID = p.ID

	begin := time.Now()
	res, err := s.store.AdmitReservation(ctx, req)
	s.metrics.AdmissionDuration.Record(ctx, time.Since(begin).Seconds())

	switch {
	case err == nil:
		s.metrics.ReservationsCommitted.Add(ctx, 1)
		s.publish(ctx, messagequeue.SubjectReservationCommitted, messagequeue.ReservationCommittedPayload{
			ReservationID:    res.ID,
			PortalID:         res.PortalID,
			PortalSlug:       slug,
			AssetID:          res.AssetID,
			StartDate:        res.StartDate.Format(time.DateOnly),
			EndDate:          res.EndDate.Format(time.DateOnly),
			CustomerEmail:    res.CustomerEmail,
			ConfirmationCode: res.ConfirmationCode,
		})
		return res, nil
	case errors.Is(err, domain.ErrNotDisclosed):
		s.recordDenial(ctx, p.ID, slug, req.AssetID, err)
		return nil, err
	case errors.Is(err, domain.ErrConflict):
		s.metrics.ReservationConflicts.Add(ctx, 1)
		return nil, err
	default:
		return nil, fmt.Errorf("reserve: %w", err)
	}
}

// Cancel cancels a confirmed reservation for the operator's tenant.
func (s *ReservationService) Cancel(ctx context.Context, id string) error {
	res, err := s.store.GetReservation(ctx, id)
	if err != nil {
		return fmt.Errorf("cancel reservation: %w", err)
	}
	if err := s.store.CancelReservation(ctx, id); err != nil {
		return fmt.Errorf("cancel reservation: %w", err)
	}
	s.publish(ctx, messagequeue.SubjectReservationCancelled, messagequeue.ReservationCancelledPayload{
		ReservationID: res.ID,
		PortalID:      res.PortalID,
		AssetID:       res.AssetID,
	})
	return nil
}

// Get retrieves a reservation by ID.
func (s *ReservationService) Get(ctx context.Context, id string) (*reservation.Reservation, error) {
	return s.store.GetReservation(ctx, id)
}

// ListForPortal lists reservations on one of the operator's portals.
func (s *ReservationService) ListForPortal(ctx context.Context, portalID string) ([]reservation.Reservation, error) {
	if _, err := s.store.GetPortal(ctx, portalID); err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return s.store.ListReservationsForPortal(ctx, portalID)
}

// recordDenial counts a not-disclosed rejection and emits the cause on
// the operator audit channel. The cause never travels with the error that
// reaches the caller's response body.
func (s *ReservationService) recordDenial(ctx context.Context, portalID, slug, assetID string, err error) {
	s.metrics.ReservationsRejected.Add(ctx, 1)
	var nde *domain.NotDisclosedError
	if !errors.As(err, &nde) {
		return
	}
	s.publish(ctx, messagequeue.SubjectDisclosureAudit, messagequeue.DisclosureAuditPayload{
		PortalID:   portalID,
		PortalSlug: slug,
		AssetID:    assetID,
		Cause:      nde.Cause,
		RequestID:  logger.RequestID(ctx),
	})
}

// publish sends an event on the queue. Publish failures are logged and
// swallowed; the reservation outcome is already committed and must not be
// re-decided by the event feed.
func (s *ReservationService) publish(ctx context.Context, subject string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.log.Error("marshal event", "subject", subject, "error", err)
		return
	}
	if err := s.queue.Publish(ctx, subject, data); err != nil {
		s.log.Error("publish event", "subject", subject, "error", err)
	}
}
