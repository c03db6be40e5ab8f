package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/portside-hq/portside/internal/domain"
	"github.com/portside-hq/portside/internal/domain/asset"
	"github.com/portside-hq/portside/internal/domain/listing"
	"github.com/portside-hq/portside/internal/domain/portal"
	"github.com/portside-hq/portside/internal/domain/reservation"
)

const reservationColumns = `id, portal_id, asset_id, start_date, end_date,
	customer_name, customer_email, customer_phone, confirmation_code, status, created_at`

func scanReservation(row scannable) (reservation.Reservation, error) {
	var r reservation.Reservation
	err := row.Scan(&r.ID, &r.PortalID, &r.AssetID, &r.StartDate, &r.EndDate,
		&r.CustomerName, &r.CustomerEmail, &r.CustomerPhone, &r.ConfirmationCode, &r.Status, &r.CreatedAt)
	return r, err
}

// AdmitReservation runs the full admission sequence in one serializable
// transaction: re-check disclosure, check for an overlapping reservation,
// insert. The disclosure re-check never trusts an earlier availability
// read; a listing paused or an asset retired between read and write is
// caught here. A racing deactivation deterministically lands on one side
// of the snapshot: either the insert commits first or the request is
// rejected not_disclosed.
func (s *Store) AdmitReservation(ctx context.Context, req reservation.AdmissionRequest) (*reservation.Reservation, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return nil, transientWrap(err, "begin admission tx")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := s.checkDisclosureTx(ctx, tx, req.PortalID, req.AssetID); err != nil {
		return nil, err
	}

	// Conflict check against the same snapshot as the disclosure check.
	// The exclusion constraint on reservations is the backstop for the
	// race this query cannot see under weaker isolation.
	var overlapping bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM reservations
			WHERE asset_id = $1 AND status = 'confirmed'
			  AND daterange(start_date, end_date, '[)') && daterange($2::date, $3::date, '[)')
		)`,
		req.AssetID, req.StartDate, req.EndDate).Scan(&overlapping)
	if err != nil {
		return nil, transientWrap(err, "check reservation overlap")
	}
	if overlapping {
		return nil, fmt.Errorf("admit reservation: %w", domain.ErrConflict)
	}

	row := tx.QueryRow(ctx,
		`INSERT INTO reservations
			(id, portal_id, asset_id, start_date, end_date,
			 customer_name, customer_email, customer_phone, confirmation_code, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'confirmed')
		 RETURNING `+reservationColumns,
		uuid.NewString(), req.PortalID, req.AssetID, req.StartDate, req.EndDate,
		req.Customer.Name, req.Customer.Email, req.Customer.Phone, newConfirmationCode())

	r, err := scanReservation(row)
	if err != nil {
		if isWindowConflict(err) {
			return nil, fmt.Errorf("admit reservation: %w", domain.ErrConflict)
		}
		return nil, transientWrap(err, "insert reservation")
	}

	if err := tx.Commit(ctx); err != nil {
		if isWindowConflict(err) {
			return nil, fmt.Errorf("admit reservation: %w", domain.ErrConflict)
		}
		return nil, transientWrap(err, "commit reservation")
	}
	return &r, nil
}

// checkDisclosureTx evaluates the shared disclosure predicate against the
// transaction's snapshot. Row locks on the listing and asset keep a
// concurrent operator mutation from slipping between this check and the
// insert. Every failure mode collapses into NotDisclosedError; only its
// internal cause differs.
func (s *Store) checkDisclosureTx(ctx context.Context, tx pgx.Tx, portalID, assetID string) error {
	var p portal.Portal
	err := tx.QueryRow(ctx,
		`SELECT `+portalColumns+` FROM portals WHERE id = $1 FOR SHARE`, portalID,
	).Scan(&p.ID, &p.TenantID, &p.Slug, &p.Name, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.NotDisclosedError{Cause: string(listing.CausePortalInactive)}
		}
		return transientWrap(err, "lock portal %s", portalID)
	}
	if !p.Active() {
		return &domain.NotDisclosedError{Cause: string(listing.CausePortalInactive)}
	}

	var l *listing.Listing
	row := tx.QueryRow(ctx,
		`SELECT `+listingColumns+` FROM listings
		 WHERE portal_id = $1 AND asset_id = $2 FOR SHARE`, portalID, assetID)
	scanned, err := scanListing(row)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		// leave l nil; the predicate reports the cause
	case err != nil:
		return transientWrap(err, "lock listing")
	default:
		l = &scanned
	}

	var a *asset.Asset
	if l != nil {
		row := tx.QueryRow(ctx,
			`SELECT `+assetColumns+` FROM assets WHERE id = $1 FOR SHARE`, assetID)
		scanned, err := scanAsset(row)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			// dangling listing; predicate reports asset_inactive
		case err != nil:
			return transientWrap(err, "lock asset %s", assetID)
		default:
			a = &scanned
		}
	}

	if cause := listing.Verdict(l, a); cause != listing.CauseNone {
		return &domain.NotDisclosedError{Cause: string(cause)}
	}
	return nil
}

// GetReservation is the operator view of one reservation, tenant-scoped
// through the portal's owner. A reservation on another tenant's portal is
// indistinguishable from one that does not exist.
func (s *Store) GetReservation(ctx context.Context, id string) (*reservation.Reservation, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT r.id, r.portal_id, r.asset_id, r.start_date, r.end_date,
			r.customer_name, r.customer_email, r.customer_phone, r.confirmation_code, r.status, r.created_at
		 FROM reservations r
		 JOIN portals p ON p.id = r.portal_id
		 WHERE r.id = $1 AND p.tenant_id = $2`,
		id, tenantFromCtx(ctx))

	r, err := scanReservation(row)
	if err != nil {
		return nil, notFoundWrap(err, "get reservation %s", id)
	}
	return &r, nil
}

// ListReservationsForPortal is the operator view, tenant-scoped through
// the portal's owner.
func (s *Store) ListReservationsForPortal(ctx context.Context, portalID string) ([]reservation.Reservation, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT r.id, r.portal_id, r.asset_id, r.start_date, r.end_date,
			r.customer_name, r.customer_email, r.customer_phone, r.confirmation_code, r.status, r.created_at
		 FROM reservations r
		 JOIN portals p ON p.id = r.portal_id
		 WHERE r.portal_id = $1 AND p.tenant_id = $2
		 ORDER BY r.start_date ASC, r.created_at ASC`,
		portalID, tenantFromCtx(ctx))
	if err != nil {
		return nil, transientWrap(err, "list reservations for portal %s", portalID)
	}
	defer rows.Close()

	var reservations []reservation.Reservation
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		reservations = append(reservations, r)
	}
	return reservations, rows.Err()
}

// ListActiveReservations returns confirmed reservations for the given
// assets that overlap the half-open window [start, end). Feeds the
// availability projector.
func (s *Store) ListActiveReservations(ctx context.Context, assetIDs []string, start, end time.Time) ([]reservation.Reservation, error) {
	if len(assetIDs) == 0 {
		return []reservation.Reservation{}, nil
	}

	rows, err := s.pool.Query(ctx,
		`SELECT `+reservationColumns+` FROM reservations
		 WHERE asset_id = ANY($1) AND status = 'confirmed'
		   AND daterange(start_date, end_date, '[)') && daterange($2::date, $3::date, '[)')`,
		assetIDs, start, end)
	if err != nil {
		return nil, transientWrap(err, "list active reservations")
	}
	defer rows.Close()

	var reservations []reservation.Reservation
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		reservations = append(reservations, r)
	}
	return orEmpty(reservations), rows.Err()
}

// CancelReservation flips a confirmed reservation to cancelled,
// tenant-scoped through the portal's owner. Cancelled rows stop counting
// against overlap checks and availability.
func (s *Store) CancelReservation(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE reservations r SET status = 'cancelled'
		 FROM portals p
		 WHERE r.id = $1 AND r.portal_id = p.id AND p.tenant_id = $2
		   AND r.status = 'confirmed'`,
		id, tenantFromCtx(ctx))
	return execExpectOne(tag, err, "cancel reservation %s", id)
}

// newConfirmationCode derives a short customer-facing code. Uniqueness is
// enforced by the store; collisions on 8 hex chars are rare enough that a
// failed insert surfaces as a retryable conflict.
func newConfirmationCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
