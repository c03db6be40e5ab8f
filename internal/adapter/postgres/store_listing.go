package postgres

import (
	"context"
	"fmt"

	"github.com/portside-hq/portside/internal/domain"
	"github.com/portside-hq/portside/internal/domain/listing"
)

const listingColumns = `id, portal_id, asset_id, active, visibility, display_order, created_at, updated_at`

func scanListing(row scannable) (listing.Listing, error) {
	var l listing.Listing
	err := row.Scan(&l.ID, &l.PortalID, &l.AssetID, &l.Active, &l.Visibility, &l.DisplayOrder, &l.CreatedAt, &l.UpdatedAt)
	return l, err
}

func (s *Store) CreateListing(ctx context.Context, portalID string, req listing.CreateRequest) (*listing.Listing, error) {
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	visibility := req.Visibility
	if visibility == "" {
		visibility = listing.VisibilityPublic
	}

	row := s.pool.QueryRow(ctx,
		`INSERT INTO listings (portal_id, asset_id, active, visibility, display_order)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+listingColumns,
		portalID, req.AssetID, active, visibility, req.DisplayOrder)

	l, err := scanListing(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("create listing: %w", domain.ErrDuplicateListing)
		}
		return nil, transientWrap(err, "create listing")
	}
	return &l, nil
}

func (s *Store) GetListing(ctx context.Context, id string) (*listing.Listing, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+listingColumns+` FROM listings WHERE id = $1`, id)

	l, err := scanListing(row)
	if err != nil {
		return nil, notFoundWrap(err, "get listing %s", id)
	}
	return &l, nil
}

// GetListingByPair fetches the disclosure fact for one (portal, asset)
// pair. Absence is reported as domain.ErrNotFound, never invented.
func (s *Store) GetListingByPair(ctx context.Context, portalID, assetID string) (*listing.Listing, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+listingColumns+` FROM listings WHERE portal_id = $1 AND asset_id = $2`,
		portalID, assetID)

	l, err := scanListing(row)
	if err != nil {
		return nil, notFoundWrap(err, "get listing for portal %s asset %s", portalID, assetID)
	}
	return &l, nil
}

// ListListingsForPortal returns every listing on a portal, ordered by
// display_order ascending with nulls last, ties broken by creation time.
// The caller filters for disclosure; an empty portal is an empty result,
// not an error.
func (s *Store) ListListingsForPortal(ctx context.Context, portalID string) ([]listing.Listing, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+listingColumns+` FROM listings
		 WHERE portal_id = $1
		 ORDER BY display_order ASC NULLS LAST, created_at ASC`,
		portalID)
	if err != nil {
		return nil, transientWrap(err, "list listings for portal %s", portalID)
	}
	defer rows.Close()

	var listings []listing.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

func (s *Store) UpdateListing(ctx context.Context, l *listing.Listing) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE listings SET active = $2, visibility = $3, display_order = $4, updated_at = now()
		 WHERE id = $1`,
		l.ID, l.Active, l.Visibility, l.DisplayOrder)
	return execExpectOne(tag, err, "update listing %s", l.ID)
}

func (s *Store) DeleteListing(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM listings WHERE id = $1`, id)
	return execExpectOne(tag, err, "delete listing %s", id)
}
