package service

import (
	"context"
	"fmt"

	"github.com/portside-hq/portside/internal/domain"
	"github.com/portside-hq/portside/internal/domain/listing"
	"github.com/portside-hq/portside/internal/port/database"
)

// ListingService implements operator CRUD on listings, the explicit
// disclosure grants. Both the portal and the asset must belong to the
// operator's tenant; cross-tenant grants are rejected before they reach
// the store.
type ListingService struct {
	store database.Store
}

// NewListingService creates a listing service.
func NewListingService(store database.Store) *ListingService {
	return &ListingService{store: store}
}

// Create places an asset on a portal. At most one listing may exist per
// (portal, asset) pair; a second attempt fails as a duplicate.
func (s *ListingService) Create(ctx context.Context, portalID string, req listing.CreateRequest) (*listing.Listing, error) {
	if err := listing.ValidateCreateRequest(req); err != nil {
		return nil, err
	}
	// Tenant-scoped gets; either failing means the caller does not own
	// that end of the pair.
	if _, err := s.store.GetPortal(ctx, portalID); err != nil {
		return nil, fmt.Errorf("create listing: portal: %w", err)
	}
	if _, err := s.store.GetAsset(ctx, req.AssetID); err != nil {
		return nil, fmt.Errorf("create listing: asset: %w", err)
	}
	l, err := s.store.CreateListing(ctx, portalID, req)
	if err != nil {
		return nil, fmt.Errorf("create listing: %w", err)
	}
	return l, nil
}

// ListForPortal lists every listing on one of the tenant's portals,
// including paused and private ones. This is the operator view; the
// public view goes through the disclosure resolver instead.
func (s *ListingService) ListForPortal(ctx context.Context, portalID string) ([]listing.Listing, error) {
	if _, err := s.store.GetPortal(ctx, portalID); err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	return s.store.ListListingsForPortal(ctx, portalID)
}

// Get retrieves a listing after confirming the tenant owns its portal.
func (s *ListingService) Get(ctx context.Context, id string) (*listing.Listing, error) {
	l, err := s.store.GetListing(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.GetPortal(ctx, l.PortalID); err != nil {
		return nil, fmt.Errorf("get listing: %w", err)
	}
	return l, nil
}

// Update applies an update to a listing.
func (s *ListingService) Update(ctx context.Context, id string, req listing.UpdateRequest) (*listing.Listing, error) {
	l, err := s.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update listing: %w", err)
	}
	if req.Active != nil {
		l.Active = *req.Active
	}
	if req.Visibility != nil {
		if !listing.ValidVisibility(*req.Visibility) {
			return nil, fmt.Errorf("%w: invalid visibility %q", domain.ErrValidation, *req.Visibility)
		}
		l.Visibility = *req.Visibility
	}
	if req.DisplayOrder != nil {
		l.DisplayOrder = req.DisplayOrder
	}
	if req.ClearDisplayOrder {
		l.DisplayOrder = nil
	}
	if err := s.store.UpdateListing(ctx, l); err != nil {
		return nil, fmt.Errorf("update listing: %w", err)
	}
	return l, nil
}

// Delete revokes a disclosure grant. Existing confirmed reservations made
// through the listing survive its removal.
func (s *ListingService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	if err := s.store.DeleteListing(ctx, id); err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	return nil
}
