package service

import (
	"context"
	"fmt"

	"github.com/portside-hq/portside/internal/domain"
	"github.com/portside-hq/portside/internal/domain/portal"
	"github.com/portside-hq/portside/internal/port/database"
)

// PortalService implements operator CRUD on portals and keeps the public
// slug cache coherent across mutations.
type PortalService struct {
	store  database.Store
	lookup *PortalLookup
}

// NewPortalService creates a portal service.
func NewPortalService(store database.Store, lookup *PortalLookup) *PortalService {
	return &PortalService{store: store, lookup: lookup}
}

// Create creates a portal for the tenant in the context.
func (s *PortalService) Create(ctx context.Context, req portal.CreateRequest) (*portal.Portal, error) {
	if err := portal.ValidateCreateRequest(req); err != nil {
		return nil, err
	}
	p, err := s.store.CreatePortal(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create portal: %w", err)
	}
	return p, nil
}

// Get retrieves a portal owned by the tenant in the context.
func (s *PortalService) Get(ctx context.Context, id string) (*portal.Portal, error) {
	return s.store.GetPortal(ctx, id)
}

// List lists the tenant's portals.
func (s *PortalService) List(ctx context.Context) ([]portal.Portal, error) {
	return s.store.ListPortals(ctx)
}

// Update applies an update to a portal and evicts its slug from the
// public cache so the change is visible within one round trip.
func (s *PortalService) Update(ctx context.Context, id string, req portal.UpdateRequest) (*portal.Portal, error) {
	p, err := s.store.GetPortal(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update portal: %w", err)
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Status != nil {
		if !portal.ValidStatus(*req.Status) {
			return nil, fmt.Errorf("%w: invalid portal status %q", domain.ErrValidation, *req.Status)
		}
		p.Status = *req.Status
	}
	if err := s.store.UpdatePortal(ctx, p); err != nil {
		return nil, fmt.Errorf("update portal: %w", err)
	}
	s.lookup.Invalidate(ctx, p.Slug)
	return p, nil
}

// Delete removes a portal. Its listings go with it; assets and committed
// reservations are untouched.
func (s *PortalService) Delete(ctx context.Context, id string) error {
	p, err := s.store.GetPortal(ctx, id)
	if err != nil {
		return fmt.Errorf("delete portal: %w", err)
	}
	if err := s.store.DeletePortal(ctx, id); err != nil {
		return fmt.Errorf("delete portal: %w", err)
	}
	s.lookup.Invalidate(ctx, p.Slug)
	return nil
}
