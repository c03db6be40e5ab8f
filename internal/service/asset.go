package service

import (
	"context"
	"fmt"

	"github.com/portside-hq/portside/internal/domain"
	"github.com/portside-hq/portside/internal/domain/asset"
	"github.com/portside-hq/portside/internal/port/database"
)

// AssetService implements operator CRUD on the asset registry. Registry
// changes affect disclosure everywhere at once: suspending an asset pulls
// it from every portal without touching a single listing.
type AssetService struct {
	store database.Store
}

// NewAssetService creates an asset service.
func NewAssetService(store database.Store) *AssetService {
	return &AssetService{store: store}
}

// Create registers an asset for the tenant in the context. A new asset is
// disclosed nowhere until a listing explicitly places it on a portal.
func (s *AssetService) Create(ctx context.Context, req asset.CreateRequest) (*asset.Asset, error) {
	if err := asset.ValidateCreateRequest(req); err != nil {
		return nil, err
	}
	a, err := s.store.CreateAsset(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create asset: %w", err)
	}
	return a, nil
}

// Get retrieves an asset owned by the tenant in the context.
func (s *AssetService) Get(ctx context.Context, id string) (*asset.Asset, error) {
	return s.store.GetAsset(ctx, id)
}

// List lists the tenant's assets.
func (s *AssetService) List(ctx context.Context) ([]asset.Asset, error) {
	return s.store.ListAssets(ctx)
}

// Update applies an update to an asset.
func (s *AssetService) Update(ctx context.Context, id string, req asset.UpdateRequest) (*asset.Asset, error) {
	a, err := s.store.GetAsset(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update asset: %w", err)
	}
	if req.Name != nil {
		a.Name = *req.Name
	}
	if req.AssetType != nil {
		a.AssetType = *req.AssetType
	}
	if req.Status != nil {
		if !asset.ValidStatus(*req.Status) {
			return nil, fmt.Errorf("%w: invalid asset status %q", domain.ErrValidation, *req.Status)
		}
		a.Status = *req.Status
	}
	if req.TotalUnits != nil {
		if *req.TotalUnits < 1 {
			return nil, fmt.Errorf("%w: total_units must be >= 1", domain.ErrValidation)
		}
		a.TotalUnits = *req.TotalUnits
	}
	if err := s.store.UpdateAsset(ctx, a); err != nil {
		return nil, fmt.Errorf("update asset: %w", err)
	}
	return a, nil
}

// Delete removes an asset and, through the schema, every listing that
// disclosed it.
func (s *AssetService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteAsset(ctx, id); err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	return nil
}
