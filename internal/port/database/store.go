// Package database defines the database store port (interface).
package database

import (
	"context"
	"time"

	"github.com/portside-hq/portside/internal/domain/asset"
	"github.com/portside-hq/portside/internal/domain/listing"
	"github.com/portside-hq/portside/internal/domain/portal"
	"github.com/portside-hq/portside/internal/domain/reservation"
	"github.com/portside-hq/portside/internal/domain/tenant"
)

// Store is the port interface for database operations. Tenant-scoped
// methods read the tenant ID from the request context.
type Store interface {
	// Tenants
	CreateTenant(ctx context.Context, req tenant.CreateRequest) (*tenant.Tenant, error)
	GetTenant(ctx context.Context, id string) (*tenant.Tenant, error)
	ListTenants(ctx context.Context) ([]tenant.Tenant, error)
	UpdateTenant(ctx context.Context, t *tenant.Tenant) error

	// Portals
	CreatePortal(ctx context.Context, req portal.CreateRequest) (*portal.Portal, error)
	GetPortal(ctx context.Context, id string) (*portal.Portal, error)
	GetPortalBySlug(ctx context.Context, slug string) (*portal.Portal, error)
	ListPortals(ctx context.Context) ([]portal.Portal, error)
	UpdatePortal(ctx context.Context, p *portal.Portal) error
	DeletePortal(ctx context.Context, id string) error

	// Assets
	CreateAsset(ctx context.Context, req asset.CreateRequest) (*asset.Asset, error)
	GetAsset(ctx context.Context, id string) (*asset.Asset, error)
	GetAssetsByIDs(ctx context.Context, ids []string) (map[string]asset.Asset, error)
	ListAssets(ctx context.Context) ([]asset.Asset, error)
	UpdateAsset(ctx context.Context, a *asset.Asset) error
	DeleteAsset(ctx context.Context, id string) error

	// Listings (the disclosure relation)
	CreateListing(ctx context.Context, portalID string, req listing.CreateRequest) (*listing.Listing, error)
	GetListing(ctx context.Context, id string) (*listing.Listing, error)
	GetListingByPair(ctx context.Context, portalID, assetID string) (*listing.Listing, error)
	ListListingsForPortal(ctx context.Context, portalID string) ([]listing.Listing, error)
	UpdateListing(ctx context.Context, l *listing.Listing) error
	DeleteListing(ctx context.Context, id string) error

	// Reservations
	AdmitReservation(ctx context.Context, req reservation.AdmissionRequest) (*reservation.Reservation, error)
	GetReservation(ctx context.Context, id string) (*reservation.Reservation, error)
	ListReservationsForPortal(ctx context.Context, portalID string) ([]reservation.Reservation, error)
	ListActiveReservations(ctx context.Context, assetIDs []string, start, end time.Time) ([]reservation.Reservation, error)
	CancelReservation(ctx context.Context, id string) error
}
