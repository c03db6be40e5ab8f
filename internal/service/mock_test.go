package service

import (
	"context"
	"sync"
	"time"

	"github.com/portside-hq/portside/internal/domain"
	"github.com/portside-hq/portside/internal/domain/asset"
	"github.com/portside-hq/portside/internal/domain/listing"
	"github.com/portside-hq/portside/internal/domain/portal"
	"github.com/portside-hq/portside/internal/domain/reservation"
	"github.com/portside-hq/portside/internal/domain/tenant"
	"github.com/portside-hq/portside/internal/middleware"
	"github.com/portside-hq/portside/internal/port/cache"
	"github.com/portside-hq/portside/internal/port/database"
	"github.com/portside-hq/portside/internal/port/messagequeue"
)

// Ensure the mocks implement their ports at compile time.
var (
	_ database.Store     = (*mockStore)(nil)
	_ messagequeue.Queue = (*mockQueue)(nil)
	_ cache.Cache        = (*mockCache)(nil)
)

// mockStore is a minimal in-memory implementation of database.Store for
// testing. Admission behavior is driven by admitResult/admitErr rather
// than re-implementing the transactional check.
type mockStore struct {
	tenants      []tenant.Tenant
	portals      []portal.Portal
	assets       []asset.Asset
	listings     []listing.Listing
	reservations []reservation.Reservation

	admitResult *reservation.Reservation
	admitCalls  int

	// Error hooks — set these to inject failures.
	admitErr          error
	getPortalErr      error
	getPortalSlugErr  error
	listListingsErr   error
	getAssetsErr      error
	listActiveErr     error
	createListingErr  error
	cancelErr         error
	getReservationErr error
}

func (m *mockStore) CreateTenant(_ context.Context, req tenant.CreateRequest) (*tenant.Tenant, error) {
	t := tenant.Tenant{ID: "tenant-1", Name: req.Name, Slug: req.Slug, Enabled: true}
	m.tenants = append(m.tenants, t)
	return &t, nil
}

func (m *mockStore) GetTenant(_ context.Context, id string) (*tenant.Tenant, error) {
	for i := range m.tenants {
		if m.tenants[i].ID == id {
			return &m.tenants[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) ListTenants(_ context.Context) ([]tenant.Tenant, error) {
	return m.tenants, nil
}

func (m *mockStore) UpdateTenant(_ context.Context, t *tenant.Tenant) error {
	for i := range m.tenants {
		if m.tenants[i].ID == t.ID {
			m.tenants[i] = *t
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockStore) CreatePortal(_ context.Context, req portal.CreateRequest) (*portal.Portal, error) {
	p := portal.Portal{ID: "portal-1", Slug: req.Slug, Name: req.Name, Status: portal.StatusActive}
	m.portals = append(m.portals, p)
	return &p, nil
}

func (m *mockStore) GetPortal(_ context.Context, id string) (*portal.Portal, error) {
	if m.getPortalErr != nil {
		return nil, m.getPortalErr
	}
	for i := range m.portals {
		if m.portals[i].ID == id {
			return &m.portals[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) GetPortalBySlug(_ context.Context, slug string) (*portal.Portal, error) {
	if m.getPortalSlugErr != nil {
		return nil, m.getPortalSlugErr
	}
	for i := range m.portals {
		if m.portals[i].Slug == slug {
			return &m.portals[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) ListPortals(_ context.Context) ([]portal.Portal, error) {
	return m.portals, nil
}

func (m *mockStore) UpdatePortal(_ context.Context, p *portal.Portal) error {
	for i := range m.portals {
		if m.portals[i].ID == p.ID {
			m.portals[i] = *p
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockStore) DeletePortal(_ context.Context, id string) error {
	for i := range m.portals {
		if m.portals[i].ID == id {
			m.portals = append(m.portals[:i], m.portals[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockStore) CreateAsset(_ context.Context, req asset.CreateRequest) (*asset.Asset, error) {
	a := asset.Asset{ID: "asset-1", Name: req.Name, AssetType: req.AssetType, TotalUnits: req.TotalUnits, Status: asset.StatusActive}
	m.assets = append(m.assets, a)
	return &a, nil
}

func (m *mockStore) GetAsset(_ context.Context, id string) (*asset.Asset, error) {
	for i := range m.assets {
		if m.assets[i].ID == id {
			return &m.assets[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) GetAssetsByIDs(_ context.Context, ids []string) (map[string]asset.Asset, error) {
	if m.getAssetsErr != nil {
		return nil, m.getAssetsErr
	}
	out := make(map[string]asset.Asset)
	for _, id := range ids {
		for i := range m.assets {
			if m.assets[i].ID == id {
				out[id] = m.assets[i]
			}
		}
	}
	return out, nil
}

func (m *mockStore) ListAssets(_ context.Context) ([]asset.Asset, error) {
	return m.assets, nil
}

func (m *mockStore) UpdateAsset(_ context.Context, a *asset.Asset) error {
	for i := range m.assets {
		if m.assets[i].ID == a.ID {
			m.assets[i] = *a
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockStore) DeleteAsset(_ context.Context, id string) error {
	for i := range m.assets {
		if m.assets[i].ID == id {
			m.assets = append(m.assets[:i], m.assets[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockStore) CreateListing(_ context.Context, portalID string, req listing.CreateRequest) (*listing.Listing, error) {
	if m.createListingErr != nil {
		return nil, m.createListingErr
	}
	for i := range m.listings {
		if m.listings[i].PortalID == portalID && m.listings[i].AssetID == req.AssetID {
			return nil, domain.ErrDuplicateListing
		}
	}
	l := listing.Listing{
		ID:         "listing-1",
		PortalID:   portalID,
		AssetID:    req.AssetID,
		Active:     true,
		Visibility: listing.VisibilityPublic,
	}
	if req.Active != nil {
		l.Active = *req.Active
	}
	if req.Visibility != "" {
		l.Visibility = req.Visibility
	}
	l.DisplayOrder = req.DisplayOrder
	m.listings = append(m.listings, l)
	return &l, nil
}

func (m *mockStore) GetListing(_ context.Context, id string) (*listing.Listing, error) {
	for i := range m.listings {
		if m.listings[i].ID == id {
			return &m.listings[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) GetListingByPair(_ context.Context, portalID, assetID string) (*listing.Listing, error) {
	for i := range m.listings {
		if m.listings[i].PortalID == portalID && m.listings[i].AssetID == assetID {
			return &m.listings[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) ListListingsForPortal(_ context.Context, portalID string) ([]listing.Listing, error) {
	if m.listListingsErr != nil {
		return nil, m.listListingsErr
	}
	var out []listing.Listing
	for _, l := range m.listings {
		if l.PortalID == portalID {
			out = append(out, l)
		}
	}
	listing.Sort(out)
	return out, nil
}

func (m *mockStore) UpdateListing(_ context.Context, l *listing.Listing) error {
	for i := range m.listings {
		if m.listings[i].ID == l.ID {
			m.listings[i] = *l
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockStore) DeleteListing(_ context.Context, id string) error {
	for i := range m.listings {
		if m.listings[i].ID == id {
			m.listings = append(m.listings[:i], m.listings[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockStore) AdmitReservation(_ context.Context, req reservation.AdmissionRequest) (*reservation.Reservation, error) {
	m.admitCalls++
	if m.admitErr != nil {
		return nil, m.admitErr
	}
	if m.admitResult != nil {
		return m.admitResult, nil
	}
	return &reservation.Reservation{
		ID:               "res-1",
		PortalID:         req.PortalID,
		AssetID:          req.AssetID,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		CustomerName:     req.Customer.Name,
		CustomerEmail:    req.Customer.Email,
		ConfirmationCode: "ABCD1234",
		Status:           reservation.StatusConfirmed,
	}, nil
}

func (m *mockStore) GetReservation(ctx context.Context, id string) (*reservation.Reservation, error) {
	if m.getReservationErr != nil {
		return nil, m.getReservationErr
	}
	for i := range m.reservations {
		if m.reservations[i].ID == id {
			if !m.ownedByTenant(ctx, m.reservations[i].PortalID) {
				return nil, domain.ErrNotFound
			}
			return &m.reservations[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// ownedByTenant mirrors the store's tenant scoping through the portal
// owner. Fixtures that leave TenantID empty opt out of the check.
func (m *mockStore) ownedByTenant(ctx context.Context, portalID string) bool {
	for i := range m.portals {
		if m.portals[i].ID == portalID {
			return m.portals[i].TenantID == "" ||
				m.portals[i].TenantID == middleware.TenantIDFromContext(ctx)
		}
	}
	return true
}

func (m *mockStore) ListReservationsForPortal(_ context.Context, portalID string) ([]reservation.Reservation, error) {
	var out []reservation.Reservation
	for _, r := range m.reservations {
		if r.PortalID == portalID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockStore) ListActiveReservations(_ context.Context, assetIDs []string, start, end time.Time) ([]reservation.Reservation, error) {
	if m.listActiveErr != nil {
		return nil, m.listActiveErr
	}
	var out []reservation.Reservation
	for _, r := range m.reservations {
		if r.Status != reservation.StatusConfirmed {
			continue
		}
		for _, id := range assetIDs {
			if r.AssetID == id && reservation.Overlaps(r.StartDate, r.EndDate, start, end) {
				out = append(out, r)
			}
		}
	}
	return out, nil
}

func (m *mockStore) CancelReservation(ctx context.Context, id string) error {
	if m.cancelErr != nil {
		return m.cancelErr
	}
	for i := range m.reservations {
		if m.reservations[i].ID == id {
			if !m.ownedByTenant(ctx, m.reservations[i].PortalID) {
				return domain.ErrNotFound
			}
			if m.reservations[i].Status != reservation.StatusConfirmed {
				return domain.ErrNotFound
			}
			m.reservations[i].Status = reservation.StatusCancelled
			return nil
		}
	}
	return domain.ErrNotFound
}

// mockQueue records published messages.
type mockQueue struct {
	mu         sync.Mutex
	published  []publishedMsg
	publishErr error
}

type publishedMsg struct {
	subject string
	data    []byte
}

func (m *mockQueue) Publish(_ context.Context, subject string, data []byte) error {
	if m.publishErr != nil {
		return m.publishErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, publishedMsg{subject: subject, data: data})
	return nil
}

func (m *mockQueue) Subscribe(_ context.Context, _ string, _ messagequeue.Handler) (func(), error) {
	return func() {}, nil
}

func (m *mockQueue) Close() error { return nil }

func (m *mockQueue) bySubject(subject string) []publishedMsg {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []publishedMsg
	for _, p := range m.published {
		if p.subject == subject {
			out = append(out, p)
		}
	}
	return out
}

// mockCache is a plain map-backed cache; TTLs are ignored.
type mockCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	gets    int
	hits    int
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string][]byte)}
}

func (m *mockCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	data, ok := m.entries[key]
	if ok {
		m.hits++
	}
	return data, ok, nil
}

func (m *mockCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

func (m *mockCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}
