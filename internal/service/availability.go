package service

import (
	"context"
	"fmt"
	"time"

	otelx "github.com/portside-hq/portside/internal/adapter/otel"
	"github.com/portside-hq/portside/internal/domain"
	"github.com/portside-hq/portside/internal/port/database"
)

// PortalRef identifies the portal a public view was computed for.
type PortalRef struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// AssetAvailability is one disclosed asset projected onto a date window.
type AssetAvailability struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	AssetType  string `json:"asset_type"`
	TotalUnits int    `json:"total_units"`
	Reserved   int    `json:"reserved"`
	Available  int    `json:"available"`
}

// AvailabilitySummary aggregates the per-asset numbers for the window.
type AvailabilitySummary struct {
	TotalUnits int `json:"total"`
	Reserved   int `json:"reserved"`
	Available  int `json:"available"`
}

// PortalAvailability is the complete public view of a portal's disclosed
// inventory over one date window.
type PortalAvailability struct {
	Portal  PortalRef           `json:"portal"`
	Start   time.Time           `json:"start_date"`
	End     time.Time           `json:"end_date"`
	Assets  []AssetAvailability `json:"assets"`
	Summary AvailabilitySummary `json:"summary"`
}

// AvailabilityService projects disclosed inventory onto date windows for
// the public read path.
type AvailabilityService struct {
	store    database.Store
	resolver *DisclosureResolver
	lookup   *PortalLookup
	metrics  *otelx.Metrics
}

// NewAvailabilityService creates an availability service.
func NewAvailabilityService(store database.Store, resolver *DisclosureResolver, lookup *PortalLookup, metrics *otelx.Metrics) *AvailabilityService {
	return &AvailabilityService{store: store, resolver: resolver, lookup: lookup, metrics: metrics}
}

// Query computes the availability view for a portal slug over the
// half-open window [start, end). An unknown or retired portal is a plain
// not-found; a portal with nothing disclosed is a valid empty view.
func (s *AvailabilityService) Query(ctx context.Context, slug string, start, end time.Time) (*PortalAvailability, error) {
	ctx, span := otelx.StartAvailabilitySpan(ctx, slug)
	defer span.End()
	s.metrics.AvailabilityQueries.Add(ctx, 1)

	if !end.After(start) {
		return nil, fmt.Errorf("%w: end_date must be after start_date", domain.ErrValidation)
	}

	p, err := s.lookup.BySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("query availability: %w", err)
	}
	if !p.Active() {
		return nil, fmt.Errorf("portal %s: %w", slug, domain.ErrNotFound)
	}

	disclosed, err := s.resolver.ResolvePortalInventory(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("query availability: %w", err)
	}

	view := &PortalAvailability{
		Portal: PortalRef{ID: p.ID, Slug: p.Slug, Name: p.Name},
		Start:  start,
		End:    end,
		Assets: make([]AssetAvailability, 0, len(disclosed)),
	}
	if len(disclosed) == 0 {
		return view, nil
	}

	ids := make([]string, 0, len(disclosed))
	for _, d := range disclosed {
		ids = append(ids, d.Asset.ID)
	}
	reservations, err := s.store.ListActiveReservations(ctx, ids, start, end)
	if err != nil {
		return nil, fmt.Errorf("query availability: %w", err)
	}
	booked := make(map[string]bool, len(reservations))
	for _, r := range reservations {
		booked[r.AssetID] = true
	}

	for _, d := range disclosed {
		av := AssetAvailability{
			ID:         d.Asset.ID,
			Name:       d.Asset.Name,
			AssetType:  d.Asset.AssetType,
			TotalUnits: d.Asset.TotalUnits,
		}
		// Whole-asset booking model: one confirmed overlapping
		// reservation takes the asset out of the window entirely.
		if booked[d.Asset.ID] {
			av.Reserved = av.TotalUnits
		}
		av.Available = av.TotalUnits - av.Reserved
		view.Assets = append(view.Assets, av)

		view.Summary.TotalUnits += av.TotalUnits
		view.Summary.Reserved += av.Reserved
		view.Summary.Available += av.Available
	}
	return view, nil
}
