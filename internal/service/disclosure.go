// Package service implements business logic on top of ports.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/portside-hq/portside/internal/domain"
	"github.com/portside-hq/portside/internal/domain/asset"
	"github.com/portside-hq/portside/internal/domain/listing"
	"github.com/portside-hq/portside/internal/port/database"
)

// DisclosedAsset is an asset that passed the disclosure predicate on a
// portal, paired with the listing that disclosed it.
type DisclosedAsset struct {
	Listing listing.Listing
	Asset   asset.Asset
}

// DisclosureResolver evaluates the disclosure predicate for one or many
// assets against one portal, and nothing else. It never reasons about
// ownership directly; the listing and registry facts it reads are the
// whole story. Both the availability read path and the reservation write
// path go through it — the predicate is never re-implemented inline.
type DisclosureResolver struct {
	store database.Store
}

// NewDisclosureResolver creates a resolver over the given store.
func NewDisclosureResolver(store database.Store) *DisclosureResolver {
	return &DisclosureResolver{store: store}
}

// ResolvePortalInventory returns every disclosed asset on the portal in
// listing presentation order. Assets whose registry status is not active
// are excluded even when a stale listing still marks them public. An
// empty portal yields an empty slice, never an error.
func (r *DisclosureResolver) ResolvePortalInventory(ctx context.Context, portalID string) ([]DisclosedAsset, error) {
	listings, err := r.store.ListListingsForPortal(ctx, portalID)
	if err != nil {
		return nil, fmt.Errorf("resolve portal inventory: %w", err)
	}

	// Pre-filter on the listing-side conditions before touching the
	// registry; private and paused listings never load their assets.
	candidates := make([]listing.Listing, 0, len(listings))
	ids := make([]string, 0, len(listings))
	for _, l := range listings {
		if l.Active && l.Visibility == listing.VisibilityPublic {
			candidates = append(candidates, l)
			ids = append(ids, l.AssetID)
		}
	}
	if len(candidates) == 0 {
		return []DisclosedAsset{}, nil
	}

	assets, err := r.store.GetAssetsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve portal inventory: %w", err)
	}

	disclosed := make([]DisclosedAsset, 0, len(candidates))
	for _, l := range candidates {
		a, ok := assets[l.AssetID]
		if !ok {
			continue
		}
		if listing.Disclosed(&l, &a) {
			disclosed = append(disclosed, DisclosedAsset{Listing: l, Asset: a})
		}
	}
	return disclosed, nil
}

// ResolveOne evaluates the disclosure predicate for a single (portal,
// asset) pair. Every failure mode — no listing, paused listing, private
// visibility, inactive asset — returns the same NotDisclosedError; the
// internal cause is for the audit channel only. Transient store failures
// propagate as themselves and are never folded into the verdict.
func (r *DisclosureResolver) ResolveOne(ctx context.Context, portalID, assetID string) (*DisclosedAsset, error) {
	l, err := r.store.GetListingByPair(ctx, portalID, assetID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.NotDisclosedError{Cause: string(listing.CauseNoListing)}
		}
		return nil, fmt.Errorf("resolve one: %w", err)
	}

	assets, err := r.store.GetAssetsByIDs(ctx, []string{assetID})
	if err != nil {
		return nil, fmt.Errorf("resolve one: %w", err)
	}

	var a *asset.Asset
	if found, ok := assets[assetID]; ok {
		a = &found
	}

	if cause := listing.Verdict(l, a); cause != listing.CauseNone {
		return nil, &domain.NotDisclosedError{Cause: string(cause)}
	}
	return &DisclosedAsset{Listing: *l, Asset: *a}, nil
}
