// Package listing defines the disclosure fact: the single source of truth
// that an asset is exposed on a portal. Absence of a listing means not
// disclosed; tenant ownership alone discloses nothing.
package listing

import (
	"fmt"
	"sort"
	"time"

	"github.com/portside-hq/portside/internal/domain"
	"github.com/portside-hq/portside/internal/domain/asset"
)

// Visibility controls whether a listing is ever shown to anonymous
// callers. Only public listings disclose.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Listing records that one asset is exposed on one portal. At most one
// listing exists per (portal, asset) pair.
type Listing struct {
	ID           string     `json:"id"`
	PortalID     string     `json:"portal_id"`
	AssetID      string     `json:"asset_id"`
	Active       bool       `json:"active"`
	Visibility   Visibility `json:"visibility"`
	DisplayOrder *int       `json:"display_order"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// DenialCause names why the disclosure predicate failed. Causes are
// internal: they feed the operator audit channel and never reach a
// public response, which sees only the uniform not_disclosed verdict.
type DenialCause string

const (
	CauseNone            DenialCause = ""
	CauseNoListing       DenialCause = "no_listing"
	CauseListingInactive DenialCause = "listing_inactive"
	CauseListingPrivate  DenialCause = "listing_private"
	CauseAssetInactive   DenialCause = "asset_inactive"
	CausePortalInactive  DenialCause = "portal_inactive"
)

// Verdict evaluates the disclosure predicate for a listing and the asset
// it points at. All three conditions are independently necessary: the
// listing is active, its visibility is public, and the asset itself is
// active. CauseNone means disclosed. This is the only place the
// predicate is written; both the availability read path and the
// reservation write path call it.
func Verdict(l *Listing, a *asset.Asset) DenialCause {
	switch {
	case l == nil:
		return CauseNoListing
	case !l.Active:
		return CauseListingInactive
	case l.Visibility != VisibilityPublic:
		return CauseListingPrivate
	case a == nil || !a.Active():
		return CauseAssetInactive
	}
	return CauseNone
}

// Disclosed reports whether the (listing, asset) pair passes the
// disclosure predicate.
func Disclosed(l *Listing, a *asset.Asset) bool {
	return Verdict(l, a) == CauseNone
}

// Less is the stable presentation order for listings on a portal:
// display_order ascending with nulls last, ties broken by creation time.
func Less(a, b *Listing) bool {
	switch {
	case a.DisplayOrder != nil && b.DisplayOrder != nil:
		if *a.DisplayOrder != *b.DisplayOrder {
			return *a.DisplayOrder < *b.DisplayOrder
		}
	case a.DisplayOrder != nil:
		return true
	case b.DisplayOrder != nil:
		return false
	}
	return a.CreatedAt.Before(b.CreatedAt)
}

// Sort orders listings in place by the presentation order contract.
func Sort(listings []Listing) {
	sort.SliceStable(listings, func(i, j int) bool {
		return Less(&listings[i], &listings[j])
	})
}

// CreateRequest holds the fields required to expose an asset on a portal.
type CreateRequest struct {
	AssetID      string     `json:"asset_id"`
	Active       *bool      `json:"active,omitempty"`
	Visibility   Visibility `json:"visibility,omitempty"`
	DisplayOrder *int       `json:"display_order,omitempty"`
}

// UpdateRequest holds the operator-mutable listing fields. A present
// DisplayOrder pointer with a nil value cannot be expressed in JSON, so
// ClearDisplayOrder resets it to null explicitly.
type UpdateRequest struct {
	Active            *bool       `json:"active,omitempty"`
	Visibility        *Visibility `json:"visibility,omitempty"`
	DisplayOrder      *int        `json:"display_order,omitempty"`
	ClearDisplayOrder bool        `json:"clear_display_order,omitempty"`
}

// ValidateCreateRequest checks required fields and the visibility enum.
func ValidateCreateRequest(req CreateRequest) error {
	if req.AssetID == "" {
		return fmt.Errorf("%w: asset_id is required", domain.ErrValidation)
	}
	if req.Visibility != "" && !ValidVisibility(req.Visibility) {
		return fmt.Errorf("%w: visibility must be public or private", domain.ErrValidation)
	}
	return nil
}

// ValidVisibility reports whether v is a known visibility value.
func ValidVisibility(v Visibility) bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}
