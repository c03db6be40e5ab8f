// Package asset defines the ownable, reservable inventory unit.
package asset

import (
	"fmt"
	"time"

	"github.com/portside-hq/portside/internal/domain"
)

// Status is the lifecycle state of an asset.
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusRetired   Status = "retired"
)

// Asset is a reservable unit owned by exactly one tenant. Ownership alone
// never discloses it anywhere; only listings do.
type Asset struct {
	ID         string    `json:"id"`
	TenantID   string    `json:"tenant_id"`
	Name       string    `json:"name"`
	AssetType  string    `json:"asset_type"`
	Status     Status    `json:"status"`
	TotalUnits int       `json:"total_units"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Active reports whether the asset itself permits disclosure.
func (a *Asset) Active() bool {
	return a.Status == StatusActive
}

// CreateRequest holds the fields required to create an asset.
type CreateRequest struct {
	Name       string `json:"name"`
	AssetType  string `json:"asset_type"`
	TotalUnits int    `json:"total_units"`
}

// UpdateRequest holds the fields that can be updated on an asset.
type UpdateRequest struct {
	Name       *string `json:"name,omitempty"`
	AssetType  *string `json:"asset_type,omitempty"`
	Status     *Status `json:"status,omitempty"`
	TotalUnits *int    `json:"total_units,omitempty"`
}

// ValidateCreateRequest checks required fields and unit bounds.
func ValidateCreateRequest(req CreateRequest) error {
	if req.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if req.AssetType == "" {
		return fmt.Errorf("%w: asset_type is required", domain.ErrValidation)
	}
	if req.TotalUnits < 1 {
		return fmt.Errorf("%w: total_units must be >= 1", domain.ErrValidation)
	}
	return nil
}

// ValidStatus reports whether s is a known asset status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusActive, StatusSuspended, StatusRetired:
		return true
	}
	return false
}
