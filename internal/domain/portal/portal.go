// Package portal defines the public storefront domain model.
package portal

import (
	"fmt"
	"regexp"
	"time"

	"github.com/portside-hq/portside/internal/domain"
)

// Status is the lifecycle state of a portal.
type Status string

const (
	StatusActive  Status = "active"
	StatusRetired Status = "retired"
)

// Portal is a public-facing storefront scoped to one tenant. Customers
// reach it by slug; it discloses nothing unless listings say so.
type Portal struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Active reports whether the portal is servable to the public.
func (p *Portal) Active() bool {
	return p.Status == StatusActive
}

// CreateRequest holds the fields required to create a portal.
type CreateRequest struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// UpdateRequest holds the fields that can be updated on a portal.
type UpdateRequest struct {
	Name   *string `json:"name,omitempty"`
	Status *Status `json:"status,omitempty"`
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidateCreateRequest checks slug format and required fields.
func ValidateCreateRequest(req CreateRequest) error {
	if req.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if req.Slug == "" {
		return fmt.Errorf("%w: slug is required", domain.ErrValidation)
	}
	if len(req.Slug) > 64 || !slugPattern.MatchString(req.Slug) {
		return fmt.Errorf("%w: slug must be lowercase letters, digits and hyphens", domain.ErrValidation)
	}
	return nil
}

// ValidStatus reports whether s is a known portal status.
func ValidStatus(s Status) bool {
	return s == StatusActive || s == StatusRetired
}
