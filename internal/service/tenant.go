package service

import (
	"context"
	"fmt"

	"github.com/portside-hq/portside/internal/domain"
	"github.com/portside-hq/portside/internal/domain/tenant"
	"github.com/portside-hq/portside/internal/port/database"
)

// TenantService implements administrative CRUD on tenants.
type TenantService struct {
	store database.Store
}

// NewTenantService creates a tenant service.
func NewTenantService(store database.Store) *TenantService {
	return &TenantService{store: store}
}

// Create registers a tenant.
func (s *TenantService) Create(ctx context.Context, req tenant.CreateRequest) (*tenant.Tenant, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if req.Slug == "" {
		return nil, fmt.Errorf("%w: slug is required", domain.ErrValidation)
	}
	t, err := s.store.CreateTenant(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create tenant: %w", err)
	}
	return t, nil
}

// Get retrieves a tenant by ID.
func (s *TenantService) Get(ctx context.Context, id string) (*tenant.Tenant, error) {
	return s.store.GetTenant(ctx, id)
}

// List lists all tenants.
func (s *TenantService) List(ctx context.Context) ([]tenant.Tenant, error) {
	return s.store.ListTenants(ctx)
}

// Update applies an update to a tenant.
func (s *TenantService) Update(ctx context.Context, id string, req tenant.UpdateRequest) (*tenant.Tenant, error) {
	t, err := s.store.GetTenant(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update tenant: %w", err)
	}
	if req.Name != "" {
		t.Name = req.Name
	}
	if req.Enabled != nil {
		t.Enabled = *req.Enabled
	}
	if err := s.store.UpdateTenant(ctx, t); err != nil {
		return nil, fmt.Errorf("update tenant: %w", err)
	}
	return t, nil
}
