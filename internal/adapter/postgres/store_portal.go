package postgres

import (
	"context"
	"fmt"

	"github.com/portside-hq/portside/internal/domain/portal"
)

const portalColumns = `id, tenant_id, slug, name, status, created_at, updated_at`

func scanPortal(row scannable) (portal.Portal, error) {
	var p portal.Portal
	err := row.Scan(&p.ID, &p.TenantID, &p.Slug, &p.Name, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (s *Store) CreatePortal(ctx context.Context, req portal.CreateRequest) (*portal.Portal, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO portals (tenant_id, slug, name, status)
		 VALUES ($1, $2, $3, 'active')
		 RETURNING `+portalColumns,
		tenantFromCtx(ctx), req.Slug, req.Name)

	p, err := scanPortal(row)
	if err != nil {
		return nil, transientWrap(err, "create portal")
	}
	return &p, nil
}

// GetPortal is tenant-scoped: operators only see their own portals.
func (s *Store) GetPortal(ctx context.Context, id string) (*portal.Portal, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+portalColumns+` FROM portals WHERE id = $1 AND tenant_id = $2`,
		id, tenantFromCtx(ctx))

	p, err := scanPortal(row)
	if err != nil {
		return nil, notFoundWrap(err, "get portal %s", id)
	}
	return &p, nil
}

// GetPortalBySlug is the public lookup: no tenant scope, since anonymous
// customers carry none. Retired portals resolve too; the caller decides
// what a retired portal may show (nothing).
func (s *Store) GetPortalBySlug(ctx context.Context, slug string) (*portal.Portal, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+portalColumns+` FROM portals WHERE slug = $1`, slug)

	p, err := scanPortal(row)
	if err != nil {
		return nil, notFoundWrap(err, "get portal by slug %s", slug)
	}
	return &p, nil
}

func (s *Store) ListPortals(ctx context.Context) ([]portal.Portal, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+portalColumns+` FROM portals WHERE tenant_id = $1 ORDER BY created_at ASC`,
		tenantFromCtx(ctx))
	if err != nil {
		return nil, transientWrap(err, "list portals")
	}
	defer rows.Close()

	var portals []portal.Portal
	for rows.Next() {
		p, err := scanPortal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan portal: %w", err)
		}
		portals = append(portals, p)
	}
	return portals, rows.Err()
}

func (s *Store) UpdatePortal(ctx context.Context, p *portal.Portal) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE portals SET name = $3, status = $4, updated_at = now()
		 WHERE id = $1 AND tenant_id = $2`,
		p.ID, tenantFromCtx(ctx), p.Name, p.Status)
	return execExpectOne(tag, err, "update portal %s", p.ID)
}

func (s *Store) DeletePortal(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM portals WHERE id = $1 AND tenant_id = $2`,
		id, tenantFromCtx(ctx))
	return execExpectOne(tag, err, "delete portal %s", id)
}
