package postgres

import (
	"context"
	"fmt"

	"github.com/portside-hq/portside/internal/domain/asset"
)

const assetColumns = `id, tenant_id, name, asset_type, status, total_units, created_at, updated_at`

func scanAsset(row scannable) (asset.Asset, error) {
	var a asset.Asset
	err := row.Scan(&a.ID, &a.TenantID, &a.Name, &a.AssetType, &a.Status, &a.TotalUnits, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (s *Store) CreateAsset(ctx context.Context, req asset.CreateRequest) (*asset.Asset, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO assets (tenant_id, name, asset_type, status, total_units)
		 VALUES ($1, $2, $3, 'active', $4)
		 RETURNING `+assetColumns,
		tenantFromCtx(ctx), req.Name, req.AssetType, req.TotalUnits)

	a, err := scanAsset(row)
	if err != nil {
		return nil, transientWrap(err, "create asset")
	}
	return &a, nil
}

func (s *Store) GetAsset(ctx context.Context, id string) (*asset.Asset, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+assetColumns+` FROM assets WHERE id = $1 AND tenant_id = $2`,
		id, tenantFromCtx(ctx))

	a, err := scanAsset(row)
	if err != nil {
		return nil, notFoundWrap(err, "get asset %s", id)
	}
	return &a, nil
}

// GetAssetsByIDs bulk-loads assets without tenant scope. Used by the
// disclosure resolver, which is reached only through listings a portal
// owner created; the listing rows are the authorization, not ownership.
func (s *Store) GetAssetsByIDs(ctx context.Context, ids []string) (map[string]asset.Asset, error) {
	if len(ids) == 0 {
		return map[string]asset.Asset{}, nil
	}

	rows, err := s.pool.Query(ctx,
		`SELECT `+assetColumns+` FROM assets WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, transientWrap(err, "get assets by ids")
	}
	defer rows.Close()

	assets := make(map[string]asset.Asset, len(ids))
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		assets[a.ID] = a
	}
	return assets, rows.Err()
}

func (s *Store) ListAssets(ctx context.Context) ([]asset.Asset, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+assetColumns+` FROM assets WHERE tenant_id = $1 ORDER BY created_at ASC`,
		tenantFromCtx(ctx))
	if err != nil {
		return nil, transientWrap(err, "list assets")
	}
	defer rows.Close()

	var assets []asset.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

func (s *Store) UpdateAsset(ctx context.Context, a *asset.Asset) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE assets SET name = $3, asset_type = $4, status = $5, total_units = $6, updated_at = now()
		 WHERE id = $1 AND tenant_id = $2`,
		a.ID, tenantFromCtx(ctx), a.Name, a.AssetType, a.Status, a.TotalUnits)
	return execExpectOne(tag, err, "update asset %s", a.ID)
}

func (s *Store) DeleteAsset(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM assets WHERE id = $1 AND tenant_id = $2`,
		id, tenantFromCtx(ctx))
	return execExpectOne(tag, err, "delete asset %s", id)
}
