package service

import (
	"context"
	"encoding/json"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/portside-hq/portside/internal/domain/portal"
	"github.com/portside-hq/portside/internal/port/cache"
	"github.com/portside-hq/portside/internal/port/database"
)

const portalSlugKeyPrefix = "portal:slug:"

// PortalLookup resolves public portal slugs with a short-TTL cache in
// front of the store. Concurrent misses for the same slug are collapsed
// into one store round trip. Negative results are not cached so a newly
// created portal is reachable immediately.
type PortalLookup struct {
	store database.Store
	cache cache.Cache
	ttl   time.Duration
	group singleflight.Group
}

// NewPortalLookup creates a lookup with the given cache TTL.
func NewPortalLookup(store database.Store, c cache.Cache, ttl time.Duration) *PortalLookup {
	return &PortalLookup{store: store, cache: c, ttl: ttl}
}

// BySlug returns the portal for a public slug regardless of its status;
// callers decide what a retired portal means for them.
func (pl *PortalLookup) BySlug(ctx context.Context, slug string) (*portal.Portal, error) {
	key := portalSlugKeyPrefix + slug
	if data, ok, err := pl.cache.Get(ctx, key); err == nil && ok {
		var p portal.Portal
		if err := json.Unmarshal(data, &p); err == nil {
			return &p, nil
		}
	}

	v, err, _ := pl.group.Do(slug, func() (any, error) {
		p, err := pl.store.GetPortalBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if data, err := json.Marshal(p); err == nil {
			_ = pl.cache.Set(ctx, key, data, pl.ttl)
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*portal.Portal), nil
}

// Invalidate evicts the cached entry for a slug. Call it after any
// mutation that changes what the slug resolves to.
func (pl *PortalLookup) Invalidate(ctx context.Context, slug string) {
	_ = pl.cache.Delete(ctx, portalSlugKeyPrefix+slug)
}
