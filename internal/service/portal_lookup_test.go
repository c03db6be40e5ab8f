package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/portside-hq/portside/internal/domain"
	"github.com/portside-hq/portside/internal/domain/portal"
)

func TestPortalLookupCachesHits(t *testing.T) {
	store := &mockStore{portals: []portal.Portal{{ID: "portal-1", Slug: "marina", Name: "Marina", Status: portal.StatusActive}}}
	c := newMockCache()
	lookup := NewPortalLookup(store, c, time.Minute)
	ctx := context.Background()

	p1, err := lookup.BySlug(ctx, "marina")
	if err != nil {
		t.Fatal(err)
	}
	p2, err := lookup.BySlug(ctx, "marina")
	if err != nil {
		t.Fatal(err)
	}
	if p1.ID != p2.ID {
		t.Fatal("lookups disagree")
	}
	if c.hits != 1 {
		t.Fatalf("expected second lookup to hit the cache, hits=%d", c.hits)
	}
}

func TestPortalLookupMissNotCached(t *testing.T) {
	store := &mockStore{}
	c := newMockCache()
	lookup := NewPortalLookup(store, c, time.Minute)
	ctx := context.Background()

	if _, err := lookup.BySlug(ctx, "new-portal"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	// Portal appears; the earlier miss must not shadow it.
	store.portals = []portal.Portal{{ID: "portal-1", Slug: "new-portal", Status: portal.StatusActive}}
	p, err := lookup.BySlug(ctx, "new-portal")
	if err != nil {
		t.Fatal(err)
	}
	if p.ID != "portal-1" {
		t.Fatalf("unexpected portal: %+v", p)
	}
}

func TestPortalLookupInvalidate(t *testing.T) {
	store := &mockStore{portals: []portal.Portal{{ID: "portal-1", Slug: "marina", Name: "Marina", Status: portal.StatusActive}}}
	c := newMockCache()
	lookup := NewPortalLookup(store, c, time.Minute)
	ctx := context.Background()

	if _, err := lookup.BySlug(ctx, "marina"); err != nil {
		t.Fatal(err)
	}
	store.portals[0].Name = "Marina West"
	lookup.Invalidate(ctx, "marina")

	p, err := lookup.BySlug(ctx, "marina")
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Marina West" {
		t.Fatalf("stale read after invalidate: %s", p.Name)
	}
}
