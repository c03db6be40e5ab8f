package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	otelx "github.com/portside-hq/portside/internal/adapter/otel"
	"github.com/portside-hq/portside/internal/domain"
	"github.com/portside-hq/portside/internal/domain/asset"
	"github.com/portside-hq/portside/internal/domain/listing"
	"github.com/portside-hq/portside/internal/domain/portal"
	"github.com/portside-hq/portside/internal/domain/reservation"
	"github.com/portside-hq/portside/internal/middleware"
	"github.com/portside-hq/portside/internal/port/cache"
	"github.com/portside-hq/portside/internal/port/database"
	"github.com/portside-hq/portside/internal/port/messagequeue"
	"github.com/portside-hq/portside/internal/service"
)

// fakeStore drives the handlers through the service layer with canned
// data. Admission verdicts are injected through admitErr.
type fakeStore struct {
	database.Store // panic on anything not overridden

	portals      []portal.Portal
	assets       map[string]asset.Asset
	listings     []listing.Listing
	reservations []reservation.Reservation

	admitErr error
}

func (f *fakeStore) GetPortalBySlug(_ context.Context, slug string) (*portal.Portal, error) {
	for i := range f.portals {
		if f.portals[i].Slug == slug {
			return &f.portals[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeStore) ListListingsForPortal(_ context.Context, portalID string) ([]listing.Listing, error) {
	var out []listing.Listing
	for _, l := range f.listings {
		if l.PortalID == portalID {
			out = append(out, l)
		}
	}
	listing.Sort(out)
	return out, nil
}

func (f *fakeStore) GetAssetsByIDs(_ context.Context, ids []string) (map[string]asset.Asset, error) {
	out := make(map[string]asset.Asset)
	for _, id := range ids {
		if a, ok := f.assets[id]; ok {
			out[id] = a
		}
	}
	return out, nil
}

func (f *fakeStore) ListActiveReservations(_ context.Context, assetIDs []string, start, end time.Time) ([]reservation.Reservation, error) {
	var out []reservation.Reservation
	for _, r := range f.reservations {
		if r.Status != reservation.StatusConfirmed {
			continue
		}
		for _, id := range assetIDs {
			if r.AssetID == id && reservation.Overlaps(r.StartDate, r.EndDate, start, end) {
				out = append(out, r)
			}
		}
	}
	return out, nil
}

func (f *fakeStore) AdmitReservation(_ context.Context, req reservation.AdmissionRequest) (*reservation.Reservation, error) {
	if f.admitErr != nil {
		return nil, f.admitErr
	}
	return &reservation.Reservation{
		ID:               "res-1",
		PortalID:         req.PortalID,
		AssetID:          req.AssetID,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		ConfirmationCode: "ABCD1234",
		Status:           reservation.StatusConfirmed,
	}, nil
}

type noopCache struct{}

func (noopCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (noopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (noopCache) Delete(context.Context, string) error { return nil }

var _ cache.Cache = noopCache{}

type noopQueue struct{}

func (noopQueue) Publish(context.Context, string, []byte) error { return nil }
func (noopQueue) Subscribe(context.Context, string, messagequeue.Handler) (func(), error) {
	return func() {}, nil
}
func (noopQueue) Close() error { return nil }

func newTestRouter(t *testing.T, store *fakeStore) chi.Router {
	t.Helper()
	metrics, err := otelx.NewMetrics()
	if err != nil {
		t.Fatal(err)
	}
	lookup := service.NewPortalLookup(store, noopCache{}, time.Second)
	resolver := service.NewDisclosureResolver(store)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := NewHandlers(
		service.NewTenantService(store),
		service.NewPortalService(store, lookup),
		service.NewAssetService(store),
		service.NewListingService(store),
		service.NewAvailabilityService(store, resolver, lookup, metrics),
		service.NewReservationService(store, noopQueue{}, lookup, metrics, log),
	)

	r := chi.NewRouter()
	MountRoutes(r, h, middleware.NewRateLimiter(1000, 1000))
	return r
}

func storefrontFixture() *fakeStore {
	order1, order2 := 1, 2
	return &fakeStore{
		portals: []portal.Portal{{ID: "portal-1", Slug: "marina", Name: "Marina", Status: portal.StatusActive}},
		assets: map[string]asset.Asset{
			"a-ok":   {ID: "a-ok", Name: "Dock A", AssetType: "berth", TotalUnits: 1, Status: asset.StatusActive},
			"a-ok2":  {ID: "a-ok2", Name: "Dock B", AssetType: "berth", TotalUnits: 3, Status: asset.StatusActive},
			"a-susp": {ID: "a-susp", Name: "Dock C", AssetType: "berth", TotalUnits: 2, Status: asset.StatusSuspended},
		},
		listings: []listing.Listing{
			{ID: "l-1", PortalID: "portal-1", AssetID: "a-ok", Active: true, Visibility: listing.VisibilityPublic, DisplayOrder: &order1},
			{ID: "l-2", PortalID: "portal-1", AssetID: "a-ok2", Active: true, Visibility: listing.VisibilityPublic, DisplayOrder: &order2},
			{ID: "l-3", PortalID: "portal-1", AssetID: "a-susp", Active: true, Visibility: listing.VisibilityPublic},
		},
	}
}

func TestGetAvailability(t *testing.T) {
	router := newTestRouter(t, storefrontFixture())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/public/marina/availability?start=2026-06-10&end=2026-06-12", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	var resp struct {
		Success bool `json:"success"`
		Assets  []struct {
			ID        string `json:"id"`
			Available int    `json:"available"`
		} `json:"assets"`
		Summary struct {
			Total int `json:"total"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success {
		t.Fatal("expected success")
	}
	// The suspended asset never appears, even with a public listing.
	if len(resp.Assets) != 2 {
		t.Fatalf("expected 2 assets, got %d", len(resp.Assets))
	}
	if resp.Assets[0].ID != "a-ok" || resp.Assets[1].ID != "a-ok2" {
		t.Fatalf("wrong order: %+v", resp.Assets)
	}
	if resp.Summary.Total != 4 {
		t.Fatalf("wrong summary: %+v", resp.Summary)
	}
	// Summary keys are part of the public contract.
	if !strings.Contains(rec.Body.String(), `"summary":{"total":`) {
		t.Fatalf("unexpected summary shape: %s", rec.Body)
	}
}

func TestGetAvailabilityUnknownPortal(t *testing.T) {
	router := newTestRouter(t, &fakeStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/public/ghost/availability?start=2026-06-10&end=2026-06-12", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestGetAvailabilityBadDates(t *testing.T) {
	router := newTestRouter(t, storefrontFixture())

	for _, q := range []string{
		"?start=2026-06-10",
		"?start=junk&end=2026-06-12",
		"?start=2026-06-12&end=2026-06-10",
	} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/public/marina/availability"+q, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("query %q: expected 400, got %d", q, rec.Code)
		}
	}
}

func reserveBody(assetID string) *bytes.Reader {
	body, _ := json.Marshal(map[string]any{
		"asset_id":   assetID,
		"start_date": "2026-06-10",
		"end_date":   "2026-06-12",
		"customer":   map[string]string{"name": "Ada", "email": "ada@example.com"},
	})
	return bytes.NewReader(body)
}

func TestCreateReservation(t *testing.T) {
	router := newTestRouter(t, storefrontFixture())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/public/marina/reservations", reserveBody("a-ok"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body)
	}
	var resp reserveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success || resp.ReservationID == "" || resp.ConfirmationCode == "" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

// Every disclosure-failure cause must produce a byte-identical response
// body; a probing client learns nothing from the denial.
func TestCreateReservationUniformDenial(t *testing.T) {
	causes := []listing.DenialCause{
		listing.CauseNoListing,
		listing.CauseListingInactive,
		listing.CauseListingPrivate,
		listing.CauseAssetInactive,
	}
	var bodies []string
	for _, cause := range causes {
		store := storefrontFixture()
		store.admitErr = &domain.NotDisclosedError{Cause: string(cause)}
		router := newTestRouter(t, store)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/public/marina/reservations", reserveBody("a-ok"))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("cause %s: expected 404, got %d", cause, rec.Code)
		}
		bodies = append(bodies, rec.Body.String())
	}
	for i := 1; i < len(bodies); i++ {
		if bodies[i] != bodies[0] {
			t.Fatalf("denial bodies differ: %q vs %q", bodies[0], bodies[i])
		}
	}
	if !strings.Contains(bodies[0], "not_disclosed") {
		t.Fatalf("unexpected denial body: %s", bodies[0])
	}
}

func TestCreateReservationConflict(t *testing.T) {
	store := storefrontFixture()
	store.admitErr = domain.ErrConflict
	router := newTestRouter(t, store)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/public/marina/reservations", reserveBody("a-ok"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "conflict") {
		t.Fatalf("unexpected body: %s", rec.Body)
	}
}

func TestCreateReservationTransient(t *testing.T) {
	store := storefrontFixture()
	store.admitErr = domain.ErrTransient
	router := newTestRouter(t, store)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/public/marina/reservations", reserveBody("a-ok"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// Transient failure is retryable and must never look like a denial.
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "unavailable") {
		t.Fatalf("unexpected body: %s", rec.Body)
	}
}

func TestCreateReservationInvalidBody(t *testing.T) {
	router := newTestRouter(t, storefrontFixture())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/public/marina/reservations", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, &fakeStore{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
