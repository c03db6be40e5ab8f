package http

import (
	"net/http"

	"github.com/portside-hq/portside/internal/service"
)

// Handlers bundles the services behind the HTTP surface.
type Handlers struct {
	Tenants      *service.TenantService
	Portals      *service.PortalService
	Assets       *service.AssetService
	Listings     *service.ListingService
	Availability *service.AvailabilityService
	Reservations *service.ReservationService
}

// NewHandlers creates the handler set.
func NewHandlers(
	tenants *service.TenantService,
	portals *service.PortalService,
	assets *service.AssetService,
	listings *service.ListingService,
	availability *service.AvailabilityService,
	reservations *service.ReservationService,
) *Handlers {
	return &Handlers{
		Tenants:      tenants,
		Portals:      portals,
		Assets:       assets,
		Listings:     listings,
		Availability: availability,
		Reservations: reservations,
	}
}

// Health reports liveness.
func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
