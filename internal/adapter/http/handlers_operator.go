package http

import (
	"net/http"

	"github.com/portside-hq/portside/internal/domain/listing"
)

// Operator endpoints are tenant-scoped through the X-Tenant-ID middleware;
// the stores read the tenant from the request context.

// CreateListing places an asset on a portal owned by the same tenant.
func (h *Handlers) CreateListing(w http.ResponseWriter, r *http.Request) {
	portalID := urlParam(r, "id")
	req, ok := readJSON[listing.CreateRequest](w, r)
	if !ok {
		return
	}
	l, err := h.Listings.Create(r.Context(), portalID, req)
	if err != nil {
		writeDomainError(w, err, "portal or asset not found")
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

// CancelReservation cancels a confirmed reservation on the tenant's portal.
func (h *Handlers) CancelReservation(w http.ResponseWriter, r *http.Request) {
	if err := h.Reservations.Cancel(r.Context(), urlParam(r, "id")); err != nil {
		writeDomainError(w, err, "reservation not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
