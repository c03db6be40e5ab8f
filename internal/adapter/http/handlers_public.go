package http

import (
	"net/http"
	"time"

	"github.com/portside-hq/portside/internal/domain/reservation"
	"github.com/portside-hq/portside/internal/service"
)

type availabilityResponse struct {
	Success bool `json:"success"`
	*service.PortalAvailability
}

type reserveRequest struct {
	AssetID   string               `json:"asset_id"`
	StartDate string               `json:"start_date"`
	EndDate   string               `json:"end_date"`
	Customer  reservation.Customer `json:"customer"`
}

type reserveResponse struct {
	Success          bool   `json:"success"`
	ReservationID    string `json:"reservation_id"`
	ConfirmationCode string `json:"confirmation_code"`
}

// GetAvailability serves the anonymous availability view for a portal
// slug over a date window.
func (h *Handlers) GetAvailability(w http.ResponseWriter, r *http.Request) {
	slug := urlParam(r, "portalSlug")
	start, ok := parseDate(w, r.URL.Query().Get("start"), "start")
	if !ok {
		return
	}
	end, ok := parseDate(w, r.URL.Query().Get("end"), "end")
	if !ok {
		return
	}

	view, err := h.Availability.Query(r.Context(), slug, start, end)
	if err != nil {
		writePublicError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, availabilityResponse{Success: true, PortalAvailability: view})
}

// CreateReservation admits an anonymous reservation attempt on a portal.
func (h *Handlers) CreateReservation(w http.ResponseWriter, r *http.Request) {
	slug := urlParam(r, "portalSlug")
	req, ok := readJSON[reserveRequest](w, r)
	if !ok {
		return
	}
	start, ok := parseDate(w, req.StartDate, "start_date")
	if !ok {
		return
	}
	end, ok := parseDate(w, req.EndDate, "end_date")
	if !ok {
		return
	}

	res, err := h.Reservations.Reserve(r.Context(), slug, reservation.AdmissionRequest{
		AssetID:   req.AssetID,
		StartDate: start,
		EndDate:   end,
		Customer:  req.Customer,
	})
	if err != nil {
		writePublicError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, reserveResponse{
		Success:          true,
		ReservationID:    res.ID,
		ConfirmationCode: res.ConfirmationCode,
	})
}

// parseDate parses a YYYY-MM-DD value, writing a 400 on failure.
func parseDate(w http.ResponseWriter, value, field string) (time.Time, bool) {
	if value == "" {
		writeError(w, http.StatusBadRequest, field+" is required")
		return time.Time{}, false
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		writeError(w, http.StatusBadRequest, field+" must be YYYY-MM-DD")
		return time.Time{}, false
	}
	return t, true
}
