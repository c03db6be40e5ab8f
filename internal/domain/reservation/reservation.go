// Package reservation defines customer reservations and the request
// shapes accepted by the admission path.
package reservation

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/portside-hq/portside/internal/domain"
)

// Status is the lifecycle state of a reservation.
type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Reservation is a committed booking for an asset over a half-open date
// window [StartDate, EndDate).
type Reservation struct {
	ID               string    `json:"id"`
	PortalID         string    `json:"portal_id"`
	AssetID          string    `json:"asset_id"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	CustomerName     string    `json:"customer_name"`
	CustomerEmail    string    `json:"customer_email"`
	CustomerPhone    string    `json:"customer_phone,omitempty"`
	ConfirmationCode string    `json:"confirmation_code"`
	Status           Status    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

// Customer is the anonymous customer payload on a reservation request.
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// AdmissionRequest is a reservation attempt entering the admission
// controller. Portal and asset identity plus the window; the disclosure
// re-check happens inside the commit transaction, never here.
type AdmissionRequest struct {
	PortalID  string
	AssetID   string
	StartDate time.Time
	EndDate   time.Time
	Customer  Customer
}

// Validate checks the window and customer payload. Disclosure is not a
// validation concern; it is decided transactionally at commit.
func (r *AdmissionRequest) Validate() error {
	if r.AssetID == "" {
		return fmt.Errorf("%w: asset_id is required", domain.ErrValidation)
	}
	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		return fmt.Errorf("%w: start_date and end_date are required", domain.ErrValidation)
	}
	if !r.EndDate.After(r.StartDate) {
		return fmt.Errorf("%w: end_date must be after start_date", domain.ErrValidation)
	}
	if r.Customer.Name == "" {
		return fmt.Errorf("%w: customer name is required", domain.ErrValidation)
	}
	if _, err := mail.ParseAddress(r.Customer.Email); err != nil {
		return fmt.Errorf("%w: customer email is invalid", domain.ErrValidation)
	}
	return nil
}

// Overlaps reports whether two half-open windows intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
