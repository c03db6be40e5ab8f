package messagequeue

// Subjects published on the event feed.
const (
	SubjectReservationCommitted = "reservations.committed"
	SubjectReservationCancelled = "reservations.cancelled"
	SubjectDisclosureAudit      = "audit.disclosure"
)

// ReservationCommittedPayload is the schema for reservations.committed
// messages, consumed by notification and audit workers.
type ReservationCommittedPayload struct {
	ReservationID    string `json:"reservation_id"`
	PortalID         string `json:"portal_id"`
	PortalSlug       string `json:"portal_slug"`
	AssetID          string `json:"asset_id"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	CustomerEmail    string `json:"customer_email"`
	ConfirmationCode string `json:"confirmation_code"`
}

// ReservationCancelledPayload is the schema for reservations.cancelled
// messages.
type ReservationCancelledPayload struct {
	ReservationID string `json:"reservation_id"`
	PortalID      string `json:"portal_id"`
	AssetID       string `json:"asset_id"`
}

// DisclosureAuditPayload is the schema for audit.disclosure messages.
// It carries the distinguishing cause behind a not_disclosed verdict.
// This detail is operator-only and must never reach a public response.
type DisclosureAuditPayload struct {
	PortalID   string `json:"portal_id"`
	PortalSlug string `json:"portal_slug"`
	AssetID    string `json:"asset_id"`
	Cause      string `json:"cause"` // no_listing | listing_inactive | listing_private | asset_inactive | portal_inactive
	RequestID  string `json:"request_id,omitempty"`
}
