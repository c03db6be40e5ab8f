package http

import (
	"github.com/go-chi/chi/v5"

	"github.com/portside-hq/portside/internal/middleware"
)

// MountRoutes registers all API routes on the given chi router. Public
// routes are anonymous and rate-limited; operator routes are scoped to
// the tenant in the X-Tenant-ID header.
func MountRoutes(r chi.Router, h *Handlers, limiter *middleware.RateLimiter) {
	r.Get("/health", h.Health)

	r.Route("/api/v1", func(r chi.Router) {
		// Public storefront surface.
		r.Route("/public/{portalSlug}", func(r chi.Router) {
			r.Use(limiter.Handler)
			r.Get("/availability", h.GetAvailability)
			r.Post("/reservations", h.CreateReservation)
		})

		// Operator surface.
		r.Group(func(r chi.Router) {
			r.Use(middleware.TenantID)

			// Portals
			r.Get("/portals", handleList(h.Portals.List))
			r.Post("/portals", handleCreate(h.Portals.Create))
			r.Get("/portals/{id}", handleGet(h.Portals.Get, "portal not found"))
			r.Put("/portals/{id}", handleUpdate(h.Portals.Update, "portal not found"))
			r.Delete("/portals/{id}", handleDelete(h.Portals.Delete, "portal not found"))

			// Assets
			r.Get("/assets", handleList(h.Assets.List))
			r.Post("/assets", handleCreate(h.Assets.Create))
			r.Get("/assets/{id}", handleGet(h.Assets.Get, "asset not found"))
			r.Put("/assets/{id}", handleUpdate(h.Assets.Update, "asset not found"))
			r.Delete("/assets/{id}", handleDelete(h.Assets.Delete, "asset not found"))

			// Listings (nested under portals for create/list)
			r.Post("/portals/{id}/listings", h.CreateListing)
			r.Get("/portals/{id}/listings", handleListByParam("id", h.Listings.ListForPortal, "portal not found"))
			r.Get("/listings/{id}", handleGet(h.Listings.Get, "listing not found"))
			r.Put("/listings/{id}", handleUpdate(h.Listings.Update, "listing not found"))
			r.Delete("/listings/{id}", handleDelete(h.Listings.Delete, "listing not found"))

			// Reservations (operator view)
			r.Get("/portals/{id}/reservations", handleListByParam("id", h.Reservations.ListForPortal, "portal not found"))
			r.Get("/reservations/{id}", handleGet(h.Reservations.Get, "reservation not found"))
			r.Post("/reservations/{id}/cancel", h.CancelReservation)

			// Tenants (admin)
			r.Get("/tenants", handleList(h.Tenants.List))
			r.Post("/tenants", handleCreate(h.Tenants.Create))
			r.Get("/tenants/{id}", handleGet(h.Tenants.Get, "tenant not found"))
			r.Put("/tenants/{id}", handleUpdate(h.Tenants.Update, "tenant not found"))
		})
	})
}
