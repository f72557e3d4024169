// Package router wires HTTP routes to handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Tushar07778/expert-session-booking/internal/handler"
)

// RegisterRoutes registers the probes: /healthz for liveness and, when db
// is non-nil, /readyz for readiness.
func RegisterRoutes(e *echo.Echo, db handler.Pinger) {
	e.GET("/healthz", handler.Health)
	if db != nil {
		e.GET("/readyz", handler.Ready(db))
	}
}

// RegisterPublic registers the unauthenticated catalog endpoints. cache
// wraps the expert listing only; expert detail and availability carry
// reservation state and are always served fresh.
func RegisterPublic(e *echo.Echo, h *handler.ExpertHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1/experts")
	g.GET("", h.ListExperts, cache)
	g.GET("/:id", h.GetExpert)
	g.GET("/:id/availability", h.GetAvailability)
}

// RegisterBookings registers the booker-facing reservation endpoints.
// limiter guards booking attempts.
func RegisterBookings(e *echo.Echo, h *handler.BookingHandler, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1/bookings")
	g.POST("", h.CreateBooking, limiter)
	g.GET("", h.ListByEmail)
}

// RegisterEvents registers the slot_booked Server-Sent Events stream.
func RegisterEvents(e *echo.Echo, h *handler.EventsHandler) {
	e.GET("/v1/events", h.Stream)
}
