package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Tushar07778/expert-session-booking/internal/handler"
	"github.com/Tushar07778/expert-session-booking/internal/middleware"
)

// RegisterOperator registers the reservation status endpoint. With a
// non-empty jwtSecret it requires a Bearer token carrying the OPERATOR
// role; with an empty secret the endpoint is open.
func RegisterOperator(e *echo.Echo, h *handler.BookingHandler, jwtSecret string) {
	var mw []echo.MiddlewareFunc
	if jwtSecret != "" {
		mw = append(mw,
			middleware.JWTAuth(jwtSecret),
			middleware.RequireRole(middleware.RoleOperator),
		)
	}
	// route-level middleware keeps the other /v1/bookings routes public
	e.PATCH("/v1/bookings/:id/status", h.UpdateStatus, mw...)
}
