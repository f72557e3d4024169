package handler

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Tushar07778/expert-session-booking/internal/middleware"
	"github.com/Tushar07778/expert-session-booking/internal/service"
)

// BookingHandler serves reservation endpoints.
type BookingHandler struct {
	Svc *service.BookingService
}

// CreateBooking handles POST /v1/bookings. It answers 201 with the new
// reservation, 404 for an unknown expert, 409 when the slot is taken and
// 422 listing every invalid field.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req service.BookingRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid JSON body")
	}
	res, err := h.Svc.BookSlot(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "booking created", "item": res})
}

type statusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /v1/bookings/:id/status.
func (h *BookingHandler) UpdateStatus(c echo.Context) error {
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid JSON body")
	}
	res, err := h.Svc.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return writeError(c, err)
	}
	log.Printf("booking: reservation %s status=%s by %s", res.ID, res.Status, middleware.OperatorID(c))
	return c.JSON(http.StatusOK, echo.Map{"item": res})
}

// ListByEmail handles GET /v1/bookings?email=.
func (h *BookingHandler) ListByEmail(c echo.Context) error {
	items, err := h.Svc.ReservationsByEmail(c.Request().Context(), c.QueryParam("email"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}
