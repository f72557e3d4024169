package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Tushar07778/expert-session-booking/internal/service"
)

// writeError maps service errors onto HTTP responses. Storage faults are
// logged here with their cause and answered with a generic message.
func writeError(c echo.Context, err error) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"error":   "invalid_input",
			"message": "validation failed",
			"fields":  verr.Fields,
		})
	case errors.Is(err, service.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{
			"error":   "conflict",
			"message": "This time slot is already booked. Please choose another slot.",
		})
	case errors.Is(err, service.ErrExpertNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found", "message": "expert not found"})
	case errors.Is(err, service.ErrReservationNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found", "message": "reservation not found"})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found", "message": "not found"})
	default:
		log.Printf("handler: %s %s: %v", c.Request().Method, c.Path(), err)
		return c.JSON(http.StatusServiceUnavailable, echo.Map{
			"error":   "unavailable",
			"message": "service temporarily unavailable, please retry",
		})
	}
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad_request", "message": message})
}
