package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Tushar07778/expert-session-booking/internal/service"
)

// ExpertHandler serves the public expert catalog and availability.
type ExpertHandler struct {
	Svc *service.BookingService
}

// ListExperts handles GET /v1/experts?page=&limit=&search=&category=.
func (h *ExpertHandler) ListExperts(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	res, err := h.Svc.ListExperts(c.Request().Context(), service.ExpertQuery{
		Page:     page,
		Limit:    limit,
		Search:   c.QueryParam("search"),
		Category: c.QueryParam("category"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// GetExpert handles GET /v1/experts/:id and includes the availability view.
func (h *ExpertHandler) GetExpert(c echo.Context) error {
	detail, err := h.Svc.GetExpert(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": detail})
}

// GetAvailability handles GET /v1/experts/:id/availability. The view is
// rebuilt from the store on every request.
func (h *ExpertHandler) GetAvailability(c echo.Context) error {
	id := c.Param("id")
	days, err := h.Svc.ProjectAvailability(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Response().Header().Set("Cache-Control", "no-store")
	return c.JSON(http.StatusOK, echo.Map{"expert_id": id, "items": days})
}
