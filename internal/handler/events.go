package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Tushar07778/expert-session-booking/internal/model"
	"github.com/Tushar07778/expert-session-booking/internal/notify"
)

// EventsHandler streams slot_booked events as Server-Sent Events.
type EventsHandler struct {
	Hub       *notify.Hub
	Heartbeat time.Duration
}

// Stream handles GET /v1/events?expert_id=. The subscription starts before
// the response headers are sent; events published earlier are not replayed.
func (h *EventsHandler) Stream(c echo.Context) error {
	expertID := strings.TrimSpace(c.QueryParam("expert_id"))
	sub := h.Hub.Subscribe()
	defer sub.Close()

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "retry: 3000\n\n")
	w.Flush()

	heartbeat := h.Heartbeat
	if heartbeat <= 0 {
		heartbeat = 25 * time.Second
	}
	ticker := time.NewTicker(heartbeat)
	defer ticker.Stop()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return nil
			}
			w.Flush()
		case ev, ok := <-sub.Events():
			if !ok {
				return nil
			}
			if expertID != "" && ev.ExpertID != expertID {
				continue
			}
			data, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			if _, err := fmt.Fprintf(w, "event: %s\nid: %s\ndata: %s\n\n", model.TopicSlotBooked, ev.ReservationID, data); err != nil {
				return nil
			}
			w.Flush()
		}
	}
}
