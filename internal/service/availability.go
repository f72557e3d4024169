package service

import (
	"context"
	"strings"

	"github.com/Tushar07778/expert-session-booking/internal/model"
)

// ProjectAvailability returns the expert's catalog with every slot flagged
// as reserved or free. It is computed from the store on every call.
func (s *BookingService) ProjectAvailability(ctx context.Context, expertID string) ([]model.DayAvailability, error) {
	expertID = strings.TrimSpace(expertID)
	if _, err := s.expert(ctx, expertID); err != nil {
		return nil, err
	}
	return s.project(ctx, expertID)
}

func (s *BookingService) project(ctx context.Context, expertID string) ([]model.DayAvailability, error) {
	catalog, err := s.experts.Catalog(ctx, expertID)
	if err != nil {
		return nil, unavailable("load catalog", err)
	}
	keys, err := s.reservations.ReservedKeys(ctx, expertID)
	if err != nil {
		return nil, unavailable("load reserved slots", err)
	}
	return Project(catalog, keys), nil
}

// Project overlays reserved keys onto a catalog. Keys that are not in the
// catalog are ignored; dates and slots keep catalog order.
func Project(catalog []model.CatalogDay, reserved []model.SlotKey) []model.DayAvailability {
	taken := make(map[string]struct{}, len(reserved))
	for _, k := range reserved {
		taken[k.String()] = struct{}{}
	}
	days := make([]model.DayAvailability, 0, len(catalog))
	for _, day := range catalog {
		slots := make([]model.SlotAvailability, 0, len(day.Slots))
		for _, slot := range day.Slots {
			_, isTaken := taken[model.SlotKey{Date: day.Date, Slot: slot}.String()]
			slots = append(slots, model.SlotAvailability{Slot: slot, Reserved: isTaken})
		}
		days = append(days, model.DayAvailability{Date: day.Date, Slots: slots})
	}
	return days
}
