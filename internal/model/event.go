package model

import "time"

// TopicSlotBooked is the bus topic announcing a freshly committed reservation.
const TopicSlotBooked = "slot_booked"

// SlotBookedEvent is published once per committed reservation. Viewers use
// it to mark the slot taken without re-reading availability; it carries no
// booker data.
type SlotBookedEvent struct {
	ExpertID      string    `json:"expert_id"`
	Date          string    `json:"date"`
	Slot          string    `json:"slot"`
	ReservationID string    `json:"reservation_id"`
	BookedAt      time.Time `json:"booked_at"`
}
