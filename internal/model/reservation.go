package model

import "time"

// Status is the lifecycle state of a Reservation.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
	StatusCompleted Status = "Completed"
)

// Statuses lists every accepted status in display order.
var Statuses = []Status{StatusPending, StatusConfirmed, StatusCompleted}

// ParseStatus reports whether s names one of the accepted statuses.
// Matching is exact; "pending" is not accepted.
func ParseStatus(s string) (Status, bool) {
	for _, st := range Statuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// Reservation is a committed booking of one expert, date and slot.
type Reservation struct {
	ID        string    `json:"id"`
	ExpertID  string    `json:"expert_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"` // always lower-cased
	Phone     string    `json:"phone"` // ten digits
	Date      string    `json:"date"`  // YYYY-MM-DD
	Slot      string    `json:"slot"`  // label as offered in the catalog, e.g. "09:00 AM"
	Notes     string    `json:"notes"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"` // commit time, UTC
	UpdatedAt time.Time `json:"updated_at"` // last status change, UTC
}

// Key returns the uniqueness key of the reservation.
func (r Reservation) Key() SlotKey {
	return SlotKey{Date: r.Date, Slot: r.Slot}
}

// ReservationDetail is a reservation joined with the display fields of its
// expert. It is what a booker sees when listing their own reservations.
type ReservationDetail struct {
	Reservation
	Expert ExpertSummary `json:"expert"`
}
