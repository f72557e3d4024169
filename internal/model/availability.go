package model

// SlotKey identifies a slot of a given expert. Together with the expert
// id it is the uniqueness key of a Reservation.
type SlotKey struct {
	Date string
	Slot string
}

// String renders the key as "date|slot".
func (k SlotKey) String() string { return k.Date + "|" + k.Slot }

// SlotAvailability is a catalog slot annotated with whether it is taken.
type SlotAvailability struct {
	Slot     string `json:"slot"`
	Reserved bool   `json:"reserved"`
}

// DayAvailability is one catalog date of the availability view.
type DayAvailability struct {
	Date  string             `json:"date"`
	Slots []SlotAvailability `json:"slots"`
}
