package model

import "time"

// Categories accepted for an expert.
var Categories = []string{
	"Technology", "Design", "Marketing", "Finance",
	"Health", "Education", "Legal", "Business",
}

// IsCategory reports whether c is a known expert category.
func IsCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Expert is a bookable person. Experts are reference data for the
// booking core; they are created by the seed tool and never mutated by it.
type Expert struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	Bio        string    `json:"bio"`
	Experience int       `json:"experience"` // years
	Rating     float64   `json:"rating"`     // 0..5
	Photo      string    `json:"photo"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ExpertSummary is the subset of Expert embedded into reservation listings.
type ExpertSummary struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Photo    string `json:"photo"`
}

// CatalogDay is one offered date of an expert's slot catalog. Slots keep
// the order in which they were offered.
type CatalogDay struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

// ExpertDetail is an expert together with its availability view.
type ExpertDetail struct {
	Expert
	AvailableSlots []DayAvailability `json:"available_slots"`
}
