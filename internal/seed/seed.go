// Package seed fills an empty catalog with demo experts and their slots.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/Tushar07778/expert-session-booking/internal/model"
)

// DefaultSlots are offered on every seeded day, in display order.
var DefaultSlots = []string{"09:00 AM", "10:00 AM", "11:00 AM", "01:00 PM", "02:00 PM", "03:00 PM", "04:00 PM"}

// Store is the subset of repository.ExpertRepo the seeder needs.
type Store interface {
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, e *model.Expert, catalog []model.CatalogDay) error
}

// Experts is the demo roster.
var Experts = []model.Expert{
	{ID: "expert-arjun-mehta", Name: "Dr. Arjun Mehta", Category: "Technology", Experience: 15, Rating: 4.9,
		Bio:   "Software architect helping teams scale distributed systems and cloud platforms.",
		Photo: "https://randomuser.me/api/portraits/men/32.jpg"},
	{ID: "expert-priya-sharma", Name: "Priya Sharma", Category: "Design", Experience: 10, Rating: 4.8,
		Bio:   "Product designer focused on research-led UX and design systems.",
		Photo: "https://randomuser.me/api/portraits/women/44.jpg"},
	{ID: "expert-rohit-verma", Name: "Rohit Verma", Category: "Finance", Experience: 12, Rating: 4.7,
		Bio:   "Chartered accountant advising on personal finance, tax and investments.",
		Photo: "https://randomuser.me/api/portraits/men/45.jpg"},
	{ID: "expert-sneha-nair", Name: "Dr. Sneha Nair", Category: "Health", Experience: 8, Rating: 4.9,
		Bio:   "General physician offering preventive care and lifestyle consultations.",
		Photo: "https://randomuser.me/api/portraits/women/68.jpg"},
	{ID: "expert-vikram-singh", Name: "Vikram Singh", Category: "Marketing", Experience: 11, Rating: 4.6,
		Bio:   "Growth marketer specialising in performance campaigns and brand strategy.",
		Photo: "https://randomuser.me/api/portraits/men/52.jpg"},
	{ID: "expert-ananya-iyer", Name: "Ananya Iyer", Category: "Education", Experience: 9, Rating: 4.8,
		Bio:   "Career counsellor guiding students through admissions and study plans.",
		Photo: "https://randomuser.me/api/portraits/women/26.jpg"},
	{ID: "expert-karan-malhotra", Name: "Adv. Karan Malhotra", Category: "Legal", Experience: 14, Rating: 4.7,
		Bio:   "Corporate lawyer covering contracts, compliance and startup incorporation.",
		Photo: "https://randomuser.me/api/portraits/men/75.jpg"},
	{ID: "expert-meera-kapoor", Name: "Meera Kapoor", Category: "Business", Experience: 13, Rating: 4.8,
		Bio:   "Strategy consultant helping founders with business models and fundraising.",
		Photo: "https://randomuser.me/api/portraits/women/90.jpg"},
}

// Catalog returns DefaultSlots for each of the days consecutive dates
// starting at from, formatted as YYYY-MM-DD.
func Catalog(from time.Time, days int) []model.CatalogDay {
	out := make([]model.CatalogDay, 0, days)
	for i := 0; i < days; i++ {
		slots := make([]string, len(DefaultSlots))
		copy(slots, DefaultSlots)
		out = append(out, model.CatalogDay{Date: from.AddDate(0, 0, i).Format("2006-01-02"), Slots: slots})
	}
	return out
}

// Run inserts the demo roster with a catalog for the next days days,
// starting tomorrow. A catalog that already holds experts is left alone
// and Run reports 0.
func Run(ctx context.Context, store Store, now time.Time, days int) (int, error) {
	if days < 1 {
		return 0, fmt.Errorf("days must be positive, got %d", days)
	}
	n, err := store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count experts: %w", err)
	}
	if n > 0 {
		return 0, nil
	}
	catalog := Catalog(now.AddDate(0, 0, 1), days)
	for i := range Experts {
		e := Experts[i]
		if err := store.Create(ctx, &e, catalog); err != nil {
			return i, fmt.Errorf("create %s: %w", e.ID, err)
		}
	}
	return len(Experts), nil
}
