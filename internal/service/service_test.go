package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/Tushar07778/expert-session-booking/internal/config"
	"github.com/Tushar07778/expert-session-booking/internal/database"
	"github.com/Tushar07778/expert-session-booking/internal/model"
	"github.com/Tushar07778/expert-session-booking/internal/notify"
	"github.com/Tushar07778/expert-session-booking/internal/repository"
)

type fixture struct {
	db  *sqlx.DB
	svc *BookingService
	hub *notify.Hub
}

// newFixture wires the service to a fresh SQLite database and an
// in-process hub, with one expert "e1" offering two slots on 2025-01-10.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.Open(config.DBConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "booking.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db))

	experts := repository.NewExpertRepo(db)
	require.NoError(t, experts.Create(context.Background(), &model.Expert{
		ID: "e1", Name: "Dr. Arjun Mehta", Category: "Technology", Rating: 4.9,
	}, []model.CatalogDay{
		{Date: "2025-01-10", Slots: []string{"09:00 AM", "10:00 AM"}},
		{Date: "2025-01-11", Slots: []string{"09:00 AM"}},
	}))

	hub := notify.NewHub(8)
	svc := New(experts, repository.NewReservationRepo(db), hub, Options{})
	t.Cleanup(svc.Wait)
	return &fixture{db: db, svc: svc, hub: hub}
}

func validRequest() BookingRequest {
	return BookingRequest{
		ExpertID: "e1",
		Name:     "Asha Rao",
		Email:    "asha@example.com",
		Phone:    "9876543210",
		Date:     "2025-01-10",
		Slot:     "09:00 AM",
	}
}

func (f *fixture) count(t *testing.T) int {
	t.Helper()
	var n int
	require.NoError(t, f.db.Get(&n, `SELECT COUNT(*) FROM reservations`))
	return n
}
