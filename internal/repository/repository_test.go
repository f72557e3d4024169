package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/Tushar07778/expert-session-booking/internal/config"
	"github.com/Tushar07778/expert-session-booking/internal/database"
	"github.com/Tushar07778/expert-session-booking/internal/model"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.Open(config.DBConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "booking.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db))
	return db
}

func createExpert(t *testing.T, repo *ExpertRepo, id, name, category string, rating float64, catalog []model.CatalogDay) *model.Expert {
	t.Helper()
	e := &model.Expert{
		ID:         id,
		Name:       name,
		Category:   category,
		Bio:        "bio of " + name,
		Experience: 5,
		Rating:     rating,
		Photo:      "https://example.com/" + id + ".jpg",
	}
	require.NoError(t, repo.Create(context.Background(), e, catalog))
	return e
}

func newReservation(id, expertID, email, date, slot string, at time.Time) *model.Reservation {
	return &model.Reservation{
		ID:        id,
		ExpertID:  expertID,
		Name:      "Asha",
		Email:     email,
		Phone:     "9876543210",
		Date:      date,
		Slot:      slot,
		Status:    model.StatusPending,
		CreatedAt: at,
		UpdatedAt: at,
	}
}
