package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tushar07778/expert-session-booking/internal/model"
)

func TestCommitRejectsDuplicateKey(t *testing.T) {
	db := openTestDB(t)
	createExpert(t, NewExpertRepo(db), "e1", "A", "Legal", 4, nil)
	repo := NewReservationRepo(db)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.Commit(ctx, newReservation("r1", "e1", "a@x.io", "2025-01-10", "09:00 AM", now)))

	err := repo.Commit(ctx, newReservation("r2", "e1", "b@x.io", "2025-01-10", "09:00 AM", now))
	assert.ErrorIs(t, err, ErrConflict)

	// same slot on another date is a different key
	require.NoError(t, repo.Commit(ctx, newReservation("r3", "e1", "b@x.io", "2025-01-11", "09:00 AM", now)))

	keys, err := repo.ReservedKeys(ctx, "e1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []model.SlotKey{
		{Date: "2025-01-10", Slot: "09:00 AM"},
		{Date: "2025-01-11", Slot: "09:00 AM"},
	}, keys)
}

func TestCommitSlotKeyIsCaseSensitive(t *testing.T) {
	db := openTestDB(t)
	createExpert(t, NewExpertRepo(db), "e1", "A", "Legal", 4, nil)
	repo := NewReservationRepo(db)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.Commit(ctx, newReservation("r1", "e1", "a@x.io", "2025-01-10", "09:00 AM", now)))
	require.NoError(t, repo.Commit(ctx, newReservation("r2", "e1", "a@x.io", "2025-01-10", "09:00 am", now)))
	assert.ErrorIs(t, repo.Commit(ctx, newReservation("r3", "e1", "a@x.io", "2025-01-10", "09:00 am", now)), ErrConflict)
}

func TestCommitConcurrentSameKey(t *testing.T) {
	db := openTestDB(t)
	createExpert(t, NewExpertRepo(db), "e1", "A", "Legal", 4, nil)
	repo := NewReservationRepo(db)

	const attempts = 12
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		ok        int
		conflicts int
	)
	start := make(chan struct{})
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			err := repo.Commit(context.Background(),
				newReservation(fmt.Sprintf("r%d", i), "e1", "a@x.io", "2025-01-10", "09:00 AM", time.Now()))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case assert.ErrorIs(t, err, ErrConflict):
				conflicts++
			}
		}(i)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, attempts-1, conflicts)

	var rows int
	require.NoError(t, db.Get(&rows, `SELECT COUNT(*) FROM reservations`))
	assert.Equal(t, 1, rows)
}

func TestUpdateStatus(t *testing.T) {
	db := openTestDB(t)
	createExpert(t, NewExpertRepo(db), "e1", "A", "Legal", 4, nil)
	repo := NewReservationRepo(db)
	ctx := context.Background()
	created := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Commit(ctx, newReservation("r1", "e1", "a@x.io", "2025-01-10", "09:00 AM", created)))

	later := created.Add(time.Hour)
	got, err := repo.UpdateStatus(ctx, "r1", model.StatusConfirmed, later)
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, got.Status)
	assert.Equal(t, later, got.UpdatedAt)
	assert.Equal(t, created, got.CreatedAt)

	// writing the same value again still finds the row
	got, err = repo.UpdateStatus(ctx, "r1", model.StatusConfirmed, later)
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, got.Status)

	_, err = repo.UpdateStatus(ctx, "nope", model.StatusCompleted, later)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListByEmailNewestFirstWithExpert(t *testing.T) {
	db := openTestDB(t)
	experts := NewExpertRepo(db)
	createExpert(t, experts, "e1", "Rohit Verma", "Finance", 4.7, nil)
	createExpert(t, experts, "e2", "Priya Sharma", "Design", 4.8, nil)
	repo := NewReservationRepo(db)
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Commit(ctx, newReservation("old", "e1", "a@x.io", "2025-01-10", "09:00 AM", base)))
	require.NoError(t, repo.Commit(ctx, newReservation("new", "e2", "a@x.io", "2025-01-10", "09:00 AM", base.Add(time.Minute))))
	require.NoError(t, repo.Commit(ctx, newReservation("other", "e1", "b@x.io", "2025-01-10", "10:00 AM", base)))

	got, err := repo.ListByEmail(ctx, "a@x.io")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "new", got[0].ID)
	assert.Equal(t, model.ExpertSummary{Name: "Priya Sharma", Category: "Design", Photo: "https://example.com/e2.jpg"}, got[0].Expert)
	assert.Equal(t, "old", got[1].ID)
	assert.Equal(t, "Rohit Verma", got[1].Expert.Name)

	none, err := repo.ListByEmail(ctx, "nobody@x.io")
	require.NoError(t, err)
	assert.Empty(t, none)
}
