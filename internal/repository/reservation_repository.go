package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Tushar07778/expert-session-booking/internal/model"
)

// ReservationRepo is the durable reservation store. The unique index on
// (expert_id, session_date, time_slot) is the only thing that arbitrates
// between concurrent bookings of the same slot: Commit never reads before
// it writes.
type ReservationRepo struct {
	db *sqlx.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sqlx.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// ReservationRecord mirrors the schema of the reservations table. It is
// used internally by the repository when constructing or scanning rows.
// Business logic should use the model.Reservation type instead.
type ReservationRecord struct {
	ID        string `db:"id"`
	ExpertID  string `db:"expert_id"`
	Name      string `db:"name"`
	Email     string `db:"email"`
	Phone     string `db:"phone"`
	Date      string `db:"session_date"`
	Slot      string `db:"time_slot"`
	Notes     string `db:"notes"`
	Status    string `db:"status"`
	CreatedAt int64  `db:"created_at"`
	UpdatedAt int64  `db:"updated_at"`
}

func recordFrom(r *model.Reservation) ReservationRecord {
	return ReservationRecord{
		ID:        r.ID,
		ExpertID:  r.ExpertID,
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Date:      r.Date,
		Slot:      r.Slot,
		Notes:     r.Notes,
		Status:    string(r.Status),
		CreatedAt: toMillis(r.CreatedAt),
		UpdatedAt: toMillis(r.UpdatedAt),
	}
}

func (r ReservationRecord) toModel() model.Reservation {
	return model.Reservation{
		ID:        r.ID,
		ExpertID:  r.ExpertID,
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Date:      r.Date,
		Slot:      r.Slot,
		Notes:     r.Notes,
		Status:    model.Status(r.Status),
		CreatedAt: fromMillis(r.CreatedAt),
		UpdatedAt: fromMillis(r.UpdatedAt),
	}
}

const reservationColumns = `id, expert_id, name, email, phone, session_date, time_slot, notes, status, created_at, updated_at`

// Commit persists a new reservation. If another reservation already holds
// the same expert, date and slot the insert is rejected by the database
// and ErrConflict is returned; any other failure is returned as is.
// Timestamps are truncated to milliseconds, the stored precision.
func (r *ReservationRepo) Commit(ctx context.Context, res *model.Reservation) error {
	res.CreatedAt = res.CreatedAt.UTC().Truncate(time.Millisecond)
	res.UpdatedAt = res.UpdatedAt.UTC().Truncate(time.Millisecond)
	const q = `INSERT INTO reservations (` + reservationColumns + `)
		VALUES (:id, :expert_id, :name, :email, :phone, :session_date, :time_slot, :notes, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, q, recordFrom(res)); err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

// GetByID returns the reservation with the given id or ErrNotFound.
func (r *ReservationRepo) GetByID(ctx context.Context, id string) (*model.Reservation, error) {
	var rec ReservationRecord
	q := r.db.Rebind(`SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`)
	if err := r.db.GetContext(ctx, &rec, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	res := rec.toModel()
	return &res, nil
}

// UpdateStatus sets the status of a reservation and returns the updated
// row. The update and the read back share a transaction so the caller
// sees exactly what was written. ErrNotFound is returned for unknown ids.
func (r *ReservationRepo) UpdateStatus(ctx context.Context, id string, status model.Status, at time.Time) (*model.Reservation, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	result, err := tx.ExecContext(ctx,
		tx.Rebind(`UPDATE reservations SET status = ?, updated_at = ? WHERE id = ?`),
		string(status), toMillis(at), id)
	if err != nil {
		return nil, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNotFound
	}

	var rec ReservationRecord
	if err := tx.GetContext(ctx, &rec, tx.Rebind(`SELECT `+reservationColumns+` FROM reservations WHERE id = ?`), id); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	res := rec.toModel()
	return &res, nil
}

// ReservedKeys returns the (date, slot) pairs already booked for an expert.
func (r *ReservationRepo) ReservedKeys(ctx context.Context, expertID string) ([]model.SlotKey, error) {
	var rows []struct {
		Date string `db:"session_date"`
		Slot string `db:"time_slot"`
	}
	q := r.db.Rebind(`SELECT session_date, time_slot FROM reservations WHERE expert_id = ?`)
	if err := r.db.SelectContext(ctx, &rows, q, expertID); err != nil {
		return nil, err
	}
	keys := make([]model.SlotKey, 0, len(rows))
	for _, row := range rows {
		keys = append(keys, model.SlotKey{Date: row.Date, Slot: row.Slot})
	}
	return keys, nil
}

type reservationDetailRecord struct {
	ReservationRecord
	ExpertName     string `db:"expert_name"`
	ExpertCategory string `db:"expert_category"`
	ExpertPhoto    string `db:"expert_photo"`
}

// ListByEmail returns every reservation made with the given (already
// normalized) email, newest first, each joined with its expert's name,
// category and photo.
func (r *ReservationRepo) ListByEmail(ctx context.Context, email string) ([]model.ReservationDetail, error) {
	q := r.db.Rebind(`SELECT
			r.id, r.expert_id, r.name, r.email, r.phone, r.session_date, r.time_slot,
			r.notes, r.status, r.created_at, r.updated_at,
			e.name     AS expert_name,
			e.category AS expert_category,
			e.photo    AS expert_photo
		FROM reservations r
		JOIN experts e ON e.id = r.expert_id
		WHERE r.email = ?
		ORDER BY r.created_at DESC, r.id DESC`)
	var recs []reservationDetailRecord
	if err := r.db.SelectContext(ctx, &recs, q, email); err != nil {
		return nil, err
	}
	out := make([]model.ReservationDetail, 0, len(recs))
	for _, rec := range recs {
		out = append(out, model.ReservationDetail{
			Reservation: rec.ReservationRecord.toModel(),
			Expert: model.ExpertSummary{
				Name:     rec.ExpertName,
				Category: rec.ExpertCategory,
				Photo:    rec.ExpertPhoto,
			},
		})
	}
	return out, nil
}
