package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Tushar07778/expert-session-booking/internal/model"
)

// ExpertRepo reads the expert catalog. Experts and their slot catalogs are
// reference data; Create exists for the seed tool.
type ExpertRepo struct {
	db *sqlx.DB
}

// NewExpertRepo returns a new ExpertRepo bound to the given database.
func NewExpertRepo(db *sqlx.DB) *ExpertRepo { return &ExpertRepo{db: db} }

// ExpertRecord mirrors the experts table.
type ExpertRecord struct {
	ID         string  `db:"id"`
	Name       string  `db:"name"`
	Category   string  `db:"category"`
	Bio        string  `db:"bio"`
	Experience int     `db:"experience"`
	Rating     float64 `db:"rating"`
	Photo      string  `db:"photo"`
	CreatedAt  int64   `db:"created_at"`
	UpdatedAt  int64   `db:"updated_at"`
}

func (r ExpertRecord) toModel() model.Expert {
	return model.Expert{
		ID:         r.ID,
		Name:       r.Name,
		Category:   r.Category,
		Bio:        r.Bio,
		Experience: r.Experience,
		Rating:     r.Rating,
		Photo:      r.Photo,
		CreatedAt:  fromMillis(r.CreatedAt),
		UpdatedAt:  fromMillis(r.UpdatedAt),
	}
}

const expertColumns = `id, name, category, bio, experience, rating, photo, created_at, updated_at`

// ExpertListQuery defines filters and pagination for listing experts.
// Search matches the name case-insensitively; an empty Category or "All"
// disables the category filter.
type ExpertListQuery struct {
	Search   string
	Category string
	Page     int
	Limit    int
}

// GetByID returns the expert with the given id or ErrNotFound.
func (r *ExpertRepo) GetByID(ctx context.Context, id string) (*model.Expert, error) {
	var rec ExpertRecord
	q := r.db.Rebind(`SELECT ` + expertColumns + ` FROM experts WHERE id = ?`)
	if err := r.db.GetContext(ctx, &rec, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	e := rec.toModel()
	return &e, nil
}

// List returns one page of experts ordered by rating, best first, along
// with the total number of experts matching the filters.
func (r *ExpertRepo) List(ctx context.Context, q ExpertListQuery) ([]model.Expert, int64, error) {
	where := []string{}
	args := []any{}
	if s := strings.TrimSpace(q.Search); s != "" {
		where = append(where, "LOWER(name) LIKE ?")
		args = append(args, "%"+strings.ToLower(s)+"%")
	}
	if c := strings.TrimSpace(q.Category); c != "" && c != "All" {
		where = append(where, "category = ?")
		args = append(args, c)
	}
	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, r.db.Rebind(`SELECT COUNT(*) FROM experts WHERE `+cond), args...); err != nil {
		return nil, 0, err
	}

	limit := q.Limit
	offset := (q.Page - 1) * q.Limit
	if offset < 0 || int64(offset) >= total {
		return []model.Expert{}, total, nil
	}
	dataSQL := r.db.Rebind(`SELECT ` + expertColumns + `
		FROM experts
		WHERE ` + cond + `
		ORDER BY rating DESC, name ASC, id ASC
		LIMIT ? OFFSET ?`)
	argsData := append(append([]any{}, args...), limit, offset)

	var recs []ExpertRecord
	if err := r.db.SelectContext(ctx, &recs, dataSQL, argsData...); err != nil {
		return nil, 0, err
	}
	out := make([]model.Expert, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.toModel())
	}
	return out, total, nil
}

// Catalog returns the expert's offered dates and slots in offer order.
// An expert without slots yields an empty catalog, not an error.
func (r *ExpertRepo) Catalog(ctx context.Context, expertID string) ([]model.CatalogDay, error) {
	var rows []struct {
		Date string `db:"session_date"`
		Slot string `db:"time_slot"`
	}
	q := r.db.Rebind(`SELECT session_date, time_slot FROM expert_slots WHERE expert_id = ? ORDER BY position ASC`)
	if err := r.db.SelectContext(ctx, &rows, q, expertID); err != nil {
		return nil, err
	}
	days := []model.CatalogDay{}
	index := map[string]int{}
	for _, row := range rows {
		i, ok := index[row.Date]
		if !ok {
			i = len(days)
			index[row.Date] = i
			days = append(days, model.CatalogDay{Date: row.Date})
		}
		days[i].Slots = append(days[i].Slots, row.Slot)
	}
	return days, nil
}

// Count returns the number of experts in the catalog.
func (r *ExpertRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM experts`)
	return n, err
}

// Create inserts an expert together with its slot catalog in one
// transaction. Empty ID is rejected; timestamps are filled in when zero.
func (r *ExpertRepo) Create(ctx context.Context, e *model.Expert, catalog []model.CatalogDay) error {
	if e.ID == "" {
		return errors.New("expert id is required")
	}
	now := time.Now().UTC()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = e.CreatedAt
	}
	rec := ExpertRecord{
		ID: e.ID, Name: e.Name, Category: e.Category, Bio: e.Bio,
		Experience: e.Experience, Rating: e.Rating, Photo: e.Photo,
		CreatedAt: toMillis(e.CreatedAt), UpdatedAt: toMillis(e.UpdatedAt),
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.NamedExecContext(ctx, `INSERT INTO experts (`+expertColumns+`)
		VALUES (:id, :name, :category, :bio, :experience, :rating, :photo, :created_at, :updated_at)`, rec); err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	insertSlot := tx.Rebind(`INSERT INTO expert_slots (expert_id, session_date, time_slot, position) VALUES (?, ?, ?, ?)`)
	pos := 0
	for _, day := range catalog {
		for _, slot := range day.Slots {
			if _, err := tx.ExecContext(ctx, insertSlot, e.ID, day.Date, slot, pos); err != nil {
				if isUniqueViolation(err) {
					return ErrConflict
				}
				return err
			}
			pos++
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
