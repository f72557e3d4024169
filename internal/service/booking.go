// Package service implements slot reservation: booking a slot, changing a
// reservation's status, projecting an expert's availability and announcing
// committed bookings to viewers.
package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Tushar07778/expert-session-booking/internal/model"
	"github.com/Tushar07778/expert-session-booking/internal/repository"
)

// ExpertStore is the read side of the expert catalog.
type ExpertStore interface {
	GetByID(ctx context.Context, id string) (*model.Expert, error)
	Catalog(ctx context.Context, expertID string) ([]model.CatalogDay, error)
	List(ctx context.Context, q repository.ExpertListQuery) ([]model.Expert, int64, error)
}

// ReservationStore persists reservations. Commit must reject a second
// reservation for the same expert, date and slot with repository.ErrConflict.
type ReservationStore interface {
	Commit(ctx context.Context, res *model.Reservation) error
	UpdateStatus(ctx context.Context, id string, status model.Status, at time.Time) (*model.Reservation, error)
	ReservedKeys(ctx context.Context, expertID string) ([]model.SlotKey, error)
	ListByEmail(ctx context.Context, email string) ([]model.ReservationDetail, error)
}

// EventPublisher receives slot_booked events after a commit.
type EventPublisher interface {
	Publish(ctx context.Context, ev model.SlotBookedEvent) error
}

// Options tune a BookingService. Zero values select defaults.
type Options struct {
	PublishTimeout time.Duration
	Now            func() time.Time
	NewID          func() string
}

// BookingService orchestrates booking attempts. It holds no locks: the
// reservation store's unique key is the only synchronization point between
// concurrent attempts for the same slot.
type BookingService struct {
	experts        ExpertStore
	reservations   ReservationStore
	events         EventPublisher
	publishTimeout time.Duration
	now            func() time.Time
	newID          func() string

	inflight sync.WaitGroup
}

// New returns a BookingService. events may be nil, in which case nothing
// is announced.
func New(experts ExpertStore, reservations ReservationStore, events EventPublisher, opts Options) *BookingService {
	s := &BookingService{
		experts:        experts,
		reservations:   reservations,
		events:         events,
		publishTimeout: opts.PublishTimeout,
		now:            opts.Now,
		newID:          opts.NewID,
	}
	if s.publishTimeout <= 0 {
		s.publishTimeout = 3 * time.Second
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s
}

// BookSlot validates req, checks the expert exists and commits a Pending
// reservation. On success a slot_booked event is published in the
// background; a publish failure is logged and never affects the result.
// A Conflict is final for that key and is not retried.
func (s *BookingService) BookSlot(ctx context.Context, req BookingRequest) (*model.Reservation, error) {
	req = req.normalized()
	if err := req.validate(); err != nil {
		return nil, err
	}
	if _, err := s.expert(ctx, req.ExpertID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	res := &model.Reservation{
		ID:        s.newID(),
		ExpertID:  req.ExpertID,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Date:      req.Date,
		Slot:      req.Slot,
		Notes:     req.Notes,
		Status:    model.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.reservations.Commit(ctx, res); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrSlotTaken
		}
		return nil, unavailable("commit reservation", err)
	}

	s.announce(ctx, res)
	return res, nil
}

// announce publishes off the request path. The publish context survives
// the request's cancellation but is bounded by publishTimeout.
func (s *BookingService) announce(ctx context.Context, res *model.Reservation) {
	if s.events == nil {
		return
	}
	ev := model.SlotBookedEvent{
		ExpertID:      res.ExpertID,
		Date:          res.Date,
		Slot:          res.Slot,
		ReservationID: res.ID,
		BookedAt:      res.CreatedAt,
	}
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)
		defer cancel()
		if err := s.events.Publish(pctx, ev); err != nil {
			log.Printf("booking: publish %s reservation_id=%s failed: %v", model.TopicSlotBooked, ev.ReservationID, err)
		}
	}()
}

// Wait blocks until every background publish has finished.
func (s *BookingService) Wait() { s.inflight.Wait() }

// UpdateStatus sets a reservation's status. Any accepted status may follow
// any other. An unknown status is rejected before the store is touched.
func (s *BookingService) UpdateStatus(ctx context.Context, id, status string) (*model.Reservation, error) {
	id = strings.TrimSpace(id)
	v := &ValidationError{}
	if id == "" {
		v.add("id", "id is required")
	}
	st, ok := model.ParseStatus(strings.TrimSpace(status))
	if !ok {
		v.add("status", "status must be one of: Pending, Confirmed, Completed")
	}
	if err := v.orNil(); err != nil {
		return nil, err
	}

	res, err := s.reservations.UpdateStatus(ctx, id, st, s.now().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, unavailable("update reservation status", err)
	}
	return res, nil
}

// ReservationsByEmail lists a booker's reservations, newest first. The
// email is matched after the same normalization applied at booking time.
func (s *BookingService) ReservationsByEmail(ctx context.Context, email string) ([]model.ReservationDetail, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, &ValidationError{Fields: []FieldError{{Field: "email", Message: "email is required"}}}
	}
	items, err := s.reservations.ListByEmail(ctx, email)
	if err != nil {
		return nil, unavailable("list reservations by email", err)
	}
	return items, nil
}

func (s *BookingService) expert(ctx context.Context, id string) (*model.Expert, error) {
	e, err := s.experts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExpertNotFound
		}
		return nil, unavailable("load expert", err)
	}
	return e, nil
}
