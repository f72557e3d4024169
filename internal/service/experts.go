package service

import (
	"context"
	"strings"

	"github.com/Tushar07778/expert-session-booking/internal/model"
	"github.com/Tushar07778/expert-session-booking/internal/repository"
)

const (
	defaultExpertLimit = 6
	maxExpertLimit     = 50
	maxExpertPage      = 10000
)

// ExpertQuery filters the expert listing. Page and Limit default to 1 and
// 6; Limit is capped at 50 and Page at 10000.
type ExpertQuery struct {
	Page     int
	Limit    int
	Search   string
	Category string
}

// ExpertPage is one page of the expert listing.
type ExpertPage struct {
	Items       []model.Expert `json:"items"`
	Total       int64          `json:"total"`
	Page        int            `json:"page"`
	PageSize    int            `json:"page_size"`
	TotalPages  int            `json:"total_pages"`
	HasNextPage bool           `json:"has_next_page"`
	HasPrevPage bool           `json:"has_prev_page"`
}

// ListExperts returns experts ordered by rating, best first.
func (s *BookingService) ListExperts(ctx context.Context, q ExpertQuery) (*ExpertPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Page > maxExpertPage {
		q.Page = maxExpertPage
	}
	if q.Limit < 1 {
		q.Limit = defaultExpertLimit
	}
	if q.Limit > maxExpertLimit {
		q.Limit = maxExpertLimit
	}
	q.Search = strings.TrimSpace(q.Search)
	q.Category = strings.TrimSpace(q.Category)
	if q.Category != "" && q.Category != "All" && !model.IsCategory(q.Category) {
		return nil, &ValidationError{Fields: []FieldError{{
			Field:   "category",
			Message: "category must be All or one of: " + strings.Join(model.Categories, ", "),
		}}}
	}

	items, total, err := s.experts.List(ctx, repository.ExpertListQuery{
		Search:   q.Search,
		Category: q.Category,
		Page:     q.Page,
		Limit:    q.Limit,
	})
	if err != nil {
		return nil, unavailable("list experts", err)
	}
	totalPages := int((total + int64(q.Limit) - 1) / int64(q.Limit))
	return &ExpertPage{
		Items:       items,
		Total:       total,
		Page:        q.Page,
		PageSize:    q.Limit,
		TotalPages:  totalPages,
		HasNextPage: q.Page < totalPages,
		HasPrevPage: q.Page > 1,
	}, nil
}

// GetExpert returns an expert with its availability view.
func (s *BookingService) GetExpert(ctx context.Context, id string) (*model.ExpertDetail, error) {
	id = strings.TrimSpace(id)
	e, err := s.expert(ctx, id)
	if err != nil {
		return nil, err
	}
	days, err := s.project(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.ExpertDetail{Expert: *e, AvailableSlots: days}, nil
}
