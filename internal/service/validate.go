package service

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Column widths of the reservations table.
const (
	maxNameLen  = 120
	maxEmailLen = 254
	maxSlotLen  = 16
	maxNotesLen = 2000
)

var (
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	phonePattern = regexp.MustCompile(`^\d{10}$`)
)

// BookingRequest is the input of BookSlot.
type BookingRequest struct {
	ExpertID string `json:"expert_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Date     string `json:"date"`
	Slot     string `json:"slot"`
	Notes    string `json:"notes"`
}

// normalized trims every field and lower-cases the email.
func (r BookingRequest) normalized() BookingRequest {
	return BookingRequest{
		ExpertID: strings.TrimSpace(r.ExpertID),
		Name:     strings.TrimSpace(r.Name),
		Email:    normalizeEmail(r.Email),
		Phone:    strings.TrimSpace(r.Phone),
		Date:     strings.TrimSpace(r.Date),
		Slot:     strings.TrimSpace(r.Slot),
		Notes:    strings.TrimSpace(r.Notes),
	}
}

// validate checks every field and reports all violations at once.
func (r BookingRequest) validate() error {
	v := &ValidationError{}
	if r.ExpertID == "" {
		v.add("expert_id", "expert_id is required")
	}
	switch {
	case r.Name == "":
		v.add("name", "name is required")
	case utf8.RuneCountInString(r.Name) > maxNameLen:
		v.add("name", fmt.Sprintf("name must be at most %d characters", maxNameLen))
	}
	switch {
	case !emailPattern.MatchString(r.Email):
		v.add("email", "email must be a valid email address")
	case utf8.RuneCountInString(r.Email) > maxEmailLen:
		v.add("email", fmt.Sprintf("email must be at most %d characters", maxEmailLen))
	}
	if !phonePattern.MatchString(r.Phone) {
		v.add("phone", "phone must be exactly 10 digits")
	}
	switch {
	case r.Date == "":
		v.add("date", "date is required")
	case !isDate(r.Date):
		v.add("date", "date must be a calendar date in YYYY-MM-DD form")
	}
	switch {
	case r.Slot == "":
		v.add("slot", "slot is required")
	case utf8.RuneCountInString(r.Slot) > maxSlotLen:
		v.add("slot", fmt.Sprintf("slot must be at most %d characters", maxSlotLen))
	}
	if utf8.RuneCountInString(r.Notes) > maxNotesLen {
		v.add("notes", fmt.Sprintf("notes must be at most %d characters", maxNotesLen))
	}
	return v.orNil()
}

// isDate accepts exactly YYYY-MM-DD naming a real day.
func isDate(s string) bool {
	if len(s) != len("2006-01-02") {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
