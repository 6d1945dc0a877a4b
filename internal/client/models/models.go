// Package models defines the data shapes exchanged with the salon booking
// API and a few helpers for the datetime strings it uses. Optional fields
// are pointers so "absent" survives a JSON round trip.
package models

import "time"

// Salon is a bookable location.
type Salon struct {
	ID      int64   `json:"id"`
	Title   string  `json:"title"`
	Address string  `json:"address"`
	Phone   *string `json:"phone"`
}

// Service is a procedure offered by a salon.
type Service struct {
	ID              int64   `json:"id"`
	Description     string  `json:"description"`
	DurationMinutes int     `json:"duration_minutes"`
	BasePrice       float64 `json:"base_price"`
}

// Master is a specialist working in a salon.
type Master struct {
	ID             int64   `json:"id"`
	Specialization string  `json:"specialization"`
	About          *string `json:"about"`
}

// Slot is one bookable interval as the server sends it, grouped per master.
type Slot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// MasterSlots is the per-master grouping of free slots returned by the API.
type MasterSlots struct {
	MasterID int64  `json:"master_id"`
	Slots    []Slot `json:"slots"`
}

// FlatSlot is a slot joined with its owning master, the unit the booking
// flow presents to the user. Start/End keep the server's raw datetime
// strings: the create-appointment payload must echo the chosen start
// verbatim.
type FlatSlot struct {
	Start    string
	End      string
	MasterID int64
}

// StartTime parses the slot's start datetime.
func (s FlatSlot) StartTime() (time.Time, error) {
	return ParseAPITime(s.Start)
}

// Label renders the slot as "HH:MM - HH:MM" for display.
func (s FlatSlot) Label() string {
	return FormatClock(s.Start) + " - " + FormatClock(s.End)
}

// Appointment is a server-owned booking record. The client only ever holds
// a read-only snapshot of these.
type Appointment struct {
	ID        int64   `json:"id"`
	SalonID   int64   `json:"salon_id"`
	MasterID  int64   `json:"master_id"`
	ServiceID int64   `json:"service_id"`
	DateTime  string  `json:"date_time"`
	EndTime   string  `json:"end_time"`
	Status    bool    `json:"status"`
	Comment   *string `json:"comment"`
}

// Upcoming reports whether the appointment starts after now. An unparseable
// start datetime counts as not upcoming.
func (a Appointment) Upcoming(now time.Time) bool {
	start, err := ParseAPITime(a.DateTime)
	if err != nil {
		return false
	}
	return start.After(now)
}

// CanCancel reports whether the appointment is still active and in the
// future, i.e. cancellable.
func (a Appointment) CanCancel(now time.Time) bool {
	return a.Status && a.Upcoming(now)
}

// AppointmentRequest is the payload for creating an appointment.
type AppointmentRequest struct {
	SalonID   int64   `json:"salon_id"`
	MasterID  int64   `json:"master_id"`
	ServiceID int64   `json:"service_id"`
	DateTime  string  `json:"date_time"`
	Comment   *string `json:"comment"`
}

// UserIdentity is the display data cached next to the access token.
// Best effort only, never authoritative.
type UserIdentity struct {
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
}

// SignUpRequest is the registration payload.
type SignUpRequest struct {
	Name     string  `json:"name"`
	Lastname *string `json:"lastname"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone"`
	Password string  `json:"password"`
}

// apiTimeLayouts lists the datetime layouts the API is known to emit,
// most specific first.
var apiTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseAPITime parses a datetime string in any of the layouts the API uses.
func ParseAPITime(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range apiTimeLayouts {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// FormatClock renders the HH:MM part of an API datetime. Strings that do
// not parse are returned unchanged so the user still sees something.
func FormatClock(s string) string {
	t, err := ParseAPITime(s)
	if err != nil {
		return s
	}
	return t.Format("15:04")
}

// FormatDateTime renders an API datetime as "02.01.2006 15:04" for lists
// and summaries. Unparseable strings are returned unchanged.
func FormatDateTime(s string) string {
	t, err := ParseAPITime(s)
	if err != nil {
		return s
	}
	return t.Format("02.01.2006 15:04")
}
