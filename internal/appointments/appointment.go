package appointments

import (
	"strings"
	"time"

	"github.com/abdaljehan03-maker/clinic-project/internal/clinic"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Appointment is one booked visit. The ID is assigned at booking time
// and is the only selector edits and deletes accept; positions in any
// listing are display artifacts. The json tags double as the on-disk
// store schema.
type Appointment struct {
	ID          string             `json:"id"`
	PatientName string             `json:"patient_name"`
	Phone       string             `json:"phone"`
	Date        string             `json:"date"`
	TimeSlot    string             `json:"time_slot"`
	Treatments  []clinic.Selection `json:"treatments"`
}

// normalize trims the free-text fields in place.
func (a *Appointment) normalize() {
	a.PatientName = strings.TrimSpace(a.PatientName)
	a.Phone = strings.TrimSpace(a.Phone)
	a.Date = strings.TrimSpace(a.Date)
	a.TimeSlot = strings.TrimSpace(a.TimeSlot)
}

// validate enforces the booking rules shared by Book and Edit: all
// fields present, the date well-formed and not in the past relative to
// today, the time slot well-formed, and at least one treatment.
func (a *Appointment) validate(today time.Time) error {
	if a.PatientName == "" || a.Phone == "" || a.Date == "" || a.TimeSlot == "" {
		return clinic.Invalidf("all appointment fields are required")
	}
	date, err := time.ParseInLocation(dateLayout, a.Date, today.Location())
	if err != nil {
		return clinic.Invalidf("invalid date %q, use YYYY-MM-DD", a.Date)
	}
	if date.Before(truncateToDay(today)) {
		return clinic.Invalidf("appointment date cannot be in the past")
	}
	if _, err := time.Parse(timeLayout, a.TimeSlot); err != nil {
		return clinic.Invalidf("invalid time slot %q, use HH:MM", a.TimeSlot)
	}
	if len(a.Treatments) == 0 {
		return clinic.Invalidf("at least one treatment is required")
	}
	for _, t := range a.Treatments {
		if strings.TrimSpace(t.Name) == "" || t.Price < 0 {
			return clinic.Invalidf("invalid treatment selection")
		}
	}
	return nil
}

// IsUpcoming reports whether the appointment is dated today or later.
// Unparseable dates, possible in a hand-edited store file, are never
// upcoming; they stay in the collection but out of the view.
func (a *Appointment) IsUpcoming(today time.Time) bool {
	date, err := time.ParseInLocation(dateLayout, a.Date, today.Location())
	if err != nil {
		return false
	}
	return !date.Before(truncateToDay(today))
}

// Total sums the treatment prices booked for the visit.
func (a *Appointment) Total() float64 {
	var sum float64
	for _, t := range a.Treatments {
		sum += t.Price
	}
	return sum
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
