// Package calendar projects an appointment collection onto monthly
// grid structures. Everything here is pure: dates are compared as
// timezone-naive calendar days and appointments keep the store's
// insertion order inside each day bucket.
package calendar

import (
	"time"

	"github.com/mediflow/clinic-api/internal/model"
)

// PreviewSize is how many appointments a grid cell lists before
// collapsing the rest into an overflow count.
const PreviewSize = 2

// DaysInMonth returns every calendar day of the month containing ref,
// first to last, ascending.
func DaysInMonth(ref time.Time) []time.Time {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	days := make([]time.Time, 0, 31)
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// SameDay reports calendar-date equality, ignoring time of day and
// timezone offsets.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// IsToday reports whether day is the current calendar day.
func IsToday(day time.Time) bool {
	return SameDay(day, time.Now())
}

// AppointmentsOnDate returns the subset of appointments falling on the
// given calendar day, in their original order. Appointments with an
// unparsable date never match.
func AppointmentsOnDate(appointments []model.Appointment, day time.Time) []model.Appointment {
	out := []model.Appointment{}
	for _, a := range appointments {
		d, err := time.Parse(model.DateLayout, a.Date)
		if err != nil {
			continue
		}
		if SameDay(d, day) {
			out = append(out, a)
		}
	}
	return out
}

// Cell is one day of the monthly grid: the day's appointment count, a
// short preview in insertion order and the +N overflow beyond it.
type Cell struct {
	Date         string              `json:"date"`
	Day          int                 `json:"day"`
	Today        bool                `json:"today"`
	Count        int                 `json:"count"`
	Preview      []model.Appointment `json:"preview"`
	Overflow     int                 `json:"overflow"`
	Appointments []model.Appointment `json:"-"`
}

// MonthGrid buckets the appointments into one cell per day of ref's
// month.
func MonthGrid(appointments []model.Appointment, ref time.Time) []Cell {
	days := DaysInMonth(ref)
	cells := make([]Cell, 0, len(days))
	for _, day := range days {
		daily := AppointmentsOnDate(appointments, day)
		preview := daily
		if len(preview) > PreviewSize {
			preview = preview[:PreviewSize]
		}
		cells = append(cells, Cell{
			Date:         day.Format(model.DateLayout),
			Day:          day.Day(),
			Today:        IsToday(day),
			Count:        len(daily),
			Preview:      preview,
			Overflow:     max(0, len(daily)-PreviewSize),
			Appointments: daily,
		})
	}
	return cells
}

// DayView is the selected-day panel next to the grid.
type DayView struct {
	Date         string              `json:"date"`
	Today        bool                `json:"today"`
	Appointments []model.Appointment `json:"appointments"`
}

// Day builds the selected-day view for the given calendar day.
func Day(appointments []model.Appointment, day time.Time) DayView {
	return DayView{
		Date:         day.Format(model.DateLayout),
		Today:        IsToday(day),
		Appointments: AppointmentsOnDate(appointments, day),
	}
}
