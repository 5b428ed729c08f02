package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediflow/clinic-api/internal/model"
)

func june(day int) time.Time {
	return time.Date(2024, time.June, day, 0, 0, 0, 0, time.UTC)
}

func TestDaysInMonth(t *testing.T) {
	days := DaysInMonth(june(15))
	require.Len(t, days, 30)
	assert.Equal(t, 1, days[0].Day())
	assert.Equal(t, 30, days[29].Day())

	// Leap February.
	assert.Len(t, DaysInMonth(time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)), 29)
	assert.Len(t, DaysInMonth(time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC)), 28)
}

func TestSameDayIgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2024, time.June, 10, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2024, time.June, 10, 23, 30, 0, 0, time.UTC)
	assert.True(t, SameDay(morning, evening))
	assert.False(t, SameDay(morning, june(11)))
}

func TestAppointmentsOnDate(t *testing.T) {
	appointments := []model.Appointment{
		{ID: 1, Date: "2024-06-10", Time: "10:00"},
		{ID: 2, Date: "2024-06-11", Time: "09:00"},
		{ID: 3, Date: "2024-06-10", Time: "08:00"},
		{ID: 4, Date: "not-a-date"},
		{ID: 5, Date: "2024-06-10", Time: "14:00"},
	}

	daily := AppointmentsOnDate(appointments, june(10))
	require.Len(t, daily, 3)
	// Insertion order is preserved, not time-of-day order.
	assert.Equal(t, []int{1, 3, 5}, []int{daily[0].ID, daily[1].ID, daily[2].ID})

	assert.Equal(t, []model.Appointment{}, AppointmentsOnDate(appointments, june(12)))
}

func TestMonthGridBucketsEachAppointmentOnce(t *testing.T) {
	appointments := []model.Appointment{
		{ID: 1, Date: "2024-06-03"},
		{ID: 2, Date: "2024-06-10"},
		{ID: 3, Date: "2024-06-10"},
		{ID: 4, Date: "2024-06-10"},
		{ID: 5, Date: "2024-07-01"}, // out of month
		{ID: 6, Date: "garbage"},
	}

	cells := MonthGrid(appointments, june(1))
	require.Len(t, cells, 30)

	total := 0
	for _, c := range cells {
		total += c.Count
	}
	assert.Equal(t, 4, total)

	tenth := cells[9]
	assert.Equal(t, "2024-06-10", tenth.Date)
	assert.Equal(t, 10, tenth.Day)
	assert.Equal(t, 3, tenth.Count)
	require.Len(t, tenth.Preview, PreviewSize)
	assert.Equal(t, 2, tenth.Preview[0].ID)
	assert.Equal(t, 3, tenth.Preview[1].ID)
	assert.Equal(t, 1, tenth.Overflow)

	empty := cells[1]
	assert.Equal(t, 0, empty.Count)
	assert.Equal(t, 0, empty.Overflow)
	assert.Empty(t, empty.Preview)
}

func TestDayView(t *testing.T) {
	appointments := []model.Appointment{
		{ID: 1, Date: "2024-06-10"},
		{ID: 2, Date: "2024-06-11"},
	}
	view := Day(appointments, june(10))
	assert.Equal(t, "2024-06-10", view.Date)
	require.Len(t, view.Appointments, 1)
	assert.Equal(t, 1, view.Appointments[0].ID)
}
