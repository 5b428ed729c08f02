// Package report derives summary statistics from store snapshots. All
// figures are recomputed on demand from the snapshots passed in, never
// maintained incrementally.
package report

import (
	"math"
	"sort"
	"time"

	"github.com/mediflow/clinic-api/internal/calendar"
	"github.com/mediflow/clinic-api/internal/model"
)

// TopDiagnosesLimit caps the diagnosis frequency list.
const TopDiagnosesLimit = 5

// Age bands for the patient histogram, in display order.
var AgeBands = []string{"Under 18", "18-30", "31-50", "51-65", "65+"}

// StatusCounts partitions appointments by exact status string. Unknown
// statuses land in no named bucket but still count toward Total.
type StatusCounts struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

func CountStatuses(appointments []model.Appointment) StatusCounts {
	counts := StatusCounts{Total: len(appointments)}
	for _, a := range appointments {
		switch a.Status {
		case model.StatusCompleted:
			counts.Completed++
		case model.StatusCancelled:
			counts.Cancelled++
		}
	}
	return counts
}

// SuccessRate is completed over total as a rounded integer percent,
// defined as 0 for an empty collection.
func SuccessRate(counts StatusCounts) int {
	if counts.Total == 0 {
		return 0
	}
	return int(math.Round(float64(counts.Completed) / float64(counts.Total) * 100))
}

// DiagnosisCount is one entry of the diagnosis frequency list.
type DiagnosisCount struct {
	Diagnosis string `json:"diagnosis"`
	Count     int    `json:"count"`
}

// TopDiagnoses counts occurrences of each distinct diagnosis string
// and returns the top n by descending count. Ties keep the order the
// diagnosis was first encountered in.
func TopDiagnoses(records []model.MedicalRecord, n int) []DiagnosisCount {
	counts := map[string]int{}
	order := []string{}
	for _, r := range records {
		if _, seen := counts[r.Diagnosis]; !seen {
			order = append(order, r.Diagnosis)
		}
		counts[r.Diagnosis]++
	}

	out := make([]DiagnosisCount, 0, len(order))
	for _, d := range order {
		out = append(out, DiagnosisCount{Diagnosis: d, Count: counts[d]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })

	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// AgeHistogram buckets patients into fixed age bands. Age is the
// calendar-year difference between now and the birth year, a
// deliberate simplification that ignores month and day. Every patient
// lands in exactly one band; unparsable birth dates count as age 0.
func AgeHistogram(patients []model.Patient, now time.Time) map[string]int {
	hist := make(map[string]int, len(AgeBands))
	for _, band := range AgeBands {
		hist[band] = 0
	}
	for _, p := range patients {
		age := 0
		if dob, err := time.Parse(model.DateLayout, p.DateOfBirth); err == nil {
			age = now.Year() - dob.Year()
		}
		switch {
		case age < 18:
			hist["Under 18"]++
		case age < 30:
			hist["18-30"]++
		case age < 50:
			hist["31-50"]++
		case age < 65:
			hist["51-65"]++
		default:
			hist["65+"]++
		}
	}
	return hist
}

// Summary is the full report payload.
type Summary struct {
	TotalPatients     int              `json:"total_patients"`
	TotalAppointments int              `json:"total_appointments"`
	TotalRecords      int              `json:"total_records"`
	Completed         int              `json:"completed_appointments"`
	Cancelled         int              `json:"cancelled_appointments"`
	SuccessRate       int              `json:"success_rate"`
	TopDiagnoses      []DiagnosisCount `json:"top_diagnoses"`
	AgeGroups         map[string]int   `json:"age_groups"`
	Degraded          bool             `json:"degraded,omitempty"`
}

// Summarize derives the report from the three snapshots.
func Summarize(patients []model.Patient, appointments []model.Appointment, records []model.MedicalRecord, now time.Time) Summary {
	counts := CountStatuses(appointments)
	return Summary{
		TotalPatients:     len(patients),
		TotalAppointments: counts.Total,
		TotalRecords:      len(records),
		Completed:         counts.Completed,
		Cancelled:         counts.Cancelled,
		SuccessRate:       SuccessRate(counts),
		TopDiagnoses:      TopDiagnoses(records, TopDiagnosesLimit),
		AgeGroups:         AgeHistogram(patients, now),
	}
}

// Overview is the dashboard payload: today's and tomorrow's schedule
// plus collection totals.
type Overview struct {
	TotalPatients         int                 `json:"total_patients"`
	TotalAppointments     int                 `json:"total_appointments"`
	TotalRecords          int                 `json:"total_records"`
	TodaysAppointments    []model.Appointment `json:"todays_appointments"`
	TomorrowsAppointments []model.Appointment `json:"tomorrows_appointments"`
	Degraded              bool                `json:"degraded,omitempty"`
}

// NewOverview derives the dashboard view for the given reference day.
func NewOverview(patients []model.Patient, appointments []model.Appointment, records []model.MedicalRecord, now time.Time) Overview {
	return Overview{
		TotalPatients:         len(patients),
		TotalAppointments:     len(appointments),
		TotalRecords:          len(records),
		TodaysAppointments:    calendar.AppointmentsOnDate(appointments, now),
		TomorrowsAppointments: calendar.AppointmentsOnDate(appointments, now.AddDate(0, 0, 1)),
	}
}
