package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediflow/clinic-api/internal/model"
)

var reportNow = time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)

func sampleAppointments() []model.Appointment {
	return []model.Appointment{
		{ID: 1, Date: "2024-06-10", Status: model.StatusCompleted},
		{ID: 2, Date: "2024-06-10", Status: model.StatusCancelled},
		{ID: 3, Date: "2024-06-11", Status: model.StatusCompleted},
		{ID: 4, Date: "2024-06-12", Status: model.StatusScheduled},
		{ID: 5, Date: "2024-06-13", Status: model.StatusPending},
		{ID: 6, Date: "2024-06-14", Status: model.StatusNoShow},
	}
}

func TestCountStatuses(t *testing.T) {
	counts := CountStatuses(sampleAppointments())
	assert.Equal(t, 6, counts.Total)
	assert.Equal(t, 2, counts.Completed)
	assert.Equal(t, 1, counts.Cancelled)
}

func TestSuccessRate(t *testing.T) {
	assert.Equal(t, 33, SuccessRate(StatusCounts{Total: 6, Completed: 2}))
	assert.Equal(t, 67, SuccessRate(StatusCounts{Total: 3, Completed: 2}))
	assert.Equal(t, 100, SuccessRate(StatusCounts{Total: 4, Completed: 4}))
	assert.Equal(t, 0, SuccessRate(StatusCounts{}))
}

func TestTopDiagnoses(t *testing.T) {
	records := []model.MedicalRecord{
		{Diagnosis: "Hypertension"},
		{Diagnosis: "Migraine"},
		{Diagnosis: "Hypertension"},
		{Diagnosis: "Type 2 Diabetes"},
		{Diagnosis: "Migraine"},
		{Diagnosis: "Hypertension"},
		{Diagnosis: "Asthma"},
		{Diagnosis: "Bronchitis"},
		{Diagnosis: "Eczema"},
	}

	top := TopDiagnoses(records, 5)
	require.Len(t, top, 5)
	assert.Equal(t, DiagnosisCount{"Hypertension", 3}, top[0])
	assert.Equal(t, DiagnosisCount{"Migraine", 2}, top[1])
	// The four singletons tie; first-encountered order decides.
	assert.Equal(t, "Type 2 Diabetes", top[2].Diagnosis)
	assert.Equal(t, "Asthma", top[3].Diagnosis)
	assert.Equal(t, "Bronchitis", top[4].Diagnosis)
}

func TestTopDiagnosesEmpty(t *testing.T) {
	assert.Empty(t, TopDiagnoses(nil, 5))
}

func TestAgeHistogram(t *testing.T) {
	patients := []model.Patient{
		{DateOfBirth: "2010-05-01"}, // 14
		{DateOfBirth: "1999-03-15"}, // 25
		{DateOfBirth: "1994-12-31"}, // 30, calendar-year difference
		{DateOfBirth: "1980-07-20"}, // 44
		{DateOfBirth: "1965-01-02"}, // 59
		{DateOfBirth: "1949-06-10"}, // 75
		{DateOfBirth: "bad-date"},   // counts as age 0
	}

	hist := AgeHistogram(patients, reportNow)
	assert.Equal(t, 2, hist["Under 18"])
	assert.Equal(t, 1, hist["18-30"])
	assert.Equal(t, 2, hist["31-50"])
	assert.Equal(t, 1, hist["51-65"])
	assert.Equal(t, 1, hist["65+"])
}

func TestAgeHistogramEmptyKeepsAllBands(t *testing.T) {
	hist := AgeHistogram(nil, reportNow)
	require.Len(t, hist, len(AgeBands))
	for _, band := range AgeBands {
		assert.Equal(t, 0, hist[band], band)
	}
}

func TestSummarize(t *testing.T) {
	patients := []model.Patient{{DateOfBirth: "1990-01-01"}}
	records := []model.MedicalRecord{{Diagnosis: "Hypertension"}, {Diagnosis: "Hypertension"}}

	s := Summarize(patients, sampleAppointments(), records, reportNow)
	assert.Equal(t, 1, s.TotalPatients)
	assert.Equal(t, 6, s.TotalAppointments)
	assert.Equal(t, 2, s.TotalRecords)
	assert.Equal(t, 2, s.Completed)
	assert.Equal(t, 1, s.Cancelled)
	assert.Equal(t, 33, s.SuccessRate)
	require.Len(t, s.TopDiagnoses, 1)
	assert.Equal(t, DiagnosisCount{"Hypertension", 2}, s.TopDiagnoses[0])
}

func TestNewOverview(t *testing.T) {
	o := NewOverview(nil, sampleAppointments(), nil, reportNow)
	require.Len(t, o.TodaysAppointments, 2)
	assert.Equal(t, 1, o.TodaysAppointments[0].ID)
	assert.Equal(t, 2, o.TodaysAppointments[1].ID)
	require.Len(t, o.TomorrowsAppointments, 1)
	assert.Equal(t, 3, o.TomorrowsAppointments[0].ID)
}
