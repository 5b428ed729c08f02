package remote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediflow/clinic-api/internal/model"
	"github.com/mediflow/clinic-api/pkg/errors"
)

func TestNormalizeRewritesCamelCase(t *testing.T) {
	out, err := Normalize(map[string]any{
		"firstName": "Jane",
		"lastName":  "Doe",
		"patientId": "12",
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane", out["first_name"])
	assert.Equal(t, "Doe", out["last_name"])
	assert.Equal(t, 12, out["patient_id"])
	assert.NotContains(t, out, "firstName")
	assert.NotContains(t, out, "patientId")
}

func TestNormalizeFlattenedWinsOverAlias(t *testing.T) {
	out, err := Normalize(map[string]any{
		"firstName":  "Alias",
		"first_name": "Flattened",
	})
	require.NoError(t, err)
	assert.Equal(t, "Flattened", out["first_name"])
	assert.NotContains(t, out, "firstName")
}

func TestNormalizeCoercesIntegerFields(t *testing.T) {
	out, err := Normalize(map[string]any{
		"duration":   "30",
		"heart_rate": float64(72),
		"Id":         7,
	})
	require.NoError(t, err)
	assert.Equal(t, 30, out["duration"])
	assert.Equal(t, 72, out["heart_rate"])
	assert.Equal(t, 7, out["Id"])
}

func TestNormalizeRejectsMalformedNumbers(t *testing.T) {
	_, err := Normalize(map[string]any{"duration": "half an hour"})
	assert.True(t, errors.IsValidation(err))
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	in := map[string]any{"firstName": "Jane"}
	_, err := Normalize(in)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"firstName": "Jane"}, in)
}

func TestRecordToWireFlattensVitalsAndJoinsSymptoms(t *testing.T) {
	wire, err := recordToWire(model.MedicalRecord{
		PatientName: "Jane Doe",
		Date:        "2024-06-10",
		Diagnosis:   "Hypertension",
		Symptoms:    []string{"headache", "dizziness"},
		Vitals:      model.Vitals{BloodPressure: "140/90", HeartRate: 82, Temperature: 36.8, Weight: 81.5},
		PatientID:   3,
	}, 0)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe - 2024-06-10", wire["Name"])
	assert.Equal(t, "headache,dizziness", wire["symptoms"])
	assert.Equal(t, "140/90", wire["blood_pressure"])
	assert.Equal(t, 82, wire["heart_rate"])
	assert.Equal(t, 36.8, wire["temperature"])
	assert.Equal(t, 81.5, wire["weight"])
	assert.NotContains(t, wire, "vitals")
	assert.NotContains(t, wire, "Id")
}

func TestRecordToWireIncludesIDOnUpdate(t *testing.T) {
	wire, err := recordToWire(model.MedicalRecord{PatientName: "Jane Doe", Date: "2024-06-10"}, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, wire["Id"])
}

func TestAppointmentToWireComposesNameOnlyWhenEmpty(t *testing.T) {
	wire, err := appointmentToWire(model.Appointment{
		PatientName: "Jane Doe",
		Date:        "2024-06-10",
	}, 0)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe - 2024-06-10", wire["Name"])

	wire, err = appointmentToWire(model.Appointment{
		Name:        "Follow-up",
		PatientName: "Jane Doe",
		Date:        "2024-06-10",
	}, 0)
	require.NoError(t, err)
	assert.Equal(t, "Follow-up", wire["Name"])
}

func TestSplitResults(t *testing.T) {
	ok, failed := splitResults([]Result{
		{Success: true},
		{Success: false, Message: "conflict"},
		{Success: true},
	})
	assert.Len(t, ok, 2)
	require.Len(t, failed, 1)
	assert.Equal(t, "conflict", failed[0].Message)
}
