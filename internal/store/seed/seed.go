// Package seed carries the fixed initial dataset the in-memory stores
// are loaded with at process start. The snapshot is ephemeral: a
// restart always resets to these fixtures.
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/mediflow/clinic-api/internal/model"
)

//go:embed patients.json
var patientsJSON []byte

//go:embed appointments.json
var appointmentsJSON []byte

//go:embed records.json
var recordsJSON []byte

func Patients() ([]model.Patient, error) {
	var out []model.Patient
	if err := json.Unmarshal(patientsJSON, &out); err != nil {
		return nil, fmt.Errorf("failed to parse patient seed: %w", err)
	}
	return out, nil
}

func Appointments() ([]model.Appointment, error) {
	var out []model.Appointment
	if err := json.Unmarshal(appointmentsJSON, &out); err != nil {
		return nil, fmt.Errorf("failed to parse appointment seed: %w", err)
	}
	return out, nil
}

func Records() ([]model.MedicalRecord, error) {
	var out []model.MedicalRecord
	if err := json.Unmarshal(recordsJSON, &out); err != nil {
		return nil, fmt.Errorf("failed to parse record seed: %w", err)
	}
	return out, nil
}
