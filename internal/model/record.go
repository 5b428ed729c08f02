package model

import "strings"

// Vitals is the nested sub-record of a medical record. On the wire the
// remote backend stores these as flattened columns; the adapter nests
// and flattens them at the boundary. Patches replace Vitals wholesale,
// partial vitals updates are not supported.
type Vitals struct {
	BloodPressure string  `json:"blood_pressure"`
	HeartRate     int     `json:"heart_rate"`
	Temperature   float64 `json:"temperature"`
	Weight        float64 `json:"weight"`
}

type MedicalRecord struct {
	ID            int      `json:"Id"`
	Name          string   `json:"Name"`
	PatientID     int      `json:"patient_id"`
	AppointmentID int      `json:"appointment_id"`
	PatientName   string   `json:"patient_name"`
	Date          string   `json:"date"`
	Diagnosis     string   `json:"diagnosis"`
	Symptoms      []string `json:"symptoms"`
	Treatment     string   `json:"treatment"`
	Notes         string   `json:"notes"`
	Vitals        Vitals   `json:"vitals"`
}

func (r MedicalRecord) EntityID() int { return r.ID }

func (r MedicalRecord) WithID(id int) MedicalRecord {
	r.ID = id
	return r
}

// JoinCSV serializes a list field (symptoms, allergies) to its
// comma-joined wire representation. Embedded commas inside an entry
// are not supported.
func JoinCSV(items []string) string {
	return strings.Join(items, ",")
}

// SplitCSV parses the comma-joined wire representation back into a
// list, trimming whitespace around each entry so that "fever, cough"
// round-trips to ["fever", "cough"].
func SplitCSV(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

// MedicalRecordPatch is a shallow, field-replacing patch. Vitals is
// replaced as a unit when present.
type MedicalRecordPatch struct {
	Name          *string   `json:"Name"`
	PatientID     *int      `json:"patient_id"`
	AppointmentID *int      `json:"appointment_id"`
	PatientName   *string   `json:"patient_name"`
	Date          *string   `json:"date"`
	Diagnosis     *string   `json:"diagnosis"`
	Symptoms      *[]string `json:"symptoms"`
	Treatment     *string   `json:"treatment"`
	Notes         *string   `json:"notes"`
	Vitals        *Vitals   `json:"vitals"`
}

func (p MedicalRecordPatch) Apply(base MedicalRecord) MedicalRecord {
	if p.Name != nil {
		base.Name = *p.Name
	}
	if p.PatientID != nil {
		base.PatientID = *p.PatientID
	}
	if p.AppointmentID != nil {
		base.AppointmentID = *p.AppointmentID
	}
	if p.PatientName != nil {
		base.PatientName = *p.PatientName
	}
	if p.Date != nil {
		base.Date = *p.Date
	}
	if p.Diagnosis != nil {
		base.Diagnosis = *p.Diagnosis
	}
	if p.Symptoms != nil {
		base.Symptoms = *p.Symptoms
	}
	if p.Treatment != nil {
		base.Treatment = *p.Treatment
	}
	if p.Notes != nil {
		base.Notes = *p.Notes
	}
	if p.Vitals != nil {
		base.Vitals = *p.Vitals
	}
	return base
}
