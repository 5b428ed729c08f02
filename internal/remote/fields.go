package remote

import (
	"github.com/spf13/cast"

	"github.com/mediflow/clinic-api/pkg/errors"
)

// Call sites historically used either camelCase or the backend's
// flattened names. The wire always carries the flattened convention;
// when a payload carries both spellings, the flattened name wins.
var fieldAliases = map[string]string{
	"firstName":             "first_name",
	"lastName":              "last_name",
	"dateOfBirth":           "date_of_birth",
	"bloodType":             "blood_type",
	"patientId":             "patient_id",
	"patientName":           "patient_name",
	"appointmentId":         "appointment_id",
	"bloodPressure":         "blood_pressure",
	"heartRate":             "heart_rate",
	"emergencyContactName":  "emergency_contact_name",
	"emergencyContactPhone": "emergency_contact_phone",
}

// integer-typed wire fields, coerced before transmission
var intFields = map[string]bool{
	"Id":             true,
	"patient_id":     true,
	"appointment_id": true,
	"duration":       true,
	"heart_rate":     true,
}

// Normalize rewrites a wire record to the flattened naming convention
// and coerces integer-typed fields. Malformed numeric input is a
// caller error, not retried.
func Normalize(in map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	for camel, flat := range fieldAliases {
		v, ok := out[camel]
		if !ok {
			continue
		}
		delete(out, camel)
		if _, exists := out[flat]; !exists {
			out[flat] = v
		}
	}
	for field := range intFields {
		v, ok := out[field]
		if !ok || v == nil {
			continue
		}
		n, err := cast.ToIntE(v)
		if err != nil {
			return nil, errors.Validation("invalid numeric value for "+field, err)
		}
		out[field] = n
	}
	return out, nil
}

// flattenVitals spreads a nested vitals object into the flattened
// columns the backend stores. Already-flattened values win over the
// nested copy.
func flattenVitals(rec map[string]any) {
	nested, ok := rec["vitals"].(map[string]any)
	if !ok {
		delete(rec, "vitals")
		return
	}
	delete(rec, "vitals")
	for key, flat := range vitalsColumns {
		v, ok := nested[key]
		if !ok {
			continue
		}
		if _, exists := rec[flat]; !exists {
			rec[flat] = v
		}
	}
}

// vitals sub-fields accept both spellings on the way in
var vitalsColumns = map[string]string{
	"blood_pressure": "blood_pressure",
	"bloodPressure":  "blood_pressure",
	"heart_rate":     "heart_rate",
	"heartRate":      "heart_rate",
	"temperature":    "temperature",
	"weight":         "weight",
}
