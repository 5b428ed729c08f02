package model

// Appointment statuses the display layer knows about. The status field
// itself is an open string; anything unrecognized falls back to the
// default display category.
const (
	StatusScheduled = "Scheduled"
	StatusConfirmed = "Confirmed"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
	StatusNoShow    = "No-show"
	StatusPending   = "Pending"
	StatusActive    = "Active"
	StatusInactive  = "Inactive"
)

// DefaultAppointmentStatus is assigned when a create request carries
// no status.
const DefaultAppointmentStatus = StatusActive

// DateLayout is the calendar-date format used by Date fields across
// all entities. Dates are timezone-naive calendar days.
const DateLayout = "2006-01-02"

type Appointment struct {
	ID           int    `json:"Id"`
	Name         string `json:"Name"`
	PatientID    int    `json:"patient_id"`
	PatientName  string `json:"patient_name"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Duration     int    `json:"duration"`
	Type         string `json:"type"`
	Status       string `json:"status"`
	Practitioner string `json:"practitioner"`
	Notes        string `json:"notes"`
}

func (a Appointment) EntityID() int { return a.ID }

func (a Appointment) WithID(id int) Appointment {
	a.ID = id
	return a
}

// AppointmentPatch is a shallow, field-replacing patch, same contract
// as PatientPatch.
type AppointmentPatch struct {
	Name         *string `json:"Name"`
	PatientID    *int    `json:"patient_id"`
	PatientName  *string `json:"patient_name"`
	Date         *string `json:"date"`
	Time         *string `json:"time"`
	Duration     *int    `json:"duration"`
	Type         *string `json:"type"`
	Status       *string `json:"status"`
	Practitioner *string `json:"practitioner"`
	Notes        *string `json:"notes"`
}

func (p AppointmentPatch) Apply(base Appointment) Appointment {
	if p.Name != nil {
		base.Name = *p.Name
	}
	if p.PatientID != nil {
		base.PatientID = *p.PatientID
	}
	if p.PatientName != nil {
		base.PatientName = *p.PatientName
	}
	if p.Date != nil {
		base.Date = *p.Date
	}
	if p.Time != nil {
		base.Time = *p.Time
	}
	if p.Duration != nil {
		base.Duration = *p.Duration
	}
	if p.Type != nil {
		base.Type = *p.Type
	}
	if p.Status != nil {
		base.Status = *p.Status
	}
	if p.Practitioner != nil {
		base.Practitioner = *p.Practitioner
	}
	if p.Notes != nil {
		base.Notes = *p.Notes
	}
	return base
}
