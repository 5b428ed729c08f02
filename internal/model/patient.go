package model

// EmergencyContact is a value object on Patient. Patches replace it
// wholesale, there is no field-level merge into it.
type EmergencyContact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type Patient struct {
	ID               int              `json:"Id"`
	FirstName        string           `json:"first_name"`
	LastName         string           `json:"last_name"`
	DateOfBirth      string           `json:"date_of_birth"`
	Gender           string           `json:"gender"`
	Phone            string           `json:"phone"`
	Email            string           `json:"email"`
	Address          string           `json:"address"`
	BloodType        string           `json:"blood_type"`
	Allergies        []string         `json:"allergies"`
	EmergencyContact EmergencyContact `json:"emergency_contact"`
}

func (p Patient) EntityID() int { return p.ID }

func (p Patient) WithID(id int) Patient {
	p.ID = id
	return p
}

// FullName is the display name used by appointment and record
// denormalization.
func (p Patient) FullName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// PatientPatch is a shallow, field-replacing patch. A nil field leaves
// the existing value untouched; a non-nil field overwrites it. The
// identifier is never part of a patch.
type PatientPatch struct {
	FirstName        *string           `json:"first_name"`
	LastName         *string           `json:"last_name"`
	DateOfBirth      *string           `json:"date_of_birth"`
	Gender           *string           `json:"gender"`
	Phone            *string           `json:"phone"`
	Email            *string           `json:"email" binding:"omitempty,email"`
	Address          *string           `json:"address"`
	BloodType        *string           `json:"blood_type"`
	Allergies        *[]string         `json:"allergies"`
	EmergencyContact *EmergencyContact `json:"emergency_contact"`
}

func (p PatientPatch) Apply(base Patient) Patient {
	if p.FirstName != nil {
		base.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		base.LastName = *p.LastName
	}
	if p.DateOfBirth != nil {
		base.DateOfBirth = *p.DateOfBirth
	}
	if p.Gender != nil {
		base.Gender = *p.Gender
	}
	if p.Phone != nil {
		base.Phone = *p.Phone
	}
	if p.Email != nil {
		base.Email = *p.Email
	}
	if p.Address != nil {
		base.Address = *p.Address
	}
	if p.BloodType != nil {
		base.BloodType = *p.BloodType
	}
	if p.Allergies != nil {
		base.Allergies = *p.Allergies
	}
	if p.EmergencyContact != nil {
		base.EmergencyContact = *p.EmergencyContact
	}
	return base
}
