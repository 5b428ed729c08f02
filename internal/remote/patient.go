package remote

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mediflow/clinic-api/internal/model"
	"github.com/mediflow/clinic-api/internal/store"
	"github.com/mediflow/clinic-api/pkg/errors"
	"github.com/mediflow/clinic-api/pkg/logger"
)

const patientTable = "patient"

var patientFields = []Field{
	Col("Name"),
	Col("first_name"),
	Col("last_name"),
	Col("date_of_birth"),
	Col("gender"),
	Col("phone"),
	Col("email"),
	Col("address"),
	Col("blood_type"),
	Col("allergies"),
	Col("emergency_contact_name"),
	Col("emergency_contact_phone"),
}

// wirePatient is the flattened row shape: allergies comma-joined, the
// emergency contact spread into columns.
type wirePatient struct {
	ID                    int    `json:"Id"`
	FirstName             string `json:"first_name"`
	LastName              string `json:"last_name"`
	DateOfBirth           string `json:"date_of_birth"`
	Gender                string `json:"gender"`
	Phone                 string `json:"phone"`
	Email                 string `json:"email"`
	Address               string `json:"address"`
	BloodType             string `json:"blood_type"`
	Allergies             string `json:"allergies"`
	EmergencyContactName  string `json:"emergency_contact_name"`
	EmergencyContactPhone string `json:"emergency_contact_phone"`
}

func (w wirePatient) toModel() model.Patient {
	return model.Patient{
		ID:          w.ID,
		FirstName:   w.FirstName,
		LastName:    w.LastName,
		DateOfBirth: w.DateOfBirth,
		Gender:      w.Gender,
		Phone:       w.Phone,
		Email:       w.Email,
		Address:     w.Address,
		BloodType:   w.BloodType,
		Allergies:   model.SplitCSV(w.Allergies),
		EmergencyContact: model.EmergencyContact{
			Name:  w.EmergencyContactName,
			Phone: w.EmergencyContactPhone,
		},
	}
}

// Patients maps the patient store contract onto the remote table
// backend.
type Patients struct {
	client *Client
	log    *logger.Logger
}

func NewPatients(client *Client, log *logger.Logger) *Patients {
	return &Patients{client: client, log: log.WithComponent("remote.patient")}
}

func (p *Patients) List(ctx context.Context) (store.Snapshot[model.Patient], error) {
	env, err := p.client.FetchRecords(ctx, patientTable, Params{Fields: patientFields})
	if err != nil {
		p.log.Error(err, "failed to fetch patients")
		p.client.countDegraded(patientTable)
		return store.Degraded[model.Patient](err.Error()), nil
	}
	if !env.Success {
		p.log.Error(nil, "patient fetch unsuccessful", "message", env.Message)
		p.client.countDegraded(patientTable)
		return store.Degraded[model.Patient](env.Message), nil
	}

	var rows []wirePatient
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &rows); err != nil {
			p.log.Error(err, "failed to decode patients")
			p.client.countDegraded(patientTable)
			return store.Degraded[model.Patient]("malformed response"), nil
		}
	}
	items := make([]model.Patient, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toModel())
	}
	return store.Ok(items), nil
}

func (p *Patients) Get(ctx context.Context, id int) (model.Patient, error) {
	var zero model.Patient
	env, err := p.client.GetRecordByID(ctx, patientTable, id, Params{Fields: patientFields})
	if err != nil {
		p.log.Error(err, "failed to fetch patient", "id", id)
		return zero, errors.NotFound("patient", err)
	}
	if env == nil || len(env.Data) == 0 {
		return zero, errors.NotFound("patient", nil)
	}
	var row wirePatient
	if err := json.Unmarshal(env.Data, &row); err != nil {
		p.log.Error(err, "failed to decode patient", "id", id)
		return zero, errors.NotFound("patient", err)
	}
	return row.toModel(), nil
}

func (p *Patients) Create(ctx context.Context, patient model.Patient) (model.Patient, error) {
	rec, err := patientToWire(patient, 0)
	if err != nil {
		return model.Patient{}, err
	}
	env, err := p.client.CreateRecord(ctx, patientTable, Params{Records: []map[string]any{rec}})
	if err != nil {
		return model.Patient{}, errors.NewTransportDegraded("failed to create patient", err)
	}
	return p.firstResult(env, "create")
}

func (p *Patients) Update(ctx context.Context, id int, patch model.PatientPatch) (model.Patient, error) {
	existing, err := p.Get(ctx, id)
	if err != nil {
		return model.Patient{}, err
	}
	merged := patch.Apply(existing).WithID(id)
	rec, err := patientToWire(merged, id)
	if err != nil {
		return model.Patient{}, err
	}
	env, err := p.client.UpdateRecord(ctx, patientTable, Params{Records: []map[string]any{rec}})
	if err != nil {
		return model.Patient{}, errors.NewTransportDegraded("failed to update patient", err)
	}
	return p.firstResult(env, "update")
}

func (p *Patients) Delete(ctx context.Context, id int) (model.Patient, error) {
	existing, err := p.Get(ctx, id)
	if err != nil {
		return model.Patient{}, err
	}
	env, err := p.client.DeleteRecord(ctx, patientTable, Params{RecordIDs: []int{id}})
	if err != nil {
		return model.Patient{}, errors.NewTransportDegraded("failed to delete patient", err)
	}
	if !deletionSucceeded(env) {
		return model.Patient{}, errors.NewTransportDegraded("no patient was deleted", nil)
	}
	return existing, nil
}

func (p *Patients) firstResult(env *Envelope, op string) (model.Patient, error) {
	if !env.Success {
		return model.Patient{}, errors.NewTransportDegraded(env.Message, nil)
	}
	ok, failed := splitResults(env.Results)
	if len(failed) > 0 {
		p.log.Error(nil, fmt.Sprintf("failed to %s %d patient records", op, len(failed)))
	}
	if len(ok) == 0 {
		return model.Patient{}, errors.NewTransportDegraded(fmt.Sprintf("patient %s failed", op), nil)
	}
	var row wirePatient
	if err := json.Unmarshal(ok[0].Data, &row); err != nil {
		return model.Patient{}, errors.NewTransportDegraded("malformed record in response", err)
	}
	return row.toModel(), nil
}

func patientToWire(p model.Patient, id int) (map[string]any, error) {
	rec := map[string]any{
		"Name":                    p.FullName(),
		"first_name":              p.FirstName,
		"last_name":               p.LastName,
		"date_of_birth":           p.DateOfBirth,
		"gender":                  p.Gender,
		"phone":                   p.Phone,
		"email":                   p.Email,
		"address":                 p.Address,
		"blood_type":              p.BloodType,
		"allergies":               model.JoinCSV(p.Allergies),
		"emergency_contact_name":  p.EmergencyContact.Name,
		"emergency_contact_phone": p.EmergencyContact.Phone,
	}
	if id > 0 {
		rec["Id"] = id
	}
	return Normalize(rec)
}
