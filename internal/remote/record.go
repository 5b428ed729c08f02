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

const recordTable = "record"

var recordFields = []Field{
	Col("Name"),
	Col("patient_name"),
	Col("date"),
	Col("diagnosis"),
	Col("symptoms"),
	Col("treatment"),
	Col("notes"),
	Col("blood_pressure"),
	Col("heart_rate"),
	Col("temperature"),
	Col("weight"),
	Ref("patient_id"),
	Ref("appointment_id"),
}

// wireRecord is the flattened row shape the backend stores: symptoms
// comma-joined, vitals spread into columns.
type wireRecord struct {
	ID            int     `json:"Id"`
	Name          string  `json:"Name"`
	PatientID     int     `json:"patient_id"`
	AppointmentID int     `json:"appointment_id"`
	PatientName   string  `json:"patient_name"`
	Date          string  `json:"date"`
	Diagnosis     string  `json:"diagnosis"`
	Symptoms      string  `json:"symptoms"`
	Treatment     string  `json:"treatment"`
	Notes         string  `json:"notes"`
	BloodPressure string  `json:"blood_pressure"`
	HeartRate     int     `json:"heart_rate"`
	Temperature   float64 `json:"temperature"`
	Weight        float64 `json:"weight"`
}

func (w wireRecord) toModel() model.MedicalRecord {
	return model.MedicalRecord{
		ID:            w.ID,
		Name:          w.Name,
		PatientID:     w.PatientID,
		AppointmentID: w.AppointmentID,
		PatientName:   w.PatientName,
		Date:          w.Date,
		Diagnosis:     w.Diagnosis,
		Symptoms:      model.SplitCSV(w.Symptoms),
		Treatment:     w.Treatment,
		Notes:         w.Notes,
		Vitals: model.Vitals{
			BloodPressure: w.BloodPressure,
			HeartRate:     w.HeartRate,
			Temperature:   w.Temperature,
			Weight:        w.Weight,
		},
	}
}

// Records maps the medical record store contract onto the remote table
// backend, nesting and flattening the vitals sub-record at the
// boundary.
type Records struct {
	client *Client
	log    *logger.Logger
}

func NewRecords(client *Client, log *logger.Logger) *Records {
	return &Records{client: client, log: log.WithComponent("remote.record")}
}

func (r *Records) List(ctx context.Context) (store.Snapshot[model.MedicalRecord], error) {
	env, err := r.client.FetchRecords(ctx, recordTable, Params{Fields: recordFields})
	if err != nil {
		r.log.Error(err, "failed to fetch records")
		r.client.countDegraded(recordTable)
		return store.Degraded[model.MedicalRecord](err.Error()), nil
	}
	if !env.Success {
		r.log.Error(nil, "record fetch unsuccessful", "message", env.Message)
		r.client.countDegraded(recordTable)
		return store.Degraded[model.MedicalRecord](env.Message), nil
	}

	var rows []wireRecord
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &rows); err != nil {
			r.log.Error(err, "failed to decode records")
			r.client.countDegraded(recordTable)
			return store.Degraded[model.MedicalRecord]("malformed response"), nil
		}
	}
	items := make([]model.MedicalRecord, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toModel())
	}
	return store.Ok(items), nil
}

func (r *Records) Get(ctx context.Context, id int) (model.MedicalRecord, error) {
	var zero model.MedicalRecord
	env, err := r.client.GetRecordByID(ctx, recordTable, id, Params{Fields: recordFields})
	if err != nil {
		r.log.Error(err, "failed to fetch record", "id", id)
		return zero, errors.NotFound("record", err)
	}
	if env == nil || len(env.Data) == 0 {
		return zero, errors.NotFound("record", nil)
	}
	var row wireRecord
	if err := json.Unmarshal(env.Data, &row); err != nil {
		r.log.Error(err, "failed to decode record", "id", id)
		return zero, errors.NotFound("record", err)
	}
	return row.toModel(), nil
}

func (r *Records) Create(ctx context.Context, rec model.MedicalRecord) (model.MedicalRecord, error) {
	wire, err := recordToWire(rec, 0)
	if err != nil {
		return model.MedicalRecord{}, err
	}
	env, err := r.client.CreateRecord(ctx, recordTable, Params{Records: []map[string]any{wire}})
	if err != nil {
		return model.MedicalRecord{}, errors.NewTransportDegraded("failed to create record", err)
	}
	return r.firstResult(env, "create")
}

func (r *Records) Update(ctx context.Context, id int, patch model.MedicalRecordPatch) (model.MedicalRecord, error) {
	existing, err := r.Get(ctx, id)
	if err != nil {
		return model.MedicalRecord{}, err
	}
	merged := patch.Apply(existing).WithID(id)
	wire, err := recordToWire(merged, id)
	if err != nil {
		return model.MedicalRecord{}, err
	}
	env, err := r.client.UpdateRecord(ctx, recordTable, Params{Records: []map[string]any{wire}})
	if err != nil {
		return model.MedicalRecord{}, errors.NewTransportDegraded("failed to update record", err)
	}
	return r.firstResult(env, "update")
}

func (r *Records) Delete(ctx context.Context, id int) (model.MedicalRecord, error) {
	existing, err := r.Get(ctx, id)
	if err != nil {
		return model.MedicalRecord{}, err
	}
	env, err := r.client.DeleteRecord(ctx, recordTable, Params{RecordIDs: []int{id}})
	if err != nil {
		return model.MedicalRecord{}, errors.NewTransportDegraded("failed to delete record", err)
	}
	if !deletionSucceeded(env) {
		return model.MedicalRecord{}, errors.NewTransportDegraded("no record was deleted", nil)
	}
	return existing, nil
}

func (r *Records) firstResult(env *Envelope, op string) (model.MedicalRecord, error) {
	if !env.Success {
		return model.MedicalRecord{}, errors.NewTransportDegraded(env.Message, nil)
	}
	ok, failed := splitResults(env.Results)
	if len(failed) > 0 {
		r.log.Error(nil, fmt.Sprintf("failed to %s %d medical records", op, len(failed)))
	}
	if len(ok) == 0 {
		return model.MedicalRecord{}, errors.NewTransportDegraded(fmt.Sprintf("record %s failed", op), nil)
	}
	var row wireRecord
	if err := json.Unmarshal(ok[0].Data, &row); err != nil {
		return model.MedicalRecord{}, errors.NewTransportDegraded("malformed record in response", err)
	}
	return row.toModel(), nil
}

// recordToWire flattens the record for transmission. The display name
// is always recomposed as "<patient name> - <date>".
func recordToWire(rec model.MedicalRecord, id int) (map[string]any, error) {
	wire := map[string]any{
		"Name":         fmt.Sprintf("%s - %s", rec.PatientName, rec.Date),
		"patient_name": rec.PatientName,
		"date":         rec.Date,
		"diagnosis":    rec.Diagnosis,
		"symptoms":     model.JoinCSV(rec.Symptoms),
		"treatment":    rec.Treatment,
		"notes":        rec.Notes,
		"vitals": map[string]any{
			"blood_pressure": rec.Vitals.BloodPressure,
			"heart_rate":     rec.Vitals.HeartRate,
			"temperature":    rec.Vitals.Temperature,
			"weight":         rec.Vitals.Weight,
		},
		"patient_id":     rec.PatientID,
		"appointment_id": rec.AppointmentID,
	}
	if id > 0 {
		wire["Id"] = id
	}
	flattenVitals(wire)
	return Normalize(wire)
}
