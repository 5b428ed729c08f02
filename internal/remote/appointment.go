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

const appointmentTable = "appointment"

var appointmentFields = []Field{
	Col("Name"),
	Col("patient_name"),
	Col("date"),
	Col("time"),
	Col("duration"),
	Col("type"),
	Col("status"),
	Col("notes"),
	Col("practitioner"),
	Ref("patient_id"),
}

// Appointments maps the appointment store contract onto the remote
// table backend.
type Appointments struct {
	client *Client
	log    *logger.Logger
}

func NewAppointments(client *Client, log *logger.Logger) *Appointments {
	return &Appointments{client: client, log: log.WithComponent("remote.appointment")}
}

func (a *Appointments) List(ctx context.Context) (store.Snapshot[model.Appointment], error) {
	env, err := a.client.FetchRecords(ctx, appointmentTable, Params{Fields: appointmentFields})
	if err != nil {
		a.log.Error(err, "failed to fetch appointments")
		a.client.countDegraded(appointmentTable)
		return store.Degraded[model.Appointment](err.Error()), nil
	}
	if !env.Success {
		a.log.Error(nil, "appointment fetch unsuccessful", "message", env.Message)
		a.client.countDegraded(appointmentTable)
		return store.Degraded[model.Appointment](env.Message), nil
	}

	var items []model.Appointment
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &items); err != nil {
			a.log.Error(err, "failed to decode appointments")
			a.client.countDegraded(appointmentTable)
			return store.Degraded[model.Appointment]("malformed response"), nil
		}
	}
	return store.Ok(items), nil
}

func (a *Appointments) Get(ctx context.Context, id int) (model.Appointment, error) {
	var zero model.Appointment
	env, err := a.client.GetRecordByID(ctx, appointmentTable, id, Params{Fields: appointmentFields})
	if err != nil {
		a.log.Error(err, "failed to fetch appointment", "id", id)
		return zero, errors.NotFound("appointment", err)
	}
	if env == nil || len(env.Data) == 0 {
		return zero, errors.NotFound("appointment", nil)
	}
	var item model.Appointment
	if err := json.Unmarshal(env.Data, &item); err != nil {
		a.log.Error(err, "failed to decode appointment", "id", id)
		return zero, errors.NotFound("appointment", err)
	}
	return item, nil
}

func (a *Appointments) Create(ctx context.Context, appt model.Appointment) (model.Appointment, error) {
	rec, err := appointmentToWire(appt, 0)
	if err != nil {
		return model.Appointment{}, err
	}
	env, err := a.client.CreateRecord(ctx, appointmentTable, Params{Records: []map[string]any{rec}})
	if err != nil {
		return model.Appointment{}, errors.NewTransportDegraded("failed to create appointment", err)
	}
	return a.firstResult(env, "create")
}

// Update fetches the current record, applies the patch locally and
// writes the merged record back, preserving the store's shallow-merge
// contract over the batch write.
func (a *Appointments) Update(ctx context.Context, id int, patch model.AppointmentPatch) (model.Appointment, error) {
	existing, err := a.Get(ctx, id)
	if err != nil {
		return model.Appointment{}, err
	}
	merged := patch.Apply(existing).WithID(id)
	rec, err := appointmentToWire(merged, id)
	if err != nil {
		return model.Appointment{}, err
	}
	env, err := a.client.UpdateRecord(ctx, appointmentTable, Params{Records: []map[string]any{rec}})
	if err != nil {
		return model.Appointment{}, errors.NewTransportDegraded("failed to update appointment", err)
	}
	return a.firstResult(env, "update")
}

func (a *Appointments) Delete(ctx context.Context, id int) (model.Appointment, error) {
	existing, err := a.Get(ctx, id)
	if err != nil {
		return model.Appointment{}, err
	}
	env, err := a.client.DeleteRecord(ctx, appointmentTable, Params{RecordIDs: []int{id}})
	if err != nil {
		return model.Appointment{}, errors.NewTransportDegraded("failed to delete appointment", err)
	}
	if !deletionSucceeded(env) {
		return model.Appointment{}, errors.NewTransportDegraded("no appointment was deleted", nil)
	}
	return existing, nil
}

func (a *Appointments) firstResult(env *Envelope, op string) (model.Appointment, error) {
	if !env.Success {
		return model.Appointment{}, errors.NewTransportDegraded(env.Message, nil)
	}
	ok, failed := splitResults(env.Results)
	if len(failed) > 0 {
		a.log.Error(nil, fmt.Sprintf("failed to %s %d appointment records", op, len(failed)))
	}
	if len(ok) == 0 {
		return model.Appointment{}, errors.NewTransportDegraded(fmt.Sprintf("appointment %s failed", op), nil)
	}
	var item model.Appointment
	if err := json.Unmarshal(ok[0].Data, &item); err != nil {
		return model.Appointment{}, errors.NewTransportDegraded("malformed record in response", err)
	}
	return item, nil
}

func appointmentToWire(a model.Appointment, id int) (map[string]any, error) {
	name := a.Name
	if name == "" {
		name = fmt.Sprintf("%s - %s", a.PatientName, a.Date)
	}
	rec := map[string]any{
		"Name":         name,
		"patient_name": a.PatientName,
		"date":         a.Date,
		"time":         a.Time,
		"duration":     a.Duration,
		"type":         a.Type,
		"status":       a.Status,
		"notes":        a.Notes,
		"practitioner": a.Practitioner,
		"patient_id":   a.PatientID,
	}
	if id > 0 {
		rec["Id"] = id
	}
	return Normalize(rec)
}

func deletionSucceeded(env *Envelope) bool {
	if env == nil || !env.Success {
		return false
	}
	ok, _ := splitResults(env.Results)
	return len(ok) > 0
}
