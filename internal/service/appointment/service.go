package appointment

import (
	"context"
	"fmt"

	"github.com/mediflow/clinic-api/internal/model"
	"github.com/mediflow/clinic-api/internal/store"
	"github.com/mediflow/clinic-api/pkg/logger"
)

// Backend is the data layer contract, satisfied by both the in-memory
// store and the remote adapter.
type Backend interface {
	List(ctx context.Context) (store.Snapshot[model.Appointment], error)
	Get(ctx context.Context, id int) (model.Appointment, error)
	Create(ctx context.Context, appt model.Appointment) (model.Appointment, error)
	Update(ctx context.Context, id int, patch model.AppointmentPatch) (model.Appointment, error)
	Delete(ctx context.Context, id int) (model.Appointment, error)
}

type AppointmentServicer interface {
	ListAppointments(ctx context.Context) (store.Snapshot[model.Appointment], error)
	GetAppointment(ctx context.Context, id int) (model.Appointment, error)
	CreateAppointment(ctx context.Context, appt model.Appointment) (model.Appointment, error)
	UpdateAppointment(ctx context.Context, id int, patch model.AppointmentPatch) (model.Appointment, error)
	DeleteAppointment(ctx context.Context, id int) (model.Appointment, error)
}

type Service struct {
	backend Backend
	log     *logger.Logger
}

func NewService(backend Backend, log *logger.Logger) *Service {
	return &Service{backend: backend, log: log.WithComponent("appointment")}
}

func (s *Service) ListAppointments(ctx context.Context) (store.Snapshot[model.Appointment], error) {
	return s.backend.List(ctx)
}

func (s *Service) GetAppointment(ctx context.Context, id int) (model.Appointment, error) {
	return s.backend.Get(ctx, id)
}

// CreateAppointment fills in the business defaults before the append:
// an empty status becomes the default status, an empty display name is
// composed from patient and date.
func (s *Service) CreateAppointment(ctx context.Context, appt model.Appointment) (model.Appointment, error) {
	if appt.Status == "" {
		appt.Status = model.DefaultAppointmentStatus
	}
	if appt.Name == "" {
		appt.Name = fmt.Sprintf("%s - %s", appt.PatientName, appt.Date)
	}
	created, err := s.backend.Create(ctx, appt)
	if err != nil {
		return model.Appointment{}, err
	}
	s.log.Info("appointment created", "id", created.ID, "date", created.Date)
	return created, nil
}

func (s *Service) UpdateAppointment(ctx context.Context, id int, patch model.AppointmentPatch) (model.Appointment, error) {
	return s.backend.Update(ctx, id, patch)
}

func (s *Service) DeleteAppointment(ctx context.Context, id int) (model.Appointment, error) {
	removed, err := s.backend.Delete(ctx, id)
	if err != nil {
		return model.Appointment{}, err
	}
	s.log.Info("appointment deleted", "id", id)
	return removed, nil
}
