package patient

import (
	"context"
	"strings"

	"github.com/mediflow/clinic-api/internal/model"
	"github.com/mediflow/clinic-api/internal/store"
	"github.com/mediflow/clinic-api/pkg/logger"
)

// Backend is the data layer contract, satisfied by both the in-memory
// store and the remote adapter.
type Backend interface {
	List(ctx context.Context) (store.Snapshot[model.Patient], error)
	Get(ctx context.Context, id int) (model.Patient, error)
	Create(ctx context.Context, patient model.Patient) (model.Patient, error)
	Update(ctx context.Context, id int, patch model.PatientPatch) (model.Patient, error)
	Delete(ctx context.Context, id int) (model.Patient, error)
}

type PatientServicer interface {
	ListPatients(ctx context.Context, search string) (store.Snapshot[model.Patient], error)
	GetPatient(ctx context.Context, id int) (model.Patient, error)
	CreatePatient(ctx context.Context, patient model.Patient) (model.Patient, error)
	UpdatePatient(ctx context.Context, id int, patch model.PatientPatch) (model.Patient, error)
	DeletePatient(ctx context.Context, id int) (model.Patient, error)
}

type Service struct {
	backend Backend
	log     *logger.Logger
}

func NewService(backend Backend, log *logger.Logger) *Service {
	return &Service{backend: backend, log: log.WithComponent("patient")}
}

// ListPatients returns the snapshot, optionally filtered by a
// case-insensitive substring match over name, email and phone.
func (s *Service) ListPatients(ctx context.Context, search string) (store.Snapshot[model.Patient], error) {
	snap, err := s.backend.List(ctx)
	if err != nil {
		return store.Snapshot[model.Patient]{}, err
	}
	if search == "" {
		return snap, nil
	}

	term := strings.ToLower(search)
	filtered := []model.Patient{}
	for _, p := range snap.Items {
		if strings.Contains(strings.ToLower(p.FullName()), term) ||
			strings.Contains(strings.ToLower(p.Email), term) ||
			strings.Contains(strings.ToLower(p.Phone), term) {
			filtered = append(filtered, p)
		}
	}
	snap.Items = filtered
	return snap, nil
}

func (s *Service) GetPatient(ctx context.Context, id int) (model.Patient, error) {
	return s.backend.Get(ctx, id)
}

func (s *Service) CreatePatient(ctx context.Context, patient model.Patient) (model.Patient, error) {
	created, err := s.backend.Create(ctx, patient)
	if err != nil {
		return model.Patient{}, err
	}
	s.log.Info("patient created", "id", created.ID)
	return created, nil
}

func (s *Service) UpdatePatient(ctx context.Context, id int, patch model.PatientPatch) (model.Patient, error) {
	return s.backend.Update(ctx, id, patch)
}

func (s *Service) DeletePatient(ctx context.Context, id int) (model.Patient, error) {
	removed, err := s.backend.Delete(ctx, id)
	if err != nil {
		return model.Patient{}, err
	}
	s.log.Info("patient deleted", "id", id)
	return removed, nil
}
