package record

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
	List(ctx context.Context) (store.Snapshot[model.MedicalRecord], error)
	Get(ctx context.Context, id int) (model.MedicalRecord, error)
	Create(ctx context.Context, rec model.MedicalRecord) (model.MedicalRecord, error)
	Update(ctx context.Context, id int, patch model.MedicalRecordPatch) (model.MedicalRecord, error)
	Delete(ctx context.Context, id int) (model.MedicalRecord, error)
}

type RecordServicer interface {
	ListRecords(ctx context.Context) (store.Snapshot[model.MedicalRecord], error)
	GetRecord(ctx context.Context, id int) (model.MedicalRecord, error)
	CreateRecord(ctx context.Context, rec model.MedicalRecord) (model.MedicalRecord, error)
	UpdateRecord(ctx context.Context, id int, patch model.MedicalRecordPatch) (model.MedicalRecord, error)
	DeleteRecord(ctx context.Context, id int) (model.MedicalRecord, error)
}

type Service struct {
	backend Backend
	log     *logger.Logger
}

func NewService(backend Backend, log *logger.Logger) *Service {
	return &Service{backend: backend, log: log.WithComponent("record")}
}

func (s *Service) ListRecords(ctx context.Context) (store.Snapshot[model.MedicalRecord], error) {
	return s.backend.List(ctx)
}

func (s *Service) GetRecord(ctx context.Context, id int) (model.MedicalRecord, error) {
	return s.backend.Get(ctx, id)
}

func (s *Service) CreateRecord(ctx context.Context, rec model.MedicalRecord) (model.MedicalRecord, error) {
	if rec.Name == "" {
		rec.Name = fmt.Sprintf("%s - %s", rec.PatientName, rec.Date)
	}
	created, err := s.backend.Create(ctx, rec)
	if err != nil {
		return model.MedicalRecord{}, err
	}
	s.log.Info("medical record created", "id", created.ID, "patient_id", created.PatientID)
	return created, nil
}

func (s *Service) UpdateRecord(ctx context.Context, id int, patch model.MedicalRecordPatch) (model.MedicalRecord, error) {
	return s.backend.Update(ctx, id, patch)
}

func (s *Service) DeleteRecord(ctx context.Context, id int) (model.MedicalRecord, error) {
	removed, err := s.backend.Delete(ctx, id)
	if err != nil {
		return model.MedicalRecord{}, err
	}
	s.log.Info("medical record deleted", "id", id)
	return removed, nil
}
