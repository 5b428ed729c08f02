package report

import (
	"context"
	"sync"
	"time"

	"github.com/mediflow/clinic-api/internal/model"
	"github.com/mediflow/clinic-api/internal/report"
	"github.com/mediflow/clinic-api/internal/service/appointment"
	"github.com/mediflow/clinic-api/internal/service/patient"
	"github.com/mediflow/clinic-api/internal/service/record"
	"github.com/mediflow/clinic-api/internal/store"
	"github.com/mediflow/clinic-api/pkg/logger"
)

type ReportServicer interface {
	Summary(ctx context.Context) (report.Summary, error)
	Overview(ctx context.Context) (report.Overview, error)
}

// Service aggregates the three collection snapshots into report
// payloads. Snapshots are fetched concurrently, the way the original
// report screen issued its reads.
type Service struct {
	patients     patient.PatientServicer
	appointments appointment.AppointmentServicer
	records      record.RecordServicer
	log          *logger.Logger
	now          func() time.Time
}

func NewService(p patient.PatientServicer, a appointment.AppointmentServicer, r record.RecordServicer, log *logger.Logger) *Service {
	return &Service{
		patients:     p,
		appointments: a,
		records:      r,
		log:          log.WithComponent("report"),
		now:          time.Now,
	}
}

func (s *Service) Summary(ctx context.Context) (report.Summary, error) {
	patients, appointments, records, degraded, err := s.snapshots(ctx)
	if err != nil {
		return report.Summary{}, err
	}
	summary := report.Summarize(patients.Items, appointments.Items, records.Items, s.now())
	summary.Degraded = degraded
	return summary, nil
}

func (s *Service) Overview(ctx context.Context) (report.Overview, error) {
	patients, appointments, records, degraded, err := s.snapshots(ctx)
	if err != nil {
		return report.Overview{}, err
	}
	overview := report.NewOverview(patients.Items, appointments.Items, records.Items, s.now())
	overview.Degraded = degraded
	return overview, nil
}

func (s *Service) snapshots(ctx context.Context) (
	store.Snapshot[model.Patient],
	store.Snapshot[model.Appointment],
	store.Snapshot[model.MedicalRecord],
	bool,
	error,
) {
	var wg sync.WaitGroup
	var (
		patients     store.Snapshot[model.Patient]
		appointments store.Snapshot[model.Appointment]
		records      store.Snapshot[model.MedicalRecord]
	)
	var patientErr, apptErr, recErr error

	wg.Add(3)
	go func() {
		defer wg.Done()
		patients, patientErr = s.patients.ListPatients(ctx, "")
	}()
	go func() {
		defer wg.Done()
		appointments, apptErr = s.appointments.ListAppointments(ctx)
	}()
	go func() {
		defer wg.Done()
		records, recErr = s.records.ListRecords(ctx)
	}()
	wg.Wait()

	for _, err := range []error{patientErr, apptErr, recErr} {
		if err != nil {
			return patients, appointments, records, false, err
		}
	}

	degraded := patients.Degraded || appointments.Degraded || records.Degraded
	if degraded {
		s.log.Warn("report computed over a degraded snapshot")
	}
	return patients, appointments, records, degraded, nil
}
