package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mediflow/clinic-api/config"
	appointmentHandler "github.com/mediflow/clinic-api/internal/handler/appointment"
	calendarHandler "github.com/mediflow/clinic-api/internal/handler/calendar"
	healthHandler "github.com/mediflow/clinic-api/internal/handler/health"
	patientHandler "github.com/mediflow/clinic-api/internal/handler/patient"
	recordHandler "github.com/mediflow/clinic-api/internal/handler/record"
	reportHandler "github.com/mediflow/clinic-api/internal/handler/report"
	"github.com/mediflow/clinic-api/internal/middleware"
	"github.com/mediflow/clinic-api/internal/model"
	"github.com/mediflow/clinic-api/internal/remote"
	"github.com/mediflow/clinic-api/internal/router"
	appointmentService "github.com/mediflow/clinic-api/internal/service/appointment"
	patientService "github.com/mediflow/clinic-api/internal/service/patient"
	recordService "github.com/mediflow/clinic-api/internal/service/record"
	reportService "github.com/mediflow/clinic-api/internal/service/report"
	"github.com/mediflow/clinic-api/internal/store"
	"github.com/mediflow/clinic-api/internal/store/seed"
	"github.com/mediflow/clinic-api/pkg/logger"
	"github.com/mediflow/clinic-api/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLog := logger.NewLogger(&logger.Config{Level: logger.ParseLevel(cfg.Log.Level)})
	m := metrics.NewMetrics("clinic")

	var (
		patientBackend     patientService.Backend
		appointmentBackend appointmentService.Backend
		recordBackend      recordService.Backend
		sizers             map[string]healthHandler.Sizer
	)

	if cfg.Remote.Enabled {
		client := remote.NewClient(remote.Config{
			BaseURL:   cfg.Remote.BaseURL,
			ProjectID: cfg.Remote.ProjectID,
			PublicKey: cfg.Remote.PublicKey,
			Timeout:   cfg.Remote.Timeout,
			CacheTTL:  cfg.Remote.CacheTTL,
		}, appLog, m)
		patientBackend = remote.NewPatients(client, appLog)
		appointmentBackend = remote.NewAppointments(client, appLog)
		recordBackend = remote.NewRecords(client, appLog)
	} else {
		patients, err := seed.Patients()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load patient seed data")
		}
		appointments, err := seed.Appointments()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load appointment seed data")
		}
		records, err := seed.Records()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load medical record seed data")
		}

		opts := store.Options{
			Latency: store.Latency{Min: cfg.Store.LatencyMin, Max: cfg.Store.LatencyMax},
			Logger:  appLog,
			Metrics: m,
		}
		patientStore := store.New[model.Patient, model.PatientPatch]("patient", patients, opts)
		appointmentStore := store.New[model.Appointment, model.AppointmentPatch]("appointment", appointments, opts)
		recordStore := store.New[model.MedicalRecord, model.MedicalRecordPatch]("medical_record", records, opts)

		patientBackend = patientStore
		appointmentBackend = appointmentStore
		recordBackend = recordStore
		sizers = map[string]healthHandler.Sizer{
			"patients":        patientStore,
			"appointments":    appointmentStore,
			"medical_records": recordStore,
		}
	}

	patientSvc := patientService.NewService(patientBackend, appLog)
	appointmentSvc := appointmentService.NewService(appointmentBackend, appLog)
	recordSvc := recordService.NewService(recordBackend, appLog)
	reportSvc := reportService.NewService(patientSvc, appointmentSvc, recordSvc, appLog)

	r := router.NewRouter(
		router.Config{
			RateLimitEnabled:  cfg.RateLimit.Enabled,
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
			MetricsEnabled:    cfg.Monitoring.PrometheusEnabled,
			MetricsPath:       cfg.Monitoring.MetricsPath,
			CORS:              middleware.DefaultCORSConfig(),
		},
		healthHandler.NewHandler(sizers),
		patientHandler.NewHandler(patientSvc),
		appointmentHandler.NewHandler(appointmentSvc),
		recordHandler.NewHandler(recordSvc),
		calendarHandler.NewHandler(appointmentSvc),
		reportHandler.NewHandler(reportSvc),
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		appLog.Info("starting server", map[string]interface{}{"port": cfg.Server.Port})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
