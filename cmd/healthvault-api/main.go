package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/ai"
	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/config"
	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/doctor"
	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/document"
	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/family"
	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/insurance"
	v1 "github.com/dmehra2102/prod-golang-projects/healthvault/internal/handler/v1"
	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/repository/memory"
	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/repository/postgres"
	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/service"
	"github.com/dmehra2102/prod-golang-projects/healthvault/pkg/auth"
	"github.com/dmehra2102/prod-golang-projects/healthvault/pkg/database"
	"github.com/dmehra2102/prod-golang-projects/healthvault/pkg/idgen"
	"github.com/dmehra2102/prod-golang-projects/healthvault/pkg/logger"
	"github.com/dmehra2102/prod-golang-projects/healthvault/pkg/metrics"
	"github.com/dmehra2102/prod-golang-projects/healthvault/pkg/tracer"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "healthvault-api: %v\n", err)
		os.Exit(1)
	}
}

type repositories struct {
	documents document.Repository
	family    family.Repository
	doctors   doctor.Repository
	insurance insurance.Repository
	audit     service.AuditRepository
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer log.Sync()

	log.Info("starting",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
		zap.String("store_driver", cfg.Store.Driver),
	)

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.Tracing.Enabled {
		tp, err := tracer.Init(cfg.Tracing)
		if err != nil {
			return fmt.Errorf("initializing tracer: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := tp.Shutdown(shutdownCtx); err != nil {
				log.Warn("tracer shutdown failed", zap.Error(err))
			}
		}()
	}

	collector := metrics.NewCollector("healthvault")
	gen := idgen.New()

	demoOwner, err := parseDemoOwner(cfg.Store.DemoOwnerID)
	if err != nil {
		return err
	}
	if demoOwner == nil && cfg.Store.Driver == "memory" && cfg.Store.SeedDemo {
		// Seeded data needs a shared owner to be visible to any caller.
		generated := uuid.New()
		demoOwner = &generated
	}
	ownership := service.Ownership{DemoOwnerID: demoOwner}

	repos, directory, err := buildRepositories(cfg, demoOwner, gen, log)
	if err != nil {
		return err
	}

	auditSvc := service.NewAuditService(repos.audit, collector, log)
	defer auditSvc.Shutdown()

	gemini := ai.NewGeminiClient(cfg.AI, collector, log)

	ingestionSvc := service.NewIngestionService(repos.documents, repos.family, gemini, gen, ownership, auditSvc, collector, log)
	querySvc := service.NewQueryService(repos.documents, ownership)
	familySvc := service.NewFamilyService(repos.family, gen, auditSvc, log)
	accessSvc := service.NewAccessService(repos.doctors, repos.documents, repos.family, gen, cfg.Share, ownership, directory, auditSvc, collector, log)
	insuranceSvc := service.NewInsuranceService(repos.insurance, repos.documents, ownership, auditSvc, log)
	assistantSvc := service.NewAssistantService(gemini, gemini, gemini, gemini, gen, log)

	router := v1.NewRouter(v1.RouterDeps{
		Documents: v1.NewDocumentHandler(ingestionSvc, querySvc, insuranceSvc),
		Family:    v1.NewFamilyHandler(familySvc),
		Doctors:   v1.NewDoctorHandler(accessSvc),
		Share:     v1.NewShareHandler(accessSvc),
		Assistant: v1.NewAssistantHandler(assistantSvc, querySvc, insuranceSvc),
		Insurance: v1.NewInsuranceHandler(insuranceSvc),
		Verifier:  auth.NewVerifier(cfg.Auth),
		Collector: collector,
		Log:       log,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	log.Info("stopped")
	return nil
}

func parseDemoOwner(raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("STORE_DEMO_OWNER_ID is not a valid UUID: %w", err)
	}
	return &id, nil
}

func buildRepositories(cfg *config.Config, demoOwner *uuid.UUID, gen idgen.Generator, log *zap.Logger) (*repositories, []doctor.Profile, error) {
	directory := memory.Directory()

	switch cfg.Store.Driver {
	case "memory":
		docs := memory.NewDocumentRepository(demoOwner)
		members := memory.NewFamilyRepository(demoOwner)
		doctors := memory.NewDoctorRepository(demoOwner)
		policies := memory.NewInsuranceRepository()

		if cfg.Store.SeedDemo && demoOwner != nil {
			ownerID := *demoOwner
			if err := memory.Seed(context.Background(), ownerID, docs, members, doctors, policies, gen, cfg.Share.BaseURL, cfg.Share.TokenBytes); err != nil {
				return nil, nil, fmt.Errorf("seeding demo data: %w", err)
			}
			log.Info("demo data seeded", zap.String("owner_id", ownerID.String()))
		}

		return &repositories{
			documents: docs,
			family:    members,
			doctors:   doctors,
			insurance: policies,
			audit:     memory.NewAuditRepository(),
		}, directory, nil

	case "postgres":
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		if err := database.Migrate(db, log); err != nil {
			return nil, nil, err
		}

		return &repositories{
			documents: postgres.NewDocumentRepository(db, demoOwner),
			family:    postgres.NewFamilyRepository(db, demoOwner),
			doctors:   postgres.NewDoctorRepository(db, demoOwner),
			insurance: postgres.NewInsuranceRepository(db),
			audit:     postgres.NewAuditRepository(db),
		}, directory, nil

	default:
		return nil, nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}
