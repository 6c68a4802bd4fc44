package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/edu-crm/internal/audit"
	"github.com/BruksfildServices01/edu-crm/internal/config"
	dbpkg "github.com/BruksfildServices01/edu-crm/internal/db"
	"github.com/BruksfildServices01/edu-crm/internal/infra/cache"
	"github.com/BruksfildServices01/edu-crm/internal/infra/memory"
	infraRepo "github.com/BruksfildServices01/edu-crm/internal/infra/repository"
	"github.com/BruksfildServices01/edu-crm/internal/infra/storage"
	"github.com/BruksfildServices01/edu-crm/internal/logger"
	"github.com/BruksfildServices01/edu-crm/internal/reminder"
	"github.com/BruksfildServices01/edu-crm/internal/routes"
	"github.com/BruksfildServices01/edu-crm/internal/timezone"
	"github.com/BruksfildServices01/edu-crm/internal/token"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
		ServiceName: "edu-crm",
	})
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// 🔧 INFRA
	// ======================================================
	deps, err := storageDeps(cfg, log)
	if err != nil {
		return err
	}

	dispatcher := audit.NewDispatcher(audit.New(deps.Events), log)
	defer dispatcher.Close()

	deps.Audit = dispatcher
	deps.Issuer = token.NewIssuer(cfg.JWTSecret, cfg.JWTTTL)
	deps.Log = log
	deps.Location = timezone.Location(cfg.Timezone)
	deps.DashboardTimeout = cfg.DashboardQueryTimeout
	deps.DefaultTenantID = defaultTenant(cfg, log)

	// redis opcional: sem ele, lock e dedup ficam em processo
	var dedup reminder.Dedup = memory.NewDedup()
	deps.Locker = memory.NewKeyLocker()
	if cfg.RedisURL != "" {
		client, err := cache.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()

		deps.Locker = cache.NewLocker(client)
		dedup = cache.NewDedup(client)
		log.Info("redis enabled")
	}

	if cfg.Reports.Enabled() {
		store, err := storage.NewS3Store(cfg.Reports)
		if err != nil {
			return err
		}
		deps.Reports = store
		log.Info("report archiving enabled", zap.String("bucket", cfg.Reports.Bucket))
	}

	// ======================================================
	// ⏰ LEMBRETES
	// ======================================================
	worker := reminder.NewWorker(
		deps.Units,
		deps.Appointments,
		reminder.NewLogNotifier(log),
		dedup,
		reminder.Config{Interval: cfg.ReminderInterval, Window: cfg.ReminderWindow},
		log,
	)
	go worker.Start(ctx)

	// ======================================================
	// 🌐 HTTP
	// ======================================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()), zap.String("storage", cfg.StorageDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// storageDeps monta os repositórios do driver configurado.
func storageDeps(cfg *config.Config, log *zap.Logger) (routes.Dependencies, error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		log.Warn("using in-memory storage, data is lost on restart")

		s := memory.NewStore()
		return routes.Dependencies{
			Leads:        memory.NewLeadRepository(s),
			Appointments: memory.NewAppointmentRepository(s),
			Units:        memory.NewUnitRepository(s),
			Accounts:     memory.NewAccountRepository(s),
			Notes:        memory.NewNoteRepository(s),
			Metrics:      memory.NewMetricsRepository(s),
			Maintenance:  memory.NewMaintenanceRepository(s),
			Events:       memory.NewEventRepository(s),
		}, nil
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return routes.Dependencies{}, err
	}

	return routes.Dependencies{
		Leads:        infraRepo.NewLeadGormRepository(db),
		Appointments: infraRepo.NewAppointmentGormRepository(db),
		Units:        infraRepo.NewUnitGormRepository(db),
		Accounts:     infraRepo.NewAccountGormRepository(db),
		Notes:        infraRepo.NewNoteGormRepository(db),
		Metrics:      infraRepo.NewMetricsGormRepository(db),
		Maintenance:  infraRepo.NewMaintenanceGormRepository(db),
		Events:       infraRepo.NewEventGormRepository(db),
	}, nil
}

func defaultTenant(cfg *config.Config, log *zap.Logger) uuid.UUID {
	if cfg.DefaultTenantID == "" {
		log.Warn("DEFAULT_TENANT_ID not set, webhook messages must name tenant_id")
		return uuid.Nil
	}
	id, err := uuid.Parse(cfg.DefaultTenantID)
	if err != nil {
		log.Warn("invalid DEFAULT_TENANT_ID, ignoring", zap.String("value", cfg.DefaultTenantID))
		return uuid.Nil
	}
	return id
}
