package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nmep-hris/payroll-backend-go/internal/config"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/salary"
	appHTTP "github.com/nmep-hris/payroll-backend-go/internal/handler/http"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/cache"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/cron"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/database"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/email"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/sheets"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/storage"
	"github.com/nmep-hris/payroll-backend-go/internal/repository/postgresql"
	advanceService "github.com/nmep-hris/payroll-backend-go/internal/service/advance"
	attendanceService "github.com/nmep-hris/payroll-backend-go/internal/service/attendance"
	serviceAuth "github.com/nmep-hris/payroll-backend-go/internal/service/auth"
	dashboardService "github.com/nmep-hris/payroll-backend-go/internal/service/dashboard"
	deductionService "github.com/nmep-hris/payroll-backend-go/internal/service/deduction"
	employeeService "github.com/nmep-hris/payroll-backend-go/internal/service/employee"
	"github.com/nmep-hris/payroll-backend-go/internal/service/file"
	incentiveService "github.com/nmep-hris/payroll-backend-go/internal/service/incentive"
	incrementService "github.com/nmep-hris/payroll-backend-go/internal/service/increment"
	reportService "github.com/nmep-hris/payroll-backend-go/internal/service/report"
	salaryService "github.com/nmep-hris/payroll-backend-go/internal/service/salary"
	"github.com/nmep-hris/payroll-backend-go/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		fatal("Error connecting to database", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := migrations.Apply(ctx, db.Pool); err != nil {
			fatal("Failed to apply migrations", err)
		}
	}

	fileStorage, err := newFileStorage(ctx, cfg.Storage)
	if err != nil {
		fatal("Failed to initialize storage", err)
	}

	var rollupCache cache.Cache = cache.Noop{}
	if cfg.Redis.Addr != "" {
		redisCache, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Username: cfg.Redis.Username,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   "nmep:",
		})
		if err != nil {
			slog.Warn("Redis unavailable, caching disabled", "error", err)
		} else {
			defer redisCache.Close()
			rollupCache = redisCache
		}
	}

	var syncer sheets.Syncer = sheets.Noop{}
	if cfg.Sheets.SpreadsheetID != "" {
		googleSyncer, err := sheets.NewGoogleSyncer(ctx, cfg.Sheets.SpreadsheetID, cfg.Sheets.CredentialsJSON, cfg.Sheets.CredentialsFile)
		if err != nil {
			slog.Warn("Google Sheets sync disabled", "error", err)
		} else {
			syncer = googleSyncer
		}
	}

	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		fatal("Failed to initialize email service", err)
	}

	policy := salary.PayrollPolicy{
		NightDutyRate:   cfg.Payroll.NightDutyRate,
		PFRate:          cfg.Payroll.PFRate,
		EmployerPFRate:  cfg.Payroll.EmployerPFRate,
		ESIRate:         cfg.Payroll.ESIRate,
		ESIWageCeiling:  cfg.Payroll.ESIWageCeiling,
		HRADefaultRate:  cfg.Payroll.HRADefaultRate,
		ProfessionalTax: cfg.Payroll.ProfessionalTax,
		TDS:             cfg.Payroll.TDS,
	}

	transactor := postgresql.NewTransactor(db)
	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	salaryRepo := postgresql.NewSalaryRepository(db)
	advanceRepo := postgresql.NewAdvanceRepository(db)
	incentiveRepo := postgresql.NewIncentiveRepository(db)
	deductionRepo := postgresql.NewDeductionRepository(db)
	incrementRepo := postgresql.NewIncrementRepository(db)
	reportRepo := postgresql.NewReportRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	fileService := file.NewFileService(fileStorage)

	authSvc := serviceAuth.NewAuthService(userRepo, employeeRepo, JWTService, emailService, cfg.App.FrontendURL)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, fileService, syncer)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, syncer, rollupCache)
	salarySvc := salaryService.NewSalaryService(
		transactor,
		salaryRepo,
		employeeRepo,
		attendanceRepo,
		incentiveRepo,
		deductionRepo,
		advanceRepo,
		syncer,
		policy,
		rollupCache,
	)
	advanceSvc := advanceService.NewAdvanceService(transactor, advanceRepo, employeeRepo)
	incentiveSvc := incentiveService.NewIncentiveService(incentiveRepo, employeeRepo)
	deductionSvc := deductionService.NewDeductionService(deductionRepo, employeeRepo)
	incrementSvc := incrementService.NewIncrementService(transactor, incrementRepo, employeeRepo)
	reportSvc := reportService.NewReportService(reportRepo, policy)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, rollupCache, cfg.Redis.TTL)

	router := appHTTP.NewRouter(cfg, JWTService, userRepo, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Salary:     appHTTP.NewSalaryHandler(salarySvc),
		Advance:    appHTTP.NewAdvanceHandler(advanceSvc),
		Ledger:     appHTTP.NewLedgerHandler(incentiveSvc, deductionSvc, incrementSvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
	})

	if cfg.Cron.Enabled {
		scheduler := cron.NewScheduler()
		cron.NewCleanupJobs(userRepo, JWTService).RegisterJobs(scheduler, cfg.Cron.CleanupInterval)
		scheduler.Start()
		defer scheduler.Stop()
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
	slog.Info("Server stopped")
}

func newFileStorage(ctx context.Context, cfg config.StorageConfig) (storage.FileStorage, error) {
	switch cfg.Type {
	case "local":
		return storage.NewLocalStorage(cfg.BasePath, cfg.BaseURL)
	case "s3":
		return storage.NewS3Storage(ctx, storage.S3Options{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		})
	case "cloudinary":
		return storage.NewCloudinaryStorage(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", cfg.Type)
	}
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
