package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/nmep-hris/payroll-backend-go/internal/config"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/user"
	"github.com/nmep-hris/payroll-backend-go/internal/handler/http/middleware"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth       AuthHandler
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	Salary     SalaryHandler
	Advance    AdvanceHandler
	Ledger     LedgerHandler
	Report     ReportHandler
	Dashboard  DashboardHandler
}

func NewRouter(cfg *config.Config, JWTService jwt.Service, users user.UserRepository, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "nmep-payroll"),
		slog.String("version", cfg.App.Version),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.SlogLevel(),
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	if cfg.Storage.Type == "local" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Storage.BasePath)))
		r.Get("/uploads/*", fs.ServeHTTP)
	}

	staff := middleware.RequireRole(user.RoleAdmin, user.RoleHR)
	adminOnly := middleware.RequireRole(user.RoleAdmin)
	canEdit := middleware.RequireHRPermission(user.PermissionEdit)
	canManageSalary := middleware.RequireHRPermission(user.PermissionManageSalary)
	canManageAttendance := middleware.RequireHRPermission(user.PermissionManageAttendance)
	canViewDocuments := middleware.RequireHRPermission(user.PermissionViewDocuments)

	r.Route("/api/v1", func(r chi.Router) {

		// Public auth endpoints, throttled per client
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.RateLimit(cfg.RateLimit.AuthPerMinute, cfg.RateLimit.AuthBurst))
			r.Post("/login", h.Auth.Login)
			r.Post("/send-otp", h.Auth.SendOTP)
			r.Post("/verify-otp", h.Auth.VerifyOTP)
			r.Post("/forgot-password", h.Auth.ForgotPassword)
			r.Put("/reset-password/{token}", h.Auth.ResetPassword)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService, users))

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", h.Auth.Me)
				r.Put("/password", h.Auth.UpdatePassword)
				r.Post("/logout", h.Auth.Logout)
				r.With(staff).Post("/register", h.Auth.Register)
				r.With(adminOnly).Put("/{id}/hr-permissions", h.Auth.UpdateHRPermissions)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/{id}", h.Employee.Get)
				r.Get("/{id}/documents", h.Employee.Documents)

				r.Group(func(r chi.Router) {
					r.Use(staff)
					r.Get("/", h.Employee.List)
					r.Post("/", h.Employee.Create)
					r.Get("/incomplete", h.Employee.ListIncomplete)
					r.Get("/stats", h.Employee.Stats)
					r.With(canEdit).Put("/{id}", h.Employee.Update)
					r.With(adminOnly).Delete("/{id}", h.Employee.Terminate)
				})

				r.Group(func(r chi.Router) {
					r.Use(canViewDocuments)
					r.Get("/documents/pending", h.Employee.PendingDocuments)
					r.With(canEdit).Post("/{id}/documents", h.Employee.UploadDocument)
					r.With(canEdit).Post("/{id}/documents/batch", h.Employee.UploadDocuments)
					r.With(canEdit).Delete("/{id}/documents/{type}", h.Employee.DeleteDocument)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", h.Attendance.List)
				r.Get("/summary/{employeeId}", h.Attendance.Summary)

				r.Group(func(r chi.Router) {
					r.Use(canManageAttendance)
					r.Post("/", h.Attendance.Mark)
					r.Post("/bulk", h.Attendance.MarkBulk)
					r.Put("/{id}", h.Attendance.Update)
				})
				r.With(adminOnly).Delete("/{id}", h.Attendance.Delete)
			})

			r.Route("/salaries", func(r chi.Router) {
				r.Get("/", h.Salary.List)
				r.Get("/{id}", h.Salary.Get)
				r.Get("/{id}/payslip", h.Salary.Payslip)

				r.Group(func(r chi.Router) {
					r.Use(canManageSalary)
					r.Post("/generate", h.Salary.Generate)
					r.Put("/{id}/payment-status", h.Salary.UpdatePaymentStatus)
				})
			})

			r.Route("/advances", func(r chi.Router) {
				r.Get("/", h.Advance.List)
				r.Post("/", h.Advance.Create)
				r.Get("/{id}", h.Advance.Get)

				r.Group(func(r chi.Router) {
					r.Use(canManageSalary)
					r.Put("/{id}/decision", h.Advance.Decide)
					r.Post("/{id}/repayments", h.Advance.RecordRepayment)
				})
			})

			r.Route("/incentives", func(r chi.Router) {
				r.Get("/", h.Ledger.ListIncentives)
				r.With(canManageSalary).Post("/", h.Ledger.AddIncentive)
			})

			r.Route("/deductions", func(r chi.Router) {
				r.Get("/", h.Ledger.ListDeductions)
				r.With(canManageSalary).Post("/", h.Ledger.AddDeduction)
			})

			r.Route("/increments", func(r chi.Router) {
				r.Get("/", h.Ledger.ListIncrements)
				r.With(adminOnly).Post("/", h.Ledger.ApplyIncrement)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(staff)
				r.Get("/salary", h.Report.Salary)
				r.Get("/attendance", h.Report.Attendance)
				r.Get("/pf-esi", h.Report.PFESI)
				r.Get("/incentives", h.Report.Incentives)
				r.Get("/deductions", h.Report.Deductions)
				r.Get("/increments", h.Report.Increments)
				r.Get("/advances", h.Report.Advances)
				r.Get("/employees", h.Report.Employees)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Use(staff)
				r.Get("/metrics", h.Dashboard.Metrics)
				r.Get("/monthly-summary", h.Dashboard.MonthlySummary)
				r.Get("/departments", h.Dashboard.DepartmentSummary)
				r.Get("/attendance-trend", h.Dashboard.AttendanceTrend)
				r.Get("/upcoming-tasks", h.Dashboard.UpcomingTasks)
				r.Post("/refresh", h.Dashboard.Refresh)
			})
		})
	})
	return r
}
