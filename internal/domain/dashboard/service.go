package dashboard

import (
	"context"
	"errors"
)

const (
	DefaultTrendDays = 30
	MaxTrendDays     = 365
	BirthdayLimit    = 5

	// CacheKeyPattern matches every cached rollup. Writes that change the
	// figures drop it.
	CacheKeyPattern = "dashboard:*"
)

var ErrUnauthorized = errors.New("dashboard is restricted to admin and hr users")

type DashboardService interface {
	GetMetrics(ctx context.Context) (Metrics, error)
	// GetMonthlySummary defaults month and year to the current period when zero
	GetMonthlySummary(ctx context.Context, month, year int) (MonthlySummary, error)
	GetDepartmentSummary(ctx context.Context) ([]DepartmentSummary, error)
	GetAttendanceTrend(ctx context.Context, days int) ([]TrendPoint, error)
	GetUpcomingTasks(ctx context.Context) (UpcomingTasks, error)
	// Refresh drops every cached rollup so the next read hits the database
	Refresh(ctx context.Context) error
}
