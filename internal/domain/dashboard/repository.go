package dashboard

import (
	"context"
	"time"
)

type DashboardRepository interface {
	// Metrics counts for the given day; today is a UTC midnight.
	Metrics(ctx context.Context, today time.Time) (Metrics, error)
	MonthlySummary(ctx context.Context, month, year int) (MonthlySummary, error)
	DepartmentSummary(ctx context.Context) ([]DepartmentSummary, error)
	AttendanceTrend(ctx context.Context, since time.Time) ([]TrendPoint, error)
	Birthdays(ctx context.Context, month, limit int) ([]Birthday, error)
	PendingApprovals(ctx context.Context) (PendingApprovals, error)
}
