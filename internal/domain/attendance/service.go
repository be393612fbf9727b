package attendance

import "context"

type AttendanceService interface {
	// MarkAttendance records one day for one employee (admin, hr with canManageAttendance)
	MarkAttendance(ctx context.Context, req MarkAttendanceRequest) (Attendance, error)

	// MarkBulkAttendance marks one date for many employees and reports per-row outcomes
	MarkBulkAttendance(ctx context.Context, req BulkAttendanceRequest) (BulkAttendanceResult, error)

	// ListAttendance lists records; employees only ever see their own
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) (Attendance, error)

	DeleteAttendance(ctx context.Context, id string) error

	// GetSummary aggregates one employee's month
	GetSummary(ctx context.Context, employeeID string, month, year int) (SummaryResponse, error)
}
