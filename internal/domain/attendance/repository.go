package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create inserts the record unless one exists for the same employee and
	// date, in which case it returns ErrAttendanceAlreadyMarked.
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string) (Attendance, error)

	Update(ctx context.Context, attendance Attendance) (Attendance, error)

	Delete(ctx context.Context, id string) error

	// List retrieves attendance records with filters and pagination, newest first
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)

	// ListForEmployee returns the records in [from, to)
	ListForEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error)
}
