package attendance

import "errors"

// Attendance domain errors
var (
	ErrAttendanceNotFound      = errors.New("attendance record not found")
	ErrAttendanceAlreadyMarked = errors.New("attendance already marked for this date")
	ErrUnauthorized            = errors.New("unauthorized to access this attendance record")
	ErrEmployeeNotActive       = errors.New("attendance can only be marked for active employees")
)
