package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/database"
)

const constraintAttendanceDay = "uk_attendance_employee_date"

const attendanceColumns = `
	a.id, a.employee_id, a.date, a.status, a.check_in_time, a.check_out_time, a.working_hours,
	a.is_night_duty, a.check_in_location, a.check_out_location, a.remarks, a.marked_by,
	a.created_at, a.updated_at,
	e.employee_id, ` + employeeName + `, e.department`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func scanAttendance(row rowScanner) (attendance.Attendance, error) {
	var (
		att          attendance.Attendance
		checkIn, out []byte
	)
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.Date, &att.Status, &att.CheckInTime, &att.CheckOutTime, &att.WorkingHours,
		&att.IsNightDuty, &checkIn, &out, &att.Remarks, &att.MarkedBy,
		&att.CreatedAt, &att.UpdatedAt,
		&att.EmployeeCode, &att.EmployeeName, &att.Department,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}
	if len(checkIn) > 0 {
		att.CheckInLocation = &attendance.Location{}
		if err := fromJSON(checkIn, att.CheckInLocation); err != nil {
			return attendance.Attendance{}, err
		}
	}
	if len(out) > 0 {
		att.CheckOutLocation = &attendance.Location{}
		if err := fromJSON(out, att.CheckOutLocation); err != nil {
			return attendance.Attendance{}, err
		}
	}
	return att, nil
}

// Create implements attendance.AttendanceRepository. The (employee, date)
// constraint decides whether the row is inserted.
func (r *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)
	att := attendance.Normalize(newAttendance)

	checkIn, err := nullableJSON(att.CheckInLocation)
	if err != nil {
		return attendance.Attendance{}, err
	}
	checkOut, err := nullableJSON(att.CheckOutLocation)
	if err != nil {
		return attendance.Attendance{}, err
	}

	query := `
		WITH a AS (
			INSERT INTO attendances (
				employee_id, date, status, check_in_time, check_out_time, working_hours,
				is_night_duty, check_in_location, check_out_location, remarks, marked_by,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
			ON CONFLICT ON CONSTRAINT ` + constraintAttendanceDay + ` DO NOTHING
			RETURNING *
		)
		SELECT` + attendanceColumns + `
		FROM a
		JOIN employees e ON e.id = a.employee_id
	`

	created, err := scanAttendance(q.QueryRow(ctx, query,
		att.EmployeeID, att.Date, string(att.Status), att.CheckInTime, att.CheckOutTime, att.WorkingHours,
		att.IsNightDuty, checkIn, checkOut, att.Remarks, att.MarkedBy,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceAlreadyMarked
		}
		return attendance.Attendance{}, fmt.Errorf("create attendance: %w", err)
	}
	return created, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	if !isRowID(id) {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	q := GetQuerier(ctx, r.db)
	query := `SELECT` + attendanceColumns + `
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1`

	att, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("get attendance %s: %w", id, err)
	}
	return att, nil
}

// Update implements attendance.AttendanceRepository. Employee and date are fixed.
func (r *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	if !isRowID(att.ID) {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	q := GetQuerier(ctx, r.db)
	att = attendance.Normalize(att)

	checkIn, err := nullableJSON(att.CheckInLocation)
	if err != nil {
		return attendance.Attendance{}, err
	}
	checkOut, err := nullableJSON(att.CheckOutLocation)
	if err != nil {
		return attendance.Attendance{}, err
	}

	query := `
		WITH a AS (
			UPDATE attendances SET
				status = $1, check_in_time = $2, check_out_time = $3, working_hours = $4,
				is_night_duty = $5, check_in_location = $6, check_out_location = $7,
				remarks = $8, updated_at = NOW()
			WHERE id = $9
			RETURNING *
		)
		SELECT` + attendanceColumns + `
		FROM a
		JOIN employees e ON e.id = a.employee_id
	`

	updated, err := scanAttendance(q.QueryRow(ctx, query,
		string(att.Status), att.CheckInTime, att.CheckOutTime, att.WorkingHours,
		att.IsNightDuty, checkIn, checkOut, att.Remarks, att.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("update attendance %s: %w", att.ID, err)
	}
	return updated, nil
}

// Delete implements attendance.AttendanceRepository.
func (r *attendanceRepository) Delete(ctx context.Context, id string) error {
	if !isRowID(id) {
		return attendance.ErrAttendanceNotFound
	}
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	var (
		conditions []string
		args       []any
	)
	argIndex := 1

	if filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("a.employee_id = $%d", argIndex))
		args = append(args, filter.EmployeeID)
		argIndex++
	}
	if filter.StartDate != "" {
		conditions = append(conditions, fmt.Sprintf("a.date >= $%d::date", argIndex))
		args = append(args, filter.StartDate)
		argIndex++
	}
	if filter.EndDate != "" {
		conditions = append(conditions, fmt.Sprintf("a.date <= $%d::date", argIndex))
		args = append(args, filter.EndDate)
		argIndex++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argIndex))
		args = append(args, filter.Status)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM attendances a "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count attendances: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		%s
		ORDER BY a.date DESC, a.created_at DESC
		LIMIT $%d OFFSET $%d`, attendanceColumns, whereClause, argIndex, argIndex+1)
	args = append(args, filter.Limit, offset(filter.Page, filter.Limit))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list attendances: %w", err)
	}
	defer rows.Close()

	records := make([]attendance.Attendance, 0, filter.Limit)
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, att)
	}
	return records, total, rows.Err()
}

// ListForEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListForEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT` + attendanceColumns + `
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.employee_id = $1 AND a.date >= $2 AND a.date < $3
		ORDER BY a.date`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list attendance for employee: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, att)
	}
	return records, rows.Err()
}
