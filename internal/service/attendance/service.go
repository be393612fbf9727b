package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/nmep-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/dashboard"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/employee"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/cache"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/sheets"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	syncer  sheets.Syncer
	rollups cache.Cache
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	syncer sheets.Syncer,
	rollups cache.Cache,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		syncer:               syncer,
		rollups:              rollups,
	}
}

// MarkAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MarkAttendance(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.Attendance, error) {
	if err := req.Validate(); err != nil {
		return attendance.Attendance{}, err
	}

	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return attendance.Attendance{}, err
	}

	emp, err := employee.Resolve(ctx, a.EmployeeRepository, req.Employee)
	if err != nil {
		return attendance.Attendance{}, err
	}

	return a.mark(ctx, emp, req.ToEntity(emp.ID), actor.UserID)
}

// MarkBulkAttendance implements attendance.AttendanceService. Each record is
// marked independently; one failure never blocks the others.
func (a *AttendanceServiceImpl) MarkBulkAttendance(ctx context.Context, req attendance.BulkAttendanceRequest) (attendance.BulkAttendanceResult, error) {
	if err := req.Validate(); err != nil {
		return attendance.BulkAttendanceResult{}, err
	}

	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return attendance.BulkAttendanceResult{}, err
	}

	result := attendance.BulkAttendanceResult{
		Success: []attendance.Attendance{},
		Failed:  []attendance.BulkFailure{},
	}

	for _, record := range req.Records {
		single := attendance.MarkAttendanceRequest{
			Employee:    record.Employee,
			Date:        req.Date,
			Status:      record.Status,
			IsNightDuty: record.IsNightDuty,
			Remarks:     record.Remarks,
		}
		if err := single.Validate(); err != nil {
			result.Failed = append(result.Failed, attendance.BulkFailure{Employee: record.Employee, Reason: err.Error()})
			continue
		}

		emp, err := employee.Resolve(ctx, a.EmployeeRepository, record.Employee)
		if err != nil {
			result.Failed = append(result.Failed, attendance.BulkFailure{Employee: record.Employee, Reason: err.Error()})
			continue
		}

		marked, err := a.mark(ctx, emp, single.ToEntity(emp.ID), actor.UserID)
		if err != nil {
			reason := err.Error()
			if !isBusinessError(err) {
				slog.Error("bulk attendance insert failed", "employee", record.Employee, "error", err)
				reason = "failed to mark attendance"
			}
			result.Failed = append(result.Failed, attendance.BulkFailure{Employee: record.Employee, Reason: reason})
			continue
		}
		result.Success = append(result.Success, marked)
	}

	return result, nil
}

func (a *AttendanceServiceImpl) mark(ctx context.Context, emp employee.Employee, record attendance.Attendance, markedBy string) (attendance.Attendance, error) {
	if !emp.IsActive() {
		return attendance.Attendance{}, attendance.ErrEmployeeNotActive
	}
	record.MarkedBy = &markedBy

	created, err := a.AttendanceRepository.Create(ctx, record)
	if err != nil {
		return attendance.Attendance{}, err
	}
	cache.Forget(ctx, a.rollups, dashboard.CacheKeyPattern)

	if err := a.syncer.SyncAttendance(ctx, created, emp); err != nil {
		slog.Warn("sheets sync failed", "entity", "attendance", "employee_id", emp.EmployeeID, "error", err)
	}
	return created, nil
}

func isBusinessError(err error) bool {
	return errors.Is(err, attendance.ErrAttendanceAlreadyMarked) ||
		errors.Is(err, attendance.ErrEmployeeNotActive) ||
		errors.Is(err, employee.ErrEmployeeNotFound)
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	// Employees only ever see their own records
	switch {
	case !actor.IsStaff():
		if actor.EmployeeID == "" {
			return attendance.ListAttendanceResponse{}, attendance.ErrUnauthorized
		}
		filter.EmployeeID = actor.EmployeeID
	case filter.EmployeeID != "":
		emp, err := employee.Resolve(ctx, a.EmployeeRepository, filter.EmployeeID)
		if err != nil {
			return attendance.ListAttendanceResponse{}, err
		}
		filter.EmployeeID = emp.ID
	}

	records, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	return attendance.ListAttendanceResponse{
		Records:    records,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}

// UpdateAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.Attendance, error) {
	if err := req.Validate(); err != nil {
		return attendance.Attendance{}, err
	}

	existing, err := a.AttendanceRepository.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.Attendance{}, err
	}

	updated, err := a.AttendanceRepository.Update(ctx, req.Apply(existing))
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance: %w", err)
	}
	cache.Forget(ctx, a.rollups, dashboard.CacheKeyPattern)
	return updated, nil
}

// DeleteAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) DeleteAttendance(ctx context.Context, id string) error {
	if err := a.AttendanceRepository.Delete(ctx, id); err != nil {
		return err
	}
	cache.Forget(ctx, a.rollups, dashboard.CacheKeyPattern)
	return nil
}

// GetSummary implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetSummary(ctx context.Context, employeeID string, month, year int) (attendance.SummaryResponse, error) {
	if err := attendance.ValidatePeriod(month, year); err != nil {
		return attendance.SummaryResponse{}, err
	}

	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}

	emp, err := employee.Resolve(ctx, a.EmployeeRepository, employeeID)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}
	if !actor.IsStaff() && actor.EmployeeID != emp.ID {
		return attendance.SummaryResponse{}, attendance.ErrUnauthorized
	}

	from, to := attendance.MonthRange(month, year)
	records, err := a.AttendanceRepository.ListForEmployee(ctx, emp.ID, from, to)
	if err != nil {
		return attendance.SummaryResponse{}, fmt.Errorf("failed to load attendance: %w", err)
	}

	return attendance.SummaryResponse{
		Employee: attendance.SummaryEmployee{ID: emp.EmployeeID, Name: emp.FullName()},
		Month:    month,
		Year:     year,
		Summary:  attendance.Summarize(records, month, year),
	}, nil
}
