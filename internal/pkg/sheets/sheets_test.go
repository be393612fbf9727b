package sheets

import (
	"context"
	"testing"
	"time"

	"github.com/nmep-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/employee"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/salary"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	now = time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	emp = employee.Employee{
		EmployeeID:    "NM123456789",
		FirstName:     "Ravi",
		LastName:      "Kumar",
		Email:         "ravi@nmep.in",
		Phone:         "9876543210",
		Department:    employee.DepartmentBodyshop,
		Designation:   "Denter",
		DateOfJoining: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
		BasicSalary:   decimal.NewFromInt(18000),
		Status:        employee.StatusActive,
	}
)

func TestEmployeeRow(t *testing.T) {
	row := EmployeeRow(emp, now)

	require.Len(t, row, 12)
	assert.Equal(t, "NM123456789", row[0])
	assert.Equal(t, "", row[2])
	assert.Equal(t, "2023-06-01", row[8])
	assert.Equal(t, "18000", row[9])
	assert.Equal(t, "2025-02-01T09:00:00Z", row[11])
}

func TestSalaryRow(t *testing.T) {
	s := salary.DefaultPolicy().Compute(salary.Inputs{
		SalaryType:  employee.SalaryTypeMonthly,
		BasicSalary: decimal.NewFromInt(18000),
	})
	s.Month, s.Year = 1, 2025

	row := SalaryRow(s, emp, now)

	require.Len(t, row, 16)
	assert.Equal(t, "Ravi Kumar", row[1])
	assert.Equal(t, "1/2025", row[2])
	assert.Equal(t, s.NetSalary.String(), row[13])
	assert.Equal(t, "Pending", row[14])
}

func TestAttendanceRow(t *testing.T) {
	in := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	out := time.Date(2025, 1, 10, 17, 30, 0, 0, time.UTC)
	a := attendance.Normalize(attendance.Attendance{
		Date:         in,
		Status:       attendance.StatusPresent,
		CheckInTime:  &in,
		CheckOutTime: &out,
		IsNightDuty:  true,
	})

	row := AttendanceRow(a, emp, now)

	require.Len(t, row, 10)
	assert.Equal(t, "2025-01-10", row[2])
	assert.Equal(t, "09:00", row[4])
	assert.Equal(t, "17:30", row[5])
	assert.Equal(t, "8.50", row[6])
	assert.Equal(t, "Yes", row[7])
}

func TestNoop(t *testing.T) {
	var s Syncer = Noop{}
	assert.False(t, s.Enabled())
	assert.NoError(t, s.SyncEmployee(context.Background(), emp))
}
