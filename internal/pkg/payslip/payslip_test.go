package payslip

import (
	"bytes"
	"testing"

	"github.com/nmep-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/employee"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/salary"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	s := salary.DefaultPolicy().Compute(salary.Inputs{
		SalaryType:  employee.SalaryTypeMonthly,
		BasicSalary: decimal.NewFromInt(20000),
		Attendance:  attendance.Summary{TotalWorkingDays: 26, PresentDays: 24, NightDutyDays: 2},
	})
	s.Month, s.Year = 3, 2025
	s.Remarks = "March payroll"

	e := employee.Employee{
		EmployeeID:  "NM123456789",
		FirstName:   "Asha",
		LastName:    "Verma",
		Department:  employee.DepartmentSales,
		Designation: "Sales Executive",
		Bank:        employee.BankDetails{AccountNumber: "001234567890"},
	}

	out, err := Render(s, e)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.Greater(t, len(out), 500)
}

func TestFilename(t *testing.T) {
	s := salary.Salary{Month: 3, Year: 2025}
	assert.Equal(t, "payslip_NM123456789_2025_03.pdf", Filename(s, "NM123456789"))
}

func TestMaskAccount(t *testing.T) {
	assert.Equal(t, "XXXXXXXX7890", maskAccount("001234567890"))
	assert.Equal(t, "123", maskAccount("123"))
}
