package salary

import (
	"github.com/nmep-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/employee"
	"github.com/shopspring/decimal"
)

// PayrollPolicy holds the rates and thresholds used to compute a salary.
type PayrollPolicy struct {
	NightDutyRate   decimal.Decimal
	PFRate          decimal.Decimal
	EmployerPFRate  decimal.Decimal
	ESIRate         decimal.Decimal
	ESIWageCeiling  decimal.Decimal
	HRADefaultRate  decimal.Decimal
	ProfessionalTax decimal.Decimal
	TDS             decimal.Decimal
}

func DefaultPolicy() PayrollPolicy {
	return PayrollPolicy{
		NightDutyRate:   decimal.NewFromInt(200),
		PFRate:          decimal.RequireFromString("0.12"),
		EmployerPFRate:  decimal.RequireFromString("0.12"),
		ESIRate:         decimal.RequireFromString("0.0075"),
		ESIWageCeiling:  decimal.NewFromInt(21000),
		HRADefaultRate:  decimal.RequireFromString("0.40"),
		ProfessionalTax: decimal.Zero,
		TDS:             decimal.Zero,
	}
}

// Inputs are the facts a salary is computed from.
type Inputs struct {
	SalaryType      employee.SalaryType
	BasicSalary     decimal.Decimal
	HRA             *decimal.Decimal
	OtherAllowances *decimal.Decimal
	Attendance      attendance.Summary
	Incentives      decimal.Decimal
	Deductions      decimal.Decimal
	Advances        decimal.Decimal
}

var half = decimal.RequireFromString("0.5")

// Compute returns a normalized salary holding every earning and deduction
// component for the inputs. Identity and period fields are left to the caller.
//
// Daily employees are paid BasicSalary per present day and half of it per
// half day, get no HRA and no provident fund. Monthly employees get their
// configured HRA, or HRADefaultRate of basic when none is configured.
func (p PayrollPolicy) Compute(in Inputs) Salary {
	basic := in.BasicSalary
	hra := decimal.Zero

	switch in.SalaryType {
	case employee.SalaryTypeDaily:
		days := decimal.NewFromInt(int64(in.Attendance.PresentDays)).
			Add(decimal.NewFromInt(int64(in.Attendance.HalfDays)).Mul(half))
		basic = in.BasicSalary.Mul(days)
	default:
		if in.HRA != nil && in.HRA.IsPositive() {
			hra = *in.HRA
		} else {
			hra = basic.Mul(p.HRADefaultRate)
		}
	}

	other := decimal.Zero
	if in.OtherAllowances != nil {
		other = *in.OtherAllowances
	}

	pf := decimal.Zero
	if in.SalaryType != employee.SalaryTypeDaily {
		pf = basic.Mul(p.PFRate)
	}

	esi := decimal.Zero
	if wage := basic.Add(hra); wage.LessThanOrEqual(p.ESIWageCeiling) {
		esi = wage.Mul(p.ESIRate)
	}

	s := Salary{
		BasicSalary:        basic.Round(2),
		HRA:                hra.Round(2),
		OtherAllowances:    other.Round(2),
		OvertimeHours:      decimal.Zero,
		OvertimeAmount:     decimal.Zero,
		NightDutyAllowance: decimal.NewFromInt(int64(in.Attendance.NightDutyDays)).Mul(p.NightDutyRate).Round(2),
		TotalIncentives:    in.Incentives.Round(2),
		ProvidentFund:      pf.Round(2),
		ESI:                esi.Round(2),
		ProfessionalTax:    p.ProfessionalTax.Round(2),
		TDS:                p.TDS.Round(2),
		TotalAdvances:      in.Advances.Round(2),
		TotalDeductions:    in.Deductions.Round(2),
		AttendanceSummary:  in.Attendance,
	}
	return Normalize(s)
}

// EmployerPF is the employer's provident fund share. It is zero when no
// employee provident fund was withheld.
func (p PayrollPolicy) EmployerPF(s Salary) decimal.Decimal {
	if !s.ProvidentFund.IsPositive() {
		return decimal.Zero
	}
	return s.BasicSalary.Mul(p.EmployerPFRate).Round(2)
}
