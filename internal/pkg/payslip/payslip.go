package payslip

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/employee"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/salary"
	"github.com/shopspring/decimal"
)

const companyName = "NMEP Payroll"

type line struct {
	label  string
	amount decimal.Decimal
}

// Render draws a one-page A4 payslip for the salary.
func Render(s salary.Salary, e employee.Employee) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Payslip %s %s", e.EmployeeID, s.Period()), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, companyName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, "Payslip for "+s.Period(), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	details := [][2]string{
		{"Employee ID", e.EmployeeID},
		{"Name", e.FullName()},
		{"Department", string(e.Department)},
		{"Designation", e.Designation},
		{"Bank Account", maskAccount(e.Bank.AccountNumber)},
		{"Payment Status", string(s.PaymentStatus)},
	}
	for _, d := range details {
		pdf.CellFormat(45, 6, d[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, d[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	a := s.AttendanceSummary
	pdf.CellFormat(0, 6, fmt.Sprintf("Working days %d | Present %d | Half days %d | Absent %d | Leaves %d | Holidays %d",
		a.TotalWorkingDays, a.PresentDays, a.HalfDays, a.AbsentDays, a.Leaves, a.Holidays), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	earnings := []line{
		{"Basic Salary", s.BasicSalary},
		{"HRA", s.HRA},
		{"Other Allowances", s.OtherAllowances},
		{"Overtime", s.OvertimeAmount},
		{"Night Duty Allowance", s.NightDutyAllowance},
		{"Incentives", s.TotalIncentives},
	}
	deductions := []line{
		{"Provident Fund", s.ProvidentFund},
		{"ESI", s.ESI},
		{"Professional Tax", s.ProfessionalTax},
		{"TDS", s.TDS},
		{"Advance Recovery", s.TotalAdvances},
		{"Other Deductions", s.TotalDeductions},
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(60, 7, "Earnings", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 7, "Amount (Rs.)", "1", 0, "R", false, 0, "")
	pdf.CellFormat(60, 7, "Deductions", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 7, "Amount (Rs.)", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for i := range earnings {
		pdf.CellFormat(60, 7, earnings[i].label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 7, earnings[i].amount.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(60, 7, deductions[i].label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 7, deductions[i].amount.StringFixed(2), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(60, 7, "Gross Salary", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 7, s.GrossSalary.StringFixed(2), "1", 0, "R", false, 0, "")
	pdf.CellFormat(60, 7, "Total Deductions", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 7, s.TotalDeductionsAmount.StringFixed(2), "1", 1, "R", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 9, "Net Salary: Rs. "+s.NetSalary.StringFixed(2), "", 1, "L", false, 0, "")

	if s.Remarks != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(0, 5, "Remarks: "+s.Remarks, "", "L", false)
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.Ln(6)
	pdf.CellFormat(0, 5, "This is a system generated payslip and does not require a signature.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render payslip: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename is the download name for a salary's payslip.
func Filename(s salary.Salary, employeeID string) string {
	return fmt.Sprintf("payslip_%s_%d_%02d.pdf", employeeID, s.Year, s.Month)
}

func maskAccount(account string) string {
	if len(account) <= 4 {
		return account
	}
	return strings.Repeat("X", len(account)-4) + account[len(account)-4:]
}
