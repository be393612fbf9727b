package salary

import (
	"strconv"
	"strings"
	"time"

	"github.com/nmep-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "Pending"
	PaymentStatusProcessing PaymentStatus = "Processing"
	PaymentStatusPaid       PaymentStatus = "Paid"
	PaymentStatusHold       PaymentStatus = "Hold"
)

var PaymentStatuses = []string{
	string(PaymentStatusPending),
	string(PaymentStatusProcessing),
	string(PaymentStatusPaid),
	string(PaymentStatusHold),
}

var PaymentModes = []string{"Bank Transfer", "Cash", "Cheque"}

var transitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusPending:    {PaymentStatusProcessing, PaymentStatusPaid, PaymentStatusHold},
	PaymentStatusProcessing: {PaymentStatusPaid, PaymentStatusHold},
	PaymentStatusHold:       {PaymentStatusPending, PaymentStatusProcessing},
}

// CanTransition reports whether a salary may move from one payment status to
// another. Paid is terminal.
func CanTransition(from, to PaymentStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Salary struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`

	// Earnings
	BasicSalary        decimal.Decimal `json:"basicSalary"`
	HRA                decimal.Decimal `json:"hra"`
	OtherAllowances    decimal.Decimal `json:"otherAllowances"`
	OvertimeHours      decimal.Decimal `json:"overtimeHours"`
	OvertimeAmount     decimal.Decimal `json:"overtimeAmount"`
	NightDutyAllowance decimal.Decimal `json:"nightDutyAllowance"`
	TotalIncentives    decimal.Decimal `json:"totalIncentives"`

	// Deductions
	ProvidentFund   decimal.Decimal `json:"providentFund"`
	ESI             decimal.Decimal `json:"esi"`
	ProfessionalTax decimal.Decimal `json:"professionalTax"`
	TDS             decimal.Decimal `json:"tds"`
	TotalAdvances   decimal.Decimal `json:"totalAdvances"`
	TotalDeductions decimal.Decimal `json:"totalDeductions"`

	// Derived
	GrossSalary           decimal.Decimal `json:"grossSalary"`
	TotalDeductionsAmount decimal.Decimal `json:"totalDeductionsAmount"`
	NetSalary             decimal.Decimal `json:"netSalary"`

	AttendanceSummary attendance.Summary `json:"attendanceSummary"`
	IncentiveIDs      []string           `json:"incentives"`
	DeductionIDs      []string           `json:"deductions"`
	AdvanceIDs        []string           `json:"advances"`

	PaymentStatus  PaymentStatus `json:"paymentStatus"`
	PaymentDate    *time.Time    `json:"paymentDate,omitempty"`
	PaymentMode    string        `json:"paymentMode,omitempty"`
	TransactionID  string        `json:"transactionId,omitempty"`
	SyncedToSheets bool          `json:"syncedToSheets"`
	SheetsSyncDate *time.Time    `json:"sheetsSyncDate,omitempty"`
	Remarks        string        `json:"remarks,omitempty"`
	GeneratedBy    *string       `json:"generatedBy,omitempty"`
	ApprovedBy     *string       `json:"approvedBy,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`

	// Join
	EmployeeCode string `json:"employeeId,omitempty"`
	EmployeeName string `json:"employeeName,omitempty"`
	Department   string `json:"department,omitempty"`
	Designation  string `json:"designation,omitempty"`
}

// Normalize recomputes gross, total deductions and net from the stored
// components. Caller-supplied totals are discarded.
func Normalize(s Salary) Salary {
	s.Remarks = strings.TrimSpace(s.Remarks)
	if s.PaymentStatus == "" {
		s.PaymentStatus = PaymentStatusPending
	}
	if s.IncentiveIDs == nil {
		s.IncentiveIDs = []string{}
	}
	if s.DeductionIDs == nil {
		s.DeductionIDs = []string{}
	}
	if s.AdvanceIDs == nil {
		s.AdvanceIDs = []string{}
	}

	s.GrossSalary = s.BasicSalary.
		Add(s.HRA).
		Add(s.OtherAllowances).
		Add(s.OvertimeAmount).
		Add(s.NightDutyAllowance).
		Add(s.TotalIncentives)

	s.TotalDeductionsAmount = s.ProvidentFund.
		Add(s.ESI).
		Add(s.ProfessionalTax).
		Add(s.TDS).
		Add(s.TotalAdvances).
		Add(s.TotalDeductions)

	s.NetSalary = s.GrossSalary.Sub(s.TotalDeductionsAmount)
	return s
}

// Period formats the payroll period as "January 2025".
func (s Salary) Period() string {
	return time.Month(s.Month).String() + " " + strconv.Itoa(s.Year)
}
