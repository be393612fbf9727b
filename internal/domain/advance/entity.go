package advance

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "Pending"
	ApprovalApproved ApprovalStatus = "Approved"
	ApprovalRejected ApprovalStatus = "Rejected"
)

type RepaymentStatus string

const (
	RepaymentNotStarted RepaymentStatus = "Not Started"
	RepaymentInProgress RepaymentStatus = "In Progress"
	RepaymentCompleted  RepaymentStatus = "Completed"
)

type RepaymentMode string

const (
	RepaymentModeSalaryDeduction RepaymentMode = "Salary Deduction"
	RepaymentModeCash            RepaymentMode = "Cash"
	RepaymentModeOther           RepaymentMode = "Other"
)

var RepaymentModes = []string{
	string(RepaymentModeSalaryDeduction),
	string(RepaymentModeCash),
	string(RepaymentModeOther),
}

var PaymentModes = []string{"Bank Transfer", "Cash", "Cheque"}

// Repayment is one recovered installment.
type Repayment struct {
	Month    int             `json:"month"`
	Year     int             `json:"year"`
	Amount   decimal.Decimal `json:"amount"`
	PaidDate time.Time       `json:"paidDate"`
	SalaryID *string         `json:"salary,omitempty"`
}

type Advance struct {
	ID                string          `json:"id"`
	EmployeeID        string          `json:"employee"`
	RequestDate       time.Time       `json:"requestDate"`
	Amount            decimal.Decimal `json:"amount"`
	Reason            string          `json:"reason"`
	ApprovalStatus    ApprovalStatus  `json:"approvalStatus"`
	ApprovedBy        *string         `json:"approvedBy,omitempty"`
	ApprovalDate      *time.Time      `json:"approvalDate,omitempty"`
	Remarks           string          `json:"remarks,omitempty"`
	RepaymentStatus   RepaymentStatus `json:"repaymentStatus"`
	RepaymentMode     RepaymentMode   `json:"repaymentMode"`
	Installments      int             `json:"installments"`
	InstallmentAmount decimal.Decimal `json:"installmentAmount"`
	PaidAmount        decimal.Decimal `json:"paidAmount"`
	RemainingAmount   decimal.Decimal `json:"remainingAmount"`
	Repayments        []Repayment     `json:"repayments"`
	PaymentDate       *time.Time      `json:"paymentDate,omitempty"`
	PaymentMode       string          `json:"paymentMode,omitempty"`
	TransactionID     string          `json:"transactionId,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`

	// Join
	EmployeeCode string `json:"employeeId,omitempty"`
	EmployeeName string `json:"employeeName,omitempty"`
}

// Normalize recomputes every derived field: the installment amount, the paid
// amount from the repayment ledger, the remaining balance and the repayment
// status. Repositories call it on every write; it is idempotent.
func Normalize(a Advance) Advance {
	a.Reason = strings.TrimSpace(a.Reason)
	if a.RepaymentMode == "" {
		a.RepaymentMode = RepaymentModeSalaryDeduction
	}
	if a.ApprovalStatus == "" {
		a.ApprovalStatus = ApprovalPending
	}
	if a.Installments < 1 {
		a.Installments = 1
	}
	if a.Repayments == nil {
		a.Repayments = []Repayment{}
	}

	a.InstallmentAmount = a.Amount.Div(decimal.NewFromInt(int64(a.Installments))).Ceil()

	paid := decimal.Zero
	for _, r := range a.Repayments {
		paid = paid.Add(r.Amount)
	}
	a.PaidAmount = paid
	a.RemainingAmount = a.Amount.Sub(paid)

	switch {
	case !a.RemainingAmount.IsPositive():
		a.RepaymentStatus = RepaymentCompleted
	case paid.IsPositive():
		a.RepaymentStatus = RepaymentInProgress
	default:
		a.RepaymentStatus = RepaymentNotStarted
	}
	return a
}

// RecordRepayment appends a repayment and returns the recomputed advance.
func (a Advance) RecordRepayment(r Repayment) Advance {
	repayments := make([]Repayment, 0, len(a.Repayments)+1)
	repayments = append(repayments, a.Repayments...)
	a.Repayments = append(repayments, r)
	return Normalize(a)
}

// NextInstallment is the amount payroll recovers next: the installment amount,
// capped at the remaining balance.
func (a Advance) NextInstallment() decimal.Decimal {
	if a.RemainingAmount.LessThan(a.InstallmentAmount) {
		return a.RemainingAmount
	}
	return a.InstallmentAmount
}

// DueForSalaryDeduction reports whether payroll should recover an installment.
func (a Advance) DueForSalaryDeduction() bool {
	if a.ApprovalStatus != ApprovalApproved || a.RepaymentMode != RepaymentModeSalaryDeduction {
		return false
	}
	if a.RepaymentStatus != RepaymentNotStarted && a.RepaymentStatus != RepaymentInProgress {
		return false
	}
	return a.NextInstallment().IsPositive()
}
