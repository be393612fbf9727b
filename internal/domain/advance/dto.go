package advance

import (
	"strings"

	"github.com/nmep-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateAdvanceRequest struct {
	Employee      string          `json:"employee"`
	Amount        decimal.Decimal `json:"amount"`
	Reason        string          `json:"reason"`
	Installments  int             `json:"installments"`
	RepaymentMode string          `json:"repaymentMode"`
	PaymentMode   string          `json:"paymentMode"`
	PaymentDate   *string         `json:"paymentDate,omitempty"`
	TransactionID string          `json:"transactionId"`
	Remarks       string          `json:"remarks"`
}

func (r *CreateAdvanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Installments == 0 {
		r.Installments = 1
	}
	if r.RepaymentMode == "" {
		r.RepaymentMode = string(RepaymentModeSalaryDeduction)
	}

	if validator.IsEmpty(r.Employee) {
		errs = append(errs, validator.ValidationError{Field: "employee", Message: "employee is required"})
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "amount must be greater than zero"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required"})
	}
	if r.Installments < 1 || r.Installments > 60 {
		errs = append(errs, validator.ValidationError{Field: "installments", Message: "installments must be between 1 and 60"})
	}
	if !validator.IsInSlice(r.RepaymentMode, RepaymentModes) {
		errs = append(errs, validator.ValidationError{Field: "repaymentMode", Message: "repayment mode must be one of " + strings.Join(RepaymentModes, ", ")})
	}
	if r.PaymentMode != "" && !validator.IsInSlice(r.PaymentMode, PaymentModes) {
		errs = append(errs, validator.ValidationError{Field: "paymentMode", Message: "payment mode must be one of " + strings.Join(PaymentModes, ", ")})
	}
	if r.PaymentDate != nil {
		if _, ok := validator.IsValidDate(*r.PaymentDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "paymentDate", Message: "date must be YYYY-MM-DD"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DecideAdvanceRequest struct {
	ID       string `json:"-"`
	Approved bool   `json:"approved"`
	Remarks  string `json:"remarks"`
}

type RecordRepaymentRequest struct {
	ID     string          `json:"-"`
	Month  int             `json:"month"`
	Year   int             `json:"year"`
	Amount decimal.Decimal `json:"amount"`
}

func (r RecordRepaymentRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be between 1 and 12"})
	}
	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "invalid year"})
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "amount must be greater than zero"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AdvanceFilter struct {
	EmployeeID      string
	ApprovalStatus  string
	RepaymentStatus string
	Page            int
	Limit           int
}

func (f *AdvanceFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
}
