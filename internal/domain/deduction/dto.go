package deduction

import (
	"errors"
	"strings"

	"github.com/nmep-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var (
	ErrDeductionNotFound = errors.New("deduction not found")
	ErrUnauthorized      = errors.New("unauthorized to access these deductions")
)

type CreateDeductionRequest struct {
	Employee string          `json:"employee"`
	Month    int             `json:"month"`
	Year     int             `json:"year"`
	Amount   decimal.Decimal `json:"amount"`
	Type     string          `json:"type"`
	Reason   string          `json:"reason"`
	Remarks  string          `json:"remarks"`
}

func (r CreateDeductionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Employee) {
		errs = append(errs, validator.ValidationError{Field: "employee", Message: "employee is required"})
	}
	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be between 1 and 12"})
	}
	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "invalid year"})
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "amount must be greater than zero"})
	}
	if !validator.IsInSlice(r.Type, Types) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "type must be one of " + strings.Join(Types, ", ")})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DeductionFilter struct {
	EmployeeID string
	Month      int
	Year       int
	Status     string
	Page       int
	Limit      int
}

func (f *DeductionFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
}
