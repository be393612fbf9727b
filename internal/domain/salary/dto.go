package salary

import (
	"strings"
	"time"

	"github.com/nmep-hris/payroll-backend-go/internal/pkg/validator"
)

type GenerateSalaryRequest struct {
	EmployeeID string `json:"employeeId"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`
	Remarks    string `json:"remarks"`
}

func (r GenerateSalaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employeeId", Message: "employeeId is required"})
	}
	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be between 1 and 12"})
	}
	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "invalid year"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdatePaymentStatusRequest struct {
	ID            string `json:"-"`
	PaymentStatus string `json:"paymentStatus"`
	PaymentDate   string `json:"paymentDate"`
	PaymentMode   string `json:"paymentMode"`
	TransactionID string `json:"transactionId"`
	Remarks       string `json:"remarks"`
}

func (r UpdatePaymentStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.PaymentStatus, PaymentStatuses) {
		errs = append(errs, validator.ValidationError{Field: "paymentStatus", Message: "paymentStatus must be one of " + strings.Join(PaymentStatuses, ", ")})
	}
	if r.PaymentMode != "" && !validator.IsInSlice(r.PaymentMode, PaymentModes) {
		errs = append(errs, validator.ValidationError{Field: "paymentMode", Message: "paymentMode must be one of " + strings.Join(PaymentModes, ", ")})
	}
	if r.PaymentDate != "" {
		if _, ok := parsePaymentDate(r.PaymentDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "paymentDate", Message: "paymentDate must be YYYY-MM-DD or RFC3339"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// PaymentTime returns the requested payment date, or now when none was given.
func (r UpdatePaymentStatusRequest) PaymentTime(now time.Time) time.Time {
	if t, ok := parsePaymentDate(r.PaymentDate); ok {
		return t
	}
	return now
}

func parsePaymentDate(s string) (time.Time, bool) {
	if t, ok := validator.IsValidDate(s); ok {
		return t, true
	}
	return validator.IsValidDateTime(s)
}

type SalaryFilter struct {
	// EmployeeID is the employee row id; EmployeeCode is resolved to it by the service.
	EmployeeID    string
	EmployeeCode  string
	Month         int
	Year          int
	PaymentStatus string
	Department    string
	Page          int
	Limit         int
}

func (f *SalaryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Month != 0 && !validator.IsValidMonth(f.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be between 1 and 12"})
	}
	if f.Year != 0 && !validator.IsValidYear(f.Year) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "invalid year"})
	}
	if f.PaymentStatus != "" && !validator.IsInSlice(f.PaymentStatus, PaymentStatuses) {
		errs = append(errs, validator.ValidationError{Field: "paymentStatus", Message: "invalid paymentStatus"})
	}
	if len(errs) > 0 {
		return errs
	}

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 10
	}
	return nil
}
