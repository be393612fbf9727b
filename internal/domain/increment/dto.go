package increment

import (
	"strings"
	"time"

	"github.com/nmep-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateIncrementRequest struct {
	Employee      string          `json:"employee"`
	EffectiveDate string          `json:"effectiveDate"`
	NewSalary     decimal.Decimal `json:"newSalary"`
	Reason        string          `json:"reason"`
	Remarks       string          `json:"remarks"`
}

func (r CreateIncrementRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Employee) {
		errs = append(errs, validator.ValidationError{Field: "employee", Message: "employee is required"})
	}
	if _, ok := validator.IsValidDate(r.EffectiveDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "effectiveDate", Message: "effectiveDate must be in YYYY-MM-DD format"})
	}
	if !r.NewSalary.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "newSalary", Message: "newSalary must be greater than zero"})
	}
	if !validator.IsInSlice(r.Reason, Reasons) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason must be one of " + strings.Join(Reasons, ", ")})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// EffectiveTime parses EffectiveDate; call after Validate.
func (r CreateIncrementRequest) EffectiveTime() time.Time {
	t, _ := time.Parse("2006-01-02", r.EffectiveDate)
	return t
}

type IncrementFilter struct {
	EmployeeID string
	Page       int
	Limit      int
}

func (f *IncrementFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
}
