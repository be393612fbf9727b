package increment

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

var Reasons = []string{"Performance", "Promotion", "Annual", "Special", "Market Adjustment"}

var hundred = decimal.NewFromInt(100)

type Increment struct {
	ID                  string          `json:"id"`
	EmployeeID          string          `json:"employee"`
	EffectiveDate       time.Time       `json:"effectiveDate"`
	PreviousSalary      decimal.Decimal `json:"previousSalary"`
	NewSalary           decimal.Decimal `json:"newSalary"`
	IncrementAmount     decimal.Decimal `json:"incrementAmount"`
	IncrementPercentage decimal.Decimal `json:"incrementPercentage"`
	Reason              string          `json:"reason"`
	Remarks             string          `json:"remarks,omitempty"`
	ApprovedBy          *string         `json:"approvedBy,omitempty"`
	Status              Status          `json:"status"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`

	// Join
	EmployeeCode string `json:"employeeId,omitempty"`
	EmployeeName string `json:"employeeName,omitempty"`
}

// Normalize derives the increment amount and percentage from the two salaries.
// A zero previous salary yields a zero percentage.
func Normalize(i Increment) Increment {
	i.Remarks = strings.TrimSpace(i.Remarks)
	i.EffectiveDate = i.EffectiveDate.UTC().Truncate(24 * time.Hour)
	if i.Status == "" {
		i.Status = StatusPending
	}

	i.IncrementAmount = i.NewSalary.Sub(i.PreviousSalary)
	if i.PreviousSalary.IsPositive() {
		i.IncrementPercentage = i.IncrementAmount.Div(i.PreviousSalary).Mul(hundred).Round(2)
	} else {
		i.IncrementPercentage = decimal.Zero
	}
	return i
}
