package incentive

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusPaid     Status = "Paid"
	StatusRejected Status = "Rejected"
)

var Types = []string{
	"Performance",
	"Attendance",
	"Overtime",
	"Festival",
	"Referral",
	"Target Achievement",
	"Other",
}

type Incentive struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee"`
	Month        int             `json:"month"`
	Year         int             `json:"year"`
	Amount       decimal.Decimal `json:"amount"`
	Type         string          `json:"type"`
	Description  string          `json:"description,omitempty"`
	Remarks      string          `json:"remarks,omitempty"`
	AddedBy      *string         `json:"addedBy,omitempty"`
	ApprovedBy   *string         `json:"approvedBy,omitempty"`
	Status       Status          `json:"status"`
	PaidInSalary *string         `json:"paidInSalary,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`

	// Join
	EmployeeCode string `json:"employeeId,omitempty"`
	EmployeeName string `json:"employeeName,omitempty"`
}

func Normalize(i Incentive) Incentive {
	i.Description = strings.TrimSpace(i.Description)
	i.Remarks = strings.TrimSpace(i.Remarks)
	i.Amount = i.Amount.Round(2)
	if i.Status == "" {
		i.Status = StatusPending
	}
	return i
}

// Total sums the amounts.
func Total(items []Incentive) decimal.Decimal {
	sum := decimal.Zero
	for _, i := range items {
		sum = sum.Add(i.Amount)
	}
	return sum
}
