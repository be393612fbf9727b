package deduction

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusDeducted Status = "Deducted"
	StatusRejected Status = "Rejected"
)

var Types = []string{"Late Coming", "Absent", "Damage", "Loss", "Loan", "Fine", "Other"}

type Deduction struct {
	ID               string          `json:"id"`
	EmployeeID       string          `json:"employee"`
	Month            int             `json:"month"`
	Year             int             `json:"year"`
	Amount           decimal.Decimal `json:"amount"`
	Type             string          `json:"type"`
	Reason           string          `json:"reason"`
	Remarks          string          `json:"remarks,omitempty"`
	AddedBy          *string         `json:"addedBy,omitempty"`
	ApprovedBy       *string         `json:"approvedBy,omitempty"`
	Status           Status          `json:"status"`
	DeductedInSalary *string         `json:"deductedInSalary,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`

	// Join
	EmployeeCode string `json:"employeeId,omitempty"`
	EmployeeName string `json:"employeeName,omitempty"`
}

func Normalize(d Deduction) Deduction {
	d.Reason = strings.TrimSpace(d.Reason)
	d.Remarks = strings.TrimSpace(d.Remarks)
	d.Amount = d.Amount.Round(2)
	if d.Status == "" {
		d.Status = StatusPending
	}
	return d
}

func Total(items []Deduction) decimal.Decimal {
	sum := decimal.Zero
	for _, d := range items {
		sum = sum.Add(d.Amount)
	}
	return sum
}
