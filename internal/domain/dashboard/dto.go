package dashboard

import (
	"time"

	"github.com/shopspring/decimal"
)

// Metrics are the headline counters shown on the admin dashboard.
type Metrics struct {
	TotalEmployees     int64 `json:"totalEmployees"`
	PresentToday       int64 `json:"presentToday"`
	AbsentToday        int64 `json:"absentToday"`
	IncompleteProfiles int64 `json:"incompleteProfiles"`
	PendingSalary      int64 `json:"pendingSalary"`
	PendingAdvances    int64 `json:"pendingAdvances"`
	NewEmployees       int64 `json:"newEmployees"` // created within 7 days
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type SalaryStatusSummary struct {
	Status      string          `json:"status"`
	Count       int64           `json:"count"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

type PayrollTotals struct {
	TotalGross      decimal.Decimal `json:"totalGross"`
	TotalDeductions decimal.Decimal `json:"totalDeductions"`
	TotalNet        decimal.Decimal `json:"totalNet"`
}

type MonthlySummary struct {
	Month      int                   `json:"month"`
	Year       int                   `json:"year"`
	Attendance []StatusCount         `json:"attendance"`
	Salary     []SalaryStatusSummary `json:"salary"`
	Payroll    PayrollTotals         `json:"payroll"`
}

type DepartmentSummary struct {
	Department     string          `json:"department"`
	TotalEmployees int64           `json:"totalEmployees"`
	AvgSalary      decimal.Decimal `json:"avgSalary"`
	TotalSalary    decimal.Decimal `json:"totalSalary"`
}

type TrendPoint struct {
	Date   string `json:"date"` // YYYY-MM-DD
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type Birthday struct {
	EmployeeID  string    `json:"employeeId"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	DateOfBirth time.Time `json:"dateOfBirth"`
}

type PendingApprovals struct {
	Advances           int64 `json:"advances"`
	IncompleteProfiles int64 `json:"incompleteProfiles"`
}

type UpcomingTasks struct {
	Birthdays        []Birthday       `json:"birthdays"`
	PendingApprovals PendingApprovals `json:"pendingApprovals"`
}
