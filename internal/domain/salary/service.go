package salary

import "context"

type SalaryService interface {
	// GenerateSalary computes and stores the salary of one employee for a month,
	// consuming approved incentives, deductions and advance installments.
	GenerateSalary(ctx context.Context, req GenerateSalaryRequest) (Salary, error)
	GetSalary(ctx context.Context, id string) (Salary, error)
	ListSalaries(ctx context.Context, filter SalaryFilter) ([]Salary, int64, error)
	UpdatePaymentStatus(ctx context.Context, req UpdatePaymentStatusRequest) (Salary, error)
	// Payslip renders the salary as a PDF and returns it with a file name.
	Payslip(ctx context.Context, id string) ([]byte, string, error)
}
