package incentive

import "context"

type IncentiveRepository interface {
	Create(ctx context.Context, i Incentive) (Incentive, error)
	List(ctx context.Context, filter IncentiveFilter) ([]Incentive, int64, error)
	// ListApprovedForPeriod locks and returns the approved incentives of the period
	ListApprovedForPeriod(ctx context.Context, employeeID string, month, year int) ([]Incentive, error)
	// MarkPaid moves approved incentives to Paid and links them to the salary
	MarkPaid(ctx context.Context, ids []string, salaryID string) error
}
