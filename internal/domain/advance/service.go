package advance

import "context"

type AdvanceService interface {
	// CreateAdvance records an advance; admin/hr entries are approved immediately
	CreateAdvance(ctx context.Context, req CreateAdvanceRequest) (Advance, error)
	DecideAdvance(ctx context.Context, req DecideAdvanceRequest) (Advance, error)
	// RecordRepayment books a repayment made outside payroll
	RecordRepayment(ctx context.Context, req RecordRepaymentRequest) (Advance, error)
	GetAdvance(ctx context.Context, id string) (Advance, error)
	ListAdvances(ctx context.Context, filter AdvanceFilter) ([]Advance, int64, error)
}
