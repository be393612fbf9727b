package incentive

import (
	"context"
	"errors"
)

var (
	ErrIncentiveNotFound = errors.New("incentive not found")
	ErrUnauthorized      = errors.New("unauthorized to access these incentives")
)

type IncentiveService interface {
	// AddIncentive records an approved incentive for a payroll period
	AddIncentive(ctx context.Context, req CreateIncentiveRequest) (Incentive, error)
	ListIncentives(ctx context.Context, filter IncentiveFilter) ([]Incentive, int64, error)
}
