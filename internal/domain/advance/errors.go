package advance

import "errors"

var (
	ErrAdvanceNotFound        = errors.New("advance not found")
	ErrAdvanceNotApproved     = errors.New("advance is not approved")
	ErrAdvanceAlreadyDecided  = errors.New("advance has already been approved or rejected")
	ErrAdvanceAlreadySettled  = errors.New("advance is already fully repaid")
	ErrRepaymentExceedsAmount = errors.New("repayment exceeds the remaining amount")
	ErrUnauthorized           = errors.New("unauthorized to access this advance")
)
