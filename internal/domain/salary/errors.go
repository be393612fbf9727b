package salary

import (
	"errors"
	"strings"
)

var (
	ErrSalaryNotFound          = errors.New("salary not found")
	ErrSalaryAlreadyExists     = errors.New("salary already generated for this period")
	ErrIncompleteProfile       = errors.New("employee profile is incomplete")
	ErrInvalidStatusTransition = errors.New("invalid payment status transition")
	ErrUnauthorized            = errors.New("unauthorized to access this salary")
)

// IncompleteProfileError lists the fields blocking salary generation.
type IncompleteProfileError struct {
	MissingFields []string
}

func (e *IncompleteProfileError) Error() string {
	return ErrIncompleteProfile.Error() + ": missing " + strings.Join(e.MissingFields, ", ")
}

func (e *IncompleteProfileError) Is(target error) bool {
	return target == ErrIncompleteProfile
}
