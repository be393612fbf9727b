package response

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/nmep-hris/payroll-backend-go/internal/domain/advance"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/auth"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/dashboard"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/deduction"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/employee"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/incentive"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/increment"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/report"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/salary"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/user"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var incomplete *salary.IncompleteProfileError
	if errors.As(err, &incomplete) {
		BadRequest(w, salary.ErrIncompleteProfile.Error(), map[string]string{
			"missingFields": strings.Join(incomplete.MissingFields, ", "),
		})
		return
	}

	switch {
	// Authentication
	case errors.Is(err, jwt.ErrNoActor),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, user.ErrUserInactive):
		Unauthorized(w, err.Error())

	// Authorization
	case errors.Is(err, user.ErrInsufficientPermissions),
		errors.Is(err, user.ErrAdminPrivilegeRequired),
		errors.Is(err, employee.ErrUnauthorized),
		errors.Is(err, attendance.ErrUnauthorized),
		errors.Is(err, salary.ErrUnauthorized),
		errors.Is(err, advance.ErrUnauthorized),
		errors.Is(err, incentive.ErrUnauthorized),
		errors.Is(err, deduction.ErrUnauthorized),
		errors.Is(err, increment.ErrUnauthorized),
		errors.Is(err, report.ErrUnauthorized),
		errors.Is(err, dashboard.ErrUnauthorized):
		Forbidden(w, err.Error())

	// Not found
	case errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, auth.ErrEmployeeNotFound),
		errors.Is(err, employee.ErrEmployeeNotFound),
		errors.Is(err, employee.ErrDocumentNotFound),
		errors.Is(err, attendance.ErrAttendanceNotFound),
		errors.Is(err, salary.ErrSalaryNotFound),
		errors.Is(err, advance.ErrAdvanceNotFound),
		errors.Is(err, incentive.ErrIncentiveNotFound),
		errors.Is(err, deduction.ErrDeductionNotFound),
		errors.Is(err, increment.ErrIncrementNotFound):
		NotFound(w, err.Error())

	// Duplicates
	case errors.Is(err, user.ErrUserEmailExists),
		errors.Is(err, employee.ErrAadhaarExists),
		errors.Is(err, employee.ErrPANExists),
		errors.Is(err, attendance.ErrAttendanceAlreadyMarked),
		errors.Is(err, salary.ErrSalaryAlreadyExists):
		Duplicate(w, err.Error())

	// Business rules
	case errors.Is(err, auth.ErrInvalidOTP),
		errors.Is(err, auth.ErrOTPExpired),
		errors.Is(err, auth.ErrInvalidResetToken),
		errors.Is(err, auth.ErrIncorrectPassword),
		errors.Is(err, user.ErrNotHRUser),
		errors.Is(err, employee.ErrInvalidDocumentType),
		errors.Is(err, employee.ErrInvalidFileType),
		errors.Is(err, employee.ErrEmployeeAlreadyExited),
		errors.Is(err, attendance.ErrEmployeeNotActive),
		errors.Is(err, salary.ErrInvalidStatusTransition),
		errors.Is(err, advance.ErrAdvanceNotApproved),
		errors.Is(err, advance.ErrAdvanceAlreadyDecided),
		errors.Is(err, advance.ErrAdvanceAlreadySettled),
		errors.Is(err, advance.ErrRepaymentExceedsAmount),
		errors.Is(err, increment.ErrSameSalary):
		BadRequest(w, err.Error(), nil)

	case errors.Is(err, auth.ErrNotificationFailed):
		InternalServerError(w, err.Error())

	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
