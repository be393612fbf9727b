package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nmep-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/salary"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError_StatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", validator.ValidationErrors{{Field: "month", Message: "bad"}}, http.StatusBadRequest},
		{"request validation", salary.GenerateSalaryRequest{}.Validate(), http.StatusBadRequest},
		{"no actor", jwt.ErrNoActor, http.StatusUnauthorized},
		{"forbidden", salary.ErrUnauthorized, http.StatusForbidden},
		{"not found", fmt.Errorf("load: %w", salary.ErrSalaryNotFound), http.StatusNotFound},
		{"duplicate day", attendance.ErrAttendanceAlreadyMarked, http.StatusBadRequest},
		{"duplicate salary", fmt.Errorf("generate: %w", salary.ErrSalaryAlreadyExists), http.StatusBadRequest},
		{"business rule", fmt.Errorf("%w: Paid -> Pending", salary.ErrInvalidStatusTransition), http.StatusBadRequest},
		{"unknown", fmt.Errorf("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestHandleError_BodyCodes(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    string
		details bool
	}{
		{"validation keeps field details", salary.GenerateSalaryRequest{}.Validate(), "VALIDATION_ERROR", true},
		{"duplicate is distinguishable", salary.ErrSalaryAlreadyExists, "DUPLICATE_ENTRY", false},
		{"business rule", salary.ErrInvalidStatusTransition, "BAD_REQUEST", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)

			var body Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
			if tt.details {
				assert.Contains(t, body.Error.Details, "employeeId")
			}
		})
	}
}

func TestHandleError_IncompleteProfileDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, fmt.Errorf("generate: %w", &salary.IncompleteProfileError{MissingFields: []string{"panNumber", "bankDetails"}}))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "panNumber, bankDetails", body.Error.Details["missingFields"])
}

func TestHandleError_InternalMessageIsGeneric(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, fmt.Errorf("pq: password authentication failed"))

	assert.NotContains(t, rec.Body.String(), "password authentication")
}
