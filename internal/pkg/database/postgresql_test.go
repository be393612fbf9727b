package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "uk_salary_employee_period"}
	wrapped := fmt.Errorf("insert salary: %w", dup)

	assert.True(t, IsUniqueViolation(dup, ""))
	assert.True(t, IsUniqueViolation(wrapped, "uk_salary_employee_period"))
	assert.False(t, IsUniqueViolation(wrapped, "uk_attendance_employee_date"))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}, ""))
	assert.False(t, IsUniqueViolation(errors.New("boom"), ""))
	assert.False(t, IsUniqueViolation(nil, ""))
}
