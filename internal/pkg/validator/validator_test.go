package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type checkCase struct {
	name  string
	check func(string) bool
	valid []string
	bad   []string
}

func TestStringChecks(t *testing.T) {
	cases := []checkCase{
		{
			name:  "email",
			check: IsValidEmail,
			valid: []string{"hr@nmep.in", "ravi.kumar+payroll@example.co"},
			bad:   []string{"ravi@", "@nmep.in", "ravi@.com", "ravi@nmep", ""},
		},
		{
			name:  "uuid v7",
			check: IsValidUUID,
			valid: []string{"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", "0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B"},
			bad: []string{
				"123e4567-e89b-12d3-a456-426614174000",
				"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",
				"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
				"",
			},
		},
		{
			name:  "numeric",
			check: IsNumeric,
			valid: []string{"0", "482913"},
			bad:   []string{"48a913", "-1", ""},
		},
		{
			name:  "employee code",
			check: IsValidEmployeeCode,
			valid: []string{"NM123456789"},
			bad:   []string{"NM12345678", "XX123456789", "nm123456789", ""},
		},
		{
			name:  "aadhaar",
			check: IsValidAadhaar,
			valid: []string{"234567890123", "2345 6789 0123"},
			bad:   []string{"123456789012", "23456789012", "23456789012a", ""},
		},
		{
			name:  "pan",
			check: IsValidPAN,
			valid: []string{"ABCDE1234F", "abcde1234f"},
			bad:   []string{"ABCD1234F", "1BCDE1234F", ""},
		},
		{
			name:  "ifsc",
			check: IsValidIFSC,
			valid: []string{"SBIN0001234", "hdfc0abc123"},
			bad:   []string{"SBIN1001234", "SBI0001234", ""},
		},
		{
			name:  "pincode",
			check: IsValidPincode,
			valid: []string{"560001"},
			bad:   []string{"060001", "56000", ""},
		},
		{
			name:  "phone",
			check: IsValidPhoneNumber,
			valid: []string{"9876543210", "+919876543210", "09876543210", "+91 98765-43210"},
			bad:   []string{"5876543210", "987654321", "98765a3210", ""},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, s := range tc.valid {
				assert.True(t, tc.check(s), "expected %q to be accepted", s)
			}
			for _, s := range tc.bad {
				assert.False(t, tc.check(s), "expected %q to be rejected", s)
			}
		})
	}
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(" \t "))
	assert.False(t, IsEmpty(" NM123456789 "))
}

func TestIsInSlice(t *testing.T) {
	statuses := []string{"Pending", "Paid"}
	assert.True(t, IsInSlice("Paid", statuses))
	assert.False(t, IsInSlice("paid", statuses))
}

func TestPayrollPeriodBounds(t *testing.T) {
	assert.True(t, IsValidMonth(1))
	assert.True(t, IsValidMonth(12))
	assert.False(t, IsValidMonth(0))
	assert.False(t, IsValidMonth(13))

	assert.True(t, IsValidYear(2025))
	assert.False(t, IsValidYear(1999))
	assert.False(t, IsValidYear(2101))
}

func TestIsValidDate(t *testing.T) {
	d, ok := IsValidDate("2025-03-31")
	assert.True(t, ok)
	assert.Equal(t, 31, d.Day())

	for _, s := range []string{"2025-02-30", "2025/03/01", "31-03-2025", ""} {
		_, ok := IsValidDate(s)
		assert.False(t, ok, s)
	}
}

func TestIsValidDateTime(t *testing.T) {
	for _, s := range []string{"2025-03-01T09:30:00Z", "2025-03-01T09:30:00+05:30", "2025-03-01T09:30:00.123Z"} {
		_, ok := IsValidDateTime(s)
		assert.True(t, ok, s)
	}
	_, ok := IsValidDateTime("2025-03-01 09:30")
	assert.False(t, ok)
}

func TestCoordinates(t *testing.T) {
	assert.True(t, IsValidLatitude(12.97))
	assert.False(t, IsValidLatitude(91))
	assert.True(t, IsValidLongitude(-180))
	assert.False(t, IsValidLongitude(180.5))
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "month", Message: "month must be between 1 and 12"},
		{Field: "amount", Message: "amount must be greater than zero"},
	}

	assert.Equal(t, "month: month must be between 1 and 12; amount: amount must be greater than zero", errs.Error())
	assert.Equal(t, map[string]string{
		"month":  "month must be between 1 and 12",
		"amount": "amount must be greater than zero",
	}, errs.ToMap())
}
