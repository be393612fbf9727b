package increment

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNormalize_DerivesAmountAndPercentage(t *testing.T) {
	got := Normalize(Increment{
		PreviousSalary:      decimal.NewFromInt(20000),
		NewSalary:           decimal.NewFromInt(22000),
		IncrementAmount:     decimal.NewFromInt(99),
		IncrementPercentage: decimal.NewFromInt(99),
		EffectiveDate:       time.Date(2025, 4, 1, 15, 30, 0, 0, time.UTC),
	})

	assert.True(t, got.IncrementAmount.Equal(decimal.NewFromInt(2000)), got.IncrementAmount.String())
	assert.True(t, got.IncrementPercentage.Equal(decimal.NewFromInt(10)), got.IncrementPercentage.String())
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), got.EffectiveDate)
	assert.Equal(t, StatusPending, got.Status)
}

func TestNormalize_ZeroPreviousSalary(t *testing.T) {
	got := Normalize(Increment{NewSalary: decimal.NewFromInt(15000)})

	assert.True(t, got.IncrementAmount.Equal(decimal.NewFromInt(15000)))
	assert.True(t, got.IncrementPercentage.IsZero())
}

func TestNormalize_Decrease(t *testing.T) {
	got := Normalize(Increment{
		PreviousSalary: decimal.NewFromInt(30000),
		NewSalary:      decimal.NewFromInt(27000),
	})

	assert.True(t, got.IncrementAmount.Equal(decimal.NewFromInt(-3000)))
	assert.True(t, got.IncrementPercentage.Equal(decimal.NewFromInt(-10)))
}

func TestCreateIncrementRequest_Validate(t *testing.T) {
	valid := CreateIncrementRequest{
		Employee:      "NM123456789",
		EffectiveDate: "2025-04-01",
		NewSalary:     decimal.NewFromInt(22000),
		Reason:        "Annual",
	}
	assert.NoError(t, valid.Validate())
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), valid.EffectiveTime())

	bad := valid
	bad.Reason = "Bonus"
	bad.EffectiveDate = "01-04-2025"
	assert.Error(t, bad.Validate())
}
