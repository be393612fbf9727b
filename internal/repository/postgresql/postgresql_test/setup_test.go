package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/nmep-hris/payroll-backend-go/internal/domain/employee"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/database"
	"github.com/nmep-hris/payroll-backend-go/internal/repository/postgresql"
	"github.com/nmep-hris/payroll-backend-go/migrations"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var (
	testDB      *database.DB
	testDBErr   error
	testDBSetup sync.Once
)

// openTestDB connects to TEST_DATABASE_URL, applies the migrations once and
// empties every table. Tests are skipped when the variable is unset.
func openTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	testDBSetup.Do(func() {
		testDB, testDBErr = database.NewPostgreSQLDB(context.Background(), dsn, database.PoolOptions{MaxConns: 4})
		if testDBErr != nil {
			return
		}
		testDBErr = migrations.Apply(context.Background(), testDB.Pool)
	})
	require.NoError(t, testDBErr)

	tables := []string{"increments", "deductions", "incentives", "salaries", "advances", "attendances", "users", "employees"}
	for _, table := range tables {
		_, err := testDB.Exec(context.Background(), fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err, "truncate %s", table)
	}
	return testDB
}

func seedEmployee(t *testing.T, db *database.DB, code string) employee.Employee {
	t.Helper()

	emp, err := postgresql.NewEmployeeRepository(db).Create(context.Background(), employee.Employee{
		EmployeeID:    code,
		FirstName:     "Ravi",
		LastName:      "Kumar",
		Email:         code + "@example.com",
		Phone:         "9876543210",
		Department:    employee.DepartmentBodyshop,
		Designation:   "Denter",
		DateOfJoining: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		SalaryType:    employee.SalaryTypeMonthly,
		BasicSalary:   decimal.NewFromInt(18000),
		Status:        employee.StatusActive,
	})
	require.NoError(t, err)
	return emp
}

// seedCompleteEmployee creates an employee whose profile passes the payroll gate.
func seedCompleteEmployee(t *testing.T, db *database.DB, code string) employee.Employee {
	t.Helper()

	emp, err := postgresql.NewEmployeeRepository(db).Create(context.Background(), employee.Employee{
		EmployeeID:    code,
		FirstName:     "Meera",
		LastName:      "Das",
		Email:         code + "@example.com",
		Phone:         "9876543211",
		AadhaarNumber: "234567890123",
		PANNumber:     "ABCDE1234F",
		Bank:          employee.BankDetails{AccountNumber: "50100012345678", IFSCCode: "HDFC0001234", BankName: "HDFC"},
		Documents: employee.Documents{
			AadhaarCard: "https://files.test/" + code + "/aadhaar.pdf",
			PANCard:     "https://files.test/" + code + "/pan.pdf",
		},
		Department:    employee.DepartmentBodyshop,
		Designation:   "Painter",
		DateOfJoining: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
		SalaryType:    employee.SalaryTypeMonthly,
		BasicSalary:   decimal.NewFromInt(18000),
		Status:        employee.StatusActive,
	})
	require.NoError(t, err)
	require.True(t, emp.ProfileStatus.IsComplete, "missing %v", emp.ProfileStatus.MissingFields)
	return emp
}
