package salary

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nmep-hris/payroll-backend-go/internal/domain/advance"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/dashboard"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/deduction"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/employee"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/incentive"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/salary"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/user"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/cache"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/sheets"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	empRowID   = "0192e3a4-5b6c-7d8e-9f00-000000000001"
	empCode    = "NM100000001"
	salaryID   = "0192e3a4-5b6c-7d8e-9f00-0000000000f1"
	payrollRef = "0192e3a4-5b6c-7d8e-9f00-0000000000aa"
)

var fixedNow = time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ---- fakes ----

type passThroughTransactor struct {
	calls  int
	failed int
}

func (t *passThroughTransactor) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	t.calls++
	err := fn(ctx)
	if err != nil {
		t.failed++
	}
	return err
}

type fakeSalaryRepo struct {
	salaries  map[string]salary.Salary
	exists    bool
	createErr error
	synced    []string

	locked       int
	beforeUpdate func()
}

func (r *fakeSalaryRepo) Create(ctx context.Context, s salary.Salary) (salary.Salary, error) {
	if r.createErr != nil {
		return salary.Salary{}, r.createErr
	}
	s = salary.Normalize(s)
	s.ID = salaryID
	r.salaries[s.ID] = s
	return s, nil
}

func (r *fakeSalaryRepo) GetByID(ctx context.Context, id string) (salary.Salary, error) {
	s, ok := r.salaries[id]
	if !ok {
		return salary.Salary{}, salary.ErrSalaryNotFound
	}
	return s, nil
}

func (r *fakeSalaryRepo) ExistsForPeriod(ctx context.Context, employeeID string, month, year int) (bool, error) {
	return r.exists, nil
}

func (r *fakeSalaryRepo) List(ctx context.Context, filter salary.SalaryFilter) ([]salary.Salary, int64, error) {
	var out []salary.Salary
	for _, s := range r.salaries {
		if filter.EmployeeID == "" || s.EmployeeID == filter.EmployeeID {
			out = append(out, s)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeSalaryRepo) GetByIDForUpdate(ctx context.Context, id string) (salary.Salary, error) {
	r.locked++
	return r.GetByID(ctx, id)
}

func (r *fakeSalaryRepo) UpdatePayment(ctx context.Context, s salary.Salary, from salary.PaymentStatus) (salary.Salary, error) {
	if r.beforeUpdate != nil {
		r.beforeUpdate()
	}
	if r.salaries[s.ID].PaymentStatus != from {
		return salary.Salary{}, salary.ErrInvalidStatusTransition
	}
	r.salaries[s.ID] = s
	return s, nil
}

func (r *fakeSalaryRepo) MarkSynced(ctx context.Context, id string, at time.Time) error {
	r.synced = append(r.synced, id)
	return nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	employees map[string]employee.Employee
}

func (r *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *fakeEmployeeRepo) GetByEmployeeID(ctx context.Context, code string) (employee.Employee, error) {
	for _, e := range r.employees {
		if e.EmployeeID == code {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository
	records []attendance.Attendance
}

func (r *fakeAttendanceRepo) ListForEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	return r.records, nil
}

type fakeIncentiveRepo struct {
	incentive.IncentiveRepository
	approved []incentive.Incentive
	paid     []string
	paidIn   string
}

func (r *fakeIncentiveRepo) ListApprovedForPeriod(ctx context.Context, employeeID string, month, year int) ([]incentive.Incentive, error) {
	return r.approved, nil
}

func (r *fakeIncentiveRepo) MarkPaid(ctx context.Context, ids []string, salaryID string) error {
	r.paid = ids
	r.paidIn = salaryID
	return nil
}

type fakeDeductionRepo struct {
	deduction.DeductionRepository
	approved   []deduction.Deduction
	deducted   []string
	deductedIn string
	markErr    error
}

func (r *fakeDeductionRepo) ListApprovedForPeriod(ctx context.Context, employeeID string, month, year int) ([]deduction.Deduction, error) {
	return r.approved, nil
}

func (r *fakeDeductionRepo) MarkDeducted(ctx context.Context, ids []string, salaryID string) error {
	if r.markErr != nil {
		return r.markErr
	}
	r.deducted = ids
	r.deductedIn = salaryID
	return nil
}

type fakeAdvanceRepo struct {
	advance.AdvanceRepository
	due     []advance.Advance
	updated []advance.Advance
}

func (r *fakeAdvanceRepo) ListDueForSalaryDeduction(ctx context.Context, employeeID string) ([]advance.Advance, error) {
	return r.due, nil
}

func (r *fakeAdvanceRepo) Update(ctx context.Context, a advance.Advance) (advance.Advance, error) {
	a = advance.Normalize(a)
	r.updated = append(r.updated, a)
	return a, nil
}

type fakeSyncer struct {
	sheets.Noop
	enabled bool
	err     error
	calls   int
}

func (s *fakeSyncer) Enabled() bool { return s.enabled }

func (s *fakeSyncer) SyncSalary(ctx context.Context, sal salary.Salary, e employee.Employee) error {
	s.calls++
	return s.err
}

type forgetfulCache struct {
	cache.Noop
	dropped []string
}

func (c *forgetfulCache) DeletePattern(ctx context.Context, pattern string) error {
	c.dropped = append(c.dropped, pattern)
	return nil
}

// ---- fixture ----

type fixture struct {
	svc        *SalaryServiceImpl
	tx         *passThroughTransactor
	salaries   *fakeSalaryRepo
	employees  *fakeEmployeeRepo
	attendance *fakeAttendanceRepo
	incentives *fakeIncentiveRepo
	deductions *fakeDeductionRepo
	advances   *fakeAdvanceRepo
	syncer     *fakeSyncer
	rollups    *forgetfulCache
}

func completeEmployee(salaryType employee.SalaryType, basic decimal.Decimal) employee.Employee {
	return employee.Normalize(employee.Employee{
		ID:            empRowID,
		EmployeeID:    empCode,
		FirstName:     "Ravi",
		LastName:      "Kumar",
		AadhaarNumber: "234567890123",
		PANNumber:     "ABCDE1234F",
		Bank:          employee.BankDetails{AccountNumber: "001122334455", IFSCCode: "SBIN0001234"},
		Documents:     employee.Documents{AadhaarCard: "https://files/a.pdf", PANCard: "https://files/p.pdf"},
		SalaryType:    salaryType,
		BasicSalary:   basic,
		Status:        employee.StatusActive,
	})
}

func newFixture(emp employee.Employee) *fixture {
	f := &fixture{
		tx:         &passThroughTransactor{},
		salaries:   &fakeSalaryRepo{salaries: map[string]salary.Salary{}},
		employees:  &fakeEmployeeRepo{employees: map[string]employee.Employee{emp.ID: emp}},
		attendance: &fakeAttendanceRepo{},
		incentives: &fakeIncentiveRepo{},
		deductions: &fakeDeductionRepo{},
		advances:   &fakeAdvanceRepo{},
		syncer:     &fakeSyncer{},
		rollups:    &forgetfulCache{},
	}
	f.svc = NewSalaryService(f.tx, f.salaries, f.employees, f.attendance, f.incentives, f.deductions, f.advances, f.syncer, salary.DefaultPolicy(), f.rollups).(*SalaryServiceImpl)
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func actorContext(t *testing.T, role user.Role, employeeRef *string) context.Context {
	t.Helper()
	ctx, err := jwt.ContextWithActor(context.Background(), jwt.NewJWTService("test-secret", "1h").JWTAuth(), user.User{
		ID:            payrollRef,
		Role:          role,
		EmployeeRef:   employeeRef,
		HRPermissions: user.HRPermissions{CanManageSalary: true},
	})
	require.NoError(t, err)
	return ctx
}

func day(d int, status attendance.Status, night bool) attendance.Attendance {
	return attendance.Attendance{
		EmployeeID:  empRowID,
		Date:        time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC),
		Status:      status,
		IsNightDuty: night,
	}
}

// ---- tests ----

func TestGenerateSalary_MonthlyEmployee(t *testing.T) {
	f := newFixture(completeEmployee(employee.SalaryTypeMonthly, dec("15000")))
	f.attendance.records = []attendance.Attendance{
		day(3, attendance.StatusPresent, true),
		day(4, attendance.StatusPresent, true),
		day(5, attendance.StatusAbsent, false),
	}
	f.incentives.approved = []incentive.Incentive{{ID: "inc-1", Amount: dec("1000")}}
	f.deductions.approved = []deduction.Deduction{{ID: "ded-1", Amount: dec("500")}}
	f.advances.due = []advance.Advance{
		advance.Normalize(advance.Advance{ID: "adv-1", Amount: dec("3000"), Installments: 3, ApprovalStatus: advance.ApprovalApproved}),
		advance.Normalize(advance.Advance{ID: "adv-cash", Amount: dec("3000"), ApprovalStatus: advance.ApprovalApproved, RepaymentMode: advance.RepaymentModeCash}),
	}

	got, err := f.svc.GenerateSalary(actorContext(t, user.RoleAdmin, nil), salary.GenerateSalaryRequest{
		EmployeeID: empCode, Month: 3, Year: 2025, Remarks: "march run",
	})
	require.NoError(t, err)

	assert.Equal(t, salaryID, got.ID)
	assert.Equal(t, empRowID, got.EmployeeID)
	assert.True(t, got.BasicSalary.Equal(dec("15000")))
	assert.True(t, got.HRA.Equal(dec("6000")), got.HRA.String())
	assert.True(t, got.NightDutyAllowance.Equal(dec("400")))
	assert.True(t, got.TotalIncentives.Equal(dec("1000")))
	assert.True(t, got.ProvidentFund.Equal(dec("1800")))
	assert.True(t, got.ESI.Equal(dec("157.5")), got.ESI.String())
	assert.True(t, got.TotalAdvances.Equal(dec("1000")))
	assert.True(t, got.TotalDeductions.Equal(dec("500")))
	assert.True(t, got.GrossSalary.Equal(dec("22400")), got.GrossSalary.String())
	assert.True(t, got.TotalDeductionsAmount.Equal(dec("3457.5")), got.TotalDeductionsAmount.String())
	assert.True(t, got.NetSalary.Equal(dec("18942.5")), got.NetSalary.String())
	assert.Equal(t, 2, got.AttendanceSummary.PresentDays)
	assert.Equal(t, 2, got.AttendanceSummary.NightDutyDays)
	require.NotNil(t, got.GeneratedBy)
	assert.Equal(t, payrollRef, *got.GeneratedBy)
	assert.Equal(t, []string{"adv-1"}, got.AdvanceIDs)

	assert.Equal(t, []string{"inc-1"}, f.incentives.paid)
	assert.Equal(t, salaryID, f.incentives.paidIn)
	assert.Equal(t, []string{"ded-1"}, f.deductions.deducted)
	assert.Equal(t, salaryID, f.deductions.deductedIn)

	require.Len(t, f.advances.updated, 1)
	repaid := f.advances.updated[0]
	assert.Equal(t, advance.RepaymentInProgress, repaid.RepaymentStatus)
	assert.True(t, repaid.PaidAmount.Equal(dec("1000")))
	assert.True(t, repaid.RemainingAmount.Equal(dec("2000")))
	require.Len(t, repaid.Repayments, 1)
	assert.Equal(t, 3, repaid.Repayments[0].Month)
	assert.Equal(t, fixedNow, repaid.Repayments[0].PaidDate)
	require.NotNil(t, repaid.Repayments[0].SalaryID)
	assert.Equal(t, salaryID, *repaid.Repayments[0].SalaryID)

	assert.Equal(t, 1, f.tx.calls)
	assert.Zero(t, f.tx.failed)
}

func TestGenerateSalary_DailyEmployee(t *testing.T) {
	f := newFixture(completeEmployee(employee.SalaryTypeDaily, dec("500")))
	for d := 1; d <= 20; d++ {
		f.attendance.records = append(f.attendance.records, day(d, attendance.StatusPresent, false))
	}
	f.attendance.records = append(f.attendance.records, day(21, attendance.StatusHalfDay, false), day(22, attendance.StatusHalfDay, false))

	got, err := f.svc.GenerateSalary(actorContext(t, user.RoleAdmin, nil), salary.GenerateSalaryRequest{EmployeeID: empRowID, Month: 3, Year: 2025})
	require.NoError(t, err)

	assert.True(t, got.BasicSalary.Equal(dec("10500")), got.BasicSalary.String())
	assert.True(t, got.HRA.IsZero())
	assert.True(t, got.ProvidentFund.IsZero())
	assert.True(t, got.ESI.Equal(dec("78.75")), got.ESI.String())
	assert.Empty(t, f.advances.updated)
}

func TestGenerateSalary_IncompleteProfile(t *testing.T) {
	emp := completeEmployee(employee.SalaryTypeMonthly, dec("15000"))
	emp.PANNumber = ""
	emp.Documents.PANCard = ""
	emp = employee.Normalize(emp)
	f := newFixture(emp)

	_, err := f.svc.GenerateSalary(actorContext(t, user.RoleAdmin, nil), salary.GenerateSalaryRequest{EmployeeID: empCode, Month: 3, Year: 2025})
	require.ErrorIs(t, err, salary.ErrIncompleteProfile)

	var incomplete *salary.IncompleteProfileError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, []string{employee.FieldPANNumber, employee.FieldPANDocument}, incomplete.MissingFields)
	assert.Empty(t, f.salaries.salaries)
	assert.Zero(t, f.tx.calls)
}

func TestGenerateSalary_EmployeeNotFound(t *testing.T) {
	f := newFixture(completeEmployee(employee.SalaryTypeMonthly, dec("15000")))

	_, err := f.svc.GenerateSalary(actorContext(t, user.RoleAdmin, nil), salary.GenerateSalaryRequest{EmployeeID: "NM999999999", Month: 3, Year: 2025})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestGenerateSalary_DuplicatePeriod(t *testing.T) {
	f := newFixture(completeEmployee(employee.SalaryTypeMonthly, dec("15000")))
	f.salaries.exists = true

	_, err := f.svc.GenerateSalary(actorContext(t, user.RoleAdmin, nil), salary.GenerateSalaryRequest{EmployeeID: empCode, Month: 3, Year: 2025})
	assert.ErrorIs(t, err, salary.ErrSalaryAlreadyExists)
	assert.Zero(t, f.tx.calls)
}

func TestGenerateSalary_ConcurrentInsertLosesAndTouchesNothing(t *testing.T) {
	f := newFixture(completeEmployee(employee.SalaryTypeMonthly, dec("15000")))
	f.salaries.createErr = salary.ErrSalaryAlreadyExists
	f.incentives.approved = []incentive.Incentive{{ID: "inc-1", Amount: dec("1000")}}
	f.advances.due = []advance.Advance{
		advance.Normalize(advance.Advance{ID: "adv-1", Amount: dec("3000"), ApprovalStatus: advance.ApprovalApproved}),
	}

	_, err := f.svc.GenerateSalary(actorContext(t, user.RoleAdmin, nil), salary.GenerateSalaryRequest{EmployeeID: empCode, Month: 3, Year: 2025})
	assert.ErrorIs(t, err, salary.ErrSalaryAlreadyExists)
	assert.Empty(t, f.incentives.paid)
	assert.Empty(t, f.advances.updated)
	assert.Equal(t, 1, f.tx.failed)
}

func TestGenerateSalary_LaterStepFailureAbortsTransaction(t *testing.T) {
	f := newFixture(completeEmployee(employee.SalaryTypeMonthly, dec("15000")))
	f.deductions.approved = []deduction.Deduction{{ID: "ded-1", Amount: dec("500")}}
	f.deductions.markErr = errors.New("deadlock detected")
	f.advances.due = []advance.Advance{
		advance.Normalize(advance.Advance{ID: "adv-1", Amount: dec("3000"), ApprovalStatus: advance.ApprovalApproved}),
	}

	_, err := f.svc.GenerateSalary(actorContext(t, user.RoleAdmin, nil), salary.GenerateSalaryRequest{EmployeeID: empCode, Month: 3, Year: 2025})
	require.Error(t, err)
	assert.Equal(t, 1, f.tx.failed)
	assert.Empty(t, f.advances.updated)
}

func TestGenerateSalary_SyncFlagsSalary(t *testing.T) {
	f := newFixture(completeEmployee(employee.SalaryTypeMonthly, dec("15000")))
	f.syncer.enabled = true

	got, err := f.svc.GenerateSalary(actorContext(t, user.RoleAdmin, nil), salary.GenerateSalaryRequest{EmployeeID: empCode, Month: 3, Year: 2025})
	require.NoError(t, err)
	assert.True(t, got.SyncedToSheets)
	require.NotNil(t, got.SheetsSyncDate)
	assert.Equal(t, []string{salaryID}, f.salaries.synced)
}

func TestGenerateSalary_SyncFailureIsSwallowed(t *testing.T) {
	f := newFixture(completeEmployee(employee.SalaryTypeMonthly, dec("15000")))
	f.syncer.enabled = true
	f.syncer.err = errors.New("sheets unavailable")

	got, err := f.svc.GenerateSalary(actorContext(t, user.RoleAdmin, nil), salary.GenerateSalaryRequest{EmployeeID: empCode, Month: 3, Year: 2025})
	require.NoError(t, err)
	assert.False(t, got.SyncedToSheets)
	assert.Empty(t, f.salaries.synced)
	assert.Equal(t, 1, f.syncer.calls)
}

func TestUpdatePaymentStatus(t *testing.T) {
	f := newFixture(completeEmployee(employee.SalaryTypeMonthly, dec("15000")))
	f.salaries.salaries[salaryID] = salary.Normalize(salary.Salary{ID: salaryID, EmployeeID: empRowID, Month: 3, Year: 2025})
	ctx := actorContext(t, user.RoleHR, nil)

	processing, err := f.svc.UpdatePaymentStatus(ctx, salary.UpdatePaymentStatusRequest{ID: salaryID, PaymentStatus: "Processing"})
	require.NoError(t, err)
	assert.Equal(t, salary.PaymentStatusProcessing, processing.PaymentStatus)
	assert.Nil(t, processing.PaymentDate)

	paid, err := f.svc.UpdatePaymentStatus(ctx, salary.UpdatePaymentStatusRequest{
		ID: salaryID, PaymentStatus: "Paid", PaymentMode: "Bank Transfer", TransactionID: "UTR123",
	})
	require.NoError(t, err)
	assert.Equal(t, salary.PaymentStatusPaid, paid.PaymentStatus)
	require.NotNil(t, paid.PaymentDate)
	assert.Equal(t, fixedNow, *paid.PaymentDate)
	require.NotNil(t, paid.ApprovedBy)
	assert.Equal(t, payrollRef, *paid.ApprovedBy)
	assert.Equal(t, "UTR123", paid.TransactionID)

	_, err = f.svc.UpdatePaymentStatus(ctx, salary.UpdatePaymentStatusRequest{ID: salaryID, PaymentStatus: "Hold"})
	assert.ErrorIs(t, err, salary.ErrInvalidStatusTransition)
}

func TestUpdatePaymentStatus_LocksRowInTransaction(t *testing.T) {
	f := newFixture(completeEmployee(employee.SalaryTypeMonthly, dec("15000")))
	f.salaries.salaries[salaryID] = salary.Normalize(salary.Salary{ID: salaryID, EmployeeID: empRowID, Month: 3, Year: 2025})

	_, err := f.svc.UpdatePaymentStatus(actorContext(t, user.RoleHR, nil), salary.UpdatePaymentStatusRequest{ID: salaryID, PaymentStatus: "Processing"})
	require.NoError(t, err)
	assert.Equal(t, 1, f.tx.calls)
	assert.Equal(t, 1, f.salaries.locked)
}

func TestUpdatePaymentStatus_ConcurrentPaidWins(t *testing.T) {
	f := newFixture(completeEmployee(employee.SalaryTypeMonthly, dec("15000")))
	f.salaries.salaries[salaryID] = salary.Normalize(salary.Salary{ID: salaryID, EmployeeID: empRowID, Month: 3, Year: 2025})

	// Another request marks the salary Paid after this one read it as Pending.
	f.salaries.beforeUpdate = func() {
		paid := f.salaries.salaries[salaryID]
		paid.PaymentStatus = salary.PaymentStatusPaid
		f.salaries.salaries[salaryID] = paid
		f.salaries.beforeUpdate = nil
	}

	_, err := f.svc.UpdatePaymentStatus(actorContext(t, user.RoleHR, nil), salary.UpdatePaymentStatusRequest{ID: salaryID, PaymentStatus: "Hold"})
	assert.ErrorIs(t, err, salary.ErrInvalidStatusTransition)
	assert.Equal(t, salary.PaymentStatusPaid, f.salaries.salaries[salaryID].PaymentStatus)
	assert.Equal(t, 1, f.tx.failed)
}

func TestGenerateSalary_DropsDashboardRollups(t *testing.T) {
	f := newFixture(completeEmployee(employee.SalaryTypeMonthly, dec("15000")))

	_, err := f.svc.GenerateSalary(actorContext(t, user.RoleAdmin, nil), salary.GenerateSalaryRequest{EmployeeID: empCode, Month: 3, Year: 2025})
	require.NoError(t, err)
	assert.Equal(t, []string{dashboard.CacheKeyPattern}, f.rollups.dropped)

	f.salaries.exists = true
	_, err = f.svc.GenerateSalary(actorContext(t, user.RoleAdmin, nil), salary.GenerateSalaryRequest{EmployeeID: empCode, Month: 3, Year: 2025})
	require.ErrorIs(t, err, salary.ErrSalaryAlreadyExists)
	assert.Len(t, f.rollups.dropped, 1)
}

func TestGetSalary_EmployeeScopedToSelf(t *testing.T) {
	f := newFixture(completeEmployee(employee.SalaryTypeMonthly, dec("15000")))
	f.salaries.salaries[salaryID] = salary.Normalize(salary.Salary{ID: salaryID, EmployeeID: empRowID, Month: 3, Year: 2025})

	self := empRowID
	_, err := f.svc.GetSalary(actorContext(t, user.RoleEmployee, &self), salaryID)
	require.NoError(t, err)

	other := "0192e3a4-5b6c-7d8e-9f00-000000000002"
	_, err = f.svc.GetSalary(actorContext(t, user.RoleEmployee, &other), salaryID)
	assert.ErrorIs(t, err, salary.ErrUnauthorized)

	_, err = f.svc.GetSalary(actorContext(t, user.RoleHR, nil), "missing")
	assert.ErrorIs(t, err, salary.ErrSalaryNotFound)
}

func TestListSalaries_EmployeeFilterForced(t *testing.T) {
	f := newFixture(completeEmployee(employee.SalaryTypeMonthly, dec("15000")))
	f.salaries.salaries[salaryID] = salary.Normalize(salary.Salary{ID: salaryID, EmployeeID: empRowID, Month: 3, Year: 2025})
	f.salaries.salaries["other"] = salary.Normalize(salary.Salary{ID: "other", EmployeeID: "someone-else", Month: 3, Year: 2025})

	self := empRowID
	items, total, err := f.svc.ListSalaries(actorContext(t, user.RoleEmployee, &self), salary.SalaryFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, salaryID, items[0].ID)

	_, total, err = f.svc.ListSalaries(actorContext(t, user.RoleAdmin, nil), salary.SalaryFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestPayslip(t *testing.T) {
	f := newFixture(completeEmployee(employee.SalaryTypeMonthly, dec("15000")))
	f.salaries.salaries[salaryID] = salary.Normalize(salary.Salary{
		ID: salaryID, EmployeeID: empRowID, Month: 3, Year: 2025, BasicSalary: dec("15000"),
	})

	pdf, name, err := f.svc.Payslip(actorContext(t, user.RoleAdmin, nil), salaryID)
	require.NoError(t, err)
	assert.Equal(t, "payslip_NM100000001_2025_03.pdf", name)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}
