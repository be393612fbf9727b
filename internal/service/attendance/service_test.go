package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nmep-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/dashboard"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/employee"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/user"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/cache"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/sheets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ravi   = "0192e3a4-5b6c-7d8e-9f00-000000000001"
	meera  = "0192e3a4-5b6c-7d8e-9f00-000000000002"
	hrUser = "0192e3a4-5b6c-7d8e-9f00-0000000000aa"
)

// fakeAttendanceRepo enforces one record per employee and day like the
// unique constraint does.
type fakeAttendanceRepo struct {
	records    map[string]attendance.Attendance
	failInsert error
	lastFilter attendance.AttendanceFilter
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: map[string]attendance.Attendance{}}
}

func dayKey(employeeID string, d time.Time) string {
	return employeeID + "/" + d.Format("2006-01-02")
}

func (r *fakeAttendanceRepo) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	if r.failInsert != nil {
		return attendance.Attendance{}, r.failInsert
	}
	a = attendance.Normalize(a)
	key := dayKey(a.EmployeeID, a.Date)
	if _, ok := r.records[key]; ok {
		return attendance.Attendance{}, attendance.ErrAttendanceAlreadyMarked
	}
	a.ID = key
	r.records[key] = a
	return a, nil
}

func (r *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	a, ok := r.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return a, nil
}

func (r *fakeAttendanceRepo) Update(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	a = attendance.Normalize(a)
	r.records[a.ID] = a
	return a, nil
}

func (r *fakeAttendanceRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.records[id]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	delete(r.records, id)
	return nil
}

func (r *fakeAttendanceRepo) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	r.lastFilter = filter
	var out []attendance.Attendance
	for _, a := range r.records {
		if filter.EmployeeID == "" || a.EmployeeID == filter.EmployeeID {
			out = append(out, a)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeAttendanceRepo) ListForEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, a := range r.records {
		if a.EmployeeID == employeeID && !a.Date.Before(from) && a.Date.Before(to) {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	employees []employee.Employee
}

func (r *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	for _, e := range r.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) GetByEmployeeID(ctx context.Context, code string) (employee.Employee, error) {
	for _, e := range r.employees {
		if e.EmployeeID == code {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

type countingSyncer struct {
	sheets.Noop
	calls int
	err   error
}

func (s *countingSyncer) SyncAttendance(ctx context.Context, a attendance.Attendance, e employee.Employee) error {
	s.calls++
	return s.err
}

// forgetfulCache records invalidations.
type forgetfulCache struct {
	cache.Noop
	dropped []string
}

func (c *forgetfulCache) DeletePattern(ctx context.Context, pattern string) error {
	c.dropped = append(c.dropped, pattern)
	return nil
}

func fixture() (*AttendanceServiceImpl, *fakeAttendanceRepo, *countingSyncer) {
	repo := newFakeAttendanceRepo()
	syncer := &countingSyncer{}
	employees := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: ravi, EmployeeID: "NM100000001", FirstName: "Ravi", LastName: "Kumar", Status: employee.StatusActive},
		{ID: meera, EmployeeID: "NM100000002", FirstName: "Meera", LastName: "Das", Status: employee.StatusTerminated},
	}}
	svc := NewAttendanceService(repo, employees, syncer, cache.Noop{}).(*AttendanceServiceImpl)
	return svc, repo, syncer
}

func actorContext(t *testing.T, role user.Role, employeeRef *string) context.Context {
	t.Helper()
	ctx, err := jwt.ContextWithActor(context.Background(), jwt.NewJWTService("test-secret", "1h").JWTAuth(), user.User{
		ID:          hrUser,
		Role:        role,
		EmployeeRef: employeeRef,
	})
	require.NoError(t, err)
	return ctx
}

func TestMarkAttendance_SecondMarkForSameDayRejected(t *testing.T) {
	svc, _, syncer := fixture()
	ctx := actorContext(t, user.RoleHR, nil)

	req := attendance.MarkAttendanceRequest{Employee: "NM100000001", Date: "2025-03-03", Status: "Present"}
	first, err := svc.MarkAttendance(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, first.MarkedBy)
	assert.Equal(t, hrUser, *first.MarkedBy)

	_, err = svc.MarkAttendance(ctx, req)
	assert.ErrorIs(t, err, attendance.ErrAttendanceAlreadyMarked)

	req.Date = "2025-03-04"
	_, err = svc.MarkAttendance(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 2, syncer.calls)
}

func TestMarkAttendance_DropsDashboardRollups(t *testing.T) {
	svc, _, _ := fixture()
	rollups := &forgetfulCache{}
	svc.rollups = rollups
	ctx := actorContext(t, user.RoleHR, nil)

	req := attendance.MarkAttendanceRequest{Employee: "NM100000001", Date: "2025-03-03", Status: "Present"}
	_, err := svc.MarkAttendance(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, []string{dashboard.CacheKeyPattern}, rollups.dropped)

	_, err = svc.MarkAttendance(ctx, req)
	require.ErrorIs(t, err, attendance.ErrAttendanceAlreadyMarked)
	assert.Len(t, rollups.dropped, 1, "a rejected mark leaves the cache alone")
}

func TestMarkAttendance_InactiveEmployee(t *testing.T) {
	svc, _, _ := fixture()

	_, err := svc.MarkAttendance(actorContext(t, user.RoleAdmin, nil), attendance.MarkAttendanceRequest{
		Employee: meera, Date: "2025-03-03", Status: "Present",
	})
	assert.ErrorIs(t, err, attendance.ErrEmployeeNotActive)
}

func TestMarkAttendance_SyncFailureIsSwallowed(t *testing.T) {
	svc, repo, syncer := fixture()
	syncer.err = errors.New("quota exceeded")

	_, err := svc.MarkAttendance(actorContext(t, user.RoleAdmin, nil), attendance.MarkAttendanceRequest{
		Employee: ravi, Date: "2025-03-03", Status: "Absent",
	})
	require.NoError(t, err)
	assert.Len(t, repo.records, 1)
}

func TestMarkBulkAttendance_PartialSuccess(t *testing.T) {
	svc, _, _ := fixture()
	ctx := actorContext(t, user.RoleHR, nil)

	_, err := svc.MarkAttendance(ctx, attendance.MarkAttendanceRequest{Employee: ravi, Date: "2025-03-05", Status: "Present"})
	require.NoError(t, err)

	result, err := svc.MarkBulkAttendance(ctx, attendance.BulkAttendanceRequest{
		Date: "2025-03-05",
		Records: []attendance.BulkAttendanceRecord{
			{Employee: "NM100000001", Status: "Present"},
			{Employee: "NM100000002", Status: "Present"},
			{Employee: "NM999999999", Status: "Present"},
			{Employee: ravi, Status: "Sleeping"},
		},
	})
	require.NoError(t, err)
	assert.Empty(t, result.Success)
	require.Len(t, result.Failed, 4)
	assert.Equal(t, attendance.ErrAttendanceAlreadyMarked.Error(), result.Failed[0].Reason)
	assert.Equal(t, attendance.ErrEmployeeNotActive.Error(), result.Failed[1].Reason)
	assert.Equal(t, employee.ErrEmployeeNotFound.Error(), result.Failed[2].Reason)
}

func TestMarkBulkAttendance_HidesInternalErrors(t *testing.T) {
	svc, repo, _ := fixture()
	repo.failInsert = errors.New("pq: connection refused")

	result, err := svc.MarkBulkAttendance(actorContext(t, user.RoleHR, nil), attendance.BulkAttendanceRequest{
		Date:    "2025-03-05",
		Records: []attendance.BulkAttendanceRecord{{Employee: ravi, Status: "Present"}},
	})
	require.NoError(t, err)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "failed to mark attendance", result.Failed[0].Reason)
}

func TestListAttendance_EmployeeSeesOwnRecords(t *testing.T) {
	svc, repo, _ := fixture()
	self := ravi

	_, err := svc.ListAttendance(actorContext(t, user.RoleEmployee, &self), attendance.AttendanceFilter{EmployeeID: meera})
	require.NoError(t, err)
	assert.Equal(t, ravi, repo.lastFilter.EmployeeID)

	_, err = svc.ListAttendance(actorContext(t, user.RoleEmployee, nil), attendance.AttendanceFilter{})
	assert.ErrorIs(t, err, attendance.ErrUnauthorized)

	_, err = svc.ListAttendance(actorContext(t, user.RoleHR, nil), attendance.AttendanceFilter{EmployeeID: "NM100000002"})
	require.NoError(t, err)
	assert.Equal(t, meera, repo.lastFilter.EmployeeID)
}

func TestUpdateAttendance_RecomputesWorkingHours(t *testing.T) {
	svc, _, _ := fixture()
	ctx := actorContext(t, user.RoleHR, nil)

	marked, err := svc.MarkAttendance(ctx, attendance.MarkAttendanceRequest{Employee: ravi, Date: "2025-03-06", Status: "Present"})
	require.NoError(t, err)
	assert.Nil(t, marked.WorkingHours)

	in, out := "2025-03-06T09:00:00Z", "2025-03-06T17:30:00Z"
	updated, err := svc.UpdateAttendance(ctx, attendance.UpdateAttendanceRequest{ID: marked.ID, CheckInTime: &in, CheckOutTime: &out})
	require.NoError(t, err)
	require.NotNil(t, updated.WorkingHours)
	assert.InDelta(t, 8.5, *updated.WorkingHours, 0.001)
}

func TestGetSummary(t *testing.T) {
	svc, _, _ := fixture()
	ctx := actorContext(t, user.RoleHR, nil)

	for date, status := range map[string]string{
		"2025-02-03": "Present",
		"2025-02-04": "Half Day",
		"2025-02-05": "Absent",
		"2025-03-01": "Present",
	} {
		_, err := svc.MarkAttendance(ctx, attendance.MarkAttendanceRequest{Employee: ravi, Date: date, Status: status})
		require.NoError(t, err)
	}

	resp, err := svc.GetSummary(ctx, "NM100000001", 2, 2025)
	require.NoError(t, err)
	assert.Equal(t, "NM100000001", resp.Employee.ID)
	assert.Equal(t, "Ravi Kumar", resp.Employee.Name)
	assert.Equal(t, 1, resp.Summary.PresentDays)
	assert.Equal(t, 1, resp.Summary.HalfDays)
	assert.Equal(t, 1, resp.Summary.AbsentDays)
	assert.Equal(t, 24, resp.Summary.TotalWorkingDays)

	_, err = svc.GetSummary(ctx, ravi, 13, 2025)
	require.Error(t, err)

	other := meera
	_, err = svc.GetSummary(actorContext(t, user.RoleEmployee, &other), ravi, 2, 2025)
	assert.ErrorIs(t, err, attendance.ErrUnauthorized)
}
