package dashboard

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nmep-hris/payroll-backend-go/internal/domain/dashboard"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/user"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/cache"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 15, 18, 30, 0, 0, time.UTC)

type fakeDashboardRepo struct {
	dashboard.DashboardRepository
	metricsCalls int
	metricsDay   time.Time
	since        time.Time
	month, year  int
	pendingErr   error
}

func (r *fakeDashboardRepo) Metrics(ctx context.Context, today time.Time) (dashboard.Metrics, error) {
	r.metricsCalls++
	r.metricsDay = today
	return dashboard.Metrics{TotalEmployees: 12, PresentToday: 9}, nil
}

func (r *fakeDashboardRepo) MonthlySummary(ctx context.Context, month, year int) (dashboard.MonthlySummary, error) {
	r.month, r.year = month, year
	return dashboard.MonthlySummary{}, nil
}

func (r *fakeDashboardRepo) AttendanceTrend(ctx context.Context, since time.Time) ([]dashboard.TrendPoint, error) {
	r.since = since
	return nil, nil
}

func (r *fakeDashboardRepo) Birthdays(ctx context.Context, month, limit int) ([]dashboard.Birthday, error) {
	return []dashboard.Birthday{{EmployeeID: "NM100000001", FirstName: "Asha"}}, nil
}

func (r *fakeDashboardRepo) PendingApprovals(ctx context.Context) (dashboard.PendingApprovals, error) {
	if r.pendingErr != nil {
		return dashboard.PendingApprovals{}, r.pendingErr
	}
	return dashboard.PendingApprovals{Advances: 2, IncompleteProfiles: 1}, nil
}

// mapCache keeps values in memory so repeated reads hit.
type mapCache struct {
	values map[string]any
}

func (c *mapCache) GetJSON(ctx context.Context, key string, target any) (bool, error) {
	v, ok := c.values[key]
	if !ok {
		return false, nil
	}
	if m, ok := target.(*dashboard.Metrics); ok {
		*m = v.(dashboard.Metrics)
	}
	return true, nil
}

func (c *mapCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	c.values[key] = value
	return nil
}

func (c *mapCache) DeletePattern(ctx context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range c.values {
		if strings.HasPrefix(key, prefix) {
			delete(c.values, key)
		}
	}
	return nil
}

func newTestService(repo *fakeDashboardRepo, c cache.Cache) *DashboardServiceImpl {
	svc := NewDashboardService(repo, c, 0).(*DashboardServiceImpl)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func actorContext(t *testing.T, role user.Role) context.Context {
	t.Helper()
	ctx, err := jwt.ContextWithActor(context.Background(), jwt.NewJWTService("test-secret", "1h").JWTAuth(), user.User{
		ID:   "0192e3a4-5b6c-7d8e-9f00-0000000000aa",
		Role: role,
	})
	require.NoError(t, err)
	return ctx
}

func TestGetMetrics_CachedPerDay(t *testing.T) {
	repo := &fakeDashboardRepo{}
	c := &mapCache{values: map[string]any{}}
	svc := newTestService(repo, c)
	ctx := actorContext(t, user.RoleAdmin)

	for range 2 {
		m, err := svc.GetMetrics(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(12), m.TotalEmployees)
	}

	assert.Equal(t, 1, repo.metricsCalls)
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), repo.metricsDay)
	assert.Contains(t, c.values, "dashboard:metrics:2025-03-15")
}

func TestGetMonthlySummary_DefaultsToCurrentPeriod(t *testing.T) {
	repo := &fakeDashboardRepo{}
	svc := newTestService(repo, cache.Noop{})

	got, err := svc.GetMonthlySummary(actorContext(t, user.RoleHR), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, repo.month)
	assert.Equal(t, 2025, repo.year)
	assert.Equal(t, 3, got.Month)
}

func TestGetAttendanceTrend_ClampsDays(t *testing.T) {
	repo := &fakeDashboardRepo{}
	svc := newTestService(repo, cache.Noop{})
	ctx := actorContext(t, user.RoleHR)

	points, err := svc.GetAttendanceTrend(ctx, 0)
	require.NoError(t, err)
	assert.NotNil(t, points)
	assert.Equal(t, time.Date(2025, 2, 13, 0, 0, 0, 0, time.UTC), repo.since)

	_, err = svc.GetAttendanceTrend(ctx, 5000)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), repo.since)
}

func TestGetUpcomingTasks(t *testing.T) {
	repo := &fakeDashboardRepo{}
	svc := newTestService(repo, cache.Noop{})

	tasks, err := svc.GetUpcomingTasks(actorContext(t, user.RoleAdmin))
	require.NoError(t, err)
	assert.Len(t, tasks.Birthdays, 1)
	assert.Equal(t, int64(2), tasks.PendingApprovals.Advances)

	repo.pendingErr = errors.New("db down")
	_, err = svc.GetUpcomingTasks(actorContext(t, user.RoleAdmin))
	assert.Error(t, err)
}

func TestDashboard_RestrictedToStaff(t *testing.T) {
	svc := newTestService(&fakeDashboardRepo{}, cache.Noop{})

	_, err := svc.GetMetrics(actorContext(t, user.RoleEmployee))
	assert.ErrorIs(t, err, dashboard.ErrUnauthorized)
}

func TestRefresh_DropsCachedRollups(t *testing.T) {
	repo := &fakeDashboardRepo{}
	c := &mapCache{values: map[string]any{}}
	svc := newTestService(repo, c)
	ctx := actorContext(t, user.RoleAdmin)

	_, err := svc.GetMetrics(ctx)
	require.NoError(t, err)
	c.values["other:key"] = 1

	require.NoError(t, svc.Refresh(ctx))
	assert.NotContains(t, c.values, "dashboard:metrics:2025-03-15")
	assert.Contains(t, c.values, "other:key")

	_, err = svc.GetMetrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.metricsCalls)
}
