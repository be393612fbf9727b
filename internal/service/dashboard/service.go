package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/nmep-hris/payroll-backend-go/internal/domain/dashboard"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/cache"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/jwt"
	"golang.org/x/sync/errgroup"
)

const defaultCacheTTL = 5 * time.Minute

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	cache cache.Cache
	ttl   time.Duration
	now   func() time.Time
}

// NewDashboardService caches rollups for ttl, falling back to five minutes.
func NewDashboardService(repo dashboard.DashboardRepository, c cache.Cache, ttl time.Duration) dashboard.DashboardService {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		cache:               c,
		ttl:                 ttl,
		now:                 time.Now,
	}
}

func (s *DashboardServiceImpl) authorize(ctx context.Context) error {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return err
	}
	if !actor.IsStaff() {
		return dashboard.ErrUnauthorized
	}
	return nil
}

// today is the current day as a UTC midnight.
func (s *DashboardServiceImpl) today() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *DashboardServiceImpl) GetMetrics(ctx context.Context) (dashboard.Metrics, error) {
	if err := s.authorize(ctx); err != nil {
		return dashboard.Metrics{}, err
	}

	today := s.today()
	key := "dashboard:metrics:" + today.Format("2006-01-02")
	return cache.Remember(ctx, s.cache, key, s.ttl, func(ctx context.Context) (dashboard.Metrics, error) {
		m, err := s.Metrics(ctx, today)
		if err != nil {
			return dashboard.Metrics{}, fmt.Errorf("failed to get dashboard metrics: %w", err)
		}
		return m, nil
	})
}

// GetMonthlySummary implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetMonthlySummary(ctx context.Context, month, year int) (dashboard.MonthlySummary, error) {
	if err := s.authorize(ctx); err != nil {
		return dashboard.MonthlySummary{}, err
	}

	now := s.now()
	if month < 1 || month > 12 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}

	key := fmt.Sprintf("dashboard:monthly:%d-%02d", year, month)
	return cache.Remember(ctx, s.cache, key, s.ttl, func(ctx context.Context) (dashboard.MonthlySummary, error) {
		summary, err := s.MonthlySummary(ctx, month, year)
		if err != nil {
			return dashboard.MonthlySummary{}, fmt.Errorf("failed to get monthly summary: %w", err)
		}
		summary.Month, summary.Year = month, year
		return summary, nil
	})
}

func (s *DashboardServiceImpl) GetDepartmentSummary(ctx context.Context) ([]dashboard.DepartmentSummary, error) {
	if err := s.authorize(ctx); err != nil {
		return nil, err
	}

	return cache.Remember(ctx, s.cache, "dashboard:departments", s.ttl, func(ctx context.Context) ([]dashboard.DepartmentSummary, error) {
		departments, err := s.DepartmentSummary(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get department summary: %w", err)
		}
		if departments == nil {
			departments = []dashboard.DepartmentSummary{}
		}
		return departments, nil
	})
}

// GetAttendanceTrend returns per-day status counts for the last days days,
// clamped to [1, MaxTrendDays] and defaulting to DefaultTrendDays.
func (s *DashboardServiceImpl) GetAttendanceTrend(ctx context.Context, days int) ([]dashboard.TrendPoint, error) {
	if err := s.authorize(ctx); err != nil {
		return nil, err
	}

	switch {
	case days <= 0:
		days = dashboard.DefaultTrendDays
	case days > dashboard.MaxTrendDays:
		days = dashboard.MaxTrendDays
	}
	since := s.today().AddDate(0, 0, -days)

	key := fmt.Sprintf("dashboard:trend:%s:%d", since.Format("2006-01-02"), days)
	return cache.Remember(ctx, s.cache, key, s.ttl, func(ctx context.Context) ([]dashboard.TrendPoint, error) {
		points, err := s.AttendanceTrend(ctx, since)
		if err != nil {
			return nil, fmt.Errorf("failed to get attendance trend: %w", err)
		}
		if points == nil {
			points = []dashboard.TrendPoint{}
		}
		return points, nil
	})
}

// GetUpcomingTasks loads this month's birthdays and the pending approvals
// concurrently.
func (s *DashboardServiceImpl) GetUpcomingTasks(ctx context.Context) (dashboard.UpcomingTasks, error) {
	if err := s.authorize(ctx); err != nil {
		return dashboard.UpcomingTasks{}, err
	}

	var (
		birthdays []dashboard.Birthday
		pending   dashboard.PendingApprovals
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		birthdays, err = s.Birthdays(gctx, int(s.now().Month()), dashboard.BirthdayLimit)
		if err != nil {
			return fmt.Errorf("failed to get birthdays: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		pending, err = s.PendingApprovals(gctx)
		if err != nil {
			return fmt.Errorf("failed to get pending approvals: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return dashboard.UpcomingTasks{}, err
	}

	if birthdays == nil {
		birthdays = []dashboard.Birthday{}
	}
	return dashboard.UpcomingTasks{
		Birthdays:        birthdays,
		PendingApprovals: pending,
	}, nil
}

// Refresh implements dashboard.DashboardService.
func (s *DashboardServiceImpl) Refresh(ctx context.Context) error {
	if err := s.authorize(ctx); err != nil {
		return err
	}
	if err := s.cache.DeletePattern(ctx, dashboard.CacheKeyPattern); err != nil {
		return fmt.Errorf("failed to refresh dashboard cache: %w", err)
	}
	return nil
}
