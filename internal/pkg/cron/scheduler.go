package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// JobFunc is the unit of background work; it should honour ctx cancellation.
type JobFunc func(ctx context.Context) error

type job struct {
	name     string
	interval time.Duration
	run      JobFunc
	running  sync.Mutex
}

// Scheduler runs housekeeping jobs at fixed intervals until stopped.
// Each job fires once on Start and then on every tick. A tick that arrives
// while the previous run of the same job is still in progress is skipped.
type Scheduler struct {
	mu      sync.Mutex
	jobs    []*job
	started bool

	cancel   context.CancelFunc
	wg       sync.WaitGroup
	stopOnce sync.Once
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// AddJob registers fn under name. Jobs added after Start only run through RunOnce.
func (s *Scheduler) AddJob(name string, interval time.Duration, fn JobFunc) {
	if interval <= 0 {
		interval = time.Hour
	}

	s.mu.Lock()
	s.jobs = append(s.jobs, &job{name: name, interval: interval, run: fn})
	s.mu.Unlock()

	slog.Info("Cron job registered", "name", name, "interval", interval.String())
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	for _, j := range s.jobs {
		s.wg.Add(1)
		go s.loop(ctx, j)
	}
	slog.Info("Cron scheduler started", "jobs", len(s.jobs))
}

// Stop cancels in-flight runs and waits for every job loop to return.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		cancel := s.cancel
		s.mu.Unlock()

		if cancel != nil {
			cancel()
		}
		s.wg.Wait()
		slog.Info("Cron scheduler stopped")
	})
}

// RunOnce executes every registered job sequentially. A failing job is
// logged and does not prevent the rest from running.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	jobs := append([]*job(nil), s.jobs...)
	s.mu.Unlock()

	for _, j := range jobs {
		s.execute(ctx, j)
	}
}

func (s *Scheduler) loop(ctx context.Context, j *job) {
	defer s.wg.Done()

	s.execute(ctx, j)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.execute(ctx, j)
		}
	}
}

func (s *Scheduler) execute(ctx context.Context, j *job) {
	if !j.running.TryLock() {
		slog.Warn("Cron job still running, skipping tick", "name", j.name)
		return
	}
	defer j.running.Unlock()

	started := time.Now()
	err := j.run(ctx)
	elapsed := time.Since(started)
	if err != nil {
		slog.Error("Cron job failed", "name", j.name, "error", err, "duration", elapsed)
		return
	}
	slog.Debug("Cron job finished", "name", j.name, "duration", elapsed)
}
