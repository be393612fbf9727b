package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/nmep-hris/payroll-backend-go/internal/domain/user"
)

// TokenPruner drops revoked tokens that have expired on their own.
type TokenPruner interface {
	PruneRevoked(now time.Time) int
}

type CleanupJobs struct {
	userRepo user.UserRepository
	tokens   TokenPruner
	now      func() time.Time
}

func NewCleanupJobs(userRepo user.UserRepository, tokens TokenPruner) *CleanupJobs {
	return &CleanupJobs{
		userRepo: userRepo,
		tokens:   tokens,
		now:      time.Now,
	}
}

func (j *CleanupJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("clear_expired_secrets", interval, j.ClearExpiredSecrets)
	scheduler.AddJob("prune_revoked_tokens", interval, j.PruneRevokedTokens)
}

// ClearExpiredSecrets removes OTP and reset token hashes past their expiry.
func (j *CleanupJobs) ClearExpiredSecrets(ctx context.Context) error {
	n, err := j.userRepo.ClearExpiredSecrets(ctx, j.now())
	if err != nil {
		return err
	}
	if n > 0 {
		slog.Info("Cron: cleared expired secrets", "users", n)
	}
	return nil
}

func (j *CleanupJobs) PruneRevokedTokens(ctx context.Context) error {
	if n := j.tokens.PruneRevoked(j.now()); n > 0 {
		slog.Info("Cron: pruned revoked tokens", "count", n)
	}
	return nil
}
