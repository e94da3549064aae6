package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"stridehq.app/backend/common/logger"
	"stridehq.app/backend/common/window"
	"stridehq.app/backend/internal/service"
)

// TokenCleanupJob clears refresh tokens that have expired. A user whose
// token is gone simply signs in again; no notification is owed.
type TokenCleanupJob struct {
	tx       service.TxRunner
	schedule string
	now      func() time.Time
}

func NewTokenCleanupJob(tx service.TxRunner, schedule string) *TokenCleanupJob {
	return &TokenCleanupJob{tx: tx, schedule: schedule, now: time.Now}
}

func (j *TokenCleanupJob) Name() string { return "token-cleanup" }

func (j *TokenCleanupJob) Schedule() string { return j.schedule }

func (j *TokenCleanupJob) Run(ctx context.Context) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Job:       j.Name(),
		Component: "stride.jobs.token_cleanup",
	})

	now := j.now().UTC()

	cleared := 0
	err := j.tx.WithTx(ctx, func(sp service.StoreProvider) error {
		users, err := sp.Users().ListWithExpiredRefreshTokens(ctx, now)
		if err != nil {
			return fmt.Errorf("listing users with expired tokens: %w", err)
		}

		for i := range users {
			u := &users[i]
			if err := sp.Users().ClearRefreshToken(ctx, u.ID, now); err != nil {
				return fmt.Errorf("clearing token for user %d: %w", u.ID, err)
			}
			cleared++
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("clearing expired tokens: %w", err)
	}

	if cleared > 0 {
		slog.InfoContext(ctx, "expired refresh tokens cleared", "count", cleared)
	}
	return nil
}

// InvitationCleanupJob expires pending organization invitations older than
// the retention window. Expired is terminal; the predicate excludes
// anything already answered, so re-runs match nothing.
type InvitationCleanupJob struct {
	tx        service.TxRunner
	schedule  string
	retention time.Duration
	now       func() time.Time
}

func NewInvitationCleanupJob(tx service.TxRunner, schedule string, retention time.Duration) *InvitationCleanupJob {
	return &InvitationCleanupJob{tx: tx, schedule: schedule, retention: retention, now: time.Now}
}

func (j *InvitationCleanupJob) Name() string { return "invitation-cleanup" }

func (j *InvitationCleanupJob) Schedule() string { return j.schedule }

func (j *InvitationCleanupJob) Run(ctx context.Context) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Job:       j.Name(),
		Component: "stride.jobs.invitation_cleanup",
	})

	now := j.now().UTC()
	cutoff := window.Cutoff(now, j.retention)

	expired := 0
	err := j.tx.WithTx(ctx, func(sp service.StoreProvider) error {
		invitations, err := sp.Invitations().ListPendingCreatedBefore(ctx, cutoff)
		if err != nil {
			return fmt.Errorf("listing stale invitations: %w", err)
		}

		for i := range invitations {
			inv := &invitations[i]
			if err := sp.Invitations().MarkExpired(ctx, inv.ID, now); err != nil {
				return fmt.Errorf("expiring invitation %d: %w", inv.ID, err)
			}
			expired++
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("expiring stale invitations: %w", err)
	}

	if expired > 0 {
		slog.InfoContext(ctx, "stale invitations expired", "count", expired)
	}
	return nil
}
