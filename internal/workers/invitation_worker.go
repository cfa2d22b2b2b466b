package workers

import (
	"context"
	"time"

	"gorm.io/gorm"

	"ustahub_backend/internal/config"
	"ustahub_backend/internal/logger"
	"ustahub_backend/internal/repositories"
)

// InvitationWorker sweeps pending invitations past their deadline. Lazy
// expiry already shields readers; the sweep keeps the table honest for
// rows nobody touches.
type InvitationWorker struct {
	db             *gorm.DB
	invitationRepo repositories.InvitationRepository
	interval       time.Duration
}

func NewInvitationWorker(db *gorm.DB, invitationRepo repositories.InvitationRepository) *InvitationWorker {
	minutes := config.GetConfig().Invitations.SweepIntervalMinutes
	return &InvitationWorker{
		db:             db,
		invitationRepo: invitationRepo,
		interval:       time.Duration(minutes) * time.Minute,
	}
}

func (w *InvitationWorker) Start(ctx context.Context) {
	go w.expireStaleInvitations(ctx)
}

func (w *InvitationWorker) expireStaleInvitations(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.WorkerLog("invitation_worker", "stopped", nil)
			return
		case <-ticker.C:
			w.Sweep()
		}
	}
}

// Sweep runs one expiry pass. Exposed so callers can force a pass.
func (w *InvitationWorker) Sweep() {
	affected, err := w.invitationRepo.ExpireStale(w.db, time.Now())
	if err != nil {
		logger.WorkerLog("invitation_worker", "expire stale invitations", err)
		return
	}
	if affected > 0 {
		logger.Info("expired stale invitations", "count", affected)
	}
}
