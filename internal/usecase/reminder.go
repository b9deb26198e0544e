package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"lease-recert-bot/internal/domain"
)

type SweepStat struct {
	RunDate   string
	Total     int
	Sent      int
	Failed    int
	CreatedAt time.Time
}

type SweepStatRepository interface {
	Save(stat SweepStat) error
	ListRecent(n int) ([]SweepStat, error)
}

// Reminder runs the daily sweep: every lease whose reminder date equals
// today gets one notification to its owner chat and, when configured, a
// copy to the team chat. There is no already-sent flag; running the sweep
// twice for the same day sends twice.
type Reminder struct {
	leases     domain.LeaseRepository
	sender     domain.MessageSender
	teamChatID int64
	delivery   ReminderDelivery
	stats      SweepStatRepository
	logger     *slog.Logger
}

func NewReminder(leases domain.LeaseRepository, sender domain.MessageSender, teamChatID int64, stats SweepStatRepository, logger *slog.Logger) *Reminder {
	return &Reminder{
		leases:     leases,
		sender:     sender,
		teamChatID: teamChatID,
		stats:      stats,
		logger:     logger,
	}
}

// SetDelivery enables an additional outbound channel (webhook) for every
// reminder. Optional.
func (u *Reminder) SetDelivery(d ReminderDelivery) { u.delivery = d }

// Run sweeps leases due on today's date and returns the number of
// successfully delivered messages. Send failures are logged and never
// abort the batch.
func (u *Reminder) Run(ctx context.Context, today time.Time) int {
	due, err := u.leases.ListDueOn(today)
	if err != nil {
		if u.logger != nil {
			u.logger.Error("reminder sweep query failed", "error", err)
		}
		return 0
	}
	if u.logger != nil {
		u.logger.Info("reminder sweep", "date", today.Format(domain.DateLayout), "due", len(due))
	}

	var sent, failed int
	for _, lease := range due {
		text := reminderMessage(lease)

		if err := u.sender.SendText(lease.OwnerChat, text); err != nil {
			failed++
			if u.logger != nil {
				u.logger.Error("reminder send failed", "chat_id", lease.OwnerChat, "lease_id", lease.ID, "error", err)
			}
		} else {
			sent++
		}

		if u.teamChatID != 0 {
			if err := u.sender.SendText(u.teamChatID, text); err != nil {
				failed++
				if u.logger != nil {
					u.logger.Error("team reminder send failed", "chat_id", u.teamChatID, "lease_id", lease.ID, "error", err)
				}
			} else {
				sent++
			}
		}

		if u.delivery != nil {
			if err := u.delivery.SendReminder(ctx, lease); err != nil && u.logger != nil {
				u.logger.Error("reminder webhook delivery failed", "lease_id", lease.ID, "error", err)
			}
		}
	}

	if u.stats != nil {
		_ = u.stats.Save(SweepStat{
			RunDate: today.Format(domain.DateLayout),
			Total:   len(due),
			Sent:    sent,
			Failed:  failed,
		})
	}
	return sent
}

func reminderMessage(l domain.Lease) string {
	return fmt.Sprintf(
		"🔔 Lease recertification reminder:\n\nTenant: %s\nAddress: %s\nStart date: %s\nRecert due: %s\n\n(7 days from today)",
		l.TenantName,
		l.PropertyAddress,
		l.LeaseStartDate.Format(domain.DateLayout),
		l.RecertDate.Format(domain.DateLayout),
	)
}
