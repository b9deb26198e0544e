package usecase

import (
	"context"

	"lease-recert-bot/internal/domain"
)

// ReminderDelivery is an extra outbound channel for reminders (webhooks,
// ticketing systems and the like).
type ReminderDelivery interface {
	SendReminder(ctx context.Context, lease domain.Lease) error
}
