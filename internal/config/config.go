package config

import (
	"os"
	"strconv"
	"strings"
)

// Config carries everything main needs to wire the bot.
type Config struct {
	Token         string
	SQLiteDSN     string
	TeamChatID    int64
	AdminIDs      map[int64]struct{}
	ReminderCron  string
	WebhookURL    string
	WebhookSecret string
	HealthAddr    string
}

// FromEnv builds the config from environment variables so main stays lean.
func FromEnv() Config {
	dsn := os.Getenv("LEASES_SQLITE_DSN")
	if dsn == "" {
		dsn = "leases.db"
	}
	cronSpec := os.Getenv("REMINDER_CRON")
	if cronSpec == "" {
		// matches the 9:00 local daily run of the reminder sweep
		cronSpec = "0 9 * * *"
	}
	healthAddr := os.Getenv("HEALTH_ADDR")
	if healthAddr == "" {
		healthAddr = ":8080"
	}

	var teamChatID int64
	if raw := strings.TrimSpace(os.Getenv("TEAM_CHAT_ID")); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			teamChatID = id
		}
	}

	return Config{
		Token:         os.Getenv("TELEGRAM_BOT_TOKEN"),
		SQLiteDSN:     dsn,
		TeamChatID:    teamChatID,
		AdminIDs:      ParseAdminIDs(os.Getenv("ADMIN_CHAT_IDS")),
		ReminderCron:  cronSpec,
		WebhookURL:    os.Getenv("REMINDER_WEBHOOK_URL"),
		WebhookSecret: os.Getenv("REMINDER_WEBHOOK_SECRET"),
		HealthAddr:    healthAddr,
	}
}

// ParseAdminIDs parses a comma-separated chat ID list; malformed entries
// are skipped.
func ParseAdminIDs(raw string) map[int64]struct{} {
	ids := map[int64]struct{}{}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ids
	}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if id, err := strconv.ParseInt(part, 10, 64); err == nil {
			ids[id] = struct{}{}
		}
	}
	return ids
}
