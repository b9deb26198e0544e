package usecase

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"lease-recert-bot/internal/domain"
)

// Conversation stages, independent of Telegram

type Stage string

const (
	StageIdle              Stage = "idle"
	StageAwaitTenant       Stage = "await_tenant"
	StageAwaitAddress      Stage = "await_address"
	StageAwaitStartDate    Stage = "await_start_date"
	StageAwaitRemoveChoice Stage = "await_remove_choice"
)

// Session holds the in-progress conversation for one chat. Not persisted;
// a restart drops any partial entry.
type Session struct {
	ChatID          int64
	Stage           Stage
	TenantName      string
	PropertyAddress string
	// RemoveChoices snapshots the numbered list shown by /remove so the
	// selection resolves against what the user actually saw.
	RemoveChoices []domain.Lease
}

// Reset returns the session to idle, discarding any partial entry. For
// callers outside the dialog that intercept a command themselves.
func (s *Session) Reset() { s.reset() }

func (s *Session) reset() {
	s.Stage = StageIdle
	s.TenantName = ""
	s.PropertyAddress = ""
	s.RemoveChoices = nil
}

// Option is an inline keyboard button: Label is shown, Data comes back as
// the callback payload.
type Option struct {
	Label string
	Data  string
}

type Reply struct {
	Text    string
	Options []Option
}

// Dialog is the per-message transition function for the entry and removal
// flows. One call per inbound message; all conversation state lives in the
// Session passed in.
type Dialog struct {
	leases domain.LeaseRepository
	logger *slog.Logger
}

func NewDialog(leases domain.LeaseRepository, logger *slog.Logger) *Dialog {
	return &Dialog{leases: leases, logger: logger}
}

func (d *Dialog) Handle(s *Session, text string) Reply {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "/") {
		// A new command always wins over an in-flight flow.
		s.reset()
		return d.handleCommand(s, text)
	}

	switch s.Stage {
	case StageAwaitTenant:
		if text == "" {
			return Reply{Text: "Tenant name cannot be empty. Enter tenant name:"}
		}
		s.TenantName = text
		s.Stage = StageAwaitAddress
		return Reply{Text: "Enter property address:"}

	case StageAwaitAddress:
		if text == "" {
			return Reply{Text: "Property address cannot be empty. Enter property address:"}
		}
		s.PropertyAddress = text
		s.Stage = StageAwaitStartDate
		return Reply{Text: "Enter lease start date (YYYY-MM-DD):"}

	case StageAwaitStartDate:
		lease, err := d.leases.Create(s.ChatID, s.TenantName, s.PropertyAddress, text)
		if err != nil {
			if domain.IsValidation(err) {
				return Reply{Text: "❌ Invalid date. Please enter the lease start date as YYYY-MM-DD (e.g. 2025-01-15):"}
			}
			if d.logger != nil {
				d.logger.Error("lease create failed", "chat_id", s.ChatID, "error", err)
			}
			return Reply{Text: "❌ Could not save the lease. Please enter the start date again (YYYY-MM-DD):"}
		}
		s.reset()
		confirmation := fmt.Sprintf(
			"✅ Lease added.\n\nTenant: %s\nAddress: %s\nStart: %s\nRecert: %s\nReminder: %s",
			lease.TenantName,
			lease.PropertyAddress,
			lease.LeaseStartDate.Format(domain.DateLayout),
			lease.RecertDate.Format(domain.DateLayout),
			lease.ReminderDate.Format(domain.DateLayout),
		)
		return Reply{Text: confirmation, Options: MainMenu()}

	case StageAwaitRemoveChoice:
		return d.handleRemoveChoice(s, text)
	}

	// Idle free text is not ours to answer.
	return Reply{}
}

func (d *Dialog) handleCommand(s *Session, cmd string) Reply {
	switch cmd {
	case "/start":
		return Reply{Text: welcomeText, Options: MainMenu()}

	case "/help":
		return Reply{Text: helpText, Options: MainMenu()}

	case "/add":
		s.Stage = StageAwaitTenant
		return Reply{Text: "Enter tenant name:"}

	case "/list":
		leases, err := d.leases.ListByOwner(s.ChatID)
		if err != nil {
			if d.logger != nil {
				d.logger.Error("list leases failed", "chat_id", s.ChatID, "error", err)
			}
			return Reply{Text: "❌ Could not load your leases. Try again later.", Options: MainMenu()}
		}
		if len(leases) == 0 {
			return Reply{Text: "No leases found. Use /add to create one.", Options: MainMenu()}
		}
		return Reply{Text: "📋 Your leases:\n\n" + FormatLeaseList(leases), Options: MainMenu()}

	case "/remove":
		leases, err := d.leases.ListByOwner(s.ChatID)
		if err != nil {
			if d.logger != nil {
				d.logger.Error("list leases failed", "chat_id", s.ChatID, "error", err)
			}
			return Reply{Text: "❌ Could not load your leases. Try again later.", Options: MainMenu()}
		}
		if len(leases) == 0 {
			return Reply{Text: "No leases found. There's nothing to remove.", Options: MainMenu()}
		}
		s.Stage = StageAwaitRemoveChoice
		s.RemoveChoices = leases
		return Reply{Text: "📋 Your leases:\n\n" + FormatLeaseList(leases) +
			"\n\nReply with the number of the lease you want to remove:"}

	case "/logout":
		count, err := d.leases.DeleteAll(s.ChatID)
		if err != nil {
			if d.logger != nil {
				d.logger.Error("logout failed", "chat_id", s.ChatID, "error", err)
			}
			return Reply{Text: "❌ Could not remove your leases. Try again later.", Options: MainMenu()}
		}
		if d.logger != nil {
			d.logger.Info("chat logged out", "chat_id", s.ChatID, "removed", count)
		}
		return Reply{
			Text:    fmt.Sprintf("🔓 You have been logged out. %d tracked lease(s) for this chat removed.", count),
			Options: MainMenu(),
		}

	case "/cancel":
		return Reply{Text: "Operation cancelled.", Options: MainMenu()}
	}

	// Unknown commands belong to whoever else is listening.
	return Reply{}
}

func (d *Dialog) handleRemoveChoice(s *Session, text string) Reply {
	choice, err := strconv.Atoi(text)
	if err != nil {
		return Reply{Text: "❌ Please enter a valid number from the list:"}
	}
	if choice < 1 || choice > len(s.RemoveChoices) {
		return Reply{Text: fmt.Sprintf("❌ Please enter a number between 1 and %d:", len(s.RemoveChoices))}
	}

	lease := s.RemoveChoices[choice-1]
	removed, err := d.leases.Delete(s.ChatID, lease.ID)
	s.reset()
	if err != nil {
		if d.logger != nil {
			d.logger.Error("lease delete failed", "chat_id", s.ChatID, "lease_id", lease.ID, "error", err)
		}
		return Reply{Text: "❌ Error removing lease. Please try again.", Options: MainMenu()}
	}
	if !removed {
		return Reply{Text: "❌ Lease not found. It may have already been removed.", Options: MainMenu()}
	}
	return Reply{Text: fmt.Sprintf("✅ Lease for %s has been removed.", lease.TenantName), Options: MainMenu()}
}

// FormatLeaseList renders leases as the numbered boxed list used by /list
// and the removal prompt.
func FormatLeaseList(leases []domain.Lease) string {
	boxes := make([]string, 0, len(leases))
	for i, l := range leases {
		box := fmt.Sprintf(
			"%d)\n"+
				"┌───────────────────────────────\n"+
				"│ Tenant:   %s\n"+
				"│ Address:  %s\n"+
				"│ Start:    %s\n"+
				"│ Recert:   %s\n"+
				"│ Reminder: %s\n"+
				"└───────────────────────────────",
			i+1,
			l.TenantName,
			l.PropertyAddress,
			l.LeaseStartDate.Format(domain.DateLayout),
			l.RecertDate.Format(domain.DateLayout),
			l.ReminderDate.Format(domain.DateLayout),
		)
		boxes = append(boxes, box)
	}
	return strings.Join(boxes, "\n\n")
}

// MainMenu returns the inline keyboard shown after terminal replies.
// Callback data are the commands themselves, so button presses replay
// through the same transitions as typed commands.
func MainMenu() []Option {
	return []Option{
		{Label: "📝 Add Lease", Data: "/add"},
		{Label: "📋 View Leases", Data: "/list"},
		{Label: "🗑 Remove Lease", Data: "/remove"},
		{Label: "ℹ️ Help", Data: "/help"},
		{Label: "🔓 Logout", Data: "/logout"},
	}
}

const welcomeText = "Welcome to Lease Recertification Bot! 🏠\n\n" +
	"This bot helps you track lease recertifications.\n\n" +
	"The bot will automatically send reminders 7 days before recertification " +
	"is due (270 days after lease start date).\n\n" +
	"👇 Choose an option below:"

const helpText = "Welcome to Lease Recertification Bot! 🏠\n\n" +
	"This bot helps you track lease recertifications.\n\n" +
	"Commands:\n" +
	"📝 /add - Add a new lease\n" +
	"📋 /list - View all leases\n" +
	"🗑 /remove - Remove a lease\n" +
	"🔓 /logout - Logout from the bot\n" +
	"ℹ️ /help - Show this help message\n\n" +
	"The bot will automatically send reminders 7 days before recertification " +
	"is due (270 days after lease start date).\n\n" +
	"👇 Use the menu below:"
