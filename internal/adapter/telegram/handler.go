package telegram

import (
	"bytes"
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	chart "github.com/wcharczuk/go-chart/v2"

	"lease-recert-bot/internal/usecase"
)

const upcomingLoadWeeks = 8

type Handler struct {
	bot      *tgbotapi.BotAPI
	dialog   *usecase.Dialog
	sessions *usecase.Sessions
	stats    *usecase.Stats
	adminIDs map[int64]struct{}
	logger   *slog.Logger
}

func NewHandler(bot *tgbotapi.BotAPI, dialog *usecase.Dialog, sessions *usecase.Sessions, stats *usecase.Stats, adminIDs map[int64]struct{}, logger *slog.Logger) *Handler {
	return &Handler{
		bot:      bot,
		dialog:   dialog,
		sessions: sessions,
		stats:    stats,
		adminIDs: adminIDs,
		logger:   logger,
	}
}

func (h *Handler) isAdmin(chatID int64) bool {
	_, ok := h.adminIDs[chatID]
	return ok
}

func (h *Handler) Run() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := h.bot.GetUpdatesChan(u)
	for update := range updates {
		if update.Message == nil && update.CallbackQuery == nil {
			continue
		}
		var chatID int64
		var text string
		if update.Message != nil {
			chatID = update.Message.Chat.ID
			text = update.Message.Text
		} else {
			chatID = update.CallbackQuery.Message.Chat.ID
			text = update.CallbackQuery.Data
			// acknowledge the button press so the client stops spinning
			_, _ = h.bot.Request(tgbotapi.NewCallback(update.CallbackQuery.ID, ""))
		}

		s := h.sessions.Get(chatID)
		if text == "/stats" {
			// a command discards any in-flight flow, same as the dialog does
			s.Reset()
			h.handleStats(chatID)
			continue
		}

		h.applyReply(chatID, h.dialog.Handle(s, text))
	}
}

func (h *Handler) handleStats(chatID int64) {
	if !h.isAdmin(chatID) {
		h.sendText(chatID, "Access denied")
		if h.logger != nil {
			h.logger.Warn("stats denied", "chat_id", chatID)
		}
		return
	}
	h.sendText(chatID, h.stats.Summary(5))

	labels, values, err := h.stats.UpcomingLoad(time.Now(), upcomingLoadWeeks)
	if err != nil {
		if h.logger != nil {
			h.logger.Error("upcoming load query failed", "error", err)
		}
		return
	}
	if err := h.sendLoadChart(chatID, labels, values); err != nil && h.logger != nil {
		h.logger.Error("load chart failed", "chat_id", chatID, "error", err)
	}
}

func (h *Handler) applyReply(chatID int64, r usecase.Reply) {
	if r.Text == "" {
		return
	}
	msg := tgbotapi.NewMessage(chatID, r.Text)
	if len(r.Options) > 0 {
		msg.ReplyMarkup = inlineKeyboard(r.Options)
	}
	if _, err := h.bot.Send(msg); err != nil && h.logger != nil {
		h.logger.Error("send failed", "chat_id", chatID, "error", err)
	}
}

func (h *Handler) sendText(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	_, _ = h.bot.Send(msg)
}

func inlineKeyboard(opts []usecase.Option) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(opts))
	for _, o := range opts {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(o.Label, o.Data),
		))
	}
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// sendLoadChart renders the upcoming reminder counts per week as a bar
// chart and sends it as a photo.
func (h *Handler) sendLoadChart(chatID int64, labels []string, values []int) error {
	bars := make([]chart.Value, 0, len(labels))
	maxVal := 0
	for i := range labels {
		v := values[i]
		if v > maxVal {
			maxVal = v
		}
		bars = append(bars, chart.Value{Value: float64(v), Label: labels[i]})
	}
	// avoid an invalid data range when every week is empty
	yMax := float64(maxVal)
	if yMax <= 0 {
		yMax = 1
	}
	graph := chart.BarChart{
		Title:    "Reminders due per week",
		Width:    900,
		Height:   500,
		BarWidth: 56,
		Background: chart.Style{Padding: chart.Box{
			Top:    50,
			Left:   16,
			Right:  16,
			Bottom: 0,
		}},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: yMax},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return err
	}
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "reminder-load.png", Bytes: buf.Bytes()})
	_, err := h.bot.Send(photo)
	return err
}

// Sender implements domain.MessageSender for the usecases.
type Sender struct{ bot *tgbotapi.BotAPI }

func NewSender(bot *tgbotapi.BotAPI) *Sender { return &Sender{bot: bot} }

func (s *Sender) SendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := s.bot.Send(msg)
	return err
}
