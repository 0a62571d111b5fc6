package handlers

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/ArturKolozyan/telegram-feedback-bot/internal/config"
	"github.com/ArturKolozyan/telegram-feedback-bot/internal/domain"
	"github.com/ArturKolozyan/telegram-feedback-bot/internal/domain/contract"
	"github.com/ArturKolozyan/telegram-feedback-bot/internal/domain/entity"
	"github.com/ArturKolozyan/telegram-feedback-bot/internal/export"
	"github.com/ArturKolozyan/telegram-feedback-bot/internal/survey"
	"github.com/ArturKolozyan/telegram-feedback-bot/internal/telegram"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// BotHandler routes incoming updates to command, text and callback handlers.
// The two pending maps track per-chat conversation state: a user who just
// picked a mood owes a project note, an admin mid-/vacation owes a date range.
type BotHandler struct {
	api      *tgbotapi.BotAPI
	svc      *survey.Service
	dm       contract.DataManager
	exporter *export.Exporter
	cfg      *config.Config

	awaitingProject map[int64]bool
	pendingVacation map[int64]*vacationDraft
}

type vacationDraft struct {
	chatID int64
}

func New(api *tgbotapi.BotAPI, svc *survey.Service, dm contract.DataManager, exporter *export.Exporter, cfg *config.Config) *BotHandler {
	return &BotHandler{
		api:             api,
		svc:             svc,
		dm:              dm,
		exporter:        exporter,
		cfg:             cfg,
		awaitingProject: make(map[int64]bool),
		pendingVacation: make(map[int64]*vacationDraft),
	}
}

func (h *BotHandler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		h.handleCallback(update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		h.handleCommand(ctx, update.Message)
	case update.Message != nil:
		h.handleText(update.Message)
	}
}

func (h *BotHandler) isAdmin(chatID int64) bool {
	return chatID == h.cfg.ManagerChatID
}

func (h *BotHandler) now() time.Time {
	return time.Now().In(h.cfg.Location)
}

func (h *BotHandler) send(msg tgbotapi.Chattable) {
	if _, err := h.api.Send(msg); err != nil {
		log.Printf("Failed to send message: %v", err)
	}
}

func (h *BotHandler) reply(chatID int64, text string) {
	h.send(tgbotapi.NewMessage(chatID, text))
}

// replyErr renders domain errors with their user-facing text and hides
// everything else behind a generic message.
func (h *BotHandler) replyErr(chatID int64, err error) {
	log.Printf("Handler error for %d: %v", chatID, err)
	h.reply(chatID, domain.UserMessage(err))
}

func (h *BotHandler) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	cmd := telegram.ParseCommand(msg.Text)
	chatID := msg.Chat.ID

	switch cmd.Type {
	case telegram.CmdStart:
		h.handleStart(msg)
		return
	case telegram.CmdHelp:
		h.handleHelp(chatID)
		return
	case telegram.CmdMyMonth:
		h.handleMyMonth(chatID)
		return
	}

	// Everything below is admin-only.
	if !h.isAdmin(chatID) {
		h.reply(chatID, telegram.AdminOnlyText)
		return
	}

	switch cmd.Type {
	case telegram.CmdTest:
		h.handleTest(chatID)
	case telegram.CmdReport:
		h.handleReport(chatID)
	case telegram.CmdCreateReport:
		h.handleCreateReport(ctx, chatID)
	case telegram.CmdDownload:
		h.handleDownload(chatID, cmd.Args)
	case telegram.CmdReports:
		h.handleReports(chatID)
	case telegram.CmdStats:
		h.handleStats(chatID)
	case telegram.CmdUsers:
		h.handleUsers(chatID, 0, 0)
	case telegram.CmdSchedule:
		h.handleSchedule(chatID)
	case telegram.CmdSetSurvey:
		h.handleSetTime(chatID, cmd.Args, true)
	case telegram.CmdSetReport:
		h.handleSetTime(chatID, cmd.Args, false)
	case telegram.CmdAdminSurvey:
		h.handleAdminSurvey(chatID, cmd.Args)
	case telegram.CmdReminders:
		h.handleReminders(chatID, cmd.Args)
	case telegram.CmdWeekends:
		h.handleWeekends(chatID)
	case telegram.CmdSaturday:
		h.handleToggleWeekend(chatID, time.Saturday, cmd.Args)
	case telegram.CmdSunday:
		h.handleToggleWeekend(chatID, time.Sunday, cmd.Args)
	case telegram.CmdHolidays:
		h.handleHolidays(chatID)
	case telegram.CmdVacation:
		if len(cmd.Args) > 0 {
			h.handleVacationArgs(chatID, cmd.Args)
			return
		}
		h.handleVacation(chatID, 0, 0)
	case telegram.CmdVacations:
		h.handleVacations(chatID, 0, 0)
	case telegram.CmdRemoveVacation:
		if len(cmd.Args) > 0 {
			h.handleRemoveVacationArgs(chatID, cmd.Args)
			return
		}
		h.handleVacations(chatID, 0, 0)
	default:
		h.reply(chatID, telegram.UnknownCommandText)
	}
}

func (h *BotHandler) handleStart(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	isAdmin := h.isAdmin(chatID)

	user := &entity.User{
		ChatID:       chatID,
		Username:     msg.From.UserName,
		FirstName:    msg.From.FirstName,
		LastName:     msg.From.LastName,
		IsAdmin:      isAdmin,
		RegisteredAt: h.now(),
	}
	if err := h.dm.User().Upsert(user); err != nil {
		h.replyErr(chatID, err)
		return
	}

	if isAdmin {
		welcome := tgbotapi.NewMessage(chatID, telegram.WelcomeAdminText)
		welcome.ReplyMarkup = telegram.AdminMenuKeyboard()
		h.send(welcome)
		return
	}

	h.reply(chatID, telegram.WelcomeUserText)
}

func (h *BotHandler) handleHelp(chatID int64) {
	if h.isAdmin(chatID) {
		h.reply(chatID, telegram.HelpAdminText)
		return
	}
	h.reply(chatID, telegram.HelpUserText)
}

func (h *BotHandler) handleMyMonth(chatID int64) {
	now := h.now()
	report, err := h.svc.MonthlySummary(chatID, now.Year(), now.Month())
	if err != nil {
		h.replyErr(chatID, err)
		return
	}
	h.reply(chatID, report)
}

func (h *BotHandler) handleText(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if msg.Text == telegram.MenuButton && h.isAdmin(chatID) {
		h.reply(chatID, telegram.HelpAdminText)
		return
	}

	if h.pendingVacation[chatID] != nil && h.isAdmin(chatID) {
		h.handleVacationRange(chatID, msg.Text)
		return
	}

	if h.awaitingProject[chatID] {
		h.handleProjectNote(chatID, msg.Text)
		return
	}

	h.reply(chatID, telegram.UnknownCommandText)
}

func (h *BotHandler) handleProjectNote(chatID int64, text string) {
	now := h.now()
	err := h.svc.RecordProject(chatID, now.Format(domain.DateLayout), text, now)
	if err != nil {
		// Validation failures keep the awaiting state so a clean retry works.
		if domain.IsNotFound(err) {
			delete(h.awaitingProject, chatID)
		}
		h.replyErr(chatID, err)
		return
	}

	delete(h.awaitingProject, chatID)
	h.reply(chatID, "✅ Спасибо! Твой ответ записан. Хорошего вечера! 🌇")
}

func (h *BotHandler) handleCallback(cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	data := cb.Data

	// Acknowledge first so the client stops the spinner.
	if _, err := h.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		log.Printf("Failed to answer callback: %v", err)
	}

	switch {
	case strings.HasPrefix(data, "mood_"):
		h.handleMoodCallback(cb)
	case strings.HasPrefix(data, "users_page_"):
		h.handleUsers(chatID, parsePage(data, "users_page_"), cb.Message.MessageID)
	case strings.HasPrefix(data, "delete_user_"):
		h.handleDeleteUserAsk(chatID, parseID(data, "delete_user_"))
	case strings.HasPrefix(data, "confirm_delete_"):
		h.handleDeleteUserConfirm(chatID, parseID(data, "confirm_delete_"))
	case data == "cancel_delete":
		h.reply(chatID, "Удаление отменено.")
	case strings.HasPrefix(data, "vacation_page_"):
		h.handleVacation(chatID, parsePage(data, "vacation_page_"), cb.Message.MessageID)
	case strings.HasPrefix(data, "vacation_select_"):
		h.handleVacationSelect(chatID, parseID(data, "vacation_select_"))
	case strings.HasPrefix(data, "vacation_edit_"):
		h.handleVacationEdit(chatID, parseID(data, "vacation_edit_"))
	case data == "vacation_cancel":
		delete(h.pendingVacation, chatID)
		h.reply(chatID, "Назначение отпуска отменено.")
	case strings.HasPrefix(data, "vacations_page_"):
		h.handleVacations(chatID, parsePage(data, "vacations_page_"), cb.Message.MessageID)
	case strings.HasPrefix(data, "vacations_delete_"):
		h.handleVacationDeleteAsk(chatID, parseID(data, "vacations_delete_"))
	case strings.HasPrefix(data, "confirm_vacations_delete_"):
		h.handleVacationDeleteConfirm(chatID, parseID(data, "confirm_vacations_delete_"))
	case data == "cancel_vacations_delete":
		h.reply(chatID, "Удаление отменено.")
	case data == "reminders_toggle":
		h.handleRemindersToggle(chatID)
	}
}

func (h *BotHandler) handleMoodCallback(cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	mood := domain.Mood(strings.TrimPrefix(cb.Data, "mood_"))

	now := h.now()
	if err := h.svc.RecordMood(chatID, now.Format(domain.DateLayout), mood, now); err != nil {
		h.replyErr(chatID, err)
		return
	}

	// Replace the keyboard message so the choice cannot be re-clicked.
	edit := tgbotapi.NewEditMessageText(chatID, cb.Message.MessageID,
		fmt.Sprintf("Ты выбрал: %s %s", mood.Emoji(), mood.Label()))
	h.send(edit)

	h.awaitingProject[chatID] = true
	h.reply(chatID, "Каким объектом/проектом сегодня занимался? 📝")
}

func parsePage(data, prefix string) int {
	page, err := strconv.Atoi(strings.TrimPrefix(data, prefix))
	if err != nil || page < 0 {
		return 0
	}
	return page
}

func parseID(data, prefix string) int64 {
	id, err := strconv.ParseInt(strings.TrimPrefix(data, prefix), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
