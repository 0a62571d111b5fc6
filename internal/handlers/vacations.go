package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/ArturKolozyan/telegram-feedback-bot/internal/domain"
	"github.com/ArturKolozyan/telegram-feedback-bot/internal/domain/entity"
	"github.com/ArturKolozyan/telegram-feedback-bot/internal/telegram"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// handleVacation starts the assignment flow: pick an employee from a
// paginated list, then type the date range.
func (h *BotHandler) handleVacation(chatID int64, page, messageID int) {
	employees, err := h.employeeList()
	if err != nil {
		h.replyErr(chatID, err)
		return
	}
	if len(employees) == 0 {
		h.reply(chatID, "👥 Нет сотрудников для назначения отпуска.")
		return
	}

	pages := (len(employees) + domain.PageSize - 1) / domain.PageSize
	if page >= pages {
		page = pages - 1
	}
	start := page * domain.PageSize
	end := start + domain.PageSize
	if end > len(employees) {
		end = len(employees)
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, u := range employees[start:end] {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%s (@%s)", u.DisplayName(), u.Username),
				fmt.Sprintf("vacation_select_%d", u.ChatID),
			),
		))
	}
	if nav := telegram.PaginationRow("vacation_page", page, pages); len(nav) > 0 {
		rows = append(rows, nav)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", "vacation_cancel")))
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)

	text := fmt.Sprintf("🏖 Кому назначить отпуск? Стр. %d/%d", page+1, pages)
	if messageID > 0 {
		h.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, kb))
		return
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	h.send(msg)
}

func (h *BotHandler) handleVacationSelect(chatID, targetID int64) {
	user, err := h.dm.User().Get(targetID)
	if err != nil {
		h.replyErr(chatID, err)
		return
	}
	if user == nil {
		h.reply(chatID, "❌ Пользователь не найден.")
		return
	}

	// An existing range is never replaced silently: warn and ask first.
	existing, err := h.dm.Vacation().Get(targetID)
	if err != nil {
		h.replyErr(chatID, err)
		return
	}
	if existing != nil {
		text := fmt.Sprintf("⚠️ У @%s уже есть отпуск: %s - %s.\n\nЗаменить его новым периодом?",
			user.Username,
			existing.Start.Format(domain.DisplayDateLayout),
			existing.End.Format(domain.DisplayDateLayout))
		msg := tgbotapi.NewMessage(chatID, text)
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("✏️ Изменить", fmt.Sprintf("vacation_edit_%d", targetID)),
				tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", "vacation_cancel"),
			),
		)
		h.send(msg)
		return
	}

	h.pendingVacation[chatID] = &vacationDraft{chatID: targetID}
	h.reply(chatID, fmt.Sprintf("Отпуск для @%s.\n\n%s", user.Username, telegram.VacationFormatText))
}

func (h *BotHandler) handleVacationEdit(chatID, targetID int64) {
	user, err := h.dm.User().Get(targetID)
	if err != nil {
		h.replyErr(chatID, err)
		return
	}
	if user == nil {
		h.reply(chatID, "❌ Пользователь не найден.")
		return
	}

	h.pendingVacation[chatID] = &vacationDraft{chatID: targetID}
	h.reply(chatID, fmt.Sprintf("Новый отпуск для @%s.\n\n%s", user.Username, telegram.VacationFormatText))
}

// parseVacationPeriod parses "ДД.ММ.ГГГГ-ДД.ММ.ГГГГ" into an inclusive range.
func (h *BotHandler) parseVacationPeriod(text string) (start, end time.Time, err error) {
	parts := strings.Split(strings.TrimSpace(text), "-")
	if len(parts) != 2 {
		return start, end, domain.NewValidationError("Неверный формат периода.", telegram.VacationFormatText)
	}

	start, err = time.Parse(domain.DisplayDateLayout, strings.TrimSpace(parts[0]))
	if err != nil {
		return start, end, domain.NewValidationError("Неверная дата начала.", telegram.VacationFormatText)
	}
	end, err = time.Parse(domain.DisplayDateLayout, strings.TrimSpace(parts[1]))
	if err != nil {
		return start, end, domain.NewValidationError("Неверная дата окончания.", telegram.VacationFormatText)
	}

	if end.Before(start) {
		return start, end, domain.NewValidationError("Дата окончания раньше даты начала.", "")
	}
	today, _ := time.Parse(domain.DateLayout, h.now().Format(domain.DateLayout))
	if end.Before(today) {
		return start, end, domain.NewValidationError("Отпуск уже закончился. Укажите актуальные даты.", "")
	}

	return start, end, nil
}

// storeVacation saves the range for the target user, replacing any prior
// one, and notifies both the admin and the employee.
func (h *BotHandler) storeVacation(chatID int64, user *entity.User, start, end time.Time) {
	existing, err := h.dm.Vacation().Get(user.ChatID)
	if err != nil {
		h.replyErr(chatID, err)
		return
	}

	v := &entity.Vacation{
		ChatID: user.ChatID,
		Start:  start,
		End:    end,
		SetBy:  chatID,
		SetAt:  h.now(),
	}
	if err := h.dm.Vacation().Set(v); err != nil {
		h.replyErr(chatID, err)
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "✅ Отпуск для @%s: %s - %s (%d дн.)",
		user.Username,
		start.Format(domain.DisplayDateLayout),
		end.Format(domain.DisplayDateLayout),
		v.Days())
	if existing != nil {
		b.WriteString("\n\nПрежний отпуск заменен.")
	}
	h.reply(chatID, b.String())

	// The employee learns about the range right away.
	notice := fmt.Sprintf("🏖 Тебе назначен отпуск: %s - %s.\nВ эти дни опросы приходить не будут.",
		start.Format(domain.DisplayDateLayout), end.Format(domain.DisplayDateLayout))
	h.reply(user.ChatID, notice)
}

// handleVacationRange finishes the interactive flow with the typed period.
func (h *BotHandler) handleVacationRange(chatID int64, text string) {
	draft := h.pendingVacation[chatID]

	start, end, err := h.parseVacationPeriod(text)
	if err != nil {
		h.replyErr(chatID, err)
		return
	}

	user, err := h.dm.User().Get(draft.chatID)
	if err != nil {
		h.replyErr(chatID, err)
		return
	}
	if user == nil {
		delete(h.pendingVacation, chatID)
		h.reply(chatID, "❌ Пользователь не найден.")
		return
	}

	delete(h.pendingVacation, chatID)
	h.storeVacation(chatID, user, start, end)
}

// handleVacationArgs is the one-shot "/vacation @user ДД.ММ.ГГГГ-ДД.ММ.ГГГГ"
// form. Unlike the interactive flow it replaces an existing range directly.
func (h *BotHandler) handleVacationArgs(chatID int64, args []string) {
	if len(args) < 2 {
		h.reply(chatID, "Использование: /vacation @username ДД.ММ.ГГГГ-ДД.ММ.ГГГГ")
		return
	}

	user, err := h.dm.User().GetByUsername(strings.TrimPrefix(args[0], "@"))
	if err != nil {
		h.replyErr(chatID, err)
		return
	}
	if user == nil {
		h.reply(chatID, "❌ Пользователь не найден.")
		return
	}

	start, end, err := h.parseVacationPeriod(args[1])
	if err != nil {
		h.replyErr(chatID, err)
		return
	}

	h.storeVacation(chatID, user, start, end)
}

// handleRemoveVacationArgs removes a range by "/removevacation @username".
func (h *BotHandler) handleRemoveVacationArgs(chatID int64, args []string) {
	user, err := h.dm.User().GetByUsername(strings.TrimPrefix(args[0], "@"))
	if err != nil {
		h.replyErr(chatID, err)
		return
	}
	if user == nil {
		h.reply(chatID, "❌ Пользователь не найден.")
		return
	}

	v, err := h.dm.Vacation().Get(user.ChatID)
	if err != nil {
		h.replyErr(chatID, err)
		return
	}
	if v == nil {
		h.replyErr(chatID, domain.NewNotFoundError(fmt.Sprintf("У @%s нет отпуска.", user.Username)))
		return
	}

	h.handleVacationDeleteConfirm(chatID, user.ChatID)
}

// handleVacations lists stored ranges with per-entry delete buttons.
func (h *BotHandler) handleVacations(chatID int64, page, messageID int) {
	h.svc.Gate().CleanupExpired(h.now())

	vacations, err := h.dm.Vacation().GetAll()
	if err != nil {
		h.replyErr(chatID, err)
		return
	}
	if len(vacations) == 0 {
		h.reply(chatID, "🏖 Активных отпусков нет.")
		return
	}

	pages := (len(vacations) + domain.PageSize - 1) / domain.PageSize
	if page >= pages {
		page = pages - 1
	}
	start := page * domain.PageSize
	end := start + domain.PageSize
	if end > len(vacations) {
		end = len(vacations)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🏖 Отпуска (%d), стр. %d/%d:\n\n", len(vacations), page+1, pages)
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, v := range vacations[start:end] {
		name := fmt.Sprintf("id %d", v.ChatID)
		if u, err := h.dm.User().Get(v.ChatID); err == nil && u != nil {
			name = "@" + u.Username
		}
		fmt.Fprintf(&b, "• %s: %s - %s (%d дн.)\n",
			name,
			v.Start.Format(domain.DisplayDateLayout),
			v.End.Format(domain.DisplayDateLayout),
			v.Days())
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("🗑 Удалить %s", name),
				fmt.Sprintf("vacations_delete_%d", v.ChatID),
			),
		))
	}
	if nav := telegram.PaginationRow("vacations_page", page, pages); len(nav) > 0 {
		rows = append(rows, nav)
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)

	if messageID > 0 {
		h.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, b.String(), kb))
		return
	}

	msg := tgbotapi.NewMessage(chatID, b.String())
	msg.ReplyMarkup = kb
	h.send(msg)
}

func (h *BotHandler) handleVacationDeleteAsk(chatID, targetID int64) {
	v, err := h.dm.Vacation().Get(targetID)
	if err != nil {
		h.replyErr(chatID, err)
		return
	}
	if v == nil {
		h.reply(chatID, "❌ Отпуск не найден.")
		return
	}

	name := fmt.Sprintf("id %d", targetID)
	if u, err := h.dm.User().Get(targetID); err == nil && u != nil {
		name = "@" + u.Username
	}

	text := fmt.Sprintf("⚠️ Удалить отпуск %s (%s - %s)?",
		name,
		v.Start.Format(domain.DisplayDateLayout),
		v.End.Format(domain.DisplayDateLayout))
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = telegram.ConfirmKeyboard(
		fmt.Sprintf("confirm_vacations_delete_%d", targetID), "cancel_vacations_delete")
	h.send(msg)
}

func (h *BotHandler) handleVacationDeleteConfirm(chatID, targetID int64) {
	if err := h.dm.Vacation().Delete(targetID); err != nil {
		h.replyErr(chatID, err)
		return
	}
	h.reply(chatID, "✅ Отпуск удален. Опросы снова будут приходить.")
}
