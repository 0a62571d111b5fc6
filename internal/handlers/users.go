package handlers

import (
	"fmt"
	"strings"

	"github.com/ArturKolozyan/telegram-feedback-bot/internal/domain"
	"github.com/ArturKolozyan/telegram-feedback-bot/internal/domain/entity"
	"github.com/ArturKolozyan/telegram-feedback-bot/internal/telegram"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// handleUsers renders one roster page with a delete button per user.
// messageID 0 sends a fresh message, otherwise the page is edited in place.
func (h *BotHandler) handleUsers(chatID int64, page, messageID int) {
	users, err := h.dm.User().GetAll()
	if err != nil {
		h.replyErr(chatID, err)
		return
	}
	if len(users) == 0 {
		h.reply(chatID, "👥 Пока никто не зарегистрирован.")
		return
	}

	pages := (len(users) + domain.PageSize - 1) / domain.PageSize
	if page >= pages {
		page = pages - 1
	}
	start := page * domain.PageSize
	end := start + domain.PageSize
	if end > len(users) {
		end = len(users)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "👥 Пользователи (%d), стр. %d/%d:\n\n", len(users), page+1, pages)
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, u := range users[start:end] {
		role := "👤"
		if u.IsAdmin {
			role = "👑"
		}
		fmt.Fprintf(&b, "%d. %s %s (@%s)\n", start+i+1, role, u.DisplayName(), u.Username)
		if u.IsAdmin {
			continue
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("🗑 Удалить @%s", u.Username),
				fmt.Sprintf("delete_user_%d", u.ChatID),
			),
		))
	}
	if nav := telegram.PaginationRow("users_page", page, pages); len(nav) > 0 {
		rows = append(rows, nav)
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)

	if messageID > 0 {
		edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, b.String(), kb)
		h.send(edit)
		return
	}

	msg := tgbotapi.NewMessage(chatID, b.String())
	msg.ReplyMarkup = kb
	h.send(msg)
}

func (h *BotHandler) handleDeleteUserAsk(chatID, targetID int64) {
	user, err := h.dm.User().Get(targetID)
	if err != nil {
		h.replyErr(chatID, err)
		return
	}
	if user == nil {
		h.reply(chatID, "❌ Пользователь не найден.")
		return
	}

	count, err := h.dm.Response().CountByUser(targetID)
	if err != nil {
		h.replyErr(chatID, err)
		return
	}

	text := fmt.Sprintf("⚠️ Удалить пользователя %s (@%s)?\n\nОтветов в истории: %d. История ответов сохранится в отчетах.",
		user.DisplayName(), user.Username, count)
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = telegram.ConfirmKeyboard(
		fmt.Sprintf("confirm_delete_%d", targetID), "cancel_delete")
	h.send(msg)
}

// handleDeleteUserConfirm removes the user and their vacation. Recorded
// responses stay untouched so past reports keep their data.
func (h *BotHandler) handleDeleteUserConfirm(chatID, targetID int64) {
	user, err := h.dm.User().Get(targetID)
	if err != nil {
		h.replyErr(chatID, err)
		return
	}
	if user == nil {
		h.reply(chatID, "❌ Пользователь не найден.")
		return
	}

	if err := h.dm.Vacation().Delete(targetID); err != nil {
		h.replyErr(chatID, err)
		return
	}
	if err := h.dm.User().Delete(targetID); err != nil {
		h.replyErr(chatID, err)
		return
	}

	h.reply(chatID, fmt.Sprintf("✅ Пользователь @%s удален.", user.Username))
}

// employeeList is the non-admin roster, used by vacation selection.
func (h *BotHandler) employeeList() ([]*entity.User, error) {
	users, err := h.dm.User().GetAll()
	if err != nil {
		return nil, err
	}

	var employees []*entity.User
	for _, u := range users {
		if u.IsAdmin {
			continue
		}
		employees = append(employees, u)
	}

	return employees, nil
}
