package telegram

import (
	"fmt"

	"github.com/ArturKolozyan/telegram-feedback-bot/internal/domain"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// MenuButton is the reply-keyboard shortcut shown to admins.
const MenuButton = "📋 Меню"

// MoodKeyboard lays the five ratings out 2-2-1, best first.
func MoodKeyboard() tgbotapi.InlineKeyboardMarkup {
	button := func(m domain.Mood) tgbotapi.InlineKeyboardButton {
		return tgbotapi.NewInlineKeyboardButtonData(m.Emoji()+" "+m.Label(), "mood_"+string(m))
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(button(domain.MoodExcellent), button(domain.MoodGood)),
		tgbotapi.NewInlineKeyboardRow(button(domain.MoodBad), button(domain.MoodHard)),
		tgbotapi.NewInlineKeyboardRow(button(domain.MoodCritical)),
	)
}

// AdminMenuKeyboard is the persistent reply keyboard for the manager chat.
func AdminMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(MenuButton)),
	)
	kb.ResizeKeyboard = true

	return kb
}

// PaginationRow builds prev/next navigation for a zero-based page. Buttons
// outside the range are omitted.
func PaginationRow(prefix string, page, pages int) []tgbotapi.InlineKeyboardButton {
	var row []tgbotapi.InlineKeyboardButton
	if page > 0 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("⬅️ Назад", fmt.Sprintf("%s_%d", prefix, page-1)))
	}
	if page < pages-1 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("Вперед ➡️", fmt.Sprintf("%s_%d", prefix, page+1)))
	}

	return row
}

// ConfirmKeyboard asks for a destructive-action confirmation.
func ConfirmKeyboard(confirmData, cancelData string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Да, удалить", confirmData),
			tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", cancelData),
		),
	)
}
