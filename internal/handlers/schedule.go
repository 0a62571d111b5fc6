package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/ArturKolozyan/telegram-feedback-bot/internal/domain"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func onOff(v bool) string {
	if v {
		return "✅ включено"
	}
	return "❌ выключено"
}

func workingLabel(v bool) string {
	if v {
		return "рабочий"
	}
	return "выходной"
}

func (h *BotHandler) handleSchedule(chatID int64) {
	s, err := h.dm.Settings().GetSchedule()
	if err != nil {
		h.replyErr(chatID, err)
		return
	}
	rem, err := h.dm.Settings().GetReminders()
	if err != nil {
		h.replyErr(chatID, err)
		return
	}

	var b strings.Builder
	b.WriteString("⚙️ Текущее расписание:\n\n")
	fmt.Fprintf(&b, "📤 Опрос: %s\n", s.SurveyTime)
	fmt.Fprintf(&b, "📊 Отчет: %s\n", s.ReportTime)
	fmt.Fprintf(&b, "⏰ Напоминания: %s", onOff(rem.Enabled))
	if rem.Enabled && len(rem.Times) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(rem.Times, ", "))
	}
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "📅 Суббота: %s\n", workingLabel(s.SaturdayWorking))
	fmt.Fprintf(&b, "📅 Воскресенье: %s\n", workingLabel(s.SundayWorking))
	fmt.Fprintf(&b, "👑 Админ участвует в опросах: %s\n", onOff(s.AdminAsEmployee))
	b.WriteString("\nИзменить: /setsurvey ЧЧ:ММ, /setreport ЧЧ:ММ")

	h.reply(chatID, b.String())
}

// handleSetTime updates the survey or report time. The change persists
// immediately and the scheduler picks it up on its next minute tick.
func (h *BotHandler) handleSetTime(chatID int64, args []string, isSurvey bool) {
	name, cmd := "отчета", "/setreport"
	if isSurvey {
		name, cmd = "опроса", "/setsurvey"
	}

	if len(args) == 0 {
		h.reply(chatID, fmt.Sprintf("Укажите время %s в формате ЧЧ:ММ, например: %s 18:30", name, cmd))
		return
	}
	if _, err := time.Parse(domain.TimeLayout, args[0]); err != nil {
		h.reply(chatID, "❌ Неверный формат времени. Используйте ЧЧ:ММ, например: 18:30")
		return
	}

	s, err := h.dm.Settings().GetSchedule()
	if err != nil {
		h.replyErr(chatID, err)
		return
	}
	if isSurvey {
		s.SurveyTime = args[0]
	} else {
		s.ReportTime = args[0]
	}
	if err := h.dm.Settings().SaveSchedule(s); err != nil {
		h.replyErr(chatID, err)
		return
	}

	h.reply(chatID, fmt.Sprintf("✅ Время %s изменено на %s.", name, args[0]))
}

// parseOnOff resolves an optional explicit "on"/"off" argument; without one
// the current value is flipped.
func parseOnOff(args []string, current bool) (bool, bool) {
	if len(args) == 0 {
		return !current, true
	}
	switch strings.ToLower(args[0]) {
	case "on", "вкл":
		return true, true
	case "off", "выкл":
		return false, true
	}
	return current, false
}

func (h *BotHandler) handleAdminSurvey(chatID int64, args []string) {
	s, err := h.dm.Settings().GetSchedule()
	if err != nil {
		h.replyErr(chatID, err)
		return
	}

	value, ok := parseOnOff(args, s.AdminAsEmployee)
	if !ok {
		h.reply(chatID, "Использование: /adminsurvey [on|off]")
		return
	}

	s.AdminAsEmployee = value
	if err := h.dm.Settings().SaveSchedule(s); err != nil {
		h.replyErr(chatID, err)
		return
	}

	if s.AdminAsEmployee {
		h.reply(chatID, "✅ Теперь ты участвуешь в опросах как сотрудник.")
		return
	}
	h.reply(chatID, "✅ Ты больше не участвуешь в опросах.")
}

// handleReminders shows the reminder config, or replaces the times when
// called with HH:MM arguments.
func (h *BotHandler) handleReminders(chatID int64, args []string) {
	rem, err := h.dm.Settings().GetReminders()
	if err != nil {
		h.replyErr(chatID, err)
		return
	}

	if len(args) > 0 {
		switch strings.ToLower(args[0]) {
		case "on", "off", "вкл", "выкл":
			value, _ := parseOnOff(args, rem.Enabled)
			rem.Enabled = value
			if err := h.dm.Settings().SaveReminders(rem); err != nil {
				h.replyErr(chatID, err)
				return
			}
			h.reply(chatID, fmt.Sprintf("⏰ Напоминания: %s", onOff(rem.Enabled)))
			return
		case "set":
			args = args[1:]
		}

		var times []string
		for _, arg := range args {
			for _, part := range strings.Split(arg, ",") {
				if part == "" {
					continue
				}
				if _, err := time.Parse(domain.TimeLayout, part); err != nil {
					h.reply(chatID, fmt.Sprintf("❌ Неверное время %q. Используйте ЧЧ:ММ, например: /reminders set 17:30,18:30", part))
					return
				}
				times = append(times, part)
			}
		}
		if len(times) == 0 {
			h.reply(chatID, "Использование: /reminders [on|off] или /reminders set ЧЧ:ММ[,ЧЧ:ММ...]")
			return
		}

		rem.Times = times
		if err := h.dm.Settings().SaveReminders(rem); err != nil {
			h.replyErr(chatID, err)
			return
		}
		h.reply(chatID, fmt.Sprintf("✅ Время напоминаний: %s", strings.Join(times, ", ")))
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "⏰ Напоминания: %s\n", onOff(rem.Enabled))
	if len(rem.Times) > 0 {
		fmt.Fprintf(&b, "Время: %s\n", strings.Join(rem.Times, ", "))
	}
	b.WriteString("\nНапоминания приходят только тем, кто еще не ответил на опрос.")

	toggle := "🔔 Включить"
	if rem.Enabled {
		toggle = "🔕 Выключить"
	}
	msg := tgbotapi.NewMessage(chatID, b.String())
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(toggle, "reminders_toggle"),
		),
	)
	h.send(msg)
}

func (h *BotHandler) handleRemindersToggle(chatID int64) {
	rem, err := h.dm.Settings().GetReminders()
	if err != nil {
		h.replyErr(chatID, err)
		return
	}

	rem.Enabled = !rem.Enabled
	if err := h.dm.Settings().SaveReminders(rem); err != nil {
		h.replyErr(chatID, err)
		return
	}

	h.reply(chatID, fmt.Sprintf("⏰ Напоминания: %s", onOff(rem.Enabled)))
}

func (h *BotHandler) handleWeekends(chatID int64) {
	s, err := h.dm.Settings().GetSchedule()
	if err != nil {
		h.replyErr(chatID, err)
		return
	}

	var b strings.Builder
	b.WriteString("📅 Настройки выходных:\n\n")
	fmt.Fprintf(&b, "Суббота: %s\n", workingLabel(s.SaturdayWorking))
	fmt.Fprintf(&b, "Воскресенье: %s\n", workingLabel(s.SundayWorking))
	b.WriteString("\nПереключить: /saturday, /sunday\nПраздничные дни всегда выходные: /holidays")

	h.reply(chatID, b.String())
}

func (h *BotHandler) handleToggleWeekend(chatID int64, day time.Weekday, args []string) {
	s, err := h.dm.Settings().GetSchedule()
	if err != nil {
		h.replyErr(chatID, err)
		return
	}

	var name string
	var working bool
	switch day {
	case time.Saturday:
		value, ok := parseOnOff(args, s.SaturdayWorking)
		if !ok {
			h.reply(chatID, "Использование: /saturday [on|off]")
			return
		}
		s.SaturdayWorking = value
		name, working = "Суббота", value
	case time.Sunday:
		value, ok := parseOnOff(args, s.SundayWorking)
		if !ok {
			h.reply(chatID, "Использование: /sunday [on|off]")
			return
		}
		s.SundayWorking = value
		name, working = "Воскресенье", value
	default:
		return
	}

	if err := h.dm.Settings().SaveSchedule(s); err != nil {
		h.replyErr(chatID, err)
		return
	}

	h.reply(chatID, fmt.Sprintf("✅ %s теперь %s день.", name, workingLabel(working)))
}

func (h *BotHandler) handleHolidays(chatID int64) {
	year := h.now().Year()
	holidays := h.svc.Gate().HolidaysForYear(year)
	if len(holidays) == 0 {
		h.reply(chatID, fmt.Sprintf("📅 Праздники на %d год не найдены.", year))
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🎉 Праздники %d года:\n", year)
	month := 0
	for _, holiday := range holidays {
		if m := int(holiday.Date.Month()); m != month {
			month = m
			fmt.Fprintf(&b, "\n%s:\n", domain.MonthNames[month])
		}
		fmt.Fprintf(&b, "• %s - %s\n", holiday.Date.Format(domain.DisplayDateLayout), holiday.Name)
	}
	b.WriteString("\nВ эти дни опросы не отправляются.")

	h.reply(chatID, b.String())
}
