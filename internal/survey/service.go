package survey

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ArturKolozyan/telegram-feedback-bot/internal/domain"
	"github.com/ArturKolozyan/telegram-feedback-bot/internal/domain/contract"
	"github.com/ArturKolozyan/telegram-feedback-bot/internal/domain/entity"
	"github.com/ArturKolozyan/telegram-feedback-bot/internal/export"
	"github.com/ArturKolozyan/telegram-feedback-bot/internal/metrics"
	"github.com/ArturKolozyan/telegram-feedback-bot/internal/workday"
)

const (
	// SurveyQuestion is the daily prompt text.
	SurveyQuestion = "Как прошел твой день? 🤔"
	// ReminderText re-prompts users that have not answered yet.
	ReminderText = "⏰ Напоминание: не забудь ответить на опрос!"
)

// Service aggregates daily responses and drives all survey/report sends.
type Service struct {
	dm            contract.DataManager
	gate          *workday.Gate
	notifier      contract.Notifier
	exporter      *export.Exporter
	managerChatID int64
}

func New(dm contract.DataManager, gate *workday.Gate, notifier contract.Notifier, exporter *export.Exporter, managerChatID int64) *Service {
	return &Service{
		dm:            dm,
		gate:          gate,
		notifier:      notifier,
		exporter:      exporter,
		managerChatID: managerChatID,
	}
}

func (s *Service) Gate() *workday.Gate { return s.gate }

// RecordMood records the user's rating for the given date, overwriting any
// prior answer and restarting the awaiting-note step.
func (s *Service) RecordMood(chatID int64, date string, mood domain.Mood, at time.Time) error {
	if !mood.Valid() {
		return domain.NewValidationError("Произошла ошибка. Попробуйте еще раз.", "")
	}

	username := "Неизвестный"
	user, err := s.dm.User().Get(chatID)
	if err != nil {
		return err
	}
	if user != nil && user.Username != "" {
		username = user.Username
	}

	resp := &entity.Response{
		Date:      date,
		ChatID:    chatID,
		Username:  username,
		Mood:      mood,
		Timestamp: at,
	}
	if err := s.dm.Response().UpsertMood(resp); err != nil {
		return err
	}

	metrics.ResponsesRecorded.Inc()
	return nil
}

// RecordProject validates and attaches the free-text note to the day's
// response. Forbidden text is rejected with a user-facing error and the
// recorded mood stays untouched, so a clean retry succeeds.
func (s *Service) RecordProject(chatID int64, date, text string, at time.Time) error {
	text = strings.TrimSpace(text)

	if text == "" {
		return domain.NewValidationError("Пожалуйста, напишите название проекта или задачи.", "")
	}
	if utf8.RuneCountInString(text) > domain.ProjectMaxLen {
		return domain.NewValidationError(
			fmt.Sprintf("Описание проекта слишком длинное. Максимум %d символов.", domain.ProjectMaxLen), "")
	}
	lower := strings.ToLower(text)
	for _, word := range domain.ProjectDenylist {
		if strings.Contains(lower, word) {
			return domain.NewValidationError("Недопустимый текст. Пожалуйста, опишите проект корректно.", "")
		}
	}

	err := s.dm.Response().SetProject(date, chatID, text, at)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewNotFoundError("Ответ за сегодня не найден. Сначала выберите настроение.")
	}

	return err
}

// eligibleUsers is the surveyable roster: everyone except the admin, unless
// the admin opted in as an employee.
func (s *Service) eligibleUsers() ([]*entity.User, error) {
	users, err := s.dm.User().GetAll()
	if err != nil {
		return nil, err
	}

	sched, err := s.dm.Settings().GetSchedule()
	if err != nil {
		return nil, err
	}

	var eligible []*entity.User
	for _, u := range users {
		if u.IsAdmin && !sched.AdminAsEmployee {
			continue
		}
		eligible = append(eligible, u)
	}

	return eligible, nil
}

// SendDailySurvey prompts every eligible user, skipping vacationers. A failed
// send to one user never aborts the rest; failures are tallied and logged.
func (s *Service) SendDailySurvey(ctx context.Context, day time.Time) error {
	s.gate.CleanupExpired(day)

	working, err := s.gate.IsWorkingDay(day)
	if err != nil {
		return err
	}
	date := day.Format(domain.DateLayout)
	if !working {
		log.Printf("Survey skipped: %s is not a working day", date)
		return nil
	}

	// The day's response set exists from this point on, which is what lets
	// reminders fire later even when every send below fails.
	if err := s.dm.SurveyLog().MarkSent(date, day); err != nil {
		log.Printf("Failed to record survey log for %s: %v", date, err)
	}

	users, err := s.eligibleUsers()
	if err != nil {
		return err
	}

	sent, vacation, failed := 0, 0, 0
	for _, u := range users {
		if ctx.Err() != nil {
			break
		}

		onVacation, err := s.gate.IsOnVacation(u.ChatID, day)
		if err != nil {
			log.Printf("Vacation check failed for %d: %v", u.ChatID, err)
		}
		if onVacation {
			vacation++
			continue
		}

		if err := s.notifier.SendSurvey(u.ChatID, SurveyQuestion); err != nil {
			failed++
			metrics.DeliveryErrors.Inc()
			log.Printf("Failed to send survey to %d: %v", u.ChatID, err)
			continue
		}
		sent++
		metrics.SurveysSent.Inc()
	}

	log.Printf("Survey for %s done: sent=%d vacation=%d failed=%d", date, sent, vacation, failed)
	return nil
}

// SendReminders re-prompts eligible users that have no response yet for the
// day. Does nothing unless reminders are enabled and the day's survey went out.
func (s *Service) SendReminders(ctx context.Context, day time.Time) error {
	rs, err := s.dm.Settings().GetReminders()
	if err != nil {
		return err
	}
	if !rs.Enabled {
		return nil
	}

	date := day.Format(domain.DateLayout)
	wasSent, err := s.dm.SurveyLog().WasSent(date)
	if err != nil {
		return err
	}
	if !wasSent {
		return nil
	}

	users, err := s.eligibleUsers()
	if err != nil {
		return err
	}

	sent := 0
	for _, u := range users {
		if ctx.Err() != nil {
			break
		}

		resp, err := s.dm.Response().Get(date, u.ChatID)
		if err != nil {
			log.Printf("Response lookup failed for %d: %v", u.ChatID, err)
			continue
		}
		if resp != nil {
			continue
		}

		onVacation, err := s.gate.IsOnVacation(u.ChatID, day)
		if err != nil || onVacation {
			continue
		}

		if err := s.notifier.SendSurvey(u.ChatID, ReminderText); err != nil {
			metrics.DeliveryErrors.Inc()
			log.Printf("Failed to send reminder to %d: %v", u.ChatID, err)
			continue
		}
		sent++
		metrics.RemindersSent.Inc()
	}

	log.Printf("Reminders for %s sent: %d", date, sent)
	return nil
}

// RenderDailyReport builds the manager-facing text for one date: responses
// grouped by mood in fixed order, then non-responders, vacationers apart.
func (s *Service) RenderDailyReport(day time.Time) (string, error) {
	date := day.Format(domain.DateLayout)
	displayDate := day.Format(domain.DisplayDateLayout)

	responses, err := s.dm.Response().GetByDate(date)
	if err != nil {
		return "", err
	}

	users, err := s.eligibleUsers()
	if err != nil {
		return "", err
	}

	var vacationNames []string
	vacationing := make(map[int64]bool)
	for _, u := range users {
		onVacation, err := s.gate.IsOnVacation(u.ChatID, day)
		if err != nil {
			return "", err
		}
		if onVacation {
			vacationing[u.ChatID] = true
			vacationNames = append(vacationNames, "@"+u.Username)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 Отчет за %s\n\n", displayDate)

	if len(vacationNames) > 0 {
		fmt.Fprintf(&b, "❌ Не отправлено:\n• Отпуск: %s (%d чел.)\n\n",
			strings.Join(vacationNames, ", "), len(vacationNames))
	}

	if len(responses) == 0 {
		b.WriteString("❌ Сегодня никто не ответил на опрос.")
		return b.String(), nil
	}

	total := len(users) - len(vacationNames)
	fmt.Fprintf(&b, "👥 Ответили: %d из %d", len(responses), total)
	if total > 0 {
		fmt.Fprintf(&b, " (%d%%)", percent(len(responses), total))
	}
	b.WriteString("\n\n")

	groups := make(map[domain.Mood][]*entity.Response)
	for _, resp := range responses {
		groups[resp.Mood] = append(groups[resp.Mood], resp)
	}

	for _, mood := range domain.MoodOrder {
		group := groups[mood]
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s %s (%d):\n", mood.Emoji(), mood.Label(), len(group))
		for _, resp := range group {
			project := resp.Project
			if project == "" {
				project = domain.NotSpecified
			}
			fmt.Fprintf(&b, "  • @%s: %s\n", resp.Username, project)
		}
		b.WriteString("\n")
	}

	responded := make(map[int64]bool, len(responses))
	for _, resp := range responses {
		responded[resp.ChatID] = true
	}

	var notResponded []*entity.User
	for _, u := range users {
		if !responded[u.ChatID] && !vacationing[u.ChatID] {
			notResponded = append(notResponded, u)
		}
	}
	if len(notResponded) > 0 {
		fmt.Fprintf(&b, "❌ Не ответили (%d):\n", len(notResponded))
		for _, u := range notResponded {
			fmt.Fprintf(&b, "  • @%s\n", u.Username)
		}
	}

	return strings.TrimRight(b.String(), "\n"), nil
}

// GenerateDailyReport sends the text report to the manager and attaches the
// CSV export when the date has any recorded activity.
func (s *Service) GenerateDailyReport(ctx context.Context, day time.Time) error {
	report, err := s.RenderDailyReport(day)
	if err != nil {
		return err
	}

	if err := s.notifier.SendText(s.managerChatID, report); err != nil {
		metrics.DeliveryErrors.Inc()
		log.Printf("Failed to send report to manager: %v", err)
	}
	metrics.ReportsGenerated.Inc()

	date := day.Format(domain.DateLayout)
	responses, err := s.dm.Response().GetByDate(date)
	if err != nil {
		return err
	}
	wasSent, err := s.dm.SurveyLog().WasSent(date)
	if err != nil {
		return err
	}
	if len(responses) == 0 && !wasSent {
		return nil
	}

	path, err := s.exporter.WriteCSV(date, responses)
	if err != nil {
		return err
	}

	caption := fmt.Sprintf("📎 Отчет за %s в формате CSV\n\nОткройте в Excel для удобного просмотра.",
		day.Format(domain.DisplayDateLayout))
	if err := s.notifier.SendDocument(s.managerChatID, path, caption); err != nil {
		metrics.DeliveryErrors.Inc()
		log.Printf("Failed to send CSV to manager: %v", err)
	}

	return nil
}

// BotStats renders roster and activity totals for the admin.
func (s *Service) BotStats() (string, error) {
	users, err := s.dm.User().GetAll()
	if err != nil {
		return "", err
	}

	admins := 0
	for _, u := range users {
		if u.IsAdmin {
			admins++
		}
	}
	employees := len(users) - admins

	totalDays, err := s.dm.Response().DistinctDateCount()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("📊 Статистика бота:\n\n")
	fmt.Fprintf(&b, "👥 Всего пользователей: %d\n", len(users))
	fmt.Fprintf(&b, "👑 Администраторов: %d\n", admins)
	fmt.Fprintf(&b, "👤 Сотрудников: %d\n", employees)
	fmt.Fprintf(&b, "📅 Дней с ответами: %d\n", totalDays)

	counts, err := s.dm.Response().RecentDayCounts(7)
	if err != nil {
		return "", err
	}
	if len(counts) > 0 {
		sum := 0
		for _, dc := range counts {
			sum += dc.Count
		}
		avg := float64(sum) / float64(len(counts))
		fmt.Fprintf(&b, "📊 Средняя активность (7 дней): %.1f ответов/день\n", avg)
		if employees > 0 {
			fmt.Fprintf(&b, "📈 Процент участия: %.1f%%\n", avg/float64(employees)*100)
		}
	}

	return b.String(), nil
}

func percent(part, total int) int {
	return int(float64(part)/float64(total)*100 + 0.5)
}
