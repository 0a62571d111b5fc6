package survey

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/ArturKolozyan/telegram-feedback-bot/internal/domain"
	"github.com/ArturKolozyan/telegram-feedback-bot/internal/domain/entity"
	"github.com/ArturKolozyan/telegram-feedback-bot/internal/metrics"
)

// MonthlySummary renders one user's month: mood distribution, weighted
// average, activity, top projects, calendar-date streak and average
// prompt-to-completion time. Only working days without vacation qualify.
func (s *Service) MonthlySummary(chatID int64, year int, month time.Month) (string, error) {
	monthName := domain.MonthNames[int(month)]

	all, err := s.dm.Response().GetByUserAndMonth(chatID, year, month)
	if err != nil {
		return "", err
	}

	var qualifying []*entity.Response
	for _, resp := range all {
		day, err := time.Parse(domain.DateLayout, resp.Date)
		if err != nil {
			continue
		}
		ok, err := s.qualifies(chatID, day)
		if err != nil {
			return "", err
		}
		if ok {
			qualifying = append(qualifying, resp)
		}
	}

	if len(qualifying) == 0 {
		return fmt.Sprintf("📊 Твой отчет: %s %d\n\n❌ За этот месяц нет данных", monthName, year), nil
	}

	total := len(qualifying)
	moodCounts := make(map[domain.Mood]int)
	scoreSum := 0
	for _, resp := range qualifying {
		moodCounts[resp.Mood]++
		scoreSum += resp.Mood.Score()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 Твой отчет: %s %d\n\n", monthName, year)
	b.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")
	b.WriteString("😊 НАСТРОЕНИЕ\n\n")

	for _, mood := range domain.MoodOrder {
		count := moodCounts[mood]
		pct := percent(count, total)
		bar := strings.Repeat("█", pct/10) + strings.Repeat("░", 10-pct/10)
		fmt.Fprintf(&b, "%s %s\n%s %d дней (%d%%)\n\n", mood.Emoji(), mood.Label(), bar, count, pct)
	}

	fmt.Fprintf(&b, "📈 Средняя оценка: %.1f/5\n\n", float64(scoreSum)/float64(total))
	b.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")
	b.WriteString("📋 АКТИВНОСТЬ\n\n")

	surveyDays, err := s.qualifyingSurveyDays(chatID, year, month)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(&b, "✅ Ответил: %d из %d дней", total, surveyDays)
	if surveyDays > 0 {
		fmt.Fprintf(&b, " (%d%%)", percent(total, surveyDays))
	}
	b.WriteString("\n")

	if streak := longestStreak(all); streak > 1 {
		fmt.Fprintf(&b, "🏆 Серия: %d дней подряд!\n", streak)
	}
	if avg := avgResponseMinutes(qualifying); avg > 0 {
		fmt.Fprintf(&b, "⏱ Среднее время ответа: %.0f минут\n", avg)
	}

	b.WriteString("\n━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")
	b.WriteString("🎯 ПРОЕКТЫ\n\n")
	b.WriteString("Над чем работал чаще всего:\n\n")

	medals := []string{"🥇", "🥈", "🥉"}
	for i, pc := range topProjects(qualifying, 5) {
		prefix := fmt.Sprintf("%d.", i+1)
		if i < len(medals) {
			prefix += " " + medals[i]
		}
		fmt.Fprintf(&b, "%s %s — %d дней (%d%%)\n", prefix, pc.name, pc.count, percent(pc.count, total))
	}

	nextYear, nextMonth := year, int(month)+1
	if nextMonth > 12 {
		nextYear, nextMonth = year+1, 1
	}
	fmt.Fprintf(&b, "\n📅 Следующий отчет: 01 %s %d", domain.MonthNames[nextMonth], nextYear)

	return b.String(), nil
}

// SendMonthlySummaries sends every employee their previous-month summary.
// The admin never receives one.
func (s *Service) SendMonthlySummaries(ctx context.Context, year int, month time.Month) {
	users, err := s.dm.User().GetAll()
	if err != nil {
		log.Printf("Failed to load users for monthly summaries: %v", err)
		return
	}

	sent := 0
	for _, u := range users {
		if u.IsAdmin {
			continue
		}
		if ctx.Err() != nil {
			break
		}

		report, err := s.MonthlySummary(u.ChatID, year, month)
		if err != nil {
			log.Printf("Failed to build monthly summary for %d: %v", u.ChatID, err)
			continue
		}
		if err := s.notifier.SendText(u.ChatID, report); err != nil {
			metrics.DeliveryErrors.Inc()
			log.Printf("Failed to send monthly summary to %d: %v", u.ChatID, err)
			continue
		}
		sent++
	}

	log.Printf("Monthly summaries for %02d/%d sent: %d", int(month), year, sent)
}

func (s *Service) qualifies(chatID int64, day time.Time) (bool, error) {
	working, err := s.gate.IsWorkingDay(day)
	if err != nil {
		return false, err
	}
	if !working {
		return false, nil
	}

	onVacation, err := s.gate.IsOnVacation(chatID, day)
	if err != nil {
		return false, err
	}

	return !onVacation, nil
}

// qualifyingSurveyDays counts the month's survey days that were working days
// on which the user was not on vacation: the denominator for participation.
func (s *Service) qualifyingSurveyDays(chatID int64, year int, month time.Month) (int, error) {
	dates, err := s.dm.SurveyLog().DatesInMonth(year, month)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, date := range dates {
		day, err := time.Parse(domain.DateLayout, date)
		if err != nil {
			continue
		}
		ok, err := s.qualifies(chatID, day)
		if err != nil {
			return 0, err
		}
		if ok {
			count++
		}
	}

	return count, nil
}

// longestStreak finds the longest run of consecutive calendar dates with a
// response, regardless of working-day status.
func longestStreak(responses []*entity.Response) int {
	var dates []time.Time
	for _, resp := range responses {
		if d, err := time.Parse(domain.DateLayout, resp.Date); err == nil {
			dates = append(dates, d)
		}
	}
	if len(dates) == 0 {
		return 0
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	best, current := 1, 1
	for i := 1; i < len(dates); i++ {
		if dates[i].Sub(dates[i-1]) == 24*time.Hour {
			current++
			if current > best {
				best = current
			}
		} else {
			current = 1
		}
	}

	return best
}

func avgResponseMinutes(responses []*entity.Response) float64 {
	sum, n := 0.0, 0
	for _, resp := range responses {
		if resp.CompletedAt == nil {
			continue
		}
		sum += resp.CompletedAt.Sub(resp.Timestamp).Minutes()
		n++
	}
	if n == 0 {
		return 0
	}

	return sum / float64(n)
}

type projectCount struct {
	name  string
	count int
}

// topProjects ranks non-empty project notes by frequency, ties kept in
// first-seen order.
func topProjects(responses []*entity.Response, limit int) []projectCount {
	counts := make(map[string]int)
	var order []string
	for _, resp := range responses {
		if resp.Project == "" {
			continue
		}
		if _, seen := counts[resp.Project]; !seen {
			order = append(order, resp.Project)
		}
		counts[resp.Project]++
	}

	pcs := make([]projectCount, 0, len(order))
	for _, name := range order {
		pcs = append(pcs, projectCount{name: name, count: counts[name]})
	}
	sort.SliceStable(pcs, func(i, j int) bool { return pcs[i].count > pcs[j].count })

	if len(pcs) > limit {
		pcs = pcs[:limit]
	}

	return pcs
}
