package survey_test

import (
	"context"
	"testing"
	"time"

	"github.com/ArturKolozyan/telegram-feedback-bot/internal/domain"
	"github.com/ArturKolozyan/telegram-feedback-bot/internal/domain/contract"
	"github.com/ArturKolozyan/telegram-feedback-bot/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func answer(t *testing.T, dm contract.DataManager, chatID int64, date string, mood domain.Mood, project string) {
	t.Helper()

	ts, err := time.Parse(domain.DateLayout, date)
	require.NoError(t, err)
	ts = ts.Add(17 * time.Hour)

	require.NoError(t, dm.Response().UpsertMood(&entity.Response{
		Date: date, ChatID: chatID, Username: "ivan", Mood: mood, Timestamp: ts,
	}))
	if project != "" {
		require.NoError(t, dm.Response().SetProject(date, chatID, project, ts.Add(10*time.Minute)))
	}
	require.NoError(t, dm.SurveyLog().MarkSent(date, ts))
}

func TestService_MonthlySummary(t *testing.T) {
	svc, dm, _ := setupService(t)
	addUser(t, dm, 100, "ivan", false)

	// Four surveyed working days in August, three answered.
	answer(t, dm, 100, "2026-08-03", domain.MoodGood, "Проект А")
	answer(t, dm, 100, "2026-08-04", domain.MoodGood, "Проект А")
	answer(t, dm, 100, "2026-08-05", domain.MoodBad, "Проект Б")
	require.NoError(t, dm.SurveyLog().MarkSent("2026-08-06", time.Now()))

	report, err := svc.MonthlySummary(100, 2026, time.August)
	require.NoError(t, err)

	assert.Contains(t, report, "Твой отчет: Август 2026")
	assert.Contains(t, report, "👌 Нормально")
	assert.Contains(t, report, "2 дней (67%)")
	assert.Contains(t, report, "1 дней (33%)")
	assert.Contains(t, report, "Средняя оценка: 3.7/5")
	assert.Contains(t, report, "Ответил: 3 из 4 дней (75%)")
	assert.Contains(t, report, "Серия: 3 дней подряд!")
	assert.Contains(t, report, "Среднее время ответа: 10 минут")
	assert.Contains(t, report, "🥇 Проект А — 2 дней (67%)")
	assert.Contains(t, report, "🥈 Проект Б — 1 дней (33%)")
	assert.Contains(t, report, "Следующий отчет: 01 Сентябрь 2026")
}

func TestService_MonthlySummary_NoData(t *testing.T) {
	svc, dm, _ := setupService(t)
	addUser(t, dm, 100, "ivan", false)

	report, err := svc.MonthlySummary(100, 2026, time.August)
	require.NoError(t, err)
	assert.Contains(t, report, "Твой отчет: Август 2026")
	assert.Contains(t, report, "❌ За этот месяц нет данных")
	assert.NotContains(t, report, "НАСТРОЕНИЕ")
}

func TestService_MonthlySummary_VacationDaysExcluded(t *testing.T) {
	svc, dm, _ := setupService(t)
	addUser(t, dm, 100, "ivan", false)

	answer(t, dm, 100, "2026-08-03", domain.MoodGood, "")
	require.NoError(t, dm.Vacation().Set(&entity.Vacation{
		ChatID: 100,
		Start:  time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		End:    time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		SetBy:  managerChatID,
		SetAt:  time.Now(),
	}))

	report, err := svc.MonthlySummary(100, 2026, time.August)
	require.NoError(t, err)
	assert.Contains(t, report, "❌ За этот месяц нет данных", "Vacation responses do not qualify")
}

func TestService_MonthlySummary_WeekendResponsesExcluded(t *testing.T) {
	svc, dm, _ := setupService(t)
	addUser(t, dm, 100, "ivan", false)

	// Saturday answer on a default schedule does not qualify.
	answer(t, dm, 100, "2026-08-08", domain.MoodGood, "")
	answer(t, dm, 100, "2026-08-10", domain.MoodGood, "")

	report, err := svc.MonthlySummary(100, 2026, time.August)
	require.NoError(t, err)
	assert.Contains(t, report, "Ответил: 1 из 1 дней")
}

func TestService_SendMonthlySummaries(t *testing.T) {
	svc, dm, notifier := setupService(t)
	addUser(t, dm, managerChatID, "boss", true)
	addUser(t, dm, 100, "ivan", false)
	addUser(t, dm, 200, "anna", false)

	answer(t, dm, 100, "2026-08-03", domain.MoodGood, "Проект А")

	svc.SendMonthlySummaries(context.Background(), 2026, time.August)

	require.Len(t, notifier.texts[100], 1)
	assert.Contains(t, notifier.texts[100][0], "Твой отчет: Август 2026")

	require.Len(t, notifier.texts[200], 1, "Employees without data still get the empty summary")
	assert.Contains(t, notifier.texts[200][0], "нет данных")

	assert.Empty(t, notifier.texts[managerChatID], "The admin never gets a personal summary")
}
