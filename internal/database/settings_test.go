package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsRepository_ScheduleDefaults(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := newSettingsRepo(db.conn)

	s, err := repo.GetSchedule()
	require.NoError(t, err)
	assert.Equal(t, "17:00", s.SurveyTime)
	assert.Equal(t, "21:00", s.ReportTime)
	assert.False(t, s.SaturdayWorking)
	assert.False(t, s.SundayWorking)
	assert.False(t, s.AdminAsEmployee)

	has, err := repo.HasSchedule()
	require.NoError(t, err)
	assert.False(t, has, "Defaults are not a stored schedule")
}

func TestSettingsRepository_SaveSchedule(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := newSettingsRepo(db.conn)

	s, err := repo.GetSchedule()
	require.NoError(t, err)
	s.SurveyTime = "18:30"
	s.SaturdayWorking = true

	require.NoError(t, repo.SaveSchedule(s))

	loaded, err := repo.GetSchedule()
	require.NoError(t, err)
	assert.Equal(t, "18:30", loaded.SurveyTime)
	assert.Equal(t, "21:00", loaded.ReportTime)
	assert.True(t, loaded.SaturdayWorking)

	has, err := repo.HasSchedule()
	require.NoError(t, err)
	assert.True(t, has)
}

func TestSettingsRepository_Reminders(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := newSettingsRepo(db.conn)

	rem, err := repo.GetReminders()
	require.NoError(t, err)
	assert.True(t, rem.Enabled)
	assert.Equal(t, []string{"17:30", "18:00", "18:30"}, rem.Times)

	rem.Enabled = false
	require.NoError(t, repo.SaveReminders(rem))

	loaded, err := repo.GetReminders()
	require.NoError(t, err)
	assert.False(t, loaded.Enabled)
}

func TestSurveyLogRepository(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := newSurveyLogRepo(db.conn)

	sent, err := repo.WasSent("2026-08-17")
	require.NoError(t, err)
	assert.False(t, sent)

	require.NoError(t, repo.MarkSent("2026-08-17", time.Now()))
	// Duplicate marks are fine.
	require.NoError(t, repo.MarkSent("2026-08-17", time.Now()))
	require.NoError(t, repo.MarkSent("2026-08-20", time.Now()))
	require.NoError(t, repo.MarkSent("2026-09-01", time.Now()))

	sent, err = repo.WasSent("2026-08-17")
	require.NoError(t, err)
	assert.True(t, sent)

	dates, err := repo.DatesInMonth(2026, time.August)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-08-17", "2026-08-20"}, dates)
}
