package workday_test

import (
	"testing"
	"time"

	"github.com/ArturKolozyan/telegram-feedback-bot/internal/database"
	"github.com/ArturKolozyan/telegram-feedback-bot/internal/domain/contract"
	"github.com/ArturKolozyan/telegram-feedback-bot/internal/domain/entity"
	"github.com/ArturKolozyan/telegram-feedback-bot/internal/workday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupGate(t *testing.T) (*workday.Gate, contract.DataManager) {
	t.Helper()

	db := database.SetupTestDB(t)
	t.Cleanup(func() { database.CleanupTestDB(t, db) })

	dm := database.NewManager(db)
	return workday.New(dm.Settings(), dm.Vacation()), dm
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestGate_IsWorkingDay_Weekdays(t *testing.T) {
	gate, _ := setupGate(t)

	// Regular Wednesday.
	working, err := gate.IsWorkingDay(day(2026, time.August, 19))
	require.NoError(t, err)
	assert.True(t, working)

	// Saturday and Sunday are off by default.
	working, err = gate.IsWorkingDay(day(2026, time.August, 22))
	require.NoError(t, err)
	assert.False(t, working)

	working, err = gate.IsWorkingDay(day(2026, time.August, 23))
	require.NoError(t, err)
	assert.False(t, working)
}

func TestGate_IsWorkingDay_WeekendOverride(t *testing.T) {
	gate, dm := setupGate(t)

	s, err := dm.Settings().GetSchedule()
	require.NoError(t, err)
	s.SaturdayWorking = true
	require.NoError(t, dm.Settings().SaveSchedule(s))

	// The override applies without recreating the gate.
	working, err := gate.IsWorkingDay(day(2026, time.August, 22))
	require.NoError(t, err)
	assert.True(t, working, "Saturday must be working after the toggle")

	working, err = gate.IsWorkingDay(day(2026, time.August, 23))
	require.NoError(t, err)
	assert.False(t, working, "Sunday stays off")
}

func TestGate_IsWorkingDay_Holiday(t *testing.T) {
	gate, dm := setupGate(t)

	working, err := gate.IsWorkingDay(day(2026, time.January, 1))
	require.NoError(t, err)
	assert.False(t, working, "New Year is never a working day")

	// Victory Day 2026 falls on a Saturday: the holiday wins even with the
	// Saturday override on.
	s, err := dm.Settings().GetSchedule()
	require.NoError(t, err)
	s.SaturdayWorking = true
	require.NoError(t, dm.Settings().SaveSchedule(s))

	working, err = gate.IsWorkingDay(day(2026, time.May, 9))
	require.NoError(t, err)
	assert.False(t, working)
}

func TestGate_IsOnVacation(t *testing.T) {
	gate, dm := setupGate(t)

	require.NoError(t, dm.Vacation().Set(&entity.Vacation{
		ChatID: 100,
		Start:  day(2026, time.July, 1),
		End:    day(2026, time.July, 14),
		SetBy:  1,
		SetAt:  time.Now(),
	}))

	cases := []struct {
		d    time.Time
		want bool
	}{
		{day(2026, time.June, 30), false},
		{day(2026, time.July, 1), true},
		{day(2026, time.July, 14), true},
		{day(2026, time.July, 15), false},
	}
	for _, c := range cases {
		on, err := gate.IsOnVacation(100, c.d)
		require.NoError(t, err)
		assert.Equal(t, c.want, on, "date %s", c.d.Format("2006-01-02"))
	}

	on, err := gate.IsOnVacation(999, day(2026, time.July, 5))
	require.NoError(t, err)
	assert.False(t, on, "No range means not on vacation")
}

func TestGate_CleanupExpired(t *testing.T) {
	gate, dm := setupGate(t)

	require.NoError(t, dm.Vacation().Set(&entity.Vacation{
		ChatID: 100, Start: day(2026, time.June, 1), End: day(2026, time.June, 10), SetBy: 1, SetAt: time.Now(),
	}))
	require.NoError(t, dm.Vacation().Set(&entity.Vacation{
		ChatID: 200, Start: day(2026, time.July, 1), End: day(2026, time.July, 15), SetBy: 1, SetAt: time.Now(),
	}))

	removed := gate.CleanupExpired(day(2026, time.July, 1))
	assert.Equal(t, 1, removed)

	v, err := dm.Vacation().Get(200)
	require.NoError(t, err)
	assert.NotNil(t, v, "Active range must survive cleanup")
}

func TestGate_HolidaysForYear(t *testing.T) {
	gate, _ := setupGate(t)

	holidays := gate.HolidaysForYear(2026)
	require.NotEmpty(t, holidays)

	for i := 1; i < len(holidays); i++ {
		assert.False(t, holidays[i].Date.Before(holidays[i-1].Date), "Holidays must be sorted")
	}

	// Memoized call returns the same data.
	again := gate.HolidaysForYear(2026)
	assert.Equal(t, len(holidays), len(again))
}
