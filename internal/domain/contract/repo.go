package contract

import (
	"time"

	"github.com/ArturKolozyan/telegram-feedback-bot/internal/domain/entity"
)

// DataManager aggregates all repository interfaces
type DataManager interface {
	User() UserRepo
	Response() ResponseRepo
	Vacation() VacationRepo
	Settings() SettingsRepo
	SurveyLog() SurveyLogRepo
}

// UserRepo is the roster store.
type UserRepo interface {
	// Upsert creates the user or refreshes name and admin flag in place.
	Upsert(user *entity.User) error
	Get(chatID int64) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	// GetAll returns users in registration (insertion) order.
	GetAll() ([]*entity.User, error)
	Delete(chatID int64) error
}

// DayCount is the number of responses recorded on one date.
type DayCount struct {
	Date  string
	Count int
}

type ResponseRepo interface {
	// UpsertMood records the mood for (date, user), resetting any prior
	// project note and completion timestamp for that day.
	UpsertMood(resp *entity.Response) error
	// SetProject attaches the note and completion time to an existing response.
	SetProject(date string, chatID int64, project string, completedAt time.Time) error
	Get(date string, chatID int64) (*entity.Response, error)
	// GetByDate returns the date's responses in insertion order.
	GetByDate(date string) ([]*entity.Response, error)
	GetByUserAndMonth(chatID int64, year int, month time.Month) ([]*entity.Response, error)
	CountByUser(chatID int64) (int, error)
	// DistinctDateCount is the number of dates with at least one response.
	DistinctDateCount() (int, error)
	// RecentDayCounts returns per-date response counts for the most recent
	// n dates, newest first.
	RecentDayCounts(n int) ([]DayCount, error)
}

type VacationRepo interface {
	// Set stores the user's range, replacing any prior one.
	Set(v *entity.Vacation) error
	Get(chatID int64) (*entity.Vacation, error)
	// GetAll returns vacations ordered by end date ascending.
	GetAll() ([]*entity.Vacation, error)
	Delete(chatID int64) error
	// DeleteExpired removes ranges whose end date is strictly before the
	// given date and reports how many were removed.
	DeleteExpired(before string) (int, error)
}

type SettingsRepo interface {
	GetSchedule() (*entity.ScheduleSettings, error)
	SaveSchedule(s *entity.ScheduleSettings) error
	// HasSchedule reports whether a schedule was ever saved.
	HasSchedule() (bool, error)
	GetReminders() (*entity.ReminderSettings, error)
	SaveReminders(s *entity.ReminderSettings) error
}

// SurveyLogRepo records the dates a survey actually went out. Its presence
// for a date is what allows reminders to fire on that date.
type SurveyLogRepo interface {
	MarkSent(date string, at time.Time) error
	WasSent(date string) (bool, error)
	DatesInMonth(year int, month time.Month) ([]string, error)
}
