package database

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/ArturKolozyan/telegram-feedback-bot/internal/domain/entity"
)

const (
	keySchedule  = "schedule"
	keyReminders = "reminders"
)

type settingsRepo struct {
	conn dbConn
}

func newSettingsRepo(conn dbConn) *settingsRepo {
	return &settingsRepo{conn: conn}
}

// GetSchedule returns the stored schedule, or the defaults when nothing has
// been saved yet.
func (r *settingsRepo) GetSchedule() (*entity.ScheduleSettings, error) {
	s := &entity.ScheduleSettings{
		SurveyTime: "17:00",
		ReportTime: "21:00",
	}

	if err := r.load(keySchedule, s); err != nil {
		return nil, err
	}

	return s, nil
}

func (r *settingsRepo) SaveSchedule(s *entity.ScheduleSettings) error {
	return r.save(keySchedule, s)
}

// HasSchedule reports whether a schedule was ever saved, so startup can tell
// first run from an admin-configured one.
func (r *settingsRepo) HasSchedule() (bool, error) {
	var count int
	err := r.conn.QueryRow(`SELECT COUNT(*) FROM settings WHERE key = ?`, keySchedule).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check settings %q: %w", keySchedule, err)
	}

	return count > 0, nil
}

func (r *settingsRepo) GetReminders() (*entity.ReminderSettings, error) {
	s := &entity.ReminderSettings{
		Enabled: true,
		Times:   []string{"17:30", "18:00", "18:30"},
	}

	if err := r.load(keyReminders, s); err != nil {
		return nil, err
	}

	return s, nil
}

func (r *settingsRepo) SaveReminders(s *entity.ReminderSettings) error {
	return r.save(keyReminders, s)
}

func (r *settingsRepo) load(key string, dest interface{}) error {
	var value string
	err := r.conn.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load settings %q: %w", key, err)
	}

	if err := json.Unmarshal([]byte(value), dest); err != nil {
		return fmt.Errorf("failed to decode settings %q: %w", key, err)
	}

	return nil
}

func (r *settingsRepo) save(key string, src interface{}) error {
	value, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("failed to encode settings %q: %w", key, err)
	}

	query := `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`
	if _, err := r.conn.Exec(query, key, string(value)); err != nil {
		return fmt.Errorf("failed to save settings %q: %w", key, err)
	}

	return nil
}
