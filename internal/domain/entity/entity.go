package entity

import (
	"time"

	"github.com/ArturKolozyan/telegram-feedback-bot/internal/domain"
)

// User is a roster entry, created on first /start and refreshed on repeat.
type User struct {
	ChatID       int64
	Username     string
	FirstName    string
	LastName     string
	IsAdmin      bool
	RegisteredAt time.Time
}

func (u *User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Username
}

// Response is one user's answer for one calendar date. Username is captured
// at response time and never re-resolved, so historical reports survive
// roster deletions. CompletedAt is set once the project note arrives.
type Response struct {
	Date        string
	ChatID      int64
	Username    string
	Mood        domain.Mood
	Project     string
	Timestamp   time.Time
	CompletedAt *time.Time
}

// EffectiveTime is the moment the response counts as finished for exports.
func (r *Response) EffectiveTime() time.Time {
	if r.CompletedAt != nil {
		return *r.CompletedAt
	}
	return r.Timestamp
}

// Vacation is the single inclusive date range a user may hold at a time.
type Vacation struct {
	ChatID int64
	Start  time.Time
	End    time.Time
	SetBy  int64
	SetAt  time.Time
}

// Days is the inclusive length of the range.
func (v *Vacation) Days() int {
	return int(v.End.Sub(v.Start).Hours()/24) + 1
}

func (v *Vacation) Contains(d time.Time) bool {
	day := d.Format(domain.DateLayout)
	return v.Start.Format(domain.DateLayout) <= day && day <= v.End.Format(domain.DateLayout)
}

// ScheduleSettings is the process-wide survey/report schedule. Mutated only
// by admin commands and persisted immediately on every change.
type ScheduleSettings struct {
	SurveyTime      string `json:"survey_time"`
	ReportTime      string `json:"report_time"`
	SaturdayWorking bool   `json:"saturday_working"`
	SundayWorking   bool   `json:"sunday_working"`
	AdminAsEmployee bool   `json:"admin_as_employee"`
}

// ReminderSettings controls re-prompting of unanswered users.
type ReminderSettings struct {
	Enabled bool     `json:"enabled"`
	Times   []string `json:"times"`
}
