package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/ArturKolozyan/telegram-feedback-bot/internal/domain/contract"
	"github.com/ArturKolozyan/telegram-feedback-bot/internal/survey"
)

const monthlyReportTime = "09:00"

// Scheduler drives the daily cycle: it wakes on every minute boundary,
// re-reads the configured times and fires the survey, the reminders, the
// evening report and the first-of-month summaries when their minute comes.
// Re-reading each tick means /setsurvey and /setreport apply without restart.
type Scheduler struct {
	svc      *survey.Service
	settings contract.SettingsRepo
	loc      *time.Location

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(svc *survey.Service, settings contract.SettingsRepo, loc *time.Location) *Scheduler {
	return &Scheduler{
		svc:      svc,
		settings: settings,
		loc:      loc,
	}
}

func (s *Scheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(1)
	go s.run(ctx)

	log.Println("Scheduler started")
}

func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	log.Println("Scheduler stopped")
}

func (s *Scheduler) run(ctx context.Context) {
	defer s.wg.Done()

	for {
		now := time.Now().In(s.loc)
		timer := time.NewTimer(untilNextMinute(now))

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		s.tick(ctx, time.Now().In(s.loc))
	}
}

func (s *Scheduler) tick(ctx context.Context, now time.Time) {
	sched, err := s.settings.GetSchedule()
	if err != nil {
		log.Printf("Scheduler failed to read schedule: %v", err)
		return
	}

	hhmm := now.Format("15:04")

	if hhmm == sched.SurveyTime {
		if err := s.svc.SendDailySurvey(ctx, now); err != nil {
			log.Printf("Scheduler failed to send daily survey: %v", err)
		}
		// SendReminders checks the survey log, so arming timers on a
		// non-working day is a harmless no-op.
		s.scheduleReminders(ctx, now)
	}

	if hhmm == sched.ReportTime {
		if err := s.svc.GenerateDailyReport(ctx, now); err != nil {
			log.Printf("Scheduler failed to generate daily report: %v", err)
		}
	}

	if now.Day() == 1 && hhmm == monthlyReportTime {
		year, month := previousMonth(now)
		s.svc.SendMonthlySummaries(ctx, year, month)
	}
}

// scheduleReminders arms one timer per configured reminder time for the rest
// of today. Times already in the past are skipped, not fired immediately.
func (s *Scheduler) scheduleReminders(ctx context.Context, now time.Time) {
	rem, err := s.settings.GetReminders()
	if err != nil {
		log.Printf("Scheduler failed to read reminder settings: %v", err)
		return
	}
	if !rem.Enabled {
		return
	}

	for _, at := range rem.Times {
		delay, ok := untilToday(now, at)
		if !ok {
			continue
		}

		s.wg.Add(1)
		go func(delay time.Duration) {
			defer s.wg.Done()

			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}

			if err := s.svc.SendReminders(ctx, time.Now().In(s.loc)); err != nil {
				log.Printf("Scheduler failed to send reminders: %v", err)
			}
		}(delay)
	}
}

func untilNextMinute(now time.Time) time.Duration {
	next := now.Truncate(time.Minute).Add(time.Minute)
	return next.Sub(now)
}

// untilToday resolves "HH:MM" against now's date and returns the wait until
// that moment. ok is false for malformed or already-passed times.
func untilToday(now time.Time, hhmm string) (time.Duration, bool) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, false
	}

	at := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
	if !at.After(now) {
		return 0, false
	}

	return at.Sub(now), true
}

func previousMonth(now time.Time) (int, time.Month) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	prev := first.AddDate(0, 0, -1)

	return prev.Year(), prev.Month()
}
