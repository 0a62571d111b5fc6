package workday

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/ArturKolozyan/telegram-feedback-bot/internal/domain"
	"github.com/ArturKolozyan/telegram-feedback-bot/internal/domain/contract"
	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/ru"
)

// Holiday is one public holiday of a calendar year.
type Holiday struct {
	Date time.Time
	Name string
}

// Gate decides, per calendar date, whether surveys run and whether a user is
// exempt. Weekend overrides are read from the settings store on every call,
// so mid-day changes apply on the next scheduler tick without a restart.
type Gate struct {
	settings  contract.SettingsRepo
	vacations contract.VacationRepo
	calendar  *cal.Calendar

	mu     sync.Mutex
	byYear map[int][]Holiday
}

func New(settings contract.SettingsRepo, vacations contract.VacationRepo) *Gate {
	c := &cal.Calendar{Name: "Россия", Cacheable: true}
	c.AddHoliday(ru.Holidays...)

	return &Gate{
		settings:  settings,
		vacations: vacations,
		calendar:  c,
		byYear:    make(map[int][]Holiday),
	}
}

// IsWorkingDay reports whether d is neither a public holiday nor an
// unconfigured weekend day. Holidays win over weekend overrides.
func (g *Gate) IsWorkingDay(d time.Time) (bool, error) {
	if actual, observed, _ := g.calendar.IsHoliday(d); actual || observed {
		return false, nil
	}

	s, err := g.settings.GetSchedule()
	if err != nil {
		return false, fmt.Errorf("failed to read schedule settings: %w", err)
	}

	switch d.Weekday() {
	case time.Saturday:
		return s.SaturdayWorking, nil
	case time.Sunday:
		return s.SundayWorking, nil
	}

	return true, nil
}

// IsOnVacation reports whether the user holds a range with start <= d <= end.
func (g *Gate) IsOnVacation(chatID int64, d time.Time) (bool, error) {
	v, err := g.vacations.Get(chatID)
	if err != nil {
		return false, err
	}

	return v != nil && v.Contains(d), nil
}

// CleanupExpired drops vacations that ended strictly before today. Called
// opportunistically: at startup, before survey sends and before listings.
func (g *Gate) CleanupExpired(today time.Time) int {
	removed, err := g.vacations.DeleteExpired(today.Format(domain.DateLayout))
	if err != nil {
		log.Printf("Failed to cleanup expired vacations: %v", err)
		return 0
	}
	if removed > 0 {
		log.Printf("Removed %d expired vacations", removed)
	}

	return removed
}

// HolidaysForYear lists the year's public holidays, memoized per year.
func (g *Gate) HolidaysForYear(year int) []Holiday {
	g.mu.Lock()
	defer g.mu.Unlock()

	if hs, ok := g.byYear[year]; ok {
		return hs
	}

	var hs []Holiday
	for _, h := range g.calendar.Holidays {
		actual, _ := h.Calc(year)
		if actual.IsZero() {
			continue
		}
		hs = append(hs, Holiday{Date: actual, Name: h.Name})
	}
	sort.Slice(hs, func(i, j int) bool { return hs[i].Date.Before(hs[j].Date) })

	g.byYear[year] = hs
	return hs
}
