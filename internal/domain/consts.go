package domain

// Mood is one of the five fixed day-quality ratings, best to worst.
type Mood string

const (
	MoodExcellent Mood = "excellent"
	MoodGood      Mood = "good"
	MoodBad       Mood = "bad"
	MoodHard      Mood = "hard"
	MoodCritical  Mood = "critical"
)

// MoodOrder is the fixed rendering order for reports and summaries.
var MoodOrder = []Mood{MoodExcellent, MoodGood, MoodBad, MoodHard, MoodCritical}

type MoodInfo struct {
	Emoji string
	Label string
	Score int
}

// MoodOptions maps every mood to its emoji, localized label and numeric weight.
var MoodOptions = map[Mood]MoodInfo{
	MoodExcellent: {Emoji: "👍", Label: "Отлично", Score: 5},
	MoodGood:      {Emoji: "👌", Label: "Нормально", Score: 4},
	MoodBad:       {Emoji: "😔", Label: "Не очень", Score: 3},
	MoodHard:      {Emoji: "😓", Label: "Тяжело", Score: 2},
	MoodCritical:  {Emoji: "😭", Label: "Критично", Score: 1},
}

func (m Mood) Valid() bool {
	_, ok := MoodOptions[m]
	return ok
}

func (m Mood) Emoji() string { return MoodOptions[m].Emoji }
func (m Mood) Label() string { return MoodOptions[m].Label }
func (m Mood) Score() int    { return MoodOptions[m].Score }

const (
	// DateLayout is the internal calendar-date key format.
	DateLayout = "2006-01-02"
	// DisplayDateLayout is the date format shown to users.
	DisplayDateLayout = "02.01.2006"
	// TimeLayout is the HH:MM wall-clock format used by all schedule settings.
	TimeLayout = "15:04"
)

// ProjectMaxLen limits the free-text project note after trimming.
const ProjectMaxLen = 500

// ProjectDenylist rejects obvious markup/script injection attempts.
// Matching is case-insensitive; matching text is rejected, never stripped.
var ProjectDenylist = []string{"<script", "javascript:", "data:", "vbscript:"}

// PageSize is the number of entries per page in user and vacation listings.
const PageSize = 10

// NotSpecified is the export placeholder for a missing project note.
const NotSpecified = "Не указан"

// MonthNames maps month numbers to their localized names.
var MonthNames = map[int]string{
	1: "Январь", 2: "Февраль", 3: "Март", 4: "Апрель",
	5: "Май", 6: "Июнь", 7: "Июль", 8: "Август",
	9: "Сентябрь", 10: "Октябрь", 11: "Ноябрь", 12: "Декабрь",
}
