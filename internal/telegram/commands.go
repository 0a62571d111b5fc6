package telegram

import (
	"strings"
)

type CommandType string

const (
	CmdStart          CommandType = "start"
	CmdHelp           CommandType = "help"
	CmdTest           CommandType = "test"
	CmdReport         CommandType = "report"
	CmdCreateReport   CommandType = "createreport"
	CmdDownload       CommandType = "download"
	CmdReports        CommandType = "reports"
	CmdStats          CommandType = "stats"
	CmdUsers          CommandType = "users"
	CmdSchedule       CommandType = "schedule"
	CmdSetSurvey      CommandType = "setsurvey"
	CmdSetReport      CommandType = "setreport"
	CmdAdminSurvey    CommandType = "adminsurvey"
	CmdReminders      CommandType = "reminders"
	CmdWeekends       CommandType = "weekends"
	CmdSaturday       CommandType = "saturday"
	CmdSunday         CommandType = "sunday"
	CmdHolidays       CommandType = "holidays"
	CmdVacation       CommandType = "vacation"
	CmdVacations      CommandType = "vacations"
	CmdRemoveVacation CommandType = "removevacation"
	CmdMyMonth        CommandType = "mymonth"
	CmdUnknown        CommandType = "unknown"
)

type Command struct {
	Type CommandType
	Args []string
	Raw  string
}

// ParseCommand splits a "/command arg arg" message. The "@botname" suffix
// Telegram appends in group chats is stripped before matching.
func ParseCommand(text string) *Command {
	parts := strings.Fields(strings.TrimSpace(text))
	if len(parts) == 0 || !strings.HasPrefix(parts[0], "/") {
		return &Command{Type: CmdUnknown, Raw: text}
	}

	name := strings.TrimPrefix(parts[0], "/")
	if at := strings.Index(name, "@"); at >= 0 {
		name = name[:at]
	}

	cmd := &Command{Raw: text}
	if len(parts) > 1 {
		cmd.Args = parts[1:]
	}

	switch strings.ToLower(name) {
	case "start":
		cmd.Type = CmdStart
	case "help":
		cmd.Type = CmdHelp
	case "test":
		cmd.Type = CmdTest
	case "report":
		cmd.Type = CmdReport
	case "createreport":
		cmd.Type = CmdCreateReport
	case "download":
		cmd.Type = CmdDownload
	case "reports":
		cmd.Type = CmdReports
	case "stats":
		cmd.Type = CmdStats
	case "users":
		cmd.Type = CmdUsers
	case "schedule":
		cmd.Type = CmdSchedule
	case "setsurvey":
		cmd.Type = CmdSetSurvey
	case "setreport":
		cmd.Type = CmdSetReport
	case "adminsurvey":
		cmd.Type = CmdAdminSurvey
	case "reminders":
		cmd.Type = CmdReminders
	case "weekends":
		cmd.Type = CmdWeekends
	case "saturday":
		cmd.Type = CmdSaturday
	case "sunday":
		cmd.Type = CmdSunday
	case "holidays":
		cmd.Type = CmdHolidays
	case "vacation":
		cmd.Type = CmdVacation
	case "vacations":
		cmd.Type = CmdVacations
	case "removevacation":
		cmd.Type = CmdRemoveVacation
	case "mymonth":
		cmd.Type = CmdMyMonth
	default:
		cmd.Type = CmdUnknown
	}

	return cmd
}
