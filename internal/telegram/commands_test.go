package telegram_test

import (
	"testing"

	"github.com/ArturKolozyan/telegram-feedback-bot/internal/telegram"
	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantType telegram.CommandType
		wantArgs []string
	}{
		{
			name:     "simple command",
			text:     "/start",
			wantType: telegram.CmdStart,
		},
		{
			name:     "command with bot mention",
			text:     "/report@feedback_bot",
			wantType: telegram.CmdReport,
		},
		{
			name:     "command with args",
			text:     "/download 17.08.2026 xlsx",
			wantType: telegram.CmdDownload,
			wantArgs: []string{"17.08.2026", "xlsx"},
		},
		{
			name:     "set survey time",
			text:     "/setsurvey 18:30",
			wantType: telegram.CmdSetSurvey,
			wantArgs: []string{"18:30"},
		},
		{
			name:     "uppercase is accepted",
			text:     "/MyMonth",
			wantType: telegram.CmdMyMonth,
		},
		{
			name:     "unknown command",
			text:     "/frobnicate",
			wantType: telegram.CmdUnknown,
		},
		{
			name:     "plain text",
			text:     "привет",
			wantType: telegram.CmdUnknown,
		},
		{
			name:     "empty",
			text:     "   ",
			wantType: telegram.CmdUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := telegram.ParseCommand(tt.text)
			assert.Equal(t, tt.wantType, cmd.Type)
			assert.Equal(t, tt.wantArgs, cmd.Args)
			assert.Equal(t, tt.text, cmd.Raw)
		})
	}
}

func TestMoodKeyboard(t *testing.T) {
	kb := telegram.MoodKeyboard()

	assert.Len(t, kb.InlineKeyboard, 3)
	assert.Len(t, kb.InlineKeyboard[0], 2)
	assert.Len(t, kb.InlineKeyboard[1], 2)
	assert.Len(t, kb.InlineKeyboard[2], 1)

	first := kb.InlineKeyboard[0][0]
	assert.Equal(t, "👍 Отлично", first.Text)
	assert.Equal(t, "mood_excellent", *first.CallbackData)

	last := kb.InlineKeyboard[2][0]
	assert.Equal(t, "mood_critical", *last.CallbackData)
}

func TestPaginationRow(t *testing.T) {
	// First of three pages: only forward.
	row := telegram.PaginationRow("users_page", 0, 3)
	assert.Len(t, row, 1)
	assert.Equal(t, "users_page_1", *row[0].CallbackData)

	// Middle page: both directions.
	row = telegram.PaginationRow("users_page", 1, 3)
	assert.Len(t, row, 2)
	assert.Equal(t, "users_page_0", *row[0].CallbackData)
	assert.Equal(t, "users_page_2", *row[1].CallbackData)

	// Single page: no navigation at all.
	row = telegram.PaginationRow("users_page", 0, 1)
	assert.Empty(t, row)
}
