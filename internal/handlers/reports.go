package handlers

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ArturKolozyan/telegram-feedback-bot/internal/domain"
	"github.com/ArturKolozyan/telegram-feedback-bot/internal/survey"
	"github.com/ArturKolozyan/telegram-feedback-bot/internal/telegram"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// handleTest sends the survey prompt to the caller only, so the admin can
// try the flow without prompting the whole roster.
func (h *BotHandler) handleTest(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "🧪 Тестовый опрос:\n\n"+survey.SurveyQuestion)
	msg.ReplyMarkup = telegram.MoodKeyboard()
	h.send(msg)
}

func (h *BotHandler) handleReport(chatID int64) {
	report, err := h.svc.RenderDailyReport(h.now())
	if err != nil {
		h.replyErr(chatID, err)
		return
	}
	h.reply(chatID, report)
}

func (h *BotHandler) handleCreateReport(ctx context.Context, chatID int64) {
	now := h.now()

	existed := false
	if _, err := os.Stat(h.exporter.CSVPath(now.Format(domain.DateLayout))); err == nil {
		existed = true
	}

	if err := h.svc.GenerateDailyReport(ctx, now); err != nil {
		h.replyErr(chatID, err)
		return
	}
	if existed {
		h.reply(chatID, "♻️ Файл отчета за сегодня перезаписан.")
	}
}

// handleDownload resolves "/download [ДД.ММ.ГГГГ] [xlsx]". Without a date it
// serves today; the optional xlsx argument switches the format.
func (h *BotHandler) handleDownload(chatID int64, args []string) {
	date := h.now().Format(domain.DateLayout)
	wantXLSX := false

	for _, arg := range args {
		if strings.EqualFold(arg, "xlsx") {
			wantXLSX = true
			continue
		}
		d, err := time.Parse(domain.DisplayDateLayout, arg)
		if err != nil {
			d, err = time.Parse(domain.DateLayout, arg)
		}
		if err != nil {
			h.reply(chatID, "❌ Неверный формат даты. Используйте ДД.ММ.ГГГГ, например: /download 15.08.2026")
			return
		}
		date = d.Format(domain.DateLayout)
	}

	responses, err := h.dm.Response().GetByDate(date)
	if err != nil {
		h.replyErr(chatID, err)
		return
	}
	wasSent, err := h.dm.SurveyLog().WasSent(date)
	if err != nil {
		h.replyErr(chatID, err)
		return
	}
	if len(responses) == 0 && !wasSent {
		h.reply(chatID, "❌ За эту дату нет данных.")
		return
	}

	var path string
	if wantXLSX {
		path, err = h.exporter.WriteXLSX(date, responses)
	} else {
		path, err = h.exporter.WriteCSV(date, responses)
	}
	if err != nil {
		h.replyErr(chatID, err)
		return
	}

	display, _ := time.Parse(domain.DateLayout, date)
	format := "CSV"
	if wantXLSX {
		format = "XLSX"
	}
	caption := fmt.Sprintf("📎 Отчет за %s в формате %s", display.Format(domain.DisplayDateLayout), format)

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(path))
	doc.Caption = caption
	h.send(doc)
}

func (h *BotHandler) handleReports(chatID int64) {
	infos, err := h.exporter.List()
	if err != nil {
		h.replyErr(chatID, err)
		return
	}
	if len(infos) == 0 {
		h.reply(chatID, "📂 Сохраненных отчетов пока нет.")
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📂 Сохраненные отчеты (%d):\n\n", len(infos))
	shown := infos
	if len(shown) > domain.PageSize {
		shown = shown[:domain.PageSize]
	}
	for _, info := range shown {
		d, _ := time.Parse(domain.DateLayout, info.Date)
		fmt.Fprintf(&b, "• %s (%.1f КБ)\n", d.Format(domain.DisplayDateLayout), float64(info.Size)/1024)
	}
	if len(infos) > len(shown) {
		fmt.Fprintf(&b, "... и еще %d\n", len(infos)-len(shown))
	}
	b.WriteString("\nСкачать: /download ДД.ММ.ГГГГ")

	h.reply(chatID, b.String())
}

func (h *BotHandler) handleStats(chatID int64) {
	stats, err := h.svc.BotStats()
	if err != nil {
		h.replyErr(chatID, err)
		return
	}
	h.reply(chatID, stats)
}
