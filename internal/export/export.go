package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ArturKolozyan/telegram-feedback-bot/internal/domain"
	"github.com/ArturKolozyan/telegram-feedback-bot/internal/domain/entity"
	"github.com/xuri/excelize/v2"
)

// Header is the fixed column set of every daily export.
var Header = []string{"Date", "User", "Mood", "Project", "ResponseTime"}

const sheetName = "Отчёт"

// Exporter writes one tabular file per reported date into a flat directory.
// Re-exporting the same date overwrites the prior file.
type Exporter struct {
	dir string
}

func New(dir string) (*Exporter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create reports dir: %w", err)
	}

	return &Exporter{dir: dir}, nil
}

func (e *Exporter) CSVPath(date string) string {
	return filepath.Join(e.dir, "report_"+date+".csv")
}

func (e *Exporter) XLSXPath(date string) string {
	return filepath.Join(e.dir, "report_"+date+".xlsx")
}

// WriteCSV writes the date's responses as UTF-8 CSV with a BOM so Excel
// picks the encoding up, one row per response in insertion order.
func (e *Exporter) WriteCSV(date string, responses []*entity.Response) (string, error) {
	path := e.CSVPath(date)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create csv: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString("\uFEFF"); err != nil {
		return "", fmt.Errorf("failed to write BOM: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}
	for _, resp := range responses {
		if err := w.Write(row(date, resp)); err != nil {
			return "", fmt.Errorf("failed to write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush csv: %w", err)
	}

	return path, nil
}

// WriteXLSX writes the same table as a spreadsheet.
func (e *Exporter) WriteXLSX(date string, responses []*entity.Response) (string, error) {
	path := e.XLSXPath(date)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return "", fmt.Errorf("failed to rename sheet: %w", err)
	}

	for i, h := range Header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return "", fmt.Errorf("failed to write header cell: %w", err)
		}
	}

	for rowIdx, resp := range responses {
		for colIdx, v := range row(date, resp) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return "", fmt.Errorf("failed to write cell: %w", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save xlsx: %w", err)
	}

	return path, nil
}

func row(date string, resp *entity.Response) []string {
	project := resp.Project
	if project == "" {
		project = domain.NotSpecified
	}

	return []string{
		date,
		resp.Username,
		resp.Mood.Emoji() + " " + resp.Mood.Label(),
		project,
		resp.EffectiveTime().Format(time.RFC3339),
	}
}

// Info describes one stored export file.
type Info struct {
	Date string
	Path string
	Size int64
}

// List returns the stored CSV exports, newest date first.
func (e *Exporter) List() ([]Info, error) {
	entries, err := os.ReadDir(e.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read reports dir: %w", err)
	}

	var infos []Info
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "report_") || !strings.HasSuffix(name, ".csv") {
			continue
		}
		date := strings.TrimSuffix(strings.TrimPrefix(name, "report_"), ".csv")
		if _, err := time.Parse(domain.DateLayout, date); err != nil {
			continue
		}

		fi, err := entry.Info()
		if err != nil {
			continue
		}
		infos = append(infos, Info{Date: date, Path: filepath.Join(e.dir, name), Size: fi.Size()})
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Date > infos[j].Date })

	return infos, nil
}
