package database

import (
	"fmt"
	"time"
)

type surveyLogRepo struct {
	conn dbConn
}

func newSurveyLogRepo(conn dbConn) *surveyLogRepo {
	return &surveyLogRepo{conn: conn}
}

func (r *surveyLogRepo) MarkSent(date string, at time.Time) error {
	query := `INSERT OR IGNORE INTO survey_log (date, sent_at) VALUES (?, ?)`

	if _, err := r.conn.Exec(query, date, at); err != nil {
		return fmt.Errorf("failed to mark survey sent: %w", err)
	}

	return nil
}

func (r *surveyLogRepo) WasSent(date string) (bool, error) {
	var count int
	err := r.conn.QueryRow(`SELECT COUNT(*) FROM survey_log WHERE date = ?`, date).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check survey log: %w", err)
	}

	return count > 0, nil
}

func (r *surveyLogRepo) DatesInMonth(year int, month time.Month) ([]string, error) {
	query := `SELECT date FROM survey_log WHERE date LIKE ? ORDER BY date ASC`

	rows, err := r.conn.Query(query, monthPrefix(year, month)+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to get survey dates: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan survey date: %w", err)
		}
		dates = append(dates, d)
	}

	return dates, nil
}
