package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ArturKolozyan/telegram-feedback-bot/internal/domain"
	"github.com/ArturKolozyan/telegram-feedback-bot/internal/domain/contract"
	"github.com/ArturKolozyan/telegram-feedback-bot/internal/domain/entity"
)

type responseRepo struct {
	conn dbConn
}

func newResponseRepo(conn dbConn) *responseRepo {
	return &responseRepo{conn: conn}
}

func (r *responseRepo) UpsertMood(resp *entity.Response) error {
	// Re-picking a mood restarts the day's answer: the note and completion
	// time are cleared so the user is back in the awaiting-note step.
	// The original rowid survives the conflict update, which keeps report
	// ordering stable at first-answer order.
	query := `
		INSERT INTO responses (date, chat_id, username, mood, project, timestamp, completed_at)
		VALUES (?, ?, ?, ?, NULL, ?, NULL)
		ON CONFLICT(date, chat_id) DO UPDATE SET
			username = excluded.username,
			mood = excluded.mood,
			timestamp = excluded.timestamp,
			project = NULL,
			completed_at = NULL
	`

	_, err := r.conn.Exec(query,
		resp.Date,
		resp.ChatID,
		resp.Username,
		string(resp.Mood),
		resp.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert response: %w", err)
	}

	return nil
}

func (r *responseRepo) SetProject(date string, chatID int64, project string, completedAt time.Time) error {
	query := `UPDATE responses SET project = ?, completed_at = ? WHERE date = ? AND chat_id = ?`

	result, err := r.conn.Exec(query, project, completedAt, date, chatID)
	if err != nil {
		return fmt.Errorf("failed to set project: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *responseRepo) Get(date string, chatID int64) (*entity.Response, error) {
	query := `
		SELECT date, chat_id, username, mood, project, timestamp, completed_at
		FROM responses
		WHERE date = ? AND chat_id = ?
	`

	resp, err := scanResponse(r.conn.QueryRow(query, date, chatID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get response: %w", err)
	}

	return resp, nil
}

func (r *responseRepo) GetByDate(date string) ([]*entity.Response, error) {
	query := `
		SELECT date, chat_id, username, mood, project, timestamp, completed_at
		FROM responses
		WHERE date = ?
		ORDER BY rowid ASC
	`

	return r.queryResponses(query, date)
}

func (r *responseRepo) GetByUserAndMonth(chatID int64, year int, month time.Month) ([]*entity.Response, error) {
	query := `
		SELECT date, chat_id, username, mood, project, timestamp, completed_at
		FROM responses
		WHERE chat_id = ? AND date LIKE ?
		ORDER BY date ASC
	`

	return r.queryResponses(query, chatID, monthPrefix(year, month)+"%")
}

func (r *responseRepo) CountByUser(chatID int64) (int, error) {
	var count int
	err := r.conn.QueryRow(`SELECT COUNT(*) FROM responses WHERE chat_id = ?`, chatID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count responses: %w", err)
	}
	return count, nil
}

func (r *responseRepo) DistinctDateCount() (int, error) {
	var count int
	err := r.conn.QueryRow(`SELECT COUNT(DISTINCT date) FROM responses`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count response dates: %w", err)
	}
	return count, nil
}

func (r *responseRepo) RecentDayCounts(n int) ([]contract.DayCount, error) {
	query := `
		SELECT date, COUNT(*)
		FROM responses
		GROUP BY date
		ORDER BY date DESC
		LIMIT ?
	`

	rows, err := r.conn.Query(query, n)
	if err != nil {
		return nil, fmt.Errorf("failed to get day counts: %w", err)
	}
	defer rows.Close()

	var counts []contract.DayCount
	for rows.Next() {
		var dc contract.DayCount
		if err := rows.Scan(&dc.Date, &dc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan day count: %w", err)
		}
		counts = append(counts, dc)
	}

	return counts, nil
}

func (r *responseRepo) queryResponses(query string, args ...interface{}) ([]*entity.Response, error) {
	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get responses: %w", err)
	}
	defer rows.Close()

	var responses []*entity.Response
	for rows.Next() {
		resp, err := scanResponse(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan response: %w", err)
		}
		responses = append(responses, resp)
	}

	return responses, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanResponse(row rowScanner) (*entity.Response, error) {
	resp := &entity.Response{}
	var mood string
	var project sql.NullString
	var completedAt sql.NullTime

	err := row.Scan(
		&resp.Date,
		&resp.ChatID,
		&resp.Username,
		&mood,
		&project,
		&resp.Timestamp,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}

	resp.Mood = domain.Mood(mood)
	if project.Valid {
		resp.Project = project.String
	}
	if completedAt.Valid {
		t := completedAt.Time
		resp.CompletedAt = &t
	}

	return resp, nil
}

func monthPrefix(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d-", year, int(month))
}
