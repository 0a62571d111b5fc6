package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ArturKolozyan/telegram-feedback-bot/internal/domain"
	"github.com/ArturKolozyan/telegram-feedback-bot/internal/domain/entity"
)

type vacationRepo struct {
	conn dbConn
}

func newVacationRepo(conn dbConn) *vacationRepo {
	return &vacationRepo{conn: conn}
}

func (r *vacationRepo) Set(v *entity.Vacation) error {
	// One range per user: setting a new one replaces the old.
	query := `
		INSERT OR REPLACE INTO vacations (chat_id, start_date, end_date, set_by, set_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.conn.Exec(query,
		v.ChatID,
		v.Start.Format(domain.DateLayout),
		v.End.Format(domain.DateLayout),
		v.SetBy,
		v.SetAt,
	)
	if err != nil {
		return fmt.Errorf("failed to set vacation: %w", err)
	}

	return nil
}

func (r *vacationRepo) Get(chatID int64) (*entity.Vacation, error) {
	query := `
		SELECT chat_id, start_date, end_date, set_by, set_at
		FROM vacations
		WHERE chat_id = ?
	`

	v, err := scanVacation(r.conn.QueryRow(query, chatID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vacation: %w", err)
	}

	return v, nil
}

func (r *vacationRepo) GetAll() ([]*entity.Vacation, error) {
	query := `
		SELECT chat_id, start_date, end_date, set_by, set_at
		FROM vacations
		ORDER BY end_date ASC
	`

	rows, err := r.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get vacations: %w", err)
	}
	defer rows.Close()

	var vacations []*entity.Vacation
	for rows.Next() {
		v, err := scanVacation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vacation: %w", err)
		}
		vacations = append(vacations, v)
	}

	return vacations, nil
}

func (r *vacationRepo) Delete(chatID int64) error {
	_, err := r.conn.Exec(`DELETE FROM vacations WHERE chat_id = ?`, chatID)
	if err != nil {
		return fmt.Errorf("failed to delete vacation: %w", err)
	}

	return nil
}

func (r *vacationRepo) DeleteExpired(before string) (int, error) {
	result, err := r.conn.Exec(`DELETE FROM vacations WHERE end_date < ?`, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired vacations: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return int(affected), nil
}

func scanVacation(row rowScanner) (*entity.Vacation, error) {
	v := &entity.Vacation{}
	var start, end string

	err := row.Scan(&v.ChatID, &start, &end, &v.SetBy, &v.SetAt)
	if err != nil {
		return nil, err
	}

	v.Start, err = time.Parse(domain.DateLayout, start)
	if err != nil {
		return nil, fmt.Errorf("bad start date %q: %w", start, err)
	}
	v.End, err = time.Parse(domain.DateLayout, end)
	if err != nil {
		return nil, fmt.Errorf("bad end date %q: %w", end, err)
	}

	return v, nil
}
