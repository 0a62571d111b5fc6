package database

import (
	"database/sql"
	"fmt"

	"github.com/ArturKolozyan/telegram-feedback-bot/internal/domain/entity"
)

type userRepo struct {
	conn dbConn
}

func newUserRepo(conn dbConn) *userRepo {
	return &userRepo{conn: conn}
}

func (r *userRepo) Upsert(user *entity.User) error {
	query := `
		INSERT INTO users (chat_id, username, first_name, last_name, is_admin, registered_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(chat_id) DO UPDATE SET
			username = excluded.username,
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			is_admin = excluded.is_admin
	`

	_, err := r.conn.Exec(query,
		user.ChatID,
		user.Username,
		user.FirstName,
		user.LastName,
		user.IsAdmin,
		user.RegisteredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}

	return nil
}

func (r *userRepo) Get(chatID int64) (*entity.User, error) {
	user := &entity.User{}
	query := `
		SELECT chat_id, username, first_name, last_name, is_admin, registered_at
		FROM users
		WHERE chat_id = ?
	`

	err := r.conn.QueryRow(query, chatID).Scan(
		&user.ChatID,
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.IsAdmin,
		&user.RegisteredAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

func (r *userRepo) GetByUsername(username string) (*entity.User, error) {
	user := &entity.User{}
	query := `
		SELECT chat_id, username, first_name, last_name, is_admin, registered_at
		FROM users
		WHERE lower(username) = lower(?)
	`

	err := r.conn.QueryRow(query, username).Scan(
		&user.ChatID,
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.IsAdmin,
		&user.RegisteredAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return user, nil
}

func (r *userRepo) GetAll() ([]*entity.User, error) {
	// chat_id aliases rowid here, so registration order needs the timestamp.
	query := `
		SELECT chat_id, username, first_name, last_name, is_admin, registered_at
		FROM users
		ORDER BY registered_at ASC, chat_id ASC
	`

	rows, err := r.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		user := &entity.User{}
		err := rows.Scan(
			&user.ChatID,
			&user.Username,
			&user.FirstName,
			&user.LastName,
			&user.IsAdmin,
			&user.RegisteredAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	return users, nil
}

func (r *userRepo) Delete(chatID int64) error {
	query := `DELETE FROM users WHERE chat_id = ?`

	_, err := r.conn.Exec(query, chatID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}
