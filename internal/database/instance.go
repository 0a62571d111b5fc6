package database

import (
	"github.com/ArturKolozyan/telegram-feedback-bot/internal/domain/contract"
)

type manager struct {
	db *DB
}

// NewManager wraps the database as a contract.DataManager.
func NewManager(db *DB) contract.DataManager {
	return &manager{db: db}
}

func (m *manager) User() contract.UserRepo           { return newUserRepo(m.db.conn) }
func (m *manager) Response() contract.ResponseRepo   { return newResponseRepo(m.db.conn) }
func (m *manager) Vacation() contract.VacationRepo   { return newVacationRepo(m.db.conn) }
func (m *manager) Settings() contract.SettingsRepo   { return newSettingsRepo(m.db.conn) }
func (m *manager) SurveyLog() contract.SurveyLogRepo { return newSurveyLogRepo(m.db.conn) }
