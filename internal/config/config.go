package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/ArturKolozyan/telegram-feedback-bot/internal/domain"
)

type Config struct {
	BotToken      string
	ManagerChatID int64
	SurveyTime    string
	ReportTime    string
	DatabasePath  string
	ReportsDir    string
	Port          string
	Location      *time.Location
}

func Load() (*Config, error) {
	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}

	managerRaw := os.Getenv("MANAGER_CHAT_ID")
	if managerRaw == "" {
		return nil, fmt.Errorf("MANAGER_CHAT_ID is required")
	}
	managerChatID, err := strconv.ParseInt(managerRaw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("MANAGER_CHAT_ID must be a number: %w", err)
	}

	offset := 3
	if raw := os.Getenv("TZ_OFFSET_HOURS"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			offset = v
		} else {
			log.Printf("Invalid TZ_OFFSET_HOURS %q, using default %d", raw, offset)
		}
	}

	return &Config{
		BotToken:      token,
		ManagerChatID: managerChatID,
		SurveyTime:    getTimeEnv("SURVEY_TIME", "17:00"),
		ReportTime:    getTimeEnv("REPORT_TIME", "21:00"),
		DatabasePath:  getEnv("DATABASE_PATH", "./feedback.db"),
		ReportsDir:    getEnv("REPORTS_DIR", "./reports"),
		Port:          getEnv("PORT", "3000"),
		Location:      time.FixedZone("MSK", offset*60*60),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getTimeEnv falls back to the default on malformed HH:MM values instead of
// failing startup.
func getTimeEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if _, err := time.Parse(domain.TimeLayout, value); err != nil {
		log.Printf("Invalid %s %q, using default %s", key, value, defaultValue)
		return defaultValue
	}

	return value
}
