package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ArturKolozyan/telegram-feedback-bot/internal/config"
	"github.com/ArturKolozyan/telegram-feedback-bot/internal/database"
	"github.com/ArturKolozyan/telegram-feedback-bot/internal/domain/contract"
	"github.com/ArturKolozyan/telegram-feedback-bot/internal/export"
	"github.com/ArturKolozyan/telegram-feedback-bot/internal/handlers"
	"github.com/ArturKolozyan/telegram-feedback-bot/internal/metrics"
	"github.com/ArturKolozyan/telegram-feedback-bot/internal/scheduler"
	"github.com/ArturKolozyan/telegram-feedback-bot/internal/survey"
	"github.com/ArturKolozyan/telegram-feedback-bot/internal/telegram"
	"github.com/ArturKolozyan/telegram-feedback-bot/internal/workday"
	"github.com/ArturKolozyan/telegram-feedback-bot/migrator/sqlite"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Println("Running migrations...")
	if err := sqlite.Migrate(db.DB()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	dm := database.NewManager(db)

	gate := workday.New(dm.Settings(), dm.Vacation())
	gate.CleanupExpired(time.Now().In(cfg.Location))

	exporter, err := export.New(cfg.ReportsDir)
	if err != nil {
		log.Fatalf("Failed to initialize reports dir: %v", err)
	}

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatalf("Failed to connect to Telegram: %v", err)
	}
	log.Printf("Authorized as @%s", api.Self.UserName)

	svc := survey.New(dm, gate, telegram.NewNotifier(api), exporter, cfg.ManagerChatID)

	if err := seedSchedule(dm.Settings(), cfg); err != nil {
		log.Fatalf("Failed to seed schedule settings: %v", err)
	}

	sched := scheduler.New(svc, dm.Settings(), cfg.Location)
	sched.Start()
	defer sched.Stop()

	handler := handlers.New(api, svc, dm, exporter, cfg)

	go func() {
		http.Handle("/metrics", metrics.Handler())
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, "OK")
		})
		log.Printf("Server starting on port %s", cfg.Port)
		if err := http.ListenAndServe(":"+cfg.Port, nil); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := api.GetUpdatesChan(u)

	go func() {
		<-ctx.Done()
		api.StopReceivingUpdates()
	}()

	log.Println("Bot started, waiting for updates")
	for update := range updates {
		handler.HandleUpdate(ctx, update)
	}

	log.Println("Bot stopped")
}

// seedSchedule writes the env-configured times on first run only. Admin
// commands own the values afterwards.
func seedSchedule(settings contract.SettingsRepo, cfg *config.Config) error {
	has, err := settings.HasSchedule()
	if err != nil || has {
		return err
	}

	s, err := settings.GetSchedule()
	if err != nil {
		return err
	}
	s.SurveyTime = cfg.SurveyTime
	s.ReportTime = cfg.ReportTime

	return settings.SaveSchedule(s)
}
