package app

import (
	"context"
	"net/http"
	"time"

	"gorm.io/gorm"
	"payment-reminders-go/internal/botapi"
	"payment-reminders-go/internal/config"
	"payment-reminders-go/internal/db"
	botconfigdomain "payment-reminders-go/internal/domain/botconfig"
	remindersdomain "payment-reminders-go/internal/domain/reminders"
	summarydomain "payment-reminders-go/internal/domain/summary"
	botconfigrepo "payment-reminders-go/internal/repository/sqlite/botconfig"
	remindersrepo "payment-reminders-go/internal/repository/sqlite/reminders"
	"payment-reminders-go/internal/scheduler"
	"payment-reminders-go/internal/transport/httpserver"
	"payment-reminders-go/internal/transport/httpserver/handler"
	"payment-reminders-go/pkg/logger"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
	jobs       *scheduler.Jobs
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log.Info("app: opening database", "path", cfg.DB.Path)
	dbConn, err := db.NewSQLite(cfg.DB.Path)
	if err != nil {
		return nil, err
	}

	remindersSvc := remindersdomain.NewServiceWithRetention(
		remindersrepo.NewSQLite(dbConn), cfg.Jobs.RetentionDays)
	botConfigSvc := botconfigdomain.NewService(botconfigrepo.NewSQLite(dbConn))

	botClient := botapi.NewClient(cfg.BotAPI.BaseURL, cfg.BotAPI.Timeout)
	summarySvc := summarydomain.NewService(remindersSvc, botConfigSvc, botClient)

	jobs := scheduler.NewJobs(scheduler.New(time.Local), remindersSvc, summarySvc, log)

	startCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	botCfg, err := botConfigSvc.Get(startCtx)
	if err != nil {
		return nil, err
	}
	if err := jobs.Start(cfg.Jobs.MaintenanceTime, botCfg); err != nil {
		return nil, err
	}

	handlers := handler.New(remindersSvc, botConfigSvc, summarySvc, botClient, jobs, log)
	router := httpserver.NewRouter(handlers)

	return &App{
		cfg:        cfg,
		httpServer: httpserver.New(cfg, router),
		db:         dbConn,
		jobs:       jobs,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.jobs != nil {
		a.jobs.Stop()
	}
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
