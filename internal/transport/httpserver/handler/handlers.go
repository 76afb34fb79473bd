package handler

import (
	"payment-reminders-go/internal/botapi"
	botconfigdomain "payment-reminders-go/internal/domain/botconfig"
	remindersdomain "payment-reminders-go/internal/domain/reminders"
	summarydomain "payment-reminders-go/internal/domain/summary"
	"payment-reminders-go/pkg/logger"
)

// Rescheduler re-registers the daily summary job after a config change.
type Rescheduler interface {
	ApplyBotConfig(cfg *botconfigdomain.Config) error
}

type Handlers struct {
	Reminders *remindersdomain.Service
	BotConfig *botconfigdomain.Service
	Summary   *summarydomain.Service
	Bot       *botapi.Client
	Jobs      Rescheduler
	log       logger.Logger
}

func New(reminders *remindersdomain.Service, botConfig *botconfigdomain.Service, summary *summarydomain.Service, bot *botapi.Client, jobs Rescheduler, log logger.Logger) *Handlers {
	return &Handlers{
		Reminders: reminders,
		BotConfig: botConfig,
		Summary:   summary,
		Bot:       bot,
		Jobs:      jobs,
		log:       log,
	}
}
