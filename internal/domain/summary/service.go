package summary

import (
	"context"
	"fmt"
	"time"

	"payment-reminders-go/internal/botapi"
	"payment-reminders-go/internal/domain/botconfig"
	"payment-reminders-go/internal/domain/reminders"
)

const dueDateLayout = "02/01/2006"

// Messenger is the slice of the bot API used for outgoing deliveries.
type Messenger interface {
	SendSummary(ctx context.Context, phoneNumber string, items []botapi.SummaryItem) (*botapi.SendSummaryResponse, error)
	SendMessage(ctx context.Context, phoneNumber, message string, scheduledAt *string) (*botapi.SendMessageResponse, error)
}

// ReminderSource is the read side of the reminders engine the dispatcher
// relies on.
type ReminderSource interface {
	Get(ctx context.Context, id uint) (*reminders.Reminder, error)
	Upcoming(ctx context.Context, days int, withTarget bool) ([]reminders.Reminder, error)
}

// Settings yields the persisted daily-summary configuration.
type Settings interface {
	Get(ctx context.Context) (*botconfig.Config, error)
}

// Service assembles upcoming-payment summaries and hands them to the
// remote bot. Delivery failures are surfaced to the caller and never
// undo local state.
type Service struct {
	source    ReminderSource
	settings  Settings
	messenger Messenger
	now       func() time.Time
}

func NewService(source ReminderSource, settings Settings, messenger Messenger) *Service {
	return &Service{
		source:    source,
		settings:  settings,
		messenger: messenger,
		now:       time.Now,
	}
}

// DispatchDaily sends the configured look-ahead summary to the configured
// phone number. Returns the number of reminders included; zero with a nil
// error means the dispatch was skipped (disabled, unconfigured, or
// nothing due).
func (s *Service) DispatchDaily(ctx context.Context) (int, error) {
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("load bot config: %w", err)
	}
	if !cfg.Enabled || cfg.PhoneNumber == "" {
		return 0, nil
	}

	upcoming, err := s.source.Upcoming(ctx, cfg.DaysAhead, false)
	if err != nil {
		return 0, fmt.Errorf("collect upcoming reminders: %w", err)
	}
	if len(upcoming) == 0 {
		return 0, nil
	}

	items := s.buildItems(upcoming)
	resp, err := s.messenger.SendSummary(ctx, cfg.PhoneNumber, items)
	if err != nil {
		return 0, err
	}
	if resp.Error != "" {
		return 0, fmt.Errorf("bot rejected summary: %s", resp.Error)
	}

	return len(items), nil
}

// SendReminder delivers a single reminder to its own notification target,
// using the custom outgoing text when one is set.
func (s *Service) SendReminder(ctx context.Context, id uint) error {
	reminder, err := s.source.Get(ctx, id)
	if err != nil {
		return err
	}
	if reminder.WhatsappNumber == "" {
		return fmt.Errorf("reminder %d has no notification target", id)
	}

	message := reminder.CustomMessage
	if message == "" {
		message = defaultMessage(reminder)
	}

	resp, err := s.messenger.SendMessage(ctx, reminder.WhatsappNumber, message, nil)
	if err != nil {
		return err
	}
	if resp.Error != "" {
		return fmt.Errorf("bot rejected message: %s", resp.Error)
	}
	return nil
}

func (s *Service) buildItems(list []reminders.Reminder) []botapi.SummaryItem {
	today := dateOnly(s.now().UTC())

	items := make([]botapi.SummaryItem, 0, len(list))
	for _, reminder := range list {
		item := botapi.SummaryItem{
			Title:        reminder.Title,
			DueDate:      reminder.DueDate.Format(dueDateLayout),
			Amount:       reminder.Amount,
			Currency:     reminder.Currency,
			DaysUntilDue: daysBetween(today, reminder.DueDate),
		}
		if reminder.Description != "" {
			description := reminder.Description
			item.Description = &description
		}
		items = append(items, item)
	}
	return items
}

func defaultMessage(reminder *reminders.Reminder) string {
	message := fmt.Sprintf("Recordatorio de pago: %s vence el %s",
		reminder.Title, reminder.DueDate.Format(dueDateLayout))
	if reminder.Amount != nil {
		message += fmt.Sprintf(" (%.0f %s)", *reminder.Amount, reminder.Currency)
	}
	return message
}

func daysBetween(from, to time.Time) int64 {
	return int64(dateOnly(to).Sub(dateOnly(from)).Hours() / 24)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
