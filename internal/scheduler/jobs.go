package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"payment-reminders-go/internal/domain/botconfig"
	"payment-reminders-go/internal/domain/reminders"
	"payment-reminders-go/internal/domain/summary"
	"payment-reminders-go/pkg/logger"
)

const jobTimeout = 60 * time.Second

// Jobs owns the two daily entries: the maintenance pass (overdue sweep +
// cancelled purge) and the bot summary dispatch. The summary entry is
// re-registered whenever the bot configuration changes.
type Jobs struct {
	sched     *Scheduler
	reminders *reminders.Service
	summary   *summary.Service
	log       logger.Logger

	mu           sync.Mutex
	summaryEntry cron.EntryID
	hasSummary   bool
}

func NewJobs(sched *Scheduler, remindersSvc *reminders.Service, summarySvc *summary.Service, log logger.Logger) *Jobs {
	return &Jobs{
		sched:     sched,
		reminders: remindersSvc,
		summary:   summarySvc,
		log:       log,
	}
}

// Start registers the maintenance entry, applies the stored bot config,
// and starts the scheduler.
func (j *Jobs) Start(maintenanceTime string, botCfg *botconfig.Config) error {
	if _, err := j.sched.ScheduleDaily(maintenanceTime, j.runMaintenance); err != nil {
		return fmt.Errorf("schedule maintenance: %w", err)
	}
	if err := j.ApplyBotConfig(botCfg); err != nil {
		return err
	}
	j.sched.Start()
	return nil
}

func (j *Jobs) Stop() {
	j.sched.Stop()
}

// ApplyBotConfig re-registers the daily summary entry to match the given
// settings. Safe to call while the scheduler is running.
func (j *Jobs) ApplyBotConfig(cfg *botconfig.Config) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.hasSummary {
		j.sched.Remove(j.summaryEntry)
		j.hasSummary = false
	}

	if cfg == nil || !cfg.Enabled {
		j.log.Info("jobs: daily summary disabled")
		return nil
	}

	timeStr := fmt.Sprintf("%02d:%02d", cfg.SendHour, cfg.SendMinute)
	entry, err := j.sched.ScheduleDaily(timeStr, j.runSummary)
	if err != nil {
		return fmt.Errorf("schedule summary: %w", err)
	}

	j.summaryEntry = entry
	j.hasSummary = true
	j.log.Info("jobs: daily summary scheduled", "at", timeStr, "days_ahead", cfg.DaysAhead)
	return nil
}

// runMaintenance sweeps overdue reminders and purges stale cancelled
// ones. Failures are logged only; sweeps are idempotent and retried on
// the next run.
func (j *Jobs) runMaintenance() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	swept, err := j.reminders.SweepOverdue(ctx)
	if err != nil {
		j.log.Error("jobs: overdue sweep failed", "err", err)
	} else if swept > 0 {
		j.log.Info("jobs: overdue sweep", "swept", swept)
	}

	purged, err := j.reminders.PurgeCancelled(ctx)
	if err != nil {
		j.log.Error("jobs: cancelled purge failed", "err", err)
	} else if purged > 0 {
		j.log.Info("jobs: cancelled purge", "purged", purged)
	}
}

func (j *Jobs) runSummary() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	sent, err := j.summary.DispatchDaily(ctx)
	if err != nil {
		j.log.Error("jobs: summary dispatch failed", "err", err)
		return
	}
	if sent > 0 {
		j.log.Info("jobs: summary dispatched", "reminders", sent)
	}
}
