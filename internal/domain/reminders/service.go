package reminders

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	defaultCurrency            = "PYG"
	defaultReminderTime        = "09:00"
	defaultInstallmentInterval = 30
	defaultColor               = "#2196F3"
	defaultRetentionDays       = 90
)

type Service struct {
	repo          Repository
	feed          *Feed
	retentionDays int
	now           func() time.Time
}

func NewService(repo Repository) *Service {
	return NewServiceWithRetention(repo, defaultRetentionDays)
}

func NewServiceWithRetention(repo Repository, retentionDays int) *Service {
	if retentionDays <= 0 {
		retentionDays = defaultRetentionDays
	}
	return &Service{
		repo:          repo,
		feed:          NewFeed(),
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

// today returns the current calendar date, time-of-day stripped.
func (s *Service) today() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *Service) Get(ctx context.Context, id uint) (*Reminder, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*Reminder, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if input.DueDate.IsZero() {
		return nil, ErrDueDateRequired
	}
	if input.Amount != nil && *input.Amount < 0 {
		return nil, fmt.Errorf("amount must not be negative")
	}

	today := s.today()
	reminder := Reminder{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Category:    input.Category,
		Amount:      input.Amount,
		Currency:    strings.ToUpper(strings.TrimSpace(input.Currency)),

		DueDate:      dateOnly(input.DueDate),
		ReminderTime: strings.TrimSpace(input.ReminderTime),
		CreatedAt:    today,
		LastModified: today,

		IsInstallments:      input.IsInstallments,
		TotalInstallments:   input.TotalInstallments,
		CurrentInstallment:  1,
		InstallmentInterval: input.InstallmentInterval,

		IsRecurring:         input.IsRecurring,
		RecurringType:       input.RecurringType,
		CustomRecurringDays: input.CustomRecurringDays,
		ReminderDaysBefore:  input.ReminderDaysBefore,

		WhatsappNumber: strings.TrimSpace(input.WhatsappNumber),
		CustomMessage:  strings.TrimSpace(input.CustomMessage),

		Status:   StatusActive,
		IsActive: true,

		IconType: input.IconType,
		Color:    strings.TrimSpace(input.Color),
		Priority: input.Priority,
		Tags:     normalizeTags(input.Tags),
		Notes:    strings.TrimSpace(input.Notes),
	}
	applyDefaults(&reminder)

	if err := s.repo.Create(ctx, &reminder); err != nil {
		return nil, err
	}

	s.publish(ctx)
	return &reminder, nil
}

func (s *Service) Update(ctx context.Context, input UpdateInput) (*Reminder, error) {
	reminder, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		trimmed := strings.TrimSpace(*input.Title)
		if trimmed == "" {
			return nil, ErrTitleRequired
		}
		reminder.Title = trimmed
	}
	if input.Description != nil {
		reminder.Description = strings.TrimSpace(*input.Description)
	}
	if input.Category != nil {
		reminder.Category = *input.Category
	}
	if input.AmountSet {
		if input.Amount != nil && *input.Amount < 0 {
			return nil, fmt.Errorf("amount must not be negative")
		}
		reminder.Amount = input.Amount
	}
	if input.Currency != nil {
		reminder.Currency = strings.ToUpper(strings.TrimSpace(*input.Currency))
	}
	if input.DueDate != nil {
		reminder.DueDate = dateOnly(*input.DueDate)
	}
	if input.ReminderTime != nil {
		reminder.ReminderTime = strings.TrimSpace(*input.ReminderTime)
	}
	if input.IsInstallments != nil {
		reminder.IsInstallments = *input.IsInstallments
	}
	if input.TotalInstallments != nil {
		if *input.TotalInstallments < 1 {
			return nil, fmt.Errorf("total installments must be at least 1")
		}
		reminder.TotalInstallments = *input.TotalInstallments
	}
	if input.InstallmentInterval != nil {
		reminder.InstallmentInterval = *input.InstallmentInterval
	}
	if input.IsRecurring != nil {
		reminder.IsRecurring = *input.IsRecurring
	}
	if input.RecurringType != nil {
		reminder.RecurringType = *input.RecurringType
	}
	if input.CustomRecurringDays != nil {
		reminder.CustomRecurringDays = *input.CustomRecurringDays
	}
	if input.ReminderDaysBefore != nil {
		reminder.ReminderDaysBefore = input.ReminderDaysBefore
	}
	if input.WhatsappNumber != nil {
		reminder.WhatsappNumber = strings.TrimSpace(*input.WhatsappNumber)
	}
	if input.CustomMessage != nil {
		reminder.CustomMessage = strings.TrimSpace(*input.CustomMessage)
	}
	if input.IconType != nil {
		reminder.IconType = *input.IconType
	}
	if input.Color != nil {
		reminder.Color = strings.TrimSpace(*input.Color)
	}
	if input.Priority != nil {
		reminder.Priority = *input.Priority
	}
	if input.Tags != nil {
		reminder.Tags = normalizeTags(input.Tags)
	}
	if input.Notes != nil {
		reminder.Notes = strings.TrimSpace(*input.Notes)
	}

	applyDefaults(reminder)
	reminder.LastModified = s.today()

	if err := s.repo.Update(ctx, reminder); err != nil {
		return nil, err
	}

	s.publish(ctx)
	return reminder, nil
}

// Delete removes a reminder permanently. Cancelling is the soft,
// reversible alternative.
func (s *Service) Delete(ctx context.Context, id uint) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrReminderNotFound
	}
	s.publish(ctx)
	return nil
}

// MarkPaid applies a payment to a reminder.
//
// Installment plans advance in place while payments remain: the index
// moves forward, the due date shifts by the installment interval, and the
// record stays PARTIAL. The payment made at the final index settles the
// plan as PAID. Recurring reminders are marked PAID and a fresh ACTIVE
// occurrence is spawned with the next computed due date; both writes run
// in one transaction. One-off reminders are simply marked PAID.
func (s *Service) MarkPaid(ctx context.Context, id uint) (*PayResult, error) {
	reminder, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	today := s.today()
	reminder.LastModified = today

	switch {
	case reminder.IsInstallments && reminder.CurrentInstallment < reminder.TotalInstallments:
		reminder.CurrentInstallment++
		reminder.DueDate = reminder.DueDate.AddDate(0, 0, reminder.InstallmentInterval)
		reminder.LastPaid = &today
		reminder.Status = StatusPartial
		reminder.IsPaid = false

		if err := s.repo.Update(ctx, reminder); err != nil {
			return nil, err
		}
		s.publish(ctx)
		return &PayResult{Reminder: *reminder}, nil

	case reminder.IsInstallments:
		reminder.Status = StatusPaid
		reminder.IsPaid = true
		reminder.LastPaid = &today

		if err := s.repo.Update(ctx, reminder); err != nil {
			return nil, err
		}
		s.publish(ctx)
		return &PayResult{Reminder: *reminder}, nil

	case reminder.IsRecurring:
		reminder.Status = StatusPaid
		reminder.IsPaid = true
		reminder.LastPaid = &today

		next := *reminder
		next.ID = 0
		next.DueDate = NextDueDate(reminder.DueDate, reminder.RecurringType, reminder.CustomRecurringDays)
		next.LastPaid = nil
		next.IsPaid = false
		next.Status = StatusActive
		next.IsActive = true
		next.IsCancelled = false
		next.CreatedAt = today
		next.LastModified = today

		err := s.repo.Transaction(ctx, func(tx Repository) error {
			if err := tx.Update(ctx, reminder); err != nil {
				return err
			}
			return tx.Create(ctx, &next)
		})
		if err != nil {
			return nil, err
		}
		s.publish(ctx)
		return &PayResult{Reminder: *reminder, Spawned: &next}, nil

	default:
		reminder.Status = StatusPaid
		reminder.IsPaid = true
		reminder.LastPaid = &today

		if err := s.repo.Update(ctx, reminder); err != nil {
			return nil, err
		}
		s.publish(ctx)
		return &PayResult{Reminder: *reminder}, nil
	}
}

// Cancel soft-disables a reminder. Reversible via Reactivate.
func (s *Service) Cancel(ctx context.Context, id uint) (*Reminder, error) {
	reminder, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	reminder.Status = StatusCancelled
	reminder.IsCancelled = true
	reminder.IsActive = false
	reminder.LastModified = s.today()

	if err := s.repo.Update(ctx, reminder); err != nil {
		return nil, err
	}
	s.publish(ctx)
	return reminder, nil
}

// Reactivate returns a reminder to ACTIVE and resets payment flags.
// A previously advanced installment index or paid date is not restored.
func (s *Service) Reactivate(ctx context.Context, id uint) (*Reminder, error) {
	reminder, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	reminder.Status = StatusActive
	reminder.IsPaid = false
	reminder.IsCancelled = false
	reminder.IsActive = true
	reminder.LastModified = s.today()

	if err := s.repo.Update(ctx, reminder); err != nil {
		return nil, err
	}
	s.publish(ctx)
	return reminder, nil
}

// NewInstallmentPlan derives an installment plan from an existing
// reminder. The amount, when present, is divided evenly across the
// installments with plain floating division.
func (s *Service) NewInstallmentPlan(ctx context.Context, baseID uint, totalInstallments, intervalDays int) (*Reminder, error) {
	if totalInstallments < 1 {
		return nil, fmt.Errorf("total installments must be at least 1")
	}
	if intervalDays <= 0 {
		intervalDays = defaultInstallmentInterval
	}

	base, err := s.repo.GetByID(ctx, baseID)
	if err != nil {
		return nil, err
	}

	today := s.today()
	plan := *base
	plan.ID = 0
	plan.IsInstallments = true
	plan.IsRecurring = false
	plan.TotalInstallments = totalInstallments
	plan.CurrentInstallment = 1
	plan.InstallmentInterval = intervalDays
	plan.Status = StatusActive
	plan.IsPaid = false
	plan.IsCancelled = false
	plan.IsActive = true
	plan.LastPaid = nil
	plan.CreatedAt = today
	plan.LastModified = today

	if base.Amount != nil {
		per := *base.Amount / float64(totalInstallments)
		plan.Amount = &per
	}

	if err := s.repo.Create(ctx, &plan); err != nil {
		return nil, err
	}
	s.publish(ctx)
	return &plan, nil
}

// SweepOverdue moves every ACTIVE unpaid reminder whose due date has
// passed to OVERDUE. Idempotent.
func (s *Service) SweepOverdue(ctx context.Context) (int64, error) {
	swept, err := s.repo.SweepOverdue(ctx, s.today())
	if err != nil {
		return 0, err
	}
	if swept > 0 {
		s.publish(ctx)
	}
	return swept, nil
}

// PurgeCancelled permanently removes cancelled reminders whose last
// modification is older than the retention window.
func (s *Service) PurgeCancelled(ctx context.Context) (int64, error) {
	before := s.today().AddDate(0, 0, -s.retentionDays)
	purged, err := s.repo.PurgeCancelled(ctx, before)
	if err != nil {
		return 0, err
	}
	if purged > 0 {
		s.publish(ctx)
	}
	return purged, nil
}

func (s *Service) List(ctx context.Context, filter Filter) ([]Reminder, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	if filter.OrderBy == "" {
		filter.OrderBy = OrderDateAsc
	}
	return s.repo.ListFiltered(ctx, filter)
}

func (s *Service) ListActive(ctx context.Context) ([]Reminder, error) {
	return s.repo.ListActive(ctx)
}

// Upcoming returns ACTIVE reminders due within the next days, sorted by
// due date. With withTarget set, only reminders carrying a notification
// phone number qualify.
func (s *Service) Upcoming(ctx context.Context, days int, withTarget bool) ([]Reminder, error) {
	if days < 0 {
		return nil, fmt.Errorf("days must not be negative")
	}
	from := s.today()
	return s.repo.ListUpcoming(ctx, from, from.AddDate(0, 0, days), withTarget)
}

func (s *Service) Statistics(ctx context.Context) (Statistics, error) {
	active, err := s.repo.CountByStatus(ctx, StatusActive)
	if err != nil {
		return Statistics{}, err
	}
	overdue, err := s.repo.CountOverdue(ctx, s.today())
	if err != nil {
		return Statistics{}, err
	}
	paid, err := s.repo.CountPaid(ctx)
	if err != nil {
		return Statistics{}, err
	}
	pending, err := s.repo.SumPendingAmount(ctx)
	if err != nil {
		return Statistics{}, err
	}

	return Statistics{
		ActiveCount:        active,
		OverdueCount:       overdue,
		PaidCount:          paid,
		TotalPendingAmount: pending,
	}, nil
}

func (s *Service) PaidInPeriod(ctx context.Context, from, to time.Time) (float64, error) {
	return s.repo.SumPaidAmount(ctx, dateOnly(from), dateOnly(to))
}

func (s *Service) CategoryBreakdown(ctx context.Context) ([]CategoryCount, error) {
	return s.repo.CountByCategory(ctx)
}

// Watch subscribes to the live active-reminder view.
func (s *Service) Watch() (<-chan []Reminder, func()) {
	return s.feed.Subscribe()
}

// publish refreshes the live view after a mutation. Best effort: a failed
// read leaves subscribers on the previous snapshot.
func (s *Service) publish(ctx context.Context) {
	active, err := s.repo.ListActive(ctx)
	if err != nil {
		return
	}
	s.feed.Publish(active)
}

func applyDefaults(r *Reminder) {
	if r.Currency == "" {
		r.Currency = defaultCurrency
	}
	if r.ReminderTime == "" {
		r.ReminderTime = defaultReminderTime
	}
	if r.TotalInstallments < 1 {
		r.TotalInstallments = 1
	}
	if r.CurrentInstallment < 1 {
		r.CurrentInstallment = 1
	}
	if r.CurrentInstallment > r.TotalInstallments {
		r.CurrentInstallment = r.TotalInstallments
	}
	if r.InstallmentInterval <= 0 {
		r.InstallmentInterval = defaultInstallmentInterval
	}
	if r.RecurringType == "" {
		r.RecurringType = RecurMonthly
	}
	if r.CustomRecurringDays <= 0 {
		r.CustomRecurringDays = 30
	}
	if r.ReminderDaysBefore == nil {
		r.ReminderDaysBefore = []int{3, 1}
	}
	if r.IconType == "" {
		r.IconType = IconGeneric
	}
	if r.Color == "" {
		r.Color = defaultColor
	}
	if r.Priority == "" {
		r.Priority = PriorityMedium
	}
}

func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		result = append(result, trimmed)
	}
	return result
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
