package reminders

import (
	"context"
	"time"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	GetByID(ctx context.Context, id uint) (*Reminder, error)
	Create(ctx context.Context, reminder *Reminder) error
	Update(ctx context.Context, reminder *Reminder) error
	Delete(ctx context.Context, id uint) (bool, error)

	ListFiltered(ctx context.Context, filter Filter) ([]Reminder, error)
	ListActive(ctx context.Context) ([]Reminder, error)
	ListUpcoming(ctx context.Context, from, to time.Time, withTarget bool) ([]Reminder, error)

	SweepOverdue(ctx context.Context, today time.Time) (int64, error)
	PurgeCancelled(ctx context.Context, before time.Time) (int64, error)

	CountByStatus(ctx context.Context, status Status) (int64, error)
	CountOverdue(ctx context.Context, today time.Time) (int64, error)
	CountPaid(ctx context.Context) (int64, error)
	SumPendingAmount(ctx context.Context) (float64, error)
	SumPaidAmount(ctx context.Context, from, to time.Time) (float64, error)
	CountByCategory(ctx context.Context) ([]CategoryCount, error)
}
