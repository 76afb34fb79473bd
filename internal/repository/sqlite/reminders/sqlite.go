package reminders

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	remindersdomain "payment-reminders-go/internal/domain/reminders"
)

type SQLiteRepository struct {
	db *gorm.DB
}

func NewSQLite(db *gorm.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Transaction(ctx context.Context, fn func(remindersdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&SQLiteRepository{db: tx})
	})
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id uint) (*remindersdomain.Reminder, error) {
	var reminder remindersdomain.Reminder
	if err := r.db.WithContext(ctx).First(&reminder, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, remindersdomain.ErrReminderNotFound
		}
		return nil, err
	}
	return &reminder, nil
}

func (r *SQLiteRepository) Create(ctx context.Context, reminder *remindersdomain.Reminder) error {
	return r.db.WithContext(ctx).Create(reminder).Error
}

func (r *SQLiteRepository) Update(ctx context.Context, reminder *remindersdomain.Reminder) error {
	return r.db.WithContext(ctx).Save(reminder).Error
}

func (r *SQLiteRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&remindersdomain.Reminder{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}

func (r *SQLiteRepository) ListFiltered(ctx context.Context, filter remindersdomain.Filter) ([]remindersdomain.Reminder, error) {
	query := r.db.WithContext(ctx).Model(&remindersdomain.Reminder{})

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}
	if filter.MinAmount != nil {
		query = query.Where("amount >= ?", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		query = query.Where("amount <= ?", *filter.MaxAmount)
	}
	if filter.DateFrom != nil {
		query = query.Where("due_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("due_date <= ?", *filter.DateTo)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern)
	}

	switch filter.OrderBy {
	case remindersdomain.OrderDateDesc:
		query = query.Order("due_date DESC")
	case remindersdomain.OrderAmountAsc:
		query = query.Order("amount ASC")
	case remindersdomain.OrderAmountDesc:
		query = query.Order("amount DESC")
	case remindersdomain.OrderPriority:
		query = query.Order("CASE priority WHEN 'URGENT' THEN 1 WHEN 'HIGH' THEN 2 WHEN 'MEDIUM' THEN 3 ELSE 4 END ASC, due_date ASC")
	default:
		query = query.Order("due_date ASC")
	}

	var result []remindersdomain.Reminder
	if err := query.Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) ListActive(ctx context.Context) ([]remindersdomain.Reminder, error) {
	var result []remindersdomain.Reminder
	if err := r.db.WithContext(ctx).
		Where("is_active = ? AND is_paid = ? AND is_cancelled = ?", true, false, false).
		Order("due_date ASC").
		Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) ListUpcoming(ctx context.Context, from, to time.Time, withTarget bool) ([]remindersdomain.Reminder, error) {
	query := r.db.WithContext(ctx).
		Where("is_active = ? AND is_paid = ? AND is_cancelled = ?", true, false, false).
		Where("due_date BETWEEN ? AND ?", from, to)
	if withTarget {
		query = query.Where("whatsapp_number <> ''")
	}

	var result []remindersdomain.Reminder
	if err := query.Order("due_date ASC").Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) SweepOverdue(ctx context.Context, today time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&remindersdomain.Reminder{}).
		Where("status = ? AND is_paid = ? AND due_date < ?", remindersdomain.StatusActive, false, today).
		Update("status", remindersdomain.StatusOverdue)
	return result.RowsAffected, result.Error
}

func (r *SQLiteRepository) PurgeCancelled(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("is_cancelled = ? AND last_modified < ?", true, before).
		Delete(&remindersdomain.Reminder{})
	return result.RowsAffected, result.Error
}

func (r *SQLiteRepository) CountByStatus(ctx context.Context, status remindersdomain.Status) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&remindersdomain.Reminder{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *SQLiteRepository) CountOverdue(ctx context.Context, today time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&remindersdomain.Reminder{}).
		Where("status = ? OR (status = ? AND due_date < ?)",
			remindersdomain.StatusOverdue, remindersdomain.StatusActive, today).
		Count(&count).Error
	return count, err
}

func (r *SQLiteRepository) CountPaid(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&remindersdomain.Reminder{}).
		Where("is_paid = ?", true).
		Count(&count).Error
	return count, err
}

func (r *SQLiteRepository) SumPendingAmount(ctx context.Context) (float64, error) {
	var total *float64
	err := r.db.WithContext(ctx).
		Model(&remindersdomain.Reminder{}).
		Select("SUM(amount)").
		Where("status = ? AND amount IS NOT NULL", remindersdomain.StatusActive).
		Scan(&total).Error
	if err != nil || total == nil {
		return 0, err
	}
	return *total, nil
}

func (r *SQLiteRepository) SumPaidAmount(ctx context.Context, from, to time.Time) (float64, error) {
	var total *float64
	err := r.db.WithContext(ctx).
		Model(&remindersdomain.Reminder{}).
		Select("SUM(amount)").
		Where("is_paid = ? AND last_paid BETWEEN ? AND ? AND amount IS NOT NULL", true, from, to).
		Scan(&total).Error
	if err != nil || total == nil {
		return 0, err
	}
	return *total, nil
}

func (r *SQLiteRepository) CountByCategory(ctx context.Context) ([]remindersdomain.CategoryCount, error) {
	type row struct {
		Category remindersdomain.Category `gorm:"column:category"`
		Count    int64                    `gorm:"column:count"`
	}

	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&remindersdomain.Reminder{}).
		Select("category, COUNT(*) as count").
		Where("status = ?", remindersdomain.StatusActive).
		Group("category").
		Order("count DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]remindersdomain.CategoryCount, 0, len(rows))
	for _, item := range rows {
		result = append(result, remindersdomain.CategoryCount{
			Category: item.Category,
			Count:    item.Count,
		})
	}
	return result, nil
}
