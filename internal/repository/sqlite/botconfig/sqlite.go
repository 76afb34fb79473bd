package botconfig

import (
	"context"
	"errors"

	"gorm.io/gorm"
	botconfigdomain "payment-reminders-go/internal/domain/botconfig"
)

const configRowID = 1

type SQLiteRepository struct {
	db *gorm.DB
}

func NewSQLite(db *gorm.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Get returns the stored config row, or nil when none has been saved.
func (r *SQLiteRepository) Get(ctx context.Context) (*botconfigdomain.Config, error) {
	var cfg botconfigdomain.Config
	if err := r.db.WithContext(ctx).First(&cfg, "id = ?", configRowID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cfg, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, cfg *botconfigdomain.Config) error {
	cfg.ID = configRowID
	return r.db.WithContext(ctx).Save(cfg).Error
}
