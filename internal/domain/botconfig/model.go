package botconfig

import "time"

// Config is the single persisted row of daily-summary settings.
type Config struct {
	ID          uint      `gorm:"primaryKey"`
	Enabled     bool      `gorm:"not null;default:false"`
	PhoneNumber string    `gorm:"not null;default:''"`
	SendHour    int       `gorm:"not null;default:9"`
	SendMinute  int       `gorm:"not null;default:0"`
	DaysAhead   int       `gorm:"not null;default:3"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Config) TableName() string { return "bot_config" }

type UpdateInput struct {
	Enabled     bool
	PhoneNumber string
	SendHour    int
	SendMinute  int
	DaysAhead   int
}
