package botconfig

import (
	"context"
	"fmt"
	"strings"
)

const defaultDaysAhead = 3

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the stored settings, falling back to defaults when nothing
// has been saved yet.
func (s *Service) Get(ctx context.Context) (*Config, error) {
	cfg, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return &Config{SendHour: 9, DaysAhead: defaultDaysAhead}, nil
	}
	return cfg, nil
}

func (s *Service) Update(ctx context.Context, input UpdateInput) (*Config, error) {
	phone := strings.TrimSpace(input.PhoneNumber)
	if input.Enabled && phone == "" {
		return nil, fmt.Errorf("phone number is required to enable the bot")
	}
	if input.SendHour < 0 || input.SendHour > 23 {
		return nil, fmt.Errorf("send hour must be between 0 and 23")
	}
	if input.SendMinute < 0 || input.SendMinute > 59 {
		return nil, fmt.Errorf("send minute must be between 0 and 59")
	}
	if input.DaysAhead <= 0 {
		input.DaysAhead = defaultDaysAhead
	}

	cfg, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = &Config{}
	}

	cfg.Enabled = input.Enabled
	cfg.PhoneNumber = phone
	cfg.SendHour = input.SendHour
	cfg.SendMinute = input.SendMinute
	cfg.DaysAhead = input.DaysAhead

	if err := s.repo.Save(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
