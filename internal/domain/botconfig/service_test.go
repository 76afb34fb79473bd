package botconfig

import (
	"context"
	"testing"
)

type fakeConfigRepo struct {
	cfg *Config
}

func (r *fakeConfigRepo) Get(ctx context.Context) (*Config, error) {
	return r.cfg, nil
}

func (r *fakeConfigRepo) Save(ctx context.Context, cfg *Config) error {
	r.cfg = cfg
	return nil
}

func TestGetReturnsDefaultsWhenUnset(t *testing.T) {
	svc := NewService(&fakeConfigRepo{})

	cfg, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Enabled {
		t.Fatalf("expected disabled by default")
	}
	if cfg.SendHour != 9 || cfg.SendMinute != 0 {
		t.Fatalf("expected default send time 09:00, got %02d:%02d", cfg.SendHour, cfg.SendMinute)
	}
	if cfg.DaysAhead != 3 {
		t.Fatalf("expected default days ahead 3, got %d", cfg.DaysAhead)
	}
}

func TestUpdatePersists(t *testing.T) {
	repo := &fakeConfigRepo{}
	svc := NewService(repo)

	cfg, err := svc.Update(context.Background(), UpdateInput{
		Enabled:     true,
		PhoneNumber: " +595981000000 ",
		SendHour:    7,
		SendMinute:  30,
		DaysAhead:   5,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.PhoneNumber != "+595981000000" {
		t.Fatalf("expected trimmed phone, got %q", cfg.PhoneNumber)
	}
	if repo.cfg == nil || !repo.cfg.Enabled || repo.cfg.SendHour != 7 || repo.cfg.SendMinute != 30 {
		t.Fatalf("expected settings stored, got %+v", repo.cfg)
	}
}

func TestUpdateRequiresPhoneWhenEnabled(t *testing.T) {
	svc := NewService(&fakeConfigRepo{})

	if _, err := svc.Update(context.Background(), UpdateInput{Enabled: true, SendHour: 9}); err == nil {
		t.Fatalf("expected error for missing phone")
	}
}

func TestUpdateValidatesSendTime(t *testing.T) {
	svc := NewService(&fakeConfigRepo{})

	if _, err := svc.Update(context.Background(), UpdateInput{PhoneNumber: "+595981000000", SendHour: 24}); err == nil {
		t.Fatalf("expected error for hour 24")
	}
	if _, err := svc.Update(context.Background(), UpdateInput{PhoneNumber: "+595981000000", SendMinute: 60}); err == nil {
		t.Fatalf("expected error for minute 60")
	}
}

func TestUpdateDefaultsDaysAhead(t *testing.T) {
	svc := NewService(&fakeConfigRepo{})

	cfg, err := svc.Update(context.Background(), UpdateInput{PhoneNumber: "+595981000000", DaysAhead: 0})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.DaysAhead != 3 {
		t.Fatalf("expected days ahead defaulted to 3, got %d", cfg.DaysAhead)
	}
}
