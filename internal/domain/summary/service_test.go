package summary

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"payment-reminders-go/internal/botapi"
	"payment-reminders-go/internal/domain/botconfig"
	"payment-reminders-go/internal/domain/reminders"
)

type fakeSource struct {
	byID     map[uint]*reminders.Reminder
	upcoming []reminders.Reminder

	upcomingDays       int
	upcomingWithTarget bool
}

func (f *fakeSource) Get(ctx context.Context, id uint) (*reminders.Reminder, error) {
	reminder, ok := f.byID[id]
	if !ok {
		return nil, reminders.ErrReminderNotFound
	}
	return reminder, nil
}

func (f *fakeSource) Upcoming(ctx context.Context, days int, withTarget bool) ([]reminders.Reminder, error) {
	f.upcomingDays = days
	f.upcomingWithTarget = withTarget
	return f.upcoming, nil
}

type fakeSettings struct {
	cfg *botconfig.Config
	err error
}

func (f *fakeSettings) Get(ctx context.Context) (*botconfig.Config, error) {
	return f.cfg, f.err
}

type fakeMessenger struct {
	summaryPhone string
	summaryItems []botapi.SummaryItem
	summaryResp  botapi.SendSummaryResponse
	summaryErr   error

	messagePhone string
	messageText  string
	messageResp  botapi.SendMessageResponse
	messageErr   error
}

func (f *fakeMessenger) SendSummary(ctx context.Context, phoneNumber string, items []botapi.SummaryItem) (*botapi.SendSummaryResponse, error) {
	f.summaryPhone = phoneNumber
	f.summaryItems = items
	if f.summaryErr != nil {
		return nil, f.summaryErr
	}
	return &f.summaryResp, nil
}

func (f *fakeMessenger) SendMessage(ctx context.Context, phoneNumber, message string, scheduledAt *string) (*botapi.SendMessageResponse, error) {
	f.messagePhone = phoneNumber
	f.messageText = message
	if f.messageErr != nil {
		return nil, f.messageErr
	}
	return &f.messageResp, nil
}

func newTestSummaryService(source *fakeSource, settings *fakeSettings, messenger *fakeMessenger, today time.Time) *Service {
	svc := NewService(source, settings, messenger)
	svc.now = func() time.Time { return today }
	return svc
}

func floatPtr(value float64) *float64 {
	return &value
}

func TestDispatchDailySkipsWhenDisabled(t *testing.T) {
	messenger := &fakeMessenger{}
	svc := newTestSummaryService(
		&fakeSource{},
		&fakeSettings{cfg: &botconfig.Config{Enabled: false, PhoneNumber: "+595981000000"}},
		messenger,
		time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
	)

	sent, err := svc.DispatchDaily(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if sent != 0 {
		t.Fatalf("expected 0 sent, got %d", sent)
	}
	if messenger.summaryPhone != "" {
		t.Fatalf("expected no delivery attempt")
	}
}

func TestDispatchDailySkipsWithoutPhone(t *testing.T) {
	messenger := &fakeMessenger{}
	svc := newTestSummaryService(
		&fakeSource{},
		&fakeSettings{cfg: &botconfig.Config{Enabled: true}},
		messenger,
		time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
	)

	sent, err := svc.DispatchDaily(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if sent != 0 || messenger.summaryPhone != "" {
		t.Fatalf("expected dispatch skipped")
	}
}

func TestDispatchDailySkipsWhenNothingDue(t *testing.T) {
	messenger := &fakeMessenger{}
	svc := newTestSummaryService(
		&fakeSource{},
		&fakeSettings{cfg: &botconfig.Config{Enabled: true, PhoneNumber: "+595981000000", DaysAhead: 3}},
		messenger,
		time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
	)

	sent, err := svc.DispatchDaily(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if sent != 0 || messenger.summaryPhone != "" {
		t.Fatalf("expected dispatch skipped when nothing is due")
	}
}

func TestDispatchDailyBuildsSummaryItems(t *testing.T) {
	source := &fakeSource{
		upcoming: []reminders.Reminder{
			{
				Title:       "Electricity",
				Description: "ANDE",
				DueDate:     time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
				Amount:      floatPtr(350000),
				Currency:    "PYG",
			},
			{
				Title:    "Internet",
				DueDate:  time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC),
				Currency: "PYG",
			},
		},
	}
	messenger := &fakeMessenger{}
	svc := newTestSummaryService(
		source,
		&fakeSettings{cfg: &botconfig.Config{Enabled: true, PhoneNumber: "+595981000000", DaysAhead: 5}},
		messenger,
		time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
	)

	sent, err := svc.DispatchDaily(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if sent != 2 {
		t.Fatalf("expected 2 sent, got %d", sent)
	}
	if source.upcomingDays != 5 || source.upcomingWithTarget {
		t.Fatalf("expected lookup over 5 days without target filter, got days=%d withTarget=%v",
			source.upcomingDays, source.upcomingWithTarget)
	}
	if messenger.summaryPhone != "+595981000000" {
		t.Fatalf("expected configured phone, got %q", messenger.summaryPhone)
	}
	if len(messenger.summaryItems) != 2 {
		t.Fatalf("expected 2 items, got %d", len(messenger.summaryItems))
	}

	first := messenger.summaryItems[0]
	if first.Title != "Electricity" {
		t.Fatalf("expected first item Electricity, got %q", first.Title)
	}
	if first.DueDate != "03/06/2025" {
		t.Fatalf("expected dd/MM/yyyy due date, got %q", first.DueDate)
	}
	if first.DaysUntilDue != 2 {
		t.Fatalf("expected 2 days until due, got %d", first.DaysUntilDue)
	}
	if first.Description == nil || *first.Description != "ANDE" {
		t.Fatalf("expected description, got %+v", first.Description)
	}

	second := messenger.summaryItems[1]
	if second.Description != nil {
		t.Fatalf("expected empty description omitted, got %+v", second.Description)
	}
}

func TestDispatchDailySurfacesBotRejection(t *testing.T) {
	source := &fakeSource{
		upcoming: []reminders.Reminder{{Title: "Rent", DueDate: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)}},
	}
	messenger := &fakeMessenger{summaryResp: botapi.SendSummaryResponse{Error: "not verified"}}
	svc := newTestSummaryService(
		source,
		&fakeSettings{cfg: &botconfig.Config{Enabled: true, PhoneNumber: "+595981000000", DaysAhead: 3}},
		messenger,
		time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
	)

	_, err := svc.DispatchDaily(context.Background())
	if err == nil || !strings.Contains(err.Error(), "not verified") {
		t.Fatalf("expected rejection error, got %v", err)
	}
}

func TestDispatchDailySurfacesDeliveryError(t *testing.T) {
	source := &fakeSource{
		upcoming: []reminders.Reminder{{Title: "Rent", DueDate: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)}},
	}
	messenger := &fakeMessenger{summaryErr: errors.New("connection refused")}
	svc := newTestSummaryService(
		source,
		&fakeSettings{cfg: &botconfig.Config{Enabled: true, PhoneNumber: "+595981000000", DaysAhead: 3}},
		messenger,
		time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
	)

	if _, err := svc.DispatchDaily(context.Background()); err == nil {
		t.Fatalf("expected delivery error")
	}
}

func TestSendReminderUsesCustomMessage(t *testing.T) {
	source := &fakeSource{
		byID: map[uint]*reminders.Reminder{
			7: {
				ID:             7,
				Title:          "Rent",
				DueDate:        time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
				WhatsappNumber: "+595981111111",
				CustomMessage:  "Pay the rent!",
			},
		},
	}
	messenger := &fakeMessenger{}
	svc := newTestSummaryService(source, &fakeSettings{}, messenger, time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC))

	if err := svc.SendReminder(context.Background(), 7); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if messenger.messagePhone != "+595981111111" {
		t.Fatalf("expected reminder's own number, got %q", messenger.messagePhone)
	}
	if messenger.messageText != "Pay the rent!" {
		t.Fatalf("expected custom message, got %q", messenger.messageText)
	}
}

func TestSendReminderFallsBackToDefaultMessage(t *testing.T) {
	source := &fakeSource{
		byID: map[uint]*reminders.Reminder{
			7: {
				ID:             7,
				Title:          "Rent",
				DueDate:        time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
				Amount:         floatPtr(1500000),
				Currency:       "PYG",
				WhatsappNumber: "+595981111111",
			},
		},
	}
	messenger := &fakeMessenger{}
	svc := newTestSummaryService(source, &fakeSettings{}, messenger, time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC))

	if err := svc.SendReminder(context.Background(), 7); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(messenger.messageText, "Rent") || !strings.Contains(messenger.messageText, "05/06/2025") {
		t.Fatalf("expected default message with title and date, got %q", messenger.messageText)
	}
	if !strings.Contains(messenger.messageText, "1500000 PYG") {
		t.Fatalf("expected amount in message, got %q", messenger.messageText)
	}
}

func TestSendReminderRequiresTarget(t *testing.T) {
	source := &fakeSource{
		byID: map[uint]*reminders.Reminder{
			7: {ID: 7, Title: "Rent", DueDate: time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)},
		},
	}
	svc := newTestSummaryService(source, &fakeSettings{}, &fakeMessenger{}, time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC))

	if err := svc.SendReminder(context.Background(), 7); err == nil {
		t.Fatalf("expected error for missing target number")
	}
}
