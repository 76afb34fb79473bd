package botapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/health" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(HealthResponse{Status: "ok", WhatsappConnected: true})
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	resp, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.Status != "ok" || !resp.WhatsappConnected {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestSendSummaryPostsPayload(t *testing.T) {
	var got sendSummaryRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/messages/send-summary" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Fatalf("unexpected content type %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		count := len(got.Reminders)
		json.NewEncoder(w).Encode(SendSummaryResponse{Message: "sent", RemindersCount: &count})
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	items := []SummaryItem{
		{Title: "Rent", DueDate: "05/06/2025", Currency: "PYG", DaysUntilDue: 4},
	}
	resp, err := client.SendSummary(context.Background(), "+595981000000", items)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.PhoneNumber != "+595981000000" {
		t.Fatalf("expected phone in payload, got %q", got.PhoneNumber)
	}
	if len(got.Reminders) != 1 || got.Reminders[0].Title != "Rent" {
		t.Fatalf("expected reminder items in payload, got %+v", got.Reminders)
	}
	if resp.RemindersCount == nil || *resp.RemindersCount != 1 {
		t.Fatalf("expected reminders count 1, got %+v", resp.RemindersCount)
	}
}

func TestSendMessageIncludesSchedule(t *testing.T) {
	var got sendMessageRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(SendMessageResponse{Message: "queued"})
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	scheduledAt := "2025-06-05T09:00:00Z"
	if _, err := client.SendMessage(context.Background(), "+595981000000", "hola", &scheduledAt); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Message != "hola" {
		t.Fatalf("expected message text, got %q", got.Message)
	}
	if got.ScheduledAt == nil || *got.ScheduledAt != scheduledAt {
		t.Fatalf("expected scheduled_at in payload, got %+v", got.ScheduledAt)
	}
}

func TestVerificationStatusPath(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(VerificationStatusResponse{Verified: true})
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	resp, err := client.VerificationStatus(context.Background(), "+595981000000")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !resp.Verified {
		t.Fatalf("expected verified response")
	}
	if gotPath != "/api/verify/status/+595981000000" {
		t.Fatalf("expected phone in path, got %q", gotPath)
	}
}

func TestErrorStatusSurfacesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "phone not verified", http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	_, err := client.Status(context.Background())
	if err == nil || !strings.Contains(err.Error(), "phone not verified") {
		t.Fatalf("expected error with body detail, got %v", err)
	}
}

func TestUnreachableServer(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 0)
	if _, err := client.Health(context.Background()); err == nil {
		t.Fatalf("expected connection error")
	}
}
