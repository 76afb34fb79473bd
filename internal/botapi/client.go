package botapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Client talks to the remote messaging-bot service. Failures never roll
// back local state; callers get an error string and move on.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.get(ctx, "/api/health", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Status(ctx context.Context) (*BotStatusResponse, error) {
	var out BotStatusResponse
	if err := c.get(ctx, "/api/bot/status", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RequestVerification(ctx context.Context, phoneNumber string) (*VerificationResponse, error) {
	var out VerificationResponse
	if err := c.post(ctx, "/api/verify/request", verificationRequest{PhoneNumber: phoneNumber}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ConfirmVerification(ctx context.Context, phoneNumber, code string) (*ConfirmVerificationResponse, error) {
	var out ConfirmVerificationResponse
	req := confirmVerificationRequest{PhoneNumber: phoneNumber, Code: code}
	if err := c.post(ctx, "/api/verify/confirm", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) VerificationStatus(ctx context.Context, phoneNumber string) (*VerificationStatusResponse, error) {
	var out VerificationStatusResponse
	if err := c.get(ctx, "/api/verify/status/"+url.PathEscape(phoneNumber), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendMessage submits a free-text message, optionally scheduled for later
// delivery by the bot service.
func (c *Client) SendMessage(ctx context.Context, phoneNumber, message string, scheduledAt *string) (*SendMessageResponse, error) {
	var out SendMessageResponse
	req := sendMessageRequest{PhoneNumber: phoneNumber, Message: message, ScheduledAt: scheduledAt}
	if err := c.post(ctx, "/api/messages/send", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SendSummary(ctx context.Context, phoneNumber string, items []SummaryItem) (*SendSummaryResponse, error) {
	var out SendSummaryResponse
	req := sendSummaryRequest{PhoneNumber: phoneNumber, Reminders: items}
	if err := c.post(ctx, "/api/messages/send-summary", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MessageHistory(ctx context.Context, phoneNumber string) (*MessageHistoryResponse, error) {
	var out MessageHistoryResponse
	if err := c.get(ctx, "/api/messages/history/"+url.PathEscape(phoneNumber), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ScheduledMessages(ctx context.Context, phoneNumber string) (*ScheduledMessagesResponse, error) {
	var out ScheduledMessagesResponse
	if err := c.get(ctx, "/api/messages/scheduled/"+url.PathEscape(phoneNumber), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("bot api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		message := strings.TrimSpace(string(detail))
		if message == "" {
			message = resp.Status
		}
		return fmt.Errorf("bot api: %s: %s", resp.Status, message)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("bot api: decode response: %w", err)
	}
	return nil
}
