package botapi

// Wire types of the remote messaging-bot service. Field names follow the
// service's JSON contract.

type HealthResponse struct {
	Status            string `json:"status"`
	WhatsappConnected bool   `json:"whatsapp_connected"`
	Timestamp         string `json:"timestamp"`
}

type BotStatusResponse struct {
	Connected bool    `json:"connected"`
	User      *string `json:"user,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Platform  *string `json:"platform,omitempty"`
	Message   *string `json:"message,omitempty"`
	Error     *string `json:"error,omitempty"`
}

type verificationRequest struct {
	PhoneNumber string `json:"phone_number"`
}

type VerificationResponse struct {
	Success   *bool  `json:"success,omitempty"`
	Message   string `json:"message"`
	ExpiresIn *int   `json:"expires_in,omitempty"`
	Error     string `json:"error,omitempty"`
}

type confirmVerificationRequest struct {
	PhoneNumber string `json:"phone_number"`
	Code        string `json:"code"`
}

type ConfirmVerificationResponse struct {
	Success     *bool   `json:"success,omitempty"`
	Message     string  `json:"message"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Error       string  `json:"error,omitempty"`
}

type VerificationStatusResponse struct {
	Verified   bool    `json:"verified"`
	VerifiedAt *string `json:"verified_at,omitempty"`
}

type sendMessageRequest struct {
	PhoneNumber string  `json:"phone_number"`
	Message     string  `json:"message"`
	ScheduledAt *string `json:"scheduled_at,omitempty"`
}

type SendMessageResponse struct {
	Success     *bool   `json:"success,omitempty"`
	Message     string  `json:"message"`
	Timestamp   *string `json:"timestamp,omitempty"`
	ID          *int64  `json:"id,omitempty"`
	ScheduledAt *string `json:"scheduled_at,omitempty"`
	Error       string  `json:"error,omitempty"`
}

// SummaryItem is one upcoming obligation inside a structured summary.
type SummaryItem struct {
	Title        string   `json:"title"`
	Description  *string  `json:"description,omitempty"`
	DueDate      string   `json:"dueDate"`
	Amount       *float64 `json:"amount,omitempty"`
	Currency     string   `json:"currency"`
	DaysUntilDue int64    `json:"daysUntilDue"`
}

type sendSummaryRequest struct {
	PhoneNumber string        `json:"phone_number"`
	Reminders   []SummaryItem `json:"reminders"`
}

type SendSummaryResponse struct {
	Success        *bool  `json:"success,omitempty"`
	Message        string `json:"message"`
	RemindersCount *int   `json:"reminders_count,omitempty"`
	Error          string `json:"error,omitempty"`
}

type MessageHistoryItem struct {
	ID          int64  `json:"id"`
	PhoneNumber string `json:"phone_number"`
	Message     string `json:"message"`
	SentAt      string `json:"sent_at"`
	Success     int    `json:"success"`
}

type MessageHistoryResponse struct {
	PhoneNumber string               `json:"phone_number"`
	Messages    []MessageHistoryItem `json:"messages"`
}

type ScheduledMessage struct {
	ID          int64   `json:"id"`
	PhoneNumber string  `json:"phone_number"`
	Message     string  `json:"message"`
	ScheduledAt string  `json:"scheduled_at"`
	SentAt      *string `json:"sent_at,omitempty"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
}

type ScheduledMessagesResponse struct {
	PhoneNumber       string             `json:"phone_number"`
	ScheduledMessages []ScheduledMessage `json:"scheduled_messages"`
}
