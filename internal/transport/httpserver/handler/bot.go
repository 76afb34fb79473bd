package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	botconfigdomain "payment-reminders-go/internal/domain/botconfig"
)

type botConfigResponse struct {
	Enabled     bool   `json:"enabled"`
	PhoneNumber string `json:"phone_number,omitempty"`
	SendHour    int    `json:"send_hour"`
	SendMinute  int    `json:"send_minute"`
	DaysAhead   int    `json:"days_ahead"`
}

func toBotConfigResponse(cfg *botconfigdomain.Config) botConfigResponse {
	return botConfigResponse{
		Enabled:     cfg.Enabled,
		PhoneNumber: cfg.PhoneNumber,
		SendHour:    cfg.SendHour,
		SendMinute:  cfg.SendMinute,
		DaysAhead:   cfg.DaysAhead,
	}
}

func (h *Handlers) GetBotConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.BotConfig.Get(r.Context())
	if err != nil {
		h.log.InternalError("bot.config.get failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, toBotConfigResponse(cfg))
}

type updateBotConfigRequest struct {
	Enabled     bool   `json:"enabled"`
	PhoneNumber string `json:"phone_number"`
	SendHour    int    `json:"send_hour"`
	SendMinute  int    `json:"send_minute"`
	DaysAhead   int    `json:"days_ahead"`
}

func (h *Handlers) UpdateBotConfig(w http.ResponseWriter, r *http.Request) {
	var req updateBotConfigRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	cfg, err := h.BotConfig.Update(r.Context(), botconfigdomain.UpdateInput{
		Enabled:     req.Enabled,
		PhoneNumber: req.PhoneNumber,
		SendHour:    req.SendHour,
		SendMinute:  req.SendMinute,
		DaysAhead:   req.DaysAhead,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if err := h.Jobs.ApplyBotConfig(cfg); err != nil {
		h.log.InternalError("bot.config.update: reschedule failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "config saved but rescheduling failed")
		return
	}

	writeJSON(w, http.StatusOK, toBotConfigResponse(cfg))
}

func (h *Handlers) BotHealth(w http.ResponseWriter, r *http.Request) {
	health, err := h.Bot.Health(r.Context())
	if err != nil {
		h.log.BusinessError("bot.health failed", err)
		writeError(w, http.StatusBadGateway, "bot_unreachable", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, health)
}

func (h *Handlers) BotStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.Bot.Status(r.Context())
	if err != nil {
		h.log.BusinessError("bot.status failed", err)
		writeError(w, http.StatusBadGateway, "bot_unreachable", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, status)
}

type verifyRequest struct {
	PhoneNumber string `json:"phone_number"`
}

func (h *Handlers) RequestVerification(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if strings.TrimSpace(req.PhoneNumber) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "phone_number is required")
		return
	}

	resp, err := h.Bot.RequestVerification(r.Context(), req.PhoneNumber)
	if err != nil {
		h.log.BusinessError("bot.verify.request failed", err)
		writeError(w, http.StatusBadGateway, "bot_unreachable", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type confirmVerifyRequest struct {
	PhoneNumber string `json:"phone_number"`
	Code        string `json:"code"`
}

func (h *Handlers) ConfirmVerification(w http.ResponseWriter, r *http.Request) {
	var req confirmVerifyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if strings.TrimSpace(req.PhoneNumber) == "" || strings.TrimSpace(req.Code) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "phone_number and code are required")
		return
	}

	resp, err := h.Bot.ConfirmVerification(r.Context(), req.PhoneNumber, req.Code)
	if err != nil {
		h.log.BusinessError("bot.verify.confirm failed", err)
		writeError(w, http.StatusBadGateway, "bot_unreachable", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) VerificationStatus(w http.ResponseWriter, r *http.Request) {
	phone := chi.URLParam(r, "phone")
	if strings.TrimSpace(phone) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "phone is required")
		return
	}

	resp, err := h.Bot.VerificationStatus(r.Context(), phone)
	if err != nil {
		h.log.BusinessError("bot.verify.status failed", err)
		writeError(w, http.StatusBadGateway, "bot_unreachable", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type sendMessageRequest struct {
	PhoneNumber string  `json:"phone_number"`
	Message     string  `json:"message"`
	ScheduledAt *string `json:"scheduled_at"`
}

func (h *Handlers) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if strings.TrimSpace(req.PhoneNumber) == "" || strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "phone_number and message are required")
		return
	}

	resp, err := h.Bot.SendMessage(r.Context(), req.PhoneNumber, req.Message, req.ScheduledAt)
	if err != nil {
		h.log.BusinessError("bot.message.send failed", err)
		writeError(w, http.StatusBadGateway, "bot_unreachable", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type dispatchResponse struct {
	Sent int `json:"sent"`
}

// SendSummaryNow triggers the daily summary dispatch out of schedule.
func (h *Handlers) SendSummaryNow(w http.ResponseWriter, r *http.Request) {
	sent, err := h.Summary.DispatchDaily(r.Context())
	if err != nil {
		h.log.BusinessError("bot.summary.send failed", err)
		writeError(w, http.StatusBadGateway, "dispatch_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, dispatchResponse{Sent: sent})
}

// NotifyReminder sends one reminder to its own notification target.
func (h *Handlers) NotifyReminder(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	if err := h.Summary.SendReminder(r.Context(), id); err != nil {
		h.log.BusinessError("bot.reminder.notify failed", err, "id", id)
		writeError(w, http.StatusBadGateway, "dispatch_failed", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) MessageHistory(w http.ResponseWriter, r *http.Request) {
	phone := chi.URLParam(r, "phone")
	if strings.TrimSpace(phone) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "phone is required")
		return
	}

	resp, err := h.Bot.MessageHistory(r.Context(), phone)
	if err != nil {
		h.log.BusinessError("bot.message.history failed", err)
		writeError(w, http.StatusBadGateway, "bot_unreachable", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) ScheduledMessages(w http.ResponseWriter, r *http.Request) {
	phone := chi.URLParam(r, "phone")
	if strings.TrimSpace(phone) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "phone is required")
		return
	}

	resp, err := h.Bot.ScheduledMessages(r.Context(), phone)
	if err != nil {
		h.log.BusinessError("bot.message.scheduled failed", err)
		writeError(w, http.StatusBadGateway, "bot_unreachable", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
