package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	remindersdomain "payment-reminders-go/internal/domain/reminders"
)

type reminderResponse struct {
	ID          uint     `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category"`
	Amount      *float64 `json:"amount,omitempty"`
	Currency    string   `json:"currency"`

	DueDate      string  `json:"due_date"`
	ReminderTime string  `json:"reminder_time"`
	CreatedAt    string  `json:"created_at"`
	LastModified string  `json:"last_modified"`
	LastPaid     *string `json:"last_paid,omitempty"`

	IsInstallments      bool `json:"is_installments"`
	TotalInstallments   int  `json:"total_installments"`
	CurrentInstallment  int  `json:"current_installment"`
	InstallmentInterval int  `json:"installment_interval"`

	IsRecurring         bool   `json:"is_recurring"`
	RecurringType       string `json:"recurring_type"`
	CustomRecurringDays int    `json:"custom_recurring_days"`
	ReminderDaysBefore  []int  `json:"reminder_days_before"`

	WhatsappNumber string `json:"whatsapp_number,omitempty"`
	CustomMessage  string `json:"custom_message,omitempty"`

	Status      string `json:"status"`
	IsPaid      bool   `json:"is_paid"`
	IsCancelled bool   `json:"is_cancelled"`
	IsActive    bool   `json:"is_active"`

	IconType string   `json:"icon_type"`
	Color    string   `json:"color"`
	Priority string   `json:"priority"`
	Tags     []string `json:"tags,omitempty"`
	Notes    string   `json:"notes,omitempty"`
}

func toReminderResponse(reminder remindersdomain.Reminder) reminderResponse {
	resp := reminderResponse{
		ID:          reminder.ID,
		Title:       reminder.Title,
		Description: reminder.Description,
		Category:    string(reminder.Category),
		Amount:      reminder.Amount,
		Currency:    reminder.Currency,

		DueDate:      formatDate(reminder.DueDate),
		ReminderTime: reminder.ReminderTime,
		CreatedAt:    formatDate(reminder.CreatedAt),
		LastModified: formatDate(reminder.LastModified),

		IsInstallments:      reminder.IsInstallments,
		TotalInstallments:   reminder.TotalInstallments,
		CurrentInstallment:  reminder.CurrentInstallment,
		InstallmentInterval: reminder.InstallmentInterval,

		IsRecurring:         reminder.IsRecurring,
		RecurringType:       string(reminder.RecurringType),
		CustomRecurringDays: reminder.CustomRecurringDays,
		ReminderDaysBefore:  reminder.ReminderDaysBefore,

		WhatsappNumber: reminder.WhatsappNumber,
		CustomMessage:  reminder.CustomMessage,

		Status:      string(reminder.Status),
		IsPaid:      reminder.IsPaid,
		IsCancelled: reminder.IsCancelled,
		IsActive:    reminder.IsActive,

		IconType: string(reminder.IconType),
		Color:    reminder.Color,
		Priority: string(reminder.Priority),
		Tags:     reminder.Tags,
		Notes:    reminder.Notes,
	}
	if reminder.LastPaid != nil {
		paid := formatDate(*reminder.LastPaid)
		resp.LastPaid = &paid
	}
	return resp
}

type reminderListResponse struct {
	Items []reminderResponse `json:"items"`
	Total int                `json:"total"`
}

func toReminderListResponse(items []remindersdomain.Reminder) reminderListResponse {
	response := make([]reminderResponse, 0, len(items))
	for _, reminder := range items {
		response = append(response, toReminderResponse(reminder))
	}
	return reminderListResponse{Items: response, Total: len(response)}
}

type createReminderRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Amount      *float64 `json:"amount"`
	Currency    string   `json:"currency"`

	DueDate      string `json:"due_date"`
	ReminderTime string `json:"reminder_time"`

	IsInstallments      bool `json:"is_installments"`
	TotalInstallments   int  `json:"total_installments"`
	InstallmentInterval int  `json:"installment_interval"`

	IsRecurring         bool   `json:"is_recurring"`
	RecurringType       string `json:"recurring_type"`
	CustomRecurringDays int    `json:"custom_recurring_days"`
	ReminderDaysBefore  []int  `json:"reminder_days_before"`

	WhatsappNumber string `json:"whatsapp_number"`
	CustomMessage  string `json:"custom_message"`

	IconType string   `json:"icon_type"`
	Color    string   `json:"color"`
	Priority string   `json:"priority"`
	Tags     []string `json:"tags"`
	Notes    string   `json:"notes"`
}

func (h *Handlers) ListReminders(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := remindersdomain.Filter{Search: query.Get("q")}

	if raw := strings.TrimSpace(query.Get("status")); raw != "" {
		status := remindersdomain.Status(raw)
		if !status.Valid() {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid status")
			return
		}
		filter.Status = &status
	}
	if raw := strings.TrimSpace(query.Get("category")); raw != "" {
		category := remindersdomain.Category(raw)
		if !category.Valid() {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid category")
			return
		}
		filter.Category = &category
	}
	if raw := strings.TrimSpace(query.Get("priority")); raw != "" {
		priority := remindersdomain.Priority(raw)
		if !priority.Valid() {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid priority")
			return
		}
		filter.Priority = &priority
	}

	minAmount, err := parseFloatParam(query.Get("min_amount"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid min_amount")
		return
	}
	filter.MinAmount = minAmount

	maxAmount, err := parseFloatParam(query.Get("max_amount"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid max_amount")
		return
	}
	filter.MaxAmount = maxAmount

	dateFrom, err := parseDateParam(query.Get("date_from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid date_from")
		return
	}
	filter.DateFrom = dateFrom

	dateTo, err := parseDateParam(query.Get("date_to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid date_to")
		return
	}
	filter.DateTo = dateTo

	if raw := strings.TrimSpace(query.Get("order_by")); raw != "" {
		orderBy := remindersdomain.OrderBy(raw)
		if !orderBy.Valid() {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid order_by")
			return
		}
		filter.OrderBy = orderBy
	}

	items, err := h.Reminders.List(r.Context(), filter)
	if err != nil {
		h.log.InternalError("reminders.list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toReminderListResponse(items))
}

func (h *Handlers) CreateReminder(w http.ResponseWriter, r *http.Request) {
	var req createReminderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "title is required")
		return
	}
	dueDate, err := parseDateRequired(req.DueDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid due_date")
		return
	}

	input := remindersdomain.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Amount:      req.Amount,
		Currency:    req.Currency,

		DueDate:      dueDate,
		ReminderTime: req.ReminderTime,

		IsInstallments:      req.IsInstallments,
		TotalInstallments:   req.TotalInstallments,
		InstallmentInterval: req.InstallmentInterval,

		IsRecurring:         req.IsRecurring,
		CustomRecurringDays: req.CustomRecurringDays,
		ReminderDaysBefore:  req.ReminderDaysBefore,

		WhatsappNumber: req.WhatsappNumber,
		CustomMessage:  req.CustomMessage,

		Color: req.Color,
		Tags:  req.Tags,
		Notes: req.Notes,
	}

	if raw := strings.TrimSpace(req.Category); raw != "" {
		category := remindersdomain.Category(raw)
		if !category.Valid() {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid category")
			return
		}
		input.Category = category
	} else {
		input.Category = remindersdomain.CategoryOther
	}
	if raw := strings.TrimSpace(req.RecurringType); raw != "" {
		kind := remindersdomain.RecurringType(raw)
		if !kind.Valid() {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid recurring_type")
			return
		}
		input.RecurringType = kind
	}
	if raw := strings.TrimSpace(req.IconType); raw != "" {
		icon := remindersdomain.PaymentIcon(raw)
		if !icon.Valid() {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid icon_type")
			return
		}
		input.IconType = icon
	}
	if raw := strings.TrimSpace(req.Priority); raw != "" {
		priority := remindersdomain.Priority(raw)
		if !priority.Valid() {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid priority")
			return
		}
		input.Priority = priority
	}

	created, err := h.Reminders.Create(r.Context(), input)
	if err != nil {
		if errors.Is(err, remindersdomain.ErrTitleRequired) || errors.Is(err, remindersdomain.ErrDueDateRequired) {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		h.log.InternalError("reminders.create failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, toReminderResponse(*created))
}

func (h *Handlers) GetReminder(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	reminder, err := h.Reminders.Get(r.Context(), id)
	if err != nil {
		h.respondReminderError(w, "reminders.get", id, err)
		return
	}

	writeJSON(w, http.StatusOK, toReminderResponse(*reminder))
}

type updateReminderRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Amount      *float64 `json:"amount"`
	Currency    *string  `json:"currency"`

	DueDate      *string `json:"due_date"`
	ReminderTime *string `json:"reminder_time"`

	IsInstallments      *bool `json:"is_installments"`
	TotalInstallments   *int  `json:"total_installments"`
	InstallmentInterval *int  `json:"installment_interval"`

	IsRecurring         *bool   `json:"is_recurring"`
	RecurringType       *string `json:"recurring_type"`
	CustomRecurringDays *int    `json:"custom_recurring_days"`
	ReminderDaysBefore  []int   `json:"reminder_days_before"`

	WhatsappNumber *string `json:"whatsapp_number"`
	CustomMessage  *string `json:"custom_message"`

	IconType *string  `json:"icon_type"`
	Color    *string  `json:"color"`
	Priority *string  `json:"priority"`
	Tags     []string `json:"tags"`
	Notes    *string  `json:"notes"`
}

func (h *Handlers) UpdateReminder(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unreadable body")
		return
	}

	var req updateReminderRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	// A null amount clears the field, an absent key leaves it untouched.
	var rawFields map[string]json.RawMessage
	if err := json.Unmarshal(body, &rawFields); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	_, amountSet := rawFields["amount"]

	if req.TotalInstallments != nil && *req.TotalInstallments < 1 {
		writeError(w, http.StatusBadRequest, "invalid_request", "total_installments must be at least 1")
		return
	}

	input := remindersdomain.UpdateInput{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Amount:      req.Amount,
		AmountSet:   amountSet,
		Currency:    req.Currency,

		ReminderTime: req.ReminderTime,

		IsInstallments:      req.IsInstallments,
		TotalInstallments:   req.TotalInstallments,
		InstallmentInterval: req.InstallmentInterval,

		IsRecurring:         req.IsRecurring,
		CustomRecurringDays: req.CustomRecurringDays,
		ReminderDaysBefore:  req.ReminderDaysBefore,

		WhatsappNumber: req.WhatsappNumber,
		CustomMessage:  req.CustomMessage,

		Color: req.Color,
		Tags:  req.Tags,
		Notes: req.Notes,
	}

	if req.DueDate != nil {
		dueDate, err := parseDateRequired(*req.DueDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid due_date")
			return
		}
		input.DueDate = &dueDate
	}
	if req.Category != nil {
		category := remindersdomain.Category(strings.TrimSpace(*req.Category))
		if !category.Valid() {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid category")
			return
		}
		input.Category = &category
	}
	if req.RecurringType != nil {
		kind := remindersdomain.RecurringType(strings.TrimSpace(*req.RecurringType))
		if !kind.Valid() {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid recurring_type")
			return
		}
		input.RecurringType = &kind
	}
	if req.IconType != nil {
		icon := remindersdomain.PaymentIcon(strings.TrimSpace(*req.IconType))
		if !icon.Valid() {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid icon_type")
			return
		}
		input.IconType = &icon
	}
	if req.Priority != nil {
		priority := remindersdomain.Priority(strings.TrimSpace(*req.Priority))
		if !priority.Valid() {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid priority")
			return
		}
		input.Priority = &priority
	}

	updated, err := h.Reminders.Update(r.Context(), input)
	if err != nil {
		if errors.Is(err, remindersdomain.ErrTitleRequired) {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		h.respondReminderError(w, "reminders.update", id, err)
		return
	}

	writeJSON(w, http.StatusOK, toReminderResponse(*updated))
}

func (h *Handlers) DeleteReminder(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	if err := h.Reminders.Delete(r.Context(), id); err != nil {
		h.respondReminderError(w, "reminders.delete", id, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type payResponse struct {
	Reminder reminderResponse  `json:"reminder"`
	Spawned  *reminderResponse `json:"spawned,omitempty"`
}

func (h *Handlers) PayReminder(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	result, err := h.Reminders.MarkPaid(r.Context(), id)
	if err != nil {
		h.respondReminderError(w, "reminders.pay", id, err)
		return
	}

	resp := payResponse{Reminder: toReminderResponse(result.Reminder)}
	if result.Spawned != nil {
		spawned := toReminderResponse(*result.Spawned)
		resp.Spawned = &spawned
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) CancelReminder(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	reminder, err := h.Reminders.Cancel(r.Context(), id)
	if err != nil {
		h.respondReminderError(w, "reminders.cancel", id, err)
		return
	}

	writeJSON(w, http.StatusOK, toReminderResponse(*reminder))
}

func (h *Handlers) ReactivateReminder(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	reminder, err := h.Reminders.Reactivate(r.Context(), id)
	if err != nil {
		h.respondReminderError(w, "reminders.reactivate", id, err)
		return
	}

	writeJSON(w, http.StatusOK, toReminderResponse(*reminder))
}

type installmentPlanRequest struct {
	BaseID            uint `json:"base_id"`
	TotalInstallments int  `json:"total_installments"`
	IntervalDays      int  `json:"interval_days"`
}

func (h *Handlers) CreateInstallmentPlan(w http.ResponseWriter, r *http.Request) {
	var req installmentPlanRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.BaseID == 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "base_id is required")
		return
	}
	if req.TotalInstallments < 1 {
		writeError(w, http.StatusBadRequest, "invalid_request", "total_installments must be at least 1")
		return
	}

	plan, err := h.Reminders.NewInstallmentPlan(r.Context(), req.BaseID, req.TotalInstallments, req.IntervalDays)
	if err != nil {
		h.respondReminderError(w, "reminders.installment_plan", req.BaseID, err)
		return
	}

	writeJSON(w, http.StatusCreated, toReminderResponse(*plan))
}

func (h *Handlers) UpcomingReminders(w http.ResponseWriter, r *http.Request) {
	days, err := parseIntParam(r.URL.Query().Get("days"), 7)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid days")
		return
	}
	withTarget := parseBoolParam(r.URL.Query().Get("with_target"))

	items, err := h.Reminders.Upcoming(r.Context(), days, withTarget)
	if err != nil {
		h.log.InternalError("reminders.upcoming failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toReminderListResponse(items))
}

type sweepResponse struct {
	Swept int64 `json:"swept"`
}

func (h *Handlers) SweepOverdue(w http.ResponseWriter, r *http.Request) {
	swept, err := h.Reminders.SweepOverdue(r.Context())
	if err != nil {
		h.log.InternalError("reminders.sweep failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, sweepResponse{Swept: swept})
}

func (h *Handlers) respondReminderError(w http.ResponseWriter, op string, id uint, err error) {
	if errors.Is(err, remindersdomain.ErrReminderNotFound) {
		h.log.BusinessError(op+": reminder not found", err, "id", id)
		writeError(w, http.StatusNotFound, "reminder_not_found", "reminder not found")
		return
	}
	h.log.InternalError(op+" failed", err, "id", id)
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}
