package handler

import (
	"net/http"
)

type statsSummaryResponse struct {
	ActiveCount        int64   `json:"active_count"`
	OverdueCount       int64   `json:"overdue_count"`
	PaidCount          int64   `json:"paid_count"`
	TotalPendingAmount float64 `json:"total_pending_amount"`
}

func (h *Handlers) StatsSummary(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Reminders.Statistics(r.Context())
	if err != nil {
		h.log.InternalError("stats.summary failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, statsSummaryResponse{
		ActiveCount:        stats.ActiveCount,
		OverdueCount:       stats.OverdueCount,
		PaidCount:          stats.PaidCount,
		TotalPendingAmount: stats.TotalPendingAmount,
	})
}

type categoryCountResponse struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

func (h *Handlers) StatsByCategory(w http.ResponseWriter, r *http.Request) {
	breakdown, err := h.Reminders.CategoryBreakdown(r.Context())
	if err != nil {
		h.log.InternalError("stats.by_category failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]categoryCountResponse, 0, len(breakdown))
	for _, row := range breakdown {
		response = append(response, categoryCountResponse{
			Category: string(row.Category),
			Count:    row.Count,
		})
	}
	writeJSON(w, http.StatusOK, response)
}

type paidInPeriodResponse struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	TotalPaid float64 `json:"total_paid"`
}

func (h *Handlers) StatsPaidInPeriod(w http.ResponseWriter, r *http.Request) {
	from, err := parseDateRequired(r.URL.Query().Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid from date")
		return
	}
	to, err := parseDateRequired(r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid to date")
		return
	}
	if to.Before(from) {
		writeError(w, http.StatusBadRequest, "invalid_request", "to must not precede from")
		return
	}

	total, err := h.Reminders.PaidInPeriod(r.Context(), from, to)
	if err != nil {
		h.log.InternalError("stats.paid_in_period failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, paidInPeriodResponse{
		From:      formatDate(from),
		To:        formatDate(to),
		TotalPaid: total,
	})
}
