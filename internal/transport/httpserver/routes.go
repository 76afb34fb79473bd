package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"payment-reminders-go/internal/transport/httpserver/handler"
	"payment-reminders-go/internal/transport/httpserver/middleware"
)

func NewRouter(handlers *handler.Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(middleware.NewCORS([]string{"http://localhost:5173"}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Route("/reminders", func(r chi.Router) {
			r.Get("/", handlers.ListReminders)
			r.Post("/", handlers.CreateReminder)
			r.Get("/upcoming", handlers.UpcomingReminders)
			r.Post("/installment-plan", handlers.CreateInstallmentPlan)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", handlers.GetReminder)
				r.Put("/", handlers.UpdateReminder)
				r.Delete("/", handlers.DeleteReminder)
				r.Post("/pay", handlers.PayReminder)
				r.Post("/cancel", handlers.CancelReminder)
				r.Post("/reactivate", handlers.ReactivateReminder)
				r.Post("/notify", handlers.NotifyReminder)
			})
		})

		r.Get("/stats/summary", handlers.StatsSummary)
		r.Get("/stats/by-category", handlers.StatsByCategory)
		r.Get("/stats/paid", handlers.StatsPaidInPeriod)

		r.Post("/maintenance/sweep", handlers.SweepOverdue)

		r.Route("/bot", func(r chi.Router) {
			r.Get("/config", handlers.GetBotConfig)
			r.Put("/config", handlers.UpdateBotConfig)

			r.Get("/health", handlers.BotHealth)
			r.Get("/status", handlers.BotStatus)

			r.Post("/verify/request", handlers.RequestVerification)
			r.Post("/verify/confirm", handlers.ConfirmVerification)
			r.Get("/verify/status/{phone}", handlers.VerificationStatus)

			r.Post("/messages/send", handlers.SendMessage)
			r.Post("/summary/send", handlers.SendSummaryNow)
			r.Get("/messages/history/{phone}", handlers.MessageHistory)
			r.Get("/messages/scheduled/{phone}", handlers.ScheduledMessages)
		})
	})

	return r
}
