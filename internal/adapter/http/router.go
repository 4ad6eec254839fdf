package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/iho/gofactura/internal/adapter/http/handler"
	"github.com/iho/gofactura/internal/adapter/http/middleware"
	"github.com/iho/gofactura/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	InvoiceHandler    *handler.InvoiceHandler
	ReportHandler     *handler.ReportHandler
	SourceFileHandler *handler.SourceFileHandler
	HealthHandler     *handler.HealthHandler
	IdempotencyStore  usecase.IdempotencyStore
	IdempotencyTTL    time.Duration
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(log.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Invoices
		r.Route("/invoices", func(r chi.Router) {
			r.Post("/import", cfg.InvoiceHandler.Import)
			r.Get("/", cfg.InvoiceHandler.List)
			r.Get("/by-number/{number}", cfg.InvoiceHandler.GetByNumber)
			r.Get("/{id}", cfg.InvoiceHandler.Get)
			r.Post("/{id}/credit-notes", cfg.InvoiceHandler.CreateCreditNote)
			r.Post("/{id}/payments", cfg.InvoiceHandler.CreatePayment)
		})

		// Reports
		r.Route("/reports", func(r chi.Router) {
			r.Get("/overdue", cfg.ReportHandler.Overdue)
			r.Get("/payment-summary", cfg.ReportHandler.PaymentSummary)
			r.Get("/inconsistent", cfg.ReportHandler.Inconsistent)
		})

		// Source files
		r.Route("/source-files", func(r chi.Router) {
			r.Get("/", cfg.SourceFileHandler.List)
			r.Post("/upload", cfg.SourceFileHandler.Upload)
			r.Get("/last-imported", cfg.SourceFileHandler.LastImported)
			r.Get("/{name}", cfg.SourceFileHandler.Read)
		})
	})

	return r
}
