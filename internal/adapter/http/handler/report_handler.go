package handler

import (
	"context"
	"net/http"

	"github.com/iho/gofactura/internal/usecase"
)

// ReportService defines the behavior needed by ReportHandler.
type ReportService interface {
	OverdueInvoices(ctx context.Context) ([]usecase.OverdueInvoice, error)
	PaymentStatusSummary(ctx context.Context) (*usecase.PaymentSummary, error)
	InconsistentInvoices(ctx context.Context) ([]usecase.InconsistentInvoice, error)
}

// ReportHandler handles report HTTP requests.
type ReportHandler struct {
	reportUC ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC ReportService) *ReportHandler {
	return &ReportHandler{reportUC: reportUC}
}

// Overdue lists invoices more than 30 days past due with no payment and no
// credit notes.
func (h *ReportHandler) Overdue(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportUC.OverdueInvoices(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build overdue report", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// PaymentSummary groups consistent invoices by derived payment status.
func (h *ReportHandler) PaymentSummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportUC.PaymentStatusSummary(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build payment summary", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Inconsistent lists invoices whose declared total disagrees with their items.
func (h *ReportHandler) Inconsistent(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportUC.InconsistentInvoices(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build inconsistency report", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}
