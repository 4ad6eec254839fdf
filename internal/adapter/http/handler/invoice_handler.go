package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gofactura/internal/adapter/http/dto"
	"github.com/iho/gofactura/internal/domain"
	"github.com/iho/gofactura/internal/usecase"
)

// DefaultImportFile is imported when no file name is given.
const DefaultImportFile = "bd_exam_invoices.json"

// InvoiceService defines the behavior needed by InvoiceHandler.
type InvoiceService interface {
	GetInvoice(ctx context.Context, id string) (*usecase.InvoiceView, error)
	GetInvoiceByNumber(ctx context.Context, number int) (*usecase.InvoiceView, error)
	ListInvoices(ctx context.Context, input usecase.ListInvoicesInput) (*usecase.InvoiceListPage, error)
	CreateCreditNote(ctx context.Context, input usecase.CreateCreditNoteInput) (*usecase.InvoiceView, error)
	CreatePayment(ctx context.Context, input usecase.CreatePaymentInput) (*usecase.InvoiceView, error)
}

// ImportService defines the import behavior needed by InvoiceHandler.
type ImportService interface {
	ImportBatch(ctx context.Context, name string) (*usecase.ImportResult, error)
}

// ImportMarker records which source file was imported last.
type ImportMarker interface {
	MarkImported(name string) error
}

// InvoiceHandler handles invoice-related HTTP requests.
type InvoiceHandler struct {
	invoiceUC InvoiceService
	importUC  ImportService
	marker    ImportMarker
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceUC InvoiceService, importUC ImportService, marker ImportMarker) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceUC: invoiceUC,
		importUC:  importUC,
		marker:    marker,
	}
}

// Import runs a batch import from a source file in the configured folder.
func (h *InvoiceHandler) Import(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("file")
	if name == "" {
		name = DefaultImportFile
	}

	result, err := h.importUC.ImportBatch(r.Context(), name)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "import failed", err.Error())

		return
	}

	if h.marker != nil {
		_ = h.marker.MarkImported(name)
	}

	writeJSON(w, http.StatusOK, dto.ImportResultFromUseCase(result))
}

// List lists consistent invoices with filtering and pagination.
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	input := usecase.ListInvoicesInput{
		Search:   r.URL.Query().Get("search"),
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", usecase.DefaultPageSize),
	}

	if raw := r.URL.Query().Get("invoice_number"); raw != "" {
		number, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid invoice_number", raw)
			return
		}
		input.InvoiceNumber = &number
	}

	if raw := r.URL.Query().Get("invoice_status"); raw != "" {
		status, ok := domain.ParseInvoiceStatus(raw)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid invoice_status", raw)
			return
		}
		input.InvoiceStatus = &status
	}

	if raw := r.URL.Query().Get("payment_status"); raw != "" {
		status, ok := domain.ParsePaymentStatus(raw)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid payment_status", raw)
			return
		}
		input.PaymentStatus = &status
	}

	page, err := h.invoiceUC.ListInvoices(r.Context(), input)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list invoices", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListInvoicesFromPage(page))
}

// Get retrieves an invoice by ID.
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing invoice ID", "")
		return
	}

	view, err := h.invoiceUC.GetInvoice(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get invoice", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.InvoiceDetailFromView(view))
}

// GetByNumber retrieves an invoice by its invoice number.
func (h *InvoiceHandler) GetByNumber(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(chi.URLParam(r, "number"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid invoice number", chi.URLParam(r, "number"))
		return
	}

	view, err := h.invoiceUC.GetInvoiceByNumber(r.Context(), number)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get invoice", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.InvoiceDetailFromView(view))
}

// CreateCreditNote issues a credit note against an invoice.
func (h *InvoiceHandler) CreateCreditNote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.CreateCreditNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	view, err := h.invoiceUC.CreateCreditNote(r.Context(), req.ToUseCaseInput(id))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create credit note", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.InvoiceDetailFromView(view))
}

// CreatePayment registers the payment for an invoice.
func (h *InvoiceHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	view, err := h.invoiceUC.CreatePayment(r.Context(), req.ToUseCaseInput(id))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to register payment", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.InvoiceDetailFromView(view))
}
