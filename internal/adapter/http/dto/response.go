package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gofactura/internal/domain"
	"github.com/iho/gofactura/internal/usecase"
)

// InvoiceSummaryResponse is a list row: the invoice header plus its derived
// statuses and balances.
type InvoiceSummaryResponse struct {
	ID            string               `json:"id"`
	InvoiceNumber int                  `json:"invoice_number"`
	CustomerName  string               `json:"customer_name"`
	CustomerEmail string               `json:"customer_email"`
	InvoiceDate   time.Time            `json:"invoice_date"`
	DueDate       time.Time            `json:"payment_due_date"`
	TotalAmount   decimal.Decimal      `json:"total_amount"`
	InvoiceStatus domain.InvoiceStatus `json:"invoice_status"`
	PaymentStatus domain.PaymentStatus `json:"payment_status"`
	CreditApplied decimal.Decimal      `json:"credit_applied"`
	Balance       decimal.Decimal      `json:"balance"`
}

// InvoiceSummaryFromView converts a derived invoice view to a list row.
func InvoiceSummaryFromView(v *usecase.InvoiceView) *InvoiceSummaryResponse {
	return &InvoiceSummaryResponse{
		ID:            v.Invoice.ID,
		InvoiceNumber: v.Invoice.InvoiceNumber,
		CustomerName:  v.Invoice.CustomerName,
		CustomerEmail: v.Invoice.CustomerEmail,
		InvoiceDate:   v.Invoice.InvoiceDate,
		DueDate:       v.Invoice.DueDate,
		TotalAmount:   v.Invoice.TotalAmount,
		InvoiceStatus: v.InvoiceStatus,
		PaymentStatus: v.PaymentStatus,
		CreditApplied: v.CreditApplied,
		Balance:       v.Balance,
	}
}

// InvoiceDetailResponse is the full aggregate with derived values.
type InvoiceDetailResponse struct {
	ID            string                 `json:"id"`
	InvoiceNumber int                    `json:"invoice_number"`
	CustomerRun   string                 `json:"customer_run"`
	CustomerName  string                 `json:"customer_name"`
	CustomerEmail string                 `json:"customer_email"`
	InvoiceDate   time.Time              `json:"invoice_date"`
	DueDate       time.Time              `json:"payment_due_date"`
	DaysToDue     int                    `json:"days_to_due"`
	TotalAmount   decimal.Decimal        `json:"total_amount"`
	IsConsistent  bool                   `json:"is_consistent"`
	InvoiceStatus domain.InvoiceStatus   `json:"invoice_status"`
	PaymentStatus domain.PaymentStatus   `json:"payment_status"`
	CreditApplied decimal.Decimal        `json:"credit_applied"`
	Balance       decimal.Decimal        `json:"balance"`
	Items         []*InvoiceItemResponse `json:"items"`
	CreditNotes   []*CreditNoteResponse  `json:"credit_notes"`
	Payment       *PaymentResponse       `json:"payment,omitempty"`
}

// InvoiceItemResponse represents a line item.
type InvoiceItemResponse struct {
	ID          string          `json:"id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// CreditNoteResponse represents a credit note.
type CreditNoteResponse struct {
	ID               string          `json:"id"`
	CreditNoteNumber int             `json:"credit_note_number"`
	IssuedAt         time.Time       `json:"credit_note_date"`
	Amount           decimal.Decimal `json:"amount"`
}

// PaymentResponse represents the payment registered against an invoice.
type PaymentResponse struct {
	ID            string          `json:"id"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	PaidAt        time.Time       `json:"paid_at"`
}

// InvoiceDetailFromView converts a derived invoice view to the detail response.
func InvoiceDetailFromView(v *usecase.InvoiceView) *InvoiceDetailResponse {
	inv := v.Invoice

	items := make([]*InvoiceItemResponse, len(inv.Items))
	for i, item := range inv.Items {
		items[i] = &InvoiceItemResponse{
			ID:          item.ID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
		}
	}

	creditNotes := make([]*CreditNoteResponse, len(inv.CreditNotes))
	for i, cn := range inv.CreditNotes {
		creditNotes[i] = &CreditNoteResponse{
			ID:               cn.ID,
			CreditNoteNumber: cn.CreditNoteNumber,
			IssuedAt:         cn.IssuedAt,
			Amount:           cn.Amount,
		}
	}

	var payment *PaymentResponse
	if inv.Payment != nil {
		payment = &PaymentResponse{
			ID:            inv.Payment.ID,
			PaymentMethod: inv.Payment.Method,
			Amount:        inv.Payment.Amount,
			PaidAt:        inv.Payment.PaidAt,
		}
	}

	return &InvoiceDetailResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		CustomerRun:   inv.CustomerRun,
		CustomerName:  inv.CustomerName,
		CustomerEmail: inv.CustomerEmail,
		InvoiceDate:   inv.InvoiceDate,
		DueDate:       inv.DueDate,
		DaysToDue:     inv.DaysToDue,
		TotalAmount:   inv.TotalAmount,
		IsConsistent:  inv.IsConsistent,
		InvoiceStatus: v.InvoiceStatus,
		PaymentStatus: v.PaymentStatus,
		CreditApplied: v.CreditApplied,
		Balance:       v.Balance,
		Items:         items,
		CreditNotes:   creditNotes,
		Payment:       payment,
	}
}

// ListInvoicesResponse is one page of invoice list rows.
type ListInvoicesResponse struct {
	Items      []*InvoiceSummaryResponse `json:"items"`
	Page       int                       `json:"page"`
	PageSize   int                       `json:"page_size"`
	TotalCount int                       `json:"total_count"`
	TotalPages int                       `json:"total_pages"`
}

// ListInvoicesFromPage converts a use case page to the list response.
func ListInvoicesFromPage(page *usecase.InvoiceListPage) *ListInvoicesResponse {
	items := make([]*InvoiceSummaryResponse, len(page.Items))
	for i, v := range page.Items {
		items[i] = InvoiceSummaryFromView(v)
	}

	return &ListInvoicesResponse{
		Items:      items,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalCount: page.TotalCount,
		TotalPages: page.TotalPages,
	}
}

// ImportResultResponse summarizes a batch import.
type ImportResultResponse struct {
	TotalRead               int   `json:"total_read"`
	Inserted                int   `json:"inserted"`
	Duplicates              int   `json:"duplicates"`
	Inconsistent            int   `json:"inconsistent"`
	DuplicateInvoiceNumbers []int `json:"duplicate_invoice_numbers"`
}

// ImportResultFromUseCase converts an import result.
func ImportResultFromUseCase(r *usecase.ImportResult) *ImportResultResponse {
	return &ImportResultResponse{
		TotalRead:               r.TotalRead,
		Inserted:                r.Inserted,
		Duplicates:              r.Duplicates,
		Inconsistent:            r.Inconsistent,
		DuplicateInvoiceNumbers: r.DuplicateInvoiceNumbers,
	}
}

// SourceFilesResponse lists source files in the import folder.
type SourceFilesResponse struct {
	Files []string `json:"files"`
}

// UploadResponse acknowledges a stored source file.
type UploadResponse struct {
	FileName string `json:"file_name"`
}

// LastImportedResponse names the most recently imported source file.
type LastImportedResponse struct {
	FileName string `json:"file_name"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
