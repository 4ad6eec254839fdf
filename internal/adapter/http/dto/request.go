package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/gofactura/internal/usecase"
)

// CreateCreditNoteRequest represents a request to issue a credit note.
// The credit note number is optional; a non-numeric or empty value lets the
// server assign the next global number.
type CreateCreditNoteRequest struct {
	Amount           decimal.Decimal `json:"amount"`
	CreditNoteNumber string          `json:"credit_note_number,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateCreditNoteRequest) ToUseCaseInput(invoiceID string) usecase.CreateCreditNoteInput {
	return usecase.CreateCreditNoteInput{
		InvoiceID:        invoiceID,
		Amount:           r.Amount,
		CreditNoteNumber: r.CreditNoteNumber,
	}
}

// CreatePaymentRequest represents a request to register a payment.
type CreatePaymentRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreatePaymentRequest) ToUseCaseInput(invoiceID string) usecase.CreatePaymentInput {
	return usecase.CreatePaymentInput{
		InvoiceID: invoiceID,
		Amount:    r.Amount,
		Method:    r.PaymentMethod,
	}
}
