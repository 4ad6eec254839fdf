package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is derived from credit notes against the invoice total.
type InvoiceStatus string

const (
	InvoiceStatusIssued    InvoiceStatus = "Issued"
	InvoiceStatusPartial   InvoiceStatus = "Partial"
	InvoiceStatusCancelled InvoiceStatus = "Cancelled"
)

// PaymentStatus is derived from payment presence and the due date.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusPaid    PaymentStatus = "Paid"
	PaymentStatusOverdue PaymentStatus = "Overdue"
)

// PaymentStatuses lists all payment statuses in report order.
var PaymentStatuses = []PaymentStatus{
	PaymentStatusPending,
	PaymentStatusPaid,
	PaymentStatusOverdue,
}

// ParseInvoiceStatus parses a status filter value.
func ParseInvoiceStatus(s string) (InvoiceStatus, bool) {
	switch InvoiceStatus(s) {
	case InvoiceStatusIssued, InvoiceStatusPartial, InvoiceStatusCancelled:
		return InvoiceStatus(s), true
	}

	return "", false
}

// ParsePaymentStatus parses a status filter value.
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch PaymentStatus(s) {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusOverdue:
		return PaymentStatus(s), true
	}

	return "", false
}

// DeriveInvoiceStatus computes the invoice status from current credit notes.
// Statuses are never persisted; they are recomputed on every read so they
// always reflect live credit note state.
func DeriveInvoiceStatus(i *Invoice) InvoiceStatus {
	credits := i.CreditApplied()

	if credits.Equal(decimal.Zero) {
		return InvoiceStatusIssued
	}
	if credits.GreaterThanOrEqual(i.TotalAmount) {
		return InvoiceStatusCancelled
	}

	return InvoiceStatusPartial
}

// DerivePaymentStatus computes the payment status at the given time. Payment
// presence wins over the due date, even for a late payment. The caller
// supplies now so tests stay deterministic.
func DerivePaymentStatus(i *Invoice, now time.Time) PaymentStatus {
	if i.Payment != nil {
		return PaymentStatusPaid
	}
	if now.After(i.DueDate) {
		return PaymentStatusOverdue
	}

	return PaymentStatusPending
}
