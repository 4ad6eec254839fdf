package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the aggregate root. Customer data is denormalized onto the
// invoice; it owns its items, credit notes and at most one payment.
type Invoice struct {
	ID            string
	InvoiceNumber int
	InvoiceDate   time.Time
	DueDate       time.Time
	DaysToDue     int
	TotalAmount   decimal.Decimal
	IsConsistent  bool
	CustomerRun   string
	CustomerName  string
	CustomerEmail string
	Items         []*InvoiceItem
	CreditNotes   []*CreditNote
	Payment       *Payment
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// InvoiceItem is a line item. Subtotal comes from the source data as-is and
// is deliberately not recomputed from quantity*unit price; the consistency
// check exists to surface exactly that kind of mismatch.
type InvoiceItem struct {
	ID          string
	InvoiceID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// CreditNote reduces the amount owed on an invoice. Numbering is global
// across all invoices.
type CreditNote struct {
	ID               string
	InvoiceID        string
	CreditNoteNumber int
	IssuedAt         time.Time
	Amount           decimal.Decimal
	CreatedAt        time.Time
}

// Payment records the (single) payment registered against an invoice.
type Payment struct {
	ID        string
	InvoiceID string
	Method    string
	Amount    decimal.Decimal
	PaidAt    time.Time
}

// ItemsTotal returns the rounded sum of line item subtotals.
func (i *Invoice) ItemsTotal() decimal.Decimal {
	subtotals := make([]decimal.Decimal, len(i.Items))
	for n, item := range i.Items {
		subtotals[n] = item.Subtotal
	}

	return SumRound2(subtotals)
}

// CheckConsistency reports whether the declared total matches the sum of
// line item subtotals after two-decimal rounding on both sides. An invoice
// with no items is consistent only when its total is exactly zero.
func (i *Invoice) CheckConsistency() bool {
	return Round2(i.TotalAmount).Equal(i.ItemsTotal())
}

// CreditApplied returns the rounded sum of credit note amounts.
func (i *Invoice) CreditApplied() decimal.Decimal {
	amounts := make([]decimal.Decimal, len(i.CreditNotes))
	for n, cn := range i.CreditNotes {
		amounts[n] = cn.Amount
	}

	return SumRound2(amounts)
}

// Balance returns the collectible amount: total minus credit applied. It can
// reach exactly zero when fully credited; credit note creation enforces that
// it never goes negative.
func (i *Invoice) Balance() decimal.Decimal {
	return i.TotalAmount.Sub(i.CreditApplied())
}

// ValidateCreditNote checks that a new credit note of the given amount keeps
// cumulative credits within the invoice total.
func (i *Invoice) ValidateCreditNote(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if !i.IsConsistent {
		return ErrInvoiceInconsistent
	}
	if amount.GreaterThan(i.Balance()) {
		return ErrCreditExceedsBalance
	}

	return nil
}

// ValidatePayment checks that a payment may be registered. The amount is not
// compared against the balance; partial and over payments are accepted.
func (i *Invoice) ValidatePayment(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if !i.IsConsistent {
		return ErrInvoiceInconsistent
	}
	if i.Payment != nil {
		return ErrPaymentAlreadyExists
	}

	return nil
}
