package domain

import "errors"

var (
	// Lookup errors
	ErrInvoiceNotFound    = errors.New("invoice not found")
	ErrSourceFileNotFound = errors.New("source file not found")

	// Business rule errors
	ErrInvoiceInconsistent  = errors.New("invoice is inconsistent")
	ErrCreditExceedsBalance = errors.New("credit note amount exceeds remaining balance")
	ErrPaymentAlreadyExists = errors.New("invoice already has a payment registered")

	// Validation errors
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrMalformedImportBatch = errors.New("malformed import batch")
)
