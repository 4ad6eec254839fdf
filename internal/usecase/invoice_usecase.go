package usecase

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/iho/gofactura/internal/domain"
	"github.com/iho/gofactura/internal/infrastructure/metrics"
)

// InvoiceView is an invoice with its derived, never-persisted values.
type InvoiceView struct {
	Invoice       *domain.Invoice
	InvoiceStatus domain.InvoiceStatus
	PaymentStatus domain.PaymentStatus
	CreditApplied decimal.Decimal
	Balance       decimal.Decimal
}

// NewInvoiceView derives statuses and balances for an invoice at the given time.
func NewInvoiceView(inv *domain.Invoice, now time.Time) *InvoiceView {
	return &InvoiceView{
		Invoice:       inv,
		InvoiceStatus: domain.DeriveInvoiceStatus(inv),
		PaymentStatus: domain.DerivePaymentStatus(inv, now),
		CreditApplied: inv.CreditApplied(),
		Balance:       inv.Balance(),
	}
}

// InvoiceUseCase handles invoice reads and per-invoice mutations.
type InvoiceUseCase struct {
	txManager   TransactionManager
	invoiceRepo InvoiceRepository
	idGen       IDGenerator
	clock       Clock
	cache       Cache
	metrics     *metrics.Metrics
}

// NewInvoiceUseCase creates a new InvoiceUseCase.
func NewInvoiceUseCase(
	txManager TransactionManager,
	invoiceRepo InvoiceRepository,
	idGen IDGenerator,
	clock Clock,
	cache Cache,
	metrics *metrics.Metrics,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txManager:   txManager,
		invoiceRepo: invoiceRepo,
		idGen:       idGen,
		clock:       clock,
		cache:       cache,
		metrics:     metrics,
	}
}

// GetInvoice retrieves an invoice aggregate by ID with derived values.
func (uc *InvoiceUseCase) GetInvoice(ctx context.Context, id string) (*InvoiceView, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return NewInvoiceView(inv, domain.DateOf(uc.clock.Now())), nil
}

// GetInvoiceByNumber retrieves an invoice aggregate by its invoice number.
func (uc *InvoiceUseCase) GetInvoiceByNumber(ctx context.Context, number int) (*InvoiceView, error) {
	inv, err := uc.invoiceRepo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	return NewInvoiceView(inv, domain.DateOf(uc.clock.Now())), nil
}

// ListInvoicesInput represents list filters and pagination.
type ListInvoicesInput struct {
	Search        string
	InvoiceNumber *int
	InvoiceStatus *domain.InvoiceStatus
	PaymentStatus *domain.PaymentStatus
	Page          int
	PageSize      int
}

// InvoiceListPage is one page of filtered invoices.
type InvoiceListPage struct {
	Items      []*InvoiceView
	Page       int
	PageSize   int
	TotalCount int
	TotalPages int
}

// ListInvoices filters consistent invoices by search text, invoice number and
// derived statuses, then paginates. Inconsistent invoices never appear here.
func (uc *InvoiceUseCase) ListInvoices(ctx context.Context, input ListInvoicesInput) (*InvoiceListPage, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.PageSize <= 0 {
		input.PageSize = DefaultPageSize
	}
	if input.PageSize > MaxPageSize {
		input.PageSize = MaxPageSize
	}

	invoices, err := uc.invoiceRepo.ListConsistent(ctx)
	if err != nil {
		return nil, err
	}

	now := domain.DateOf(uc.clock.Now())

	filtered := make([]*InvoiceView, 0, len(invoices))
	for _, inv := range invoices {
		if !matchesSearch(inv, input.Search) {
			continue
		}
		if input.InvoiceNumber != nil && inv.InvoiceNumber != *input.InvoiceNumber {
			continue
		}

		view := NewInvoiceView(inv, now)
		if input.InvoiceStatus != nil && view.InvoiceStatus != *input.InvoiceStatus {
			continue
		}
		if input.PaymentStatus != nil && view.PaymentStatus != *input.PaymentStatus {
			continue
		}

		filtered = append(filtered, view)
	}

	sort.Slice(filtered, func(a, b int) bool {
		return filtered[a].Invoice.InvoiceNumber < filtered[b].Invoice.InvoiceNumber
	})

	totalCount := len(filtered)
	totalPages := (totalCount + input.PageSize - 1) / input.PageSize

	start := (input.Page - 1) * input.PageSize
	if start > totalCount {
		start = totalCount
	}
	end := start + input.PageSize
	if end > totalCount {
		end = totalCount
	}

	return &InvoiceListPage{
		Items:      filtered[start:end],
		Page:       input.Page,
		PageSize:   input.PageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}, nil
}

// matchesSearch applies the free-text search: a numeric term matches the
// invoice number exactly or either substring rule; a non-numeric term matches
// the customer name or the invoice number rendered as a string.
func matchesSearch(inv *domain.Invoice, search string) bool {
	if search == "" {
		return true
	}

	numberStr := strconv.Itoa(inv.InvoiceNumber)
	nameMatch := strings.Contains(strings.ToLower(inv.CustomerName), strings.ToLower(search))

	if num, err := strconv.Atoi(search); err == nil {
		return inv.InvoiceNumber == num || nameMatch || strings.Contains(numberStr, search)
	}

	return nameMatch || strings.Contains(numberStr, search)
}

// CreateCreditNoteInput represents input for creating a credit note.
type CreateCreditNoteInput struct {
	InvoiceID string
	Amount    decimal.Decimal
	// CreditNoteNumber overrides the assigned number when it parses as an integer.
	CreditNoteNumber string
}

// CreateCreditNote issues a credit note against an invoice. The balance cap
// is validated against the row-locked aggregate inside the transaction, so
// concurrent requests cannot push cumulative credits past the total.
func (uc *InvoiceUseCase) CreateCreditNote(ctx context.Context, input CreateCreditNoteInput) (*InvoiceView, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	invoice, err := uc.invoiceRepo.GetByIDForUpdate(txCtx, tx, input.InvoiceID)
	if err != nil {
		return nil, err
	}

	amount := domain.Round2(input.Amount)
	if err := invoice.ValidateCreditNote(amount); err != nil {
		if uc.metrics != nil {
			uc.metrics.MutationErrors.WithLabelValues("credit_note").Inc()
		}
		return nil, err
	}

	number, err := uc.nextCreditNoteNumber(txCtx, tx, input.CreditNoteNumber)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	cn := &domain.CreditNote{
		ID:               uc.idGen.Generate(),
		InvoiceID:        invoice.ID,
		CreditNoteNumber: number,
		IssuedAt:         domain.DateOf(now),
		Amount:           amount,
		CreatedAt:        now,
	}

	if err := uc.invoiceRepo.InsertCreditNote(txCtx, tx, cn); err != nil {
		return nil, err
	}
	if err := uc.invoiceRepo.TouchInvoice(txCtx, tx, invoice.ID, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	uc.invalidateReports(ctx)

	if uc.metrics != nil {
		uc.metrics.CreditNotesCreated.Inc()
	}

	log.Info().
		Int("credit_note_number", cn.CreditNoteNumber).
		Int("invoice_number", invoice.InvoiceNumber).
		Str("amount", amount.String()).
		Msg("credit note created")

	return uc.GetInvoice(ctx, invoice.ID)
}

// nextCreditNoteNumber uses the requested number when it parses as an
// integer, otherwise assigns max existing + 1 across all invoices.
func (uc *InvoiceUseCase) nextCreditNoteNumber(ctx context.Context, tx Transaction, requested string) (int, error) {
	if n, err := strconv.Atoi(strings.TrimSpace(requested)); err == nil {
		return n, nil
	}

	max, err := uc.invoiceRepo.MaxCreditNoteNumber(ctx, tx)
	if err != nil {
		return 0, err
	}

	return max + 1, nil
}

// CreatePaymentInput represents input for registering a payment.
type CreatePaymentInput struct {
	InvoiceID string
	Amount    decimal.Decimal
	Method    string
}

// CreatePayment registers the single payment for an invoice. The amount is
// not checked against the balance; the source system accepts partial and
// over payments.
func (uc *InvoiceUseCase) CreatePayment(ctx context.Context, input CreatePaymentInput) (*InvoiceView, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	invoice, err := uc.invoiceRepo.GetByIDForUpdate(txCtx, tx, input.InvoiceID)
	if err != nil {
		return nil, err
	}

	amount := domain.Round2(input.Amount)
	if err := invoice.ValidatePayment(amount); err != nil {
		if uc.metrics != nil {
			uc.metrics.MutationErrors.WithLabelValues("payment").Inc()
		}
		return nil, err
	}

	now := uc.clock.Now()
	payment := &domain.Payment{
		ID:        uc.idGen.Generate(),
		InvoiceID: invoice.ID,
		Method:    input.Method,
		Amount:    amount,
		PaidAt:    now,
	}

	if err := uc.invoiceRepo.InsertPayment(txCtx, tx, payment); err != nil {
		return nil, err
	}
	if err := uc.invoiceRepo.TouchInvoice(txCtx, tx, invoice.ID, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	uc.invalidateReports(ctx)

	if uc.metrics != nil {
		uc.metrics.PaymentsCreated.Inc()
	}

	log.Info().
		Int("invoice_number", invoice.InvoiceNumber).
		Str("amount", amount.String()).
		Str("method", input.Method).
		Msg("payment registered")

	return uc.GetInvoice(ctx, invoice.ID)
}

func (uc *InvoiceUseCase) invalidateReports(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Delete(ctx, paymentSummaryCacheKey); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate report cache")
	}
}
