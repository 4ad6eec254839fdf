package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/iho/gofactura/internal/domain"
	"github.com/iho/gofactura/internal/infrastructure/metrics"
)

// ImportInvoiceRecord is one raw invoice record from the import source.
// Status fields from the source are ignored; statuses are always derived.
type ImportInvoiceRecord struct {
	InvoiceNumber int
	InvoiceDate   time.Time
	DueDate       time.Time
	DaysToDue     int
	TotalAmount   decimal.Decimal
	Items         []ImportItemRecord
	CreditNotes   []ImportCreditNoteRecord
	Payment       *ImportPaymentRecord
	Customer      ImportCustomerRecord
}

// ImportItemRecord is a raw line item. Subtotal is taken as authoritative.
type ImportItemRecord struct {
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
	Subtotal    decimal.Decimal
}

// ImportCreditNoteRecord is a raw credit note.
type ImportCreditNoteRecord struct {
	Number   int
	IssuedAt time.Time
	Amount   decimal.Decimal
}

// ImportPaymentRecord is a raw payment. The source carries no amount; the
// payment is recorded for the invoice total.
type ImportPaymentRecord struct {
	Method string
	PaidAt time.Time
}

// ImportCustomerRecord is the denormalized customer block.
type ImportCustomerRecord struct {
	Run   string
	Name  string
	Email string
}

// ImportResult summarizes one batch import.
type ImportResult struct {
	TotalRead               int
	Inserted                int
	Duplicates              int
	Inconsistent            int
	DuplicateInvoiceNumbers []int
}

// ImportUseCase performs the destructive reset-and-replace batch import.
type ImportUseCase struct {
	// mu serializes imports; the reset+insert must run exclusively.
	mu sync.Mutex

	txManager   TransactionManager
	invoiceRepo InvoiceRepository
	source      ImportSource
	idGen       IDGenerator
	clock       Clock
	cache       Cache
	retrier     Retrier
	metrics     *metrics.Metrics
}

// NewImportUseCase creates a new ImportUseCase.
func NewImportUseCase(
	txManager TransactionManager,
	invoiceRepo InvoiceRepository,
	source ImportSource,
	idGen IDGenerator,
	clock Clock,
	cache Cache,
	retrier Retrier,
	metrics *metrics.Metrics,
) *ImportUseCase {
	return &ImportUseCase{
		txManager:   txManager,
		invoiceRepo: invoiceRepo,
		source:      source,
		idGen:       idGen,
		clock:       clock,
		cache:       cache,
		retrier:     retrier,
		metrics:     metrics,
	}
}

// ImportBatch loads the named source file, discards every stored aggregate
// and inserts the reconciled batch in one transaction. Duplicate invoice
// numbers within the batch are skipped (first record wins); inconsistent
// invoices are flagged and stored. A missing or malformed source aborts the
// whole batch; per-record problems never do.
func (uc *ImportUseCase) ImportBatch(ctx context.Context, name string) (*ImportResult, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	start := uc.clock.Now()

	records, err := uc.source.Load(ctx, name)
	if err != nil {
		return nil, err
	}

	log.Warn().Int("records", len(records)).Msg("resetting dataset before import")

	invoices, result := uc.reconcile(records)

	commit := func() error {
		txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := uc.txManager.Begin(txCtx)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(txCtx) }()

		if err := uc.invoiceRepo.ReplaceAll(txCtx, tx, invoices); err != nil {
			return err
		}

		return tx.Commit(txCtx)
	}

	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, commit)
	} else {
		err = commit()
	}
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if cerr := uc.cache.Delete(ctx, paymentSummaryCacheKey); cerr != nil {
			log.Warn().Err(cerr).Msg("failed to invalidate report cache")
		}
	}

	if uc.metrics != nil {
		uc.metrics.ImportsTotal.Inc()
		uc.metrics.ImportDuration.Observe(time.Since(start).Seconds())
		uc.metrics.InvoicesInserted.Add(float64(result.Inserted))
		uc.metrics.ImportDuplicates.Add(float64(result.Duplicates))
		uc.metrics.ImportInconsistent.Add(float64(result.Inconsistent))
	}

	log.Info().
		Int("read", result.TotalRead).
		Int("inserted", result.Inserted).
		Int("duplicates", result.Duplicates).
		Int("inconsistent", result.Inconsistent).
		Msg("import completed")

	return result, nil
}

// reconcile builds invoice aggregates from raw records in input order,
// skipping in-batch duplicates and flagging inconsistent invoices. Duplicates
// are only detected within the batch: the reset just erased everything else.
func (uc *ImportUseCase) reconcile(records []*ImportInvoiceRecord) ([]*domain.Invoice, *ImportResult) {
	result := &ImportResult{
		TotalRead:               len(records),
		DuplicateInvoiceNumbers: []int{},
	}

	now := uc.clock.Now()
	seen := make(map[int]bool, len(records))
	invoices := make([]*domain.Invoice, 0, len(records))

	for _, rec := range records {
		if seen[rec.InvoiceNumber] {
			result.Duplicates++
			result.DuplicateInvoiceNumbers = append(result.DuplicateInvoiceNumbers, rec.InvoiceNumber)
			continue
		}
		seen[rec.InvoiceNumber] = true

		invoice := uc.buildInvoice(rec, now)
		if !invoice.IsConsistent {
			result.Inconsistent++
			log.Warn().
				Int("invoice_number", invoice.InvoiceNumber).
				Str("total", invoice.TotalAmount.String()).
				Str("items_total", invoice.ItemsTotal().String()).
				Msg("inconsistent invoice imported")
		}

		invoices = append(invoices, invoice)
		result.Inserted++
	}

	return invoices, result
}

func (uc *ImportUseCase) buildInvoice(rec *ImportInvoiceRecord, now time.Time) *domain.Invoice {
	invoice := &domain.Invoice{
		ID:            uc.idGen.Generate(),
		InvoiceNumber: rec.InvoiceNumber,
		InvoiceDate:   domain.DateOf(rec.InvoiceDate),
		DueDate:       domain.DateOf(rec.DueDate),
		DaysToDue:     rec.DaysToDue,
		TotalAmount:   domain.Round2(rec.TotalAmount),
		CustomerRun:   rec.Customer.Run,
		CustomerName:  rec.Customer.Name,
		CustomerEmail: rec.Customer.Email,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	for _, item := range rec.Items {
		invoice.Items = append(invoice.Items, &domain.InvoiceItem{
			ID:          uc.idGen.Generate(),
			InvoiceID:   invoice.ID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   domain.Round2(item.UnitPrice),
			Subtotal:    domain.Round2(item.Subtotal),
		})
	}

	// The flag is derived once here and persisted; items are immutable
	// post-import so it is never recomputed on read.
	invoice.IsConsistent = invoice.CheckConsistency()

	for _, cn := range rec.CreditNotes {
		invoice.CreditNotes = append(invoice.CreditNotes, &domain.CreditNote{
			ID:               uc.idGen.Generate(),
			InvoiceID:        invoice.ID,
			CreditNoteNumber: cn.Number,
			IssuedAt:         domain.DateOf(cn.IssuedAt),
			Amount:           domain.Round2(cn.Amount),
			CreatedAt:        now,
		})
	}

	if rec.Payment != nil {
		invoice.Payment = &domain.Payment{
			ID:        uc.idGen.Generate(),
			InvoiceID: invoice.ID,
			Method:    rec.Payment.Method,
			Amount:    invoice.TotalAmount,
			PaidAt:    rec.Payment.PaidAt,
		}
	}

	return invoice
}
