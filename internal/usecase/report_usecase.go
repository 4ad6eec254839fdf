package usecase

import (
	"context"
	"encoding/json"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/iho/gofactura/internal/domain"
	"github.com/iho/gofactura/internal/infrastructure/metrics"
)

// OverdueInvoice is one row of the overdue report.
type OverdueInvoice struct {
	ID            string          `json:"id"`
	InvoiceNumber int             `json:"invoice_number"`
	CustomerName  string          `json:"customer_name"`
	InvoiceDate   time.Time       `json:"invoice_date"`
	DueDate       time.Time       `json:"due_date"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	DaysOverdue   int             `json:"days_overdue"`
}

// PaymentStatusBreakdown is one payment status bucket in the summary.
type PaymentStatusBreakdown struct {
	Count      int             `json:"count"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage float64         `json:"percentage"`
}

// PaymentSummary breaks consistent invoices down by derived payment status.
type PaymentSummary struct {
	TotalInvoices int                                             `json:"total_invoices"`
	TotalAmount   decimal.Decimal                                 `json:"total_amount"`
	Breakdown     map[domain.PaymentStatus]PaymentStatusBreakdown `json:"breakdown"`
}

// InconsistentInvoice is one row of the inconsistency report.
type InconsistentInvoice struct {
	ID            string          `json:"id"`
	InvoiceNumber int             `json:"invoice_number"`
	CustomerName  string          `json:"customer_name"`
	InvoiceDate   time.Time       `json:"invoice_date"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	ItemsTotal    decimal.Decimal `json:"items_total"`
	Difference    decimal.Decimal `json:"difference"`
}

// ReportUseCase serves the three read-only report views.
type ReportUseCase struct {
	invoiceRepo InvoiceRepository
	clock       Clock
	cache       Cache
	metrics     *metrics.Metrics
}

// NewReportUseCase creates a new ReportUseCase.
func NewReportUseCase(invoiceRepo InvoiceRepository, clock Clock, cache Cache, metrics *metrics.Metrics) *ReportUseCase {
	return &ReportUseCase{
		invoiceRepo: invoiceRepo,
		clock:       clock,
		cache:       cache,
		metrics:     metrics,
	}
}

// OverdueInvoices lists consistent invoices more than 30 days past due with
// no payment and no credit notes, most overdue first. A single credit note,
// however small, removes an invoice from this report.
func (uc *ReportUseCase) OverdueInvoices(ctx context.Context) ([]OverdueInvoice, error) {
	uc.countRequest("overdue")

	invoices, err := uc.invoiceRepo.ListConsistent(ctx)
	if err != nil {
		return nil, err
	}

	now := domain.DateOf(uc.clock.Now())
	threshold := now.AddDate(0, 0, -OverdueReportThresholdDays)

	result := make([]OverdueInvoice, 0)
	for _, inv := range invoices {
		if inv.Payment != nil || len(inv.CreditNotes) > 0 {
			continue
		}
		if !inv.DueDate.Before(threshold) {
			continue
		}

		result = append(result, OverdueInvoice{
			ID:            inv.ID,
			InvoiceNumber: inv.InvoiceNumber,
			CustomerName:  inv.CustomerName,
			InvoiceDate:   inv.InvoiceDate,
			DueDate:       inv.DueDate,
			TotalAmount:   inv.TotalAmount,
			DaysOverdue:   int(now.Sub(inv.DueDate).Hours() / 24),
		})
	}

	sort.Slice(result, func(a, b int) bool {
		return result[a].DaysOverdue > result[b].DaysOverdue
	})

	return result, nil
}

// PaymentStatusSummary groups consistent invoices by derived payment status.
// Every status gets a row, including zero rows. The result is cached briefly;
// any import or mutation invalidates it.
func (uc *ReportUseCase) PaymentStatusSummary(ctx context.Context) (*PaymentSummary, error) {
	uc.countRequest("payment_summary")

	if uc.cache != nil {
		if data, err := uc.cache.Get(ctx, paymentSummaryCacheKey); err == nil && data != nil {
			var cached PaymentSummary
			if err := json.Unmarshal(data, &cached); err == nil {
				if uc.metrics != nil {
					uc.metrics.ReportCacheHits.Inc()
				}
				return &cached, nil
			}
		}
	}

	invoices, err := uc.invoiceRepo.ListConsistent(ctx)
	if err != nil {
		return nil, err
	}

	now := domain.DateOf(uc.clock.Now())

	counts := make(map[domain.PaymentStatus]int)
	amounts := make(map[domain.PaymentStatus]decimal.Decimal)
	totalAmount := decimal.Zero

	for _, inv := range invoices {
		status := domain.DerivePaymentStatus(inv, now)
		counts[status]++
		amounts[status] = amounts[status].Add(inv.TotalAmount)
		totalAmount = totalAmount.Add(inv.TotalAmount)
	}

	summary := &PaymentSummary{
		TotalInvoices: len(invoices),
		TotalAmount:   totalAmount,
		Breakdown:     make(map[domain.PaymentStatus]PaymentStatusBreakdown, len(domain.PaymentStatuses)),
	}

	for _, status := range domain.PaymentStatuses {
		amount := amounts[status]
		if amount.IsZero() {
			amount = decimal.Zero
		}

		percentage := 0.0
		if len(invoices) > 0 {
			percentage = math.Round(float64(counts[status])/float64(len(invoices))*100*100) / 100
		}

		summary.Breakdown[status] = PaymentStatusBreakdown{
			Count:      counts[status],
			Amount:     amount,
			Percentage: percentage,
		}
	}

	if uc.cache != nil {
		if data, err := json.Marshal(summary); err == nil {
			if err := uc.cache.Set(ctx, paymentSummaryCacheKey, data, paymentSummaryCacheTTL); err != nil {
				log.Warn().Err(err).Msg("failed to cache payment summary")
			}
		}
	}

	return summary, nil
}

// InconsistentInvoices lists every invoice whose declared total disagrees
// with its item sum, with the signed difference, by invoice number ascending.
func (uc *ReportUseCase) InconsistentInvoices(ctx context.Context) ([]InconsistentInvoice, error) {
	uc.countRequest("inconsistent")

	invoices, err := uc.invoiceRepo.ListInconsistent(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]InconsistentInvoice, 0, len(invoices))
	for _, inv := range invoices {
		itemsTotal := inv.ItemsTotal()
		result = append(result, InconsistentInvoice{
			ID:            inv.ID,
			InvoiceNumber: inv.InvoiceNumber,
			CustomerName:  inv.CustomerName,
			InvoiceDate:   inv.InvoiceDate,
			TotalAmount:   inv.TotalAmount,
			ItemsTotal:    itemsTotal,
			Difference:    inv.TotalAmount.Sub(itemsTotal),
		})
	}

	sort.Slice(result, func(a, b int) bool {
		return result[a].InvoiceNumber < result[b].InvoiceNumber
	})

	return result, nil
}

func (uc *ReportUseCase) countRequest(report string) {
	if uc.metrics != nil {
		uc.metrics.ReportRequests.WithLabelValues(report).Inc()
	}
}
