package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction.
	DefaultTransactionTimeout = 30 * time.Second

	// DefaultPageSize is the page size when none is requested.
	DefaultPageSize = 20

	// MaxPageSize caps the requested page size.
	MaxPageSize = 1000

	// OverdueReportThresholdDays is the age past due for the overdue report.
	OverdueReportThresholdDays = 30

	paymentSummaryCacheKey = "reports:payment-summary"
	paymentSummaryCacheTTL = time.Minute
)
