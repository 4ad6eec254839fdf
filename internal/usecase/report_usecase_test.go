package usecase_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/gofactura/internal/domain"
	"github.com/iho/gofactura/internal/usecase"
	"github.com/iho/gofactura/internal/usecase/mocks"
)

func newReportUseCase(repo usecase.InvoiceRepository, cache usecase.Cache) *usecase.ReportUseCase {
	return usecase.NewReportUseCase(repo, mocks.NewMockClock(testNow), cache, nil)
}

func TestReportUseCase_OverdueInvoices(t *testing.T) {
	old := invoice("a", 1001, "Acme", "100.00", true)
	old.DueDate = domain.DateOf(testNow).AddDate(0, 0, -45)

	older := invoice("b", 1002, "Globex", "200.00", true)
	older.DueDate = domain.DateOf(testNow).AddDate(0, 0, -90)

	barelyOverdue := invoice("c", 1003, "Initech", "300.00", true)
	barelyOverdue.DueDate = domain.DateOf(testNow).AddDate(0, 0, -30) // not yet past the 30-day mark

	paidLate := invoice("d", 1004, "Umbrella", "400.00", true)
	paidLate.DueDate = domain.DateOf(testNow).AddDate(0, 0, -60)
	paidLate.Payment = &domain.Payment{Amount: dec("400.00"), PaidAt: testNow}

	creditedLate := invoice("e", 1005, "Hooli", "500.00", true)
	creditedLate.DueDate = domain.DateOf(testNow).AddDate(0, 0, -60)
	creditedLate.CreditNotes = []*domain.CreditNote{{Amount: dec("0.01")}}

	repo := mocks.NewMockInvoiceRepository()
	repo.Seed(old, older, barelyOverdue, paidLate, creditedLate)
	uc := newReportUseCase(repo, nil)

	result, err := uc.OverdueInvoices(context.Background())
	require.NoError(t, err)

	require.Len(t, result, 2)
	// most overdue first
	assert.Equal(t, 1002, result[0].InvoiceNumber)
	assert.Equal(t, 90, result[0].DaysOverdue)
	assert.Equal(t, 1001, result[1].InvoiceNumber)
	assert.Equal(t, 45, result[1].DaysOverdue)
}

func TestReportUseCase_PaymentStatusSummary(t *testing.T) {
	repo := mocks.NewMockInvoiceRepository()
	for n := 1; n <= 3; n++ {
		inv := invoice(string(rune('a'+n)), 1000+n, "Paid Co", "100.00", true)
		inv.Payment = &domain.Payment{Amount: dec("100.00"), PaidAt: testNow}
		repo.Seed(inv)
	}
	for n := 4; n <= 5; n++ {
		repo.Seed(invoice(string(rune('a'+n)), 1000+n, "Pending Co", "50.00", true))
	}
	repo.Seed(invoice("z", 1099, "Broken Co", "999.00", false)) // excluded

	uc := newReportUseCase(repo, nil)

	summary, err := uc.PaymentStatusSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, summary.TotalInvoices)
	assert.True(t, dec("400.00").Equal(summary.TotalAmount))

	paid := summary.Breakdown[domain.PaymentStatusPaid]
	assert.Equal(t, 3, paid.Count)
	assert.InDelta(t, 60.00, paid.Percentage, 0.0001)
	assert.True(t, dec("300.00").Equal(paid.Amount))

	pending := summary.Breakdown[domain.PaymentStatusPending]
	assert.Equal(t, 2, pending.Count)
	assert.InDelta(t, 40.00, pending.Percentage, 0.0001)

	// zero row is emitted
	overdue := summary.Breakdown[domain.PaymentStatusOverdue]
	assert.Equal(t, 0, overdue.Count)
	assert.InDelta(t, 0.00, overdue.Percentage, 0.0001)
	assert.True(t, overdue.Amount.IsZero())
}

func TestReportUseCase_PaymentStatusSummary_Empty(t *testing.T) {
	uc := newReportUseCase(mocks.NewMockInvoiceRepository(), nil)

	summary, err := uc.PaymentStatusSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalInvoices)
	assert.Len(t, summary.Breakdown, 3)
}

func TestReportUseCase_PaymentStatusSummary_CacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewGomockInvoiceRepository(ctrl)
	cache := mocks.NewGomockCache(ctrl)

	cached := usecase.PaymentSummary{
		TotalInvoices: 7,
		TotalAmount:   dec("700.00"),
		Breakdown:     map[domain.PaymentStatus]usecase.PaymentStatusBreakdown{},
	}
	data, err := json.Marshal(cached)
	require.NoError(t, err)

	cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(data, nil)
	// repository must not be queried on a cache hit

	uc := newReportUseCase(repo, cache)

	summary, err := uc.PaymentStatusSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, summary.TotalInvoices)
}

func TestReportUseCase_PaymentStatusSummary_CacheMissStoresResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewGomockInvoiceRepository(ctrl)
	cache := mocks.NewGomockCache(ctrl)

	cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, nil)
	repo.EXPECT().ListConsistent(gomock.Any()).Return(nil, nil)
	cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	uc := newReportUseCase(repo, cache)

	_, err := uc.PaymentStatusSummary(context.Background())
	require.NoError(t, err)
}

func TestReportUseCase_InconsistentInvoices(t *testing.T) {
	bad := invoice("a", 1002, "Acme", "100.00", false)
	bad.Items = []*domain.InvoiceItem{{ProductName: "widget", Quantity: 1, UnitPrice: dec("99.99"), Subtotal: dec("99.99")}}

	worse := invoice("b", 1001, "Globex", "50.00", false)
	worse.Items = []*domain.InvoiceItem{{ProductName: "gadget", Quantity: 1, UnitPrice: dec("80.00"), Subtotal: dec("80.00")}}

	repo := mocks.NewMockInvoiceRepository()
	repo.Seed(bad, worse, invoice("c", 1003, "Fine Co", "10.00", true))

	uc := newReportUseCase(repo, nil)

	result, err := uc.InconsistentInvoices(context.Background())
	require.NoError(t, err)

	require.Len(t, result, 2)
	// sorted by invoice number ascending
	assert.Equal(t, 1001, result[0].InvoiceNumber)
	assert.True(t, dec("-30.00").Equal(result[0].Difference))
	assert.Equal(t, 1002, result[1].InvoiceNumber)
	assert.True(t, dec("0.01").Equal(result[1].Difference))
	assert.True(t, dec("99.99").Equal(result[1].ItemsTotal))
}
