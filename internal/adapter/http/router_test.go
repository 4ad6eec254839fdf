package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gofactura/internal/adapter/http/handler"
	apimiddleware "github.com/iho/gofactura/internal/adapter/http/middleware"
	"github.com/iho/gofactura/internal/domain"
	"github.com/iho/gofactura/internal/usecase"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/import", nil)
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if !store.checkCalled {
		t.Fatalf("expected idempotency store to be used")
	}
}

func TestNewRouter_RecoversFromPanickingHandler(t *testing.T) {
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.ReportHandler = handler.NewReportHandler(panickingReportService{})
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/overdue", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected panic to surface as 500, got %d", rec.Code)
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"POST /api/v1/invoices/import",
		"GET /api/v1/invoices/",
		"GET /api/v1/invoices/by-number/{number}",
		"GET /api/v1/invoices/{id}",
		"POST /api/v1/invoices/{id}/credit-notes",
		"POST /api/v1/invoices/{id}/payments",
		"GET /api/v1/reports/overdue",
		"GET /api/v1/reports/payment-summary",
		"GET /api/v1/reports/inconsistent",
		"GET /api/v1/source-files/",
		"POST /api/v1/source-files/upload",
		"GET /api/v1/source-files/last-imported",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	invoiceHandler := handler.NewInvoiceHandler(&stubInvoiceService{}, &stubImportService{}, stubMarker{})
	reportHandler := handler.NewReportHandler(&stubReportService{})
	sourceFileHandler := handler.NewSourceFileHandler(&stubSourceFileStore{})

	cfg := RouterConfig{
		InvoiceHandler:    invoiceHandler,
		ReportHandler:     reportHandler,
		SourceFileHandler: sourceFileHandler,
		HealthHandler:     &handler.HealthHandler{},
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

func stubView() *usecase.InvoiceView {
	return usecase.NewInvoiceView(&domain.Invoice{ID: "inv"}, time.Now().UTC())
}

type stubInvoiceService struct{}

func (stubInvoiceService) GetInvoice(ctx context.Context, id string) (*usecase.InvoiceView, error) {
	return stubView(), nil
}

func (stubInvoiceService) GetInvoiceByNumber(ctx context.Context, number int) (*usecase.InvoiceView, error) {
	return stubView(), nil
}

func (stubInvoiceService) ListInvoices(ctx context.Context, input usecase.ListInvoicesInput) (*usecase.InvoiceListPage, error) {
	return &usecase.InvoiceListPage{}, nil
}

func (stubInvoiceService) CreateCreditNote(ctx context.Context, input usecase.CreateCreditNoteInput) (*usecase.InvoiceView, error) {
	return stubView(), nil
}

func (stubInvoiceService) CreatePayment(ctx context.Context, input usecase.CreatePaymentInput) (*usecase.InvoiceView, error) {
	return stubView(), nil
}

type stubImportService struct{}

func (stubImportService) ImportBatch(ctx context.Context, name string) (*usecase.ImportResult, error) {
	return &usecase.ImportResult{}, nil
}

type stubMarker struct{}

func (stubMarker) MarkImported(name string) error { return nil }

type panickingReportService struct {
	stubReportService
}

func (panickingReportService) OverdueInvoices(ctx context.Context) ([]usecase.OverdueInvoice, error) {
	panic("boom")
}

type stubReportService struct{}

func (stubReportService) OverdueInvoices(ctx context.Context) ([]usecase.OverdueInvoice, error) {
	return []usecase.OverdueInvoice{}, nil
}

func (stubReportService) PaymentStatusSummary(ctx context.Context) (*usecase.PaymentSummary, error) {
	return &usecase.PaymentSummary{}, nil
}

func (stubReportService) InconsistentInvoices(ctx context.Context) ([]usecase.InconsistentInvoice, error) {
	return []usecase.InconsistentInvoice{}, nil
}

type stubSourceFileStore struct{}

func (stubSourceFileStore) ListFiles() ([]string, error)         { return []string{}, nil }
func (stubSourceFileStore) ReadFile(name string) ([]byte, error) { return []byte("{}"), nil }
func (stubSourceFileStore) SaveFile(name string, b []byte) error { return nil }
func (stubSourceFileStore) LastImported() (string, error)        { return "", nil }

type stubIdempotencyStore struct {
	checkCalled bool
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}
