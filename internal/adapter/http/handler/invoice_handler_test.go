package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/gofactura/internal/adapter/http/dto"
	"github.com/iho/gofactura/internal/domain"
	"github.com/iho/gofactura/internal/usecase"
)

type invoiceServiceStub struct {
	getFn         func(ctx context.Context, id string) (*usecase.InvoiceView, error)
	getByNumberFn func(ctx context.Context, number int) (*usecase.InvoiceView, error)
	listFn        func(ctx context.Context, input usecase.ListInvoicesInput) (*usecase.InvoiceListPage, error)
	creditNoteFn  func(ctx context.Context, input usecase.CreateCreditNoteInput) (*usecase.InvoiceView, error)
	paymentFn     func(ctx context.Context, input usecase.CreatePaymentInput) (*usecase.InvoiceView, error)
}

func (s *invoiceServiceStub) GetInvoice(ctx context.Context, id string) (*usecase.InvoiceView, error) {
	return s.getFn(ctx, id)
}

func (s *invoiceServiceStub) GetInvoiceByNumber(ctx context.Context, number int) (*usecase.InvoiceView, error) {
	return s.getByNumberFn(ctx, number)
}

func (s *invoiceServiceStub) ListInvoices(ctx context.Context, input usecase.ListInvoicesInput) (*usecase.InvoiceListPage, error) {
	return s.listFn(ctx, input)
}

func (s *invoiceServiceStub) CreateCreditNote(ctx context.Context, input usecase.CreateCreditNoteInput) (*usecase.InvoiceView, error) {
	return s.creditNoteFn(ctx, input)
}

func (s *invoiceServiceStub) CreatePayment(ctx context.Context, input usecase.CreatePaymentInput) (*usecase.InvoiceView, error) {
	return s.paymentFn(ctx, input)
}

type importServiceStub struct {
	importFn func(ctx context.Context, name string) (*usecase.ImportResult, error)
}

func (s *importServiceStub) ImportBatch(ctx context.Context, name string) (*usecase.ImportResult, error) {
	return s.importFn(ctx, name)
}

func sampleView() *usecase.InvoiceView {
	inv := &domain.Invoice{
		ID:            "inv-1",
		InvoiceNumber: 1001,
		CustomerName:  "Acme Ltda",
		TotalAmount:   decimal.RequireFromString("100.00"),
		IsConsistent:  true,
		Items: []*domain.InvoiceItem{
			{ID: "item-1", ProductName: "widget", Quantity: 1, UnitPrice: decimal.RequireFromString("100.00"), Subtotal: decimal.RequireFromString("100.00")},
		},
	}

	return &usecase.InvoiceView{
		Invoice:       inv,
		InvoiceStatus: domain.InvoiceStatusIssued,
		PaymentStatus: domain.PaymentStatusPending,
		CreditApplied: decimal.Zero,
		Balance:       inv.TotalAmount,
	}
}

func TestInvoiceHandler_Get(t *testing.T) {
	handler := NewInvoiceHandler(&invoiceServiceStub{
		getFn: func(ctx context.Context, id string) (*usecase.InvoiceView, error) {
			if id != "inv-1" {
				t.Fatalf("expected id inv-1, got %s", id)
			}
			return sampleView(), nil
		},
	}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/invoices/inv-1", nil)
	req = setChiURLParam(req, "id", "inv-1")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.InvoiceDetailResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.InvoiceNumber != 1001 || resp.InvoiceStatus != domain.InvoiceStatusIssued {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if len(resp.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(resp.Items))
	}
}

func TestInvoiceHandler_Get_NotFound(t *testing.T) {
	handler := NewInvoiceHandler(&invoiceServiceStub{
		getFn: func(ctx context.Context, id string) (*usecase.InvoiceView, error) {
			return nil, domain.ErrInvoiceNotFound
		},
	}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/invoices/nope", nil)
	req = setChiURLParam(req, "id", "nope")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestInvoiceHandler_GetByNumber_BadNumber(t *testing.T) {
	handler := NewInvoiceHandler(&invoiceServiceStub{}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/invoices/by-number/abc", nil)
	req = setChiURLParam(req, "number", "abc")
	rec := httptest.NewRecorder()

	handler.GetByNumber(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestInvoiceHandler_List_ParsesFilters(t *testing.T) {
	var captured usecase.ListInvoicesInput
	handler := NewInvoiceHandler(&invoiceServiceStub{
		listFn: func(ctx context.Context, input usecase.ListInvoicesInput) (*usecase.InvoiceListPage, error) {
			captured = input
			return &usecase.InvoiceListPage{Items: []*usecase.InvoiceView{sampleView()}, Page: 2, PageSize: 10, TotalCount: 11, TotalPages: 2}, nil
		},
	}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/invoices?search=acme&invoice_status=Partial&payment_status=Overdue&page=2&page_size=10", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.Search != "acme" || captured.Page != 2 || captured.PageSize != 10 {
		t.Fatalf("unexpected input: %+v", captured)
	}
	if captured.InvoiceStatus == nil || *captured.InvoiceStatus != domain.InvoiceStatusPartial {
		t.Fatalf("expected Partial invoice status filter, got %+v", captured.InvoiceStatus)
	}
	if captured.PaymentStatus == nil || *captured.PaymentStatus != domain.PaymentStatusOverdue {
		t.Fatalf("expected Overdue payment status filter, got %+v", captured.PaymentStatus)
	}

	var resp dto.ListInvoicesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.TotalPages != 2 || len(resp.Items) != 1 {
		t.Fatalf("unexpected page: %+v", resp)
	}
}

func TestInvoiceHandler_List_RejectsBadStatus(t *testing.T) {
	handler := NewInvoiceHandler(&invoiceServiceStub{
		listFn: func(ctx context.Context, input usecase.ListInvoicesInput) (*usecase.InvoiceListPage, error) {
			t.Fatal("ListInvoices should not be called for an invalid status")
			return nil, nil
		},
	}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/invoices?invoice_status=Nonsense", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestInvoiceHandler_CreateCreditNote(t *testing.T) {
	var captured usecase.CreateCreditNoteInput
	handler := NewInvoiceHandler(&invoiceServiceStub{
		creditNoteFn: func(ctx context.Context, input usecase.CreateCreditNoteInput) (*usecase.InvoiceView, error) {
			captured = input
			return sampleView(), nil
		},
	}, nil, nil)

	body, _ := json.Marshal(dto.CreateCreditNoteRequest{
		Amount:           decimal.RequireFromString("25.00"),
		CreditNoteNumber: "42",
	})

	req := httptest.NewRequest(http.MethodPost, "/invoices/inv-1/credit-notes", bytes.NewReader(body))
	req = setChiURLParam(req, "id", "inv-1")
	rec := httptest.NewRecorder()

	handler.CreateCreditNote(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.InvoiceID != "inv-1" || captured.CreditNoteNumber != "42" {
		t.Fatalf("unexpected input: %+v", captured)
	}
	if !captured.Amount.Equal(decimal.RequireFromString("25.00")) {
		t.Fatalf("unexpected amount: %s", captured.Amount)
	}
}

func TestInvoiceHandler_CreateCreditNote_ExceedsBalance(t *testing.T) {
	handler := NewInvoiceHandler(&invoiceServiceStub{
		creditNoteFn: func(ctx context.Context, input usecase.CreateCreditNoteInput) (*usecase.InvoiceView, error) {
			return nil, domain.ErrCreditExceedsBalance
		},
	}, nil, nil)

	body, _ := json.Marshal(dto.CreateCreditNoteRequest{Amount: decimal.RequireFromString("999.00")})
	req := httptest.NewRequest(http.MethodPost, "/invoices/inv-1/credit-notes", bytes.NewReader(body))
	req = setChiURLParam(req, "id", "inv-1")
	rec := httptest.NewRecorder()

	handler.CreateCreditNote(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestInvoiceHandler_CreatePayment_InvalidJSON(t *testing.T) {
	handler := NewInvoiceHandler(&invoiceServiceStub{
		paymentFn: func(ctx context.Context, input usecase.CreatePaymentInput) (*usecase.InvoiceView, error) {
			t.Fatal("CreatePayment should not be called for invalid payload")
			return nil, nil
		},
	}, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/invoices/inv-1/payments", bytes.NewBufferString("{invalid"))
	req = setChiURLParam(req, "id", "inv-1")
	rec := httptest.NewRecorder()

	handler.CreatePayment(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

type markerStub struct {
	marked string
}

func (m *markerStub) MarkImported(name string) error {
	m.marked = name
	return nil
}

func TestInvoiceHandler_Import(t *testing.T) {
	marker := &markerStub{}
	handler := NewInvoiceHandler(&invoiceServiceStub{}, &importServiceStub{
		importFn: func(ctx context.Context, name string) (*usecase.ImportResult, error) {
			if name != "batch.json" {
				t.Fatalf("expected batch.json, got %s", name)
			}
			return &usecase.ImportResult{TotalRead: 3, Inserted: 2, Duplicates: 1, DuplicateInvoiceNumbers: []int{1001}}, nil
		},
	}, marker)

	req := httptest.NewRequest(http.MethodPost, "/invoices/import?file=batch.json", nil)
	rec := httptest.NewRecorder()

	handler.Import(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if marker.marked != "batch.json" {
		t.Fatalf("expected last-imported marker, got %q", marker.marked)
	}

	var resp dto.ImportResultResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Inserted != 2 || len(resp.DuplicateInvoiceNumbers) != 1 {
		t.Fatalf("unexpected result: %+v", resp)
	}
}

func TestInvoiceHandler_Import_DefaultFile(t *testing.T) {
	handler := NewInvoiceHandler(&invoiceServiceStub{}, &importServiceStub{
		importFn: func(ctx context.Context, name string) (*usecase.ImportResult, error) {
			if name != DefaultImportFile {
				t.Fatalf("expected default file, got %s", name)
			}
			return &usecase.ImportResult{DuplicateInvoiceNumbers: []int{}}, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/invoices/import", nil)
	rec := httptest.NewRecorder()

	handler.Import(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestInvoiceHandler_Import_MissingSource(t *testing.T) {
	marker := &markerStub{}
	handler := NewInvoiceHandler(&invoiceServiceStub{}, &importServiceStub{
		importFn: func(ctx context.Context, name string) (*usecase.ImportResult, error) {
			return nil, domain.ErrSourceFileNotFound
		},
	}, marker)

	req := httptest.NewRequest(http.MethodPost, "/invoices/import?file=nope.json", nil)
	rec := httptest.NewRecorder()

	handler.Import(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if marker.marked != "" {
		t.Fatalf("marker must not be written on failure, got %q", marker.marked)
	}
}

func setChiURLParam(r *http.Request, key, value string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, &chi.Context{
		URLParams: chi.RouteParams{
			Keys:   []string{key},
			Values: []string{value},
		},
	}))
}
