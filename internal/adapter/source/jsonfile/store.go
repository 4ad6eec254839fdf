package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gofactura/internal/domain"
	"github.com/iho/gofactura/internal/usecase"
)

const lastImportedMarker = ".last-imported.txt"

// Store reads and manages invoice source files in a single folder. It
// implements usecase.ImportSource.
type Store struct {
	dir string
}

// NewStore creates a Store over the given folder, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create source folder: %w", err)
	}

	return &Store{dir: dir}, nil
}

// Raw JSON shape of a source file.
type importRoot struct {
	Invoices []importInvoice `json:"invoices"`
}

type importInvoice struct {
	InvoiceNumber int                `json:"invoice_number"`
	InvoiceDate   string             `json:"invoice_date"`
	InvoiceStatus string             `json:"invoice_status"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	DaysToDue     int                `json:"days_to_due"`
	DueDate       string             `json:"payment_due_date"`
	PaymentStatus string             `json:"payment_status"`
	Items         []importItem       `json:"invoice_detail"`
	Payment       *importPayment     `json:"invoice_payment"`
	CreditNotes   []importCreditNote `json:"invoice_credit_note"`
	Customer      importCustomer     `json:"customer"`
}

type importItem struct {
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type importPayment struct {
	Method string `json:"payment_method"`
	Date   string `json:"payment_date"`
}

type importCreditNote struct {
	Number int             `json:"credit_note_number"`
	Date   string          `json:"credit_note_date"`
	Amount decimal.Decimal `json:"credit_note_amount"`
}

type importCustomer struct {
	Run   string `json:"customer_run"`
	Name  string `json:"customer_name"`
	Email string `json:"customer_email"`
}

// Load parses the named source file into raw import records. The stored
// status fields are ignored; statuses are always derived downstream. A
// payment block without a date means the invoice is unpaid.
func (s *Store) Load(ctx context.Context, name string) ([]*usecase.ImportInvoiceRecord, error) {
	data, err := s.ReadFile(name)
	if err != nil {
		return nil, err
	}

	var root importRoot
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrMalformedImportBatch, filepath.Base(name), err)
	}

	records := make([]*usecase.ImportInvoiceRecord, 0, len(root.Invoices))
	for _, raw := range root.Invoices {
		rec, err := toRecord(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: invoice %d: %v", domain.ErrMalformedImportBatch, raw.InvoiceNumber, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// ListFiles returns the names of all JSON files in the folder.
func (s *Store) ListFiles() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}

	return names, nil
}

// ReadFile returns the raw content of the named file.
func (s *Store) ReadFile(name string) ([]byte, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrSourceFileNotFound, filepath.Base(name))
		}

		return nil, err
	}

	return data, nil
}

// SaveFile stores an uploaded source file and records it as the last
// imported one.
func (s *Store) SaveFile(name string, content []byte) error {
	if err := os.WriteFile(s.path(name), content, 0o644); err != nil {
		return err
	}

	return s.MarkImported(name)
}

// MarkImported records the name of the most recently imported file.
func (s *Store) MarkImported(name string) error {
	return os.WriteFile(filepath.Join(s.dir, lastImportedMarker), []byte(filepath.Base(name)), 0o644)
}

// LastImported returns the name of the most recently imported file, empty
// when nothing has been imported yet.
func (s *Store) LastImported() (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, lastImportedMarker))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}

		return "", err
	}

	return strings.TrimSpace(string(data)), nil
}

// path resolves a file name inside the folder, stripping any directory
// components so callers cannot escape it.
func (s *Store) path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}

func toRecord(raw importInvoice) (*usecase.ImportInvoiceRecord, error) {
	invoiceDate, err := parseDate(raw.InvoiceDate)
	if err != nil {
		return nil, fmt.Errorf("invoice_date: %v", err)
	}

	dueDate, err := parseDate(raw.DueDate)
	if err != nil {
		return nil, fmt.Errorf("payment_due_date: %v", err)
	}

	rec := &usecase.ImportInvoiceRecord{
		InvoiceNumber: raw.InvoiceNumber,
		InvoiceDate:   invoiceDate,
		DueDate:       dueDate,
		DaysToDue:     raw.DaysToDue,
		TotalAmount:   raw.TotalAmount,
	}
	rec.Customer = usecase.ImportCustomerRecord{
		Run:   raw.Customer.Run,
		Name:  raw.Customer.Name,
		Email: raw.Customer.Email,
	}

	for _, item := range raw.Items {
		rec.Items = append(rec.Items, usecase.ImportItemRecord{
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Subtotal:    item.Subtotal,
		})
	}

	for _, cn := range raw.CreditNotes {
		issuedAt, err := parseDate(cn.Date)
		if err != nil {
			return nil, fmt.Errorf("credit_note_date: %v", err)
		}
		rec.CreditNotes = append(rec.CreditNotes, usecase.ImportCreditNoteRecord{
			Number:   cn.Number,
			IssuedAt: issuedAt,
			Amount:   cn.Amount,
		})
	}

	if raw.Payment != nil && raw.Payment.Date != "" {
		paidAt, err := parseDate(raw.Payment.Date)
		if err != nil {
			return nil, fmt.Errorf("payment_date: %v", err)
		}
		rec.Payment = &usecase.ImportPaymentRecord{
			Method: raw.Payment.Method,
			PaidAt: paidAt,
		}
	}

	return rec, nil
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
