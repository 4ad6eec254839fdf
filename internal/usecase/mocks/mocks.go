package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iho/gofactura/internal/domain"
	"github.com/iho/gofactura/internal/usecase"
)

// MockInvoiceRepository is an in-memory mock of InvoiceRepository.
type MockInvoiceRepository struct {
	mu       sync.RWMutex
	invoices map[string]*domain.Invoice

	GetByIDFunc             func(ctx context.Context, id string) (*domain.Invoice, error)
	GetByNumberFunc         func(ctx context.Context, number int) (*domain.Invoice, error)
	GetByIDForUpdateFunc    func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Invoice, error)
	ListConsistentFunc      func(ctx context.Context) ([]*domain.Invoice, error)
	ListInconsistentFunc    func(ctx context.Context) ([]*domain.Invoice, error)
	ReplaceAllFunc          func(ctx context.Context, tx usecase.Transaction, invoices []*domain.Invoice) error
	InsertCreditNoteFunc    func(ctx context.Context, tx usecase.Transaction, cn *domain.CreditNote) error
	InsertPaymentFunc       func(ctx context.Context, tx usecase.Transaction, p *domain.Payment) error
	MaxCreditNoteNumberFunc func(ctx context.Context, tx usecase.Transaction) (int, error)
	TouchInvoiceFunc        func(ctx context.Context, tx usecase.Transaction, id string, updatedAt time.Time) error
}

func NewMockInvoiceRepository() *MockInvoiceRepository {
	return &MockInvoiceRepository{
		invoices: make(map[string]*domain.Invoice),
	}
}

// Seed stores invoices directly, bypassing any Func override.
func (m *MockInvoiceRepository) Seed(invoices ...*domain.Invoice) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, inv := range invoices {
		m.invoices[inv.ID] = inv
	}
}

func (m *MockInvoiceRepository) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if inv, ok := m.invoices[id]; ok {
		return inv, nil
	}
	return nil, domain.ErrInvoiceNotFound
}

func (m *MockInvoiceRepository) GetByNumber(ctx context.Context, number int) (*domain.Invoice, error) {
	if m.GetByNumberFunc != nil {
		return m.GetByNumberFunc(ctx, number)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, inv := range m.invoices {
		if inv.InvoiceNumber == number {
			return inv, nil
		}
	}
	return nil, domain.ErrInvoiceNotFound
}

func (m *MockInvoiceRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Invoice, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockInvoiceRepository) ListConsistent(ctx context.Context) ([]*domain.Invoice, error) {
	if m.ListConsistentFunc != nil {
		return m.ListConsistentFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Invoice
	for _, inv := range m.invoices {
		if inv.IsConsistent {
			result = append(result, inv)
		}
	}
	return result, nil
}

func (m *MockInvoiceRepository) ListInconsistent(ctx context.Context) ([]*domain.Invoice, error) {
	if m.ListInconsistentFunc != nil {
		return m.ListInconsistentFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Invoice
	for _, inv := range m.invoices {
		if !inv.IsConsistent {
			result = append(result, inv)
		}
	}
	return result, nil
}

func (m *MockInvoiceRepository) ReplaceAll(ctx context.Context, tx usecase.Transaction, invoices []*domain.Invoice) error {
	if m.ReplaceAllFunc != nil {
		return m.ReplaceAllFunc(ctx, tx, invoices)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invoices = make(map[string]*domain.Invoice, len(invoices))
	for _, inv := range invoices {
		m.invoices[inv.ID] = inv
	}
	return nil
}

func (m *MockInvoiceRepository) InsertCreditNote(ctx context.Context, tx usecase.Transaction, cn *domain.CreditNote) error {
	if m.InsertCreditNoteFunc != nil {
		return m.InsertCreditNoteFunc(ctx, tx, cn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.invoices[cn.InvoiceID]
	if !ok {
		return domain.ErrInvoiceNotFound
	}
	inv.CreditNotes = append(inv.CreditNotes, cn)
	return nil
}

func (m *MockInvoiceRepository) InsertPayment(ctx context.Context, tx usecase.Transaction, p *domain.Payment) error {
	if m.InsertPaymentFunc != nil {
		return m.InsertPaymentFunc(ctx, tx, p)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.invoices[p.InvoiceID]
	if !ok {
		return domain.ErrInvoiceNotFound
	}
	if inv.Payment != nil {
		return domain.ErrPaymentAlreadyExists
	}
	inv.Payment = p
	return nil
}

func (m *MockInvoiceRepository) MaxCreditNoteNumber(ctx context.Context, tx usecase.Transaction) (int, error) {
	if m.MaxCreditNoteNumberFunc != nil {
		return m.MaxCreditNoteNumberFunc(ctx, tx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	max := 0
	for _, inv := range m.invoices {
		for _, cn := range inv.CreditNotes {
			if cn.CreditNoteNumber > max {
				max = cn.CreditNoteNumber
			}
		}
	}
	return max, nil
}

func (m *MockInvoiceRepository) TouchInvoice(ctx context.Context, tx usecase.Transaction, id string, updatedAt time.Time) error {
	if m.TouchInvoiceFunc != nil {
		return m.TouchInvoiceFunc(ctx, tx, id, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if inv, ok := m.invoices[id]; ok {
		inv.UpdatedAt = updatedAt
	}
	return nil
}

// MockTransaction is a no-op transaction.
type MockTransaction struct {
	Committed  bool
	RolledBack bool
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTxManager hands out no-op transactions.
type MockTxManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	mu   sync.Mutex
	Last *MockTransaction
}

func NewMockTxManager() *MockTxManager {
	return &MockTxManager{}
}

func (m *MockTxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Last = &MockTransaction{}
	return m.Last, nil
}

// MockIDGenerator generates sequential IDs.
type MockIDGenerator struct {
	GenerateFunc func() string

	mu sync.Mutex
	n  int
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.n++
	return fmt.Sprintf("id-%04d", m.n)
}

// MockClock returns a fixed time.
type MockClock struct {
	Time time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{Time: t}
}

func (m *MockClock) Now() time.Time {
	return m.Time
}

// MockCache is an in-memory cache.
type MockCache struct {
	mu      sync.RWMutex
	entries map[string][]byte

	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	SetFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{entries: make(map[string][]byte)}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.entries[key]; ok {
		return v, nil
	}
	return nil, nil
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// MockImportSource serves a fixed set of records.
type MockImportSource struct {
	Records []*usecase.ImportInvoiceRecord
	Err     error

	LoadFunc func(ctx context.Context, name string) ([]*usecase.ImportInvoiceRecord, error)
}

func NewMockImportSource(records ...*usecase.ImportInvoiceRecord) *MockImportSource {
	return &MockImportSource{Records: records}
}

func (m *MockImportSource) Load(ctx context.Context, name string) ([]*usecase.ImportInvoiceRecord, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx, name)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Records, nil
}

// MockRetrier runs the operation once.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}
