package usecase

import (
	"context"
	"time"

	"github.com/iho/gofactura/internal/domain"
)

// InvoiceRepository defines data access for the invoice aggregate graph.
type InvoiceRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)
	GetByNumber(ctx context.Context, number int) (*domain.Invoice, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Invoice, error)
	ListConsistent(ctx context.Context) ([]*domain.Invoice, error)
	ListInconsistent(ctx context.Context) ([]*domain.Invoice, error)
	// ReplaceAll deletes every stored aggregate and bulk-inserts the given
	// ones inside the supplied transaction.
	ReplaceAll(ctx context.Context, tx Transaction, invoices []*domain.Invoice) error
	InsertCreditNote(ctx context.Context, tx Transaction, cn *domain.CreditNote) error
	InsertPayment(ctx context.Context, tx Transaction, p *domain.Payment) error
	MaxCreditNoteNumber(ctx context.Context, tx Transaction) (int, error)
	TouchInvoice(ctx context.Context, tx Transaction, id string, updatedAt time.Time) error
}

// ImportSource supplies raw invoice records for a batch import.
type ImportSource interface {
	Load(ctx context.Context, name string) ([]*ImportInvoiceRecord, error)
}

// Clock supplies the current time. Injected so status and overdue
// computations are deterministic in tests.
type Clock interface {
	Now() time.Time
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Retrier retries an operation on transient failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
