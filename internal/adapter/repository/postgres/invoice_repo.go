package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/gofactura/internal/domain"
	"github.com/iho/gofactura/internal/infrastructure/metrics"
	"github.com/iho/gofactura/internal/usecase"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so aggregate loads
// work the same inside and outside a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// InvoiceRepository implements usecase.InvoiceRepository.
type InvoiceRepository struct {
	pool    querier
	metrics *metrics.Metrics
}

// NewInvoiceRepository creates a new InvoiceRepository.
func NewInvoiceRepository(pool *pgxpool.Pool, m *metrics.Metrics) *InvoiceRepository {
	return newInvoiceRepositoryWithPool(pool, m)
}

func newInvoiceRepositoryWithPool(pool querier, m *metrics.Metrics) *InvoiceRepository {
	return &InvoiceRepository{pool: pool, metrics: m}
}

// countError increments the DB error counter for failed operations and
// passes the error through. Not-found is mapped before this is reached.
func (r *InvoiceRepository) countError(operation string, err error) error {
	if err != nil && r.metrics != nil {
		r.metrics.DBErrors.WithLabelValues(operation).Inc()
	}

	return err
}

const invoiceColumns = `id, invoice_number, invoice_date, due_date, days_to_due,
	total_amount, is_consistent, customer_run, customer_name, customer_email,
	created_at, updated_at`

// GetByID retrieves a full invoice aggregate by ID.
func (r *InvoiceRepository) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	return r.getOne(ctx, r.pool, "get",
		`SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
}

// GetByNumber retrieves a full invoice aggregate by its invoice number.
func (r *InvoiceRepository) GetByNumber(ctx context.Context, number int) (*domain.Invoice, error) {
	return r.getOne(ctx, r.pool, "get_by_number",
		`SELECT `+invoiceColumns+` FROM invoices WHERE invoice_number = $1`, number)
}

// GetByIDForUpdate retrieves an invoice by ID with a FOR UPDATE lock on the
// invoice row. Child rows are read inside the same transaction.
func (r *InvoiceRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Invoice, error) {
	pgxTx := tx.(*Tx).PgxTx()

	return r.getOne(ctx, pgxTx, "get_for_update",
		`SELECT `+invoiceColumns+` FROM invoices WHERE id = $1 FOR UPDATE`, id)
}

// ListConsistent retrieves all consistent invoice aggregates.
func (r *InvoiceRepository) ListConsistent(ctx context.Context) ([]*domain.Invoice, error) {
	return r.list(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE is_consistent ORDER BY invoice_number`)
}

// ListInconsistent retrieves all inconsistent invoice aggregates.
func (r *InvoiceRepository) ListInconsistent(ctx context.Context) ([]*domain.Invoice, error) {
	return r.list(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE NOT is_consistent ORDER BY invoice_number`)
}

// ReplaceAll wipes every stored aggregate and bulk-inserts the given ones.
// Deletes run child tables first; inserts use COPY.
func (r *InvoiceRepository) ReplaceAll(ctx context.Context, tx usecase.Transaction, invoices []*domain.Invoice) error {
	pgxTx := tx.(*Tx).PgxTx()

	for _, table := range []string{"credit_notes", "payments", "invoice_items", "invoices"} {
		if _, err := pgxTx.Exec(ctx, `DELETE FROM `+table); err != nil {
			return r.countError("replace_all", err)
		}
	}

	if len(invoices) == 0 {
		return nil
	}

	invoiceRows := make([][]any, 0, len(invoices))
	itemRows := make([][]any, 0, len(invoices))
	creditNoteRows := make([][]any, 0)
	paymentRows := make([][]any, 0)

	for _, inv := range invoices {
		invoiceRows = append(invoiceRows, []any{
			inv.ID, inv.InvoiceNumber, timeToPgTimestamptz(inv.InvoiceDate),
			timeToPgTimestamptz(inv.DueDate), inv.DaysToDue,
			decimalToNumeric(inv.TotalAmount), inv.IsConsistent,
			inv.CustomerRun, inv.CustomerName, inv.CustomerEmail,
			timeToPgTimestamptz(inv.CreatedAt), timeToPgTimestamptz(inv.UpdatedAt),
		})
		for _, item := range inv.Items {
			itemRows = append(itemRows, []any{
				item.ID, item.InvoiceID, item.ProductName, item.Quantity,
				decimalToNumeric(item.UnitPrice), decimalToNumeric(item.Subtotal),
			})
		}
		for _, cn := range inv.CreditNotes {
			creditNoteRows = append(creditNoteRows, []any{
				cn.ID, cn.InvoiceID, cn.CreditNoteNumber,
				timeToPgTimestamptz(cn.IssuedAt), decimalToNumeric(cn.Amount),
				timeToPgTimestamptz(cn.CreatedAt),
			})
		}
		if inv.Payment != nil {
			p := inv.Payment
			paymentRows = append(paymentRows, []any{
				p.ID, p.InvoiceID, p.Method, decimalToNumeric(p.Amount),
				timeToPgTimestamptz(p.PaidAt),
			})
		}
	}

	copies := []struct {
		table   string
		columns []string
		rows    [][]any
	}{
		{"invoices", []string{
			"id", "invoice_number", "invoice_date", "due_date", "days_to_due",
			"total_amount", "is_consistent", "customer_run", "customer_name",
			"customer_email", "created_at", "updated_at",
		}, invoiceRows},
		{"invoice_items", []string{
			"id", "invoice_id", "product_name", "quantity", "unit_price", "subtotal",
		}, itemRows},
		{"credit_notes", []string{
			"id", "invoice_id", "credit_note_number", "issued_at", "amount", "created_at",
		}, creditNoteRows},
		{"payments", []string{
			"id", "invoice_id", "payment_method", "amount", "paid_at",
		}, paymentRows},
	}

	for _, c := range copies {
		if len(c.rows) == 0 {
			continue
		}
		if _, err := pgxTx.CopyFrom(ctx, pgx.Identifier{c.table}, c.columns, pgx.CopyFromRows(c.rows)); err != nil {
			return r.countError("replace_all", err)
		}
	}

	return nil
}

// InsertCreditNote stores a credit note inside the transaction.
func (r *InvoiceRepository) InsertCreditNote(ctx context.Context, tx usecase.Transaction, cn *domain.CreditNote) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO credit_notes (id, invoice_id, credit_note_number, issued_at, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		cn.ID, cn.InvoiceID, cn.CreditNoteNumber,
		timeToPgTimestamptz(cn.IssuedAt), decimalToNumeric(cn.Amount),
		timeToPgTimestamptz(cn.CreatedAt),
	)

	return r.countError("insert_credit_note", err)
}

// InsertPayment stores a payment inside the transaction.
func (r *InvoiceRepository) InsertPayment(ctx context.Context, tx usecase.Transaction, p *domain.Payment) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO payments (id, invoice_id, payment_method, amount, paid_at)
		VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.InvoiceID, p.Method, decimalToNumeric(p.Amount),
		timeToPgTimestamptz(p.PaidAt),
	)

	return r.countError("insert_payment", err)
}

// MaxCreditNoteNumber returns the highest credit note number issued so far,
// zero when none exist. Read inside the transaction so concurrent issuers
// serialize on the locked invoice rows.
func (r *InvoiceRepository) MaxCreditNoteNumber(ctx context.Context, tx usecase.Transaction) (int, error) {
	pgxTx := tx.(*Tx).PgxTx()

	var max int
	err := pgxTx.QueryRow(ctx,
		`SELECT COALESCE(MAX(credit_note_number), 0) FROM credit_notes`).Scan(&max)

	return max, r.countError("max_credit_note_number", err)
}

// TouchInvoice bumps the invoice's updated_at timestamp.
func (r *InvoiceRepository) TouchInvoice(ctx context.Context, tx usecase.Transaction, id string, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx,
		`UPDATE invoices SET updated_at = $2 WHERE id = $1`,
		id, timeToPgTimestamptz(updatedAt))

	return r.countError("touch_invoice", err)
}

func (r *InvoiceRepository) getOne(ctx context.Context, q querier, op, query string, arg any) (*domain.Invoice, error) {
	inv, err := scanInvoice(q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}

		return nil, r.countError(op, err)
	}

	if err := attachChildren(ctx, q, []*domain.Invoice{inv}); err != nil {
		return nil, r.countError(op, err)
	}

	return inv, nil
}

func (r *InvoiceRepository) list(ctx context.Context, query string) ([]*domain.Invoice, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, r.countError("list", err)
	}
	defer rows.Close()

	var invoices []*domain.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, r.countError("list", err)
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, r.countError("list", err)
	}

	if err := attachChildren(ctx, r.pool, invoices); err != nil {
		return nil, r.countError("list", err)
	}

	return invoices, nil
}

func scanInvoice(row pgx.Row) (*domain.Invoice, error) {
	var (
		inv         domain.Invoice
		total       pgtype.Numeric
		invoiceDate pgtype.Timestamptz
		dueDate     pgtype.Timestamptz
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
	)

	err := row.Scan(
		&inv.ID, &inv.InvoiceNumber, &invoiceDate, &dueDate, &inv.DaysToDue,
		&total, &inv.IsConsistent, &inv.CustomerRun, &inv.CustomerName,
		&inv.CustomerEmail, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	inv.InvoiceDate = invoiceDate.Time
	inv.DueDate = dueDate.Time
	inv.TotalAmount = numericToDecimal(total)
	inv.CreatedAt = createdAt.Time
	inv.UpdatedAt = updatedAt.Time

	return &inv, nil
}

// attachChildren loads items, credit notes and payments for the given
// invoices in three queries and attaches them to their parents.
func attachChildren(ctx context.Context, q querier, invoices []*domain.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}

	ids := make([]string, len(invoices))
	byID := make(map[string]*domain.Invoice, len(invoices))
	for n, inv := range invoices {
		ids[n] = inv.ID
		byID[inv.ID] = inv
	}

	if err := attachItems(ctx, q, ids, byID); err != nil {
		return err
	}
	if err := attachCreditNotes(ctx, q, ids, byID); err != nil {
		return err
	}

	return attachPayments(ctx, q, ids, byID)
}

func attachItems(ctx context.Context, q querier, ids []string, byID map[string]*domain.Invoice) error {
	rows, err := q.Query(ctx, `
		SELECT id, invoice_id, product_name, quantity, unit_price, subtotal
		FROM invoice_items WHERE invoice_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item      domain.InvoiceItem
			unitPrice pgtype.Numeric
			subtotal  pgtype.Numeric
		)
		if err := rows.Scan(&item.ID, &item.InvoiceID, &item.ProductName, &item.Quantity, &unitPrice, &subtotal); err != nil {
			return err
		}
		item.UnitPrice = numericToDecimal(unitPrice)
		item.Subtotal = numericToDecimal(subtotal)
		if inv, ok := byID[item.InvoiceID]; ok {
			inv.Items = append(inv.Items, &item)
		}
	}

	return rows.Err()
}

func attachCreditNotes(ctx context.Context, q querier, ids []string, byID map[string]*domain.Invoice) error {
	rows, err := q.Query(ctx, `
		SELECT id, invoice_id, credit_note_number, issued_at, amount, created_at
		FROM credit_notes WHERE invoice_id = ANY($1) ORDER BY credit_note_number`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cn        domain.CreditNote
			issuedAt  pgtype.Timestamptz
			amount    pgtype.Numeric
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&cn.ID, &cn.InvoiceID, &cn.CreditNoteNumber, &issuedAt, &amount, &createdAt); err != nil {
			return err
		}
		cn.IssuedAt = issuedAt.Time
		cn.Amount = numericToDecimal(amount)
		cn.CreatedAt = createdAt.Time
		if inv, ok := byID[cn.InvoiceID]; ok {
			inv.CreditNotes = append(inv.CreditNotes, &cn)
		}
	}

	return rows.Err()
}

func attachPayments(ctx context.Context, q querier, ids []string, byID map[string]*domain.Invoice) error {
	rows, err := q.Query(ctx, `
		SELECT id, invoice_id, payment_method, amount, paid_at
		FROM payments WHERE invoice_id = ANY($1)`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			p      domain.Payment
			amount pgtype.Numeric
			paidAt pgtype.Timestamptz
		)
		if err := rows.Scan(&p.ID, &p.InvoiceID, &p.Method, &amount, &paidAt); err != nil {
			return err
		}
		p.Amount = numericToDecimal(amount)
		p.PaidAt = paidAt.Time
		if inv, ok := byID[p.InvoiceID]; ok {
			inv.Payment = &p
		}
	}

	return rows.Err()
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
