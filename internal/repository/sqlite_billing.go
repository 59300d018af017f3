package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/compass/internal/db"
	"github.com/alexanderramin/compass/internal/domain"
)

// SQLiteContractRepo implements ContractRepo.
type SQLiteContractRepo struct {
	db db.DBTX
}

func NewSQLiteContractRepo(conn db.DBTX) *SQLiteContractRepo {
	return &SQLiteContractRepo{db: conn}
}

const contractColumns = `id, customer_id, title, billing_type, total_value, currency,
	hours_budget, hours_used, start_date, end_date, status, created_at`

func (r *SQLiteContractRepo) Create(ctx context.Context, c *domain.Contract) error {
	status := c.Status
	if status == "" {
		status = domain.ContractActive
	}
	query := `INSERT INTO contracts (` + contractColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.CustomerID,
		c.Title,
		string(c.BillingType),
		c.TotalValue.String(),
		c.Currency,
		c.HoursBudget,
		c.HoursUsed,
		c.StartDate.Format(dateLayout),
		nullableTimeToString(c.EndDate, dateLayout),
		string(status),
		createdAtOrNow(c.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting contract: %w", err)
	}
	return nil
}

func (r *SQLiteContractRepo) GetByID(ctx context.Context, id string) (*domain.Contract, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+contractColumns+` FROM contracts WHERE id = ?`, id)
	c, err := scanContract(row)
	if err != nil {
		return nil, notFound(err, "contract", id)
	}
	return c, nil
}

func (r *SQLiteContractRepo) ListByCustomer(ctx context.Context, customerID string) ([]*domain.Contract, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+contractColumns+` FROM contracts WHERE customer_id = ? ORDER BY start_date, id`, customerID)
	if err != nil {
		return nil, fmt.Errorf("listing contracts: %w", err)
	}
	defer rows.Close()

	var contracts []*domain.Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning contract row: %w", err)
		}
		contracts = append(contracts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contracts: %w", err)
	}
	return contracts, nil
}

func scanContract(s scanner) (*domain.Contract, error) {
	var c domain.Contract
	var billingType, totalValue, startDate, status, createdAt string
	var endDate sql.NullString

	if err := s.Scan(
		&c.ID, &c.CustomerID, &c.Title, &billingType, &totalValue, &c.Currency,
		&c.HoursBudget, &c.HoursUsed, &startDate, &endDate, &status, &createdAt,
	); err != nil {
		return nil, err
	}

	var err error
	c.BillingType = domain.BillingType(billingType)
	c.Status = domain.ContractStatus(status)
	if c.TotalValue, err = parseDecimal(totalValue, "total_value"); err != nil {
		return nil, err
	}
	if c.StartDate, err = parseTime(startDate, dateLayout, "start_date"); err != nil {
		return nil, err
	}
	if c.CreatedAt, err = parseTime(createdAt, time.RFC3339, "created_at"); err != nil {
		return nil, err
	}
	c.EndDate = parseNullableTime(endDate, dateLayout)
	return &c, nil
}

// SQLiteInvoiceRepo implements InvoiceRepo. Line items are stored as a JSON column.
type SQLiteInvoiceRepo struct {
	db db.DBTX
}

func NewSQLiteInvoiceRepo(conn db.DBTX) *SQLiteInvoiceRepo {
	return &SQLiteInvoiceRepo{db: conn}
}

const invoiceColumns = `id, customer_id, contract_id, number, amount, currency,
	issued_on, due_on, status, line_items, created_at`

func (r *SQLiteInvoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	items, err := toJSON(inv.LineItems, "[]")
	if err != nil {
		return fmt.Errorf("encoding line items: %w", err)
	}
	status := inv.Status
	if status == "" {
		status = domain.InvoiceDraft
	}
	var contractID any
	if inv.ContractID != "" {
		contractID = inv.ContractID
	}

	query := `INSERT INTO invoices (` + invoiceColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		inv.ID,
		inv.CustomerID,
		contractID,
		inv.Number,
		inv.Amount.String(),
		inv.Currency,
		inv.IssuedOn.Format(dateLayout),
		nullableTimeToString(inv.DueOn, dateLayout),
		string(status),
		items,
		createdAtOrNow(inv.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting invoice: %w", err)
	}
	return nil
}

func (r *SQLiteInvoiceRepo) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = ?`, id)
	inv, err := scanInvoice(row)
	if err != nil {
		return nil, notFound(err, "invoice", id)
	}
	return inv, nil
}

func (r *SQLiteInvoiceRepo) ListByContract(ctx context.Context, contractID string) ([]*domain.Invoice, error) {
	return r.list(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE contract_id = ? ORDER BY issued_on, number`, contractID)
}

func (r *SQLiteInvoiceRepo) ListByCustomer(ctx context.Context, customerID string) ([]*domain.Invoice, error) {
	return r.list(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE customer_id = ? ORDER BY issued_on, number`, customerID)
}

func (r *SQLiteInvoiceRepo) list(ctx context.Context, query string, args ...any) ([]*domain.Invoice, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*domain.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning invoice row: %w", err)
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoices: %w", err)
	}
	return invoices, nil
}

func scanInvoice(s scanner) (*domain.Invoice, error) {
	var inv domain.Invoice
	var amount, issuedOn, status, items, createdAt string
	var contractID, dueOn sql.NullString

	if err := s.Scan(
		&inv.ID, &inv.CustomerID, &contractID, &inv.Number, &amount, &inv.Currency,
		&issuedOn, &dueOn, &status, &items, &createdAt,
	); err != nil {
		return nil, err
	}

	var err error
	inv.ContractID = contractID.String
	inv.Status = domain.InvoiceStatus(status)
	if inv.Amount, err = parseDecimal(amount, "amount"); err != nil {
		return nil, err
	}
	if inv.IssuedOn, err = parseTime(issuedOn, dateLayout, "issued_on"); err != nil {
		return nil, err
	}
	if inv.CreatedAt, err = parseTime(createdAt, time.RFC3339, "created_at"); err != nil {
		return nil, err
	}
	if err := fromJSON(items, "line_items", &inv.LineItems); err != nil {
		return nil, err
	}
	inv.DueOn = parseNullableTime(dueOn, dateLayout)
	return &inv, nil
}
