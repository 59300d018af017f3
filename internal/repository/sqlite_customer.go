package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/compass/internal/db"
	"github.com/alexanderramin/compass/internal/domain"
)

// SQLiteCustomerRepo implements CustomerRepo.
type SQLiteCustomerRepo struct {
	db db.DBTX
}

func NewSQLiteCustomerRepo(conn db.DBTX) *SQLiteCustomerRepo {
	return &SQLiteCustomerRepo{db: conn}
}

const customerColumns = `id, name, industry, segment, status, monthly_revenue, currency,
	health_score, open_tickets, last_contact_at, renewal_date, notes, created_at`

func (r *SQLiteCustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	status := c.Status
	if status == "" {
		status = domain.CustomerActive
	}
	query := `INSERT INTO customers (` + customerColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.Name,
		c.Industry,
		c.Segment,
		string(status),
		c.MonthlyRevenue.String(),
		c.Currency,
		nullableIntToValue(c.HealthScore),
		c.OpenTickets,
		nullableTimeToString(c.LastContactAt, time.RFC3339),
		nullableTimeToString(c.RenewalDate, dateLayout),
		c.Notes,
		createdAtOrNow(c.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting customer: %w", err)
	}
	return nil
}

func (r *SQLiteCustomerRepo) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = ?`, id)
	c, err := scanCustomer(row)
	if err != nil {
		return nil, notFound(err, "customer", id)
	}
	return c, nil
}

func (r *SQLiteCustomerRepo) List(ctx context.Context) ([]*domain.Customer, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	defer rows.Close()

	var customers []*domain.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning customer row: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating customers: %w", err)
	}
	return customers, nil
}

func scanCustomer(s scanner) (*domain.Customer, error) {
	var c domain.Customer
	var status, revenue, createdAt string
	var health sql.NullInt64
	var lastContact, renewal sql.NullString

	if err := s.Scan(
		&c.ID, &c.Name, &c.Industry, &c.Segment, &status, &revenue, &c.Currency,
		&health, &c.OpenTickets, &lastContact, &renewal, &c.Notes, &createdAt,
	); err != nil {
		return nil, err
	}

	var err error
	c.Status = domain.CustomerStatus(status)
	if c.MonthlyRevenue, err = parseDecimal(revenue, "monthly_revenue"); err != nil {
		return nil, err
	}
	if c.CreatedAt, err = parseTime(createdAt, time.RFC3339, "created_at"); err != nil {
		return nil, err
	}
	c.HealthScore = parseNullableInt(health)
	c.LastContactAt = parseNullableTime(lastContact, time.RFC3339)
	c.RenewalDate = parseNullableTime(renewal, dateLayout)
	return &c, nil
}
